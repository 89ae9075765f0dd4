package composer

import (
	"fmt"
	"strings"

	"github.com/redchoeng/titan-kr/internal/domain"
	"github.com/redchoeng/titan-kr/internal/modules/scoring/scorers"
)

// analystComment builds a deterministic analyst-tone summary from the scored
// data: fundamental profitability, moving-average structure and RSI, then the
// entry stance. Empty when nothing is known about the symbol.
func analystComment(snap domain.SymbolSnapshot, ind scorers.TechnicalIndicators,
	contrarian int, levels *TradeLevels) string {
	var parts []string

	if f := fundamentalSummary(snap); f != "" {
		parts = append(parts, f)
	}
	if t := technicalSummary(ind); t != "" {
		parts = append(parts, t)
	}
	if s := stanceSummary(contrarian, levels); s != "" {
		parts = append(parts, s)
	}

	return strings.Join(parts, " ")
}

func fundamentalSummary(snap domain.SymbolSnapshot) string {
	var parts []string

	if snap.ROE != nil {
		roe := *snap.ROE
		switch {
		case roe >= 20:
			parts = append(parts, fmt.Sprintf("ROE %.1f%%로 수익성 최상위권", roe))
		case roe >= 10:
			parts = append(parts, fmt.Sprintf("ROE %.1f%%로 양호한 수익성", roe))
		case roe > 0:
			parts = append(parts, fmt.Sprintf("ROE %.1f%%로 수익성 보통", roe))
		}
	}
	if snap.OperatingMargin != nil {
		opm := *snap.OperatingMargin
		switch {
		case opm >= 25:
			parts = append(parts, fmt.Sprintf("영업이익률 %.1f%%의 고마진 구조", opm))
		case opm >= 15:
			parts = append(parts, fmt.Sprintf("영업이익률 %.1f%%로 안정적", opm))
		}
	}
	if snap.RevenueGrowth != nil {
		growth := *snap.RevenueGrowth
		switch {
		case growth >= 30:
			parts = append(parts, fmt.Sprintf("매출 YoY +%.0f%% 고성장", growth))
		case growth >= 10:
			parts = append(parts, fmt.Sprintf("매출 YoY +%.0f%% 성장세", growth))
		}
	}

	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, ". ") + "."
}

func technicalSummary(ind scorers.TechnicalIndicators) string {
	var parts []string

	if ind.MA20 != nil && ind.MA60 != nil {
		ma20, ma60 := *ind.MA20, *ind.MA60
		switch {
		case ma20 > ma60 && ind.Price > ma20:
			parts = append(parts, "MA20>MA60 정배열 상태로 상승 추세 진행 중")
		case ma20 > ma60:
			parts = append(parts, "MA20>MA60 정배열이나 단기 조정 구간")
		case ma20 < ma60 && ind.Price < ma20:
			parts = append(parts, "MA20<MA60 역배열로 약세 흐름")
		default:
			parts = append(parts, "이동평균 수렴 구간으로 방향성 탐색 중")
		}
	}

	if ind.RSI != nil {
		rsi := *ind.RSI
		switch {
		case rsi <= 30:
			parts = append(parts, fmt.Sprintf("RSI %.0f으로 과매도 영역 → 반등 가능성", rsi))
		case rsi >= 70:
			parts = append(parts, fmt.Sprintf("RSI %.0f으로 과매수 영역 → 단기 조정 유의", rsi))
		case rsi >= 50:
			parts = append(parts, fmt.Sprintf("RSI %.0f으로 매수세 우위", rsi))
		default:
			parts = append(parts, fmt.Sprintf("RSI %.0f으로 매도세 우위", rsi))
		}
	}

	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, ". ") + "."
}

func stanceSummary(contrarian int, levels *TradeLevels) string {
	if contrarian > 0 {
		return "역발상 매수 시그널 감지 → 저가 매수 기회로 판단."
	}
	if levels == nil {
		return ""
	}
	switch {
	case strings.Contains(levels.Strategy, "추세 추종"):
		return "상승 추세 지속 중으로 추세 추종 매매가 유효."
	case strings.Contains(levels.Strategy, "눌림목"):
		return "상승 추세 내 조정 구간으로 분할 매수 접근 권장."
	case strings.Contains(levels.Strategy, "박스권"):
		return "횡보 구간 하단 접근 중으로 지지선 확인 후 매수 검토."
	case strings.Contains(levels.Strategy, "반등 확인"):
		return "하락 추세로 반등 신호 확인 전까지 관망 권장."
	}
	return ""
}
