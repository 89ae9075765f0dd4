package composer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/redchoeng/titan-kr/internal/domain"
	"github.com/redchoeng/titan-kr/internal/modules/scoring/scorers"
)

func TestAnalystCommentQualityUptrend(t *testing.T) {
	snap := domain.SymbolSnapshot{
		ROE:             fptr(22.5),
		OperatingMargin: fptr(28.0),
		RevenueGrowth:   fptr(35.0),
	}
	ind := scorers.TechnicalIndicators{
		Price: 80000,
		MA20:  fptr(78000),
		MA60:  fptr(74000),
		RSI:   fptr(62.0),
	}
	levels := &TradeLevels{Strategy: "추세 추종"}

	comment := analystComment(snap, ind, 0, levels)

	assert.Contains(t, comment, "ROE 22.5%로 수익성 최상위권")
	assert.Contains(t, comment, "고마진 구조")
	assert.Contains(t, comment, "매출 YoY +35% 고성장")
	assert.Contains(t, comment, "정배열 상태로 상승 추세 진행 중")
	assert.Contains(t, comment, "RSI 62으로 매수세 우위")
	assert.Contains(t, comment, "추세 추종 매매가 유효")
}

func TestAnalystCommentContrarianOverridesStrategy(t *testing.T) {
	ind := scorers.TechnicalIndicators{
		Price: 50000,
		MA20:  fptr(52000),
		MA60:  fptr(51000),
		RSI:   fptr(24.0),
	}
	levels := &TradeLevels{Strategy: "과매도 반등"}

	comment := analystComment(domain.SymbolSnapshot{}, ind, 5, levels)

	assert.Contains(t, comment, "과매도 영역 → 반등 가능성")
	assert.Contains(t, comment, "역발상 매수 시그널 감지")
	assert.NotContains(t, comment, "관망")
}

func TestAnalystCommentBearishStance(t *testing.T) {
	snap := domain.SymbolSnapshot{ROE: fptr(6.0)}
	ind := scorers.TechnicalIndicators{
		Price: 30000,
		MA20:  fptr(31000),
		MA60:  fptr(33000),
		RSI:   fptr(42.0),
	}
	levels := &TradeLevels{Strategy: "반등 확인 대기"}

	comment := analystComment(snap, ind, 0, levels)

	assert.Contains(t, comment, "ROE 6.0%로 수익성 보통")
	assert.Contains(t, comment, "역배열로 약세 흐름")
	assert.Contains(t, comment, "매도세 우위")
	assert.Contains(t, comment, "반등 신호 확인 전까지 관망 권장")
}

func TestAnalystCommentStrategyLines(t *testing.T) {
	cases := []struct {
		strategy string
		want     string
	}{
		{"눌림목 매수", "분할 매수 접근 권장"},
		{"눌림목 대기", "분할 매수 접근 권장"},
		{"박스권 하단", "지지선 확인 후 매수 검토"},
	}
	for _, tc := range cases {
		comment := analystComment(domain.SymbolSnapshot{}, scorers.TechnicalIndicators{}, 0,
			&TradeLevels{Strategy: tc.strategy})
		assert.Contains(t, comment, tc.want, "strategy %s", tc.strategy)
	}
}

func TestAnalystCommentEmptyWhenNothingKnown(t *testing.T) {
	comment := analystComment(domain.SymbolSnapshot{}, scorers.TechnicalIndicators{}, 0, nil)
	assert.Empty(t, comment)
}
