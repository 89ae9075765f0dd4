// Package universe holds the curated KR symbol lists and the stage-1 screen
// applied before scoring.
package universe

import "github.com/redchoeng/titan-kr/internal/domain"

// Market is the listing exchange
type Market string

const (
	KOSPI  Market = "KOSPI"
	KOSDAQ Market = "KOSDAQ"
)

// Symbol is one tracked listing. Sector carries the KRX industry label used
// by the sector threshold tables.
type Symbol struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Market Market `json:"market"`
	Sector string `json:"sector"`
}

// YahooSymbol returns the Yahoo Finance symbol for the listing
func (s Symbol) YahooSymbol() string {
	if s.Market == KOSDAQ {
		return s.Code + ".KQ"
	}
	return s.Code + ".KS"
}

// growthUniverse: large-cap growth candidates. Curated, not exhaustive; the
// stage-1 screen drops anything that has fallen below the liquidity bar.
var growthUniverse = []Symbol{
	{"005930", "삼성전자", KOSPI, "전기전자"},
	{"000660", "SK하이닉스", KOSPI, "전기전자"},
	{"373220", "LG에너지솔루션", KOSPI, "전기전자"},
	{"207940", "삼성바이오로직스", KOSPI, "의약품"},
	{"005380", "현대차", KOSPI, "운수장비"},
	{"000270", "기아", KOSPI, "운수장비"},
	{"068270", "셀트리온", KOSPI, "의약품"},
	{"035420", "NAVER", KOSPI, "서비스업"},
	{"035720", "카카오", KOSPI, "서비스업"},
	{"006400", "삼성SDI", KOSPI, "전기전자"},
	{"051910", "LG화학", KOSPI, "화학"},
	{"012450", "한화에어로스페이스", KOSPI, "방산"},
	{"042660", "한화오션", KOSPI, "조선"},
	{"329180", "HD현대중공업", KOSPI, "조선"},
	{"009540", "HD한국조선해양", KOSPI, "조선"},
	{"047810", "한국항공우주", KOSPI, "방산"},
	{"079550", "LIG넥스원", KOSPI, "방산"},
	{"042700", "한미반도체", KOSPI, "전기전자"},
	{"259960", "크래프톤", KOSPI, "서비스업"},
	{"036570", "엔씨소프트", KOSPI, "서비스업"},
	{"247540", "에코프로비엠", KOSDAQ, "전기전자"},
	{"086520", "에코프로", KOSDAQ, "화학"},
	{"028300", "HLB", KOSDAQ, "의약품"},
	{"196170", "알테오젠", KOSDAQ, "의약품"},
	{"058470", "리노공업", KOSDAQ, "전기전자"},
	{"403870", "HPSP", KOSDAQ, "전기전자"},
	{"035900", "JYP엔터테인먼트", KOSDAQ, "서비스업"},
	{"112040", "위메이드", KOSDAQ, "서비스업"},
}

// valueUniverse: dividend and asset-value names
var valueUniverse = []Symbol{
	{"105560", "KB금융", KOSPI, "금융업"},
	{"055550", "신한지주", KOSPI, "금융업"},
	{"086790", "하나금융지주", KOSPI, "금융업"},
	{"316140", "우리금융지주", KOSPI, "금융업"},
	{"000810", "삼성화재", KOSPI, "보험"},
	{"032830", "삼성생명", KOSPI, "보험"},
	{"017670", "SK텔레콤", KOSPI, "통신업"},
	{"030200", "KT", KOSPI, "통신업"},
	{"032640", "LG유플러스", KOSPI, "통신업"},
	{"033780", "KT&G", KOSPI, "음식료품"},
	{"015760", "한국전력", KOSPI, "전기가스업"},
	{"036460", "한국가스공사", KOSPI, "전기가스업"},
	{"005490", "POSCO홀딩스", KOSPI, "철강금속"},
	{"010130", "고려아연", KOSPI, "철강금속"},
	{"004020", "현대제철", KOSPI, "철강금속"},
	{"096770", "SK이노베이션", KOSPI, "화학"},
	{"010950", "S-Oil", KOSPI, "화학"},
	{"078930", "GS", KOSPI, "화학"},
	{"000720", "현대건설", KOSPI, "건설업"},
	{"028050", "삼성E&A", KOSPI, "건설업"},
	{"003490", "대한항공", KOSPI, "운수창고업"},
	{"086280", "현대글로비스", KOSPI, "운수창고업"},
	{"097950", "CJ제일제당", KOSPI, "음식료품"},
	{"271560", "오리온", KOSPI, "음식료품"},
	{"023530", "롯데쇼핑", KOSPI, "유통업"},
	{"139480", "이마트", KOSPI, "유통업"},
}

// Symbols returns the tracked universe for an analysis mode
func Symbols(mode domain.AnalysisMode) []Symbol {
	if mode == domain.ModeValue {
		return valueUniverse
	}
	return growthUniverse
}
