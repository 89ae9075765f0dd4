package scoring

import "strings"

// SectorMatch is the outcome of a tier rule lookup
type SectorMatch struct {
	Points int
	Label  string
}

// tierRule matches keywords against a haystack in documented priority order.
// Order matters: overlapping keywords (battery names vs 전기전자) make outcomes
// order-dependent, so rules are evaluated top to bottom and the first hit wins.
type tierRule struct {
	keywords []string
	scope    matchScope
	points   int
	label    string
}

type matchScope int

const (
	scopeNameOnly matchScope = iota // company name only
	scopeSectorIndustry
	scopeAll // sector + industry + name
)

func matchHaystack(rule tierRule, sector, industry, name string) bool {
	var hay string
	switch rule.scope {
	case scopeNameOnly:
		hay = name
	case scopeSectorIndustry:
		hay = sector + industry
	default:
		hay = sector + industry + name
	}
	for _, kw := range rule.keywords {
		if strings.Contains(hay, kw) {
			return true
		}
	}
	return false
}

var growthTierRules = []tierRule{
	// Battery names checked before the generic electronics keyword
	{[]string{"에너지솔루션", "sdi", "에코프로", "포스코퓨처엠", "아이이테크"}, scopeNameOnly, SectorTier1, "2차전지"},
	{[]string{"2차전지", "배터리"}, scopeAll, SectorTier1, "2차전지"},
	{[]string{"삼성전자", "sk하이닉스", "한미반도체", "hpsp", "리노공업"}, scopeNameOnly, SectorTier1, "AI/반도체"},
	{[]string{"반도체", "semiconductor"}, scopeAll, SectorTier1, "AI/반도체"},
	{[]string{"전기전자", "전자"}, scopeSectorIndustry, SectorTier1, "전기전자"},
	{[]string{"바이오", "의약", "제약", "헬스"}, scopeAll, SectorTier2, "바이오"},
	{[]string{"네이버", "카카오", "크래프톤", "naver"}, scopeNameOnly, SectorTier2, "K-플랫폼"},
	{[]string{"방산", "항공우주", "에어로", "넥스원", "한화시스템"}, scopeAll, SectorTier2, "방산"},
	{[]string{"조선", "해양", "중공업", "한화오션"}, scopeAll, SectorTier2, "조선"},
	{[]string{"게임", "엔씨", "넷마블", "펄어비스", "위메이드"}, scopeAll, SectorTier2, "게임"},
	{[]string{"자동차", "모비스", "기아", "현대차"}, scopeAll, SectorTier3, "자동차"},
	{[]string{"화학", "소재"}, scopeSectorIndustry, SectorTier3, "화학/소재"},
	{[]string{"철강", "금속"}, scopeSectorIndustry, SectorTier3, "철강"},
	{[]string{"소프트웨어", "it서비스", "정보기술"}, scopeSectorIndustry, SectorTier3, "IT서비스"},
	{[]string{"건설"}, scopeSectorIndustry, SectorTier3, "건설"},
	{[]string{"통신"}, scopeSectorIndustry, SectorTier3, "통신"},
	{[]string{"유틸리티", "전력", "전기가스", "가스"}, scopeSectorIndustry, SectorTier4, "유틸리티"},
	{[]string{"음식", "식품", "음료"}, scopeSectorIndustry, SectorTier4, "음식료"},
	{[]string{"섬유", "의류", "패션"}, scopeSectorIndustry, SectorTier4, "섬유/의류"},
}

var valueTierRules = []tierRule{
	{[]string{"금융", "은행", "보험", "증권"}, scopeSectorIndustry, SectorTier1, "금융"},
	{[]string{"통신", "텔레콤"}, scopeSectorIndustry, SectorTier1, "통신"},
	{[]string{"유틸리티", "전력", "전기가스", "가스"}, scopeSectorIndustry, SectorTier2, "유틸리티"},
	{[]string{"건설", "인프라"}, scopeSectorIndustry, SectorTier3, "건설"},
	{[]string{"에너지", "석유", "정유"}, scopeSectorIndustry, SectorTier3, "에너지"},
	{[]string{"소재", "화학", "철강", "금속"}, scopeSectorIndustry, SectorTier3, "소재"},
	{[]string{"운수", "항공", "해운", "물류"}, scopeSectorIndustry, SectorTier3, "운수/물류"},
	{[]string{"음식", "식품", "유통"}, scopeSectorIndustry, SectorTier3, "소비재"},
	{[]string{"전자", "반도체", "it", "소프트웨어", "게임"}, scopeSectorIndustry, SectorTier4, "기술주"},
}

// GrowthSectorScore resolves the growth-mode sector tier
func GrowthSectorScore(sector, industry, name string) SectorMatch {
	return resolveTier(growthTierRules, sector, industry, name)
}

// ValueSectorScore resolves the value-mode sector tier
func ValueSectorScore(sector, industry string) SectorMatch {
	return resolveTier(valueTierRules, sector, industry, "")
}

func resolveTier(rules []tierRule, sector, industry, name string) SectorMatch {
	s := strings.ToLower(sector)
	i := strings.ToLower(industry)
	n := strings.ToLower(name)
	for _, rule := range rules {
		if matchHaystack(rule, s, i, n) {
			return SectorMatch{Points: rule.points, Label: rule.label}
		}
	}
	label := sector
	if label == "" {
		label = "기타"
	}
	return SectorMatch{Points: SectorOther, Label: label}
}

// policyRule maps government policy tailwinds/headwinds to a score adjustment
type policyRule struct {
	keywords []string
	scope    matchScope
	bonus    int
	comment  string
}

var policyRules = []policyRule{
	// K-semiconductor: tax incentives, Yongin cluster
	{[]string{"삼성전자", "sk하이닉스", "한미반도체", "hpsp", "리노공업"}, scopeNameOnly, PolicyBonus, "K-반도체 정책수혜"},
	{[]string{"반도체"}, scopeSectorIndustry, PolicyBonus, "K-반도체 정책수혜"},
	// K-battery: IRA / EU subsidies
	{[]string{"에너지솔루션", "삼성sdi", "에코프로", "포스코퓨처엠"}, scopeNameOnly, PolicyBonus, "K-배터리 정책수혜"},
	{[]string{"2차전지", "배터리"}, scopeAll, PolicyBonus, "K-배터리 정책수혜"},
	// K-defense export cycle
	{[]string{"한화에어로", "lig넥스원", "한국항공우주", "한화시스템", "현대로템", "풍산"}, scopeNameOnly, PolicyBonus, "K-방산 수출호조"},
	{[]string{"방산", "항공우주"}, scopeSectorIndustry, PolicyBonus, "K-방산 수출호조"},
	// Shipbuilding: green fleet replacement
	{[]string{"한국조선", "hd현대중공업", "한화오션", "hd현대미포"}, scopeNameOnly, PolicyBonus, "조선 친환경전환"},
	{[]string{"조선"}, scopeSectorIndustry, PolicyBonus, "조선 친환경전환"},
	// Corporate value-up program (low-PBR financials)
	{[]string{"금융", "은행", "보험", "증권"}, scopeSectorIndustry, PolicyBonus, "밸류업 프로그램"},
	// China exposure headwind (cosmetics, duty-free)
	{[]string{"아모레", "이니스프리", "면세"}, scopeNameOnly, PolicyPenalty, "중국 의존도 리스크"},
}

// ResolvePolicyBonus returns the policy adjustment and its comment, or (0, "")
func ResolvePolicyBonus(sector, industry, name string) (int, string) {
	s := strings.ToLower(sector)
	i := strings.ToLower(industry)
	n := strings.ToLower(name)
	for _, rule := range policyRules {
		// Semiconductor equipment makers are not direct policy beneficiaries
		if rule.comment == "K-반도체 정책수혜" && rule.scope == scopeSectorIndustry &&
			strings.Contains(s+i, "장비") {
			continue
		}
		if matchHaystack(tierRule{keywords: rule.keywords, scope: rule.scope}, s, i, n) {
			return rule.bonus, rule.comment
		}
	}
	return 0, ""
}

// Quality sectors eligible for the full oversold contrarian bonus
var qualitySectors = map[string]bool{
	"AI/반도체": true,
	"전기전자":   true,
	"2차전지":   true,
	"바이오":    true,
	"K-플랫폼":  true,
	"방산":     true,
	"조선":     true,
	"금융":     true,
	"통신":     true,
	"유틸리티":   true,
}

// IsQualitySector reports whether a resolved sector label is on the
// contrarian allow-list
func IsQualitySector(label string) bool {
	return qualitySectors[label]
}

// IsFinancialSector reports whether a raw sector/industry string is financial.
// Financials skip EV/EBITDA valuation and get a D/E floor.
func IsFinancialSector(sector, industry string) bool {
	hay := strings.ToLower(sector + industry)
	for _, kw := range []string{"금융", "은행", "보험", "증권"} {
		if strings.Contains(hay, kw) {
			return true
		}
	}
	return false
}

// IsMaterialsSector reports whether P/B valuation applies
func IsMaterialsSector(sector, industry string) bool {
	hay := strings.ToLower(sector + industry)
	for _, kw := range []string{"철강", "소재", "화학", "금속"} {
		if strings.Contains(hay, kw) {
			return true
		}
	}
	return false
}

// Long-running dividend growers on the KR market. Name-keyword match, used for
// the yield floor and the aristocrat bonus in value mode.
var dividendAristocratNames = []string{
	"삼성화재", "kb금융", "신한지주", "하나금융", "sk텔레콤", "kt&g", "고려아연", "리노공업",
}

// IsDividendAristocrat reports whether the company name matches the KR
// dividend-aristocrat list
func IsDividendAristocrat(name string) bool {
	n := strings.ToLower(name)
	for _, kw := range dividendAristocratNames {
		if strings.Contains(n, kw) {
			return true
		}
	}
	return false
}
