package scorers

import (
	"math"

	"github.com/redchoeng/titan-kr/internal/domain"
	"github.com/redchoeng/titan-kr/internal/modules/scoring"
)

// FundamentalsScorer produces the fundamental pillar of the composite score.
// Mode is fixed per analysis batch.
type FundamentalsScorer struct{}

// FundamentalScore is the fundamental sub-score with its itemized breakdown.
// Summing Components always equals Score.
type FundamentalScore struct {
	Score       int                `json:"score"`
	Components  map[string]float64 `json:"components"`
	SectorLabel string             `json:"sector_label"`
	Comments    []string           `json:"comments,omitempty"`
}

// NewFundamentalsScorer creates a new fundamentals scorer
func NewFundamentalsScorer() *FundamentalsScorer {
	return &FundamentalsScorer{}
}

// Calculate scores a snapshot under the given analysis mode
func (fs *FundamentalsScorer) Calculate(snap domain.SymbolSnapshot, mode domain.AnalysisMode) FundamentalScore {
	if mode == domain.ModeValue {
		return fs.scoreValue(snap)
	}
	return fs.scoreGrowth(snap)
}

// scoreGrowth weighs profitability and expansion. The sector itself earns no
// fixed points here; the rotation bonus covers sector momentum downstream.
func (fs *FundamentalsScorer) scoreGrowth(snap domain.SymbolSnapshot) FundamentalScore {
	components := map[string]float64{}
	var comments []string

	roeThresh := scoring.ROEThresholds.Resolve(snap.Sector)
	components["roe"] = GradientScore(snap.ROE, roeThresh.Excellent, roeThresh.Good, scoring.GrowthMaxROE)

	opmThresh := scoring.OPMThresholds.Resolve(snap.Sector)
	components["opm"] = GradientScore(snap.OperatingMargin, opmThresh.Excellent, opmThresh.Good, scoring.GrowthMaxOPM)

	components["fcf"] = fs.scoreFreeCashFlow(snap)

	growthThresh := scoring.RevenueGrowthThresholds.Resolve(snap.Sector)
	components["revenue_growth"] = GradientScore(snap.RevenueGrowth, growthThresh.Excellent, growthThresh.Good, scoring.GrowthMaxRevenueGrowth)

	if snap.PEGRatio != nil && *snap.PEGRatio > 0 {
		switch {
		case *snap.PEGRatio < scoring.PEGStrongThreshold:
			components["peg"] = scoring.PEGStrongBonus
		case *snap.PEGRatio < scoring.PEGGoodThreshold:
			components["peg"] = scoring.PEGGoodBonus
		}
	}

	// Aggressive reinvestors report negative margins while revenue compounds.
	// Recognize part of the forfeited budget instead of zeroing them out.
	if snap.RevenueGrowth != nil && *snap.RevenueGrowth > scoring.HighGrowthThreshold {
		var recognition float64
		if components["roe"] == 0 && snap.ROE != nil && *snap.ROE < 0 {
			recognition += math.Round(scoring.GrowthMaxROE * scoring.HighGrowthRecognitionPct)
		}
		if components["opm"] == 0 && snap.OperatingMargin != nil && *snap.OperatingMargin < 0 {
			recognition += math.Round(scoring.GrowthMaxOPM * scoring.HighGrowthRecognitionPct)
		}
		if recognition > 0 {
			components["high_growth_bonus"] = recognition
			comments = append(comments, "고성장 재투자 인정")
		}
	}

	tier := scoring.GrowthSectorScore(snap.Sector, snap.Industry, snap.Name)

	if bonus, comment := scoring.ResolvePolicyBonus(snap.Sector, snap.Industry, snap.Name); bonus != 0 {
		components["policy"] = float64(bonus)
		comments = append(comments, comment)
	}

	return FundamentalScore{
		Score:       sumComponents(components),
		Components:  components,
		SectorLabel: tier.Label,
		Comments:    comments,
	}
}

// scoreValue weighs income, valuation and balance-sheet safety
func (fs *FundamentalsScorer) scoreValue(snap domain.SymbolSnapshot) FundamentalScore {
	components := map[string]float64{}
	var comments []string

	aristocrat := scoring.IsDividendAristocrat(snap.Name)
	megaCap := snap.MarketCap >= scoring.MegaCapThreshold

	yieldPts, yieldComments := fs.scoreDividendYield(snap, aristocrat, megaCap)
	components["dividend_yield"] = yieldPts
	comments = append(comments, yieldComments...)

	components["dividend_growth"] = fs.scoreDividendGrowth(snap, aristocrat)

	components["valuation"] = fs.scoreValuation(snap, aristocrat, megaCap)

	roeThresh := scoring.ROEThresholds.Resolve(snap.Sector)
	components["roe"] = GradientScore(snap.ROE, roeThresh.Excellent, roeThresh.Good, scoring.ValueMaxROE)

	components["debt_equity"] = fs.scoreDebtEquity(snap)

	components["fcf_yield"] = fs.scoreFCFYieldTiered(snap, scoring.ValueMaxFCFYield)

	if snap.Beta != nil {
		switch {
		case *snap.Beta <= 0.8:
			components["beta"] = 5
		case *snap.Beta <= 1.0:
			components["beta"] = 4
		case *snap.Beta <= 1.2:
			components["beta"] = 2
		}
	}

	tier := scoring.ValueSectorScore(snap.Sector, snap.Industry)
	components["sector_tier"] = float64(tier.Points)

	if aristocrat {
		components["aristocrat"] = scoring.AristocratFlatBonus
		comments = append(comments, "배당귀족")
	}

	if bonus, comment := scoring.ResolvePolicyBonus(snap.Sector, snap.Industry, snap.Name); bonus != 0 {
		components["policy"] = float64(bonus)
		comments = append(comments, comment)
	}

	return FundamentalScore{
		Score:       sumComponents(components),
		Components:  components,
		SectorLabel: tier.Label,
		Comments:    comments,
	}
}

func (fs *FundamentalsScorer) scoreDividendYield(snap domain.SymbolSnapshot, aristocrat, megaCap bool) (float64, []string) {
	var comments []string
	thresh := scoring.DividendYieldThresholds.Resolve(snap.Sector)
	pts := GradientScore(snap.DividendYield, thresh.Excellent, thresh.Good, scoring.ValueMaxDividendYield)

	// A payout above earnings is not sustainable income
	if snap.PayoutRatio != nil && *snap.PayoutRatio > 100 {
		pts = math.Round(pts * scoring.ExcessivePayoutHaircut)
		comments = append(comments, "배당성향 과다")
	}

	if (aristocrat || megaCap) && pts < scoring.AristocratYieldFloor {
		pts = scoring.AristocratYieldFloor
	}
	return pts, comments
}

func (fs *FundamentalsScorer) scoreDividendGrowth(snap domain.SymbolSnapshot, aristocrat bool) float64 {
	if aristocrat {
		return scoring.ValueMaxDividendGrowth
	}
	pts := 0.0
	healthyPayout := snap.PayoutRatio != nil && *snap.PayoutRatio > 0 && *snap.PayoutRatio <= 70
	if snap.FiveYearAvgDivYield != nil {
		pts++
	}
	if healthyPayout {
		pts++
	}
	if snap.EarningsGrowth != nil && *snap.EarningsGrowth > 0 {
		pts++
	}
	if snap.EarningsGrowth != nil && *snap.EarningsGrowth > 10 && healthyPayout {
		pts++
	}
	return math.Min(pts, scoring.ValueMaxDividendGrowth)
}

// scoreValuation takes the best of the applicable multiples. Thresholds are
// loosened by a premium multiplier so quality mega-caps are not punished for
// trading at the premium they have always carried.
func (fs *FundamentalsScorer) scoreValuation(snap domain.SymbolSnapshot, aristocrat, megaCap bool) float64 {
	premium := scoring.PremiumBase
	if megaCap {
		premium += scoring.PremiumMegaCap
	}
	if snap.ROE != nil && *snap.ROE >= scoring.HighROEThreshold {
		premium += scoring.PremiumHighROE
	}
	if aristocrat {
		premium += scoring.PremiumAristocrat
	}
	premium = math.Min(premium, scoring.PremiumCap)

	financial := scoring.IsFinancialSector(snap.Sector, snap.Industry)
	materials := scoring.IsMaterialsSector(snap.Sector, snap.Industry)

	best := 0.0

	perThresh := scoring.PERThresholds.Resolve(snap.Sector)
	best = math.Max(best, InverseGradientScore(snap.TrailingPER,
		perThresh.GoodUpper*premium, perThresh.FairUpper*premium, scoring.ValueMaxValuation))

	if !financial {
		evThresh := scoring.EVEBITDAThresholds.Resolve(snap.Sector)
		best = math.Max(best, InverseGradientScore(snap.EVToEBITDA,
			evThresh.GoodUpper*premium, evThresh.FairUpper*premium, scoring.ValueMaxValuation))
	}

	if financial || materials {
		pbThresh := scoring.PBThresholds.Resolve(snap.Sector)
		best = math.Max(best, InverseGradientScore(snap.PriceToBook,
			pbThresh.GoodUpper*premium, pbThresh.FairUpper*premium, scoring.ValueMaxValuation))
	}

	return best
}

func (fs *FundamentalsScorer) scoreDebtEquity(snap domain.SymbolSnapshot) float64 {
	if snap.DebtToEquity == nil {
		// Leverage is the business model for financials; absence of the
		// ratio there is a data artifact, not a red flag
		if scoring.IsFinancialSector(snap.Sector, snap.Industry) {
			return math.Round(scoring.ValueMaxDebtEquity * 0.5)
		}
		return 0
	}
	thresh := scoring.DebtEquityThresholds.Resolve(snap.Sector)
	return InverseGradientScore(snap.DebtToEquity, thresh.GoodUpper, thresh.FairUpper, scoring.ValueMaxDebtEquity)
}

// scoreFreeCashFlow prefers FCF margin against sector thresholds, falling
// back to a tiered FCF yield when revenue is unavailable
func (fs *FundamentalsScorer) scoreFreeCashFlow(snap domain.SymbolSnapshot) float64 {
	if snap.FreeCashFlow != nil && snap.TotalRevenue != nil && *snap.TotalRevenue > 0 {
		margin := *snap.FreeCashFlow / *snap.TotalRevenue * 100
		thresh := scoring.FCFMarginThresholds.Resolve(snap.Sector)
		return GradientScore(&margin, thresh.Excellent, thresh.Good, scoring.GrowthMaxFCF)
	}
	if snap.FreeCashFlow != nil && snap.MarketCap > 0 {
		yield := *snap.FreeCashFlow / snap.MarketCap * 100
		switch {
		case yield > 5:
			return 7
		case yield > 3:
			return 4
		case yield > 1:
			return 2
		}
	}
	return 0
}

func (fs *FundamentalsScorer) scoreFCFYieldTiered(snap domain.SymbolSnapshot, maxPoints float64) float64 {
	if snap.FreeCashFlow == nil || snap.MarketCap <= 0 {
		return 0
	}
	yield := *snap.FreeCashFlow / snap.MarketCap * 100
	switch {
	case yield > 5:
		return maxPoints
	case yield > 3:
		return math.Round(maxPoints * 0.6)
	case yield > 1:
		return math.Round(maxPoints * 0.2)
	}
	return 0
}

func sumComponents(components map[string]float64) int {
	total := 0.0
	for _, v := range components {
		total += v
	}
	return int(total)
}
