// Package scoring holds the thresholds, weights and sector tables for the
// composite KR investability score.
package scoring

// =============================================================================
// Screening thresholds
// =============================================================================

const (
	MinMarketCap = 1_000_000_000_000 // ₩1T
	MinPrice     = 1_000             // ₩1,000
	MinAvgVolume = 100_000           // 100k shares
)

// =============================================================================
// Fundamental score point budgets
// =============================================================================

const (
	// Growth mode
	GrowthMaxROE           = 15
	GrowthMaxOPM           = 10
	GrowthMaxFCF           = 10
	GrowthMaxRevenueGrowth = 10

	// PEG bonus tiers
	PEGStrongThreshold = 1.0
	PEGStrongBonus     = 5
	PEGGoodThreshold   = 1.5
	PEGGoodBonus       = 3

	// High-growth reinvestment correction: revenue growth above this percent
	// with a negative ROE/OPM earns back a fraction of that metric's budget
	HighGrowthThreshold      = 30.0
	HighGrowthRecognitionPct = 0.4

	// Value mode
	ValueMaxDividendYield  = 10
	ValueMaxDividendGrowth = 5
	ValueMaxValuation      = 12
	ValueMaxROE            = 8
	ValueMaxDebtEquity     = 8
	ValueMaxFCFYield       = 5
	ValueMaxBeta           = 5

	// Dividend aristocrat / mega-cap handling
	AristocratYieldFloor   = 4
	AristocratFlatBonus    = 4
	MegaCapThreshold       = 50_000_000_000_000 // ₩50T
	ExcessivePayoutHaircut = 0.7                // payout > 100% keeps 70% of yield points

	// Valuation premium multiplier (applied to inverse-score thresholds)
	PremiumBase       = 1.0
	PremiumMegaCap    = 0.2
	PremiumHighROE    = 0.2
	PremiumAristocrat = 0.1
	PremiumCap        = 1.6
	HighROEThreshold  = 15.0 // percent

	// Policy bonus/penalty
	PolicyBonus   = 3
	PolicyPenalty = -3
)

// Sector tier points (growth and value tiers share the ladder)
const (
	SectorTier1 = 10
	SectorTier2 = 8
	SectorTier3 = 5
	SectorTier4 = 3
	SectorOther = 1
)

// =============================================================================
// Technical score point budgets
// =============================================================================

const (
	MinTechnicalBars = 120

	// Trend (16)
	ScoreMA120       = 2
	ScoreMA60        = 2
	ScoreMA20        = 2
	ScoreMA5         = 1
	ScoreMACDBullish = 4
	ScoreMACDSignal  = 2
	ScoreIchimokuMax = 3
	ScoreADXStrong   = 2

	// A trend score below this marks the symbol as in a downtrend
	DowntrendThreshold = 10

	// Momentum (12)
	ScoreRSIOptimal   = 5
	ScoreRSIGood      = 3
	ScoreRSIOversold  = 2
	ScoreStochOptimal = 5
	ScoreStochCross   = 2
	ScoreMFIOversold  = 2

	// Volume (8)
	ScoreVolumeExtreme  = 4
	ScoreVolumeHigh     = 3
	ScoreVolumeModerate = 2
	ScoreVolumeNormal   = 1
	ScoreOBVRising      = 4

	// Volatility (5)
	ScoreBBMidBand   = 3
	ScoreBBLowerBand = 3
	ScoreATRExpand   = 2

	// Pattern (5)
	ScorePricePosition = 5

	// Relative strength vs benchmark (5)
	ScoreRSStrong = 5
	ScoreRSGood   = 3
	ScoreRSNeutral = 1
	MinRelStrengthBars = 60
)

// RSI bands
const (
	RSIOversold   = 30.0
	RSIOptimalMin = 40.0
	RSIOptimalMax = 60.0
	RSIGoodMax    = 70.0
	RSIOverbought = 70.0
	RSIOverheat   = 75.0
)

// =============================================================================
// Composer constants
// =============================================================================

const (
	// Mode base weights
	GrowthFundWeight = 0.8
	GrowthTechWeight = 1.2
	ValueFundWeight  = 1.3
	ValueTechWeight  = 0.7

	// Hard ceiling on each regime-weighted pillar
	PillarCap = 65

	// Contrarian adjustments
	OversoldQualityBonus    = 10
	OversoldStandardBonus   = 5
	OversoldWeakBonus       = 3
	CapitulationVolumeBonus = 2
	OverheatPenalty         = -8
	OverheatNoVolumePenalty = -2
	MildOverheatPenalty     = -3

	ContrarianFundStrong = 35
	ContrarianFundWeak   = 25
	CapitulationVolumeRatio = 2.0

	// Liquidity (traded value) tiers, KRW
	TradingValueHot    = 100_000_000_000 // ₩100B
	TradingValueActive = 30_000_000_000
	TradingValueNormal = 10_000_000_000
	BonusTradingHot    = 5
	BonusTradingActive = 3
	BonusTradingThin   = -3
)

// Swing level derivation
const (
	SwingLookbackBars  = 60
	SwingConfirmBars   = 5
	MaxRiskPct         = 0.07 // stop >= buy × 0.93
	MinStopDistancePct = 0.02 // stop <= buy × 0.98
	MinRewardRisk      = 2.0
	BreakoutKFactor    = 0.5
)
