// Package composer folds the fundamental and technical pillars into the final
// 0-100 investability score, verdict and trade levels.
package composer

import (
	"github.com/redchoeng/titan-kr/internal/domain"
	"github.com/redchoeng/titan-kr/internal/modules/regime"
	"github.com/redchoeng/titan-kr/internal/modules/rotation"
	"github.com/redchoeng/titan-kr/internal/modules/scoring"
	"github.com/redchoeng/titan-kr/internal/modules/scoring/scorers"
)

// Verdict labels
const (
	VerdictStrongBuy = "Strong Buy ★"
	VerdictBuy       = "Buy"
	VerdictHold      = "Hold"
	VerdictAvoid     = "Avoid"
)

// Input is everything known about one symbol at composition time. Regime and
// Rotation are batch-level values computed before the scoring fan-out.
type Input struct {
	Snapshot    domain.SymbolSnapshot
	History     domain.PriceHistory
	Fundamental scorers.FundamentalScore
	Technical   scorers.TechnicalScore
	Regime      regime.Detection
	Rotation    *rotation.Table
}

// Breakdown itemizes every component of the composite. The adjusted pillars
// plus the three adjustments always sum to the final score.
type Breakdown struct {
	FundRaw          int     `json:"fund_raw"`
	TechRaw          int     `json:"tech_raw"`
	FundWeight       float64 `json:"fund_weight"`
	TechWeight       float64 `json:"tech_weight"`
	DowntrendPenalty float64 `json:"downtrend_penalty"` // 1.0 when not applied
	FundAdjusted     int     `json:"fund_adjusted"`
	TechAdjusted     int     `json:"tech_adjusted"`
	Contrarian       int     `json:"contrarian"`
	Liquidity        int     `json:"liquidity"`
	LiquidityLabel   string  `json:"liquidity_label"`
	Rotation         int     `json:"rotation"`
	RotationPhase    string  `json:"rotation_phase"`

	Fundamental scorers.FundamentalScore `json:"fundamental"`
	Technical   scorers.TechnicalScore   `json:"technical"`
	Regime      regime.Regime            `json:"regime"`
	Comments    []string                 `json:"comments,omitempty"`
}

// Result is the final scored output for one symbol. Built once per analysis
// pass and never mutated afterwards.
type Result struct {
	Code      string       `json:"code"`
	Name      string       `json:"name"`
	Score     int          `json:"score"`
	Verdict   string       `json:"verdict"`
	Levels    *TradeLevels `json:"levels,omitempty"`
	Comment   string       `json:"comment,omitempty"`
	Breakdown Breakdown    `json:"breakdown"`
}

// Composer orchestrates regime reweighting and the score adjustments.
// Mode is fixed per batch.
type Composer struct {
	mode domain.AnalysisMode
}

// NewComposer creates a composer for the given analysis mode
func NewComposer(mode domain.AnalysisMode) *Composer {
	return &Composer{mode: mode}
}

// Compose produces the final score, verdict and trade levels for one symbol
func (c *Composer) Compose(in Input) Result {
	bd := Breakdown{
		FundRaw:     in.Fundamental.Score,
		TechRaw:     in.Technical.Score,
		Fundamental: in.Fundamental,
		Technical:   in.Technical,
		Regime:      in.Regime.Regime,
	}
	bd.Comments = append(bd.Comments, in.Fundamental.Comments...)
	bd.Comments = append(bd.Comments, in.Technical.Comments...)

	// Down-trend penalty hits the technical pillar before reweighting.
	// Strong fundamentals soften it; a bear regime softens it further
	// since everything trends down in a bear market.
	bd.DowntrendPenalty = 1.0
	tech := float64(in.Technical.Score)
	if in.Technical.IsDowntrend {
		bd.DowntrendPenalty = downtrendPenalty(in.Fundamental.Score, in.Regime.Regime)
		tech *= bd.DowntrendPenalty
		bd.Comments = append(bd.Comments, "하락추세 감점")
	}

	bd.FundWeight, bd.TechWeight = c.blendWeights(in.Regime.Regime)
	bd.FundAdjusted = clampPillar(int(float64(in.Fundamental.Score) * bd.FundWeight))
	bd.TechAdjusted = clampPillar(int(tech * bd.TechWeight))

	var comment string
	bd.Contrarian, comment = contrarianAdjustment(
		in.Technical.Indicators.RSI,
		in.Fundamental.Score,
		in.Fundamental.SectorLabel,
		in.Technical.Indicators.VolumeRatio,
	)
	if comment != "" {
		bd.Comments = append(bd.Comments, comment)
	}

	bd.Liquidity, bd.LiquidityLabel = liquidityBonus(in.Snapshot)

	rot := in.Rotation.Resolve(in.Fundamental.SectorLabel)
	bd.Rotation = rot.Bonus
	bd.RotationPhase = rot.Phase

	score := bd.FundAdjusted + bd.TechAdjusted + bd.Contrarian + bd.Liquidity + bd.Rotation
	if score < 0 {
		// Keep the invariant: absorb the clamp into the liquidity line
		// rather than letting the itemized sum drift from the total
		bd.Liquidity -= score
		score = 0
	}

	var levels *TradeLevels
	if !in.Technical.Insufficient {
		levels = DeriveLevels(in.History, in.Technical.Indicators, bd.Contrarian)
	}

	return Result{
		Code:      in.Snapshot.Code,
		Name:      in.Snapshot.Name,
		Score:     score,
		Verdict:   verdict(score, in.Regime.Regime),
		Levels:    levels,
		Comment:   analystComment(in.Snapshot, in.Technical.Indicators, bd.Contrarian, levels),
		Breakdown: bd,
	}
}

func downtrendPenalty(fundScore int, r regime.Regime) float64 {
	bear := r == regime.Bear
	switch {
	case fundScore >= 40:
		if bear {
			return 0.9
		}
		return 0.85
	case fundScore >= 30:
		if bear {
			return 0.8
		}
		return 0.7
	default:
		if bear {
			return 0.7
		}
		return 0.5
	}
}

// blendWeights averages the mode base weights with the regime weights
func (c *Composer) blendWeights(r regime.Regime) (fundW, techW float64) {
	baseFund, baseTech := scoring.GrowthFundWeight, scoring.GrowthTechWeight
	if c.mode == domain.ModeValue {
		baseFund, baseTech = scoring.ValueFundWeight, scoring.ValueTechWeight
	}

	regimeFund, regimeTech := 1.0, 1.0
	switch r {
	case regime.Bull:
		regimeFund, regimeTech = 0.8, 1.2
	case regime.Bear:
		regimeFund, regimeTech = 1.2, 0.8
	}

	return (baseFund + regimeFund) / 2, (baseTech + regimeTech) / 2
}

func clampPillar(v int) int {
	if v > scoring.PillarCap {
		return scoring.PillarCap
	}
	return v
}

// contrarianAdjustment rewards statistically oversold quality names and
// penalizes overbought ones. Exactly one branch fires for a given RSI.
func contrarianAdjustment(rsi *float64, fundScore int, sectorLabel string, volumeRatio *float64) (int, string) {
	if rsi == nil {
		return 0, ""
	}

	switch {
	case *rsi < scoring.RSIOversold:
		if fundScore >= scoring.ContrarianFundStrong {
			if scoring.IsQualitySector(sectorLabel) {
				adj := scoring.OversoldQualityBonus
				if volumeRatio != nil && *volumeRatio >= scoring.CapitulationVolumeRatio {
					adj += scoring.CapitulationVolumeBonus
					return adj, "우량주 과매도 + 투매출회"
				}
				return adj, "우량주 과매도 역발상"
			}
			return scoring.OversoldStandardBonus, "과매도 역발상"
		}
		if fundScore >= scoring.ContrarianFundWeak {
			return scoring.OversoldWeakBonus, "약한 저평가"
		}
		return 0, ""

	case *rsi > scoring.RSIOverheat:
		adj := scoring.OverheatPenalty
		if volumeRatio != nil && *volumeRatio < 1.0 {
			adj += scoring.OverheatNoVolumePenalty
			return adj, "과열 + 거래량 공백"
		}
		return adj, "과열 경고"

	case *rsi > scoring.RSIOverbought:
		return scoring.MildOverheatPenalty, "단기 과열"
	}

	return 0, ""
}

// liquidityBonus tiers daily traded value, falling back to price x volume
// when the field is absent
func liquidityBonus(snap domain.SymbolSnapshot) (int, string) {
	traded := snap.Price * snap.AvgVolume
	if snap.TradedValue != nil {
		traded = *snap.TradedValue
	}

	switch {
	case traded >= scoring.TradingValueHot:
		return scoring.BonusTradingHot, "Hot"
	case traded >= scoring.TradingValueActive:
		return scoring.BonusTradingActive, "Active"
	case traded >= scoring.TradingValueNormal:
		return 0, "Normal"
	default:
		return scoring.BonusTradingThin, "Thin"
	}
}

// verdict maps a score to its label using regime-dependent thresholds.
// Bear markets grade on a curve; bull markets demand more.
func verdict(score int, r regime.Regime) string {
	strongBuy, buy, hold := 80, 70, 60
	switch r {
	case regime.Bull:
		strongBuy, buy, hold = 85, 75, 65
	case regime.Bear:
		strongBuy, buy, hold = 75, 65, 55
	}

	switch {
	case score >= strongBuy:
		return VerdictStrongBuy
	case score >= buy:
		return VerdictBuy
	case score >= hold:
		return VerdictHold
	default:
		return VerdictAvoid
	}
}
