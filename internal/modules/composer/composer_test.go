package composer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/redchoeng/titan-kr/internal/domain"
	"github.com/redchoeng/titan-kr/internal/modules/regime"
	"github.com/redchoeng/titan-kr/internal/modules/rotation"
	"github.com/redchoeng/titan-kr/internal/modules/scoring/scorers"
)

func fptr(v float64) *float64 { return &v }

func TestContrarianAdjustment(t *testing.T) {
	t.Run("oversold quality sector", func(t *testing.T) {
		adj, _ := contrarianAdjustment(fptr(25), 40, "AI/반도체", nil)
		assert.Equal(t, 10, adj)
	})

	t.Run("oversold quality sector with capitulation volume", func(t *testing.T) {
		adj, comment := contrarianAdjustment(fptr(25), 40, "AI/반도체", fptr(2.5))
		assert.Equal(t, 12, adj)
		assert.Contains(t, comment, "투매출회")
	})

	t.Run("oversold non-quality sector", func(t *testing.T) {
		adj, _ := contrarianAdjustment(fptr(25), 40, "섬유/의류", nil)
		assert.Equal(t, 5, adj)
	})

	t.Run("oversold weak fundamentals", func(t *testing.T) {
		adj, _ := contrarianAdjustment(fptr(25), 28, "AI/반도체", nil)
		assert.Equal(t, 3, adj)

		adj, _ = contrarianAdjustment(fptr(25), 10, "AI/반도체", nil)
		assert.Equal(t, 0, adj)
	})

	t.Run("overheat", func(t *testing.T) {
		adj, _ := contrarianAdjustment(fptr(80), 40, "금융", fptr(1.5))
		assert.Equal(t, -8, adj)
	})

	t.Run("overheat without volume", func(t *testing.T) {
		adj, _ := contrarianAdjustment(fptr(80), 40, "금융", fptr(0.8))
		assert.Equal(t, -10, adj)
	})

	t.Run("mild overheat", func(t *testing.T) {
		adj, _ := contrarianAdjustment(fptr(72), 40, "금융", nil)
		assert.Equal(t, -3, adj)
	})

	t.Run("neutral band and nil rsi", func(t *testing.T) {
		adj, _ := contrarianAdjustment(fptr(50), 40, "금융", nil)
		assert.Equal(t, 0, adj)

		adj, _ = contrarianAdjustment(nil, 40, "금융", nil)
		assert.Equal(t, 0, adj)
	})

	t.Run("exactly one branch fires across the RSI range", func(t *testing.T) {
		for rsi := 5.0; rsi <= 95; rsi += 2.5 {
			adj, _ := contrarianAdjustment(fptr(rsi), 40, "AI/반도체", nil)
			switch {
			case rsi < 30:
				assert.Equal(t, 10, adj, "rsi %.1f", rsi)
			case rsi <= 70:
				assert.Equal(t, 0, adj, "rsi %.1f", rsi)
			case rsi <= 75:
				assert.Equal(t, -3, adj, "rsi %.1f", rsi)
			default:
				assert.Equal(t, -8, adj, "rsi %.1f", rsi)
			}
		}
	})
}

func TestLiquidityBonus(t *testing.T) {
	cases := []struct {
		name   string
		traded float64
		bonus  int
		label  string
	}{
		{"hot", 150_000_000_000, 5, "Hot"},
		{"active", 50_000_000_000, 3, "Active"},
		{"normal", 15_000_000_000, 0, "Normal"},
		{"thin", 5_000_000_000, -3, "Thin"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snap := domain.SymbolSnapshot{TradedValue: fptr(tc.traded)}
			bonus, label := liquidityBonus(snap)
			assert.Equal(t, tc.bonus, bonus)
			assert.Equal(t, tc.label, label)
		})
	}

	t.Run("falls back to price times volume", func(t *testing.T) {
		snap := domain.SymbolSnapshot{Price: 70_000, AvgVolume: 2_000_000}
		bonus, label := liquidityBonus(snap)
		assert.Equal(t, 5, bonus)
		assert.Equal(t, "Hot", label)
	})
}

func TestVerdictThresholds(t *testing.T) {
	t.Run("bull grades harder", func(t *testing.T) {
		assert.Equal(t, VerdictStrongBuy, verdict(85, regime.Bull))
		assert.Equal(t, VerdictBuy, verdict(80, regime.Bull))
		assert.Equal(t, VerdictHold, verdict(68, regime.Bull))
		assert.Equal(t, VerdictAvoid, verdict(64, regime.Bull))
	})

	t.Run("bear grades on a curve", func(t *testing.T) {
		assert.Equal(t, VerdictStrongBuy, verdict(75, regime.Bear))
		assert.Equal(t, VerdictBuy, verdict(65, regime.Bear))
		assert.Equal(t, VerdictHold, verdict(55, regime.Bear))
		assert.Equal(t, VerdictAvoid, verdict(54, regime.Bear))
	})

	t.Run("sideways uses the default thresholds", func(t *testing.T) {
		assert.Equal(t, VerdictStrongBuy, verdict(80, regime.Sideways))
		assert.Equal(t, VerdictBuy, verdict(70, regime.Sideways))
		assert.Equal(t, VerdictHold, verdict(60, regime.Sideways))
		assert.Equal(t, VerdictAvoid, verdict(59, regime.Sideways))
	})
}

func TestDowntrendPenalty(t *testing.T) {
	// Stronger fundamentals soften the penalty; bear regime softens it
	// further at every tier
	assert.Equal(t, 0.9, downtrendPenalty(45, regime.Bear))
	assert.Equal(t, 0.85, downtrendPenalty(45, regime.Neutral))
	assert.Equal(t, 0.8, downtrendPenalty(32, regime.Bear))
	assert.Equal(t, 0.7, downtrendPenalty(32, regime.Bull))
	assert.Equal(t, 0.7, downtrendPenalty(10, regime.Bear))
	assert.Equal(t, 0.5, downtrendPenalty(10, regime.Sideways))

	for _, fund := range []int{10, 32, 45} {
		assert.Greater(t, downtrendPenalty(fund, regime.Bear), downtrendPenalty(fund, regime.Neutral)-0.001)
	}
}

func TestBlendWeights(t *testing.T) {
	growth := NewComposer(domain.ModeGrowth)
	value := NewComposer(domain.ModeValue)

	fw, tw := growth.blendWeights(regime.Bull)
	assert.InDelta(t, 0.8, fw, 1e-9)
	assert.InDelta(t, 1.2, tw, 1e-9)

	fw, tw = growth.blendWeights(regime.Sideways)
	assert.InDelta(t, 0.9, fw, 1e-9)
	assert.InDelta(t, 1.1, tw, 1e-9)

	fw, tw = value.blendWeights(regime.Bear)
	assert.InDelta(t, 1.25, fw, 1e-9)
	assert.InDelta(t, 0.75, tw, 1e-9)
}

func TestComposeBreakdownSums(t *testing.T) {
	c := NewComposer(domain.ModeGrowth)

	in := Input{
		Snapshot: domain.SymbolSnapshot{
			Code: "005930", Name: "삼성전자",
			Price: 70_000, AvgVolume: 10_000_000,
		},
		Fundamental: scorers.FundamentalScore{
			Score:       42,
			SectorLabel: "AI/반도체",
			Components:  map[string]float64{"roe": 15, "opm": 10, "revenue_growth": 10, "fcf": 4, "policy": 3},
		},
		Technical: scorers.TechnicalScore{
			Score: 35,
			Components: map[string]float64{
				"trend": 14, "momentum": 8, "volume": 5,
				"volatility": 3, "pattern": 3, "relative_strength": 2,
			},
			Indicators: scorers.TechnicalIndicators{Price: 70_000, RSI: fptr(55)},
		},
		Regime:   regime.Detection{Regime: regime.Bull},
		Rotation: rotation.FromPhases(map[string]rotation.Phase{"반도체": rotation.PhaseInflow}),
	}

	got := c.Compose(in)

	bd := got.Breakdown
	assert.Equal(t, got.Score,
		bd.FundAdjusted+bd.TechAdjusted+bd.Contrarian+bd.Liquidity+bd.Rotation)

	// growth + bull: fund 0.8, tech 1.2, no downtrend penalty
	assert.Equal(t, 33, bd.FundAdjusted) // int(42 * 0.8)
	assert.Equal(t, 42, bd.TechAdjusted) // int(35 * 1.2)
	assert.Equal(t, 0, bd.Contrarian)
	assert.Equal(t, 5, bd.Liquidity) // 700B traded
	assert.Equal(t, 5, bd.Rotation)
	assert.Equal(t, 1.0, bd.DowntrendPenalty)
	assert.Equal(t, VerdictStrongBuy, got.Verdict)
}

func TestComposePillarClamp(t *testing.T) {
	c := NewComposer(domain.ModeGrowth)

	in := Input{
		Snapshot: domain.SymbolSnapshot{Code: "test", Price: 10_000, AvgVolume: 100},
		Fundamental: scorers.FundamentalScore{Score: 95, Components: map[string]float64{"roe": 95}},
		Technical: scorers.TechnicalScore{
			Score:      51,
			Components: map[string]float64{"trend": 51},
			Indicators: scorers.TechnicalIndicators{Price: 10_000, RSI: fptr(50)},
		},
		Regime:   regime.Detection{Regime: regime.Bull},
		Rotation: rotation.NewTable(nil),
	}

	got := c.Compose(in)
	assert.LessOrEqual(t, got.Breakdown.FundAdjusted, 65)
	assert.LessOrEqual(t, got.Breakdown.TechAdjusted, 65)
}

func TestComposeDowntrendPenaltyApplied(t *testing.T) {
	c := NewComposer(domain.ModeValue)

	in := Input{
		Snapshot: domain.SymbolSnapshot{Code: "test", Price: 10_000, AvgVolume: 100_000},
		Fundamental: scorers.FundamentalScore{Score: 45, Components: map[string]float64{"roe": 45}},
		Technical: scorers.TechnicalScore{
			Score:       20,
			IsDowntrend: true,
			Components:  map[string]float64{"trend": 20},
			Indicators:  scorers.TechnicalIndicators{Price: 10_000, RSI: fptr(45)},
		},
		Regime:   regime.Detection{Regime: regime.Neutral},
		Rotation: rotation.NewTable(nil),
	}

	got := c.Compose(in)
	assert.Equal(t, 0.85, got.Breakdown.DowntrendPenalty)
	// value + neutral: tech weight (0.7+1.0)/2 = 0.85; int(20*0.85*0.85) = 14
	assert.Equal(t, 14, got.Breakdown.TechAdjusted)
	assert.Contains(t, got.Breakdown.Comments, "하락추세 감점")
}
