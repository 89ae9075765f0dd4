package composer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redchoeng/titan-kr/internal/domain"
	"github.com/redchoeng/titan-kr/internal/modules/scoring/scorers"
	"github.com/redchoeng/titan-kr/pkg/formulas"
)

func levelHistory() domain.PriceHistory {
	return domain.NewPriceHistory([]domain.Bar{
		{Date: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), Open: 99, High: 102, Low: 98, Close: 100, Volume: 1_000_000},
	})
}

func baseIndicators() scorers.TechnicalIndicators {
	return scorers.TechnicalIndicators{
		Price:   100,
		MA20:    fptr(98),
		MA60:    fptr(95),
		RSI:     fptr(55),
		ATR:     fptr(2),
		BBUpper: fptr(105),
		BBLower: fptr(98.5),
		Swings: formulas.SwingPoints{
			Lows:  []float64{92, 96},
			Highs: []float64{104, 110},
		},
	}
}

func assertValidTriple(t *testing.T, lv *TradeLevels) {
	t.Helper()
	require.NotNil(t, lv)
	assert.Greater(t, lv.Buy, 0.0)
	assert.Less(t, lv.Stop, lv.Buy)
	assert.Greater(t, lv.Target, lv.Buy)
	assert.GreaterOrEqual(t, lv.Stop, lv.Buy*0.93-0.01, "risk may not exceed 7%%")
	rr := (lv.Target - lv.Buy) / (lv.Buy - lv.Stop)
	assert.GreaterOrEqual(t, rr, 2.0-1e-9, "reward/risk")
}

func TestDeriveLevelsOversold(t *testing.T) {
	ind := baseIndicators()
	lv := DeriveLevels(levelHistory(), ind, 10)

	assertValidTriple(t, lv)
	// Lower band is within 3% of price, so it becomes the entry
	assert.Equal(t, 98.5, lv.Buy)
	assert.Equal(t, "과매도 반등", lv.Strategy)
}

func TestDeriveLevelsPullback(t *testing.T) {
	ind := baseIndicators()
	lv := DeriveLevels(levelHistory(), ind, -8)

	assertValidTriple(t, lv)
	// Best nearby level below price: MA20 at 98 beats support 96 and
	// price - 2 ATR = 96
	assert.Equal(t, 98.0, lv.Buy)
	assert.Equal(t, "눌림목 대기", lv.Strategy)
}

func TestDeriveLevelsTrendFollowing(t *testing.T) {
	ind := baseIndicators()
	lv := DeriveLevels(levelHistory(), ind, 0)

	assertValidTriple(t, lv)
	// MA20 > MA60, price above MA20, RSI >= 50
	assert.Equal(t, 100.0, lv.Buy)
	assert.Equal(t, "추세 추종", lv.Strategy)
}

func TestDeriveLevelsReboundWait(t *testing.T) {
	ind := baseIndicators()
	ind.MA20 = fptr(94) // below MA60: no uptrend, not flat
	lv := DeriveLevels(levelHistory(), ind, 0)

	assertValidTriple(t, lv)
	assert.Equal(t, "반등 확인 대기", lv.Strategy)
	assert.Less(t, lv.Buy, 100.0)
}

func TestDeriveLevelsBoxBottom(t *testing.T) {
	ind := baseIndicators()
	ind.MA20 = fptr(95.2)
	ind.MA60 = fptr(95)
	ind.RSI = fptr(48)
	lv := DeriveLevels(levelHistory(), ind, 0)

	assertValidTriple(t, lv)
	assert.Equal(t, "박스권 하단", lv.Strategy)
	assert.Equal(t, 96.0, lv.Buy)
}

func TestDeriveLevelsTargetExtension(t *testing.T) {
	// Only a close resistance exists: reward/risk fails and the target
	// must stretch beyond it
	ind := baseIndicators()
	ind.Swings = formulas.SwingPoints{Lows: []float64{96}, Highs: []float64{104}}
	lv := DeriveLevels(levelHistory(), ind, 0)

	assertValidTriple(t, lv)
	assert.Greater(t, lv.Target, 104.0)
}

func TestDeriveLevelsNoATR(t *testing.T) {
	ind := baseIndicators()
	ind.ATR = nil
	assert.Nil(t, DeriveLevels(levelHistory(), ind, 0))
}

func TestDeriveLevelsBreakoutReference(t *testing.T) {
	lv := DeriveLevels(levelHistory(), baseIndicators(), 0)
	require.NotNil(t, lv)
	// close 100 + 0.5 x (high 102 - low 98)
	assert.Equal(t, 102.0, lv.Breakout)
}

func TestDeriveLevelsRewardRiskProperty(t *testing.T) {
	contrarians := []int{12, 10, 5, 0, -3, -8, -10}
	prices := []float64{100, 5_000, 73_400}

	for _, price := range prices {
		for _, contrarian := range contrarians {
			ind := scorers.TechnicalIndicators{
				Price:   price,
				MA20:    fptr(price * 0.98),
				MA60:    fptr(price * 0.95),
				RSI:     fptr(52),
				ATR:     fptr(price * 0.02),
				BBUpper: fptr(price * 1.05),
				BBLower: fptr(price * 0.985),
				Swings: formulas.SwingPoints{
					Lows:  []float64{price * 0.92, price * 0.96},
					Highs: []float64{price * 1.04, price * 1.10},
				},
			}
			lv := DeriveLevels(levelHistory(), ind, contrarian)
			assertValidTriple(t, lv)
		}
	}
}
