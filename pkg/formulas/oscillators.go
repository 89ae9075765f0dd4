package formulas

import (
	"github.com/markcheno/go-talib"
)

// StochasticResult holds the current slow %K and %D values
type StochasticResult struct {
	K float64 `json:"k"`
	D float64 `json:"d"`
}

// CalculateStochastic calculates the slow Stochastic oscillator (14, 3, 3)
func CalculateStochastic(highs, lows, closes []float64) *StochasticResult {
	if len(closes) < 20 || len(highs) != len(closes) || len(lows) != len(closes) {
		return nil
	}

	slowK, slowD := talib.Stoch(highs, lows, closes, 14, 3, talib.SMA, 3, talib.SMA)

	k := lastValid(slowK)
	d := lastValid(slowD)
	if k == nil || d == nil {
		return nil
	}

	return &StochasticResult{K: *k, D: *d}
}

// CalculateMFI calculates the Money Flow Index (volume-weighted RSI).
// Returns nil if insufficient data.
func CalculateMFI(highs, lows, closes, volumes []float64, length int) *float64 {
	if len(closes) < length+1 || len(highs) != len(closes) ||
		len(lows) != len(closes) || len(volumes) != len(closes) {
		return nil
	}

	return lastValid(talib.Mfi(highs, lows, closes, volumes, length))
}
