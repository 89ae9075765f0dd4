package formulas

import (
	"github.com/markcheno/go-talib"
)

// CalculateSMA calculates the Simple Moving Average over the given period.
// Returns nil if there is not enough data.
func CalculateSMA(closes []float64, length int) *float64 {
	if length <= 0 || len(closes) < length {
		return nil
	}

	return lastValid(talib.Sma(closes, length))
}

// CalculateEMA calculates the Exponential Moving Average
//
// EMA Formula:
//
//	EMA_today = (Price_today × multiplier) + (EMA_yesterday × (1 - multiplier))
//	where multiplier = 2 / (period + 1)
func CalculateEMA(closes []float64, length int) *float64 {
	if length <= 0 || len(closes) == 0 {
		return nil
	}

	// Not enough data for a proper EMA, fall back to SMA of what we have
	if len(closes) < length {
		sma := Mean(closes)
		return &sma
	}

	return lastValid(talib.Ema(closes, length))
}
