package formulas

import (
	"github.com/markcheno/go-talib"
)

// ATRState holds the current Average True Range and its 14-period average,
// used to detect volatility expansion.
type ATRState struct {
	Current float64 `json:"current"`
	Average float64 `json:"average"`
}

// Expanding reports whether the current ATR is above its own average
func (a ATRState) Expanding() bool {
	return a.Current > a.Average
}

// CalculateATR calculates ATR(14) plus its 14-period SMA
func CalculateATR(highs, lows, closes []float64) *ATRState {
	if len(closes) < 29 || len(highs) != len(closes) || len(lows) != len(closes) {
		return nil
	}

	atr := talib.Atr(highs, lows, closes, 14)
	cur := lastValid(atr)
	avg := lastValid(talib.Sma(atr, 14))
	if cur == nil || avg == nil {
		return nil
	}

	return &ATRState{Current: *cur, Average: *avg}
}

// CalculateADX calculates the Average Directional Index (trend strength, not
// direction). Returns nil if insufficient data.
func CalculateADX(highs, lows, closes []float64, length int) *float64 {
	if len(closes) < 2*length+1 || len(highs) != len(closes) || len(lows) != len(closes) {
		return nil
	}

	return lastValid(talib.Adx(highs, lows, closes, length))
}

// BollingerBands represents Bollinger Bands values
type BollingerBands struct {
	Upper  float64 `json:"upper"`
	Middle float64 `json:"middle"`
	Lower  float64 `json:"lower"`
}

// BollingerPosition represents where price sits relative to the bands.
// Range: 0.0 (at lower band) to 1.0 (at upper band), clamped.
type BollingerPosition struct {
	Position float64        `json:"position"`
	Bands    BollingerBands `json:"bands"`
}

// CalculateBollingerBands calculates Bollinger Bands
//
//	Middle Band = N-day SMA
//	Upper Band = Middle + (k × std deviation)
//	Lower Band = Middle - (k × std deviation)
func CalculateBollingerBands(closes []float64, length int, stdDevMultiplier float64) *BollingerBands {
	if len(closes) < length {
		return nil
	}

	upper, middle, lower := talib.BBands(closes, length, stdDevMultiplier, stdDevMultiplier, talib.SMA)

	u := lastValid(upper)
	if u == nil {
		return nil
	}

	return &BollingerBands{
		Upper:  *u,
		Middle: middle[len(middle)-1],
		Lower:  lower[len(lower)-1],
	}
}

// CalculateBollingerPosition calculates where the last close sits within the
// Bollinger Bands: 0.0 at the lower band, 0.5 at the middle, 1.0 at the upper.
func CalculateBollingerPosition(closes []float64, length int, stdDevMultiplier float64) *BollingerPosition {
	bands := CalculateBollingerBands(closes, length, stdDevMultiplier)
	if bands == nil {
		return nil
	}

	currentPrice := closes[len(closes)-1]
	bandWidth := bands.Upper - bands.Lower

	if bandWidth == 0 {
		// Collapsed bands, price is at middle
		return &BollingerPosition{Position: 0.5, Bands: *bands}
	}

	position := (currentPrice - bands.Lower) / bandWidth
	if position < 0.0 {
		position = 0.0
	}
	if position > 1.0 {
		position = 1.0
	}

	return &BollingerPosition{Position: position, Bands: *bands}
}
