package formulas

import (
	"github.com/markcheno/go-talib"
)

// MACDResult holds the current MACD line and signal line values
type MACDResult struct {
	Line   float64 `json:"line"`
	Signal float64 `json:"signal"`
}

// CalculateMACD calculates MACD(12, 26, 9) and returns the latest line/signal pair.
// Returns nil if there is not enough data for the slow EMA plus signal smoothing.
func CalculateMACD(closes []float64) *MACDResult {
	if len(closes) < 35 {
		return nil
	}

	line, signal, _ := talib.Macd(closes, 12, 26, 9)

	l := lastValid(line)
	s := lastValid(signal)
	if l == nil || s == nil {
		return nil
	}

	return &MACDResult{Line: *l, Signal: *s}
}
