package formulas

import (
	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the standard deviation of a slice of float64 values
func StdDev(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// CalculateReturns converts prices to percentage returns
// Returns[i] = (Price[i] - Price[i-1]) / Price[i-1]
func CalculateReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return []float64{}
	}

	returns := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] != 0 {
			returns[i-1] = (prices[i] - prices[i-1]) / prices[i-1]
		}
	}

	return returns
}

// TrailingReturn calculates the return over the last n bars.
// Falls back to the full series when fewer than n bars are available.
func TrailingReturn(prices []float64, n int) *float64 {
	if len(prices) < 2 {
		return nil
	}

	current := prices[len(prices)-1]
	base := prices[0]
	if len(prices) >= n {
		base = prices[len(prices)-n]
	}
	if base == 0 {
		return nil
	}

	r := (current - base) / base
	return &r
}

// isNaN checks if a float64 is NaN
func isNaN(f float64) bool {
	return f != f
}

// lastValid returns the last non-NaN value of a talib output series
func lastValid(series []float64) *float64 {
	if len(series) == 0 {
		return nil
	}
	v := series[len(series)-1]
	if isNaN(v) {
		return nil
	}
	return &v
}
