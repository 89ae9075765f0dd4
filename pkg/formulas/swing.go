package formulas

// SwingPoints holds detected local extrema used as support/resistance levels,
// sorted ascending.
type SwingPoints struct {
	Lows  []float64 `json:"lows"`
	Highs []float64 `json:"highs"`
}

// DetectSwingPoints finds local lows/highs over the trailing lookback window.
// A bar is a swing low when its low is the minimum of the confirm bars on each
// side, and symmetrically for swing highs. Bars too close to the series edge
// are skipped (no confirmation possible).
func DetectSwingPoints(highs, lows []float64, lookback, confirm int) SwingPoints {
	var sp SwingPoints
	n := len(lows)
	if n != len(highs) || n < 2*confirm+1 {
		return sp
	}

	start := n - lookback
	if start < confirm {
		start = confirm
	}

	for i := start; i < n-confirm; i++ {
		isLow := true
		isHigh := true
		for j := i - confirm; j <= i+confirm; j++ {
			if lows[j] < lows[i] {
				isLow = false
			}
			if highs[j] > highs[i] {
				isHigh = false
			}
		}
		if isLow {
			sp.Lows = insertSorted(sp.Lows, lows[i])
		}
		if isHigh {
			sp.Highs = insertSorted(sp.Highs, highs[i])
		}
	}

	return sp
}

// NearestSupport returns the highest swing low strictly below price, or nil
func (sp SwingPoints) NearestSupport(price float64) *float64 {
	// Lows are sorted ascending, so the last one below price is the nearest
	for i := len(sp.Lows) - 1; i >= 0; i-- {
		if sp.Lows[i] < price {
			return &sp.Lows[i]
		}
	}
	return nil
}

// NearestResistance returns the lowest swing high strictly above price, or nil
func (sp SwingPoints) NearestResistance(price float64) *float64 {
	for i := range sp.Highs {
		if sp.Highs[i] > price {
			return &sp.Highs[i]
		}
	}
	return nil
}

func insertSorted(s []float64, v float64) []float64 {
	i := 0
	for i < len(s) && s[i] < v {
		i++
	}
	s = append(s, 0)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}
