package formulas

// IchimokuState holds the current Ichimoku conversion/base lines and the two
// leading span values (computed at the current bar, not displaced forward).
type IchimokuState struct {
	Tenkan float64 `json:"tenkan"` // (9-bar high + 9-bar low) / 2
	Kijun  float64 `json:"kijun"`  // (26-bar high + 26-bar low) / 2
	SpanA  float64 `json:"span_a"` // (Tenkan + Kijun) / 2
	SpanB  float64 `json:"span_b"` // (52-bar high + 52-bar low) / 2
}

// CloudTop returns the upper edge of the cloud
func (s IchimokuState) CloudTop() float64 {
	if s.SpanA > s.SpanB {
		return s.SpanA
	}
	return s.SpanB
}

// CalculateIchimoku calculates the Ichimoku components from OHLC history.
// Requires at least 52 bars.
func CalculateIchimoku(highs, lows []float64) *IchimokuState {
	if len(highs) < 52 || len(highs) != len(lows) {
		return nil
	}

	tenkan := (rollingMax(highs, 9) + rollingMin(lows, 9)) / 2
	kijun := (rollingMax(highs, 26) + rollingMin(lows, 26)) / 2
	spanB := (rollingMax(highs, 52) + rollingMin(lows, 52)) / 2
	spanA := (tenkan + kijun) / 2

	return &IchimokuState{Tenkan: tenkan, Kijun: kijun, SpanA: spanA, SpanB: spanB}
}

func rollingMax(data []float64, window int) float64 {
	max := data[len(data)-window]
	for _, v := range data[len(data)-window:] {
		if v > max {
			max = v
		}
	}
	return max
}

func rollingMin(data []float64, window int) float64 {
	min := data[len(data)-window]
	for _, v := range data[len(data)-window:] {
		if v < min {
			min = v
		}
	}
	return min
}
