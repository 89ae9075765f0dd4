package scorers

import "math"

// GradientScore maps a "higher is better" metric onto a bounded point budget
// using piecewise-linear interpolation between sector thresholds.
//
// Tiers, derived from (excellent, good):
//
//	top  = excellent * 1.3  -> full points
//	fair = good * 0.5       -> floor of the scored range
//
// A nil or non-positive value scores 0.
func GradientScore(value *float64, excellent, good, maxPoints float64) float64 {
	if value == nil || *value <= 0 {
		return 0
	}
	if excellent == 0 && good == 0 {
		return 0
	}
	v := *value
	fair := good * 0.5
	top := excellent * 1.3

	var frac float64
	switch {
	case v >= top:
		return math.Round(maxPoints)
	case v >= excellent:
		frac = 0.8 + 0.2*segmentRatio(v-excellent, top-excellent)
	case v >= good:
		frac = 0.4 + 0.4*segmentRatio(v-good, excellent-good)
	case v >= fair:
		frac = 0.05 + 0.35*segmentRatio(v-fair, good-fair)
	default:
		return 0
	}
	return math.Round(maxPoints * frac)
}

// InverseGradientScore is the "lower is better" counterpart, used for
// valuation multiples and leverage ratios.
//
//	excellent = goodUpper * 0.6  -> full points at or below
//	poor      = fairUpper * 1.5  -> zero beyond
func InverseGradientScore(value *float64, goodUpper, fairUpper, maxPoints float64) float64 {
	if value == nil || *value <= 0 {
		return 0
	}
	v := *value
	excellent := goodUpper * 0.6
	poor := fairUpper * 1.5

	var frac float64
	switch {
	case v <= excellent:
		return math.Round(maxPoints)
	case v <= goodUpper:
		frac = 0.8 + 0.2*segmentRatio(goodUpper-v, goodUpper-excellent)
	case v <= fairUpper:
		frac = 0.4 + 0.4*segmentRatio(fairUpper-v, fairUpper-goodUpper)
	case v <= poor:
		frac = 0.05 + 0.35*segmentRatio(poor-v, poor-fairUpper)
	default:
		return 0
	}
	return math.Round(maxPoints * frac)
}

// segmentRatio saturates to 1 when the segment is degenerate, so equal
// thresholds award the segment's upper bound instead of dividing by zero.
func segmentRatio(num, denom float64) float64 {
	if denom == 0 {
		return 1
	}
	r := num / denom
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}
