package formulas

import (
	"github.com/markcheno/go-talib"
)

// OBVTrend holds the current On-Balance Volume and its 20-period average
type OBVTrend struct {
	Current float64 `json:"current"`
	Average float64 `json:"average"`
}

// Rising reports whether OBV is above its moving average
func (o OBVTrend) Rising() bool {
	return o.Current > o.Average
}

// CalculateOBVTrend calculates On-Balance Volume and compares it against its
// 20-period SMA. Returns nil when fewer than 20 bars are available.
func CalculateOBVTrend(closes, volumes []float64) *OBVTrend {
	if len(closes) < 20 || len(closes) != len(volumes) {
		return nil
	}

	obv := talib.Obv(closes, volumes)
	avg := lastValid(talib.Sma(obv, 20))
	cur := lastValid(obv)
	if cur == nil || avg == nil {
		return nil
	}

	return &OBVTrend{Current: *cur, Average: *avg}
}

// VolumeRatio calculates current volume relative to its 20-bar average.
// Returns nil when the average is zero or data is insufficient.
func VolumeRatio(volumes []float64) *float64 {
	if len(volumes) < 20 {
		return nil
	}

	avg := lastValid(talib.Sma(volumes, 20))
	if avg == nil || *avg <= 0 {
		return nil
	}

	ratio := volumes[len(volumes)-1] / *avg
	return &ratio
}
