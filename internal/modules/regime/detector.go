// Package regime classifies the benchmark index into a macro trend state.
// The result is computed once per analysis batch and shared read-only.
package regime

import (
	"fmt"

	"github.com/redchoeng/titan-kr/internal/domain"
	"github.com/redchoeng/titan-kr/pkg/formulas"
)

// Regime is the classified macro trend state of the benchmark
type Regime string

const (
	Bull     Regime = "bull"
	Bear     Regime = "bear"
	Sideways Regime = "sideways"
	Neutral  Regime = "neutral"
)

const (
	minBars          = 120
	quarterBars      = 63
	halfYearBars     = 126
	adxSidewaysLimit = 20.0

	quarterBullReturn  = 0.05
	quarterBearReturn  = -0.05
	halfYearBullReturn = 0.10
	halfYearBearReturn = -0.10

	signalsRequired = 3
)

// Detection is the regime tag plus the signals behind it. Description is for
// reporting only and never feeds back into scoring.
type Detection struct {
	Regime      Regime  `json:"regime"`
	Description string  `json:"description"`
	BullSignals int     `json:"bull_signals"`
	BearSignals int     `json:"bear_signals"`
	ADX         float64 `json:"adx"`
}

// Detector classifies benchmark index behavior
type Detector struct{}

// NewDetector creates a new regime detector
func NewDetector() *Detector {
	return &Detector{}
}

// Detect classifies the benchmark history. Histories shorter than 120 bars
// yield a neutral regime rather than an error.
func (d *Detector) Detect(benchmark domain.PriceHistory) Detection {
	closes := benchmark.Closes()
	if len(closes) < minBars {
		return Detection{Regime: Neutral, Description: "지수 데이터부족, 중립 가정"}
	}

	price := closes[len(closes)-1]
	ma60 := formulas.CalculateSMA(closes, 60)
	ma120 := formulas.CalculateSMA(closes, 120)
	quarterRet := formulas.TrailingReturn(closes, quarterBars)
	halfRet := formulas.TrailingReturn(closes, halfYearBars)

	bull, bear := 0, 0
	if ma120 != nil {
		if price > *ma120 {
			bull++
		} else {
			bear++
		}
	}
	if ma60 != nil && ma120 != nil {
		if *ma60 > *ma120 {
			bull++
		} else {
			bear++
		}
	}
	if quarterRet != nil {
		if *quarterRet > quarterBullReturn {
			bull++
		} else if *quarterRet < quarterBearReturn {
			bear++
		}
	}
	if halfRet != nil {
		if *halfRet > halfYearBullReturn {
			bull++
		} else if *halfRet < halfYearBearReturn {
			bear++
		}
	}

	adx := 0.0
	if v := formulas.CalculateADX(benchmark.Highs(), benchmark.Lows(), closes, 14); v != nil {
		adx = *v
	}

	det := Detection{BullSignals: bull, BearSignals: bear, ADX: adx}
	switch {
	case adx < adxSidewaysLimit:
		det.Regime = Sideways
		det.Description = fmt.Sprintf("횡보장 (ADX %.1f, 추세 약함)", adx)
	case bull >= signalsRequired:
		det.Regime = Bull
		det.Description = fmt.Sprintf("상승장 (강세신호 %d/4)", bull)
	case bear >= signalsRequired:
		det.Regime = Bear
		det.Description = fmt.Sprintf("하락장 (약세신호 %d/4)", bear)
	default:
		det.Regime = Neutral
		det.Description = fmt.Sprintf("중립 (강세 %d, 약세 %d)", bull, bear)
	}
	return det
}
