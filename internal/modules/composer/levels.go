package composer

import (
	"math"

	"github.com/redchoeng/titan-kr/internal/domain"
	"github.com/redchoeng/titan-kr/internal/modules/scoring"
	"github.com/redchoeng/titan-kr/internal/modules/scoring/scorers"
)

// TradeLevels is the swing entry/target/stop triple plus a next-day
// volatility-breakout reference price
type TradeLevels struct {
	Buy      float64 `json:"buy"`
	Target   float64 `json:"target"`
	Stop     float64 `json:"stop"`
	Breakout float64 `json:"breakout"`
	Strategy string  `json:"strategy"`
}

// DeriveLevels picks a buy/target/stop triple from the swing structure around
// the current price. The contrarian adjustment sign selects the entry stance:
// positive means the dip is buyable now, negative means wait for a pullback,
// zero follows the trend structure. Returns nil when the ATR is unavailable.
func DeriveLevels(history domain.PriceHistory, ind scorers.TechnicalIndicators, contrarian int) *TradeLevels {
	if ind.ATR == nil || ind.Price <= 0 {
		return nil
	}
	atr := *ind.ATR
	price := ind.Price

	var buy float64
	var strategy string
	switch {
	case contrarian > 0:
		buy, strategy = oversoldEntry(price, ind)
	case contrarian < 0:
		buy, strategy = pullbackEntry(price, atr, ind)
	default:
		buy, strategy = trendEntry(price, atr, ind)
	}

	target := pickTarget(buy, atr, ind)
	stop := pickStop(buy, atr, ind)

	target, stop = validateRewardRisk(buy, target, stop, atr, ind)

	levels := &TradeLevels{
		Buy:      round2(buy),
		Target:   round2(target),
		Stop:     round2(stop),
		Strategy: strategy,
	}
	if last, ok := lastBar(history); ok {
		levels.Breakout = round2(last.Close + scoring.BreakoutKFactor*(last.High-last.Low))
	}
	return levels
}

// oversoldEntry buys the lower band when it is close enough to matter,
// otherwise takes the current price
func oversoldEntry(price float64, ind scorers.TechnicalIndicators) (float64, string) {
	if ind.BBLower != nil && *ind.BBLower >= price*0.97 && *ind.BBLower < price {
		return *ind.BBLower, "과매도 반등"
	}
	return price, "과매도 반등"
}

// pullbackEntry waits for the best nearby level below the current price
func pullbackEntry(price, atr float64, ind scorers.TechnicalIndicators) (float64, string) {
	best := price - 2*atr
	if ind.MA20 != nil && *ind.MA20 < price && *ind.MA20 > best {
		best = *ind.MA20
	}
	if sup := ind.Swings.NearestSupport(price); sup != nil && *sup > best {
		best = *sup
	}
	return best, "눌림목 대기"
}

// trendEntry branches on the trend structure when there is no contrarian
// signal either way
func trendEntry(price, atr float64, ind scorers.TechnicalIndicators) (float64, string) {
	uptrend := ind.MA20 != nil && ind.MA60 != nil && *ind.MA20 > *ind.MA60
	aboveMA20 := ind.MA20 != nil && price > *ind.MA20
	rsiStrong := ind.RSI != nil && *ind.RSI >= 50

	switch {
	case uptrend && aboveMA20 && rsiStrong:
		return price, "추세 추종"
	case uptrend && !aboveMA20:
		return price, "눌림목 매수"
	case isFlat(ind):
		// Box range: accumulate near the floor
		if sup := ind.Swings.NearestSupport(price); sup != nil {
			return math.Max(*sup, price-2*atr), "박스권 하단"
		}
		return price - atr, "박스권 하단"
	default:
		// No structure to lean on; demand a discount before entering
		if sup := ind.Swings.NearestSupport(price); sup != nil {
			return math.Max(*sup, price-2*atr), "반등 확인 대기"
		}
		return price - 2*atr, "반등 확인 대기"
	}
}

func isFlat(ind scorers.TechnicalIndicators) bool {
	if ind.MA20 == nil || ind.MA60 == nil || *ind.MA60 == 0 {
		return false
	}
	return math.Abs(*ind.MA20-*ind.MA60) / *ind.MA60 < 0.01
}

// pickTarget prefers real resistance, then the upper band, then an ATR
// multiple
func pickTarget(buy, atr float64, ind scorers.TechnicalIndicators) float64 {
	if res := ind.Swings.NearestResistance(buy * 1.03); res != nil {
		return *res
	}
	if ind.BBUpper != nil && *ind.BBUpper > buy {
		return *ind.BBUpper
	}
	return buy + 1.5*atr
}

func pickStop(buy, atr float64, ind scorers.TechnicalIndicators) float64 {
	stop := buy - 2*atr
	if sup := ind.Swings.NearestSupport(buy); sup != nil && *sup*0.99 > stop {
		stop = *sup * 0.99
	}
	// Must breathe at least 2% and never sit at or above the entry
	if stop > buy*(1-scoring.MinStopDistancePct) {
		stop = buy * (1 - scoring.MinStopDistancePct)
	}
	return stop
}

// validateRewardRisk enforces the 7% max-risk floor on the stop, then
// stretches the target until reward covers at least twice the risk
func validateRewardRisk(buy, target, stop, atr float64, ind scorers.TechnicalIndicators) (float64, float64) {
	if floor := buy * (1 - scoring.MaxRiskPct); stop < floor {
		stop = floor
	}

	risk := buy - stop
	if risk <= 0 {
		stop = buy * (1 - scoring.MinStopDistancePct)
		risk = buy - stop
	}

	if (target-buy)/risk < scoring.MinRewardRisk {
		if next := ind.Swings.NearestResistance(target); next != nil {
			target = *next
		} else if buy+3*atr > target {
			target = buy + 3*atr
		} else {
			target = buy * 1.12
		}
	}
	if minTarget := buy + scoring.MinRewardRisk*risk; target < minTarget {
		target = minTarget
	}
	return target, stop
}

func lastBar(history domain.PriceHistory) (domain.Bar, bool) {
	if len(history) == 0 {
		return domain.Bar{}, false
	}
	return history[len(history)-1], true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
