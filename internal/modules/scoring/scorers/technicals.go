package scorers

import (
	"github.com/redchoeng/titan-kr/internal/domain"
	"github.com/redchoeng/titan-kr/internal/modules/scoring"
	"github.com/redchoeng/titan-kr/pkg/formulas"
)

// TechnicalsScorer produces the technical pillar from OHLCV history plus a
// benchmark series for relative strength.
type TechnicalsScorer struct{}

// TechnicalIndicators carries the raw indicator values behind the score.
// The composer reads these for entry/exit derivation.
type TechnicalIndicators struct {
	Price       float64              `json:"price"`
	MA5         *float64             `json:"ma5,omitempty"`
	MA20        *float64             `json:"ma20,omitempty"`
	MA60        *float64             `json:"ma60,omitempty"`
	MA120       *float64             `json:"ma120,omitempty"`
	RSI         *float64             `json:"rsi,omitempty"`
	StochK      *float64             `json:"stoch_k,omitempty"`
	StochD      *float64             `json:"stoch_d,omitempty"`
	MFI         *float64             `json:"mfi,omitempty"`
	VolumeRatio *float64             `json:"volume_ratio,omitempty"`
	BBUpper     *float64             `json:"bb_upper,omitempty"`
	BBLower     *float64             `json:"bb_lower,omitempty"`
	BBPosition  *float64             `json:"bb_position,omitempty"`
	ATR         *float64             `json:"atr,omitempty"`
	PricePos52w *float64             `json:"price_pos_52w,omitempty"`
	RelStrength *float64             `json:"rel_strength,omitempty"`
	Swings      formulas.SwingPoints `json:"-"`
}

// TechnicalScore is the technical sub-score with its itemized breakdown.
// Summing Components always equals Score.
type TechnicalScore struct {
	Score        int                 `json:"score"`
	Components   map[string]float64  `json:"components"`
	Indicators   TechnicalIndicators `json:"indicators"`
	IsDowntrend  bool                `json:"is_downtrend"`
	Insufficient bool                `json:"insufficient"`
	Comments     []string            `json:"comments,omitempty"`
}

// NewTechnicalsScorer creates a new technicals scorer
func NewTechnicalsScorer() *TechnicalsScorer {
	return &TechnicalsScorer{}
}

func emptyTechnicalComponents() map[string]float64 {
	return map[string]float64{
		"trend":             0,
		"momentum":          0,
		"volume":            0,
		"volatility":        0,
		"pattern":           0,
		"relative_strength": 0,
	}
}

// Calculate scores the symbol's price history. Histories shorter than 120
// bars score 0 with an insufficient-data marker instead of failing.
func (ts *TechnicalsScorer) Calculate(history, benchmark domain.PriceHistory) TechnicalScore {
	closes := history.Closes()
	if len(closes) < scoring.MinTechnicalBars {
		return TechnicalScore{
			Components:   emptyTechnicalComponents(),
			Insufficient: true,
			Comments:     []string{"데이터부족"},
		}
	}

	highs := history.Highs()
	lows := history.Lows()
	volumes := history.Volumes()
	price := closes[len(closes)-1]

	ind := TechnicalIndicators{
		Price:       price,
		MA5:         formulas.CalculateSMA(closes, 5),
		MA20:        formulas.CalculateSMA(closes, 20),
		MA60:        formulas.CalculateSMA(closes, 60),
		MA120:       formulas.CalculateSMA(closes, 120),
		RSI:         formulas.CalculateRSI(closes, 14),
		MFI:         formulas.CalculateMFI(highs, lows, closes, volumes, 14),
		VolumeRatio: formulas.VolumeRatio(volumes),
		Swings:      formulas.DetectSwingPoints(highs, lows, scoring.SwingLookbackBars, scoring.SwingConfirmBars),
	}
	if stoch := formulas.CalculateStochastic(highs, lows, closes); stoch != nil {
		ind.StochK = &stoch.K
		ind.StochD = &stoch.D
	}
	if bb := formulas.CalculateBollingerPosition(closes, 20, 2.0); bb != nil {
		ind.BBPosition = &bb.Position
		ind.BBUpper = &bb.Bands.Upper
		ind.BBLower = &bb.Bands.Lower
	}
	atrState := formulas.CalculateATR(highs, lows, closes)
	if atrState != nil {
		ind.ATR = &atrState.Current
	}
	ind.PricePos52w = pricePosition52w(closes, price)
	ind.RelStrength = relativeStrength(closes, benchmark.Closes())

	var comments []string

	trend := ts.scoreTrend(price, closes, highs, lows, ind)
	downtrend := trend < scoring.DowntrendThreshold

	momentum, momComments := ts.scoreMomentum(ind, downtrend)
	comments = append(comments, momComments...)

	components := map[string]float64{
		"trend":             trend,
		"momentum":          momentum,
		"volume":            ts.scoreVolume(ind, closes, volumes),
		"volatility":        ts.scoreVolatility(ind, atrState, downtrend),
		"pattern":           ts.scorePattern(ind),
		"relative_strength": ts.scoreRelativeStrength(ind),
	}

	total := 0.0
	for _, v := range components {
		total += v
	}

	return TechnicalScore{
		Score:       int(total),
		Components:  components,
		Indicators:  ind,
		IsDowntrend: downtrend,
		Comments:    comments,
	}
}

func (ts *TechnicalsScorer) scoreTrend(price float64, closes, highs, lows []float64, ind TechnicalIndicators) float64 {
	score := 0.0
	for _, ma := range []*float64{ind.MA120, ind.MA60, ind.MA20} {
		if ma != nil && price > *ma {
			score += scoring.ScoreMA120
		}
	}
	if ind.MA5 != nil && price > *ind.MA5 {
		score += scoring.ScoreMA5
	}

	if macd := formulas.CalculateMACD(closes); macd != nil {
		if macd.Line > macd.Signal && macd.Line > 0 {
			score += scoring.ScoreMACDBullish
		} else if macd.Line > macd.Signal {
			score += scoring.ScoreMACDSignal
		}
	}

	if ichimoku := formulas.CalculateIchimoku(highs, lows); ichimoku != nil {
		if price > ichimoku.CloudTop() {
			score++
		}
		if ichimoku.Tenkan > ichimoku.Kijun {
			score++
		}
		if ichimoku.SpanA > ichimoku.SpanB {
			score++
		}
	}

	if adx := formulas.CalculateADX(highs, lows, closes, 14); adx != nil && *adx > 25 {
		score += scoring.ScoreADXStrong
	}
	return score
}

func (ts *TechnicalsScorer) scoreMomentum(ind TechnicalIndicators, downtrend bool) (float64, []string) {
	score := 0.0
	var comments []string

	if ind.RSI != nil {
		rsi := *ind.RSI
		switch {
		case rsi >= scoring.RSIOptimalMin && rsi <= scoring.RSIOptimalMax:
			score += scoring.ScoreRSIOptimal
		case rsi >= scoring.RSIOversold && rsi < scoring.RSIGoodMax:
			score += scoring.ScoreRSIGood
		case rsi < scoring.RSIOversold:
			// Oversold in a downtrend is a falling knife, not a dip
			if downtrend {
				comments = append(comments, "하락추세 과매도 주의")
			} else {
				score += scoring.ScoreRSIOversold
			}
		}
	}

	if ind.StochK != nil && ind.StochD != nil {
		if *ind.StochK > *ind.StochD && *ind.StochK < 80 {
			score += scoring.ScoreStochOptimal
		} else if *ind.StochK > *ind.StochD {
			score += scoring.ScoreStochCross
		}
	}

	if ind.MFI != nil && *ind.MFI < 20 {
		score += scoring.ScoreMFIOversold
	}
	return score, comments
}

func (ts *TechnicalsScorer) scoreVolume(ind TechnicalIndicators, closes, volumes []float64) float64 {
	score := 0.0
	if ind.VolumeRatio != nil {
		switch {
		case *ind.VolumeRatio >= 3.0:
			score += scoring.ScoreVolumeExtreme
		case *ind.VolumeRatio >= 2.0:
			score += scoring.ScoreVolumeHigh
		case *ind.VolumeRatio >= 1.5:
			score += scoring.ScoreVolumeModerate
		case *ind.VolumeRatio >= 1.2:
			score += scoring.ScoreVolumeNormal
		}
	}
	if obv := formulas.CalculateOBVTrend(closes, volumes); obv != nil && obv.Rising() {
		score += scoring.ScoreOBVRising
	}
	return score
}

func (ts *TechnicalsScorer) scoreVolatility(ind TechnicalIndicators, atr *formulas.ATRState, downtrend bool) float64 {
	score := 0.0
	if ind.BBPosition != nil {
		pos := *ind.BBPosition
		if pos >= 0.3 && pos <= 0.7 {
			score += scoring.ScoreBBMidBand
		} else if pos < 0.3 && !downtrend {
			score += scoring.ScoreBBLowerBand
		}
	}
	if atr != nil && atr.Expanding() {
		score += scoring.ScoreATRExpand
	}
	return score
}

func (ts *TechnicalsScorer) scorePattern(ind TechnicalIndicators) float64 {
	if ind.PricePos52w == nil {
		return 0
	}
	switch pos := *ind.PricePos52w; {
	case pos >= 0.9:
		return scoring.ScorePricePosition
	case pos >= 0.7:
		return 3
	case pos >= 0.5:
		return 2
	}
	return 0
}

func (ts *TechnicalsScorer) scoreRelativeStrength(ind TechnicalIndicators) float64 {
	if ind.RelStrength == nil {
		return 0
	}
	switch diff := *ind.RelStrength; {
	case diff > 0.15:
		return scoring.ScoreRSStrong
	case diff > 0.05:
		return scoring.ScoreRSGood
	case diff > -0.05:
		return scoring.ScoreRSNeutral
	}
	return 0
}

// pricePosition52w returns where the last close sits in its trailing 52-week
// range, 0 at the low and 1 at the high
func pricePosition52w(closes []float64, price float64) *float64 {
	window := closes
	if len(window) > 252 {
		window = window[len(window)-252:]
	}
	lo, hi := window[0], window[0]
	for _, c := range window {
		if c < lo {
			lo = c
		}
		if c > hi {
			hi = c
		}
	}
	if hi == lo {
		return nil
	}
	pos := (price - lo) / (hi - lo)
	return &pos
}

// relativeStrength returns the 3-month return differential vs the benchmark
func relativeStrength(closes, benchmark []float64) *float64 {
	if len(closes) < scoring.MinRelStrengthBars || len(benchmark) < scoring.MinRelStrengthBars {
		return nil
	}
	own := formulas.TrailingReturn(closes, 63)
	bench := formulas.TrailingReturn(benchmark, 63)
	if own == nil || bench == nil {
		return nil
	}
	diff := *own - *bench
	return &diff
}
