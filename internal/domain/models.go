// Package domain holds the shared data model for the KR market analysis engine.
package domain

import "time"

// AnalysisMode selects the scoring profile for a batch
type AnalysisMode string

const (
	ModeGrowth AnalysisMode = "growth"
	ModeValue  AnalysisMode = "value"
)

// Valid reports whether the mode is one of the supported profiles
func (m AnalysisMode) Valid() bool {
	return m == ModeGrowth || m == ModeValue
}

// SymbolSnapshot is a per-symbol fundamental/market fact sheet at a point in
// time. Optional ratios are pointers: nil means "not available", which scorers
// treat as "skip this factor", never as zero.
type SymbolSnapshot struct {
	Code      string `json:"code"` // 6-digit KRX code
	Name      string `json:"name"`
	Sector    string `json:"sector"`   // may be empty
	Industry  string `json:"industry"` // may be empty
	Price     float64 `json:"price"`
	MarketCap float64 `json:"market_cap"`
	AvgVolume float64 `json:"avg_volume"`

	// Traded value in KRW; nil falls back to Price × AvgVolume
	TradedValue *float64 `json:"traded_value,omitempty"`

	ROE                 *float64 `json:"roe,omitempty"`              // percent, 15 = 15%
	OperatingMargin     *float64 `json:"operating_margin,omitempty"` // percent
	RevenueGrowth       *float64 `json:"revenue_growth,omitempty"`   // percent, YoY
	EarningsGrowth      *float64 `json:"earnings_growth,omitempty"`  // percent, YoY
	DividendYield       *float64 `json:"dividend_yield,omitempty"`   // percent
	FiveYearAvgDivYield *float64 `json:"five_year_avg_div_yield,omitempty"`
	PayoutRatio         *float64 `json:"payout_ratio,omitempty"` // percent, may exceed 100
	TrailingPER         *float64 `json:"trailing_per,omitempty"`
	EVToEBITDA          *float64 `json:"ev_to_ebitda,omitempty"`
	PriceToBook         *float64 `json:"price_to_book,omitempty"`
	DebtToEquity        *float64 `json:"debt_to_equity,omitempty"` // percentage, 150 = 150%
	Beta                *float64 `json:"beta,omitempty"`
	PEGRatio            *float64 `json:"peg_ratio,omitempty"`
	FreeCashFlow        *float64 `json:"free_cash_flow,omitempty"` // KRW
	TotalRevenue        *float64 `json:"total_revenue,omitempty"`  // KRW
}

// Bar is one OHLCV observation
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// PriceHistory is an ascending-by-date series of bars. Zero-volume rows
// (suspended trading days) are dropped at construction so rolling windows
// operate on a continuous series.
type PriceHistory []Bar

// NewPriceHistory builds a history from bars, filtering zero-volume rows
func NewPriceHistory(bars []Bar) PriceHistory {
	out := make(PriceHistory, 0, len(bars))
	for _, b := range bars {
		if b.Volume > 0 {
			out = append(out, b)
		}
	}
	return out
}

// Closes extracts closing prices
func (h PriceHistory) Closes() []float64 {
	out := make([]float64, len(h))
	for i, b := range h {
		out[i] = b.Close
	}
	return out
}

// Highs extracts high prices
func (h PriceHistory) Highs() []float64 {
	out := make([]float64, len(h))
	for i, b := range h {
		out[i] = b.High
	}
	return out
}

// Lows extracts low prices
func (h PriceHistory) Lows() []float64 {
	out := make([]float64, len(h))
	for i, b := range h {
		out[i] = b.Low
	}
	return out
}

// Volumes extracts volumes
func (h PriceHistory) Volumes() []float64 {
	out := make([]float64, len(h))
	for i, b := range h {
		out[i] = b.Volume
	}
	return out
}

// LastClose returns the most recent close, or 0 for an empty history
func (h PriceHistory) LastClose() float64 {
	if len(h) == 0 {
		return 0
	}
	return h[len(h)-1].Close
}
