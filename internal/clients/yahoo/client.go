// Package yahoo fetches KR equity quotes, fundamentals and OHLCV history
// from Yahoo Finance.
package yahoo

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/wnjoon/go-yfinance/pkg/models"
	"github.com/wnjoon/go-yfinance/pkg/ticker"

	"github.com/redchoeng/titan-kr/internal/domain"
)

// Fundamentals is the per-symbol fact sheet as served by Yahoo. Ratio fields
// are percent; nil means the field was absent or zero at the source.
// Free cash flow, total revenue, EV/EBITDA and payout ratio are not mapped
// here because the info endpoint does not serve them reliably for KRX
// listings; the snapshot fields stay nil and the scorers skip those factors.
type Fundamentals struct {
	Price               float64
	MarketCap           float64
	ROE                 *float64
	OperatingMargin     *float64
	RevenueGrowth       *float64
	EarningsGrowth      *float64
	DividendYield       *float64
	FiveYearAvgDivYield *float64
	TrailingPER         *float64
	PEGRatio            *float64
	PriceToBook         *float64
	DebtToEquity        *float64
	Industry            string
}

// Client is a Yahoo Finance API client
type Client struct {
	maxRetries int
	log        zerolog.Logger
}

// NewClient creates a new Yahoo Finance client
func NewClient(log zerolog.Logger) *Client {
	return &Client{
		maxRetries: 3,
		log:        log.With().Str("client", "yahoo").Logger(),
	}
}

// FetchFundamentals loads the info sheet for a Yahoo symbol.
// Source fractions (ROE, margins, growth, yield) are converted to percent;
// debt-to-equity and the five-year average yield already arrive as percent.
func (c *Client) FetchFundamentals(yahooSymbol string) (*Fundamentals, error) {
	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			wait := time.Duration(1<<uint(attempt-1)) * time.Second
			c.log.Warn().Err(lastErr).Str("symbol", yahooSymbol).
				Int("attempt", attempt+1).Dur("wait", wait).Msg("Retrying fundamentals")
			time.Sleep(wait)
		}

		f, err := c.fetchFundamentalsOnce(yahooSymbol)
		if err == nil {
			return f, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("failed to fetch fundamentals for %s: %w", yahooSymbol, lastErr)
}

func (c *Client) fetchFundamentalsOnce(yahooSymbol string) (*Fundamentals, error) {
	t, err := ticker.New(yahooSymbol)
	if err != nil {
		return nil, fmt.Errorf("failed to create ticker: %w", err)
	}
	defer t.Close()

	info, err := t.Info()
	if err != nil {
		return nil, fmt.Errorf("failed to get info: %w", err)
	}

	f := &Fundamentals{Industry: info.Industry}

	if info.CurrentPrice > 0 {
		f.Price = info.CurrentPrice
	} else if info.RegularMarketPreviousClose > 0 {
		f.Price = info.RegularMarketPreviousClose
	}
	if f.Price <= 0 {
		return nil, fmt.Errorf("no valid price for %s", yahooSymbol)
	}
	f.MarketCap = float64(info.MarketCap)

	// Copy values to local variables before taking addresses
	if info.ReturnOnEquity != 0 {
		roe := info.ReturnOnEquity * 100
		f.ROE = &roe
	}
	if info.OperatingMargins != 0 {
		opm := info.OperatingMargins * 100
		f.OperatingMargin = &opm
	}
	if info.RevenueGrowth != 0 {
		growth := info.RevenueGrowth * 100
		f.RevenueGrowth = &growth
	}
	if info.EarningsGrowth != 0 {
		growth := info.EarningsGrowth * 100
		f.EarningsGrowth = &growth
	}
	if info.DividendYield > 0 {
		yield := info.DividendYield * 100
		f.DividendYield = &yield
	}
	if info.FiveYearAvgDividendYield > 0 {
		yield := info.FiveYearAvgDividendYield
		f.FiveYearAvgDivYield = &yield
	}
	if info.TrailingPE > 0 {
		pe := info.TrailingPE
		f.TrailingPER = &pe
	}
	if info.PegRatio > 0 {
		peg := info.PegRatio
		f.PEGRatio = &peg
	}
	if info.PriceToBook > 0 {
		pb := info.PriceToBook
		f.PriceToBook = &pb
	}
	if info.DebtToEquity > 0 {
		de := info.DebtToEquity
		f.DebtToEquity = &de
	}

	return f, nil
}

// FetchHistory loads daily OHLCV bars for a Yahoo symbol over a period such
// as "1y" or "2y". Zero-volume rows are dropped.
func (c *Client) FetchHistory(yahooSymbol, period string) (domain.PriceHistory, error) {
	t, err := ticker.New(yahooSymbol)
	if err != nil {
		return nil, fmt.Errorf("failed to create ticker: %w", err)
	}
	defer t.Close()

	params := models.HistoryParams{
		Period:     period,
		Interval:   "1d",
		AutoAdjust: true,
	}
	bars, err := t.History(params)
	if err != nil {
		return nil, fmt.Errorf("failed to get history for %s: %w", yahooSymbol, err)
	}

	out := make([]domain.Bar, 0, len(bars))
	for _, bar := range bars {
		out = append(out, domain.Bar{
			Date:   bar.Date,
			Open:   bar.Open,
			High:   bar.High,
			Low:    bar.Low,
			Close:  bar.Close,
			Volume: float64(bar.Volume),
		})
	}
	return domain.NewPriceHistory(out), nil
}
