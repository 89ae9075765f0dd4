package gateway

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/redchoeng/titan-kr/internal/clients/yahoo"
	"github.com/redchoeng/titan-kr/internal/domain"
	"github.com/redchoeng/titan-kr/internal/modules/rotation"
	"github.com/redchoeng/titan-kr/internal/modules/universe"
)

const (
	// avgVolumeBars is the window for average volume and traded value
	avgVolumeBars = 20
	// betaBars is the lookback for beta regression, roughly one trading year
	betaBars = 252
	// minBetaReturns is the minimum paired daily returns for a usable beta
	minBetaReturns = 60
	// staleAfter is how old the newest cached bar may be before a refetch.
	// Long enough to ride out weekends and KRX holidays.
	staleAfter = 4 * 24 * time.Hour
)

// defaultRotationPhases is the operator-maintained sector rotation snapshot.
// Sectors absent from this map resolve to the neutral phase.
var defaultRotationPhases = map[string]rotation.Phase{
	"AI/반도체": rotation.PhaseInflow,
	"방산":     rotation.PhaseInflow,
	"조선":     rotation.PhaseTurning,
	"2차전지":   rotation.PhaseCold,
	"바이오":    rotation.PhaseWatching,
	"K-플랫폼":  rotation.PhaseWatching,
	"금융":     rotation.PhaseInflow,
	"게임":     rotation.PhaseTurning,
}

// Gateway merges the curated universe, the Yahoo client and the local OHLCV
// cache into a single market data source.
type Gateway struct {
	client    *yahoo.Client
	history   *universe.HistoryDB
	symbols   map[string]universe.Symbol
	benchmark string
	rotation  map[string]rotation.Entry
	log       zerolog.Logger
}

// New creates a gateway over the given universe symbols. A nil phases map
// falls back to the built-in rotation snapshot.
func New(client *yahoo.Client, history *universe.HistoryDB, symbols []universe.Symbol,
	benchmarkSymbol string, phases map[string]rotation.Phase, log zerolog.Logger) *Gateway {
	byCode := make(map[string]universe.Symbol, len(symbols))
	for _, s := range symbols {
		byCode[s.Code] = s
	}
	if phases == nil {
		phases = defaultRotationPhases
	}
	entries := make(map[string]rotation.Entry, len(phases))
	for sector, phase := range phases {
		entries[sector] = rotation.Entry{Bonus: phase.Bonus(), Phase: string(phase)}
	}
	return &Gateway{
		client:    client,
		history:   history,
		symbols:   byCode,
		benchmark: benchmarkSymbol,
		rotation:  entries,
		log:       log.With().Str("component", "gateway").Logger(),
	}
}

// GetSnapshot builds the fundamental fact sheet for a universe symbol.
// Volume aggregates and beta are derived from the cached price history.
func (g *Gateway) GetSnapshot(code string) (domain.SymbolSnapshot, error) {
	sym, ok := g.symbols[code]
	if !ok {
		return domain.SymbolSnapshot{}, fmt.Errorf("%w: %s", ErrNotFound, code)
	}

	f, err := g.client.FetchFundamentals(sym.YahooSymbol())
	if err != nil {
		return domain.SymbolSnapshot{}, fmt.Errorf("%w: %s: %v", ErrUnavailable, code, err)
	}

	snap := domain.SymbolSnapshot{
		Code:                sym.Code,
		Name:                sym.Name,
		Sector:              sym.Sector,
		Industry:            f.Industry,
		Price:               f.Price,
		MarketCap:           f.MarketCap,
		ROE:                 f.ROE,
		OperatingMargin:     f.OperatingMargin,
		RevenueGrowth:       f.RevenueGrowth,
		EarningsGrowth:      f.EarningsGrowth,
		DividendYield:       f.DividendYield,
		FiveYearAvgDivYield: f.FiveYearAvgDivYield,
		TrailingPER:         f.TrailingPER,
		PEGRatio:            f.PEGRatio,
		PriceToBook:         f.PriceToBook,
		DebtToEquity:        f.DebtToEquity,
	}

	hist, err := g.GetHistory(code, betaBars+1)
	if err != nil {
		return domain.SymbolSnapshot{}, err
	}
	if len(hist) > 0 {
		snap.AvgVolume = averageVolume(hist)
		if tv := averageTradedValue(hist); tv > 0 {
			snap.TradedValue = &tv
		}
	}
	if bench, err := g.GetBenchmarkHistory(betaBars + 1); err == nil {
		if beta := computeBeta(hist, bench); beta != nil {
			snap.Beta = beta
		}
	}
	return snap, nil
}

// GetHistory returns up to days of daily bars for a universe symbol,
// refreshing the local cache from Yahoo when it is missing or stale.
// When upstream is down the cached series is returned as-is.
func (g *Gateway) GetHistory(code string, days int) (domain.PriceHistory, error) {
	sym, ok := g.symbols[code]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, code)
	}
	return g.cachedHistory(code, sym.YahooSymbol(), days), nil
}

// GetBenchmarkHistory returns daily bars for the benchmark index
func (g *Gateway) GetBenchmarkHistory(days int) (domain.PriceHistory, error) {
	return g.cachedHistory(g.benchmark, g.benchmark, days), nil
}

// GetSectorRotation returns the current sector rotation snapshot
func (g *Gateway) GetSectorRotation() map[string]rotation.Entry {
	out := make(map[string]rotation.Entry, len(g.rotation))
	for k, v := range g.rotation {
		out[k] = v
	}
	return out
}

func (g *Gateway) cachedHistory(code, yahooSymbol string, days int) domain.PriceHistory {
	cached, err := g.history.GetHistory(code, days)
	if err != nil {
		g.log.Warn().Err(err).Str("code", code).Msg("History cache read failed")
		cached = nil
	}
	if g.isFresh(code, days, cached) {
		return cached
	}

	period := "1y"
	if days > 260 {
		period = "2y"
	}
	fetched, err := g.client.FetchHistory(yahooSymbol, period)
	if err != nil {
		g.log.Warn().Err(err).Str("code", code).Msg("History fetch failed, serving cache")
		return cached
	}
	if err := g.history.SaveHistory(code, fetched); err != nil {
		g.log.Warn().Err(err).Str("code", code).Msg("History cache write failed")
	}
	if len(fetched) > days {
		fetched = fetched[len(fetched)-days:]
	}
	return fetched
}

func (g *Gateway) isFresh(code string, days int, cached domain.PriceHistory) bool {
	if len(cached) < days {
		return false
	}
	last, err := g.history.LastDate(code)
	if err != nil || last.IsZero() {
		return false
	}
	return time.Since(last) < staleAfter
}

func averageVolume(h domain.PriceHistory) float64 {
	if len(h) == 0 {
		return 0
	}
	window := h
	if len(window) > avgVolumeBars {
		window = window[len(window)-avgVolumeBars:]
	}
	var sum float64
	for _, b := range window {
		sum += b.Volume
	}
	return sum / float64(len(window))
}

func averageTradedValue(h domain.PriceHistory) float64 {
	if len(h) == 0 {
		return 0
	}
	window := h
	if len(window) > avgVolumeBars {
		window = window[len(window)-avgVolumeBars:]
	}
	var sum float64
	for _, b := range window {
		sum += b.Close * b.Volume
	}
	return sum / float64(len(window))
}

// computeBeta regresses the symbol's daily returns against the benchmark,
// pairing observations by calendar date. Returns nil when the overlap is too
// short or the benchmark shows no variance.
func computeBeta(stock, bench domain.PriceHistory) *float64 {
	if len(stock) < 2 || len(bench) < 2 {
		return nil
	}
	benchClose := make(map[string]float64, len(bench))
	for _, b := range bench {
		benchClose[b.Date.Format("2006-01-02")] = b.Close
	}

	var stockRet, benchRet []float64
	for i := 1; i < len(stock); i++ {
		prev, curr := stock[i-1], stock[i]
		bPrev, okPrev := benchClose[prev.Date.Format("2006-01-02")]
		bCurr, okCurr := benchClose[curr.Date.Format("2006-01-02")]
		if !okPrev || !okCurr || prev.Close <= 0 || bPrev <= 0 {
			continue
		}
		stockRet = append(stockRet, curr.Close/prev.Close-1)
		benchRet = append(benchRet, bCurr/bPrev-1)
	}
	if len(stockRet) < minBetaReturns {
		return nil
	}

	variance := stat.Variance(benchRet, nil)
	if variance == 0 {
		return nil
	}
	beta := stat.Covariance(stockRet, benchRet, nil) / variance
	return &beta
}
