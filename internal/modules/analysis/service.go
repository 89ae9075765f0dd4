package analysis

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/redchoeng/titan-kr/internal/domain"
	"github.com/redchoeng/titan-kr/internal/gateway"
	"github.com/redchoeng/titan-kr/internal/modules/composer"
	"github.com/redchoeng/titan-kr/internal/modules/regime"
	"github.com/redchoeng/titan-kr/internal/modules/rotation"
	"github.com/redchoeng/titan-kr/internal/modules/scoring/scorers"
	"github.com/redchoeng/titan-kr/internal/modules/universe"
)

// historyBars covers the 120-bar technical window plus the 252-bar
// 52-week range with slack for holidays
const historyBars = 300

// ErrRunInProgress is returned when a batch is already running
var ErrRunInProgress = errors.New("analysis run already in progress")

// Service orchestrates one scoring pass: regime detection once, then a
// bounded concurrent fan-out over the universe, then persistence.
type Service struct {
	gw            gateway.MarketDataGateway
	universe      Universe
	repo          *Repository
	detector      *regime.Detector
	fundamentals  *scorers.FundamentalsScorer
	technicals    *scorers.TechnicalsScorer
	maxConcurrent int
	log           zerolog.Logger

	mu      sync.Mutex
	running bool
}

// NewService creates an analysis service
func NewService(gw gateway.MarketDataGateway, universeSvc Universe,
	repo *Repository, maxConcurrent int, log zerolog.Logger) *Service {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Service{
		gw:            gw,
		universe:      universeSvc,
		repo:          repo,
		detector:      regime.NewDetector(),
		fundamentals:  scorers.NewFundamentalsScorer(),
		technicals:    scorers.NewTechnicalsScorer(),
		maxConcurrent: maxConcurrent,
		log:           log.With().Str("service", "analysis").Logger(),
	}
}

// RunAnalysis executes a full scoring pass for the given mode. Only one run
// may be active at a time. Per-symbol failures are counted and logged, never
// fatal to the batch.
func (s *Service) RunAnalysis(mode domain.AnalysisMode) (*RunReport, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("invalid analysis mode: %s", mode)
	}
	if !s.tryAcquire() {
		return nil, ErrRunInProgress
	}
	defer s.release()

	startedAt := time.Now()
	s.log.Info().Str("mode", string(mode)).Msg("Starting analysis run")

	bench, err := s.gw.GetBenchmarkHistory(historyBars)
	if err != nil {
		return nil, fmt.Errorf("failed to load benchmark history: %w", err)
	}
	detection := s.detector.Detect(bench)
	rotationTable := rotation.NewTable(s.gw.GetSectorRotation())
	comp := composer.NewComposer(mode)

	symbols := s.universe.Symbols(mode)

	var (
		wg       sync.WaitGroup
		resultMu sync.Mutex
		results  []composer.Result
		errCount int
	)
	sem := make(chan struct{}, s.maxConcurrent)

	for _, sym := range symbols {
		wg.Add(1)
		sem <- struct{}{}
		go func(sym universe.Symbol) {
			defer wg.Done()
			defer func() { <-sem }()
			defer func() {
				if r := recover(); r != nil {
					s.log.Error().Str("code", sym.Code).Interface("panic", r).
						Msg("Symbol analysis panicked")
					resultMu.Lock()
					errCount++
					resultMu.Unlock()
				}
			}()

			res, skip, err := s.analyzeSymbol(sym, mode, bench, detection, rotationTable, comp)
			resultMu.Lock()
			defer resultMu.Unlock()
			switch {
			case err != nil:
				errCount++
				s.log.Warn().Err(err).Str("code", sym.Code).Msg("Symbol analysis failed")
			case skip:
				// screened out, not an error
			default:
				results = append(results, res)
			}
		}(sym)
	}
	wg.Wait()

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Code < results[j].Code
	})

	run := Run{
		ID:           uuid.New().String(),
		Mode:         mode,
		Regime:       string(detection.Regime),
		RegimeDetail: detection.Description,
		StartedAt:    startedAt,
		FinishedAt:   time.Now(),
		SymbolCount:  len(results),
		ErrorCount:   errCount,
	}
	if err := s.repo.SaveRun(run, results); err != nil {
		return nil, fmt.Errorf("failed to persist run: %w", err)
	}

	s.log.Info().Str("run_id", run.ID).Str("regime", run.Regime).
		Int("symbols", run.SymbolCount).Int("errors", run.ErrorCount).
		Dur("duration", run.FinishedAt.Sub(run.StartedAt)).
		Msg("Analysis run complete")

	return &RunReport{Run: run, Results: results}, nil
}

func (s *Service) analyzeSymbol(sym universe.Symbol, mode domain.AnalysisMode,
	bench domain.PriceHistory, detection regime.Detection,
	rotationTable *rotation.Table, comp *composer.Composer) (composer.Result, bool, error) {

	snap, err := s.gw.GetSnapshot(sym.Code)
	if err != nil {
		return composer.Result{}, false, err
	}

	if ok, reason := s.universe.Screen(snap); !ok {
		s.log.Debug().Str("code", sym.Code).Str("reason", reason).Msg("Symbol screened out")
		return composer.Result{}, true, nil
	}

	history, err := s.gw.GetHistory(sym.Code, historyBars)
	if err != nil {
		return composer.Result{}, false, err
	}

	fund := s.fundamentals.Calculate(snap, mode)
	tech := s.technicals.Calculate(history, bench)

	res := comp.Compose(composer.Input{
		Snapshot:    snap,
		History:     history,
		Fundamental: fund,
		Technical:   tech,
		Regime:      detection,
		Rotation:    rotationTable,
	})
	return res, false, nil
}

// Running reports whether a batch is currently executing
func (s *Service) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Service) tryAcquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return false
	}
	s.running = true
	return true
}

func (s *Service) release() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}
