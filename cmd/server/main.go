package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/redchoeng/titan-kr/internal/clients/yahoo"
	"github.com/redchoeng/titan-kr/internal/config"
	"github.com/redchoeng/titan-kr/internal/database"
	"github.com/redchoeng/titan-kr/internal/domain"
	"github.com/redchoeng/titan-kr/internal/gateway"
	"github.com/redchoeng/titan-kr/internal/modules/analysis"
	"github.com/redchoeng/titan-kr/internal/modules/universe"
	"github.com/redchoeng/titan-kr/internal/scheduler"
	"github.com/redchoeng/titan-kr/internal/server"
	"github.com/redchoeng/titan-kr/pkg/logger"
)

func main() {
	// Load configuration first so the log level is honored from the start
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New(logger.Config{Level: "info", Pretty: true})
		fallback.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Str("mode", string(cfg.AnalysisMode)).
		Str("benchmark", cfg.BenchmarkSymbol).
		Msg("Starting titan-kr analysis engine")

	// analysis.db holds run and result records
	analysisDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "analysis.db"),
		Profile: database.ProfileStandard,
		Name:    "analysis",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize analysis database")
	}
	defer analysisDB.Close()

	if err := analysisDB.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate analysis database")
	}

	// history.db caches daily OHLCV bars per symbol
	historyDB, err := universe.NewHistoryDB(filepath.Join(cfg.DataDir, "history.db"), log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize history database")
	}
	defer historyDB.Close()

	// Market data plumbing
	yahooClient := yahoo.NewClient(log)
	universeService := universe.NewService(log)

	// Both mode universes feed one gateway; overlapping codes collapse
	growthSymbols := universe.Symbols(domain.ModeGrowth)
	valueSymbols := universe.Symbols(domain.ModeValue)
	allSymbols := make([]universe.Symbol, 0, len(growthSymbols)+len(valueSymbols))
	allSymbols = append(allSymbols, growthSymbols...)
	allSymbols = append(allSymbols, valueSymbols...)
	marketGateway := gateway.New(
		yahooClient,
		historyDB,
		allSymbols,
		cfg.BenchmarkSymbol,
		nil,
		log,
	)

	// Analysis batch pipeline
	analysisRepo := analysis.NewRepository(analysisDB.Conn(), log)
	analysisService := analysis.NewService(marketGateway, universeService, analysisRepo, cfg.MaxConcurrent, log)
	analysisHandlers := analysis.NewHandlers(analysisService, analysisRepo, cfg.AnalysisMode, log)

	// Daily schedule, 15:40 KST on trading days by default
	sched := scheduler.New(log)
	dailyJob := scheduler.NewDailyAnalysisJob(analysisService,
		[]domain.AnalysisMode{domain.ModeGrowth, domain.ModeValue}, log)
	if err := sched.AddJob(cfg.AnalysisSchedule, dailyJob); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.AnalysisSchedule).Msg("Failed to register daily analysis job")
	}
	sched.Start()
	defer sched.Stop()

	systemHandlers := server.NewSystemHandlers(log, analysisDB, analysisService)

	srv := server.New(server.Config{
		Log:              log,
		Port:             cfg.Port,
		DevMode:          cfg.DevMode,
		AnalysisHandlers: analysisHandlers,
		SystemHandlers:   systemHandlers,
	})

	// Serve until interrupted
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatal().Err(err).Msg("HTTP server failed")
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
