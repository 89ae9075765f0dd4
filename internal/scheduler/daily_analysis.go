package scheduler

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/redchoeng/titan-kr/internal/domain"
	"github.com/redchoeng/titan-kr/internal/modules/analysis"
)

// AnalysisRunner runs one scoring batch
type AnalysisRunner interface {
	RunAnalysis(mode domain.AnalysisMode) (*analysis.RunReport, error)
}

// DailyAnalysisJob runs the scoring batches after the KRX close. Modes run
// sequentially in one job so they never trip the single-flight guard.
type DailyAnalysisJob struct {
	runner AnalysisRunner
	modes  []domain.AnalysisMode
	log    zerolog.Logger
}

// NewDailyAnalysisJob creates the daily analysis job
func NewDailyAnalysisJob(runner AnalysisRunner, modes []domain.AnalysisMode, log zerolog.Logger) *DailyAnalysisJob {
	return &DailyAnalysisJob{
		runner: runner,
		modes:  modes,
		log:    log.With().Str("job", "daily_analysis").Logger(),
	}
}

// Name returns the job name
func (j *DailyAnalysisJob) Name() string {
	return "daily_analysis"
}

// Run executes one batch per mode. An already-running batch skips the whole
// pass quietly so an operator-triggered run and the schedule never collide.
func (j *DailyAnalysisJob) Run() error {
	for _, mode := range j.modes {
		report, err := j.runner.RunAnalysis(mode)
		if err != nil {
			if errors.Is(err, analysis.ErrRunInProgress) {
				j.log.Warn().Str("mode", string(mode)).
					Msg("Skipping scheduled run, batch already in progress")
				return nil
			}
			return err
		}

		j.log.Info().Str("mode", string(mode)).Str("run_id", report.Run.ID).
			Int("symbols", report.Run.SymbolCount).
			Msg("Scheduled analysis run finished")
	}
	return nil
}
