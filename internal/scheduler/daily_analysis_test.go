package scheduler

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redchoeng/titan-kr/internal/domain"
	"github.com/redchoeng/titan-kr/internal/modules/analysis"
)

type stubRunner struct {
	modes []domain.AnalysisMode
	err   error
}

func (s *stubRunner) RunAnalysis(mode domain.AnalysisMode) (*analysis.RunReport, error) {
	s.modes = append(s.modes, mode)
	if s.err != nil {
		return nil, s.err
	}
	return &analysis.RunReport{Run: analysis.Run{ID: "run-1", Mode: mode, SymbolCount: 3}}, nil
}

func TestDailyAnalysisJobRun(t *testing.T) {
	runner := &stubRunner{}
	job := NewDailyAnalysisJob(runner,
		[]domain.AnalysisMode{domain.ModeGrowth, domain.ModeValue}, zerolog.Nop())

	assert.Equal(t, "daily_analysis", job.Name())
	require.NoError(t, job.Run())
	assert.Equal(t, []domain.AnalysisMode{domain.ModeGrowth, domain.ModeValue}, runner.modes)
}

func TestDailyAnalysisJobSkipsWhenBusy(t *testing.T) {
	runner := &stubRunner{err: analysis.ErrRunInProgress}
	job := NewDailyAnalysisJob(runner, []domain.AnalysisMode{domain.ModeValue}, zerolog.Nop())

	assert.NoError(t, job.Run())
}

func TestDailyAnalysisJobPropagatesFailures(t *testing.T) {
	runner := &stubRunner{err: errors.New("benchmark feed down")}
	job := NewDailyAnalysisJob(runner, []domain.AnalysisMode{domain.ModeGrowth}, zerolog.Nop())

	assert.Error(t, job.Run())
}

func TestSchedulerRegistersJob(t *testing.T) {
	s := New(zerolog.Nop())
	job := NewDailyAnalysisJob(&stubRunner{}, []domain.AnalysisMode{domain.ModeGrowth}, zerolog.Nop())

	assert.NoError(t, s.AddJob("0 40 15 * * MON-FRI", job))
	assert.Error(t, s.AddJob("not a schedule", job))
}
