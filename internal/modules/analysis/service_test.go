package analysis

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redchoeng/titan-kr/internal/database"
	"github.com/redchoeng/titan-kr/internal/domain"
	"github.com/redchoeng/titan-kr/internal/modules/rotation"
	"github.com/redchoeng/titan-kr/internal/modules/universe"
)

type mockGateway struct {
	snapshots map[string]domain.SymbolSnapshot
	histories map[string]domain.PriceHistory
	benchmark domain.PriceHistory
	rotation  map[string]rotation.Entry
}

func (m *mockGateway) GetSnapshot(code string) (domain.SymbolSnapshot, error) {
	snap, ok := m.snapshots[code]
	if !ok {
		return domain.SymbolSnapshot{}, fmt.Errorf("symbol not found: %s", code)
	}
	return snap, nil
}

func (m *mockGateway) GetHistory(code string, days int) (domain.PriceHistory, error) {
	return m.histories[code], nil
}

func (m *mockGateway) GetBenchmarkHistory(days int) (domain.PriceHistory, error) {
	return m.benchmark, nil
}

func (m *mockGateway) GetSectorRotation() map[string]rotation.Entry {
	return m.rotation
}

type stubUniverse struct {
	symbols []universe.Symbol
}

func (s *stubUniverse) Symbols(mode domain.AnalysisMode) []universe.Symbol {
	return s.symbols
}

func (s *stubUniverse) Screen(snap domain.SymbolSnapshot) (bool, string) {
	if snap.MarketCap < 1_000_000_000_000 {
		return false, "시가총액 미달"
	}
	return true, ""
}

func testRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := database.New(database.Config{
		Path: filepath.Join(t.TempDir(), "analysis.db"),
		Name: "analysis",
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db.Conn(), zerolog.Nop())
}

func risingHistory(n int, start, step float64) domain.PriceHistory {
	bars := make([]domain.Bar, n)
	last := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		c := start + step*float64(i)
		bars[i] = domain.Bar{
			Date:   last.AddDate(0, 0, i-n+1),
			Open:   c,
			High:   c * 1.01,
			Low:    c * 0.99,
			Close:  c,
			Volume: 1_000_000,
		}
	}
	return domain.NewPriceHistory(bars)
}

func fptr(v float64) *float64 { return &v }

func scoreableSnapshot(code, name, sector string) domain.SymbolSnapshot {
	return domain.SymbolSnapshot{
		Code:            code,
		Name:            name,
		Sector:          sector,
		Price:           70000,
		MarketCap:       400_000_000_000_000,
		AvgVolume:       10_000_000,
		ROE:             fptr(18),
		OperatingMargin: fptr(25),
		RevenueGrowth:   fptr(12),
	}
}

func newTestService(t *testing.T, gw *mockGateway, uni Universe) (*Service, *Repository) {
	t.Helper()
	repo := testRepo(t)
	return NewService(gw, uni, repo, 2, zerolog.Nop()), repo
}

func TestRunAnalysis(t *testing.T) {
	gw := &mockGateway{
		snapshots: map[string]domain.SymbolSnapshot{
			"005930": scoreableSnapshot("005930", "삼성전자", "전기전자"),
			"000660": scoreableSnapshot("000660", "SK하이닉스", "전기전자"),
			"068270": {
				Code: "068270", Name: "셀트리온", Sector: "바이오",
				Price: 150000, MarketCap: 500_000_000_000, AvgVolume: 500_000,
			},
		},
		histories: map[string]domain.PriceHistory{
			"005930": risingHistory(300, 50000, 80),
			"000660": risingHistory(300, 150000, 250),
			"068270": risingHistory(300, 140000, 40),
		},
		benchmark: risingHistory(300, 2400, 3),
		rotation: map[string]rotation.Entry{
			"전기전자": {Bonus: 5, Phase: "수급유입"},
		},
	}
	uni := &stubUniverse{symbols: []universe.Symbol{
		{Code: "005930", Name: "삼성전자", Market: universe.KOSPI, Sector: "전기전자"},
		{Code: "000660", Name: "SK하이닉스", Market: universe.KOSPI, Sector: "전기전자"},
		{Code: "068270", Name: "셀트리온", Market: universe.KOSPI, Sector: "바이오"},
		{Code: "999999", Name: "유령종목", Market: universe.KOSDAQ, Sector: "기타"},
	}}
	svc, repo := newTestService(t, gw, uni)

	report, err := svc.RunAnalysis(domain.ModeGrowth)
	require.NoError(t, err)

	// one screened out, one missing upstream, two scored
	assert.Equal(t, 2, report.Run.SymbolCount)
	assert.Equal(t, 1, report.Run.ErrorCount)
	assert.Equal(t, domain.ModeGrowth, report.Run.Mode)
	assert.NotEmpty(t, report.Run.ID)
	assert.NotEmpty(t, report.Run.Regime)
	require.Len(t, report.Results, 2)

	// ordered by score descending
	assert.GreaterOrEqual(t, report.Results[0].Score, report.Results[1].Score)
	for _, res := range report.Results {
		assert.NotEmpty(t, res.Verdict)
		assert.NotNil(t, res.Levels)
	}

	// persisted and readable back
	stored, err := repo.LatestRun(domain.ModeGrowth)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, report.Run.ID, stored.Run.ID)
	require.Len(t, stored.Results, 2)
	assert.Equal(t, report.Results[0].Code, stored.Results[0].Code)
	assert.Equal(t, report.Results[0].Score, stored.Results[0].Score)

	history, err := repo.ResultsByCode(report.Results[0].Code, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, report.Run.ID, history[0].RunID)
}

func TestRunAnalysisInvalidMode(t *testing.T) {
	svc, _ := newTestService(t, &mockGateway{}, &stubUniverse{})

	_, err := svc.RunAnalysis(domain.AnalysisMode("momentum"))
	assert.Error(t, err)
}

func TestLatestRunPicksNewest(t *testing.T) {
	gw := &mockGateway{
		snapshots: map[string]domain.SymbolSnapshot{
			"005930": scoreableSnapshot("005930", "삼성전자", "전기전자"),
		},
		histories: map[string]domain.PriceHistory{
			"005930": risingHistory(300, 50000, 80),
		},
		benchmark: risingHistory(300, 2400, 3),
	}
	uni := &stubUniverse{symbols: []universe.Symbol{
		{Code: "005930", Name: "삼성전자", Market: universe.KOSPI, Sector: "전기전자"},
	}}
	svc, repo := newTestService(t, gw, uni)

	first, err := svc.RunAnalysis(domain.ModeGrowth)
	require.NoError(t, err)
	second, err := svc.RunAnalysis(domain.ModeGrowth)
	require.NoError(t, err)
	require.NotEqual(t, first.Run.ID, second.Run.ID)

	latest, err := repo.LatestRun(domain.ModeGrowth)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, second.Run.ID, latest.Run.ID)

	history, err := repo.ResultsByCode("005930", 1)
	require.NoError(t, err)
	require.Len(t, history, 1)
}

func TestLatestRunEmpty(t *testing.T) {
	repo := testRepo(t)

	report, err := repo.LatestRun(domain.ModeValue)
	require.NoError(t, err)
	assert.Nil(t, report)

	results, err := repo.ResultsByCode("005930", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}
