package analysis

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redchoeng/titan-kr/internal/domain"
	"github.com/redchoeng/titan-kr/internal/modules/universe"
)

func testRouter(t *testing.T) (*chi.Mux, *Service, *Repository) {
	t.Helper()
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

	handlers := NewHandlers(svc, repo, domain.ModeGrowth, zerolog.Nop())
	r := chi.NewRouter()
	r.Route("/api", handlers.RegisterRoutes)
	return r, svc, repo
}

func TestHandleGetLatestNoRuns(t *testing.T) {
	r, _, _ := testRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analysis/latest", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleGetLatestInvalidMode(t *testing.T) {
	r, _, _ := testRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analysis/latest?mode=momentum", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetLatestAfterRun(t *testing.T) {
	r, svc, _ := testRouter(t)

	_, err := svc.RunAnalysis(domain.ModeGrowth)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analysis/latest?mode=growth", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var report RunReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, domain.ModeGrowth, report.Run.Mode)
	require.Len(t, report.Results, 1)
	assert.Equal(t, "005930", report.Results[0].Code)
}

func TestHandleGetResultsByCode(t *testing.T) {
	r, svc, _ := testRouter(t)

	_, err := svc.RunAnalysis(domain.ModeGrowth)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analysis/results/005930", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Code    string         `json:"code"`
		Results []StoredResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "005930", body.Code)
	require.Len(t, body.Results, 1)
	assert.Equal(t, "005930", body.Results[0].Result.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analysis/results/999999", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analysis/results/005930?limit=abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleRunAnalysis(t *testing.T) {
	r, _, repo := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/analysis/run", strings.NewReader(`{"mode":"growth"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusAccepted, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "started", body["status"])
	assert.Equal(t, "growth", body["mode"])

	// background run lands in the repository
	deadline := time.Now().Add(5 * time.Second)
	for {
		report, err := repo.LatestRun(domain.ModeGrowth)
		require.NoError(t, err)
		if report != nil {
			assert.Equal(t, 1, report.Run.SymbolCount)
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("background run never completed")
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestHandleRunAnalysisInvalidMode(t *testing.T) {
	r, _, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/analysis/run", strings.NewReader(`{"mode":"yolo"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
