package analysis

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/redchoeng/titan-kr/internal/domain"
)

// Handlers serves the analysis HTTP API
type Handlers struct {
	service     *Service
	repo        *Repository
	defaultMode domain.AnalysisMode
	log         zerolog.Logger
}

// NewHandlers creates analysis HTTP handlers
func NewHandlers(service *Service, repo *Repository, defaultMode domain.AnalysisMode, log zerolog.Logger) *Handlers {
	return &Handlers{
		service:     service,
		repo:        repo,
		defaultMode: defaultMode,
		log:         log.With().Str("handlers", "analysis").Logger(),
	}
}

// RegisterRoutes mounts the analysis routes
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Route("/analysis", func(r chi.Router) {
		r.Get("/latest", h.HandleGetLatest)
		r.Get("/results/{code}", h.HandleGetResultsByCode)
		r.Post("/run", h.HandleRunAnalysis)
	})
}

// HandleGetLatest returns the most recent run for a mode
// GET /api/analysis/latest?mode=growth
func (h *Handlers) HandleGetLatest(w http.ResponseWriter, r *http.Request) {
	mode, ok := h.resolveMode(w, r.URL.Query().Get("mode"))
	if !ok {
		return
	}

	report, err := h.repo.LatestRun(mode)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load latest run")
		http.Error(w, "failed to load latest run", http.StatusInternalServerError)
		return
	}
	if report == nil {
		http.Error(w, "no analysis run found", http.StatusNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}

// HandleGetResultsByCode returns a symbol's scoring history across runs
// GET /api/analysis/results/{code}?limit=30
func (h *Handlers) HandleGetResultsByCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	results, err := h.repo.ResultsByCode(code, limit)
	if err != nil {
		h.log.Error().Err(err).Str("code", code).Msg("Failed to load symbol results")
		http.Error(w, "failed to load results", http.StatusInternalServerError)
		return
	}
	if len(results) == 0 {
		http.Error(w, "no results for symbol", http.StatusNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"code":    code,
		"results": results,
	})
}

// runRequest is the optional POST /run body
type runRequest struct {
	Mode string `json:"mode"`
}

// HandleRunAnalysis triggers a batch in the background
// POST /api/analysis/run
func (h *Handlers) HandleRunAnalysis(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
	}
	if req.Mode == "" {
		req.Mode = r.URL.Query().Get("mode")
	}
	mode, ok := h.resolveMode(w, req.Mode)
	if !ok {
		return
	}

	if h.service.Running() {
		http.Error(w, "analysis run already in progress", http.StatusConflict)
		return
	}

	go func() {
		if _, err := h.service.RunAnalysis(mode); err != nil && !errors.Is(err, ErrRunInProgress) {
			h.log.Error().Err(err).Str("mode", string(mode)).Msg("Background analysis run failed")
		}
	}()

	h.writeJSON(w, http.StatusAccepted, map[string]string{
		"status": "started",
		"mode":   string(mode),
	})
}

// resolveMode validates a raw mode string, falling back to the configured
// default when empty. Writes a 400 and returns false on an unknown mode.
func (h *Handlers) resolveMode(w http.ResponseWriter, raw string) (domain.AnalysisMode, bool) {
	if raw == "" {
		return h.defaultMode, true
	}
	mode := domain.AnalysisMode(raw)
	if !mode.Valid() {
		http.Error(w, "invalid mode, expected growth or value", http.StatusBadRequest)
		return "", false
	}
	return mode, true
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
