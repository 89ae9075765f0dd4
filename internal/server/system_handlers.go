package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/redchoeng/titan-kr/internal/database"
)

// BatchStatus reports whether a scoring batch is currently executing
type BatchStatus interface {
	Running() bool
}

// SystemHandlers serves system monitoring endpoints
type SystemHandlers struct {
	log         zerolog.Logger
	startupTime time.Time
	analysisDB  *database.DB
	batch       BatchStatus
}

// NewSystemHandlers creates system handlers
func NewSystemHandlers(log zerolog.Logger, analysisDB *database.DB, batch BatchStatus) *SystemHandlers {
	return &SystemHandlers{
		log:         log.With().Str("handlers", "system").Logger(),
		startupTime: time.Now(),
		analysisDB:  analysisDB,
		batch:       batch,
	}
}

// RegisterRoutes mounts the system routes
func (h *SystemHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/system", func(r chi.Router) {
		r.Get("/health", h.HandleSystemHealth)
	})
}

// SystemHealthResponse is the system health report
type SystemHealthResponse struct {
	Status          string  `json:"status"`
	UptimeSeconds   float64 `json:"uptime_seconds"`
	CPUPercent      float64 `json:"cpu_percent"`
	MemoryPercent   float64 `json:"memory_percent"`
	DatabaseOK      bool    `json:"database_ok"`
	AnalysisRunning bool    `json:"analysis_running"`
	Timestamp       string  `json:"timestamp"`
}

// HandleSystemHealth returns process and host health
// GET /api/system/health
func (h *SystemHandlers) HandleSystemHealth(w http.ResponseWriter, r *http.Request) {
	cpuPct, memPct := h.resourceUsage()

	dbOK := true
	if err := h.analysisDB.Conn().Ping(); err != nil {
		h.log.Error().Err(err).Msg("Analysis database ping failed")
		dbOK = false
	}

	resp := SystemHealthResponse{
		Status:          "healthy",
		UptimeSeconds:   time.Since(h.startupTime).Seconds(),
		CPUPercent:      cpuPct,
		MemoryPercent:   memPct,
		DatabaseOK:      dbOK,
		AnalysisRunning: h.batch != nil && h.batch.Running(),
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
	}
	if !dbOK {
		resp.Status = "degraded"
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// resourceUsage samples CPU and memory utilization
func (h *SystemHandlers) resourceUsage() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}
	return cpuAvg, memStat.UsedPercent
}
