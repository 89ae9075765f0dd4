// Package analysis runs the daily scoring batch over the tracked universe
// and serves the stored results.
package analysis

import (
	"time"

	"github.com/redchoeng/titan-kr/internal/domain"
	"github.com/redchoeng/titan-kr/internal/modules/composer"
)

// Run is one batch execution record
type Run struct {
	ID           string              `json:"id"`
	Mode         domain.AnalysisMode `json:"mode"`
	Regime       string              `json:"regime"`
	RegimeDetail string              `json:"regime_detail"`
	StartedAt    time.Time           `json:"started_at"`
	FinishedAt   time.Time           `json:"finished_at"`
	SymbolCount  int                 `json:"symbol_count"`
	ErrorCount   int                 `json:"error_count"`
}

// RunReport is a completed run with its scored symbols, ordered by score
// descending
type RunReport struct {
	Run     Run               `json:"run"`
	Results []composer.Result `json:"results"`
}

// StoredResult is one persisted symbol result with its parent run context
type StoredResult struct {
	RunID     string          `json:"run_id"`
	Mode      string          `json:"mode"`
	StartedAt time.Time       `json:"started_at"`
	Result    composer.Result `json:"result"`
}
