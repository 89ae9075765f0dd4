package analysis

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/redchoeng/titan-kr/internal/domain"
	"github.com/redchoeng/titan-kr/internal/modules/composer"
)

// timestampLayout is fixed-width so lexicographic order in SQL matches
// chronological order
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Repository persists analysis runs and their per-symbol results.
// The breakdown column stores the full scored result as JSON; the flat
// columns exist for querying without unmarshalling.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates an analysis repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repository", "analysis").Logger(),
	}
}

// SaveRun stores a completed run and all of its results in one transaction
func (r *Repository) SaveRun(run Run, results []composer.Result) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`
		INSERT INTO analysis_runs (id, mode, regime, regime_detail, started_at, finished_at, symbol_count, error_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, string(run.Mode), run.Regime, run.RegimeDetail,
		run.StartedAt.UTC().Format(timestampLayout), run.FinishedAt.UTC().Format(timestampLayout),
		run.SymbolCount, run.ErrorCount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", run.ID, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO analysis_results (run_id, code, name, score, verdict, buy_price, target_price, stop_price, breakdown, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare result insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, res := range results {
		detail, err := json.Marshal(res)
		if err != nil {
			return fmt.Errorf("failed to marshal result for %s: %w", res.Code, err)
		}
		var buy, target, stop *float64
		if res.Levels != nil {
			buy, target, stop = &res.Levels.Buy, &res.Levels.Target, &res.Levels.Stop
		}
		if _, err := stmt.Exec(run.ID, res.Code, res.Name, res.Score, res.Verdict,
			buy, target, stop, string(detail), now.Format(timestampLayout)); err != nil {
			return fmt.Errorf("failed to insert result for %s: %w", res.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run %s: %w", run.ID, err)
	}
	return nil
}

// LatestRun returns the most recent completed run for a mode with its
// results ordered by score descending. Returns nil when no run exists yet.
func (r *Repository) LatestRun(mode domain.AnalysisMode) (*RunReport, error) {
	row := r.db.QueryRow(`
		SELECT id, mode, regime, regime_detail, started_at, finished_at, symbol_count, error_count
		FROM analysis_runs WHERE mode = ?
		ORDER BY started_at DESC LIMIT 1`, string(mode))

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest run: %w", err)
	}

	rows, err := r.db.Query(`
		SELECT breakdown FROM analysis_results
		WHERE run_id = ? ORDER BY score DESC, code ASC`, run.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query results for run %s: %w", run.ID, err)
	}
	defer rows.Close()

	report := &RunReport{Run: run}
	for rows.Next() {
		var detail string
		if err := rows.Scan(&detail); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		var res composer.Result
		if err := json.Unmarshal([]byte(detail), &res); err != nil {
			r.log.Warn().Err(err).Str("run_id", run.ID).Msg("Skipping unreadable stored result")
			continue
		}
		report.Results = append(report.Results, res)
	}
	return report, rows.Err()
}

// ResultsByCode returns a symbol's scoring history across runs, newest first
func (r *Repository) ResultsByCode(code string, limit int) ([]StoredResult, error) {
	if limit <= 0 {
		limit = 30
	}
	rows, err := r.db.Query(`
		SELECT res.run_id, runs.mode, runs.started_at, res.breakdown
		FROM analysis_results res
		JOIN analysis_runs runs ON runs.id = res.run_id
		WHERE res.code = ?
		ORDER BY runs.started_at DESC LIMIT ?`, code, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query results for %s: %w", code, err)
	}
	defer rows.Close()

	var out []StoredResult
	for rows.Next() {
		var sr StoredResult
		var detail, startedAt string
		if err := rows.Scan(&sr.RunID, &sr.Mode, &startedAt, &detail); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		sr.StartedAt, _ = time.Parse(timestampLayout, startedAt)
		if err := json.Unmarshal([]byte(detail), &sr.Result); err != nil {
			r.log.Warn().Err(err).Str("code", code).Msg("Skipping unreadable stored result")
			continue
		}
		out = append(out, sr)
	}
	return out, rows.Err()
}

func scanRun(row *sql.Row) (Run, error) {
	var run Run
	var mode, startedAt, finishedAt string
	err := row.Scan(&run.ID, &mode, &run.Regime, &run.RegimeDetail,
		&startedAt, &finishedAt, &run.SymbolCount, &run.ErrorCount)
	if err != nil {
		return run, err
	}
	run.Mode = domain.AnalysisMode(mode)
	run.StartedAt, _ = time.Parse(timestampLayout, startedAt)
	run.FinishedAt, _ = time.Parse(timestampLayout, finishedAt)
	return run, nil
}
