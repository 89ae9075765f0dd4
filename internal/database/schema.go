package database

// schemas maps database names to their DDL. Each schema is the single source
// of truth for that database and must stay idempotent.
var schemas = map[string]string{
	"analysis": analysisSchema,
}

const analysisSchema = `
CREATE TABLE IF NOT EXISTS analysis_runs (
    id            TEXT PRIMARY KEY,
    mode          TEXT NOT NULL,
    regime        TEXT NOT NULL,
    regime_detail TEXT NOT NULL DEFAULT '',
    started_at    TIMESTAMP NOT NULL,
    finished_at   TIMESTAMP,
    symbol_count  INTEGER NOT NULL DEFAULT 0,
    error_count   INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS analysis_results (
    run_id       TEXT NOT NULL REFERENCES analysis_runs(id) ON DELETE CASCADE,
    code         TEXT NOT NULL,
    name         TEXT NOT NULL,
    score        INTEGER NOT NULL,
    verdict      TEXT NOT NULL,
    buy_price    REAL,
    target_price REAL,
    stop_price   REAL,
    breakdown    TEXT NOT NULL,
    created_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (run_id, code)
);

CREATE INDEX IF NOT EXISTS idx_analysis_results_code ON analysis_results(code);
CREATE INDEX IF NOT EXISTS idx_analysis_runs_started ON analysis_runs(started_at DESC);
`
