package universe

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/rs/zerolog"

	"github.com/redchoeng/titan-kr/internal/domain"
)

const dateLayout = "2006-01-02"

// HistoryDB caches daily OHLCV bars so repeated analysis runs do not refetch
// a year of history per symbol.
type HistoryDB struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewHistoryDB opens (or creates) the history database at path
func NewHistoryDB(path string, log zerolog.Logger) (*HistoryDB, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	h := &HistoryDB{
		db:  db,
		log: log.With().Str("component", "history_db").Logger(),
	}
	if err := h.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return h, nil
}

func (h *HistoryDB) ensureSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS daily_prices (
		code   TEXT NOT NULL,
		date   TEXT NOT NULL,
		open   REAL NOT NULL,
		high   REAL NOT NULL,
		low    REAL NOT NULL,
		close  REAL NOT NULL,
		volume REAL NOT NULL,
		PRIMARY KEY (code, date)
	);
	CREATE INDEX IF NOT EXISTS idx_daily_prices_code_date ON daily_prices(code, date DESC);
	`
	if _, err := h.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to ensure history schema: %w", err)
	}
	return nil
}

// SaveHistory upserts bars for a symbol
func (h *HistoryDB) SaveHistory(code string, history domain.PriceHistory) error {
	if len(history) == 0 {
		return nil
	}

	tx, err := h.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO daily_prices (code, date, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(code, date) DO UPDATE SET
			open = excluded.open, high = excluded.high, low = excluded.low,
			close = excluded.close, volume = excluded.volume
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, bar := range history {
		_, err := stmt.Exec(code, bar.Date.Format(dateLayout),
			bar.Open, bar.High, bar.Low, bar.Close, bar.Volume)
		if err != nil {
			return fmt.Errorf("failed to upsert bar %s/%s: %w", code, bar.Date.Format(dateLayout), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit history: %w", err)
	}

	h.log.Debug().Str("code", code).Int("bars", len(history)).Msg("History saved")
	return nil
}

// GetHistory loads up to limit bars for a symbol, ascending by date.
// Zero-volume rows are dropped by the history constructor.
func (h *HistoryDB) GetHistory(code string, limit int) (domain.PriceHistory, error) {
	rows, err := h.db.Query(`
		SELECT date, open, high, low, close, volume
		FROM daily_prices
		WHERE code = ?
		ORDER BY date DESC
		LIMIT ?
	`, code, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily prices: %w", err)
	}
	defer rows.Close()

	var bars []domain.Bar
	for rows.Next() {
		var b domain.Bar
		var date string
		if err := rows.Scan(&date, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, fmt.Errorf("failed to scan daily price: %w", err)
		}
		b.Date, err = time.Parse(dateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date %q: %w", date, err)
		}
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily prices: %w", err)
	}

	// Query is newest-first, flip to ascending
	for i, j := 0, len(bars)-1; i < j; i, j = i+1, j-1 {
		bars[i], bars[j] = bars[j], bars[i]
	}

	return domain.NewPriceHistory(bars), nil
}

// LastDate returns the most recent cached bar date for a symbol, or zero time
func (h *HistoryDB) LastDate(code string) (time.Time, error) {
	var date sql.NullString
	err := h.db.QueryRow(
		`SELECT MAX(date) FROM daily_prices WHERE code = ?`, code,
	).Scan(&date)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query last date: %w", err)
	}
	if !date.Valid {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, date.String)
}

// Close closes the underlying connection
func (h *HistoryDB) Close() error {
	return h.db.Close()
}
