// Package history journals every completed fetch to sqlite. The journal
// feeds the recent-symbol list in the ticker prompt and leaves a record of
// slow or failing fetches for debugging.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Outcome labels recorded per fetch.
const (
	OutcomeOK          = "ok"
	OutcomeNotFound    = "not_found"
	OutcomeFetchFailed = "fetch_failed"
	OutcomeTimeout     = "timeout"
	OutcomeDecodeError = "decode_error"
)

// Entry is one journaled fetch.
type Entry struct {
	ID         int64
	Symbol     string
	Range      string
	Interval   string
	ChartType  string
	DurationMs int64
	Outcome    string
	Error      string
	Timestamp  time.Time
}

// Manager owns the journal database.
type Manager struct {
	db *sql.DB
}

// NewManager opens (creating if needed) the journal at dbPath.
func NewManager(dbPath string) (*Manager, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to journal database: %w", err)
	}

	m := &Manager{db: db}
	if err := m.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return m, nil
}

func (m *Manager) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS fetches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		symbol TEXT NOT NULL,
		range_ TEXT NOT NULL,
		interval_ TEXT NOT NULL,
		chart_type TEXT NOT NULL,
		duration_ms INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		error TEXT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_fetches_symbol ON fetches(symbol);
	CREATE INDEX IF NOT EXISTS idx_fetches_timestamp ON fetches(timestamp);
	`
	if _, err := m.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create journal schema: %w", err)
	}
	return nil
}

// Record appends one fetch to the journal.
func (m *Manager) Record(e Entry) error {
	_, err := m.db.Exec(
		`INSERT INTO fetches (symbol, range_, interval_, chart_type, duration_ms, outcome, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Symbol, e.Range, e.Interval, e.ChartType, e.DurationMs, e.Outcome, e.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to record fetch: %w", err)
	}
	return nil
}

// RecentSymbols returns up to limit distinct symbols with a successful
// fetch, most recent first. Shown in the ticker prompt while the query is
// still empty.
func (m *Manager) RecentSymbols(limit int) ([]string, error) {
	rows, err := m.db.Query(
		`SELECT symbol FROM fetches
		 WHERE outcome = ?
		 GROUP BY symbol
		 ORDER BY MAX(timestamp) DESC, MAX(id) DESC
		 LIMIT ?`,
		OutcomeOK, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent symbols: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan recent symbol: %w", err)
		}
		symbols = append(symbols, s)
	}
	return symbols, rows.Err()
}

// Close releases the database handle.
func (m *Manager) Close() error {
	return m.db.Close()
}
