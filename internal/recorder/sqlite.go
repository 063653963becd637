package recorder

import (
	"database/sql"
	"fmt"
	"math"
	"sync"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists scan history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (dashboards read
	// while the scanner writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scan_results (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			cycle_id    TEXT NOT NULL,
			ticker      TEXT NOT NULL,
			score       REAL,
			divergence  REAL,
			piotroski   REAL,
			rsi         REAL,
			seasonality REAL,
			fair_value  REAL,
			break_even  REAL,
			cot         REAL,
			triggers    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scan_ts ON scan_results(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_scan_ticker ON scan_results(ticker)`,

		`CREATE TABLE IF NOT EXISTS exit_events (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			cycle_id  TEXT NOT NULL,
			ticker    TEXT NOT NULL,
			reasons   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_exit_ts ON exit_events(timestamp)`,

		`CREATE TABLE IF NOT EXISTS scan_cycles (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			cycle_id    TEXT NOT NULL,
			scanned     INTEGER,
			skipped     INTEGER,
			buys        INTEGER,
			exits       INTEGER,
			duration_ms INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cycle_ts ON scan_cycles(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordScan(rec *ScanRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := rec.Components
	_, err := r.db.Exec(`INSERT INTO scan_results
		(timestamp, cycle_id, ticker, score,
		 divergence, piotroski, rsi, seasonality, fair_value, break_even, cot,
		 triggers)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		rec.Date.Unix(), rec.CycleID, rec.Ticker, rec.Normalized,
		round2(c.Divergence), round2(c.Piotroski), round2(c.RSI), round2(c.Seasonality),
		round2(c.FairValue), round2(c.BreakEven), round2(c.COT),
		rec.Triggers,
	)
	return err
}

func (r *SQLiteRecorder) RecordExit(rec *ExitRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO exit_events
		(timestamp, cycle_id, ticker, reasons)
		VALUES (?,?,?,?)`,
		rec.Date.Unix(), rec.CycleID, rec.Ticker, rec.Reasons,
	)
	return err
}

func (r *SQLiteRecorder) RecordCycle(rec *CycleRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO scan_cycles
		(timestamp, cycle_id, scanned, skipped, buys, exits, duration_ms)
		VALUES (?,?,?,?,?,?,?)`,
		rec.Date.Unix(), rec.CycleID, rec.Scanned, rec.Skipped, rec.Buys, rec.Exits,
		rec.Duration.Milliseconds(),
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
