package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"QuantumPulse/internal/model"
)

func openTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestSQLiteRecorder_ScanRoundtrip(t *testing.T) {
	r := openTestRecorder(t)

	rec := &ScanRecord{
		CycleID:    "cycle-1",
		Date:       time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC),
		Ticker:     "AAPL",
		Normalized: 8.57,
		Components: model.ComponentScoreSet{Divergence: 1, Piotroski: 1, RSI: 1},
		Triggers:   "divergence + piotroski + rsi",
	}
	require.NoError(t, r.RecordScan(rec))

	var (
		ticker, triggers string
		score, div       float64
		ts               int64
	)
	row := r.db.QueryRow(`SELECT ticker, score, divergence, triggers, timestamp FROM scan_results WHERE cycle_id = ?`, "cycle-1")
	require.NoError(t, row.Scan(&ticker, &score, &div, &triggers, &ts))

	assert.Equal(t, "AAPL", ticker)
	assert.Equal(t, 8.57, score)
	assert.Equal(t, 1.0, div)
	assert.Equal(t, "divergence + piotroski + rsi", triggers)
	assert.Equal(t, rec.Date.Unix(), ts)
}

func TestSQLiteRecorder_ExitAndCycle(t *testing.T) {
	r := openTestRecorder(t)
	now := time.Now()

	require.NoError(t, r.RecordExit(&ExitRecord{
		CycleID: "cycle-2",
		Date:    now,
		Ticker:  "MSFT",
		Reasons: "RSI overbought, Below 20 EMA",
	}))
	require.NoError(t, r.RecordCycle(&CycleRecord{
		CycleID:  "cycle-2",
		Date:     now,
		Scanned:  10,
		Skipped:  2,
		Buys:     1,
		Exits:    1,
		Duration: 1500 * time.Millisecond,
	}))

	var reasons string
	require.NoError(t, r.db.QueryRow(
		`SELECT reasons FROM exit_events WHERE ticker = ?`, "MSFT").Scan(&reasons))
	assert.Equal(t, "RSI overbought, Below 20 EMA", reasons)

	var scanned, durationMS int64
	require.NoError(t, r.db.QueryRow(
		`SELECT scanned, duration_ms FROM scan_cycles WHERE cycle_id = ?`, "cycle-2").Scan(&scanned, &durationMS))
	assert.EqualValues(t, 10, scanned)
	assert.EqualValues(t, 1500, durationMS)
}

func TestSQLiteRecorder_MigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	r, err := NewSQLiteRecorder(path)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	// Reopening the same file must not fail on existing tables.
	r, err = NewSQLiteRecorder(path)
	require.NoError(t, err)
	require.NoError(t, r.Close())
}
