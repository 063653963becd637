package recorder

import (
	"time"

	"QuantumPulse/internal/model"
)

// ScanRecord is one row of the scan log: one scored ticker in one
// cycle, with the raw component values in the fixed component order.
type ScanRecord struct {
	CycleID    string
	Date       time.Time
	Ticker     string
	Normalized float64
	Components model.ComponentScoreSet
	Triggers   string // positive component names joined with " + "
}

// ExitRecord is one triggered exit decision.
type ExitRecord struct {
	CycleID string
	Date    time.Time
	Ticker  string
	Reasons string // reason strings joined with ", "
}

// CycleRecord summarizes one completed scan cycle.
type CycleRecord struct {
	CycleID  string
	Date     time.Time
	Scanned  int
	Skipped  int
	Buys     int
	Exits    int
	Duration time.Duration
}

// Recorder persists scan history for later analysis.
type Recorder interface {
	RecordScan(rec *ScanRecord) error
	RecordExit(rec *ExitRecord) error
	RecordCycle(rec *CycleRecord) error
	Close() error
}
