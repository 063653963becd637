package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"QuantumPulse/internal/notifier"
	"QuantumPulse/internal/scanner"
	"QuantumPulse/internal/universe"
)

// Scheduler manages the cron tasks: the scheduled scan cycle and the
// periodic universe refresh.
type Scheduler struct {
	Cron     *cron.Cron
	Engine   *scanner.Engine
	Universe *universe.Loader
	Ctx      context.Context

	mu         sync.Mutex
	lastReport *scanner.Report
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, engine *scanner.Engine, uni *universe.Loader) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Engine:   engine,
		Universe: uni,
		Ctx:      ctx,
	}
}

// RegisterAll registers the scan and universe-refresh tasks.
func (s *Scheduler) RegisterAll(scanCron, refreshCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	if s.Universe != nil {
		if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
			return fmt.Errorf("register universe refresh: %w", err)
		}
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Info().Msg("scheduler stopped")
}

// RunScanNow executes a scan cycle immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunScanNow() {
	s.scanTask()
}

func (s *Scheduler) scanTask() {
	log.Info().Msg("running scheduled scan")
	report, err := s.Engine.RunCycle(s.Ctx)
	if err != nil {
		log.Error().Err(err).Msg("scan cycle failed")
		return
	}
	s.mu.Lock()
	s.lastReport = report
	s.mu.Unlock()
}

func (s *Scheduler) refreshTask() {
	log.Info().Msg("refreshing universe")
	if err := s.Universe.Refresh(s.Ctx); err != nil {
		log.Error().Err(err).Msg("universe refresh failed")
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/scan":
		go s.scanTask()
		return "Scan started."
	case "/status":
		s.mu.Lock()
		report := s.lastReport
		s.mu.Unlock()
		if report == nil {
			return "No scan has completed yet."
		}
		summary := &notifier.CycleSummary{
			Scanned: report.Scanned,
			Skipped: report.Skipped,
			Buys:    len(report.Selected),
			Exits:   len(report.Exits),
		}
		for _, r := range report.Selected {
			summary.Triggers = append(summary.Triggers, r.Ticker)
		}
		return notifier.FormatCycleSummary(summary)
	case "/skipped":
		s.mu.Lock()
		report := s.lastReport
		s.mu.Unlock()
		if report == nil || len(report.SkipReasons) == 0 {
			return "Nothing was skipped in the last cycle."
		}
		var b strings.Builder
		b.WriteString(fmt.Sprintf("%d tickers skipped:\n", len(report.SkipReasons)))
		shown := 0
		for ticker, reason := range report.SkipReasons {
			if shown >= 10 {
				b.WriteString(fmt.Sprintf("... and %d more", len(report.SkipReasons)-shown))
				break
			}
			b.WriteString(fmt.Sprintf("- %s: %s\n", ticker, reason))
			shown++
		}
		return b.String()
	default:
		return "Commands:\n/scan - run a scan cycle now\n/status - last cycle summary\n/skipped - skipped tickers"
	}
}
