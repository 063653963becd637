package scanner

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"QuantumPulse/internal/calculator"
	"QuantumPulse/internal/collector"
	"QuantumPulse/internal/config"
	"QuantumPulse/internal/model"
	"QuantumPulse/internal/notifier"
	"QuantumPulse/internal/recorder"
	"QuantumPulse/internal/strategy"
)

// UniverseSource supplies the tickers to scan in a cycle.
type UniverseSource interface {
	Tickers(ctx context.Context) ([]string, error)
}

// Sender delivers alert text to the external transport.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Report summarizes one completed scan cycle. A cycle always
// completes: per-ticker failures are recorded here, never propagated.
type Report struct {
	CycleID     string
	Scanned     int
	Skipped     int
	SkipReasons map[string]string // ticker -> reason
	Results     []model.CompositeResult
	Selected    []model.CompositeResult
	Exits       []model.ExitDecision
	Duration    time.Duration
}

// Engine runs scan cycles over the instrument universe.
type Engine struct {
	Collector   *collector.Collector
	Universe    UniverseSource
	Recorder    recorder.Recorder
	Sender      Sender
	Weights     model.WeightTable
	Scoring     config.Scoring
	Holdings    map[string]float64
	Concurrency int
}

// outcome is the per-ticker scan result. Instruments are scored
// independently; a slot carries either a result or a skip reason.
type outcome struct {
	result *model.CompositeResult
	exit   *model.ExitDecision
	err    error
}

// RunCycle scans the full universe once. Per-instrument scoring is
// parallel; result ordering follows universe discovery order so the
// ranking tie-break stays deterministic.
func (e *Engine) RunCycle(ctx context.Context) (*Report, error) {
	if e.Weights.Total() == 0 {
		return nil, strategy.ErrZeroWeights
	}

	start := time.Now()
	tickers, err := e.Universe.Tickers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load universe: %w", err)
	}

	cycleID := uuid.NewString()
	log.Info().Str("cycle", cycleID).Int("universe", len(tickers)).Msg("scan cycle starting")

	outcomes := make([]outcome, len(tickers))
	concurrency := e.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, concurrency)
	for i, ticker := range tickers {
		wg.Add(1)
		go func(i int, ticker string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			outcomes[i] = e.scanTicker(ctx, ticker)
		}(i, ticker)
	}
	wg.Wait()

	report := &Report{
		CycleID:     cycleID,
		SkipReasons: make(map[string]string),
	}
	for i, o := range outcomes {
		if o.err != nil {
			report.Skipped++
			report.SkipReasons[tickers[i]] = o.err.Error()
			log.Warn().Str("ticker", tickers[i]).Err(o.err).Msg("ticker skipped")
			continue
		}
		report.Scanned++
		report.Results = append(report.Results, *o.result)
		if o.exit != nil && o.exit.Triggered {
			report.Exits = append(report.Exits, *o.exit)
		}
	}

	report.Selected = strategy.SelectTop(report.Results, e.Scoring.BuyThreshold, e.Scoring.TopN)
	report.Duration = time.Since(start)

	e.emitAlerts(ctx, report)
	e.record(report)

	log.Info().Str("cycle", cycleID).
		Int("scanned", report.Scanned).Int("skipped", report.Skipped).
		Int("buys", len(report.Selected)).Int("exits", len(report.Exits)).
		Dur("duration", report.Duration).Msg("scan cycle complete")
	return report, nil
}

// scanTicker scores one instrument. Any upstream or history failure
// skips that instrument only.
func (e *Engine) scanTicker(ctx context.Context, ticker string) outcome {
	snap, err := e.Collector.Collect(ctx, ticker)
	if err != nil {
		return outcome{err: err}
	}

	latest, ok := snap.Series.Latest()
	if !ok {
		return outcome{err: fmt.Errorf("empty price series")}
	}
	latestRSI, latestEMA20, latestMACD, ok := snap.Oscillators.Latest()
	if !ok {
		return outcome{err: fmt.Errorf("%w: oscillators not warmed up", calculator.ErrInsufficientHistory)}
	}

	closes := snap.Series.Closes()

	scores := model.ComponentScoreSet{
		Divergence: float64(strategy.DetectDivergence(closes, snap.Oscillators.RSI, e.Scoring.DivergenceLookback)),
		RSI:        strategy.ScoreRSIFilter(latestRSI, e.Scoring.RSIOversold),
		FairValue:  strategy.ScoreFairValue(latest.Close, snap.FairValue, e.Scoring.FairValueDiscount),
	}

	if v, err := strategy.ScorePiotroski(snap.Statements); err != nil {
		log.Debug().Str("ticker", ticker).Err(err).Msg("piotroski abstains")
	} else {
		scores.Piotroski = v
	}
	if v, ok := strategy.ScoreSeasonality(snap.Series.Bars, time.Now()); ok {
		scores.Seasonality = v
	}
	if v, ok := strategy.ScoreBreakEven(latest.Close, e.Holdings[ticker]); ok {
		scores.BreakEven = v
	}
	// COT stays 0: no sentiment data source is wired.

	result, err := strategy.Composite(ticker, scores, e.Weights)
	if err != nil {
		return outcome{err: err}
	}

	o := outcome{result: &result}

	// Exit needs the fair-value reference; without one the premium
	// criterion is meaningless, so the check is skipped for the cycle.
	if snap.FairValue > 0 {
		dec, err := strategy.EvaluateExit(ticker, strategy.ExitInputs{
			Close:     latest.Close,
			RSI:       latestRSI,
			EMA20:     latestEMA20,
			MACDHist:  latestMACD,
			FairValue: snap.FairValue,
		}, e.Scoring.FairValuePremium, e.Scoring.ExitVotesRequired)
		if err == nil {
			o.exit = &dec
		}
	}

	return o
}

func (e *Engine) emitAlerts(ctx context.Context, report *Report) {
	if e.Sender == nil {
		return
	}
	for i := range report.Selected {
		e.trySend(ctx, notifier.FormatBuyAlert(&report.Selected[i]))
	}
	for i := range report.Exits {
		e.trySend(ctx, notifier.FormatExitAlert(&report.Exits[i]))
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
	e.trySend(ctx, notifier.FormatCycleSummary(summary))
}

func (e *Engine) record(report *Report) {
	if e.Recorder == nil {
		return
	}
	now := time.Now()
	for i := range report.Results {
		r := &report.Results[i]
		rec := &recorder.ScanRecord{
			CycleID:    report.CycleID,
			Date:       now,
			Ticker:     r.Ticker,
			Normalized: r.Normalized,
			Components: r.Components,
			Triggers:   strings.Join(r.Triggers, notifier.TriggerSeparator),
		}
		if err := e.Recorder.RecordScan(rec); err != nil {
			log.Error().Err(err).Str("ticker", r.Ticker).Msg("record scan")
		}
	}
	for i := range report.Exits {
		d := &report.Exits[i]
		rec := &recorder.ExitRecord{
			CycleID: report.CycleID,
			Date:    now,
			Ticker:  d.Ticker,
			Reasons: strings.Join(d.Reasons, ", "),
		}
		if err := e.Recorder.RecordExit(rec); err != nil {
			log.Error().Err(err).Str("ticker", d.Ticker).Msg("record exit")
		}
	}
	if err := e.Recorder.RecordCycle(&recorder.CycleRecord{
		CycleID:  report.CycleID,
		Date:     now,
		Scanned:  report.Scanned,
		Skipped:  report.Skipped,
		Buys:     len(report.Selected),
		Exits:    len(report.Exits),
		Duration: report.Duration,
	}); err != nil {
		log.Error().Err(err).Msg("record cycle")
	}
}

func (e *Engine) trySend(ctx context.Context, text string) {
	if err := e.Sender.SendWithRetry(ctx, text, 3); err != nil {
		log.Error().Err(err).Msg("send notification")
	}
}
