package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"QuantumPulse/internal/calculator"
	"QuantumPulse/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars       []model.PriceBar
	Statements *model.FinancialStatementSet
	FairValue  float64
	PriceErr   error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, ticker string, days int) (*model.PriceSeries, error) {
	if m.PriceErr != nil {
		return nil, m.PriceErr
	}
	bars := m.Bars
	if bars == nil {
		bars = GenerateMockBars(100, days)
	}
	return &model.PriceSeries{Ticker: ticker, Bars: bars, FetchedAt: time.Now()}, nil
}

func (m *MockFetcher) FetchStatements(_ context.Context, ticker string) (*model.FinancialStatementSet, error) {
	if m.Statements == nil {
		return &model.FinancialStatementSet{Ticker: ticker}, nil
	}
	return m.Statements, nil
}

func (m *MockFetcher) FetchFairValue(_ context.Context, _ string) (float64, error) {
	return m.FairValue, nil
}

// GenerateMockBars builds a gently drifting synthetic series.
func GenerateMockBars(basePrice float64, count int) []model.PriceBar {
	bars := make([]model.PriceBar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.PriceBar{
			Date:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Snapshot bundles everything the scoring engine needs for one ticker
// in one cycle: prices, derived oscillators, fundamentals, and the
// fair-value reference. Fundamentals and FairValue may be absent
// (nil / 0); price data and oscillators are mandatory.
type Snapshot struct {
	Series      *model.PriceSeries
	Oscillators *calculator.OscillatorSet
	Statements  *model.FinancialStatementSet
	FairValue   float64
}

// Collector fetches all upstream data for one ticker and derives the
// oscillator series.
type Collector struct {
	Fetcher     Fetcher
	HistoryDays int
	RSIWindow   int
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, historyDays, rsiWindow int) *Collector {
	return &Collector{Fetcher: fetcher, HistoryDays: historyDays, RSIWindow: rsiWindow}
}

// Collect gathers the per-ticker snapshot. Price history failures are
// fatal for the ticker; missing fundamentals or fair value only log a
// warning, since the affected components abstain.
func (c *Collector) Collect(ctx context.Context, ticker string) (*Snapshot, error) {
	series, err := c.Fetcher.FetchDailyBars(ctx, ticker, c.HistoryDays)
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars: %w", err)
	}

	osc, err := calculator.ComputeOscillators(series.Closes(), c.RSIWindow)
	if err != nil {
		return nil, fmt.Errorf("compute oscillators for %s: %w", ticker, err)
	}

	snap := &Snapshot{Series: series, Oscillators: osc}

	if stmts, err := c.Fetcher.FetchStatements(ctx, ticker); err != nil {
		log.Warn().Err(err).Str("ticker", ticker).Msg("fundamentals unavailable, component will abstain")
	} else {
		snap.Statements = stmts
	}

	if fv, err := c.Fetcher.FetchFairValue(ctx, ticker); err != nil {
		log.Warn().Err(err).Str("ticker", ticker).Msg("fair value unavailable, component will abstain")
	} else {
		snap.FairValue = fv
	}

	return snap, nil
}
