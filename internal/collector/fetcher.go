package collector

import (
	"context"

	"QuantumPulse/internal/model"
)

// PriceFetcher retrieves daily price history for a ticker.
type PriceFetcher interface {
	FetchDailyBars(ctx context.Context, ticker string, days int) (*model.PriceSeries, error)
}

// FundamentalsFetcher retrieves the financial statements needed for
// fundamental scoring, sorted descending by period end date.
type FundamentalsFetcher interface {
	FetchStatements(ctx context.Context, ticker string) (*model.FinancialStatementSet, error)
}

// FairValueFetcher retrieves the externally maintained fair-value
// reference for a ticker. Implementations return 0 when no fair value
// is available; the core never derives one from price history.
type FairValueFetcher interface {
	FetchFairValue(ctx context.Context, ticker string) (float64, error)
}

// Fetcher is the full market-data collaborator contract.
type Fetcher interface {
	PriceFetcher
	FundamentalsFetcher
	FairValueFetcher
	Name() string
}
