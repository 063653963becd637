package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"QuantumPulse/internal/model"
)

// FMPFetcher fetches prices, financial statements, and fair-value
// references from FinancialModelingPrep. Requests share one rate
// limiter and one circuit breaker so a rate-limited or failing API
// degrades cleanly instead of stalling a whole scan cycle.
type FMPFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client

	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

// NewFMPFetcher creates a fetcher with optional proxy support.
// ratePerSec caps outbound requests per second.
func NewFMPFetcher(baseURL, apiKey, proxyURL string, ratePerSec float64) *FMPFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if ratePerSec <= 0 {
		ratePerSec = 4
	}
	return &FMPFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		limiter: rate.NewLimiter(rate.Limit(ratePerSec), 1),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "fmp",
			Timeout: 60 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

func (f *FMPFetcher) Name() string { return "fmp" }

func (f *FMPFetcher) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	if err := f.limiter.Wait(ctx); err != nil {
		return err
	}

	if query == nil {
		query = url.Values{}
	}
	query.Set("apikey", f.APIKey)
	reqURL := fmt.Sprintf("%s%s?%s", f.BaseURL, path, query.Encode())

	body, err := f.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		resp, err := f.Client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fmp request: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return nil, fmt.Errorf("fmp API error: status %d, body: %s", resp.StatusCode, string(b))
		}
		return io.ReadAll(resp.Body)
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body.([]byte), out); err != nil {
		return fmt.Errorf("decode fmp response: %w", err)
	}
	return nil
}

type fmpHistoricalResponse struct {
	Symbol     string `json:"symbol"`
	Historical []struct {
		Date   string  `json:"date"`
		Open   float64 `json:"open"`
		High   float64 `json:"high"`
		Low    float64 `json:"low"`
		Close  float64 `json:"close"`
		Volume float64 `json:"volume"`
	} `json:"historical"`
}

// FetchDailyBars fetches up to `days` daily bars, returned ascending
// by date.
func (f *FMPFetcher) FetchDailyBars(ctx context.Context, ticker string, days int) (*model.PriceSeries, error) {
	var resp fmpHistoricalResponse
	q := url.Values{"timeseries": []string{fmt.Sprintf("%d", days)}}
	if err := f.getJSON(ctx, "/historical-price-full/"+ticker, q, &resp); err != nil {
		return nil, fmt.Errorf("fetch daily bars for %s: %w", ticker, err)
	}
	if len(resp.Historical) == 0 {
		return nil, fmt.Errorf("no price data for %s", ticker)
	}

	bars := make([]model.PriceBar, 0, len(resp.Historical))
	for _, row := range resp.Historical {
		date, err := time.Parse("2006-01-02", row.Date)
		if err != nil {
			continue
		}
		bars = append(bars, model.PriceBar{
			Date:   date,
			Open:   row.Open,
			High:   row.High,
			Low:    row.Low,
			Close:  row.Close,
			Volume: row.Volume,
		})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })

	series := &model.PriceSeries{Ticker: ticker, Bars: bars, FetchedAt: time.Now()}
	if err := series.Validate(); err != nil {
		return nil, err
	}
	return series, nil
}

type fmpIncomeRow struct {
	Date        string  `json:"date"`
	NetIncome   float64 `json:"netIncome"`
	GrossProfit float64 `json:"grossProfit"`
	Revenue     float64 `json:"revenue"`
}

type fmpBalanceRow struct {
	Date                         string  `json:"date"`
	TotalAssets                  float64 `json:"totalAssets"`
	LongTermDebt                 float64 `json:"longTermDebt"`
	TotalCurrentAssets           float64 `json:"totalCurrentAssets"`
	TotalCurrentLiabilities      float64 `json:"totalCurrentLiabilities"`
	CommonStockSharesOutstanding float64 `json:"commonStockSharesOutstanding"`
}

type fmpCashFlowRow struct {
	Date              string  `json:"date"`
	OperatingCashFlow float64 `json:"operatingCashFlow"`
}

// FetchStatements fetches the two most recent annual income, balance,
// and cash-flow statements, sorted descending by date.
func (f *FMPFetcher) FetchStatements(ctx context.Context, ticker string) (*model.FinancialStatementSet, error) {
	q := url.Values{"limit": []string{"2"}}

	var income []fmpIncomeRow
	if err := f.getJSON(ctx, "/income-statement/"+ticker, q, &income); err != nil {
		return nil, fmt.Errorf("fetch income statement for %s: %w", ticker, err)
	}
	var balance []fmpBalanceRow
	if err := f.getJSON(ctx, "/balance-sheet-statement/"+ticker, q, &balance); err != nil {
		return nil, fmt.Errorf("fetch balance sheet for %s: %w", ticker, err)
	}
	var cashFlow []fmpCashFlowRow
	if err := f.getJSON(ctx, "/cash-flow-statement/"+ticker, q, &cashFlow); err != nil {
		return nil, fmt.Errorf("fetch cash flow for %s: %w", ticker, err)
	}

	// Rows with an unparseable date are dropped rather than kept with a
	// zero PeriodEnd, which would sort last and shift the period pairing.
	set := &model.FinancialStatementSet{Ticker: ticker}
	for _, row := range income {
		end, err := time.Parse("2006-01-02", row.Date)
		if err != nil {
			continue
		}
		set.Income = append(set.Income, model.FinancialPeriod{
			PeriodEnd:   end,
			NetIncome:   row.NetIncome,
			GrossProfit: row.GrossProfit,
			Revenue:     row.Revenue,
		})
	}
	for _, row := range balance {
		end, err := time.Parse("2006-01-02", row.Date)
		if err != nil {
			continue
		}
		set.Balance = append(set.Balance, model.FinancialPeriod{
			PeriodEnd:               end,
			TotalAssets:             row.TotalAssets,
			LongTermDebt:            row.LongTermDebt,
			TotalCurrentAssets:      row.TotalCurrentAssets,
			TotalCurrentLiabilities: row.TotalCurrentLiabilities,
			SharesOutstanding:       row.CommonStockSharesOutstanding,
		})
	}
	for _, row := range cashFlow {
		end, err := time.Parse("2006-01-02", row.Date)
		if err != nil {
			continue
		}
		set.CashFlow = append(set.CashFlow, model.FinancialPeriod{
			PeriodEnd:         end,
			OperatingCashFlow: row.OperatingCashFlow,
		})
	}

	sortPeriodsDesc(set.Income)
	sortPeriodsDesc(set.Balance)
	sortPeriodsDesc(set.CashFlow)
	return set, nil
}

// FetchFairValue fetches the company-profile reference price. Returns
// 0 (no fair value) when the profile is empty.
func (f *FMPFetcher) FetchFairValue(ctx context.Context, ticker string) (float64, error) {
	var profile []struct {
		Price float64 `json:"price"`
	}
	if err := f.getJSON(ctx, "/profile/"+ticker, nil, &profile); err != nil {
		return 0, fmt.Errorf("fetch fair value for %s: %w", ticker, err)
	}
	if len(profile) == 0 {
		return 0, nil
	}
	return profile[0].Price, nil
}

func sortPeriodsDesc(periods []model.FinancialPeriod) {
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].PeriodEnd.After(periods[j].PeriodEnd)
	})
}
