package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFMPFetcher(baseURL string) *FMPFetcher {
	return NewFMPFetcher(baseURL, "key", "", 1000)
}

func TestFetchDailyBars(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/historical-price-full/AAPL", r.URL.Path)
		assert.Equal(t, "key", r.URL.Query().Get("apikey"))
		// Newest-first with one unparseable row, as FMP serves it.
		_, _ = w.Write([]byte(`{"symbol":"AAPL","historical":[
			{"date":"2026-03-03","open":101,"high":103,"low":100,"close":102,"volume":1000},
			{"date":"bad-date","open":1,"high":1,"low":1,"close":1,"volume":1},
			{"date":"2026-03-02","open":100,"high":102,"low":99,"close":101,"volume":900}
		]}`))
	}))
	defer srv.Close()

	series, err := newTestFMPFetcher(srv.URL).FetchDailyBars(context.Background(), "AAPL", 100)
	require.NoError(t, err)

	require.Len(t, series.Bars, 2)
	assert.Equal(t, 101.0, series.Bars[0].Close)
	assert.Equal(t, 102.0, series.Bars[1].Close)
	assert.True(t, series.Bars[0].Date.Before(series.Bars[1].Date))
}

func TestFetchStatements_SkipsMalformedDates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/income-statement/"):
			_, _ = w.Write([]byte(`[
				{"date":"2025-12-31","netIncome":10,"grossProfit":40,"revenue":100},
				{"date":"not-a-date","netIncome":9,"grossProfit":36,"revenue":90}
			]`))
		case strings.HasPrefix(r.URL.Path, "/balance-sheet-statement/"):
			_, _ = w.Write([]byte(`[
				{"date":"2024-12-31","totalAssets":900},
				{"date":"2025-12-31","totalAssets":1000}
			]`))
		case strings.HasPrefix(r.URL.Path, "/cash-flow-statement/"):
			_, _ = w.Write([]byte(`[{"date":"2025-12-31","operatingCashFlow":12}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	set, err := newTestFMPFetcher(srv.URL).FetchStatements(context.Background(), "AAPL")
	require.NoError(t, err)

	// The malformed income row is dropped instead of sorting last with
	// a zero period end.
	require.Len(t, set.Income, 1)
	assert.Equal(t, 10.0, set.Income[0].NetIncome)

	// Periods come back newest first regardless of response order.
	require.Len(t, set.Balance, 2)
	assert.Equal(t, 1000.0, set.Balance[0].TotalAssets)
	assert.True(t, set.Balance[0].PeriodEnd.After(set.Balance[1].PeriodEnd))
}

func TestFetchFairValue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/profile/EMPTY") {
			_, _ = w.Write([]byte(`[]`))
			return
		}
		_, _ = w.Write([]byte(`[{"price":187.5}]`))
	}))
	defer srv.Close()

	f := newTestFMPFetcher(srv.URL)
	fv, err := f.FetchFairValue(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, 187.5, fv)

	fv, err = f.FetchFairValue(context.Background(), "EMPTY")
	require.NoError(t, err)
	assert.Equal(t, 0.0, fv)
}
