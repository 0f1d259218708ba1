package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"MarketLens/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoinGeckoFetcher_FetchMarketChart(t *testing.T) {
	var gotPath, gotQuery, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotKey = r.Header.Get("x-cg-demo-api-key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"prices": [[1609462800000, 24100.5], [1609459200000, 24000.25], [1609459259999, 1]],
			"market_caps": [[1609459200000, 1]],
			"total_volumes": [[1609459200000, 5.5e10], [7]]
		}`))
	}))
	defer srv.Close()

	f := NewCoinGeckoFetcher(srv.URL, "secret", "", 0)
	q := model.ChartQuery{
		Coin:     "bitcoin",
		Currency: "eur",
		From:     time.Unix(1609459200, 0),
		To:       time.Unix(1609466400, 0),
	}
	chart, err := f.FetchMarketChart(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, "/coins/bitcoin/market_chart/range", gotPath)
	assert.Equal(t, "from=1609459200&to=1609466400&vs_currency=eur", gotQuery)
	assert.Equal(t, "secret", gotKey)

	// Sorted by minute; milliseconds truncate to whole minutes.
	require.Len(t, chart.Prices, 3)
	assert.Equal(t, model.RawPoint{Minute: 26824320, Value: 24000.25}, chart.Prices[0])
	assert.Equal(t, model.RawPoint{Minute: 26824320, Value: 1}, chart.Prices[1])
	assert.Equal(t, model.RawPoint{Minute: 26824380, Value: 24100.5}, chart.Prices[2])

	require.Len(t, chart.Volumes, 1, "malformed pair is skipped")
	assert.Equal(t, 5.5e10, chart.Volumes[0].Value)
}

func TestCoinGeckoFetcher_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"rate limited", http.StatusTooManyRequests, `{"status":{"error_code":429}}`},
		{"server error", http.StatusInternalServerError, "oops"},
		{"bad json", http.StatusOK, `{"prices": "nope"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			f := NewCoinGeckoFetcher(srv.URL, "", "", 0)
			_, err := f.FetchMarketChart(context.Background(), model.ChartQuery{Coin: "bitcoin", Currency: "eur"})
			assert.Error(t, err)
		})
	}
}

func TestCoinGeckoFetcher_ErrorBodyIsTruncated(t *testing.T) {
	page := "<html><body>" + strings.Repeat("Service Unavailable ", 100) + "</body></html>"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	_, err := NewCoinGeckoFetcher(srv.URL, "", "", 0).
		FetchMarketChart(context.Background(), model.ChartQuery{Coin: "bitcoin", Currency: "eur"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
	assert.Less(t, len(err.Error()), maxErrorBody+64)
	assert.True(t, strings.HasSuffix(err.Error(), "..."))
}

func TestCoinGeckoFetcher_EmptyPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"prices": [], "total_volumes": []}`))
	}))
	defer srv.Close()

	chart, err := NewCoinGeckoFetcher(srv.URL, "", "", 0).
		FetchMarketChart(context.Background(), model.ChartQuery{Coin: "bitcoin", Currency: "eur"})
	require.NoError(t, err)
	assert.Empty(t, chart.Prices)
	assert.Empty(t, chart.Volumes)
}

func TestCoinGeckoFetcher_RateLimitHonoursContext(t *testing.T) {
	f := NewCoinGeckoFetcher("http://127.0.0.1:0", "", "", 1)
	// Drain the single burst token.
	require.True(t, f.limiter.Allow())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.FetchMarketChart(ctx, model.ChartQuery{Coin: "bitcoin", Currency: "eur"})
	assert.ErrorIs(t, err, context.Canceled)
}
