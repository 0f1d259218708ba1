package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"MarketLens/internal/model"

	json "github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

// CoinGeckoFetcher implements Fetcher using the CoinGecko market_chart/range API.
type CoinGeckoFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	limiter *rate.Limiter
}

// NewCoinGeckoFetcher creates a fetcher with optional proxy support. Requests
// are throttled to ratePerMinute to stay under the public API limit.
func NewCoinGeckoFetcher(baseURL, apiKey, proxyURL string, ratePerMinute float64) *CoinGeckoFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	limit := rate.Inf
	if ratePerMinute > 0 {
		limit = rate.Limit(ratePerMinute / 60)
	}
	return &CoinGeckoFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		limiter: rate.NewLimiter(limit, 1),
	}
}

func (f *CoinGeckoFetcher) Name() string { return "coingecko" }

// marketChart is the response structure of the market_chart/range endpoint.
// Each entry is a [unix milliseconds, value] pair.
type marketChart struct {
	Prices       [][]float64 `json:"prices"`
	TotalVolumes [][]float64 `json:"total_volumes"`
}

func (f *CoinGeckoFetcher) FetchMarketChart(ctx context.Context, q model.ChartQuery) (*model.MarketChart, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("coingecko rate limit: %w", err)
	}

	params := url.Values{}
	params.Set("vs_currency", q.Currency)
	params.Set("from", fmt.Sprint(q.From.Unix()))
	params.Set("to", fmt.Sprint(q.To.Unix()))
	u := fmt.Sprintf("%s/coins/%s/market_chart/range?%s", f.BaseURL, url.PathEscape(q.Coin), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if f.APIKey != "" {
		req.Header.Set("x-cg-demo-api-key", f.APIKey)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("coingecko fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("coingecko read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("coingecko: status %d, body: %s", resp.StatusCode, truncate(body, maxErrorBody))
	}

	var chart marketChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("coingecko decode: %w", err)
	}
	return &model.MarketChart{
		Prices:  toRawPoints(chart.Prices),
		Volumes: toRawPoints(chart.TotalVolumes),
	}, nil
}

// maxErrorBody caps how much of an error response ends up in the error text.
const maxErrorBody = 200

func truncate(body []byte, n int) string {
	if len(body) <= n {
		return string(body)
	}
	return string(body[:n]) + "..."
}

// toRawPoints converts [ms, value] pairs to minute points sorted by time.
// Malformed pairs are skipped.
func toRawPoints(pairs [][]float64) []model.RawPoint {
	points := make([]model.RawPoint, 0, len(pairs))
	for _, p := range pairs {
		if len(p) < 2 {
			continue
		}
		points = append(points, model.RawPoint{
			Minute: int64(p[0]) / 60000,
			Value:  p[1],
		})
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Minute < points[j].Minute })
	return points
}
