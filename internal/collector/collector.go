package collector

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"MarketLens/internal/engine"
	"MarketLens/internal/metrics"
	"MarketLens/internal/model"
	"MarketLens/internal/store"

	"github.com/rs/zerolog/log"
)

// MockFetcher returns deterministic synthetic hourly data for development and testing.
// It is safe for concurrent use as long as its fields are set before first use.
type MockFetcher struct {
	BasePrice float64
	Chart     *model.MarketChart
	Err       error
	Calls     atomic.Int64
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchMarketChart(_ context.Context, q model.ChartQuery) (*model.MarketChart, error) {
	m.Calls.Add(1)
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Chart != nil {
		return m.Chart, nil
	}
	return generateMockChart(m.BasePrice, q.From, q.To), nil
}

func generateMockChart(basePrice float64, from, to time.Time) *model.MarketChart {
	chart := &model.MarketChart{}
	start := from.Unix() / 60
	for minute := start; minute <= to.Unix()/60; minute += 60 {
		h := float64(minute-start) / 60
		chart.Prices = append(chart.Prices, model.RawPoint{
			Minute: minute,
			Value:  basePrice * (1 + 0.05*math.Sin(h/40)),
		})
		chart.Volumes = append(chart.Volumes, model.RawPoint{
			Minute: minute,
			Value:  1e9 * (1.5 + math.Cos(h/55)),
		})
	}
	return chart
}

// Collector fetches raw charts (through the cache) and runs the engine.
type Collector struct {
	Fetcher  Fetcher
	Cache    store.ChartCache
	Engine   *engine.Engine
	Metrics  *metrics.Recorder
	Coin     string
	Currency string

	now func() time.Time
}

// NewCollector creates a new Collector. A nil cache disables caching and a nil
// engine uses the quadratic profit search.
func NewCollector(fetcher Fetcher, cache store.ChartCache, eng *engine.Engine, rec *metrics.Recorder, coin, currency string) *Collector {
	if cache == nil {
		cache = store.NewNoopCache()
	}
	if eng == nil {
		eng, _ = engine.New(engine.ProfitSearchQuadratic)
	}
	return &Collector{
		Fetcher:  fetcher,
		Cache:    cache,
		Engine:   eng,
		Metrics:  rec,
		Coin:     coin,
		Currency: currency,
		now:      time.Now,
	}
}

// Query returns the remote query covering rng. The window ends an hour after
// the last day so that its midnight has samples on both sides.
func (c *Collector) Query(rng model.DateRange) model.ChartQuery {
	return model.ChartQuery{
		Coin:     c.Coin,
		Currency: c.Currency,
		From:     rng.Start(),
		To:       rng.End().Add(time.Hour),
	}
}

// Collect fetches the raw chart for rng and computes its statistics.
func (c *Collector) Collect(ctx context.Context, rng model.DateRange) (*model.Report, error) {
	q := c.Query(rng)
	chart, cached, err := c.chart(ctx, q)
	if err != nil {
		return nil, err
	}

	res := c.Engine.Compute(chart.Prices, chart.Volumes, rng)
	c.Metrics.RecordComputation(rng.Days())
	log.Debug().
		Str("coin", c.Coin).
		Int("days", rng.Days()).
		Int("streak", res.LongestDownwardStreak).
		Bool("cached", cached).
		Msg("statistics computed")

	return &model.Report{
		Coin:     c.Coin,
		Currency: c.Currency,
		Range:    rng,
		Result:   res,
		Source:   c.Fetcher.Name(),
		Cached:   cached,
	}, nil
}

func (c *Collector) chart(ctx context.Context, q model.ChartQuery) (*model.MarketChart, bool, error) {
	chart, ok, err := c.Cache.Get(ctx, q)
	if err != nil {
		log.Warn().Err(err).Str("key", store.Key(q)).Msg("chart cache lookup failed, fetching")
	}
	c.Metrics.RecordCacheLookup(ok)
	if ok {
		return chart, true, nil
	}

	started := time.Now()
	chart, err = c.Fetcher.FetchMarketChart(ctx, q)
	c.Metrics.RecordFetch(c.Fetcher.Name(), time.Since(started), err)
	if err != nil {
		return nil, false, fmt.Errorf("fetch market chart: %w", err)
	}
	if chart == nil {
		chart = &model.MarketChart{}
	}
	if len(chart.Prices) == 0 && len(chart.Volumes) == 0 {
		log.Warn().Str("source", c.Fetcher.Name()).Str("key", store.Key(q)).Msg("data source returned no points")
		return chart, false, nil
	}

	// A window reaching past now is still filling in.
	if q.To.After(c.now()) {
		return chart, false, nil
	}
	if err := c.Cache.Put(ctx, q, chart); err != nil {
		log.Warn().Err(err).Msg("store chart in cache failed")
	}
	return chart, false, nil
}
