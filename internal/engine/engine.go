// Package engine combines the daily sampler and the three analyzers into a
// single statistics computation over one date range.
package engine

import (
	"fmt"

	"MarketLens/internal/calculator"
	"MarketLens/internal/model"

	"golang.org/x/sync/errgroup"
)

// ProfitSearch selects the profit window algorithm.
type ProfitSearch string

const (
	ProfitSearchQuadratic ProfitSearch = "quadratic"
	ProfitSearchLinear    ProfitSearch = "linear"
)

// Engine holds immutable options; it keeps no state between computations and
// is safe for concurrent use.
type Engine struct {
	search     ProfitSearch
	bestProfit func([]model.DailyPoint) *model.ProfitWindow
}

// New creates an Engine using the given profit search. An empty value selects
// the quadratic search.
func New(search ProfitSearch) (*Engine, error) {
	switch search {
	case "", ProfitSearchQuadratic:
		return &Engine{search: ProfitSearchQuadratic, bestProfit: calculator.BestProfitWindow}, nil
	case ProfitSearchLinear:
		return &Engine{search: ProfitSearchLinear, bestProfit: calculator.BestProfitWindowLinear}, nil
	default:
		return nil, fmt.Errorf("unknown profit search %q", search)
	}
}

var defaultEngine = &Engine{search: ProfitSearchQuadratic, bestProfit: calculator.BestProfitWindow}

// Compute runs the default engine.
func Compute(prices, volumes []model.RawPoint, rng model.DateRange) model.StatisticsResult {
	return defaultEngine.Compute(prices, volumes, rng)
}

// ProfitSearch reports which profit window algorithm the engine uses.
func (e *Engine) ProfitSearch() ProfitSearch { return e.search }

// Compute samples both raw series to daily points and derives the statistics.
// The price and volume pipelines run in parallel, and the price analyzers run
// in parallel once sampling is done. Raw series must be sorted by minute.
func (e *Engine) Compute(prices, volumes []model.RawPoint, rng model.DateRange) model.StatisticsResult {
	var (
		res   model.StatisticsResult
		outer errgroup.Group
	)

	outer.Go(func() error {
		daily := calculator.SampleDaily(prices, rng)
		res.PriceDays = len(daily)

		var inner errgroup.Group
		inner.Go(func() error {
			res.LongestDownwardStreak = calculator.LongestDownwardStreak(daily)
			return nil
		})
		inner.Go(func() error {
			res.ProfitWindow = e.bestProfit(daily)
			return nil
		})
		return inner.Wait()
	})

	outer.Go(func() error {
		daily := calculator.SampleDaily(volumes, rng)
		res.VolumeDays = len(daily)
		res.PeakVolume = calculator.HighestVolumeDay(daily)
		return nil
	})

	// Analyzers never fail; Wait only synchronizes.
	_ = outer.Wait()
	return res
}
