package collector

import (
	"context"

	"MarketLens/internal/model"
)

// Fetcher defines the interface for fetching raw market charts.
type Fetcher interface {
	FetchMarketChart(ctx context.Context, q model.ChartQuery) (*model.MarketChart, error)
	Name() string
}
