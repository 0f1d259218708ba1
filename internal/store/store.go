package store

import (
	"context"
	"fmt"

	"MarketLens/internal/model"
)

// ChartCache keeps raw market charts so repeated queries over the same window
// do not hit the data source. Computed statistics are never stored.
type ChartCache interface {
	Get(ctx context.Context, q model.ChartQuery) (*model.MarketChart, bool, error)
	Put(ctx context.Context, q model.ChartQuery, chart *model.MarketChart) error
	Prune(ctx context.Context) (int64, error)
	Close() error
}

// Key returns the cache key for a chart query.
func Key(q model.ChartQuery) string {
	return fmt.Sprintf("%s:%s:%d:%d", q.Coin, q.Currency, q.From.Unix(), q.To.Unix())
}
