package store

import (
	"context"

	"MarketLens/internal/model"
)

// NoopCache is used when caching is disabled; every lookup misses.
type NoopCache struct{}

func NewNoopCache() *NoopCache { return &NoopCache{} }

func (n *NoopCache) Get(_ context.Context, _ model.ChartQuery) (*model.MarketChart, bool, error) {
	return nil, false, nil
}
func (n *NoopCache) Put(_ context.Context, _ model.ChartQuery, _ *model.MarketChart) error { return nil }
func (n *NoopCache) Prune(_ context.Context) (int64, error)                                { return 0, nil }
func (n *NoopCache) Close() error                                                          { return nil }
