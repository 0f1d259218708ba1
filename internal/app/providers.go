package app

import (
	"fmt"

	"MarketLens/internal/collector"
	"MarketLens/internal/config"
	"MarketLens/internal/engine"
	"MarketLens/internal/metrics"
	"MarketLens/internal/store"

	"github.com/rs/zerolog/log"
)

// ProvideFetcher creates the CoinGecko fetcher, or the mock fetcher when
// data_source.base_url is "mock".
func ProvideFetcher(cfg *config.Config) collector.Fetcher {
	if cfg.DataSource.BaseURL == "mock" {
		return &collector.MockFetcher{BasePrice: 30000}
	}
	return collector.NewCoinGeckoFetcher(
		cfg.DataSource.BaseURL,
		cfg.DataSource.APIKey,
		cfg.Proxy,
		cfg.DataSource.RatePerMinute,
	)
}

// ProvideCache opens the SQLite chart cache. Caching is optional: an empty path
// or an open failure falls back to the no-op cache.
func ProvideCache(cfg *config.Config) store.ChartCache {
	if cfg.Cache.SQLitePath == "" {
		return store.NewNoopCache()
	}
	c, err := store.NewSQLiteCache(cfg.Cache.SQLitePath, cfg.Cache.TTL)
	if err != nil {
		log.Warn().Err(err).Msg("init sqlite chart cache failed, using noop")
		return store.NewNoopCache()
	}
	return c
}

// ProvideEngine creates the statistics engine.
func ProvideEngine(cfg *config.Config) (*engine.Engine, error) {
	e, err := engine.New(engine.ProfitSearch(cfg.Engine.ProfitSearch))
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	return e, nil
}

// ProvideCollector wires fetcher, cache, engine and metrics together.
func ProvideCollector(cfg *config.Config, cache store.ChartCache, rec *metrics.Recorder) (*collector.Collector, error) {
	eng, err := ProvideEngine(cfg)
	if err != nil {
		return nil, err
	}
	fetcher := ProvideFetcher(cfg)
	log.Info().
		Str("source", fetcher.Name()).
		Str("coin", cfg.DataSource.Coin).
		Str("currency", cfg.DataSource.Currency).
		Str("profit_search", string(eng.ProfitSearch())).
		Msg("collector ready")
	return collector.NewCollector(fetcher, cache, eng, rec, cfg.DataSource.Coin, cfg.DataSource.Currency), nil
}
