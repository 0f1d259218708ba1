package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"MarketLens/internal/model"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// SQLiteCache persists raw market charts to a SQLite database.
type SQLiteCache struct {
	db  *sql.DB
	mu  sync.Mutex
	ttl time.Duration
	now func() time.Time
}

// NewSQLiteCache opens (or creates) the SQLite database and runs migrations.
// Entries older than ttl are treated as misses; ttl <= 0 keeps them forever.
func NewSQLiteCache(dbPath string, ttl time.Duration) (*SQLiteCache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	c := &SQLiteCache{db: db, ttl: ttl, now: time.Now}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Dur("ttl", ttl).Msg("sqlite chart cache opened")
	return c, nil
}

func (c *SQLiteCache) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS market_charts (
			key        TEXT PRIMARY KEY,
			coin       TEXT NOT NULL,
			currency   TEXT NOT NULL,
			from_ts    INTEGER NOT NULL,
			to_ts      INTEGER NOT NULL,
			fetched_at INTEGER NOT NULL,
			prices     TEXT NOT NULL,
			volumes    TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_charts_fetched ON market_charts(fetched_at)`,
	}
	for _, s := range stmts {
		if _, err := c.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (c *SQLiteCache) Get(ctx context.Context, q model.ChartQuery) (*model.MarketChart, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var (
		fetchedAt       int64
		prices, volumes string
	)
	err := c.db.QueryRowContext(ctx,
		`SELECT fetched_at, prices, volumes FROM market_charts WHERE key = ?`, Key(q),
	).Scan(&fetchedAt, &prices, &volumes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query chart: %w", err)
	}
	if c.expired(fetchedAt) {
		return nil, false, nil
	}

	chart := &model.MarketChart{}
	if err := json.Unmarshal([]byte(prices), &chart.Prices); err != nil {
		return nil, false, fmt.Errorf("decode prices: %w", err)
	}
	if err := json.Unmarshal([]byte(volumes), &chart.Volumes); err != nil {
		return nil, false, fmt.Errorf("decode volumes: %w", err)
	}
	return chart, true, nil
}

func (c *SQLiteCache) Put(ctx context.Context, q model.ChartQuery, chart *model.MarketChart) error {
	prices, err := json.Marshal(chart.Prices)
	if err != nil {
		return fmt.Errorf("encode prices: %w", err)
	}
	volumes, err := json.Marshal(chart.Volumes)
	if err != nil {
		return fmt.Errorf("encode volumes: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	_, err = c.db.ExecContext(ctx, `INSERT OR REPLACE INTO market_charts
		(key, coin, currency, from_ts, to_ts, fetched_at, prices, volumes)
		VALUES (?,?,?,?,?,?,?,?)`,
		Key(q), q.Coin, q.Currency, q.From.Unix(), q.To.Unix(),
		c.now().Unix(), string(prices), string(volumes),
	)
	return err
}

// Prune deletes expired entries and reports how many were removed.
func (c *SQLiteCache) Prune(ctx context.Context) (int64, error) {
	if c.ttl <= 0 {
		return 0, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := c.now().Add(-c.ttl).Unix()
	res, err := c.db.ExecContext(ctx, `DELETE FROM market_charts WHERE fetched_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune charts: %w", err)
	}
	return res.RowsAffected()
}

func (c *SQLiteCache) Close() error {
	log.Info().Msg("closing sqlite chart cache")
	return c.db.Close()
}

func (c *SQLiteCache) expired(fetchedAt int64) bool {
	if c.ttl <= 0 {
		return false
	}
	return c.now().Sub(time.Unix(fetchedAt, 0)) > c.ttl
}
