// Package cache implements a small Postgres-backed cache with TTL. Settlement
// summaries are the main consumer; keeping the cache in the same database
// avoids a second infrastructure dependency for a read-side optimization.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrCacheMiss is returned when a key is not found
	ErrCacheMiss = errors.New("cache miss")
	// ErrCacheExpired is returned when a cached value has expired
	ErrCacheExpired = errors.New("cache expired")
)

// DB interface for database operations (compatible with pgxpool.Pool and pgxmock)
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
}

// PGCache stores opaque byte values in the cache_entries table
type PGCache struct {
	db DB
}

func NewPGCache(db DB) *PGCache {
	return &PGCache{db: db}
}

// Get retrieves a value by key. Expired entries are deleted on read.
func (c *PGCache) Get(ctx context.Context, key string) ([]byte, error) {
	query := `
		SELECT value, expires_at
		FROM cache_entries
		WHERE key = $1
	`

	var value []byte
	var expiresAt time.Time

	err := c.db.QueryRow(ctx, query, key).Scan(&value, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	if time.Now().After(expiresAt) {
		_ = c.Delete(ctx, key)
		return nil, ErrCacheExpired
	}

	return value, nil
}

// Set stores a value with TTL, overwriting any previous entry for the key
func (c *PGCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	query := `
		INSERT INTO cache_entries (key, value, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value,
		    expires_at = EXCLUDED.expires_at,
		    created_at = NOW()
	`

	_, err := c.db.Exec(ctx, query, key, value, time.Now().Add(ttl))
	return err
}

// Delete removes a key
func (c *PGCache) Delete(ctx context.Context, key string) error {
	_, err := c.db.Exec(ctx, `DELETE FROM cache_entries WHERE key = $1`, key)
	return err
}

// DeletePattern removes all keys matching a LIKE pattern. Used to invalidate
// every cached window of a benefit or fleet after reconfiguration.
func (c *PGCache) DeletePattern(ctx context.Context, pattern string) (int64, error) {
	result, err := c.db.Exec(ctx, `DELETE FROM cache_entries WHERE key LIKE $1`, pattern)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

// CleanupExpired removes all expired entries
func (c *PGCache) CleanupExpired(ctx context.Context) (int64, error) {
	result, err := c.db.Exec(ctx, `DELETE FROM cache_entries WHERE expires_at < NOW()`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
