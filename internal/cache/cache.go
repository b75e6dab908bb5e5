// Package cache provides a SQLite-backed snapshot cache of portal responses,
// so the library can still be browsed when the backend is unreachable.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/educa-portal/acervo/internal/migrations"
)

// ErrMiss is returned when no unexpired snapshot exists for a key.
var ErrMiss = errors.New("cache miss")

// Open opens (creating if needed) the cache database at path and applies
// the schema. Use ":memory:" for a throwaway cache.
func Open(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	// A single connection keeps ":memory:" databases alive between calls.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate cache: %w", err)
	}
	return db, nil
}

// Entry is a cached value with its timestamps.
type Entry struct {
	Value     []byte
	FetchedAt time.Time
	ExpiresAt time.Time
}

// Age returns how long ago the entry was stored.
func (e Entry) Age(now time.Time) time.Duration {
	return now.Sub(e.FetchedAt)
}

// Cache stores snapshots keyed by string.
type Cache struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a cache over an opened database.
func New(db *sql.DB) *Cache {
	return &Cache{db: db, now: time.Now}
}

// Get retrieves an unexpired entry by key.
// Returns ErrMiss if not found or expired.
func (c *Cache) Get(ctx context.Context, key string) (Entry, error) {
	var (
		value string
		e     Entry
	)
	err := c.db.QueryRowContext(ctx,
		"SELECT value, fetched_at, expires_at FROM snapshots WHERE key = ?", key,
	).Scan(&value, &e.FetchedAt, &e.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrMiss
	}
	if err != nil {
		return Entry{}, fmt.Errorf("cache get %s: %w", key, err)
	}
	if c.now().After(e.ExpiresAt) {
		return Entry{}, ErrMiss
	}
	e.Value = []byte(value)
	return e, nil
}

// Set stores a value with the given TTL, replacing any previous entry.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	now := c.now().UTC()
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO snapshots (key, value, fetched_at, expires_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, fetched_at = excluded.fetched_at, expires_at = excluded.expires_at`,
		key, string(value), now, now.Add(ttl),
	)
	if err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// Delete removes a cached value.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if _, err := c.db.ExecContext(ctx, "DELETE FROM snapshots WHERE key = ?", key); err != nil {
		return fmt.Errorf("cache delete %s: %w", key, err)
	}
	return nil
}

// Prune removes all expired entries.
// Returns the number of entries removed.
func (c *Cache) Prune(ctx context.Context) (int64, error) {
	result, err := c.db.ExecContext(ctx,
		"DELETE FROM snapshots WHERE expires_at < ?", c.now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("cache prune: %w", err)
	}
	return result.RowsAffected()
}

// Clear removes every entry.
func (c *Cache) Clear(ctx context.Context) (int64, error) {
	result, err := c.db.ExecContext(ctx, "DELETE FROM snapshots")
	if err != nil {
		return 0, fmt.Errorf("cache clear: %w", err)
	}
	return result.RowsAffected()
}
