// Package store provides a SQLite-backed memo cache for scenario comparisons.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ResultCache stores serialized comparison results keyed by input fingerprint.
type ResultCache struct {
	db  *sql.DB
	now func() time.Time
}

// Entry describes one cached result without its payload.
type Entry struct {
	Key       string
	SizeBytes int64
	CreatedAt time.Time
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*ResultCache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &ResultCache{db: db, now: time.Now}, nil
}

// DefaultPath returns the cache location under the user's cache directory.
func DefaultPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "networth", "results.db")
}

// Close closes the cache database.
func (c *ResultCache) Close() error {
	return c.db.Close()
}

// Load returns the payload stored under key. The boolean is false on a miss.
func (c *ResultCache) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var payload []byte
	err := c.db.QueryRowContext(ctx,
		"SELECT payload FROM comparison_cache WHERE cache_key = ?", key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("loading %s: %w", key, err)
	}
	return payload, true, nil
}

// Save stores data under key, replacing any previous entry.
func (c *ResultCache) Save(ctx context.Context, key string, data []byte) error {
	_, err := c.db.ExecContext(ctx, `INSERT OR REPLACE INTO comparison_cache
		(cache_key, payload, size_bytes, created_at) VALUES (?, ?, ?, ?)`,
		key, data, len(data), c.now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

// Entries lists cached results, newest first.
func (c *ResultCache) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := c.db.QueryContext(ctx,
		"SELECT cache_key, size_bytes, created_at FROM comparison_cache ORDER BY created_at DESC, cache_key")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.Key, &e.SizeBytes, &created); err != nil {
			return nil, err
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, created)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Prune deletes entries older than maxAge and returns how many were removed.
func (c *ResultCache) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := c.now().Add(-maxAge).UTC().Format(time.RFC3339)
	res, err := c.db.ExecContext(ctx, "DELETE FROM comparison_cache WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning cache: %w", err)
	}
	return res.RowsAffected()
}

// Clear removes every cached result.
func (c *ResultCache) Clear(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, "DELETE FROM comparison_cache")
	return err
}
