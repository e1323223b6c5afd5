package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// Get implements cache.Store. Expired rows are treated as missing.
func (db *DB) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := db.pool.QueryRow(ctx,
		`SELECT value FROM cache_entries WHERE key = $1 AND expires_at > NOW()`,
		key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache entry: %w", err)
	}
	return value, true, nil
}

// Set implements cache.Store.
func (db *DB) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO cache_entries (key, value, expires_at)
		 VALUES ($1, $2, NOW() + make_interval(secs => $3))
		 ON CONFLICT (key) DO UPDATE SET value = $2, expires_at = NOW() + make_interval(secs => $3), created_at = NOW()`,
		key, value, ttl.Seconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// DeleteExpired removes expired cache rows and returns how many were deleted.
func (db *DB) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM cache_entries WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired cache entries: %w", err)
	}
	return tag.RowsAffected(), nil
}
