package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// CacheRepository stores raw JSON payloads in SQLite with a per-entry expiry.
type CacheRepository struct {
	db     *sql.DB
	logger zerolog.Logger
	now    func() time.Time
}

func NewCacheRepository(sqlDB *sql.DB, logger zerolog.Logger) *CacheRepository {
	return &CacheRepository{
		db:     sqlDB,
		logger: logger,
		now:    time.Now,
	}
}

// Get returns the stored value for key. An expired entry is deleted and
// reported as a miss.
func (r *CacheRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var (
		value     []byte
		expiresAt int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT value, expires_at FROM cache_entries WHERE cache_key = ?`, key,
	).Scan(&value, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache entry %s: %w", key, err)
	}

	if r.now().UnixMilli() >= expiresAt {
		r.logger.Debug().Str("key", key).Msg("cache entry expired")
		if _, err := r.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE cache_key = ?`, key); err != nil {
			r.logger.Warn().Err(err).Str("key", key).Msg("failed to delete expired cache entry")
		}
		return nil, false, nil
	}

	return value, true, nil
}

func (r *CacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	now := r.now()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cache_entries (cache_key, value, expires_at, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (cache_key) DO UPDATE SET
			value = excluded.value,
			expires_at = excluded.expires_at,
			created_at = excluded.created_at`,
		key, value, now.Add(ttl).UnixMilli(), now.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to write cache entry %s: %w", key, err)
	}
	return nil
}

// Flush removes every entry and returns how many were deleted.
func (r *CacheRepository) Flush(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cache_entries`)
	if err != nil {
		return 0, fmt.Errorf("failed to flush cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count flushed entries: %w", err)
	}
	r.logger.Info().Int64("deleted", n).Msg("cache flushed")
	return n, nil
}

// PurgeExpired deletes entries whose ttl has elapsed.
func (r *CacheRepository) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE expires_at <= ?`, r.now().UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired cache entries: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count purged entries: %w", err)
	}
	if n > 0 {
		// return freed pages to the filesystem
		if _, err := r.db.ExecContext(ctx, `PRAGMA incremental_vacuum`); err != nil {
			r.logger.Warn().Err(err).Msg("incremental vacuum failed")
		}
	}
	return n, nil
}
