package service

import (
	"context"
	"fmt"
	"time"

	"archery-results/internal/config"
	"archery-results/internal/metrics"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

type CacheStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Flush(ctx context.Context) (int64, error)
	PurgeExpired(ctx context.Context) (int64, error)
}

type Upstream interface {
	GetRaw(ctx context.Context, url string) ([]byte, error)
}

// Fetcher returns upstream JSON, serving it from the cache while the entry
// is fresh and storing it for ttl after a miss.
type Fetcher struct {
	store    CacheStore
	upstream Upstream
	ttl      time.Duration
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

func NewFetcher(store CacheStore, upstream Upstream, cfg *config.Config, m *metrics.Metrics, logger zerolog.Logger) *Fetcher {
	return &Fetcher{
		store:    store,
		upstream: upstream,
		ttl:      cfg.CacheTTL,
		metrics:  m,
		logger:   logger,
	}
}

// Get decodes the JSON stored under cacheKey into out, fetching url on a miss.
func (f *Fetcher) Get(ctx context.Context, url, cacheKey string, out any) error {
	hit, err := f.Lookup(ctx, cacheKey, out)
	if err != nil {
		return err
	}
	if hit {
		return nil
	}

	f.logger.Info().Str("key", cacheKey).Str("url", url).Msg("cache miss, fetching upstream")
	body, err := f.upstream.GetRaw(ctx, url)
	if err != nil {
		f.metrics.UpstreamError()
		f.logger.Error().Err(err).Str("url", url).Msg("upstream fetch failed")
		return fmt.Errorf("failed to fetch %s: %w", cacheKey, err)
	}
	f.metrics.UpstreamOK()

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode upstream payload for %s: %w", cacheKey, err)
	}
	if err := f.store.Set(ctx, cacheKey, body, f.ttl); err != nil {
		return fmt.Errorf("failed to cache %s: %w", cacheKey, err)
	}
	return nil
}

// Lookup decodes a fresh cache entry into out. It reports false on a miss.
// An entry that no longer decodes is treated as a miss.
func (f *Fetcher) Lookup(ctx context.Context, cacheKey string, out any) (bool, error) {
	cached, ok, err := f.store.Get(ctx, cacheKey)
	if err != nil {
		return false, fmt.Errorf("failed to read cache for %s: %w", cacheKey, err)
	}
	if !ok {
		f.metrics.CacheMiss()
		return false, nil
	}
	if err := json.Unmarshal(cached, out); err != nil {
		f.metrics.CacheMiss()
		f.logger.Warn().Err(err).Str("key", cacheKey).Msg("cached value no longer decodes, refetching")
		return false, nil
	}
	f.metrics.CacheHit()
	f.logger.Debug().Str("key", cacheKey).Msg("cache hit")
	return true, nil
}

// Put stores v as JSON under cacheKey for the configured ttl.
func (f *Fetcher) Put(ctx context.Context, cacheKey string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", cacheKey, err)
	}
	if err := f.store.Set(ctx, cacheKey, body, f.ttl); err != nil {
		return fmt.Errorf("failed to cache %s: %w", cacheKey, err)
	}
	return nil
}

func (f *Fetcher) Flush(ctx context.Context) (int64, error) {
	return f.store.Flush(ctx)
}

func (f *Fetcher) PurgeExpired(ctx context.Context) (int64, error) {
	return f.store.PurgeExpired(ctx)
}
