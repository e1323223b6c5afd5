package fetch

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jonathan/curriculum-curator/internal/cache"
	"github.com/jonathan/curriculum-curator/internal/observability"
)

// CachedFetcher wraps URL fetching with a cache.Store.
type CachedFetcher struct {
	store     cache.Store
	options   *Options
	cacheTTL  time.Duration
	skipCache bool // For testing or forcing fresh fetches
	log       *observability.Logger
}

// CachedFetcherConfig holds configuration for the cached fetcher.
type CachedFetcherConfig struct {
	CacheTTL  time.Duration
	SkipCache bool
	Options   *Options
	Log       *observability.Logger
}

// DefaultCachedFetcherConfig returns sensible defaults.
func DefaultCachedFetcherConfig() *CachedFetcherConfig {
	return &CachedFetcherConfig{
		CacheTTL:  cache.DefaultTTL,
		SkipCache: false,
		Options:   DefaultOptions(),
	}
}

// NewCachedFetcher creates a new cached fetcher. A nil store disables caching.
func NewCachedFetcher(store cache.Store, config *CachedFetcherConfig) *CachedFetcher {
	if config == nil {
		config = DefaultCachedFetcherConfig()
	}
	if config.Options == nil {
		config.Options = DefaultOptions()
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = cache.DefaultTTL
	}
	if store == nil {
		store = cache.NopStore{}
	}
	return &CachedFetcher{
		store:     store,
		options:   config.Options,
		cacheTTL:  config.CacheTTL,
		skipCache: config.SkipCache,
		log:       observability.OrNop(config.Log),
	}
}

// CachedResult extends Result with cache metadata.
type CachedResult struct {
	*Result
	FromCache bool
}

type cachedPage struct {
	URL         string `json:"url"`
	FinalURL    string `json:"final_url"`
	Body        []byte `json:"body"`
	ContentType string `json:"content_type"`
	StatusCode  int    `json:"status_code"`
}

// Fetch retrieves a URL, using cache if available and fresh.
// Only successful responses are cached.
func (f *CachedFetcher) Fetch(ctx context.Context, urlStr string) (*CachedResult, error) {
	key := cache.Key("page", urlStr)

	if !f.skipCache {
		raw, ok, err := f.store.Get(ctx, key)
		if err != nil {
			f.log.Warn("page cache read failed", "url", urlStr, "error", err)
		} else if ok {
			var page cachedPage
			if err := json.Unmarshal(raw, &page); err == nil {
				return &CachedResult{
					Result: &Result{
						URL:         page.URL,
						FinalURL:    page.FinalURL,
						Body:        page.Body,
						ContentType: page.ContentType,
						StatusCode:  page.StatusCode,
					},
					FromCache: true,
				}, nil
			}
		}
	}

	result, err := URL(ctx, urlStr, f.options)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(cachedPage{
		URL:         result.URL,
		FinalURL:    result.FinalURL,
		Body:        result.Body,
		ContentType: result.ContentType,
		StatusCode:  result.StatusCode,
	})
	if err == nil {
		if err := f.store.Set(ctx, key, raw, f.cacheTTL); err != nil {
			f.log.Warn("page cache write failed", "url", urlStr, "error", err)
		}
	}

	return &CachedResult{Result: result}, nil
}
