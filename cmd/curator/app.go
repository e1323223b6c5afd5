package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/curriculum-curator/internal/cache"
	"github.com/jonathan/curriculum-curator/internal/config"
	"github.com/jonathan/curriculum-curator/internal/curriculum"
	"github.com/jonathan/curriculum-curator/internal/db"
	"github.com/jonathan/curriculum-curator/internal/feeds"
	"github.com/jonathan/curriculum-curator/internal/fetch"
	"github.com/jonathan/curriculum-curator/internal/llm"
	"github.com/jonathan/curriculum-curator/internal/matching"
	"github.com/jonathan/curriculum-curator/internal/observability"
	"github.com/jonathan/curriculum-curator/internal/pipeline"
	"github.com/jonathan/curriculum-curator/internal/research"
	"github.com/jonathan/curriculum-curator/internal/youtube"
)

const (
	redisKeyPrefix = "curator:"
	feedCacheTTL   = time.Hour
)

// loadConfig layers the config file over the environment over the defaults.
func loadConfig() (config.Config, error) {
	env := config.FromEnv()
	cfg := env.MergeWithDefaults(config.Defaults())

	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}
	if verbose {
		cfg.Verbose = true
		cfg.LogMode = "development"
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// app holds the components built from a Config.
type app struct {
	cfg       config.Config
	log       *observability.Logger
	llm       llm.Client
	db        *db.DB
	redis     *cache.RedisStore
	store     cache.Store
	pipeline  *pipeline.Pipeline
	generator *curriculum.Generator
}

// newApp connects the configured backends. Missing API keys leave the matching provider unset
// rather than failing, so offline commands keep working.
func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	logger, err := observability.NewLogger(cfg.LogMode)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, log: logger}

	if err := a.connectStores(ctx); err != nil {
		a.Close()
		return nil, err
	}

	if cfg.GeminiAPIKey != "" {
		client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		a.llm = client
		a.generator = curriculum.NewGenerator(client, logger)
	}

	articles, err := a.articleSearchers(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	p := &pipeline.Pipeline{
		Articles:          articles,
		Weights:           cfg.Weights(),
		MaxUploadBytes:    cfg.MaxUploadBytes,
		MinExtractedChars: cfg.MinExtractedChars,
		Log:               logger,
	}
	if a.db != nil {
		p.Documents = a.db
	}

	if cfg.YouTubeAPIKey != "" {
		videos, err := youtube.NewSearcher(ctx, cfg.YouTubeAPIKey)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to create YouTube client: %w", err)
		}
		p.Videos = videos
		if a.llm != nil {
			p.Matcher = a.matcher(videos)
		}
	}

	a.pipeline = p
	return a, nil
}

func (a *app) connectStores(ctx context.Context) error {
	if a.cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, a.cfg.DatabaseURL)
		if err != nil {
			return err
		}
		a.db = database
		if err := database.Migrate(ctx); err != nil {
			return err
		}
	}

	switch a.cfg.CacheBackend {
	case config.CachePostgres:
		a.store = a.db
	case config.CacheRedis:
		rs, err := cache.NewRedisStore(ctx, a.cfg.RedisAddr, redisKeyPrefix)
		if err != nil {
			return err
		}
		a.redis = rs
		a.store = rs
	}
	return nil
}

// articleSearchers combines tag feeds with web search when a search engine is configured.
func (a *app) articleSearchers(ctx context.Context) (pipeline.ArticleSearcher, error) {
	tagFeeds := feeds.NewArticleSearcher(a.log)
	if len(a.cfg.FeedTemplates) > 0 {
		tagFeeds.Templates = a.cfg.FeedTemplates
	}
	if a.store != nil {
		tagFeeds.Cache = fetch.NewCachedFetcher(a.store, &fetch.CachedFetcherConfig{CacheTTL: feedCacheTTL, Log: a.log})
	}
	if a.cfg.SearchAPIKey == "" {
		return tagFeeds, nil
	}

	web, err := research.NewSearcher(ctx, a.cfg.SearchAPIKey, a.cfg.SearchEngineID)
	if err != nil {
		return nil, err
	}
	web.Log = a.log
	return pipeline.CombineArticles(tagFeeds, web), nil
}

func (a *app) matcher(videos *youtube.Searcher) *matching.Matcher {
	ttl := a.cfg.CacheTTLDuration()
	return &matching.Matcher{
		Searcher:        videos,
		Transcripts:     &cache.CachedTranscripts{Inner: youtube.NewTranscriptClient(), Store: a.store, TTL: ttl, Log: a.log},
		Embedder:        &cache.CachedEmbedder{Inner: a.llm, Store: a.store, TTL: ttl, Log: a.log},
		Explainer:       matching.NewLLMExplainer(a.llm),
		CandidateCount:  a.cfg.CandidateCount,
		TranscriptChars: a.cfg.TranscriptChars,
		CallTimeout:     a.cfg.CallTimeoutDuration(),
		Retries:         a.cfg.Retries,
		Log:             a.log,
	}
}

// Close releases every connection the app opened.
func (a *app) Close() {
	if a.llm != nil {
		_ = a.llm.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
	a.log.Sync()
}

// writeOutput writes v as indented JSON to path, or to w when path is empty.
func writeOutput(w io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	if path == "" {
		_, err := fmt.Fprintln(w, string(data))
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
