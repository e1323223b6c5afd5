// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jonathan/curriculum-curator/internal/ranking"
)

// Cache backends
const (
	CacheNone     = "none"
	CachePostgres = "postgres"
	CacheRedis    = "redis"
)

// Defaults applied by MergeWithDefaults(Defaults()).
const (
	DefaultMaxUploadBytes    = 20 << 20
	DefaultMinExtractedChars = 50
	DefaultCandidateCount    = 5
	MaxCandidateCount        = 5
	DefaultTranscriptChars   = 8000
	DefaultCallTimeout       = "20s"
	DefaultCacheTTL          = "168h"
	DefaultPort              = 8080
	DefaultLogMode           = "production"
)

// Config represents the configuration that can be loaded from a JSON file and the environment.
// All fields are optional; missing values use defaults.
type Config struct {
	// Credentials and endpoints
	GeminiAPIKey   string `json:"gemini_api_key,omitempty"`  // Gemini API key (generation + embeddings)
	YouTubeAPIKey  string `json:"youtube_api_key,omitempty"` // YouTube Data API key
	SearchAPIKey   string `json:"search_api_key,omitempty"`  // Custom Search JSON API key (web articles)
	SearchEngineID string `json:"search_engine_id,omitempty"`
	DatabaseURL    string `json:"database_url,omitempty"` // PostgreSQL connection URL
	RedisAddr      string `json:"redis_addr,omitempty"`   // Redis host:port

	// Limits
	MaxUploadBytes    int `json:"max_upload_bytes,omitempty"`
	MinExtractedChars int `json:"min_extracted_chars,omitempty"`
	CandidateCount    int `json:"candidate_count,omitempty"`
	TranscriptChars   int `json:"transcript_chars,omitempty"`
	Retries           int `json:"retries,omitempty"`

	// Durations in time.ParseDuration syntax
	CallTimeout string `json:"call_timeout,omitempty"`
	CacheTTL    string `json:"cache_ttl,omitempty"`

	// Behavior
	CacheBackend   string           `json:"cache_backend,omitempty"` // none | postgres | redis
	RankingWeights *ranking.Weights `json:"ranking_weights,omitempty"`
	FeedTemplates  []string         `json:"feed_templates,omitempty"` // printf templates taking one tag
	Port           int              `json:"port,omitempty"`
	LogMode        string           `json:"log_mode,omitempty"` // development | production
	Verbose        bool             `json:"verbose,omitempty"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	weights := ranking.DefaultWeights()
	return Config{
		MaxUploadBytes:    DefaultMaxUploadBytes,
		MinExtractedChars: DefaultMinExtractedChars,
		CandidateCount:    DefaultCandidateCount,
		TranscriptChars:   DefaultTranscriptChars,
		CallTimeout:       DefaultCallTimeout,
		CacheTTL:          DefaultCacheTTL,
		CacheBackend:      CacheNone,
		RankingWeights:    &weights,
		Port:              DefaultPort,
		LogMode:           DefaultLogMode,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv returns a Config populated from the process environment.
func FromEnv() Config {
	cfg := Config{
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		YouTubeAPIKey:  os.Getenv("YOUTUBE_API_KEY"),
		SearchAPIKey:   os.Getenv("GOOGLE_SEARCH_API_KEY"),
		SearchEngineID: os.Getenv("GOOGLE_SEARCH_CX"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		CacheBackend:   os.Getenv("CACHE_BACKEND"),
		LogMode:        os.Getenv("LOG_MODE"),
	}
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Port = port
	}
	return cfg
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("config error: 'max_upload_bytes' must be non-negative")
	}
	if c.MinExtractedChars < 0 {
		return fmt.Errorf("config error: 'min_extracted_chars' must be non-negative")
	}
	if c.CandidateCount < 0 || c.CandidateCount > MaxCandidateCount {
		return fmt.Errorf("config error: 'candidate_count' must be between 0 and %d", MaxCandidateCount)
	}
	if c.TranscriptChars < 0 {
		return fmt.Errorf("config error: 'transcript_chars' must be non-negative")
	}
	if c.Retries < 0 {
		return fmt.Errorf("config error: 'retries' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	if (c.SearchAPIKey == "") != (c.SearchEngineID == "") {
		return fmt.Errorf("config error: 'search_api_key' and 'search_engine_id' must be set together")
	}

	if _, err := parseDuration("call_timeout", c.CallTimeout); err != nil {
		return err
	}
	if _, err := parseDuration("cache_ttl", c.CacheTTL); err != nil {
		return err
	}

	switch c.CacheBackend {
	case "", CacheNone:
	case CachePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: cache_backend %q requires 'database_url'", c.CacheBackend)
		}
	case CacheRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("config error: cache_backend %q requires 'redis_addr'", c.CacheBackend)
		}
	default:
		return fmt.Errorf("config error: unknown cache_backend %q", c.CacheBackend)
	}

	if c.RankingWeights != nil {
		if err := c.RankingWeights.Validate(); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// The receiver wins wherever it has a value.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.YouTubeAPIKey == "" {
		result.YouTubeAPIKey = defaults.YouTubeAPIKey
	}
	if result.SearchAPIKey == "" {
		result.SearchAPIKey = defaults.SearchAPIKey
	}
	if result.SearchEngineID == "" {
		result.SearchEngineID = defaults.SearchEngineID
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RedisAddr == "" {
		result.RedisAddr = defaults.RedisAddr
	}
	if result.CallTimeout == "" {
		result.CallTimeout = defaults.CallTimeout
	}
	if result.CacheTTL == "" {
		result.CacheTTL = defaults.CacheTTL
	}
	if result.CacheBackend == "" {
		result.CacheBackend = defaults.CacheBackend
	}
	if result.LogMode == "" {
		result.LogMode = defaults.LogMode
	}

	// Int fields: use default if zero
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = defaults.MaxUploadBytes
	}
	if result.MinExtractedChars == 0 {
		result.MinExtractedChars = defaults.MinExtractedChars
	}
	if result.CandidateCount == 0 {
		result.CandidateCount = defaults.CandidateCount
	}
	if result.TranscriptChars == 0 {
		result.TranscriptChars = defaults.TranscriptChars
	}
	if result.Retries == 0 {
		result.Retries = defaults.Retries
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	if result.RankingWeights == nil && defaults.RankingWeights != nil {
		w := *defaults.RankingWeights
		result.RankingWeights = &w
	}
	if len(result.FeedTemplates) == 0 {
		result.FeedTemplates = defaults.FeedTemplates
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// CallTimeoutDuration returns the per-call timeout, or zero when unset.
func (c *Config) CallTimeoutDuration() time.Duration {
	d, _ := parseDuration("call_timeout", c.CallTimeout)
	return d
}

// CacheTTLDuration returns the cache entry lifetime, or zero when unset.
func (c *Config) CacheTTLDuration() time.Duration {
	d, _ := parseDuration("cache_ttl", c.CacheTTL)
	return d
}

// Weights returns the configured ranking weights or the defaults.
func (c *Config) Weights() ranking.Weights {
	if c.RankingWeights == nil {
		return ranking.DefaultWeights()
	}
	return *c.RankingWeights
}

func parseDuration(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("config error: '%s' is not a valid duration: %w", field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("config error: '%s' must be non-negative", field)
	}
	return d, nil
}
