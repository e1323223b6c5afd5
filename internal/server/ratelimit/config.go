package ratelimit

import (
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Rule limits one route. Paths ending in "/" match by prefix.
type Rule struct {
	Path   string
	Method string
	Limit  int           // requests per Window; zero or less means unlimited
	Window time.Duration // defaults to one minute
	Burst  int           // defaults to Limit
}

func (r Rule) key() string {
	return r.Method + " " + r.Path
}

func (r Rule) refill() rate.Limit {
	window := r.Window
	if window <= 0 {
		window = time.Minute
	}
	return rate.Limit(float64(r.Limit) / window.Seconds())
}

func (r Rule) burst() int {
	if r.Burst > 0 {
		return r.Burst
	}
	return r.Limit
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	Default         Rule
	Rules           []Rule
	Allowlist       map[string]bool
	CleanupInterval time.Duration
}

// DefaultConfig limits the routes that call the LLM, YouTube or feed providers more tightly than reads.
func DefaultConfig() *Config {
	return &Config{
		Enabled: true,
		Default: Rule{Limit: 600, Window: time.Minute},
		Rules: []Rule{
			{Path: "/health", Method: "GET", Limit: 0},
			{Path: "/process-file", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
			{Path: "/curriculum", Method: "POST", Limit: 20, Window: time.Hour, Burst: 3},
			{Path: "/section-resources", Method: "POST", Limit: 20, Window: time.Hour, Burst: 3},
			{Path: "/section-resources/stream", Method: "POST", Limit: 20, Window: time.Hour, Burst: 3},
			{Path: "/search", Method: "GET", Limit: 60, Window: time.Hour, Burst: 10},
		},
		Allowlist:       map[string]bool{},
		CleanupInterval: 5 * time.Minute,
	}
}

// RuleFor returns the rule for a request: an exact match first, then the longest prefix rule,
// then the default.
func (c *Config) RuleFor(path, method string) Rule {
	var best *Rule
	for i := range c.Rules {
		rule := &c.Rules[i]
		if rule.Method != method {
			continue
		}
		if rule.Path == path {
			return *rule
		}
		if strings.HasSuffix(rule.Path, "/") && strings.HasPrefix(path, rule.Path) &&
			(best == nil || len(rule.Path) > len(best.Path)) {
			best = rule
		}
	}
	if best != nil {
		return *best
	}
	return c.Default
}
