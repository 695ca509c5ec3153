package ratelimit

import (
	"strconv"
	"strings"
	"time"
)

// Rule limits requests matching Method and Path.
// A Path ending in "/" matches every path under it; otherwise the match is exact.
type Rule struct {
	Method string
	Path   string
	Limit  int           // Requests per Window; zero or less means unlimited
	Window time.Duration // Refill period for Limit tokens
	Burst  int           // Bucket capacity; defaults to Limit
}

// Matches reports whether the rule applies to a request.
func (r Rule) Matches(method, path string) bool {
	if r.Method != "" && r.Method != method {
		return false
	}
	if strings.HasSuffix(r.Path, "/") {
		return strings.HasPrefix(path, r.Path)
	}
	return path == r.Path
}

func (r Rule) key() string {
	return r.Method + " " + r.Path
}

func (r Rule) capacity() int {
	if r.Burst > 0 {
		return r.Burst
	}
	return r.Limit
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled bool
	Default Rule
	Rules   []Rule
	// Exempt clients are never limited; Blocked clients are always refused.
	Exempt  map[string]bool
	Blocked map[string]bool
	// IdleTTL is how long an unused bucket is kept.
	IdleTTL time.Duration
}

// DefaultRules returns the per-endpoint limits. Exports start a browser and are the most expensive.
func DefaultRules() []Rule {
	return []Rule{
		{Method: "GET", Path: "/health"},
		{Method: "POST", Path: "/api/export", Limit: 30, Window: time.Minute, Burst: 5},
		{Method: "POST", Path: "/api/export/stream", Limit: 30, Window: time.Minute, Burst: 5},
		{Method: "DELETE", Path: "/api/record", Limit: 10, Window: time.Minute, Burst: 3},
	}
}

// DefaultConfig returns an enabled config with DefaultRules.
func DefaultConfig() *Config {
	return &Config{
		Enabled: true,
		Default: Rule{Limit: 1200, Window: time.Minute},
		Rules:   DefaultRules(),
		Exempt:  map[string]bool{},
		Blocked: map[string]bool{},
		IdleTTL: time.Hour,
	}
}

// LoadConfig builds a config from environment variables read through lookup.
func LoadConfig(lookup func(string) (string, bool)) *Config {
	cfg := DefaultConfig()
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	if v, err := strconv.ParseBool(get("RATE_LIMIT_ENABLED")); err == nil {
		cfg.Enabled = v
	}
	if v, err := strconv.Atoi(get("RATE_LIMIT_DEFAULT_LIMIT")); err == nil {
		cfg.Default.Limit = v
	}
	if v, err := time.ParseDuration(get("RATE_LIMIT_DEFAULT_WINDOW")); err == nil && v > 0 {
		cfg.Default.Window = v
	}
	if v, err := strconv.Atoi(get("RATE_LIMIT_EXPORT_LIMIT")); err == nil {
		for i := range cfg.Rules {
			if strings.HasPrefix(cfg.Rules[i].Path, "/api/export") {
				cfg.Rules[i].Limit = v
			}
		}
	}
	cfg.Exempt = parseClientList(get("RATE_LIMIT_WHITELIST"))
	cfg.Blocked = parseClientList(get("RATE_LIMIT_BLACKLIST"))
	return cfg
}

// ruleFor returns the first matching rule, or the default.
func (c *Config) ruleFor(method, path string) Rule {
	for _, r := range c.Rules {
		if r.Matches(method, path) {
			return r
		}
	}
	return c.Default
}

// parseClientList parses a comma-separated list of client addresses.
func parseClientList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result[item] = true
		}
	}
	return result
}
