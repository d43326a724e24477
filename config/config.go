package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	Port    string `env:"PORT" envDefault:"8082"`
	GinMode string `env:"GIN_MODE" envDefault:"release"`
	DBPath  string `env:"SEO_AUDIT_DB_PATH" envDefault:"./seo-audit.sqlite"`

	// PageSpeed Insights API key. Empty disables the adapter and the
	// technical analysis falls back to the local heuristics.
	PageSpeedAPIKey string `env:"PAGESPEED_API_KEY"`

	FetchTimeout     time.Duration `env:"SEO_AUDIT_FETCH_TIMEOUT" envDefault:"25s"`
	ProbeTimeout     time.Duration `env:"SEO_AUDIT_PROBE_TIMEOUT" envDefault:"8s"`
	PageSpeedTimeout time.Duration `env:"SEO_AUDIT_PAGESPEED_TIMEOUT" envDefault:"90s"`
	CacheTTL         time.Duration `env:"SEO_AUDIT_CACHE_TTL" envDefault:"24h"`

	// Rate limit applied per client IP on the analyze endpoint.
	RateLimitPerSecond float64 `env:"SEO_AUDIT_RATE_LIMIT" envDefault:"2"`
	RateLimitBurst     int     `env:"SEO_AUDIT_RATE_BURST" envDefault:"5"`

	UserAgent string `env:"SEO_AUDIT_USER_AGENT" envDefault:"SEOAuditBot/1.0 (+https://seo-audit.example)"`
}

// MaxCompetitors bounds the competitor comparison feature.
const MaxCompetitors = 3

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}
