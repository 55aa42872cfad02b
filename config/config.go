package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration. It is built once at process
// start by Load and passed by reference to every component that needs it.
type Config struct {
	Server    ServerConfig
	Scraper   ScraperConfig
	Search    SearchConfig
	Pool      PoolConfig
	LLM       LLMConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Webhook   WebhookConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// ScraperConfig controls per-page fetching.
type ScraperConfig struct {
	// PageTimeout is the deadline for one page GET. Default: 5s.
	PageTimeout time.Duration

	// FaviconTimeout is the deadline for the favicon lookup. Default: 3s.
	FaviconTimeout time.Duration

	// MaxBodyBytes caps the response body read per page. Default: 10 MB.
	MaxBodyBytes int64
}

// SearchConfig controls the web-search fallback collaborator.
type SearchConfig struct {
	// Endpoint is the HTML search endpoint queried for fallback
	// enrichment and company-name resolution.
	// Default: "https://html.duckduckgo.com/html/".
	Endpoint string

	// Timeout is the deadline for one search query. Default: 5s.
	Timeout time.Duration
}

// PoolConfig controls the pipeline worker pool.
type PoolConfig struct {
	// Workers is the number of domains processed concurrently. Default: 10.
	Workers int
}

// LLMConfig configures the OpenAI-compatible generation client.
// When APIKey is empty the LLM surface (summary/email/tags/chat) is
// disabled and the scraping pipeline runs without tagging.
type LLMConfig struct {
	APIKey  string
	Model   string        // default: "gpt-4o-mini"
	BaseURL string        // default: "https://api.openai.com/v1"
	Timeout time.Duration // default: 60s
}

// Enabled reports whether an LLM API key is configured.
func (c LLMConfig) Enabled() bool { return c.APIKey != "" }

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: true

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per API key.
	Burst int // default: 10
}

// CacheConfig controls the in-memory lead cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached leads.
	MaxEntries int // default: 1000
}

// WebhookConfig controls outgoing webhook deliveries.
type WebhookConfig struct {
	// Secret, when set, is used to sign webhook payloads with HMAC-SHA256.
	Secret string
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("PROSPECT_HOST", "0.0.0.0"),
			Port: envIntOr("PROSPECT_PORT", 8080),
			Mode: envOr("PROSPECT_MODE", "release"),
		},
		Scraper: ScraperConfig{
			PageTimeout:    envDurationOr("PROSPECT_PAGE_TIMEOUT", 5*time.Second),
			FaviconTimeout: envDurationOr("PROSPECT_FAVICON_TIMEOUT", 3*time.Second),
			MaxBodyBytes:   int64(envIntOr("PROSPECT_MAX_BODY_BYTES", 10<<20)),
		},
		Search: SearchConfig{
			Endpoint: envOr("PROSPECT_SEARCH_ENDPOINT", "https://html.duckduckgo.com/html/"),
			Timeout:  envDurationOr("PROSPECT_SEARCH_TIMEOUT", 5*time.Second),
		},
		Pool: PoolConfig{
			Workers: envIntOr("PROSPECT_POOL_WORKERS", 10),
		},
		LLM: LLMConfig{
			APIKey:  os.Getenv("PROSPECT_LLM_API_KEY"),
			Model:   envOr("PROSPECT_LLM_MODEL", "gpt-4o-mini"),
			BaseURL: envOr("PROSPECT_LLM_BASE_URL", "https://api.openai.com/v1"),
			Timeout: envDurationOr("PROSPECT_LLM_TIMEOUT", 60*time.Second),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("PROSPECT_AUTH_ENABLED", true),
			APIKeys: envSliceOr("PROSPECT_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("PROSPECT_RATE_RPS", 5.0),
			Burst:             envIntOr("PROSPECT_RATE_BURST", 10),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("PROSPECT_CACHE_MAX_ENTRIES", 1000),
		},
		Webhook: WebhookConfig{
			Secret: os.Getenv("PROSPECT_WEBHOOK_SECRET"),
		},
		Log: LogConfig{
			Level:  envOr("PROSPECT_LOG_LEVEL", "info"),
			Format: envOr("PROSPECT_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
