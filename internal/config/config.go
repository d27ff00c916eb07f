package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName    string
	AppEnv     string
	AppURL     string
	Port       string
	AppTagline string

	// Feeds
	FeedSource        string // "bridge" or "rss"
	FeedBridgeURL     string
	FeedAuthors       string // comma separated Name=handle pairs, in fetch order
	DescriptionLength int
	HTTPTimeout       time.Duration
	FallbackNotice    bool // Show a banner when placeholder posts are served

	// GitHub (tools page)
	GitHubAPIURL string
	GitHubUser   string
	GitHubToken  string // Optional: raises the unauthenticated rate limit

	// Rate limiting for pages that hit upstream APIs
	RateLimitRequests int
	RateLimitWindow   time.Duration
	TrustProxy        bool // Key the limit on X-Forwarded-For; only behind a reverse proxy

	// Analytics (all optional, can be used simultaneously)
	GoogleAnalyticsID string
	PlausibleDomain   string
	PlausibleHost     string // Default: plausible.io, can be self-hosted

	// Observability (optional)
	SentryDSN      string
	MetricsEnabled bool // Serve Prometheus metrics on /metrics
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName:    envString("APP_NAME", "VulnInsights"),
		AppEnv:     envString("APP_ENV", "development"),
		AppURL:     strings.TrimSuffix(envString("APP_URL", "https://vulninsights.com"), "/"),
		Port:       envString("PORT", "8090"),
		AppTagline: envString("APP_TAGLINE", "Exploring the frontiers of cybersecurity through expert insights, advanced techniques, and real-world vulnerability research."),

		// Feeds
		FeedSource:        envString("FEED_SOURCE", "bridge"),
		FeedBridgeURL:     envString("FEED_BRIDGE_URL", "https://api.rss2json.com/v1/api.json"),
		FeedAuthors:       envString("FEED_AUTHORS", "Kaif=SKaif009,Het=hettt"),
		DescriptionLength: envInt("DESCRIPTION_LENGTH", 200),
		HTTPTimeout:       envDuration("HTTP_TIMEOUT", 10*time.Second),
		FallbackNotice:    envBool("FALLBACK_NOTICE", true),

		// GitHub
		GitHubAPIURL: strings.TrimSuffix(envString("GITHUB_API_URL", "https://api.github.com"), "/"),
		GitHubUser:   envString("GITHUB_USER", "SKaif009"),
		GitHubToken:  envString("GITHUB_TOKEN", ""),

		// Rate limiting
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 60),
		RateLimitWindow:   envDuration("RATE_LIMIT_WINDOW", time.Minute),
		TrustProxy:        envBool("TRUST_PROXY", false),

		// Analytics
		GoogleAnalyticsID: envString("GOOGLE_ANALYTICS_ID", ""),
		PlausibleDomain:   envString("PLAUSIBLE_DOMAIN", ""),
		PlausibleHost:     envString("PLAUSIBLE_HOST", "plausible.io"),

		// Observability
		SentryDSN:      envString("SENTRY_DSN", ""),
		MetricsEnabled: envBool("METRICS_ENABLED", false),
	}

	if cfg.FeedSource != "bridge" && cfg.FeedSource != "rss" {
		slog.Warn("config invalid feed source, using default", "key", "FEED_SOURCE", "value", cfg.FeedSource, "default", "bridge")
		cfg.FeedSource = "bridge"
	}

	// Production: validate required settings
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures the public URL is explicit in production, since
// it ends up in canonical links, OpenGraph tags and the sitemap.
func validateProduction(cfg *Config) {
	if os.Getenv("APP_URL") == "" {
		slog.Error("production deployment requires APP_URL",
			"hint", "set APP_ENV=development for local testing")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// AnalyticsEnabled reports whether any analytics provider is configured.
func (c *Config) AnalyticsEnabled() bool {
	return c.GoogleAnalyticsID != "" || c.PlausibleDomain != ""
}

// Sanitized returns a copy of the config with only public/safe fields.
// Tokens and DSNs are excluded.
// Safe to expose in ctx, templates and client-facing contexts.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName:    c.AppName,
		AppEnv:     c.AppEnv,
		AppURL:     c.AppURL,
		Port:       c.Port,
		AppTagline: c.AppTagline,

		GitHubUser:     c.GitHubUser,
		FallbackNotice: c.FallbackNotice,

		GoogleAnalyticsID: c.GoogleAnalyticsID,
		PlausibleDomain:   c.PlausibleDomain,
		PlausibleHost:     c.PlausibleHost,
	}
}
