package pubview

import (
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// SiteConfig holds all configuration for a pubview site.
type SiteConfig struct {
	Name        string // Site name (default "Blog")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Author name for the intro and JSON-LD
	Locale      string // Date display locale (default "en-US")

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/blog.db")

	ContentDir   string // Pipeline export to import at startup; empty skips the import
	ContentWatch bool   // Re-import when ContentDir changes

	PostsPerPage int           // List page size (default 5)
	PostCacheTTL time.Duration // Post cache TTL (default 5min)

	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	OTLPEndpoint string // OTLP gRPC collector; empty disables trace export
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimSuffix(c.URL, "/")
	if c.Locale == "" {
		c.Locale = "en-US"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/blog.db"
	}
	if c.PostsPerPage <= 0 {
		c.PostsPerPage = 5
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
}

// LoadConfig builds a SiteConfig from the environment. A .env file in the
// working directory is loaded first when present; real environment variables
// win over it.
func LoadConfig() SiteConfig {
	_ = godotenv.Load()

	return SiteConfig{
		Name:          EnvOr("SITE_NAME", "Blog"),
		URL:           EnvOr("SITE_URL", "http://localhost:3000"),
		Description:   EnvOr("SITE_DESCRIPTION", ""),
		Author:        EnvOr("SITE_AUTHOR", ""),
		Locale:        EnvOr("SITE_LOCALE", "en-US"),
		Addr:          EnvOr("ADDR", ":3000"),
		DatabasePath:  EnvOr("DATABASE_PATH", "data/blog.db"),
		ContentDir:    EnvOr("CONTENT_DIR", ""),
		ContentWatch:  envBool("CONTENT_WATCH"),
		PostsPerPage:  envInt("POSTS_PER_PAGE", 5),
		PostCacheTTL:  envDuration("POST_CACHE_TTL", 5*time.Minute),
		SessionSecret: EnvOr("SESSION_SECRET", ""),
		CookieSecure:  envBool("COOKIE_SECURE"),
		OTLPEndpoint:  EnvOr("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}
}

func envBool(key string) bool {
	return strings.EqualFold(EnvOr(key, ""), "true")
}

func envInt(key string, fallback int) int {
	if i, err := strconv.Atoi(EnvOr(key, "")); err == nil {
		return i
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := EnvOr(key, "")
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	// Plain integers are seconds.
	if i, err := strconv.Atoi(v); err == nil {
		return time.Duration(i) * time.Second
	}
	return fallback
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are mounted.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for static assets (default "public").
// Imported pipeline assets land in its static/ subdirectory.
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithViews replaces the default components.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		a.Views = v
	}
}
