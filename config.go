package neuron

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// SiteConfig holds all configuration for a Neuron site.
type SiteConfig struct {
	Name        string // Site name (default "Neuron")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Author name for JSON-LD

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/neuron.db")

	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	// Server-side channel verification. Leave the client fields empty to use
	// the self-reported confirmation flow instead.
	OAuthClientID     string
	OAuthClientSecret string
	OAuthRedirectURL  string // default URL + "/auth/callback"
	YoutubeAPIKey     string // only needed to resolve handle-style channel URLs

	ContentCacheTTL time.Duration // content cache TTL (default 5min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Neuron"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/neuron.db"
	}
	if c.OAuthRedirectURL == "" {
		c.OAuthRedirectURL = c.URL + "/auth/callback"
	}
	if c.ContentCacheTTL == 0 {
		c.ContentCacheTTL = 5 * time.Minute
	}
}

// ConfigFromEnv builds a SiteConfig from environment variables, loading a
// .env file first when one exists.
func ConfigFromEnv() SiteConfig {
	_ = godotenv.Load()
	return SiteConfig{
		Name:              EnvOr("SITE_NAME", ""),
		URL:               strings.TrimSuffix(os.Getenv("SITE_URL"), "/"),
		Description:       os.Getenv("SITE_DESCRIPTION"),
		Author:            os.Getenv("SITE_AUTHOR"),
		Addr:              EnvOr("ADDR", ""),
		DatabasePath:      EnvOr("DATABASE_PATH", ""),
		SessionSecret:     MustEnv("SESSION_SECRET"),
		CookieSecure:      strings.EqualFold(os.Getenv("COOKIE_SECURE"), "true"),
		OAuthClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		OAuthClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		OAuthRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		YoutubeAPIKey:     os.Getenv("YOUTUBE_API_KEY"),
	}
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("neuron: required environment variable %s is not set", key)
	}
	return v
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}
