// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// MasterSecret is the HMAC master secret for token signing.
	// Required for token operations and must never be logged or returned in responses.
	MasterSecret string
	// DefaultTTLSeconds is the token time-to-live used when a request omits one.
	DefaultTTLSeconds int

	// WhitelistPath is the path to the newline-delimited allowed domains file.
	WhitelistPath string
	// WhitelistEnforced indicates whether domain checks require whitelist membership.
	WhitelistEnforced bool

	// CheckTimeout is the total timeout for a single domain security check,
	// covering connect, handshake, and body read.
	CheckTimeout time.Duration
	// CheckMaxConcurrency bounds the number of concurrent domain checks in batch mode.
	CheckMaxConcurrency int

	// HTTPClientMaxConnections is the maximum number of outbound connections in the pool.
	HTTPClientMaxConnections int
	// HTTPClientMaxIdleConnections is the maximum number of idle outbound connections.
	HTTPClientMaxIdleConnections int
	// HTTPClientIdleTimeout is how long idle outbound connections are kept open.
	HTTPClientIdleTimeout time.Duration

	// RateLimitTokenEnabled indicates whether rate limiting for token endpoints is enabled.
	RateLimitTokenEnabled bool
	// RateLimitTokenRequestsPerSec is the number of requests allowed per second per IP.
	RateLimitTokenRequestsPerSec float64
	// RateLimitTokenBurst is the burst size for token endpoint rate limiting.
	RateLimitTokenBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int

	// RefresherBaseURL is the base URL of the verification service the refresher calls.
	RefresherBaseURL string
	// RefresherDomain is the domain the refresher requests tokens for.
	RefresherDomain string
	// RefresherOutputPath is the file the refresher writes fresh tokens to.
	RefresherOutputPath string
	// RefresherInterval is the fixed interval between refresh attempts.
	RefresherInterval time.Duration
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost: env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort: env.GetInt("SERVER_PORT", 8888),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Token signing
		MasterSecret:      env.GetString("MASTER_SECRET", ""),
		DefaultTTLSeconds: env.GetInt("DEFAULT_TTL_SECONDS", 30),

		// Domain whitelist
		WhitelistPath:     env.GetString("WHITELIST_PATH", "data/gov_domains.txt"),
		WhitelistEnforced: env.GetBool("WHITELIST_ENFORCED", true),

		// Domain checks
		CheckTimeout:        env.GetDuration("CHECK_TIMEOUT_SECONDS", 10, time.Second),
		CheckMaxConcurrency: env.GetInt("CHECK_MAX_CONCURRENCY", 10),

		// Outbound HTTP client pool
		HTTPClientMaxConnections:     env.GetInt("HTTP_CLIENT_MAX_CONNECTIONS", 100),
		HTTPClientMaxIdleConnections: env.GetInt("HTTP_CLIENT_MAX_IDLE_CONNECTIONS", 20),
		HTTPClientIdleTimeout:        env.GetDuration("HTTP_CLIENT_IDLE_TIMEOUT_SECONDS", 30, time.Second),

		// Rate Limiting for token endpoints (IP-based, unauthenticated)
		RateLimitTokenEnabled:        env.GetBool("RATE_LIMIT_TOKEN_ENABLED", true),
		RateLimitTokenRequestsPerSec: env.GetFloat64("RATE_LIMIT_TOKEN_REQUESTS_PER_SEC", 5.0),
		RateLimitTokenBurst:          env.GetInt("RATE_LIMIT_TOKEN_BURST", 10),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "domainguard"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8889),

		// Background token refresher
		RefresherBaseURL:    env.GetString("REFRESHER_BASE_URL", "http://localhost:8888"),
		RefresherDomain:     env.GetString("REFRESHER_DOMAIN", ""),
		RefresherOutputPath: env.GetString("REFRESHER_OUTPUT_PATH", "secret.txt"),
		RefresherInterval:   env.GetDuration("REFRESHER_INTERVAL_SECONDS", 10, time.Second),
	}
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	case "info", "warn", "error":
		return "release"
	default:
		return "release"
	}
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	// Search for .env file recursively up the directory tree
	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			// .env file found, load it
			_ = godotenv.Load(envPath)
			return
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}
}
