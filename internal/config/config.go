// Package config provides centralized configuration management for the
// service. It loads configuration from environment variables with sensible
// defaults and validates all settings on startup to fail fast on
// misconfiguration.
package config

import "time"

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server    ServerConfig
	Sheets    SheetsConfig
	Reconcile ReconcileConfig
	Rate      RateLimitConfig
	Security  SecurityConfig
	Logging   LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// SheetsConfig holds the external spreadsheet collaborator settings.
type SheetsConfig struct {
	// SnapshotURL is the CSV export endpoint of the backing sheet (required)
	// Supports both SHEETS_CSV_URL and the legacy GOOGLE_SHEETS_CSV_URL name
	SnapshotURL string `env:"SHEETS_CSV_URL" envAlt:"GOOGLE_SHEETS_CSV_URL" required:"true"`

	// UpdateURL is the endpoint accepting update instructions (required)
	// Supports both SHEETS_UPDATE_URL and the legacy APPS_SCRIPT_URL name
	UpdateURL string `env:"SHEETS_UPDATE_URL" envAlt:"APPS_SCRIPT_URL" required:"true"`

	// FetchTimeout bounds a single snapshot fetch or update post (default: 10s)
	FetchTimeout time.Duration `env:"SHEETS_FETCH_TIMEOUT" default:"10s"`

	// RetryAttempts is the number of attempts per call, including the first (default: 3)
	RetryAttempts int `env:"SHEETS_RETRY_ATTEMPTS" default:"3"`

	// RetryBackoff is the base delay between attempts; doubles each retry (default: 500ms)
	RetryBackoff time.Duration `env:"SHEETS_RETRY_BACKOFF" default:"500ms"`
}

// ReconcileConfig holds reconciliation engine settings.
type ReconcileConfig struct {
	// ExpiringWindow is the lead time during which an unexpired
	// subscription is reported as expiring (default: 168h, seven days)
	ExpiringWindow time.Duration `env:"RECONCILE_EXPIRING_WINDOW" default:"168h"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// AllowedOrigins is a comma-separated list of CORS origins (default: *)
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" default:"*"`

	// RequireAPIKey enables X-API-Key validation (default: false)
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"false"`

	// APIKeys is a comma-separated list of accepted API keys
	APIKeys []string `env:"API_KEYS"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return ":" + itoa(c.Port)
	}
	return c.Host + ":" + itoa(c.Port)
}

// itoa converts an int to string without importing strconv in this file.
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var b [20]byte
	n := len(b)
	neg := i < 0
	if neg {
		i = -i
	}
	for i > 0 {
		n--
		b[n] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		n--
		b[n] = '-'
	}
	return string(b[n:])
}
