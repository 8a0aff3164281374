// Package config provides centralized configuration management for the
// application. It loads configuration from environment variables with
// sensible defaults and validates all settings on startup to fail fast
// on misconfiguration.
package config

import (
	"strings"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Sheets   SheetsConfig
	Leads    LeadsConfig
	Rate     RateLimitConfig
	Logging  LoggingConfig
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

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string (required)
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL" required:"true"`

	// MaxConns is the maximum number of connections in the pool (default: 10)
	MaxConns int `env:"DB_MAX_CONNS" default:"10"`

	// MinConns is the minimum number of connections to keep open (default: 2)
	MinConns int `env:"DB_MIN_CONNS" default:"2"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the maximum idle time before a connection is closed (default: 30m)
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// SheetsConfig holds spreadsheet export settings.
//
// Tabs are configured as comma-separated "Name:gid" pairs, e.g.
// SHEETS_TABS="December:1355430272,November:1892152973,October:0".
type SheetsConfig struct {
	// BaseURL is the CSV export URL of the source spreadsheet (required).
	// Each tab's gid is appended as a query parameter when fetching.
	BaseURL string `env:"SHEETS_BASE_URL" required:"true"`

	// Tabs lists the sheet tabs to sync as "Name:gid" pairs
	Tabs []string `env:"SHEETS_TABS" default:"December:1355430272,November:1892152973,October:0"`

	// FetchTimeout is the per-tab HTTP fetch timeout (default: 30s)
	FetchTimeout time.Duration `env:"SHEETS_FETCH_TIMEOUT" default:"30s"`

	// MaxBodySize caps the size of a fetched CSV export (default: 10MB)
	MaxBodySize int64 `env:"SHEETS_MAX_BODY_SIZE" default:"10485760"`

	// AutoSync enables the background sync scheduler (default: false)
	AutoSync bool `env:"SHEETS_AUTO_SYNC" default:"false"`

	// AutoSyncInterval is how often the background sync runs (default: 1h)
	AutoSyncInterval time.Duration `env:"SHEETS_AUTO_SYNC_INTERVAL" default:"1h"`
}

// LeadsConfig holds the injected lead vocabulary.
type LeadsConfig struct {
	// Statuses is the known status vocabulary, used for grouping in the
	// dashboard and kanban views. Unknown statuses still pass through
	// the importer unchanged.
	Statuses []string `env:"LEAD_STATUSES" default:"Not lifted,Not connected,Voice Message,Quotation sent,Site visit,Site Visit - Done,Site Visit - Not Done,Advance payment,Lead finished,Contacted,Busy,Call Back,New,Repeated"`

	// KanbanStatuses are the pipeline columns shown on the kanban view
	KanbanStatuses []string `env:"LEAD_KANBAN_STATUSES" default:"Quotation sent,Site visit,Advance payment"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// SheetTab is one configured spreadsheet tab.
type SheetTab struct {
	Name string `json:"name"`
	GID  string `json:"gid"`
}

// ParsedTabs returns the configured tabs as structured values.
// Malformed entries (no colon, empty name or gid) are skipped;
// Validate reports them as errors so startup fails instead.
func (c *SheetsConfig) ParsedTabs() []SheetTab {
	tabs := make([]SheetTab, 0, len(c.Tabs))
	for _, raw := range c.Tabs {
		name, gid, ok := strings.Cut(raw, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		gid = strings.TrimSpace(gid)
		if name == "" || gid == "" {
			continue
		}
		tabs = append(tabs, SheetTab{Name: name, GID: gid})
	}
	return tabs
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
