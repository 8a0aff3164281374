package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	t.Setenv("SHEETS_BASE_URL", "https://example.com/export?format=csv")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Sheets.FetchTimeout != 30*time.Second {
		t.Errorf("Sheets.FetchTimeout = %v, want 30s", cfg.Sheets.FetchTimeout)
	}
	if cfg.Sheets.MaxBodySize != 10485760 {
		t.Errorf("Sheets.MaxBodySize = %d, want 10485760", cfg.Sheets.MaxBodySize)
	}
	if len(cfg.Sheets.ParsedTabs()) != 3 {
		t.Errorf("default tabs = %d, want 3", len(cfg.Sheets.ParsedTabs()))
	}
	if cfg.Rate.RequestsPerMinute != 100 {
		t.Errorf("Rate.RequestsPerMinute = %d, want 100", cfg.Rate.RequestsPerMinute)
	}
	if len(cfg.Leads.KanbanStatuses) != 3 {
		t.Errorf("Leads.KanbanStatuses = %v, want 3 stages", cfg.Leads.KanbanStatuses)
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SHEETS_TABS", "January:42")
	t.Setenv("SHEETS_AUTO_SYNC", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if !cfg.Sheets.AutoSync {
		t.Error("Sheets.AutoSync = false, want true")
	}
	tabs := cfg.Sheets.ParsedTabs()
	if len(tabs) != 1 || tabs[0].Name != "January" || tabs[0].GID != "42" {
		t.Errorf("ParsedTabs = %+v, want [{January 42}]", tabs)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoad_AltEnvVar(t *testing.T) {
	t.Setenv("SHEETS_BASE_URL", "https://example.com/export?format=csv")
	os.Unsetenv("DATABASE_URL")
	t.Setenv("DB_URL", "postgres://localhost/alttest")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.URL != "postgres://localhost/alttest" {
		t.Errorf("Database.URL = %q, want alt value", cfg.Database.URL)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("SHEETS_BASE_URL", "https://example.com/export?format=csv")
	os.Unsetenv("DATABASE_URL")
	os.Unsetenv("DB_URL")

	if _, err := Load(); err == nil {
		t.Fatal("Load() succeeded without DATABASE_URL")
	}
}

func TestLoad_MalformedTabs(t *testing.T) {
	setRequired(t)
	t.Setenv("SHEETS_TABS", "January:42,broken")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() succeeded with malformed SHEETS_TABS")
	}
	if !strings.Contains(err.Error(), "SHEETS_TABS") {
		t.Errorf("error %q does not mention SHEETS_TABS", err)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad port", "SERVER_PORT", "70000"},
		{"bad log level", "LOG_LEVEL", "loud"},
		{"bad log format", "LOG_FORMAT", "xml"},
		{"bad duration", "SHEETS_FETCH_TIMEOUT", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() succeeded with %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestServerConfig_Addr(t *testing.T) {
	c := ServerConfig{Host: "127.0.0.1", Port: 9000}
	if got := c.Addr(); got != "127.0.0.1:9000" {
		t.Errorf("Addr() = %q, want 127.0.0.1:9000", got)
	}
	c.Host = ""
	if got := c.Addr(); got != ":9000" {
		t.Errorf("Addr() = %q, want :9000", got)
	}
}

func TestConfig_StringMasksSecrets(t *testing.T) {
	setRequired(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	s := cfg.String()
	if strings.Contains(s, "postgres://") {
		t.Errorf("String() leaks database URL: %s", s)
	}
	if !strings.Contains(s, "[MASKED]") {
		t.Errorf("String() does not mask secrets: %s", s)
	}
}
