package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

var envKeys = []string{
	"MINIQUANT_BASE_URL", "MINIQUANT_TIMEOUT", "MINIQUANT_MOCK", "HTTPS_PROXY",
	"WATCH_SYMBOLS", "CRON_WATCH", "CRON_HEALTH", "TABLE_ROWS", "SQLITE_PATH",
}

// clearEnv blanks every override so the host environment cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend.BaseURL != "http://localhost:8000" {
		t.Errorf("base url: got %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Timeout != 30*time.Second {
		t.Errorf("timeout: got %v", cfg.Backend.Timeout)
	}
	if cfg.Display.TableRows != 10 {
		t.Errorf("table rows: got %d", cfg.Display.TableRows)
	}
	if cfg.Watch.Cron == "" || cfg.Watch.HealthCron == "" {
		t.Error("expected default cron specs")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	if err := cfg.ValidateWatch(); err == nil {
		t.Error("watch without symbols should not validate")
	}
}

func TestLoad_YAMLAndOverrides(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", `
backend:
  base_url: http://quant.internal:9000
  timeout: 5s
watch:
  symbols: [" aapl", "MSFT", "aapl"]
display:
  table_rows: 5
database:
  sqlite_path: /tmp/mq.db
`)
	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend.BaseURL != "http://quant.internal:9000" || cfg.Backend.Timeout != 5*time.Second {
		t.Errorf("backend not read from yaml: %+v", cfg.Backend)
	}
	if !reflect.DeepEqual(cfg.Watch.Symbols, []string{"AAPL", "MSFT"}) {
		t.Errorf("symbols not normalized: %v", cfg.Watch.Symbols)
	}
	if cfg.Display.TableRows != 5 || cfg.Database.SQLitePath != "/tmp/mq.db" {
		t.Errorf("unexpected display/database: %d %q", cfg.Display.TableRows, cfg.Database.SQLitePath)
	}

	t.Setenv("MINIQUANT_BASE_URL", "https://api.example.com")
	t.Setenv("WATCH_SYMBOLS", "tsla, goog")
	t.Setenv("MINIQUANT_MOCK", "true")
	cfg, err = Load(path, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend.BaseURL != "https://api.example.com" {
		t.Errorf("env override ignored: %q", cfg.Backend.BaseURL)
	}
	if !reflect.DeepEqual(cfg.Watch.Symbols, []string{"TSLA", "GOOG"}) {
		t.Errorf("symbols override: %v", cfg.Watch.Symbols)
	}
	if !cfg.Backend.Mock {
		t.Error("expected mock enabled from env")
	}
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	// Unset so godotenv is allowed to populate it; t.Setenv restores it afterwards.
	os.Unsetenv("TABLE_ROWS")
	envPath := writeFile(t, ".env", "TABLE_ROWS=25\n")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), envPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Display.TableRows != 25 {
		t.Errorf("expected table rows from .env, got %d", cfg.Display.TableRows)
	}

	if _, err := Load("", filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("missing .env should be ignored, got %v", err)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	clearEnv(t)
	if _, err := Load(writeFile(t, "bad.yaml", "backend: [\n"), ""); err == nil {
		t.Error("expected yaml parse error")
	}

	t.Setenv("TABLE_ROWS", "ten")
	if _, err := Load("", ""); err == nil {
		t.Error("expected error for non-numeric TABLE_ROWS")
	}
	t.Setenv("TABLE_ROWS", "")

	t.Setenv("MINIQUANT_TIMEOUT", "soon")
	if _, err := Load("", ""); err == nil {
		t.Error("expected error for bad MINIQUANT_TIMEOUT")
	}
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"ok", func(*Config) {}, false},
		{"bad scheme", func(c *Config) { c.Backend.BaseURL = "ftp://host" }, true},
		{"no host", func(c *Config) { c.Backend.BaseURL = "http://" }, true},
		{"negative timeout", func(c *Config) { c.Backend.Timeout = -time.Second }, true},
		{"zero rows", func(c *Config) { c.Display.TableRows = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("", "")
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
