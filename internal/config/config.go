package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Backend struct {
		BaseURL string        `yaml:"base_url"`
		Timeout time.Duration `yaml:"timeout"`
		Mock    bool          `yaml:"mock"`
	} `yaml:"backend"`
	Watch struct {
		Symbols    []string `yaml:"symbols"`
		Cron       string   `yaml:"cron"`
		HealthCron string   `yaml:"health_cron"`
	} `yaml:"watch"`
	Display struct {
		TableRows int `yaml:"table_rows"`
	} `yaml:"display"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file and an optional .env file, then applies
// environment variable overrides and defaults. Missing files are not an error.
func Load(path, envPath string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Existing environment variables win over .env entries.
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("MINIQUANT_BASE_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("MINIQUANT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MINIQUANT_TIMEOUT: %w", err)
		}
		cfg.Backend.Timeout = d
	}
	if v := os.Getenv("MINIQUANT_MOCK"); v != "" {
		mock, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MINIQUANT_MOCK: %w", err)
		}
		cfg.Backend.Mock = mock
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("WATCH_SYMBOLS"); v != "" {
		cfg.Watch.Symbols = strings.Split(v, ",")
	}
	if v := os.Getenv("CRON_WATCH"); v != "" {
		cfg.Watch.Cron = v
	}
	if v := os.Getenv("CRON_HEALTH"); v != "" {
		cfg.Watch.HealthCron = v
	}
	if v := os.Getenv("TABLE_ROWS"); v != "" {
		rows, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TABLE_ROWS: %w", err)
		}
		cfg.Display.TableRows = rows
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Backend.BaseURL == "" {
		cfg.Backend.BaseURL = "http://localhost:8000"
	}
	if cfg.Backend.Timeout == 0 {
		cfg.Backend.Timeout = 30 * time.Second
	}
	if cfg.Watch.Cron == "" {
		cfg.Watch.Cron = "0 30 16 * * 1-5"
	}
	if cfg.Watch.HealthCron == "" {
		cfg.Watch.HealthCron = "0 */5 * * * *"
	}
	if cfg.Display.TableRows == 0 {
		cfg.Display.TableRows = 10
	}
	cfg.Watch.Symbols = normalizeSymbols(cfg.Watch.Symbols)

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil {
		return fmt.Errorf("backend.base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend.base_url must be http or https, got %q", c.Backend.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("backend.base_url has no host: %q", c.Backend.BaseURL)
	}
	if c.Backend.Timeout < 0 {
		return fmt.Errorf("backend.timeout must not be negative")
	}
	if c.Display.TableRows <= 0 {
		return fmt.Errorf("display.table_rows must be positive")
	}
	return nil
}

// ValidateWatch additionally checks what the watch loop needs.
func (c *Config) ValidateWatch() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if len(c.Watch.Symbols) == 0 {
		return fmt.Errorf("watch.symbols is required")
	}
	return nil
}

func normalizeSymbols(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
