package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"MiniQuant/internal/collector"
	"MiniQuant/internal/config"
	"MiniQuant/internal/recorder"

	"github.com/spf13/cobra"
)

// errReported marks a failure the command has already printed.
var errReported = errors.New("reported")

type options struct {
	configPath string
	envPath    string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "miniquant",
		Short: "Stock data client for the MiniQuant backend",
		Long: `A CLI that asks the MiniQuant backend to refresh a symbol's daily bars,
reads the stored series back and prints summary statistics and a recent-days table.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultConfig := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultConfig = v
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", defaultConfig, "path to YAML config")
	root.PersistentFlags().StringVar(&opts.envPath, "env-file", ".env", "path to .env file")

	root.AddCommand(
		newHealthCmd(opts),
		newQuoteCmd(opts),
		newWatchCmd(opts),
	)
	return root
}

func (o *options) load() (*config.Config, error) {
	cfg, err := config.Load(o.configPath, o.envPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func newSource(cfg *config.Config) collector.Source {
	if cfg.Backend.Mock {
		return &collector.MockSource{}
	}
	return collector.NewBackendSource(cfg.Backend.BaseURL, cfg.Proxy, cfg.Backend.Timeout)
}

// openRecorder falls back to the no-op recorder when SQLite is not configured or fails to open.
func openRecorder(cfg *config.Config) recorder.Recorder {
	if cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
	if err != nil {
		log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
		return recorder.NewNoopRecorder()
	}
	return sr
}
