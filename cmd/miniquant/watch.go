package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"MiniQuant/internal/collector"
	"MiniQuant/internal/scheduler"

	"github.com/spf13/cobra"
)

func newWatchCmd(opts *options) *cobra.Command {
	var now bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Acquire the configured symbols on a cron schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if err := cfg.ValidateWatch(); err != nil {
				return err
			}

			src := newSource(cfg)
			log.Printf("[INFO] data source: %s", src.Name())

			rec := openRecorder(cfg)
			defer rec.Close()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sched := scheduler.NewScheduler(ctx, collector.NewCollector(src), rec,
				cfg.Watch.Symbols, cfg.Display.TableRows, cmd.OutOrStdout())
			if err := sched.RegisterAll(cfg.Watch.Cron, cfg.Watch.HealthCron); err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()

			if now {
				log.Println("[INFO] --now set, executing watch task")
				sched.StartWatchNow()
			}

			log.Printf("[INFO] watching %v. Press Ctrl+C to stop.", cfg.Watch.Symbols)

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)
			select {
			case <-sigCh:
				log.Println("[INFO] shutdown signal received, stopping...")
			case <-ctx.Done():
			}
			cancel()
			return nil
		},
	}

	cmd.Flags().BoolVar(&now, "now", false, "run one watch pass immediately")
	return cmd
}
