package main

import (
	"fmt"
	"log"

	"MiniQuant/internal/collector"
	"MiniQuant/internal/model"
	"MiniQuant/internal/recorder"
	"MiniQuant/internal/report"

	"github.com/spf13/cobra"
)

func newHealthCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check whether the backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			rec := openRecorder(cfg)
			defer rec.Close()

			status := collector.NewCollector(newSource(cfg)).CheckHealth(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), report.FormatHealth(status))
			recordHealth(rec, status)

			if status != model.Connected {
				return errReported
			}
			return nil
		},
	}
}

func recordHealth(rec recorder.Recorder, status model.HealthStatus) {
	if err := rec.RecordHealth(&recorder.HealthEvent{Status: status}); err != nil {
		log.Printf("[ERROR] record health: %v", err)
	}
}
