package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"MiniQuant/internal/collector"
	"MiniQuant/internal/recorder"
	"MiniQuant/internal/report"

	"github.com/spf13/cobra"
)

func newQuoteCmd(opts *options) *cobra.Command {
	var (
		rows   int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "quote [symbol]",
		Short: "Refresh a symbol on the backend and print its statistics",
		Long: `Asks the backend to refresh the symbol's daily bars, reads the stored series
and prints the latest price, daily change, period range, average volume and the
most recent trading days.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if rows <= 0 {
				rows = cfg.Display.TableRows
			}
			rec := openRecorder(cfg)
			defer rec.Close()

			ds, err := collector.NewCollector(newSource(cfg)).Acquire(cmd.Context(), args[0])
			if err != nil {
				recordFailure(rec, err)
				fmt.Fprintln(cmd.ErrOrStderr(), report.FormatFailure(err))
				return errReported
			}

			q := report.BuildQuote(ds, rows)
			if q.Stats != nil {
				if err := rec.RecordSnapshot(&recorder.Snapshot{
					Symbol:    ds.Symbol,
					RequestID: ds.RequestID,
					FetchedAt: ds.FetchedAt,
					BarCount:  len(ds.Bars),
					Stats:     *q.Stats,
				}); err != nil {
					log.Printf("[ERROR] record snapshot: %v", err)
				}
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(q)
			}
			fmt.Fprint(cmd.OutOrStdout(), report.FormatQuote(q))
			return nil
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 0, "rows in the recent table (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

func recordFailure(rec recorder.Recorder, err error) {
	evt := &recorder.FailureEvent{
		Kind:    string(collector.KindOf(err)),
		Phase:   string(collector.PhaseOf(err)),
		Message: err.Error(),
	}
	var ae *collector.AcquireError
	if errors.As(err, &ae) {
		evt.Symbol = ae.Symbol
		evt.RequestID = ae.RequestID
	}
	if err := rec.RecordFailure(evt); err != nil {
		log.Printf("[ERROR] record failure: %v", err)
	}
}
