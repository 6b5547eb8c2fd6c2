// Package report renders datasets, health and failures as plain text for the terminal.
package report

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"MiniQuant/internal/calculator"
	"MiniQuant/internal/chart"
	"MiniQuant/internal/collector"
	"MiniQuant/internal/formatter"
	"MiniQuant/internal/model"
)

// Quote is the machine-readable form of a dataset report.
type Quote struct {
	Symbol string             `json:"symbol"`
	Stats  *model.Stats       `json:"stats"`
	Chart  []model.ChartPoint `json:"chart"`
	Recent []model.ChartPoint `json:"recent"`
}

// BuildQuote derives stats, the chart series and the recent table from ds.
// Stats is nil for an empty dataset.
func BuildQuote(ds *model.StockDataset, rows int) Quote {
	q := Quote{
		Symbol: ds.Symbol,
		Chart:  chart.ToChartSeries(ds.Bars),
		Recent: chart.ToRecentTable(ds.Bars, rows),
	}
	if st, ok := calculator.ComputeStats(ds.Bars); ok {
		q.Stats = &st
	}
	return q
}

// FormatQuote formats a dataset report: header, stat cards, then the recent table.
func FormatQuote(q Quote) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s Stock Data\n", q.Symbol))
	b.WriteString(fmt.Sprintf("%d trading days\n\n", len(q.Chart)))

	if q.Stats == nil {
		b.WriteString("No statistics available.\n")
		return b.String()
	}

	st := q.Stats
	b.WriteString(fmt.Sprintf("Latest Price: %s\n", formatter.FormatCurrency(st.LatestClose)))
	b.WriteString(fmt.Sprintf("Daily Change: %s (%s)\n",
		formatter.FormatSignedCurrency(st.Change), formatter.FormatPercent(st.ChangePercent)))
	b.WriteString(fmt.Sprintf("Period High:  %s\n", formatter.FormatCurrency(st.PeriodHigh)))
	b.WriteString(fmt.Sprintf("Period Low:   %s\n", formatter.FormatCurrency(st.PeriodLow)))
	b.WriteString(fmt.Sprintf("Avg Volume:   %s\n", formatter.FormatVolume(st.AvgVolume)))

	if len(q.Recent) == 0 {
		return b.String()
	}

	b.WriteString(fmt.Sprintf("\nRecent Data (Last %d days)\n", len(q.Recent)))
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Date\tOpen\tHigh\tLow\tClose\tVolume\t")
	for _, r := range q.Recent {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			r.Label,
			formatter.FormatCurrency(r.Open),
			formatter.FormatCurrency(r.High),
			formatter.FormatCurrency(r.Low),
			formatter.FormatCurrency(r.Close),
			formatter.FormatVolume(r.Volume))
	}
	tw.Flush()

	return b.String()
}

// FormatHealth formats the API status line.
func FormatHealth(status model.HealthStatus) string {
	if status == model.Connected {
		return "API Status: Connected"
	}
	return "API Status: Disconnected (cannot reach the backend, make sure it is running)"
}

// FormatFailure formats a classified acquisition failure for display.
func FormatFailure(err error) string {
	kind := collector.KindOf(err)
	if phase := collector.PhaseOf(err); phase != collector.PhaseNone {
		return fmt.Sprintf("error [%s during %s]: %v", kind, phase, err)
	}
	return fmt.Sprintf("error [%s]: %v", kind, err)
}
