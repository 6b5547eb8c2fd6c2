// Package chart converts bar series into render-ready points.
//
// ToChartSeries always sorts by date; ToRecentTable keeps the dataset's native order.
// The two orders are not reconciled.
package chart

import (
	"sort"

	"MiniQuant/internal/model"
)

const (
	// chartLabelLayout carries no year, so labels repeat across years.
	chartLabelLayout = "Jan 2"
	tableLabelLayout = "1/2/2006"
)

// ToChartSeries returns one point per bar, ascending by date whatever the input order.
func ToChartSeries(bars []model.DailyBar) []model.ChartPoint {
	sorted := make([]model.DailyBar, len(bars))
	copy(sorted, bars)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	points := make([]model.ChartPoint, len(sorted))
	for i, b := range sorted {
		points[i] = toPoint(b, chartLabelLayout)
	}
	return points
}

// ToRecentTable takes the last n bars in dataset order and returns them reversed,
// most recent first when the dataset arrived ascending. It never sorts.
func ToRecentTable(bars []model.DailyBar, n int) []model.ChartPoint {
	if n <= 0 {
		return []model.ChartPoint{}
	}
	if n > len(bars) {
		n = len(bars)
	}
	tail := bars[len(bars)-n:]
	rows := make([]model.ChartPoint, 0, n)
	for i := len(tail) - 1; i >= 0; i-- {
		rows = append(rows, toPoint(tail[i], tableLabelLayout))
	}
	return rows
}

func toPoint(b model.DailyBar, layout string) model.ChartPoint {
	return model.ChartPoint{
		Label:  b.Date.Format(layout),
		Open:   b.Open,
		High:   b.High,
		Low:    b.Low,
		Close:  b.Close,
		Volume: b.Volume,
	}
}
