package calculator

import (
	"github.com/shopspring/decimal"

	"MiniQuant/internal/model"
)

// ComputeStats derives the summary statistics of bars, taken in the order given:
// the last element is "latest" and the second-to-last is "previous". Callers wanting
// calendar semantics must pass a chronologically ordered slice.
// The boolean is false for an empty series, which is not an error.
func ComputeStats(bars []model.DailyBar) (model.Stats, bool) {
	if len(bars) == 0 {
		return model.Stats{}, false
	}

	closes := extractCloses(bars)
	latest := closes[len(closes)-1]
	st := model.Stats{LatestClose: latest}

	if len(closes) >= 2 {
		previous := closes[len(closes)-2]
		st.Change = latest - previous
		if previous != 0 {
			st.ChangePercent = st.Change / previous * 100
		}
	}

	// Error is impossible here: bars is non-empty.
	st.PeriodHigh, st.PeriodLow, _ = PeriodRange(bars)
	st.AvgVolume = averageVolume(bars)
	return st, true
}

// averageVolume is the arithmetic mean of volume rounded half away from zero.
func averageVolume(bars []model.DailyBar) int64 {
	var sum int64
	for _, b := range bars {
		sum += b.Volume
	}
	mean := decimal.NewFromInt(sum).Div(decimal.NewFromInt(int64(len(bars))))
	return mean.Round(0).IntPart()
}
