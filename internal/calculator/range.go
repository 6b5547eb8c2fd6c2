package calculator

import (
	"errors"
	"math"

	"MiniQuant/internal/model"
)

// PeriodRange returns the highest and lowest close across all bars.
// Intraday High/Low fields are not consulted.
func PeriodRange(bars []model.DailyBar) (high, low float64, err error) {
	if len(bars) == 0 {
		return 0, 0, errors.New("no daily bars provided")
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, b := range bars {
		if b.Close > high {
			high = b.Close
		}
		if b.Close < low {
			low = b.Close
		}
	}
	return high, low, nil
}

func extractCloses(bars []model.DailyBar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
