package model

// Stats is derived from a bar series on demand and never persisted by the core.
type Stats struct {
	LatestClose   float64 `json:"latest_close"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	PeriodHigh    float64 `json:"period_high"`
	PeriodLow     float64 `json:"period_low"`
	AvgVolume     int64   `json:"avg_volume"`
}
