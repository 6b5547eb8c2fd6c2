package model

import "time"

// DailyBar is one trading day's record as persisted by the backend.
type DailyBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// StockDataset holds the bars of one symbol in the order the backend returned them.
type StockDataset struct {
	Symbol    string     `json:"symbol"`
	Bars      []DailyBar `json:"data"`
	FetchedAt time.Time  `json:"fetched_at"`
	RequestID string     `json:"request_id,omitempty"`
}

// ChartPoint is one render-ready sample derived from a DailyBar.
type ChartPoint struct {
	Label  string  `json:"label"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}
