package collector

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"MiniQuant/internal/model"
)

// wireDataset mirrors GET /api/stocks/{SYMBOL}. Pointers distinguish absent fields from zero values.
type wireDataset struct {
	Symbol *string    `json:"symbol"`
	Data   *[]wireBar `json:"data"`
}

type wireBar struct {
	Symbol *string  `json:"symbol"`
	Date   *string  `json:"date"`
	Open   *float64 `json:"open"`
	High   *float64 `json:"high"`
	Low    *float64 `json:"low"`
	Close  *float64 `json:"close"`
	Volume *float64 `json:"volume"`
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

func decodeDataset(body []byte, symbol string) (*model.StockDataset, error) {
	var w wireDataset
	if err := json.Unmarshal(body, &w); err != nil {
		return nil, malformed("decode body", err)
	}
	if w.Data == nil {
		return nil, malformed(`missing "data" array`, nil)
	}
	if w.Symbol != nil && *w.Symbol != symbol {
		return nil, malformed(fmt.Sprintf("symbol %q does not match requested %q", *w.Symbol, symbol), nil)
	}

	bars := make([]model.DailyBar, 0, len(*w.Data))
	for i, wb := range *w.Data {
		bar, err := wb.toBar(symbol)
		if err != nil {
			return nil, malformed(fmt.Sprintf("record %d", i), err)
		}
		bars = append(bars, bar)
	}
	return &model.StockDataset{Symbol: symbol, Bars: bars}, nil
}

func (wb wireBar) toBar(symbol string) (model.DailyBar, error) {
	if wb.Symbol != nil && *wb.Symbol != symbol {
		return model.DailyBar{}, fmt.Errorf("symbol %q does not match %q", *wb.Symbol, symbol)
	}
	if wb.Date == nil {
		return model.DailyBar{}, errors.New(`missing "date"`)
	}
	date, err := parseDate(*wb.Date)
	if err != nil {
		return model.DailyBar{}, err
	}

	prices := []struct {
		name string
		v    *float64
	}{
		{"open", wb.Open}, {"high", wb.High}, {"low", wb.Low}, {"close", wb.Close},
	}
	for _, p := range prices {
		if p.v == nil {
			return model.DailyBar{}, fmt.Errorf("missing %q", p.name)
		}
	}

	if wb.Volume == nil {
		return model.DailyBar{}, errors.New(`missing "volume"`)
	}
	vol := *wb.Volume
	if vol < 0 || vol != math.Trunc(vol) || vol >= math.MaxInt64 {
		return model.DailyBar{}, fmt.Errorf("volume %v is not a non-negative integer", vol)
	}

	return model.DailyBar{
		Date:   date,
		Open:   *wb.Open,
		High:   *wb.High,
		Low:    *wb.Low,
		Close:  *wb.Close,
		Volume: int64(vol),
	}, nil
}

// parseDate keeps only the calendar day, anchored at UTC midnight.
func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

func malformed(reason string, err error) *MalformedResponseError {
	return &MalformedResponseError{Phase: PhaseRead, Reason: reason, Err: err}
}
