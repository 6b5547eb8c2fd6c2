package collector

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"MiniQuant/internal/model"
)

// MockSource returns controllable fixed data for development and testing.
type MockSource struct {
	Price      float64
	Days       int
	Bars       []model.DailyBar
	RefreshErr error
	ReadErr    error
	HealthErr  error

	mu    sync.Mutex
	calls []string
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) Refresh(_ context.Context, symbol string) error {
	m.record("refresh " + symbol)
	return m.RefreshErr
}

func (m *MockSource) Read(_ context.Context, symbol string) (*model.StockDataset, error) {
	m.record("read " + symbol)
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	var bars []model.DailyBar
	if m.Bars != nil {
		bars = append(bars, m.Bars...)
	} else {
		bars = generateMockBars(m.Price, m.Days)
	}
	return &model.StockDataset{Symbol: symbol, Bars: bars}, nil
}

func (m *MockSource) Health(_ context.Context) error {
	m.record("health")
	return m.HealthErr
}

// Calls lists the operations received so far, e.g. "refresh AAPL".
func (m *MockSource) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MockSource) record(call string) {
	m.mu.Lock()
	m.calls = append(m.calls, call)
	m.mu.Unlock()
}

func generateMockBars(basePrice float64, count int) []model.DailyBar {
	if basePrice <= 0 {
		basePrice = 100
	}
	if count <= 0 {
		count = 22
	}
	y, mo, d := time.Now().UTC().Date()
	today := time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)

	bars := make([]model.DailyBar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.DailyBar{
			Date:   today.AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000 + int64(i)*25000,
		}
	}
	return bars
}

// Collector orchestrates the refresh-then-read acquisition protocol.
// It holds no state between calls.
type Collector struct {
	Source Source
}

// NewCollector creates a new Collector.
func NewCollector(source Source) *Collector {
	return &Collector{Source: source}
}

// NormalizeSymbol trims and upper-cases input, rejecting blank input.
func NormalizeSymbol(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", &ValidationError{Input: input}
	}
	return strings.ToUpper(trimmed), nil
}

// Acquire refreshes the symbol on the backend, then reads the persisted series.
// The read is only attempted after a successful refresh; any failure aborts with
// an *AcquireError wrapping one of the classified error types.
func (c *Collector) Acquire(ctx context.Context, input string) (*model.StockDataset, error) {
	symbol, err := NormalizeSymbol(input)
	if err != nil {
		return nil, &AcquireError{Err: err}
	}

	requestID := uuid.NewString()
	ctx = WithRequestID(ctx, requestID)
	fail := func(phase Phase, err error) (*model.StockDataset, error) {
		if KindOf(err) == KindUnknown {
			err = &ConnectivityError{Phase: phase, Err: err}
		}
		return nil, &AcquireError{Symbol: symbol, RequestID: requestID, Err: err}
	}

	log.Printf("[INFO] refresh %s via %s (request %s)", symbol, c.Source.Name(), requestID)
	if err := c.Source.Refresh(ctx, symbol); err != nil {
		return fail(PhaseRefresh, err)
	}

	log.Printf("[INFO] read %s via %s (request %s)", symbol, c.Source.Name(), requestID)
	ds, err := c.Source.Read(ctx, symbol)
	if err != nil {
		return fail(PhaseRead, err)
	}

	ds.Symbol = symbol
	ds.RequestID = requestID
	ds.FetchedAt = time.Now()
	return ds, nil
}

// CheckHealth probes the backend. Every failure, whatever its cause, is Disconnected.
func (c *Collector) CheckHealth(ctx context.Context) model.HealthStatus {
	if err := c.Source.Health(ctx); err != nil {
		log.Printf("[WARN] health check via %s failed: %v", c.Source.Name(), err)
		return model.Disconnected
	}
	return model.Connected
}
