package recorder

import (
	"time"

	"MiniQuant/internal/model"
)

// Snapshot holds the derived stats of one successful acquisition.
type Snapshot struct {
	Symbol    string
	RequestID string
	FetchedAt time.Time
	BarCount  int
	Stats     model.Stats
}

// FailureEvent holds one classified acquisition failure.
type FailureEvent struct {
	Symbol    string
	RequestID string
	Kind      string // collector.Kind
	Phase     string // collector.Phase
	Message   string
}

// HealthEvent records the outcome of a health probe.
type HealthEvent struct {
	Status model.HealthStatus
}

// Recorder persists the watch history. It is write-only: nothing is read back to
// serve an acquisition.
type Recorder interface {
	RecordSnapshot(snap *Snapshot) error
	RecordFailure(evt *FailureEvent) error
	RecordHealth(evt *HealthEvent) error
	Close() error
}
