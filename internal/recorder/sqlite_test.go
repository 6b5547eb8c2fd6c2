package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"MiniQuant/internal/model"
)

func TestSQLiteRecorder(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	defer r.Close()

	snap := &Snapshot{
		Symbol:    "AAPL",
		RequestID: "req-1",
		FetchedAt: time.Date(2024, 1, 9, 21, 0, 0, 0, time.UTC),
		BarCount:  2,
		Stats: model.Stats{
			LatestClose: 110, Change: 10, ChangePercent: 10,
			PeriodHigh: 110, PeriodLow: 100, AvgVolume: 15,
		},
	}
	if err := r.RecordSnapshot(snap); err != nil {
		t.Fatalf("record snapshot: %v", err)
	}
	if err := r.RecordFailure(&FailureEvent{Symbol: "MSFT", Kind: "REMOTE_REJECTION", Phase: "refresh", Message: "rate limited"}); err != nil {
		t.Fatalf("record failure: %v", err)
	}
	if err := r.RecordHealth(&HealthEvent{Status: model.Connected}); err != nil {
		t.Fatalf("record health: %v", err)
	}

	var (
		symbol    string
		change    float64
		avgVolume int64
		fetchedAt int64
	)
	row := r.db.QueryRow(`SELECT symbol, change, avg_volume, fetched_at FROM snapshots`)
	if err := row.Scan(&symbol, &change, &avgVolume, &fetchedAt); err != nil {
		t.Fatalf("scan snapshot: %v", err)
	}
	if symbol != "AAPL" || change != 10 || avgVolume != 15 || fetchedAt != snap.FetchedAt.Unix() {
		t.Errorf("unexpected snapshot row: %s %v %d %d", symbol, change, avgVolume, fetchedAt)
	}

	var message string
	if err := r.db.QueryRow(`SELECT message FROM failures WHERE symbol = ?`, "MSFT").Scan(&message); err != nil {
		t.Fatalf("scan failure: %v", err)
	}
	if message != "rate limited" {
		t.Errorf("failure message: got %q", message)
	}

	var status string
	if err := r.db.QueryRow(`SELECT status FROM health_checks`).Scan(&status); err != nil {
		t.Fatalf("scan health: %v", err)
	}
	if status != string(model.Connected) {
		t.Errorf("health status: got %q", status)
	}
}

func TestSQLiteRecorder_ReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	r, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	if err := r.RecordHealth(&HealthEvent{Status: model.Disconnected}); err != nil {
		t.Fatalf("record health: %v", err)
	}
	r.Close()

	r, err = NewSQLiteRecorder(path)
	if err != nil {
		t.Fatalf("reopen recorder: %v", err)
	}
	defer r.Close()

	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM health_checks`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 health row after reopen, got %d", n)
	}
}
