package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists watch history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets dashboards read while the watcher writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			fetched_at     INTEGER NOT NULL,
			request_id     TEXT,
			symbol         TEXT NOT NULL,
			bar_count      INTEGER,
			latest_close   REAL,
			change         REAL,
			change_percent REAL,
			period_high    REAL,
			period_low     REAL,
			avg_volume     INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_symbol_ts ON snapshots(symbol, timestamp)`,

		`CREATE TABLE IF NOT EXISTS failures (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			request_id TEXT,
			symbol     TEXT,
			kind       TEXT,
			phase      TEXT,
			message    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_failures_ts ON failures(timestamp)`,

		`CREATE TABLE IF NOT EXISTS health_checks (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			status    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_health_ts ON health_checks(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordSnapshot(snap *Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	st := snap.Stats
	_, err := r.db.Exec(`INSERT INTO snapshots
		(timestamp, fetched_at, request_id, symbol, bar_count,
		 latest_close, change, change_percent, period_high, period_low, avg_volume)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), snap.FetchedAt.Unix(), snap.RequestID, snap.Symbol, snap.BarCount,
		st.LatestClose, st.Change, st.ChangePercent, st.PeriodHigh, st.PeriodLow, st.AvgVolume,
	)
	return err
}

func (r *SQLiteRecorder) RecordFailure(evt *FailureEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO failures
		(timestamp, request_id, symbol, kind, phase, message)
		VALUES (?,?,?,?,?,?)`,
		time.Now().Unix(), evt.RequestID, evt.Symbol, evt.Kind, evt.Phase, evt.Message,
	)
	return err
}

func (r *SQLiteRecorder) RecordHealth(evt *HealthEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO health_checks (timestamp, status) VALUES (?,?)`,
		time.Now().Unix(), string(evt.Status),
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
