package scheduler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"MiniQuant/internal/collector"
	"MiniQuant/internal/recorder"
	"MiniQuant/internal/report"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the watch and health tasks on cron schedules.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Recorder  recorder.Recorder
	Symbols   []string
	TableRows int
	Out       io.Writer
	Ctx       context.Context

	// watchJob and healthJob each carry their own SkipIfStillRunning guard,
	// shared by cron ticks and on-demand runs.
	watchJob  cron.Job
	healthJob cron.Job
	wg        sync.WaitGroup
}

// NewScheduler creates a new Scheduler. Runs of one task never overlap.
func NewScheduler(ctx context.Context, col *collector.Collector, rec recorder.Recorder, symbols []string, tableRows int, out io.Writer) *Scheduler {
	s := &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Recorder:  rec,
		Symbols:   symbols,
		TableRows: tableRows,
		Out:       out,
		Ctx:       ctx,
	}
	s.watchJob = cron.NewChain(cron.SkipIfStillRunning(cron.DefaultLogger)).Then(cron.FuncJob(s.watchTask))
	s.healthJob = cron.NewChain(cron.SkipIfStillRunning(cron.DefaultLogger)).Then(cron.FuncJob(s.healthTask))
	return s
}

// RegisterAll registers the watch and health tasks.
func (s *Scheduler) RegisterAll(watchCron, healthCron string) error {
	if _, err := s.Cron.AddJob(watchCron, s.watchJob); err != nil {
		return fmt.Errorf("register watch task: %w", err)
	}
	if _, err := s.Cron.AddJob(healthCron, s.healthJob); err != nil {
		return fmt.Errorf("register health task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for running tasks, including
// those started by StartWatchNow, to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.wg.Wait()
	log.Println("[INFO] scheduler stopped")
}

// RunWatchNow executes one watch pass immediately. It is skipped if a pass is already running.
func (s *Scheduler) RunWatchNow() {
	s.watchJob.Run()
}

// StartWatchNow runs RunWatchNow in the background; Stop waits for it.
func (s *Scheduler) StartWatchNow() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.RunWatchNow()
	}()
}

// watchTask acquires each symbol in turn; one symbol's failure does not stop the others.
func (s *Scheduler) watchTask() {
	log.Printf("[INFO] running watch task for %d symbols", len(s.Symbols))
	for _, symbol := range s.Symbols {
		if s.Ctx.Err() != nil {
			log.Println("[INFO] watch task cancelled")
			return
		}
		s.watchSymbol(symbol)
	}
}

func (s *Scheduler) watchSymbol(symbol string) {
	ds, err := s.Collector.Acquire(s.Ctx, symbol)
	if err != nil {
		log.Printf("[WARN] acquire %s: %s", symbol, report.FormatFailure(err))
		s.recordFailure(symbol, err)
		return
	}

	q := report.BuildQuote(ds, s.TableRows)
	if _, err := fmt.Fprintln(s.Out, report.FormatQuote(q)); err != nil {
		log.Printf("[ERROR] write report: %v", err)
	}

	if q.Stats == nil {
		log.Printf("[WARN] %s returned no bars, skipping snapshot", ds.Symbol)
		return
	}
	if err := s.Recorder.RecordSnapshot(&recorder.Snapshot{
		Symbol:    ds.Symbol,
		RequestID: ds.RequestID,
		FetchedAt: ds.FetchedAt,
		BarCount:  len(ds.Bars),
		Stats:     *q.Stats,
	}); err != nil {
		log.Printf("[ERROR] record snapshot: %v", err)
	}
}

func (s *Scheduler) healthTask() {
	status := s.Collector.CheckHealth(s.Ctx)
	log.Printf("[INFO] %s", report.FormatHealth(status))
	if err := s.Recorder.RecordHealth(&recorder.HealthEvent{Status: status}); err != nil {
		log.Printf("[ERROR] record health: %v", err)
	}
}

func (s *Scheduler) recordFailure(symbol string, err error) {
	evt := &recorder.FailureEvent{
		Symbol:  symbol,
		Kind:    string(collector.KindOf(err)),
		Phase:   string(collector.PhaseOf(err)),
		Message: err.Error(),
	}
	var ae *collector.AcquireError
	if errors.As(err, &ae) {
		if ae.Symbol != "" {
			evt.Symbol = ae.Symbol
		}
		evt.RequestID = ae.RequestID
	}
	if err := s.Recorder.RecordFailure(evt); err != nil {
		log.Printf("[ERROR] record failure: %v", err)
	}
}
