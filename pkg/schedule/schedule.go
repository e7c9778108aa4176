// Package schedule runs interval tasks in the background.
//
// Usage:
//
//	s := schedule.New()
//	s.Every(30).Seconds().Name("monitor:sweep").WithoutOverlapping().Run(sweep)
//	s.Interval(config.GeneratorInterval()).Name("generator").Run(generate)
//
//	s.Start(ctx) // returns immediately; tasks stop when ctx ends
//	s.Wait()     // blocks until in-flight runs have returned
package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shashiranjanraj/catalog/pkg/logger"
)

// Task is the function signature for a scheduled task. ctx is cancelled
// when the scheduler stops.
type Task func(ctx context.Context)

type entry struct {
	id        string
	interval  time.Duration
	task      Task
	lastRun   time.Time
	running   bool
	noOverlap bool
	mu        sync.Mutex
}

// Scheduler owns a set of interval entries and dispatches them from a
// single ticking loop.
type Scheduler struct {
	tick    time.Duration
	mu      sync.Mutex
	entries []*entry
	wg      sync.WaitGroup
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithTick sets how often the loop checks for due entries. Default 1s.
func WithTick(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.tick = d
		}
	}
}

// New creates an empty Scheduler.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{tick: time.Second}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule is a fluent builder for a single entry before it is registered.
type Schedule struct {
	s *Scheduler
	e *entry
}

// Every starts a fluent builder with n units.
func (s *Scheduler) Every(n int) *freqBuilder { return &freqBuilder{s: s, n: n} }

// Interval schedules with an explicit duration, typically read from config.
func (s *Scheduler) Interval(d time.Duration) *Schedule {
	return &Schedule{s: s, e: &entry{interval: d}}
}

type freqBuilder struct {
	s *Scheduler
	n int
}

func (f *freqBuilder) Seconds() *Schedule { return f.s.Interval(time.Duration(f.n) * time.Second) }
func (f *freqBuilder) Minutes() *Schedule { return f.s.Interval(time.Duration(f.n) * time.Minute) }
func (f *freqBuilder) Hours() *Schedule   { return f.s.Interval(time.Duration(f.n) * time.Hour) }

// WithoutOverlapping prevents a new run if the previous one is still executing.
func (sc *Schedule) WithoutOverlapping() *Schedule {
	sc.e.noOverlap = true
	return sc
}

// Name gives the entry a human-readable identifier for logging.
func (sc *Schedule) Name(id string) *Schedule {
	sc.e.id = id
	return sc
}

// Run registers the task. Entries with a non-positive interval are ignored.
func (sc *Schedule) Run(fn Task) {
	if sc.e.interval <= 0 {
		logger.Warn("schedule: ignoring entry with non-positive interval", "id", sc.e.id)
		return
	}
	sc.e.task = fn

	sc.s.mu.Lock()
	defer sc.s.mu.Unlock()
	if sc.e.id == "" {
		sc.e.id = fmt.Sprintf("task-%d", len(sc.s.entries)+1)
	}
	sc.s.entries = append(sc.s.entries, sc.e)
}

// Start begins dispatching in the background. Every entry runs once right
// away and then whenever its interval has elapsed.
func (s *Scheduler) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop(ctx)
	}()
	logger.Info("schedule: scheduler started", "entries", len(s.List()))
}

// Wait blocks until the loop and every in-flight run have returned.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context) {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	s.dispatchDue(ctx, time.Now())
	for {
		select {
		case <-ctx.Done():
			logger.Info("schedule: scheduler stopped")
			return
		case now := <-ticker.C:
			s.dispatchDue(ctx, now)
		}
	}
}

func (s *Scheduler) dispatchDue(ctx context.Context, now time.Time) {
	s.mu.Lock()
	current := make([]*entry, len(s.entries))
	copy(current, s.entries)
	s.mu.Unlock()

	for _, e := range current {
		if isDue(e, now) {
			s.dispatch(ctx, e, now)
		}
	}
}

func isDue(e *entry, now time.Time) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastRun.IsZero() || now.Sub(e.lastRun) >= e.interval
}

func (s *Scheduler) dispatch(ctx context.Context, e *entry, now time.Time) {
	e.mu.Lock()
	if e.noOverlap && e.running {
		e.mu.Unlock()
		logger.Warn("schedule: skipping overlapping task", "id", e.id)
		return
	}
	e.running = true
	e.lastRun = now
	e.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			e.mu.Lock()
			e.running = false
			e.mu.Unlock()
			if r := recover(); r != nil {
				logger.Error("schedule: task panicked", "id", e.id, "panic", r)
			}
		}()

		logger.Debug("schedule: running task", "id", e.id)
		e.task(ctx)
	}()
}

// List returns the registered entries for CLI display.
func (s *Scheduler) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, fmt.Sprintf("%s  [every %s]", e.id, e.interval))
	}
	return out
}
