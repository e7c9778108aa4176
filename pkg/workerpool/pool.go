// Package workerpool provides a bounded goroutine pool with backpressure.
//
// The HTTP layer runs every request handler through a Pool so the number
// of handlers touching the database at once never exceeds HTTP_WORKERS:
//
//	pool := workerpool.New(config.HTTPWorkers())
//	defer pool.Shutdown()
//
//	err := pool.Do(r.Context(), func() { next.ServeHTTP(w, r) })
//	if errors.Is(err, workerpool.ErrPoolClosed) {
//	    // shutting down: answer 503
//	}
package workerpool

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrPoolFull is returned by Submit when all workers are busy and the task
// queue is at capacity.
var ErrPoolFull = errors.New("workerpool: pool is full")

// ErrPoolClosed is returned after Shutdown has been called.
var ErrPoolClosed = errors.New("workerpool: pool is closed")

// PanicError carries a panic raised by a task run through Do.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string { return fmt.Sprintf("workerpool: task panicked: %v", e.Value) }

// Pool is a bounded goroutine pool.
type Pool struct {
	size    int
	mu      sync.RWMutex
	closed  bool
	tasks   chan func()
	wg      sync.WaitGroup
	once    sync.Once
	closeCh chan struct{}
}

// New creates a Pool with the given number of workers.
// A size below 1 is treated as 1.
func New(size int) *Pool {
	if size <= 0 {
		size = 1
	}

	p := &Pool{
		size: size,
		// Buffer equal to 2× the worker count so bursts can be absorbed.
		tasks:   make(chan func(), size*2),
		closeCh: make(chan struct{}),
	}

	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int { return p.size }

// Submit enqueues task for execution without blocking.
//   - Returns ErrPoolFull if the task queue is at capacity.
//   - Returns ErrPoolClosed if Shutdown has been called.
func (p *Pool) Submit(task func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrPoolFull
	}
}

// SubmitWait is like Submit but blocks until a slot is available.
func (p *Pool) SubmitWait(task func()) error {
	return p.enqueue(context.Background(), task)
}

// Do runs task on a worker and blocks until it returns. A panic inside
// task is returned as *PanicError instead of being swallowed. If ctx ends
// before a worker picks the task up, ctx.Err() is returned and the task
// never runs.
func (p *Pool) Do(ctx context.Context, task func()) error {
	done := make(chan any, 1)
	wrapped := func() {
		defer func() { done <- recover() }()
		if ctx.Err() != nil {
			panic(errSkipped)
		}
		task()
	}

	if err := p.enqueue(ctx, wrapped); err != nil {
		return err
	}

	rec := <-done
	switch {
	case rec == nil:
		return nil
	case rec == errSkipped:
		return ctx.Err()
	default:
		return &PanicError{Value: rec}
	}
}

var errSkipped = errors.New("workerpool: task skipped")

func (p *Pool) enqueue(ctx context.Context, task func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.tasks <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown stops accepting new tasks, waits for queued and in-flight tasks
// to complete, and releases all worker goroutines. It is safe to call
// multiple times.
func (p *Pool) Shutdown() {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.closeCh)
		p.mu.Unlock()
		p.wg.Wait()
	})
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case task := <-p.tasks:
			safeRun(task)
		case <-p.closeCh:
			for {
				select {
				case task := <-p.tasks:
					safeRun(task)
				default:
					return
				}
			}
		}
	}
}

// safeRun executes task, recovering from panics so a bad task doesn't kill
// the worker goroutine.
func safeRun(task func()) {
	defer func() { recover() }() //nolint:errcheck
	task()
}
