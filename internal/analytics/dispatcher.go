package analytics

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is a unit of background delivery. The context it receives is detached
// from any request and bounded by the dispatcher's job timeout.
type Job func(ctx context.Context)

type namedJob struct {
	name string
	run  Job
}

// Dispatcher runs jobs on a fixed set of workers fed by a bounded queue.
// Submit never blocks; when the queue is full the job is dropped and logged.
type Dispatcher struct {
	jobs    chan namedJob
	timeout time.Duration
	wg      sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewDispatcher starts workers goroutines draining a queue of the given size.
func NewDispatcher(queueSize, workers int, timeout time.Duration) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 1
	}
	if workers <= 0 {
		workers = 1
	}
	d := &Dispatcher{
		jobs:    make(chan namedJob, queueSize),
		timeout: timeout,
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for job := range d.jobs {
		d.run(job)
	}
}

func (d *Dispatcher) run(job namedJob) {
	ctx := context.Background()
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Analytics job panicked", "job", job.name, "panic", r)
		}
	}()
	job.run(ctx)
}

// Submit enqueues a job and reports whether it was accepted.
func (d *Dispatcher) Submit(name string, job Job) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		slog.Warn("Analytics dispatcher closed, dropping job", "job", name)
		return false
	}
	select {
	case d.jobs <- namedJob{name: name, run: job}:
		return true
	default:
		slog.Warn("Analytics queue full, dropping job", "job", name)
		return false
	}
}

// Close stops accepting jobs and waits for queued ones to finish, or for ctx.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.jobs)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
