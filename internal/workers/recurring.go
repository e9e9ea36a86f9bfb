// Package workers holds the agent's background execution primitives: the
// ticker-driven RecurringJob behind the sync and token-refresh schedules,
// and the StaggerQueue used to rate-limit per-record uploads.
package workers

import (
	"context"
	"sync"
	"time"
)

// RecurringJob runs a function on a ticker. A superseding Start stops the
// previous run first; ticks that fire while the function is still executing
// queue at most one deep (ticker semantics), so the job is never reentrant.
type RecurringJob struct {
	name string
	fn   func(context.Context)

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRecurringJob creates a RecurringJob that calls fn on a ticker. The job
// is idle until Start is called.
func NewRecurringJob(name string, fn func(context.Context)) *RecurringJob {
	return &RecurringJob{name: name, fn: fn}
}

// Name returns the job's identifier, used for logging.
func (j *RecurringJob) Name() string {
	return j.name
}

// Start stops any previously running job, then launches a background
// goroutine that calls fn every interval. If interval is zero or negative it
// defaults to 5 minutes. The goroutine exits when ctx is cancelled or Stop
// is called.
func (j *RecurringJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.fn(jobCtx)
			}
		}
	}()
}

// Stop cancels the background goroutine's context and blocks until the
// goroutine has fully exited. Safe to call when the job is not running
// (no-op in that case).
func (j *RecurringJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
