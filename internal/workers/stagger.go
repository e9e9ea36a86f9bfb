// SPDX-License-Identifier: Apache-2.0

package workers

import (
	"context"
	"sync"
	"time"
)

// StaggerQueue schedules functions to run after a per-call delay, bounding
// how many execute at once. The sync orchestrator uses it to spread
// per-record uploads out in time instead of firing them all at once against
// the remote endpoint's rate limiter.
//
// Scheduled functions run concurrently once their delay elapses; completion
// order is not guaranteed. Unlike a bare timer fan-out, completion is
// observable: Wait blocks until everything scheduled so far has finished,
// which lets tests run with a zero delay step instead of wall-clock sleeps.
type StaggerQueue struct {
	sem chan struct{}
	wg  sync.WaitGroup
}

// NewStaggerQueue creates a queue running at most maxConcurrent functions at
// a time. maxConcurrent < 1 means 8.
func NewStaggerQueue(maxConcurrent int) *StaggerQueue {
	if maxConcurrent < 1 {
		maxConcurrent = 8
	}
	return &StaggerQueue{sem: make(chan struct{}, maxConcurrent)}
}

// Schedule runs fn after delay. If ctx is cancelled before the delay
// elapses, fn is dropped. Schedule never blocks the caller.
func (q *StaggerQueue) Schedule(ctx context.Context, delay time.Duration, fn func()) {
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()

		if delay > 0 {
			t := time.NewTimer(delay)
			defer t.Stop()
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}
		} else if ctx.Err() != nil {
			return
		}

		select {
		case q.sem <- struct{}{}:
		case <-ctx.Done():
			return
		}
		defer func() { <-q.sem }()

		fn()
	}()
}

// Wait blocks until every function scheduled before the call has run or
// been dropped by cancellation.
func (q *StaggerQueue) Wait() {
	q.wg.Wait()
}
