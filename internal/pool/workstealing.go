package pool

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"go.uber.org/zap"
)

// WorkStealing stands in for a general-purpose work-stealing pool (spec
// §4.7's "delegates to a general-purpose work-stealing pool satisfying the
// same contract"): a weighted semaphore bounds how many jobs run
// concurrently and an errgroup tracks their completion, so goroutines are
// only ever parked on the semaphore rather than pinned to a fixed worker,
// letting the Go scheduler distribute ready jobs across Ps the way a true
// work-stealing runtime would.
type WorkStealing struct {
	sem *semaphore.Weighted
	g   *errgroup.Group
	ctx context.Context
	log *zap.SugaredLogger
}

// NewWorkStealing builds a WorkStealing pool allowing up to maxConcurrent
// jobs to run at once.
func NewWorkStealing(maxConcurrent int64, log *zap.SugaredLogger) *WorkStealing {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	g, ctx := errgroup.WithContext(context.Background())
	return &WorkStealing{sem: semaphore.NewWeighted(maxConcurrent), g: g, ctx: ctx, log: log}
}

// Submit blocks until a concurrency slot is free, then runs job on a
// goroutine managed by the underlying errgroup. A panicking job is
// recovered and logged before its semaphore slot is released, so the
// panic never reduces how many jobs the pool can run concurrently (spec
// §4.7/§9's panic-isolation invariant).
func (p *WorkStealing) Submit(job Job) {
	if err := p.sem.Acquire(p.ctx, 1); err != nil {
		// Context canceled (pool closing); drop the job rather than run it
		// past shutdown.
		return
	}
	p.g.Go(func() error {
		defer p.sem.Release(1)
		defer func() {
			if r := recover(); r != nil {
				if p.log != nil {
					p.log.Errorw("pool job recovered from panic", "panic", r)
				}
			}
		}()
		job()
		return nil
	})
}

// Close waits for every in-flight job to finish.
func (p *WorkStealing) Close() error {
	return p.g.Wait()
}
