package pool

import (
	"sync"

	"go.uber.org/zap"
)

// Naive spawns one goroutine per submitted job with no pooling or
// concurrency limit — the simplest variant satisfying the Pool contract,
// useful as a baseline and for tests.
type Naive struct {
	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
	log    *zap.SugaredLogger
}

// NewNaive builds a Naive pool.
func NewNaive(log *zap.SugaredLogger) *Naive {
	return &Naive{log: log}
}

// Submit runs job on a new goroutine immediately. A panicking job is
// recovered and logged rather than crashing the process — since each job
// already has its own goroutine here, a panic never reduces the pool's
// effective capacity, but it still must not propagate (spec §4.7/§9's
// panic-isolation invariant applies to every pool variant).
func (p *Naive) Submit(job Job) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				if p.log != nil {
					p.log.Errorw("pool job recovered from panic", "panic", r)
				}
			}
		}()
		job()
	}()
}

// Close stops accepting new jobs and waits for every spawned goroutine to
// finish.
func (p *Naive) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.wg.Wait()
	return nil
}
