package pool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

// newPools returns one instance of each Pool variant under test, so the
// shared behavioral tests below run identically against all three.
func newPools(t *testing.T) map[string]Pool {
	t.Helper()
	log := zap.NewNop().Sugar()
	return map[string]Pool{
		"naive":         NewNaive(log),
		"shared_queue":  NewSharedQueue(4, log),
		"work_stealing": NewWorkStealing(4, log),
	}
}

func TestSubmitRunsAllJobs(t *testing.T) {
	for name, p := range newPools(t) {
		t.Run(name, func(t *testing.T) {
			var count int64
			const n = 50
			var wg sync.WaitGroup
			wg.Add(n)
			for i := 0; i < n; i++ {
				p.Submit(func() {
					atomic.AddInt64(&count, 1)
					wg.Done()
				})
			}
			wg.Wait()
			if err := p.Close(); err != nil {
				t.Fatalf("Close failed: %v", err)
			}
			if got := atomic.LoadInt64(&count); got != n {
				t.Errorf("ran %d jobs, want %d", got, n)
			}
		})
	}
}

func TestCloseWaitsForInFlightJobs(t *testing.T) {
	for name, p := range newPools(t) {
		t.Run(name, func(t *testing.T) {
			var ran atomic.Bool
			p.Submit(func() {
				time.Sleep(20 * time.Millisecond)
				ran.Store(true)
			})
			if err := p.Close(); err != nil {
				t.Fatalf("Close failed: %v", err)
			}
			if !ran.Load() {
				t.Error("expected Close to wait for the in-flight job to finish")
			}
		})
	}
}

func TestSharedQueueRespawnsAfterPanic(t *testing.T) {
	log := zap.NewNop().Sugar()
	p := NewSharedQueue(1, log)
	defer p.Close()

	var wg sync.WaitGroup
	wg.Add(1)
	p.Submit(func() {
		panic("boom")
	})

	// Submit a second job on the same single-worker pool; it only runs if
	// the panicked worker's replacement was actually spawned.
	p.Submit(func() {
		wg.Done()
	})

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("second job never ran; worker was not respawned after panic")
	}
}

func TestNaiveRecoversPanicAndKeepsAcceptingJobs(t *testing.T) {
	log := zap.NewNop().Sugar()
	p := NewNaive(log)
	defer p.Close()

	var wg sync.WaitGroup
	wg.Add(1)
	p.Submit(func() { panic("boom") })
	p.Submit(func() { wg.Done() })

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job submitted after a panicking job never ran")
	}
}

func TestWorkStealingRecoversPanicAndReleasesSlot(t *testing.T) {
	log := zap.NewNop().Sugar()
	p := NewWorkStealing(1, log)
	defer p.Close()

	var wg sync.WaitGroup
	wg.Add(1)
	p.Submit(func() { panic("boom") })

	// If the panicking job's semaphore slot was never released, this
	// submit would block forever on a pool with only one slot.
	p.Submit(func() { wg.Done() })

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job submitted after a panicking job never ran; semaphore slot was not released")
	}
}

func TestWorkStealingBoundsConcurrency(t *testing.T) {
	p := NewWorkStealing(2, zap.NewNop().Sugar())
	var current, max int64
	var mu sync.Mutex

	var wg sync.WaitGroup
	const n = 10
	wg.Add(n)
	for i := 0; i < n; i++ {
		p.Submit(func() {
			defer wg.Done()
			c := atomic.AddInt64(&current, 1)
			mu.Lock()
			if c > max {
				max = c
			}
			mu.Unlock()
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt64(&current, -1)
		})
	}
	wg.Wait()
	p.Close()

	if max > 2 {
		t.Errorf("observed %d concurrent jobs, want at most 2", max)
	}
}
