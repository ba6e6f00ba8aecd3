package pool

import (
	"sync"

	"go.uber.org/zap"
)

// SharedQueue runs jobs on a fixed number of worker goroutines pulling from
// one shared channel. A worker that panics while running a job is not lost:
// the panic is recovered and a replacement worker goroutine is spawned in
// its place (spec §9's panic-safe respawn via a scoped release), so one bad
// job cannot shrink the pool's effective capacity over time.
type SharedQueue struct {
	jobs chan Job
	wg   sync.WaitGroup
	log  *zap.SugaredLogger

	closeOnce sync.Once
}

// NewSharedQueue starts a SharedQueue with workers goroutines, each
// independently pulling from the same job channel.
func NewSharedQueue(workers int, log *zap.SugaredLogger) *SharedQueue {
	if workers < 1 {
		workers = 1
	}
	p := &SharedQueue{jobs: make(chan Job, workers), log: log}
	for i := 0; i < workers; i++ {
		p.spawnWorker()
	}
	return p
}

// spawnWorker starts one worker goroutine. It is called both at pool
// construction and, recursively, whenever a worker's job panics — this is
// the "scoped release" that keeps the pool at its configured width across
// panics without ever growing it.
func (p *SharedQueue) spawnWorker() {
	p.wg.Add(1)
	go p.runWorker()
}

// runWorker drives the worker's job loop. If a job panics the panic
// unwinds this goroutine entirely — runWorker's own deferred recover
// catches it, logs it, and spawns a replacement worker before returning,
// so the pool's width is restored even though this particular goroutine
// is gone.
func (p *SharedQueue) runWorker() {
	defer p.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			if p.log != nil {
				p.log.Errorw("pool worker recovered from panic", "panic", r)
			}
			p.spawnWorker()
		}
	}()

	for job := range p.jobs {
		job()
	}
}

// Submit enqueues job for the next available worker. It blocks if every
// worker is currently busy and the channel buffer is full.
func (p *SharedQueue) Submit(job Job) {
	p.jobs <- job
}

// Close stops accepting new jobs and waits for every worker to drain the
// queue and exit.
func (p *SharedQueue) Close() error {
	p.closeOnce.Do(func() { close(p.jobs) })
	p.wg.Wait()
	return nil
}
