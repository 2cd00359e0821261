// Package parallel splits full-buffer raster passes across worker
// goroutines. Composition and relief synthesis recompute whole textures
// every update, so band-splitting the rows is where the time goes.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a fixed set of worker goroutines fed from one shared queue.
//
// Thread safety: Pool is safe for concurrent use.
type Pool struct {
	workers int
	tasks   chan func()
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewPool starts a pool with the given number of workers. Zero or negative
// selects GOMAXPROCS.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		workers: workers,
		tasks:   make(chan func(), workers*4),
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer p.wg.Done()
			for task := range p.tasks {
				task()
			}
		}()
	}
	return p
}

// Run executes all work items on the pool and waits for completion.
// After Close, work runs synchronously on the caller instead.
func (p *Pool) Run(work []func()) {
	if len(work) == 0 {
		return
	}
	if !p.running.Load() {
		for _, fn := range work {
			fn()
		}
		return
	}

	var done sync.WaitGroup
	done.Add(len(work))
	for _, fn := range work {
		task := fn
		p.tasks <- func() {
			defer done.Done()
			task()
		}
	}
	done.Wait()
}

// Rows partitions [0, height) into one contiguous band per worker and runs
// fn for each band. Bands never overlap, so fn may write its rows without
// locking.
func (p *Pool) Rows(height int, fn func(y0, y1 int)) {
	if height <= 0 {
		return
	}
	bands := p.workers
	if bands > height {
		bands = height
	}

	work := make([]func(), 0, bands)
	step := (height + bands - 1) / bands
	for y0 := 0; y0 < height; y0 += step {
		y1 := y0 + step
		if y1 > height {
			y1 = height
		}
		lo, hi := y0, y1
		work = append(work, func() { fn(lo, hi) })
	}
	p.Run(work)
}

// Workers reports the pool size.
func (p *Pool) Workers() int {
	return p.workers
}

// Close stops the workers after the queued work finishes. Safe to call
// more than once; Run falls back to synchronous execution afterwards.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.tasks)
	p.wg.Wait()
}
