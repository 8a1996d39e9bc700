// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// minBandRows is the smallest row band handed to a worker. Smaller images
// run on the calling goroutine.
const minBandRows = 16

// workerPool runs the row bands of a blit on a fixed set of goroutines.
//
// Thread safety: workerPool is safe for concurrent use.
type workerPool struct {
	workers int

	// queue feeds bands to every worker.
	queue chan func()

	// done signals workers to stop.
	done chan struct{}

	// wg waits for all workers to finish.
	wg sync.WaitGroup

	// running indicates whether the pool is accepting work.
	running atomic.Bool
}

// newWorkerPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func newWorkerPool(workers int) *workerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	p := &workerPool{
		workers: workers,
		queue:   make(chan func(), workers*4),
		done:    make(chan struct{}),
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	return p
}

func (p *workerPool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case work := <-p.queue:
			work()
		}
	}
}

// rows splits [0, h) into bands and calls fn for each band, returning once
// every band is done. A nil or closed pool runs fn on the calling
// goroutine.
func (p *workerPool) rows(h int, fn func(y0, y1 int)) {
	if p == nil || !p.running.Load() || p.workers == 1 || h < 2*minBandRows {
		fn(0, h)
		return
	}

	bands := min(p.workers, h/minBandRows)
	step := (h + bands - 1) / bands

	var wg sync.WaitGroup
	for y0 := 0; y0 < h; y0 += step {
		y1 := min(y0+step, h)
		wg.Add(1)
		work := func() {
			defer wg.Done()
			fn(y0, y1)
		}
		select {
		case p.queue <- work:
		case <-p.done:
			work()
		}
	}
	wg.Wait()
}

// close stops the workers. It is safe to call more than once.
func (p *workerPool) close() {
	if p == nil || !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}
