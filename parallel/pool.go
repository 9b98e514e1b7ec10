// Package parallel runs independent jobs, one image per job, on a fixed set
// of workers.
package parallel

import (
	"errors"
	"runtime"
	"sync"
)

type (
	WorkerFunc func(func() error)
	WaitFunc   func() error
	CancelFunc func()
)

type Pool struct {
	wg     sync.WaitGroup
	errMu  sync.Mutex
	errs   []error
	Do     WorkerFunc
	Wait   WaitFunc
	Cancel CancelFunc
}

func (p *Pool) record(err error) {
	if err == nil {
		return
	}
	p.errMu.Lock()
	p.errs = append(p.errs, err)
	p.errMu.Unlock()
}

func (p *Pool) joined() error {
	p.errMu.Lock()
	defer p.errMu.Unlock()
	return errors.Join(p.errs...)
}

// Start returns a pool with numWorkers workers, or GOMAXPROCS workers when
// numWorkers < 1. With a single worker jobs run inline in Do. Wait stops
// accepting jobs, waits for the queued ones and returns their errors joined.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{}
	pool.Do = func(f func() error) {
		pool.record(f())
	}
	pool.Wait = pool.joined
	pool.Cancel = func() {}

	if numWorkers > 1 {
		workChan := make(chan func() error, numWorkers)

		for range numWorkers {
			pool.wg.Go(func() {
				for f := range workChan {
					pool.record(f())
				}
			})
		}

		pool.Do = func(f func() error) {
			workChan <- f
		}

		pool.Cancel = sync.OnceFunc(func() { close(workChan) })
		pool.Wait = func() error {
			pool.Cancel()
			pool.wg.Wait()
			return pool.joined()
		}
	}

	return pool
}
