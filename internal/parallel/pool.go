package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// ErrPoolClosed is returned by ExecuteAll once Close has been called.
var ErrPoolClosed = errors.New("parallel: worker pool is closed")

// idlePoll bounds how long an idle worker blocks on its own queue before
// trying to steal again.
const idlePoll = time.Millisecond

// Task is one unit of work run by a WorkerPool. The context is cancelled
// as soon as any task of the same batch fails.
type Task func(ctx context.Context) error

// WorkerPool runs tasks on a fixed set of goroutines.
//
// Each worker owns a queue and steals from the others when its own queue is
// empty, which keeps the pool busy when tiles take uneven time.
//
// WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers    int
	workQueues []chan func()
	done       chan struct{}
	wg         sync.WaitGroup
	running    atomic.Bool
}

// NewWorkerPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers:    workers,
		workQueues: make([]chan func(), workers),
		done:       make(chan struct{}),
	}
	for i := range workers {
		p.workQueues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	own := p.workQueues[id]
	idle := time.NewTimer(idlePoll)
	defer idle.Stop()

	for {
		select {
		case <-p.done:
			p.drain(own)
			return
		case work := <-own:
			work()
		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
				continue
			}
			idle.Reset(idlePoll)
			select {
			case <-p.done:
				p.drain(own)
				return
			case work := <-own:
				work()
			case <-idle.C:
			}
		}
	}
}

func (p *WorkerPool) drain(queue chan func()) {
	for {
		select {
		case work := <-queue:
			work()
		default:
			return
		}
	}
}

// steal takes one queued item from another worker, or returns nil.
func (p *WorkerPool) steal(self int) func() {
	for i := range p.workers {
		if i == self {
			continue
		}
		select {
		case work := <-p.workQueues[i]:
			return work
		default:
		}
	}
	return nil
}

// ExecuteAll runs every task and waits for all of them. The first error
// cancels the context handed to the remaining tasks and is returned; tasks
// not yet started when that happens are skipped. If ctx is cancelled first,
// ctx.Err() is returned.
func (p *WorkerPool) ExecuteAll(ctx context.Context, tasks []Task) error {
	if len(tasks) == 0 {
		return ctx.Err()
	}
	if !p.running.Load() {
		return ErrPoolClosed
	}

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	var (
		wg      sync.WaitGroup
		errOnce sync.Once
		first   error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			first = err
			cancel(err)
		})
	}

	wg.Add(len(tasks))
	for i, task := range tasks {
		run := func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			if err := task(ctx); err != nil {
				fail(err)
			}
		}

		select {
		case p.workQueues[i%p.workers] <- run:
		case <-p.done:
			// closing; account for everything not queued
			fail(ErrPoolClosed)
			for range len(tasks) - i {
				wg.Done()
			}
			wg.Wait()
			return first
		}
	}
	wg.Wait()

	if first != nil {
		return first
	}
	return context.Cause(ctx)
}

// Close stops accepting work, runs what is already queued and stops the
// workers. Close is safe to call more than once.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}
