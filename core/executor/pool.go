package executor

import (
	"runtime"
	"sync"
	"time"
)

// Pool is a bounded worker pool for CPU-bound and blocking request work.
// Submitting applies backpressure once the queue is full.
type Pool struct {
	tasks  chan func()
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

// NewPool creates a pool with the given worker count and queue capacity.
// Non-positive workers defaults to GOMAXPROCS; non-positive queue to 256.
func NewPool(workers, queue int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if queue <= 0 {
		queue = 256
	}

	p := &Pool{tasks: make(chan func(), queue)}
	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	return p
}

// Schedule submits a task, optionally after a delay. Tasks submitted after
// Close are dropped.
func (p *Pool) Schedule(task func(), delay time.Duration) {
	if delay > 0 {
		time.AfterFunc(delay, func() { p.submit(task) })
		return
	}
	p.submit(task)
}

// Close stops accepting tasks and waits for queued work to finish.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()
	p.wg.Wait()
}

func (p *Pool) submit(task func()) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return
	}
	p.tasks <- task
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		run(task)
	}
}

// run isolates task panics so one bad task cannot kill a worker.
func run(task func()) {
	defer func() {
		_ = recover()
	}()
	task()
}
