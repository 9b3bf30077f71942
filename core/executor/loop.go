package executor

import (
	"sync"
	"time"
)

// Loop is a single-goroutine serial executor, the I/O-affine counterpart to
// Pool. All tasks run on one goroutine in submission order, so loop tasks
// must never block; blocking work belongs on the worker pool.
type Loop struct {
	tasks  chan func()
	done   chan struct{}
	mu     sync.RWMutex
	closed bool
}

// NewLoop creates a serial executor with the given queue capacity.
// Non-positive queue defaults to 256.
func NewLoop(queue int) *Loop {
	if queue <= 0 {
		queue = 256
	}
	l := &Loop{
		tasks: make(chan func(), queue),
		done:  make(chan struct{}),
	}
	go l.run()
	return l
}

// Schedule submits a task, optionally after a delay. The delay timer runs
// off-loop and enqueues the task when it fires.
func (l *Loop) Schedule(task func(), delay time.Duration) {
	if delay > 0 {
		time.AfterFunc(delay, func() { l.submit(task) })
		return
	}
	l.submit(task)
}

// Close stops accepting tasks and waits for queued work to finish.
func (l *Loop) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	close(l.tasks)
	l.mu.Unlock()
	<-l.done
}

func (l *Loop) submit(task func()) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return
	}
	l.tasks <- task
}

func (l *Loop) run() {
	defer close(l.done)
	for task := range l.tasks {
		runSerial(task)
	}
}

func runSerial(task func()) {
	defer func() {
		_ = recover()
	}()
	task()
}
