package executor

import "time"

// Executor schedules request work on one of the server's execution
// contexts. A zero delay means immediate execution; a positive delay runs a
// timer first and hands the task to the executor when it fires, so timers
// never occupy a worker and never block the submitting goroutine.
type Executor interface {
	Schedule(task func(), delay time.Duration)
}

// Func adapts a plain function to the Executor interface.
type Func func(task func(), delay time.Duration)

// Schedule implements Executor.
func (f Func) Schedule(task func(), delay time.Duration) {
	f(task, delay)
}

// SameThread executes tasks inline on the calling goroutine. Context.Detach
// uses it to keep control in place while signalling the transport that
// completion is now manual.
var SameThread Executor = sameThread{}

type sameThread struct{}

func (sameThread) Schedule(task func(), delay time.Duration) {
	if delay > 0 {
		time.Sleep(delay)
	}
	task()
}
