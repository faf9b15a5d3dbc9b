package carousel

import (
	"time"

	"k8s.io/utils/clock"
)

// Timer is a pending scheduled callback.
type Timer interface {
	// Stop cancels the callback. It reports false if the callback already
	// fired or was stopped.
	Stop() bool
}

// Scheduler runs a callback once after a delay. Callbacks may run on any
// goroutine.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// ClockScheduler adapts a k8s.io/utils clock to a Scheduler. Pass
// clock.RealClock{} in production.
func ClockScheduler(c clock.WithDelayedExecution) Scheduler {
	return clockScheduler{c: c}
}

type clockScheduler struct {
	c clock.WithDelayedExecution
}

func (s clockScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return s.c.AfterFunc(d, f)
}
