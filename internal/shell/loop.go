package shell

import (
	"context"
	"time"
)

// Loop is the single-threaded event loop all shell state is owned by.
// Touch events, timer callbacks and frame callbacks are serialized through
// it, so the gesture and render state needs no locking.
type Loop struct {
	events chan func()
}

// NewLoop creates an event loop.
func NewLoop() *Loop {
	return &Loop{events: make(chan func(), 64)}
}

// Post schedules fn on the loop. Safe to call from any goroutine.
func (l *Loop) Post(fn func()) {
	l.events <- fn
}

// Run dispatches events until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-l.events:
			fn()
		}
	}
}

// Timer is a cancellable delayed callback running on the loop.
type Timer struct {
	stopped bool
}

// After arms a timer that runs fn on the loop after d. Stop must be called
// from the loop itself; the callback is dropped if the timer was stopped
// before it fired, even if the underlying timer already expired.
func (l *Loop) After(d time.Duration, fn func()) *Timer {
	t := &Timer{}
	time.AfterFunc(d, func() {
		l.Post(func() {
			if t.stopped {
				return
			}
			t.stopped = true
			fn()
		})
	})
	return t
}

// Stop cancels the timer. It is a no-op if the timer already fired.
func (t *Timer) Stop() {
	t.stopped = true
}
