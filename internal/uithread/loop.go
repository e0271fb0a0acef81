// Package uithread serializes work onto a single goroutine that plays the
// role of the UI thread. All hit-spot mutation and state transitions run
// there; hit tests only read published snapshots.
package uithread

import (
	"errors"
	"sync"
)

// ErrStopped is returned by Call after the loop has been stopped
var ErrStopped = errors.New("ui loop stopped")

// Poster runs functions on the UI thread
type Poster interface {
	// Post schedules fn and returns immediately
	Post(fn func())
}

// Caller is a Poster that can also wait for a function to finish
type Caller interface {
	Poster
	Call(fn func()) error
}

// Loop executes posted functions in FIFO order on one goroutine
type Loop struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   []func()
	stopped bool
	done    chan struct{}
}

// NewLoop starts a loop goroutine
func NewLoop() *Loop {
	l := &Loop{done: make(chan struct{})}
	l.cond = sync.NewCond(&l.mu)
	go l.run()
	return l
}

func (l *Loop) run() {
	defer close(l.done)
	for {
		l.mu.Lock()
		for len(l.queue) == 0 && !l.stopped {
			l.cond.Wait()
		}
		if len(l.queue) == 0 && l.stopped {
			l.mu.Unlock()
			return
		}
		fn := l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		l.mu.Unlock()

		fn()
	}
}

// Post queues fn. Posts after Stop are dropped.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return
	}
	l.queue = append(l.queue, fn)
	l.cond.Signal()
}

// Call runs fn on the loop and waits for it to finish.
// Must not be called from the loop goroutine itself.
func (l *Loop) Call(fn func()) error {
	finished := make(chan struct{})
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return ErrStopped
	}
	l.queue = append(l.queue, func() {
		defer close(finished)
		fn()
	})
	l.cond.Signal()
	l.mu.Unlock()

	<-finished
	return nil
}

// Stop drains already queued work, then ends the goroutine
func (l *Loop) Stop() {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		<-l.done
		return
	}
	l.stopped = true
	l.cond.Broadcast()
	l.mu.Unlock()
	<-l.done
}

// Done is closed once the loop goroutine has exited
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Immediate runs posted functions inline on the caller's goroutine.
// Used where the caller is already the only thread touching the window.
type Immediate struct{}

// Post runs fn now
func (Immediate) Post(fn func()) {
	if fn != nil {
		fn()
	}
}

// Call runs fn now
func (Immediate) Call(fn func()) error {
	if fn != nil {
		fn()
	}
	return nil
}
