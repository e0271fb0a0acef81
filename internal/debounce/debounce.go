// Package debounce coalesces bursts of rebuild requests into one call.
package debounce

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/yourusername/nfx-chrome/internal/uithread"
)

// DefaultDelay is the quiet period before a pending rebuild runs
const DefaultDelay = 300 * time.Millisecond

// Debouncer runs fn on the poster once Trigger has not been called for delay.
// Each Trigger restarts the timer, so at most one call is ever pending.
type Debouncer struct {
	delay  time.Duration
	fn     func()
	poster uithread.Poster

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	pending bool
	stopped bool

	fired atomic.Int64
}

// New creates a debouncer. A nil poster runs fn on the timer goroutine.
func New(delay time.Duration, poster uithread.Poster, fn func()) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{
		delay:  delay,
		fn:     fn,
		poster: poster,
	}
}

// Trigger (re)starts the quiet period
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = true
	d.timer = time.AfterFunc(d.delay, func() { d.expire(gen) })
}

// expire runs on the timer goroutine. A stale generation means a newer
// Trigger or Stop superseded this timer after it had already fired.
func (d *Debouncer) expire(gen uint64) {
	d.mu.Lock()
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.timer = nil
	d.mu.Unlock()

	d.run()
}

func (d *Debouncer) run() {
	d.fired.Add(1)
	if d.fn == nil {
		return
	}
	if d.poster != nil {
		d.poster.Post(d.fn)
		return
	}
	d.fn()
}

// Flush runs a pending call immediately. Returns false if nothing was pending.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	if d.stopped || !d.pending {
		d.mu.Unlock()
		return false
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	d.pending = false
	d.mu.Unlock()

	d.run()
	return true
}

// Pending reports whether a call is scheduled
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Fired returns how many times the debounced function has been dispatched
func (d *Debouncer) Fired() int64 {
	return d.fired.Load()
}

// Delay returns the configured quiet period
func (d *Debouncer) Delay() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.delay
}

// SetDelay changes the quiet period starting with the next Trigger.
// Non-positive values select DefaultDelay.
func (d *Debouncer) SetDelay(delay time.Duration) {
	if delay <= 0 {
		delay = DefaultDelay
	}
	d.mu.Lock()
	d.delay = delay
	d.mu.Unlock()
}

// Stop discards any pending call. Later Triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.pending = false
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
