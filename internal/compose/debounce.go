package compose

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Debouncer runs the most recently triggered func once calls have been quiet
// for a fixed interval.
type Debouncer struct {
	quiet time.Duration
	clock clockwork.Clock

	mu    sync.Mutex
	timer clockwork.Timer
	gen   uint64
}

// NewDebouncer creates a Debouncer. A nil clock uses the wall clock.
func NewDebouncer(quiet time.Duration, clock clockwork.Clock) *Debouncer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Debouncer{quiet: quiet, clock: clock}
}

// Trigger (re)arms the timer with fn. With a non-positive interval fn runs
// immediately on the calling goroutine.
func (d *Debouncer) Trigger(fn func()) {
	if d.quiet <= 0 {
		d.Stop()
		fn()
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.quiet, func() {
		d.mu.Lock()
		// A timer that fired while being replaced or stopped must not run.
		if gen != d.gen {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		fn()
	})
}

// Stop cancels the pending call, if any. After Stop returns the cancelled
// func never runs.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Pending reports whether a call is waiting for the quiet interval.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
