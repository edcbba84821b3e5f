package tui

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of trigger calls into a single trailing
// execution of its target operation. A trigger inside the window
// cancels the pending timer and reschedules; there is never more than
// one pending timer, and the operation never runs on the leading edge.
type Debouncer struct {
	mu     sync.Mutex
	window time.Duration
	fn     func()
	timer  *time.Timer
	// gen invalidates callbacks that fired before a supersede, flush,
	// or stop but had not yet taken the lock.
	gen uint64
}

// NewDebouncer creates a debouncer for the given window and target
// operation.
func NewDebouncer(window time.Duration, fn func()) *Debouncer {
	return &Debouncer{window: window, fn: fn}
}

// Trigger requests an execution. Any previously pending execution is
// superseded.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.triggerLocked()
}

// triggerLocked reschedules the timer. Callers hold d.mu.
func (d *Debouncer) triggerLocked() {
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		if gen != d.gen {
			// Superseded while waiting on the lock; a newer timer owns
			// the execution now.
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		d.fn()
	})
}

// Flush runs the pending operation immediately, if any.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	pending := d.timer != nil
	if pending {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	d.mu.Unlock()

	if pending {
		d.fn()
	}
}

// Stop cancels any pending execution without running it.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

// Pending reports whether an execution is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
