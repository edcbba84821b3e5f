package tui

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_coalesces_burst_to_one_execution(t *testing.T) {
	var runs atomic.Int32
	d := NewDebouncer(30*time.Millisecond, func() { runs.Add(1) })

	for range 5 {
		d.Trigger()
	}

	// Nothing runs on the leading edge.
	assert.Equal(t, int32(0), runs.Load())
	assert.True(t, d.Pending())

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), runs.Load())
	assert.False(t, d.Pending())
}

func TestDebouncer_reschedule_supersedes_pending(t *testing.T) {
	var runs atomic.Int32
	d := NewDebouncer(40*time.Millisecond, func() { runs.Add(1) })

	d.Trigger()
	time.Sleep(20 * time.Millisecond)
	d.Trigger() // resets the window; first timer must not fire

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(0), runs.Load())

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(1), runs.Load())
}

func TestDebouncer_Flush_runs_pending_now(t *testing.T) {
	var runs atomic.Int32
	d := NewDebouncer(time.Hour, func() { runs.Add(1) })

	d.Flush() // nothing pending, nothing runs
	assert.Equal(t, int32(0), runs.Load())

	d.Trigger()
	d.Flush()
	assert.Equal(t, int32(1), runs.Load())
	assert.False(t, d.Pending())
}

func TestDebouncer_trigger_at_expiry_does_not_stack_timers(t *testing.T) {
	var runs atomic.Int32
	d := NewDebouncer(time.Millisecond, func() { runs.Add(1) })

	// Land triggers right at window expiry so some arrive while the old
	// timer's callback is in flight. A stale callback must neither run
	// nor clobber the handle of the timer that superseded it.
	for range 50 {
		d.Trigger()
		time.Sleep(time.Millisecond)
	}
	d.Stop()

	time.Sleep(20 * time.Millisecond)
	settled := runs.Load()
	assert.False(t, d.Pending())

	// No orphaned timer may fire after Stop.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, runs.Load())
}

func TestDebouncer_stale_callback_yields_to_new_timer(t *testing.T) {
	var runs atomic.Int32
	d := NewDebouncer(10*time.Millisecond, func() { runs.Add(1) })

	d.Trigger()

	// Park the first timer's callback on the state lock past its expiry,
	// then supersede it before releasing the lock.
	d.mu.Lock()
	time.Sleep(30 * time.Millisecond)
	d.triggerLocked()
	d.mu.Unlock()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), runs.Load(), "the superseded callback must not execute the burst twice")
	assert.False(t, d.Pending())
}

func TestDebouncer_Stop_cancels_without_running(t *testing.T) {
	var runs atomic.Int32
	d := NewDebouncer(20*time.Millisecond, func() { runs.Add(1) })

	d.Trigger()
	d.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), runs.Load())
}
