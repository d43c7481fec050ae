// Package timing provides trailing-edge coalescing helpers for bursty
// event streams (scroll positions, resize storms, file change floods).
package timing

import (
	"sync"
	"time"
)

// Debouncer coalesces a burst of calls into a single callback invocation
// fired after the burst has settled for the configured delay.
//
// All methods are safe for concurrent use. The callback never runs
// concurrently with itself from the same debouncer.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	seq   uint64
	fn    func()
}

// NewDebouncer creates a debouncer that invokes fn once no call has been
// made for at least delay.
func NewDebouncer(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Call schedules the callback. Repeated calls within the delay window
// restart the timer, so only the last call in a burst fires.
func (d *Debouncer) Call() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		stale := d.seq != seq
		d.mu.Unlock()
		if !stale {
			d.fn()
		}
	})
}

// Stop cancels any pending invocation.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Throttler rate-limits a stream of values to at most one callback per
// interval. Fires on the trailing edge: the first value in a window
// schedules a fire at the end of the window, and later values within the
// window replace the pending one, so the callback always observes the
// most recent value.
type Throttler[T any] struct {
	mu       sync.Mutex
	interval time.Duration
	timer    *time.Timer
	pending  bool
	latest   T
	seq      uint64
	fn       func(T)
}

// NewThrottler creates a throttler that invokes fn with the latest value
// at most once per interval.
func NewThrottler[T any](interval time.Duration, fn func(T)) *Throttler[T] {
	return &Throttler[T]{interval: interval, fn: fn}
}

// Call records v as the latest value. If no fire is pending, one is
// scheduled for the end of the current window; otherwise the pending fire
// picks up v.
func (t *Throttler[T]) Call(v T) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.latest = v
	if t.pending {
		return
	}
	t.pending = true

	t.seq++
	seq := t.seq
	t.timer = time.AfterFunc(t.interval, func() {
		t.mu.Lock()
		if t.seq != seq {
			t.mu.Unlock()
			return
		}
		t.pending = false
		v := t.latest
		t.mu.Unlock()
		t.fn(v)
	})
}

// Stop cancels any pending fire and discards the latest value.
func (t *Throttler[T]) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.seq++
	t.pending = false
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
