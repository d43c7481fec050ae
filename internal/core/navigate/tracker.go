package navigate

import (
	"sync"
	"time"

	"github.com/talldan/revdiff/pkg/timing"
)

// Rate limits for viewport maintenance. Scroll positions are throttled so
// rapid scrolling produces at most ten state updates per second; resize
// bursts collapse into a single recompute after the burst settles.
const (
	DefaultScrollThrottle = 100 * time.Millisecond
	DefaultResizeDebounce = 500 * time.Millisecond
)

// ScrollSource delivers scroll positions to a subscriber for as long as
// the subscription is held. The returned cancel releases the listener and
// must be safe to call more than once.
type ScrollSource interface {
	SubscribeScroll(fn func(scrollTop float64)) (cancel func())
}

// Tracker maintains the current viewport state of the scrollable diff
// surface. Scroll updates are throttled (trailing edge, latest value
// wins) and resize notifications are debounced before triggering the
// recompute callback.
type Tracker struct {
	mu   sync.Mutex
	view Viewport

	throttle *timing.Throttler[float64]
	debounce *timing.Debouncer
	cancel   func()
}

// TrackerOptions configures a Tracker. Zero durations fall back to the
// defaults. OnScroll fires after each committed (throttled) scroll
// update; OnRecompute fires after a resize burst settles.
type TrackerOptions struct {
	ScrollThrottle time.Duration
	ResizeDebounce time.Duration
	OnScroll       func(Viewport)
	OnRecompute    func()
}

// NewTracker creates a stopped tracker. Call Start to begin receiving
// scroll events.
func NewTracker(opts TrackerOptions) *Tracker {
	if opts.ScrollThrottle <= 0 {
		opts.ScrollThrottle = DefaultScrollThrottle
	}
	if opts.ResizeDebounce <= 0 {
		opts.ResizeDebounce = DefaultResizeDebounce
	}

	t := &Tracker{}

	onScroll := opts.OnScroll
	t.throttle = timing.NewThrottler(opts.ScrollThrottle, func(top float64) {
		v := t.commitScroll(top)
		if onScroll != nil {
			onScroll(v)
		}
	})

	onRecompute := opts.OnRecompute
	if onRecompute == nil {
		onRecompute = func() {}
	}
	t.debounce = timing.NewDebouncer(opts.ResizeDebounce, onRecompute)

	return t
}

// Start subscribes to the scroll source. Starting an already-started
// tracker is a no-op, so the listener is attached at most once.
func (t *Tracker) Start(src ScrollSource) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		return
	}
	t.cancel = src.SubscribeScroll(func(top float64) {
		t.throttle.Call(top)
	})
}

// Stop releases the scroll listener and cancels pending timers. Redundant
// Stop calls are guarded; stopping a never-started tracker does nothing.
func (t *Tracker) Stop() {
	t.mu.Lock()
	cancel := t.cancel
	t.cancel = nil
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	t.throttle.Stop()
	t.debounce.Stop()
}

// Resize requests a geometry recompute. Bursts are debounced: only the
// last resize in a burst triggers the recompute callback, after the burst
// settles.
func (t *Tracker) Resize() {
	t.debounce.Call()
}

// Measure reads the surface's current viewport bounds directly, without
// rate limiting, and stores them. Used at mount and after recompute.
func (t *Tracker) Measure(p Provider) Viewport {
	v := clampViewport(p.ViewportBounds())

	t.mu.Lock()
	t.view = v
	t.mu.Unlock()
	return v
}

// Viewport returns the last committed viewport state.
func (t *Tracker) Viewport() Viewport {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.view
}

func (t *Tracker) commitScroll(top float64) Viewport {
	if top < 0 {
		top = 0
	}

	t.mu.Lock()
	t.view.ScrollTop = top
	v := t.view
	t.mu.Unlock()
	return v
}

func clampViewport(v Viewport) Viewport {
	if v.ScrollTop < 0 {
		v.ScrollTop = 0
	}
	if v.Height < 0 {
		v.Height = 0
	}
	return v
}
