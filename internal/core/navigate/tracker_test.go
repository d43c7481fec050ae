package navigate

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource is a scroll source with a manually driven event stream.
type fakeSource struct {
	mu          sync.Mutex
	fn          func(float64)
	subscribes  int
	unsubscribe int
}

func (f *fakeSource) SubscribeScroll(fn func(float64)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fn = fn
	f.subscribes++
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.fn = nil
		f.unsubscribe++
	}
}

func (f *fakeSource) emit(top float64) {
	f.mu.Lock()
	fn := f.fn
	f.mu.Unlock()
	if fn != nil {
		fn(top)
	}
}

// countingSource tracks subscribe/cancel pairing.
type countingSource struct {
	subscribes int32
	cancels    int32
}

func (c *countingSource) SubscribeScroll(fn func(float64)) func() {
	atomic.AddInt32(&c.subscribes, 1)
	return func() {
		atomic.AddInt32(&c.cancels, 1)
	}
}

func TestTrackerThrottlesScrollToLatestValue(t *testing.T) {
	var mu sync.Mutex
	var updates []Viewport
	tr := NewTracker(TrackerOptions{
		ScrollThrottle: 40 * time.Millisecond,
		OnScroll: func(v Viewport) {
			mu.Lock()
			updates = append(updates, v)
			mu.Unlock()
		},
	})
	src := &fakeSource{}
	tr.Start(src)
	defer tr.Stop()

	for i := 1; i <= 5; i++ {
		src.emit(float64(i * 100))
		time.Sleep(4 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, updates, 1, "a burst of scroll events commits once")
	assert.Equal(t, 500.0, updates[0].ScrollTop)
	assert.Equal(t, 500.0, tr.Viewport().ScrollTop)
}

func TestTrackerClampsNegativeScroll(t *testing.T) {
	tr := NewTracker(TrackerOptions{ScrollThrottle: 10 * time.Millisecond})
	src := &fakeSource{}
	tr.Start(src)
	defer tr.Stop()

	src.emit(-50)
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, 0.0, tr.Viewport().ScrollTop)
}

func TestTrackerResizeDebounces(t *testing.T) {
	var recomputes atomic.Int32
	tr := NewTracker(TrackerOptions{
		ResizeDebounce: 50 * time.Millisecond,
		OnRecompute: func() {
			recomputes.Add(1)
		},
	})

	for range 5 {
		tr.Resize()
		time.Sleep(5 * time.Millisecond)
	}
	assert.Equal(t, int32(0), recomputes.Load(), "nothing fires before the burst settles")

	time.Sleep(120 * time.Millisecond)
	assert.Equal(t, int32(1), recomputes.Load())
}

func TestTrackerMeasureIsImmediate(t *testing.T) {
	tr := NewTracker(TrackerOptions{})
	p := &fakeProvider{view: Viewport{ScrollTop: 30, Height: 200}}

	v := tr.Measure(p)

	assert.Equal(t, Viewport{ScrollTop: 30, Height: 200}, v)
	assert.Equal(t, v, tr.Viewport())
}

func TestTrackerMeasureClampsNegatives(t *testing.T) {
	tr := NewTracker(TrackerOptions{})
	p := &fakeProvider{view: Viewport{ScrollTop: -10, Height: -5}}

	v := tr.Measure(p)

	assert.Equal(t, Viewport{}, v)
}

func TestTrackerListenerLifecycle(t *testing.T) {
	tr := NewTracker(TrackerOptions{})
	src := &countingSource{}

	tr.Start(src)
	tr.Start(src) // double start must not re-register
	assert.Equal(t, int32(1), atomic.LoadInt32(&src.subscribes))

	tr.Stop()
	tr.Stop() // redundant teardown is guarded
	assert.Equal(t, int32(1), atomic.LoadInt32(&src.cancels))

	// Restart attaches a fresh listener.
	tr.Start(src)
	assert.Equal(t, int32(2), atomic.LoadInt32(&src.subscribes))
	tr.Stop()
}

func TestTrackerStopBeforeStart(t *testing.T) {
	tr := NewTracker(TrackerOptions{})

	assert.NotPanics(t, func() { tr.Stop() })
}
