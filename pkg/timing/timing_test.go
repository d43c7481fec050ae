package timing

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncerCoalescesBurst(t *testing.T) {
	var fires atomic.Int32
	d := NewDebouncer(50*time.Millisecond, func() {
		fires.Add(1)
	})

	for range 5 {
		d.Call()
		time.Sleep(5 * time.Millisecond)
	}

	// Burst still inside the quiet window, nothing fired yet
	assert.Equal(t, int32(0), fires.Load())

	time.Sleep(120 * time.Millisecond)
	assert.Equal(t, int32(1), fires.Load())
}

func TestDebouncerFiresAgainAfterQuietPeriod(t *testing.T) {
	var fires atomic.Int32
	d := NewDebouncer(20*time.Millisecond, func() {
		fires.Add(1)
	})

	d.Call()
	time.Sleep(60 * time.Millisecond)
	d.Call()
	time.Sleep(60 * time.Millisecond)

	assert.Equal(t, int32(2), fires.Load())
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	var fires atomic.Int32
	d := NewDebouncer(20*time.Millisecond, func() {
		fires.Add(1)
	})

	d.Call()
	d.Stop()
	time.Sleep(60 * time.Millisecond)

	assert.Equal(t, int32(0), fires.Load())
}

func TestThrottlerDeliversLatestValueOnce(t *testing.T) {
	var mu sync.Mutex
	var got []int
	th := NewThrottler(50*time.Millisecond, func(v int) {
		mu.Lock()
		got = append(got, v)
		mu.Unlock()
	})

	for i := 1; i <= 5; i++ {
		th.Call(i * 10)
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(120 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 1)
	assert.Equal(t, 50, got[0])
}

func TestThrottlerSeparateWindows(t *testing.T) {
	var mu sync.Mutex
	var got []int
	th := NewThrottler(20*time.Millisecond, func(v int) {
		mu.Lock()
		got = append(got, v)
		mu.Unlock()
	})

	th.Call(1)
	time.Sleep(60 * time.Millisecond)
	th.Call(2)
	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{1, 2}, got)
}

func TestThrottlerStopDiscardsPending(t *testing.T) {
	var fires atomic.Int32
	th := NewThrottler(20*time.Millisecond, func(int) {
		fires.Add(1)
	})

	th.Call(1)
	th.Stop()
	time.Sleep(60 * time.Millisecond)

	assert.Equal(t, int32(0), fires.Load())
}
