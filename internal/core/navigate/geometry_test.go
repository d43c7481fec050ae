package navigate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider is a canned geometry surface for exercising the package
// without a rendering backend.
type fakeProvider struct {
	bounds []Rect
	view   Viewport
}

func (f *fakeProvider) ChangeRegionBounds() []Rect { return f.bounds }
func (f *fakeProvider) ViewportBounds() Viewport   { return f.view }

// fakeScroller records every scroll request.
type fakeScroller struct {
	targets  []float64
	animated []bool
}

func (f *fakeScroller) ScrollTo(target float64, animated bool) {
	f.targets = append(f.targets, target)
	f.animated = append(f.animated, animated)
}

// fakeSink records hint-used notifications.
type fakeSink struct {
	directions []string
}

func (f *fakeSink) HintUsed(direction string) {
	f.directions = append(f.directions, direction)
}

func TestLocateReturnsRegionCenters(t *testing.T) {
	p := &fakeProvider{bounds: []Rect{
		{Top: 0, Height: 20},
		{Top: 100, Height: 50},
		{Top: 400, Height: 0},
	}}

	offsets := Locate(p)

	assert.Equal(t, []float64{10, 125, 400}, offsets)
}

func TestLocateEmptySurface(t *testing.T) {
	p := &fakeProvider{}

	assert.Empty(t, Locate(p))
}

func TestLocateIsReadOnly(t *testing.T) {
	p := &fakeProvider{bounds: []Rect{{Top: 10, Height: 10}}}

	first := Locate(p)
	second := Locate(p)

	assert.Equal(t, first, second)
	assert.Equal(t, []Rect{{Top: 10, Height: 10}}, p.bounds)
}

func TestCenterOn(t *testing.T) {
	assert.Equal(t, 200.0, CenterOn(300, 200))
	// Clamped: a change near the top never produces a negative target
	assert.Equal(t, 0.0, CenterOn(50, 200))
}

func TestPartitionStrictBoundaries(t *testing.T) {
	offsets := []float64{10, 50, 100, 120, 400, 900}
	v := Viewport{ScrollTop: 100, Height: 300}

	above, below := Partition(offsets, v)

	// Visible window is 100–400; offsets exactly on a boundary are in
	// neither partition.
	assert.Equal(t, []float64{10, 50}, above)
	assert.Equal(t, []float64{900}, below)
}

func TestPartitionEmptyOffsets(t *testing.T) {
	above, below := Partition(nil, Viewport{ScrollTop: 0, Height: 100})

	require.Empty(t, above)
	require.Empty(t, below)
}
