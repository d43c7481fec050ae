// Package navigate implements change navigation over a rendered diff
// surface: locating changed regions, tracking the visible viewport, and
// driving centered scroll-to-change behavior.
//
// The package is rendering-agnostic. All geometry is read through the
// Provider interface so the state machine can be exercised against fakes.
package navigate

// Rect is the bounding box of one change region in the scrollable
// content's own coordinate space.
type Rect struct {
	Top    float64
	Height float64
}

// Viewport is the visible window over the scrollable content.
type Viewport struct {
	ScrollTop float64
	Height    float64
}

// Provider exposes the geometry of a rendered diff surface.
//
// ChangeRegionBounds returns one Rect per addition or deletion region, in
// document order. ViewportBounds reads the current scroll offset and
// visible height. Implementations must not error: missing or detached
// geometry degrades to zero values.
type Provider interface {
	ChangeRegionBounds() []Rect
	ViewportBounds() Viewport
}

// Scroller moves the scrollable surface to a target offset. The instant
// path is used for auto-scroll on revision change, the animated path for
// user-triggered hint scrolls.
type Scroller interface {
	ScrollTo(target float64, animated bool)
}

// Sink receives fire-and-forget notifications when a user-triggered hint
// scroll is used. Direction is "above" or "below".
type Sink interface {
	HintUsed(direction string)
}

// Locate scans the surface for changed regions and returns the vertical
// center of each, in document order. A surface with no change regions
// yields an empty result. Safe to call repeatedly; reads layout only.
func Locate(p Provider) []float64 {
	bounds := p.ChangeRegionBounds()
	if len(bounds) == 0 {
		return nil
	}

	offsets := make([]float64, 0, len(bounds))
	for _, b := range bounds {
		offsets = append(offsets, b.Top+b.Height/2)
	}
	return offsets
}

// CenterOn returns the scroll offset that centers the viewport on the
// given content offset, clamped so the target is never negative.
func CenterOn(offset, viewportHeight float64) float64 {
	target := offset - viewportHeight/2
	if target < 0 {
		return 0
	}
	return target
}

// Partition splits offsets into those strictly above the visible window
// and those strictly below it. Offsets exactly on either boundary are in
// neither set.
func Partition(offsets []float64, v Viewport) (above, below []float64) {
	bottom := v.ScrollTop + v.Height
	for _, off := range offsets {
		switch {
		case off < v.ScrollTop:
			above = append(above, off)
		case off > bottom:
			below = append(below, off)
		}
	}
	return above, below
}
