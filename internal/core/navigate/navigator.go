package navigate

// DefaultHintMinHeight is the minimum viewport height below which hint
// affordances are suppressed. The default matches the pixel-scale layout
// the component was designed for; terminal embedders override it with a
// row-scale value via SetHintMinHeight.
const DefaultHintMinHeight = 470

// Direction tags for Sink notifications.
const (
	DirectionAbove = "above"
	DirectionBelow = "below"
)

// phase is the auto-scroll state of the navigator.
type phase int

const (
	// phaseIdle means no revision has ever been selected.
	phaseIdle phase = iota
	// phasePendingAutoScroll means a revision is selected and the instant
	// centering scroll has not yet run against fresh geometry.
	phasePendingAutoScroll
	// phaseScrolled means the instant scroll for the current revision has
	// already run; further reconciles are no-ops until the selection
	// changes.
	phaseScrolled
)

// Hints is the render-time derivation of which changes lie outside the
// visible window. Show gates hint visibility on available height.
type Hints struct {
	Above []float64
	Below []float64
	Show  bool
}

// Navigator owns the change-offset set for the currently selected
// revision and decides when the viewport auto-scrolls to the first
// change. It is single-threaded: all methods are expected to run on the
// UI event loop.
type Navigator struct {
	phase         phase
	revisionID    string
	offsets       []float64
	hintMinHeight float64
	sink          Sink
}

// NewNavigator creates a navigator reporting user-triggered scrolls to
// sink. A nil sink disables notifications.
func NewNavigator(sink Sink) *Navigator {
	return &Navigator{
		hintMinHeight: DefaultHintMinHeight,
		sink:          sink,
	}
}

// SetHintMinHeight overrides the minimum viewport height required to
// show hints. Non-positive values keep the current threshold.
func (n *Navigator) SetHintMinHeight(h float64) {
	if h > 0 {
		n.hintMinHeight = h
	}
}

// SelectRevision notifies the navigator of the active revision. Selecting
// a revision that differs from the last auto-scrolled one immediately
// invalidates the current change-offset set and arms the pending
// auto-scroll. Re-selecting the same revision is a no-op, as is an empty
// id (no revision selected yet).
func (n *Navigator) SelectRevision(id string) {
	if id == "" || id == n.revisionID {
		return
	}
	n.revisionID = id
	n.offsets = nil
	n.phase = phasePendingAutoScroll
}

// Reconcile runs the recompute-then-scroll step: when an auto-scroll is
// pending it recomputes the change-offset set against current geometry
// and instantly centers the viewport on the first change (offset 0 when
// the set is empty). Subsequent calls while the same revision stays
// selected do nothing, so repeated update notifications never re-trigger
// the scroll.
func (n *Navigator) Reconcile(p Provider, s Scroller) {
	if n.phase != phasePendingAutoScroll {
		return
	}

	n.offsets = Locate(p)
	v := p.ViewportBounds()

	target := 0.0
	if len(n.offsets) > 0 {
		target = CenterOn(n.offsets[0], v.Height)
	}
	s.ScrollTo(target, false)
	n.phase = phaseScrolled
}

// Refresh recomputes the change-offset set against current geometry
// without touching the scroll position or the auto-scroll state. Used
// after layout changes (resize) while a revision stays selected.
func (n *Navigator) Refresh(p Provider) {
	if n.phase == phaseIdle {
		return
	}
	n.offsets = Locate(p)
}

// Offsets returns the current change-offset set. Valid only for the
// currently selected revision.
func (n *Navigator) Offsets() []float64 {
	return n.offsets
}

// Hints derives the above/below partitions for the given viewport. Show
// is true only when the viewport is tall enough for the hint affordances
// to fit without overlapping content.
func (n *Navigator) Hints(v Viewport) Hints {
	above, below := Partition(n.offsets, v)
	return Hints{
		Above: above,
		Below: below,
		Show:  v.Height > n.hintMinHeight,
	}
}

// ScrollAbove centers the viewport, animated, on the closest change above
// the visible window. Returns false (and does nothing) when no change is
// above. Each actual scroll emits one Sink notification.
func (n *Navigator) ScrollAbove(p Provider, s Scroller) bool {
	v := p.ViewportBounds()
	above, _ := Partition(n.offsets, v)
	if len(above) == 0 {
		return false
	}

	s.ScrollTo(CenterOn(above[len(above)-1], v.Height), true)
	n.notify(DirectionAbove)
	return true
}

// ScrollBelow centers the viewport, animated, on the closest change below
// the visible window. Returns false (and does nothing) when no change is
// below.
func (n *Navigator) ScrollBelow(p Provider, s Scroller) bool {
	v := p.ViewportBounds()
	_, below := Partition(n.offsets, v)
	if len(below) == 0 {
		return false
	}

	s.ScrollTo(CenterOn(below[0], v.Height), true)
	n.notify(DirectionBelow)
	return true
}

func (n *Navigator) notify(direction string) {
	if n.sink != nil {
		n.sink.HintUsed(direction)
	}
}
