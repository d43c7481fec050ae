package tui

import (
	"fmt"
	"math"
	"strings"
	"sync"

	tea "charm.land/bubbletea/v2"

	"github.com/talldan/revdiff/internal/core/navigate"
	"github.com/talldan/revdiff/internal/core/revision"
	"github.com/talldan/revdiff/internal/core/styles"
)

const (
	// paneHeaderHeight is the title line plus the separator line.
	paneHeaderHeight = 2
	// hintRowCount reserves one row above and one below the content for
	// the change hints, so showing them never shifts the diff geometry.
	hintRowCount = 2
)

// DiffPane renders the diff between two revisions and exposes the
// rendered change geometry to the navigation core. It is the geometry
// provider, the scroller, and the scroll source for the viewport
// tracker, all in display-row units.
type DiffPane struct {
	diff   revision.Diff
	title  string
	layout diffLayout

	offset float64
	width  int
	height int

	animating  bool
	animTarget float64

	mu      sync.Mutex
	subs    map[int]func(float64)
	nextSub int
}

// NewDiffPane creates an empty diff pane.
func NewDiffPane() *DiffPane {
	return &DiffPane{subs: make(map[int]func(float64))}
}

// SetSize updates the pane dimensions and reflows the diff.
func (m *DiffPane) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.reflow()
}

// SetDiff replaces the displayed diff and resets the scroll position.
// The caller decides where to scroll next.
func (m *DiffPane) SetDiff(title string, d revision.Diff) {
	m.title = title
	m.diff = d
	m.animating = false
	m.reflow()
	m.setOffset(0)
}

// Reflow re-wraps the diff at the current width.
func (m *DiffPane) reflow() {
	m.layout = layoutDiff(m.diff, m.contentWidth())
	m.setOffset(m.offset)
}

func (m *DiffPane) contentWidth() int {
	return max(1, m.width)
}

func (m *DiffPane) contentHeight() int {
	return max(1, m.height-paneHeaderHeight-hintRowCount)
}

func (m *DiffPane) maxOffset() float64 {
	return float64(max(0, len(m.layout.rows)-m.contentHeight()))
}

// ChangeRegionBounds returns the row spans of all changed ops, in
// document order.
func (m *DiffPane) ChangeRegionBounds() []navigate.Rect {
	return m.layout.regions
}

// ViewportBounds returns the current scroll offset and visible height.
func (m *DiffPane) ViewportBounds() navigate.Viewport {
	return navigate.Viewport{ScrollTop: m.offset, Height: float64(m.contentHeight())}
}

// ScrollTo moves the viewport to the target row. Instant scrolls jump
// immediately; animated scrolls ease there over subsequent Step calls.
func (m *DiffPane) ScrollTo(target float64, animated bool) {
	target = m.clamp(target)
	if !animated {
		m.animating = false
		m.setOffset(target)
		return
	}
	m.animTarget = target
	m.animating = m.offset != target
}

// Animating reports whether an eased scroll is in progress.
func (m *DiffPane) Animating() bool {
	return m.animating
}

// Step advances the eased scroll by one frame and reports whether the
// animation is still running.
func (m *DiffPane) Step() bool {
	if !m.animating {
		return false
	}
	dist := m.animTarget - m.offset
	if math.Abs(dist) <= 1 {
		m.setOffset(m.animTarget)
		m.animating = false
		return false
	}
	step := dist * 0.3
	if math.Abs(step) < 1 {
		step = math.Copysign(1, dist)
	}
	m.setOffset(m.offset + step)
	return true
}

func (m *DiffPane) clamp(target float64) float64 {
	return math.Max(0, math.Min(target, m.maxOffset()))
}

func (m *DiffPane) setOffset(target float64) {
	m.offset = m.clamp(target)

	m.mu.Lock()
	subs := make([]func(float64), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	for _, fn := range subs {
		fn(m.offset)
	}
}

// SubscribeScroll registers fn to be called with the scroll offset on
// every scroll. The returned cancel detaches the listener.
func (m *DiffPane) SubscribeScroll(fn func(scrollTop float64)) (cancel func()) {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// Update handles scrolling key input.
func (m *DiffPane) Update(msg tea.Msg) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return
	}

	half := float64(m.contentHeight()) / 2

	switch keyMsg.String() {
	case "j", "down":
		m.animating = false
		m.setOffset(m.offset + 1)
	case "k", "up":
		m.animating = false
		m.setOffset(m.offset - 1)
	case "d", "ctrl+d":
		m.animating = false
		m.setOffset(m.offset + half)
	case "u", "ctrl+u":
		m.animating = false
		m.setOffset(m.offset - half)
	case "g":
		m.animating = false
		m.setOffset(0)
	case "G":
		m.animating = false
		m.setOffset(m.maxOffset())
	}
}

// View renders the pane: header, top hint, visible diff rows, bottom
// hint.
func (m *DiffPane) View(hints navigate.Hints, prevKey, nextKey string) string {
	header := m.renderHeader()

	top := int(math.Round(m.offset))
	end := min(top+m.contentHeight(), len(m.layout.rows))

	lines := make([]string, 0, m.contentHeight()+hintRowCount+paneHeaderHeight)
	lines = append(lines, header...)
	lines = append(lines, renderHint(hints, directionAbove, prevKey, m.width))
	for i := top; i < end; i++ {
		lines = append(lines, renderRow(m.layout.rows[i]))
	}
	for i := end - top; i < m.contentHeight(); i++ {
		lines = append(lines, "")
	}
	lines = append(lines, renderHint(hints, directionBelow, nextKey, m.width))

	return strings.Join(lines, "\n")
}

func (m *DiffPane) renderHeader() []string {
	additions, deletions := m.diff.Stats()
	stats := styles.DiffStatsStyle.Render(fmt.Sprintf("(+%d, -%d)", additions, deletions))
	title := styles.DiffHeaderStyle.Render(m.title)
	sep := styles.MutedStyle.Render(strings.Repeat("─", max(1, m.width)))
	return []string{title + " " + stats, sep}
}

// renderRow renders a single wrapped row with per-op styling.
func renderRow(row layoutRow) string {
	var sb strings.Builder
	for _, seg := range row.segments {
		switch seg.kind {
		case revision.OpAdd:
			sb.WriteString(styles.DiffAdditionStyle.Render(seg.text))
		case revision.OpDel:
			sb.WriteString(styles.DiffDeletionStyle.Render(seg.text))
		default:
			sb.WriteString(styles.DiffContextStyle.Render(seg.text))
		}
	}
	return sb.String()
}

// TotalRows returns the number of wrapped rows in the current layout.
func (m *DiffPane) TotalRows() int {
	return len(m.layout.rows)
}

// Offset returns the current scroll offset in rows.
func (m *DiffPane) Offset() float64 {
	return m.offset
}

var (
	_ navigate.Provider     = (*DiffPane)(nil)
	_ navigate.Scroller     = (*DiffPane)(nil)
	_ navigate.ScrollSource = (*DiffPane)(nil)
)
