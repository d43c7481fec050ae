package tui

import (
	"fmt"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/talldan/revdiff/internal/core/navigate"
	"github.com/talldan/revdiff/internal/core/styles"
)

const (
	directionAbove = navigate.DirectionAbove
	directionBelow = navigate.DirectionBelow
)

// renderHint renders the "changes above/below" affordance for one edge
// of the diff pane. It renders an empty row when the hint is suppressed
// so that showing it never shifts the diff content.
func renderHint(h navigate.Hints, direction, key string, width int) string {
	count := len(h.Above)
	arrow := "↑"
	word := "above"
	if direction == directionBelow {
		count = len(h.Below)
		arrow = "↓"
		word = "below"
	}

	if !h.Show || count == 0 {
		return ""
	}

	label := fmt.Sprintf("%s %d %s %s", arrow, count, pluralChanges(count), word)
	bar := styles.HintBarStyle.Render(label)
	if key != "" {
		bar += " " + styles.HintMutedStyle.Render("("+key+")")
	}
	return lipgloss.PlaceHorizontal(max(1, width), lipgloss.Center, bar)
}

func pluralChanges(n int) string {
	if n == 1 {
		return "change"
	}
	return "changes"
}
