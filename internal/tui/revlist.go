package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/talldan/revdiff/internal/core/revision"
	"github.com/talldan/revdiff/internal/core/styles"
)

// entryRows is the number of display rows per revision list entry
// (title line plus meta line).
const entryRows = 2

// RevisionList is the left-hand pane listing revisions newest first.
type RevisionList struct {
	revisions []revision.Revision
	cursor    int
	offset    int
	width     int
	height    int
}

// NewRevisionList creates an empty revision list.
func NewRevisionList() *RevisionList {
	return &RevisionList{}
}

// SetSize updates the list dimensions.
func (m *RevisionList) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.ensureVisible()
}

// SetRevisions replaces the listed revisions, keeping the selection on
// the same revision ID when it still exists.
func (m *RevisionList) SetRevisions(revs []revision.Revision) {
	selectedID := ""
	if r, ok := m.Selected(); ok {
		selectedID = r.ID
	}

	m.revisions = revs
	m.cursor = 0
	for i, r := range revs {
		if selectedID != "" && r.ID == selectedID {
			m.cursor = i
			break
		}
	}
	m.ensureVisible()
}

// Selected returns the revision under the cursor.
func (m *RevisionList) Selected() (revision.Revision, bool) {
	if m.cursor < 0 || m.cursor >= len(m.revisions) {
		return revision.Revision{}, false
	}
	return m.revisions[m.cursor], true
}

// SelectedIndex returns the cursor position.
func (m *RevisionList) SelectedIndex() int {
	return m.cursor
}

// Len returns the number of listed revisions.
func (m *RevisionList) Len() int {
	return len(m.revisions)
}

// Update handles cursor movement. It reports whether the selection
// changed.
func (m *RevisionList) Update(msg tea.Msg) bool {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return false
	}

	before := m.cursor
	switch keyMsg.String() {
	case "j", "down":
		if m.cursor < len(m.revisions)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g":
		m.cursor = 0
	case "G":
		m.cursor = max(0, len(m.revisions)-1)
	}
	m.ensureVisible()
	return m.cursor != before
}

// ensureVisible scrolls the list so the cursor entry stays on screen.
func (m *RevisionList) ensureVisible() {
	visible := max(1, m.height/entryRows)
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	m.offset = max(0, min(m.offset, max(0, len(m.revisions)-visible)))
}

// View renders the visible revision entries.
func (m *RevisionList) View() string {
	if len(m.revisions) == 0 {
		return styles.MutedStyle.Render("no revisions")
	}

	visible := max(1, m.height/entryRows)
	end := min(m.offset+visible, len(m.revisions))

	var sb strings.Builder
	for i := m.offset; i < end; i++ {
		r := m.revisions[i]
		title := r.Title
		if title == "" {
			title = r.ID
		}

		marker := "  "
		titleStyle := styles.RevisionNormalStyle
		if i == m.cursor {
			marker = styles.RevisionSelectedStyle.Render("▌ ")
			titleStyle = styles.RevisionSelectedStyle
		}

		meta := r.Author
		if !r.Date.IsZero() {
			if meta != "" {
				meta += " · "
			}
			meta += r.Date.Format("Jan 2 15:04")
		}

		sb.WriteString(marker + titleStyle.Render(truncate(title, m.width-2)))
		sb.WriteString("\n")
		sb.WriteString("  " + styles.RevisionMetaStyle.Render(truncate(meta, m.width-2)))
		if i < end-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func truncate(s string, width int) string {
	if width < 1 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes)) > width-1 {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
