package tui

import (
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"

	"github.com/talldan/revdiff/internal/core/revision"
	"github.com/talldan/revdiff/internal/core/styles"
)

const previewChrome = 2

// Preview renders a single revision's content as markdown in a
// scrollable viewport.
type Preview struct {
	rev      revision.Revision
	viewport viewport.Model
	width    int
	height   int
}

// NewPreview creates an empty preview pane.
func NewPreview() *Preview {
	vp := viewport.New()
	return &Preview{viewport: vp}
}

// SetSize updates the preview dimensions and re-renders the content.
func (m *Preview) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport = viewport.New(
		viewport.WithWidth(max(1, width)),
		viewport.WithHeight(max(1, height-previewChrome)),
	)
	m.render()
}

// SetRevision sets the revision to preview and scrolls to the top.
func (m *Preview) SetRevision(rev revision.Revision) {
	m.rev = rev
	m.render()
	m.viewport.GotoTop()
}

func (m *Preview) render() {
	content := m.rev.Content

	style := styles.GlamourStyle()
	noMargin := uint(0)
	style.Document.Margin = &noMargin

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(max(20, m.width)),
	)
	if err != nil {
		log.Debug().Err(err).Msg("failed to create markdown renderer, showing raw content")
		m.viewport.SetContent(content)
		return
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		log.Debug().Err(err).Msg("failed to render markdown, showing raw content")
		m.viewport.SetContent(content)
		return
	}

	m.viewport.SetContent(strings.TrimSpace(rendered))
}

// Update forwards scrolling input to the viewport.
func (m *Preview) Update(msg tea.Msg) {
	m.viewport, _ = m.viewport.Update(msg)
}

// View renders the preview with a title header.
func (m *Preview) View() string {
	title := m.rev.Title
	if title == "" {
		title = m.rev.ID
	}
	header := styles.TitleStyle.Render("Preview: " + title)
	sep := styles.MutedStyle.Render(strings.Repeat("─", max(1, m.width)))
	return lipgloss.JoinVertical(lipgloss.Left, header, sep, m.viewport.View())
}
