package tui

import (
	"strings"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/talldan/revdiff/internal/core/navigate"
	"github.com/talldan/revdiff/internal/core/revision"
)

// segment is a styled run of text within a rendered row.
type segment struct {
	text string
	kind revision.OpKind
}

// layoutRow is a single wrapped display row of the diff.
type layoutRow struct {
	segments []segment
}

// diffLayout is the result of flowing a diff into display rows. Each
// changed op maps to the span of rows it occupies, which is what change
// navigation measures against.
type diffLayout struct {
	rows    []layoutRow
	regions []navigate.Rect
}

// layoutDiff flows the diff's title and content ops into rows wrapped
// at the given width and records the row span of every changed op.
func layoutDiff(d revision.Diff, width int) diffLayout {
	if width < 1 {
		width = 1
	}

	b := &layoutBuilder{width: width}

	ops := make([]revision.Op, 0, len(d.Title)+len(d.Content))
	ops = append(ops, d.Title...)
	titleCount := len(ops)
	ops = append(ops, d.Content...)

	first := make([]int, len(ops))
	last := make([]int, len(ops))
	for i := range first {
		first[i] = -1
	}

	touch := func(idx, row int) {
		if first[idx] == -1 {
			first[idx] = row
		}
		last[idx] = row
	}

	for i, op := range ops {
		if i == titleCount && titleCount > 0 {
			// Blank separator between title and content.
			b.breakRow()
			b.breakRow()
		}
		b.flowOp(op, i, touch)
	}
	b.flush()

	regions := make([]navigate.Rect, 0)
	for i, op := range ops {
		if !op.Changed() || first[i] == -1 {
			continue
		}
		regions = append(regions, navigate.Rect{
			Top:    float64(first[i]),
			Height: float64(last[i] - first[i] + 1),
		})
	}

	return diffLayout{rows: b.rows, regions: regions}
}

// layoutBuilder accumulates wrapped rows.
type layoutBuilder struct {
	width    int
	rows     []layoutRow
	cur      []segment
	curWidth int
}

// row returns the index of the row currently being built.
func (b *layoutBuilder) row() int {
	return len(b.rows)
}

func (b *layoutBuilder) breakRow() {
	b.rows = append(b.rows, layoutRow{segments: b.cur})
	b.cur = nil
	b.curWidth = 0
}

func (b *layoutBuilder) flush() {
	if len(b.cur) > 0 {
		b.breakRow()
	}
}

// flowOp wraps a single op's text into the row stream. Newlines inside
// the op value are hard breaks; everything else wraps on spaces.
func (b *layoutBuilder) flowOp(op revision.Op, idx int, touch func(idx, row int)) {
	lines := strings.Split(op.Value, "\n")
	for li, line := range lines {
		if li > 0 {
			touch(idx, b.row())
			b.breakRow()
		}
		b.flowText(line, op.Kind, idx, touch)
	}
}

func (b *layoutBuilder) flowText(text string, kind revision.OpKind, idx int, touch func(idx, row int)) {
	if text == "" {
		return
	}
	for _, tok := range tokenize(text) {
		w := lipgloss.Width(tok)
		if tok[0] == ' ' {
			// A space run at the start of a row is dropped at the wrap
			// point, like a browser would.
			if b.curWidth == 0 {
				continue
			}
			if b.curWidth+w > b.width {
				b.breakRow()
				continue
			}
			b.appendSegment(tok, kind)
			touch(idx, b.row())
			continue
		}

		if b.curWidth > 0 && b.curWidth+w > b.width {
			b.breakRow()
		}
		// A word wider than the pane gets hard-chunked.
		for lipgloss.Width(tok) > b.width {
			chunk, rest := splitWidth(tok, b.width-b.curWidth)
			if chunk == "" {
				b.breakRow()
				continue
			}
			b.appendSegment(chunk, kind)
			touch(idx, b.row())
			b.breakRow()
			tok = rest
		}
		if tok != "" {
			b.appendSegment(tok, kind)
			touch(idx, b.row())
		}
	}
}

func (b *layoutBuilder) appendSegment(text string, kind revision.OpKind) {
	n := len(b.cur)
	if n > 0 && b.cur[n-1].kind == kind {
		b.cur[n-1].text += text
	} else {
		b.cur = append(b.cur, segment{text: text, kind: kind})
	}
	b.curWidth += lipgloss.Width(text)
}

// tokenize splits text into alternating word and space runs.
func tokenize(text string) []string {
	var toks []string
	start := 0
	inSpace := text[0] == ' '
	for i := 0; i < len(text); i++ {
		isSpace := text[i] == ' '
		if isSpace != inSpace {
			toks = append(toks, text[start:i])
			start = i
			inSpace = isSpace
		}
	}
	toks = append(toks, text[start:])
	return toks
}

// splitWidth splits s so the head fits in the given display width.
func splitWidth(s string, width int) (head, rest string) {
	if width < 1 {
		return "", s
	}
	w := 0
	for i, r := range s {
		rw := lipgloss.Width(string(r))
		if w+rw > width {
			return s[:i], s[i:]
		}
		w += rw
	}
	return s, ""
}
