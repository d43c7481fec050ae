// Package revision models a post's revision history: snapshots of the
// post at points in time and the word-level diffs between them.
package revision

import "time"

// Revision is one snapshot of a post.
type Revision struct {
	ID      string    `yaml:"id"`
	Title   string    `yaml:"title"`
	Author  string    `yaml:"author"`
	Date    time.Time `yaml:"date"`
	Content string    `yaml:"content"`
}

// OpKind classifies a diff operation.
type OpKind int

const (
	// OpCopy is text unchanged between revisions.
	OpCopy OpKind = iota
	// OpAdd is text present only in the newer revision.
	OpAdd
	// OpDel is text present only in the older revision.
	OpDel
)

// Op is a single diff operation.
type Op struct {
	Kind  OpKind
	Value string
}

// Changed reports whether the op is an addition or deletion.
func (o Op) Changed() bool {
	return o.Kind != OpCopy
}

// Diff is the rendered comparison between a revision and its
// predecessor: separate op streams for the title and the content.
type Diff struct {
	Title   []Op
	Content []Op
}

// Stats counts added and deleted ops across both streams. An op can span
// several words; semantic cleanup merges adjacent runs.
func (d Diff) Stats() (additions, deletions int) {
	for _, ops := range [][]Op{d.Title, d.Content} {
		for _, op := range ops {
			switch op.Kind {
			case OpAdd:
				additions++
			case OpDel:
				deletions++
			}
		}
	}
	return additions, deletions
}
