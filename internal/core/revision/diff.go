package revision

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Compare computes the diff of next against prev. The op streams are
// semantically cleaned so changes align with word and phrase boundaries
// rather than minimal character edits.
func Compare(prev, next Revision) Diff {
	return Diff{
		Title:   diffText(prev.Title, next.Title),
		Content: diffText(prev.Content, next.Content),
	}
}

// diffText diffs two strings into ops. Identical inputs produce a single
// copy op; two empty strings produce no ops at all.
func diffText(oldText, newText string) []Op {
	if oldText == "" && newText == "" {
		return nil
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldText, newText, true)
	diffs = dmp.DiffCleanupSemantic(diffs)

	ops := make([]Op, 0, len(diffs))
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			ops = append(ops, Op{Kind: OpAdd, Value: d.Text})
		case diffmatchpatch.DiffDelete:
			ops = append(ops, Op{Kind: OpDel, Value: d.Text})
		case diffmatchpatch.DiffEqual:
			ops = append(ops, Op{Kind: OpCopy, Value: d.Text})
		}
	}
	return ops
}
