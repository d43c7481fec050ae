package revision

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareIdenticalRevisions(t *testing.T) {
	rev := Revision{Title: "Hello", Content: "The same body."}

	d := Compare(rev, rev)

	require.Len(t, d.Title, 1)
	assert.Equal(t, OpCopy, d.Title[0].Kind)
	require.Len(t, d.Content, 1)
	assert.Equal(t, OpCopy, d.Content[0].Kind)

	adds, dels := d.Stats()
	assert.Zero(t, adds)
	assert.Zero(t, dels)
}

func TestCompareEmptyRevisions(t *testing.T) {
	d := Compare(Revision{}, Revision{})

	assert.Empty(t, d.Title)
	assert.Empty(t, d.Content)
}

func TestCompareDetectsAdditionAndDeletion(t *testing.T) {
	prev := Revision{Content: "the quick brown fox"}
	next := Revision{Content: "the slow brown fox jumps"}

	d := Compare(prev, next)

	var added, deleted strings.Builder
	for _, op := range d.Content {
		switch op.Kind {
		case OpAdd:
			added.WriteString(op.Value)
		case OpDel:
			deleted.WriteString(op.Value)
		}
	}

	assert.Contains(t, added.String(), "slow")
	assert.Contains(t, added.String(), "jumps")
	assert.Contains(t, deleted.String(), "quick")
}

func TestCompareRoundTripsContent(t *testing.T) {
	prev := Revision{Content: "alpha beta gamma"}
	next := Revision{Content: "alpha delta gamma epsilon"}

	d := Compare(prev, next)

	// Copy+del ops reproduce the old content, copy+add ops the new.
	var oldSide, newSide strings.Builder
	for _, op := range d.Content {
		if op.Kind != OpAdd {
			oldSide.WriteString(op.Value)
		}
		if op.Kind != OpDel {
			newSide.WriteString(op.Value)
		}
	}

	assert.Equal(t, prev.Content, oldSide.String())
	assert.Equal(t, next.Content, newSide.String())
}

func TestCompareToEmptyIsPureAddition(t *testing.T) {
	d := Compare(Revision{}, Revision{Title: "New", Content: "Fresh body"})

	require.Len(t, d.Title, 1)
	assert.Equal(t, Op{Kind: OpAdd, Value: "New"}, d.Title[0])
	require.Len(t, d.Content, 1)
	assert.Equal(t, Op{Kind: OpAdd, Value: "Fresh body"}, d.Content[0])
}

func TestOpChanged(t *testing.T) {
	assert.True(t, Op{Kind: OpAdd}.Changed())
	assert.True(t, Op{Kind: OpDel}.Changed())
	assert.False(t, Op{Kind: OpCopy}.Changed())
}

func TestStatsCountsBothStreams(t *testing.T) {
	d := Diff{
		Title:   []Op{{Kind: OpAdd, Value: "x"}, {Kind: OpCopy, Value: "y"}},
		Content: []Op{{Kind: OpDel, Value: "z"}, {Kind: OpAdd, Value: "w"}},
	}

	adds, dels := d.Stats()
	assert.Equal(t, 2, adds)
	assert.Equal(t, 1, dels)
}
