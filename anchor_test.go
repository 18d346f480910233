// Copyright © 2024 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package sigalign

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnchors(positions ...uint32) []Anchor {
	anchors := make([]Anchor, len(positions))
	for i, p := range positions {
		anchors[i] = Anchor{TargetPosition: p, PatternCount: 1}
	}
	return anchors
}

func TestMergeUngappedAnchors(t *testing.T) {
	table := AnchorTable{
		newTestAnchors(0, 4),
		newTestAnchors(3),
		newTestAnchors(2),
	}
	table.mergeUngappedAnchors(3)

	assert.Equal(t, []Anchor{{TargetPosition: 0, PatternCount: 2}, {TargetPosition: 4, PatternCount: 1}}, table[0])
	assert.Empty(t, table[1])
	assert.Equal(t, []Anchor{{TargetPosition: 2, PatternCount: 1}}, table[2])
	assert.Equal(t, 3, table.count())

	// a chain is absorbed by its first anchor
	table = AnchorTable{
		newTestAnchors(0, 10),
		newTestAnchors(3, 20),
		newTestAnchors(6),
	}
	table.mergeUngappedAnchors(3)
	assert.Equal(t, []Anchor{{TargetPosition: 0, PatternCount: 3}, {TargetPosition: 10, PatternCount: 1}}, table[0])
	assert.Equal(t, []Anchor{{TargetPosition: 20, PatternCount: 1}}, table[1])
	assert.Empty(t, table[2])
}

func TestResolveAnchor(t *testing.T) {
	table := AnchorTable{
		newTestAnchors(0, 10),
		newTestAnchors(3, 20),
		newTestAnchors(6),
	}
	table.mergeUngappedAnchors(3)

	assert.Equal(t, AnchorIndex{Pattern: 0, Index: 0}, table.resolve(2, 6, 3))
	assert.Equal(t, AnchorIndex{Pattern: 0, Index: 0}, table.resolve(1, 3, 3))
	assert.Equal(t, AnchorIndex{Pattern: 0, Index: 1}, table.resolve(0, 10, 3))
	assert.Equal(t, AnchorIndex{Pattern: 1, Index: 0}, table.resolve(1, 20, 3))

	// pattern 1 is not at 13, and the anchor at 10 does not cover it
	assert.Panics(t, func() { table.resolve(1, 13, 3) })
	assert.Panics(t, func() { table.resolve(2, 100, 3) })
}

func TestBuildAnchorTables(t *testing.T) {
	storage := NewInMemoryStorage()
	storage.Add("t0", []byte("ACGTACGTTT"))
	storage.Add("t1", []byte("GGGGGGGGGG"))
	storage.Add("t2", []byte("TTTACGTACG"))
	ref, err := NewReference(storage, NewScanLocator(storage))
	require.NoError(t, err)

	tables := anchorTables{tables: make(map[uint32]AnchorTable)}
	buildAnchorTables([]byte("ACGTACGTAA"), 3, ref, &tables)

	require.Equal(t, []uint32{0, 2}, tables.targets)

	table := tables.tables[0]
	require.Len(t, table, 3)
	assert.Equal(t, []Anchor{{TargetPosition: 0, PatternCount: 2}, {TargetPosition: 4, PatternCount: 1}}, table[0])
	assert.Empty(t, table[1])
	assert.Equal(t, []Anchor{{TargetPosition: 2, PatternCount: 1}}, table[2])

	// reused
	buildAnchorTables([]byte("GGGGGG"), 3, ref, &tables)
	assert.Equal(t, []uint32{1}, tables.targets)
	assert.Len(t, tables.tables, 1)
}

func TestTraversedAnchors(t *testing.T) {
	table := AnchorTable{
		newTestAnchors(0, 10),
		newTestAnchors(3, 20),
		newTestAnchors(6, 30),
	}
	table.mergeUngappedAnchors(3)

	traversed := []TraversedAnchor{{Index: AnchorIndex{Pattern: 9, Index: 9}}}
	traversed = append(traversed,
		TraversedAnchor{Index: AnchorIndex{Pattern: 2, Index: 30}},
		TraversedAnchor{Index: AnchorIndex{Pattern: 2, Index: 6}},
		TraversedAnchor{Index: AnchorIndex{Pattern: 1, Index: 3}},
	)
	resolveTraversedAnchors(table, &traversed, 1, 3)
	assert.Equal(t, []TraversedAnchor{
		{Index: AnchorIndex{Pattern: 9, Index: 9}},
		{Index: AnchorIndex{Pattern: 0, Index: 0}},
		{Index: AnchorIndex{Pattern: 2, Index: 0}},
	}, traversed)

	a := traversed[1:]
	b := []TraversedAnchor{{Index: AnchorIndex{Pattern: 1, Index: 0}}, {Index: AnchorIndex{Pattern: 2, Index: 0}}}
	assert.True(t, traversedAnchorsIntersect(a, b))
	assert.False(t, traversedAnchorsIntersect(a, b[:1]))
	assert.False(t, traversedAnchorsIntersect(nil, b))
}

func TestMarkTraversedAnchorsAsSkipped(t *testing.T) {
	table := AnchorTable{
		newTestAnchors(0),
		newTestAnchors(10),
		newTestAnchors(20),
	}
	current := AnchorIndex{Pattern: 0, Index: 0}
	traversed := AnchorIndex{Pattern: 2, Index: 0}
	right := []TraversedAnchor{{Index: AnchorIndex{Pattern: 1, Index: 0}}, {Index: traversed}}

	// the left side of the traversed anchor is leftmost
	markTraversedAnchorsAsSkipped(table, current, right, traversed, nil)
	assert.False(t, table[2][0].Skipped)

	// it meets another anchor not on the path
	markTraversedAnchorsAsSkipped(table, current, right, traversed,
		[]TraversedAnchor{{Index: AnchorIndex{Pattern: 0, Index: 5}}})
	assert.False(t, table[2][0].Skipped)

	// it meets the current anchor
	markTraversedAnchorsAsSkipped(table, current, right, traversed, []TraversedAnchor{{Index: current}})
	assert.True(t, table[2][0].Skipped)

	// it meets an anchor on the path
	table[2][0].Skipped = false
	markTraversedAnchorsAsSkipped(table, current, right, traversed,
		[]TraversedAnchor{{Index: AnchorIndex{Pattern: 1, Index: 0}}})
	assert.True(t, table[2][0].Skipped)
}
