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
	"cmp"
	"slices"
)

// Anchor is an exact hit of one or more consecutive query patterns in a target.
type Anchor struct {
	TargetPosition uint32
	PatternCount   uint32

	Extended       bool   // if the extension is computed
	ExtensionIndex uint32 // index in the extension buffer
	Skipped        bool   // if it is represented by another anchor
}

// AnchorIndex locates an anchor in an AnchorTable.
type AnchorIndex struct {
	Pattern uint32
	Index   uint32
}

func compareAnchorIndex(a, b AnchorIndex) int {
	if c := cmp.Compare(a.Pattern, b.Pattern); c != 0 {
		return c
	}
	return cmp.Compare(a.Index, b.Index)
}

// AnchorTable holds anchors of one target indexed by the query pattern index.
// Anchors of a pattern are sorted by target position.
type AnchorTable [][]Anchor

// anchorTables holds AnchorTables of all targets hit by a query.
type anchorTables struct {
	targets []uint32 // sorted
	tables  map[uint32]AnchorTable
}

// buildAnchorTables locates all patterns of the query and groups the hits by target.
func buildAnchorTables(query []byte, patternSize uint32, ref *Reference, tables *anchorTables) {
	clear(tables.tables)
	tables.targets = tables.targets[:0]

	patternCount := uint32(len(query)) / patternSize
	var start uint32
	for p := uint32(0); p < patternCount; p++ {
		start = p * patternSize
		for _, loc := range ref.locate(query[start : start+patternSize]) {
			if len(loc.Positions) == 0 {
				continue
			}
			table, ok := tables.tables[loc.Target]
			if !ok {
				table = make(AnchorTable, patternCount)
				tables.tables[loc.Target] = table
				tables.targets = append(tables.targets, loc.Target)
			}
			anchors := make([]Anchor, len(loc.Positions))
			for i, pos := range loc.Positions {
				anchors[i] = Anchor{TargetPosition: pos, PatternCount: 1}
			}
			table[p] = anchors
		}
	}
	slices.Sort(tables.targets)

	for _, table := range tables.tables {
		table.mergeUngappedAnchors(patternSize)
	}
}

// mergeUngappedAnchors merges anchors of consecutive patterns which are also
// consecutive in the target. Tables are processed from the last pattern,
// so one anchor absorbs the whole chain.
func (table AnchorTable) mergeUngappedAnchors(patternSize uint32) {
	var left, right []Anchor
	var i, j int
	var merged bool
	for p := len(table) - 2; p >= 0; p-- {
		left, right = table[p], table[p+1]
		if len(left) == 0 || len(right) == 0 {
			continue
		}

		merged = false
		i, j = 0, 0
		for i < len(left) && j < len(right) {
			switch next := left[i].TargetPosition + patternSize; {
			case next == right[j].TargetPosition:
				left[i].PatternCount += right[j].PatternCount
				right[j].PatternCount = 0
				merged = true
				i++
				j++
			case next < right[j].TargetPosition:
				i++
			default:
				j++
			}
		}

		if merged {
			table[p+1] = slices.DeleteFunc(right, func(a Anchor) bool { return a.PatternCount == 0 })
		}
	}
}

// find returns the index of the anchor of pattern p at the target position.
func (table AnchorTable) find(p, targetPosition uint32) (int, bool) {
	return slices.BinarySearchFunc(table[p], targetPosition, func(a Anchor, t uint32) int {
		return cmp.Compare(a.TargetPosition, t)
	})
}

// resolve finds the anchor covering pattern p at the target position.
// If the anchor was merged into the anchor of a previous pattern, it walks back.
// It panics if no anchor is found, which means the table is broken.
func (table AnchorTable) resolve(p, targetPosition, patternSize uint32) AnchorIndex {
	pattern, t := p, targetPosition
	for {
		if i, ok := table.find(pattern, t); ok {
			if pattern+table[pattern][i].PatternCount <= p {
				break
			}
			return AnchorIndex{Pattern: pattern, Index: uint32(i)}
		}
		if pattern == 0 || t < patternSize {
			break
		}
		pattern--
		t -= patternSize
	}
	panic("sigalign: traversed anchor not found in the anchor table")
}

// count returns the number of anchors.
func (table AnchorTable) count() int {
	var n int
	for _, anchors := range table {
		n += len(anchors)
	}
	return n
}
