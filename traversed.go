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

import "slices"

// TraversedAnchor is an anchor whose patterns are fully matched
// by the backtrace of another anchor's extension.
type TraversedAnchor struct {
	Index AnchorIndex
	// length and penalty from the traversed anchor to the end of the extension
	RemainingLength  uint32
	RemainingPenalty uint32
}

// resolveTraversedAnchors converts the pattern indexes and target positions
// recorded by backtraceRightCheckingTraversed in traversed[start:] to anchor indexes,
// then sorts them and removes duplicates.
func resolveTraversedAnchors(table AnchorTable, traversed *[]TraversedAnchor, start int, patternSize uint32) {
	list := (*traversed)[start:]
	if len(list) == 0 {
		return
	}
	for i := range list {
		list[i].Index = table.resolve(list[i].Index.Pattern, list[i].Index.Index, patternSize)
	}

	// recorded from the end of the extension to the anchor
	slices.Reverse(list)
	if !slices.IsSortedFunc(list, compareTraversedAnchor) {
		slices.SortStableFunc(list, compareTraversedAnchor)
	}
	list = slices.CompactFunc(list, func(a, b TraversedAnchor) bool { return a.Index == b.Index })
	*traversed = (*traversed)[:start+len(list)]
}

func compareTraversedAnchor(a, b TraversedAnchor) int {
	return compareAnchorIndex(a.Index, b.Index)
}

// traversedAnchorsIntersect tells if the sorted lists a and b share an anchor.
func traversedAnchorsIntersect(a, b []TraversedAnchor) bool {
	var i, j int
	for i < len(a) && j < len(b) {
		switch c := compareAnchorIndex(a[i].Index, b[j].Index); {
		case c == 0:
			return true
		case c < 0:
			i++
		default:
			j++
		}
	}
	return false
}

// markTraversedAnchorsAsSkipped marks the traversed anchor as skipped if the left
// side of its extension meets the current anchor or another anchor traversed by
// the current extension, i.e., both extensions follow the same path.
func markTraversedAnchorsAsSkipped(table AnchorTable, current AnchorIndex, rightTraversed []TraversedAnchor,
	traversed AnchorIndex, leftTraversedOfTraversed []TraversedAnchor) {
	if len(leftTraversedOfTraversed) == 0 {
		return
	}
	for _, t := range leftTraversedOfTraversed {
		if t.Index == current {
			table[traversed.Pattern][traversed.Index].Skipped = true
			return
		}
	}
	if traversedAnchorsIntersect(rightTraversed, leftTraversedOfTraversed) {
		table[traversed.Pattern][traversed.Index].Skipped = true
	}
}
