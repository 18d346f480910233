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

// deduplicate removes alignments sharing any matched or substituted
// (query, target) cell with a longer alignment. Alignments are sorted by
// query length descending, then by query start ascending, and an alignment
// is kept only if its path is disjoint from all kept ones.
//
// paths is a reusable set, and it is cleared before use.
func deduplicate(alignments []Alignment, paths map[uint64]struct{}) []Alignment {
	if len(alignments) < 2 {
		return alignments
	}
	clear(paths)

	slices.SortStableFunc(alignments, func(a, b Alignment) int {
		la, lb := a.Position.Query[1]-a.Position.Query[0], b.Position.Query[1]-b.Position.Query[0]
		if c := cmp.Compare(lb, la); c != 0 {
			return c
		}
		return cmp.Compare(a.Position.Query[0], b.Position.Query[0])
	})

	kept := alignments[:0]
	for _, a := range alignments {
		if pathOverlaps(&a, paths) {
			continue
		}
		addPath(&a, paths)
		kept = append(kept, a)
	}
	clear(alignments[len(kept):])
	return kept
}

func pathKey(q, t uint32) uint64 {
	return uint64(q)<<32 | uint64(t)
}

// walkPath calls f for every matched or substituted cell of the alignment,
// and stops when f returns false.
func walkPath(a *Alignment, f func(key uint64) bool) {
	q, t := a.Position.Query[0], a.Position.Target[0]
	var i uint32
	for _, op := range a.Operations {
		switch op.Operation {
		case MatchOperation, SubstOperation:
			for i = 0; i < op.Count; i++ {
				if !f(pathKey(q+i, t+i)) {
					return
				}
			}
			q += op.Count
			t += op.Count
		case InsertionOperation:
			q += op.Count
		case DeletionOperation:
			t += op.Count
		}
	}
}

func pathOverlaps(a *Alignment, paths map[uint64]struct{}) bool {
	var found bool
	walkPath(a, func(key uint64) bool {
		_, found = paths[key]
		return !found
	})
	return found
}

func addPath(a *Alignment, paths map[uint64]struct{}) {
	walkPath(a, func(key uint64) bool {
		paths[key] = struct{}{}
		return true
	})
}
