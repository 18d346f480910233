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

// matchRunVisitor is called for every run of matches met in a backtrace.
// The run covers the local query range [qa, qb) on diagonal k, at score s,
// with the given number of deletions before it. Returning false stops the backtrace.
type matchRunVisitor func(qa, qb uint32, k int, s uint32, deletions uint32) bool

// backtrace walks from the M component (s, k) back to the start point and
// appends operations to ops, the far end first. Adjacent operations of the
// same type are merged, but never with operations before index start.
// It returns false if the visitor stopped it.
func (wf *WaveFront) backtrace(s uint32, k int, p *Penalties, ops *[]AlignmentOperations, visit matchRunVisitor) bool {
	const (
		inM = iota
		inI
		inD
	)
	start := len(*ops)
	oe := p.GapOpen + p.GapExt

	state := inM
	c := wf.Scores[s].M[k2i(k)]
	fr := c.FR()
	var pre Component
	for {
		switch state {
		case inM:
			switch c.Marker() {
			case markerStart:
				if fr > 0 && !visit(0, fr, k, s, c.Deletions) {
					return false
				}
				pushOperation(ops, start, MatchOperation, fr)
				return true
			case markerFromM:
				pre = wf.Scores[s-p.Mismatch].M[k2i(k)]
				if fr > pre.FR()+1 && !visit(pre.FR()+1, fr, k, s, c.Deletions) {
					return false
				}
				pushOperation(ops, start, MatchOperation, fr-pre.FR()-1)
				pushOperation(ops, start, SubstOperation, 1)
				s -= p.Mismatch
			case markerFromI:
				pre = wf.Scores[s].I[k2i(k)]
				if fr > pre.FR() && !visit(pre.FR(), fr, k, s, c.Deletions) {
					return false
				}
				pushOperation(ops, start, MatchOperation, fr-pre.FR())
				state = inI
			case markerFromD:
				pre = wf.Scores[s].D[k2i(k)]
				if fr > pre.FR() && !visit(pre.FR(), fr, k, s, c.Deletions) {
					return false
				}
				pushOperation(ops, start, MatchOperation, fr-pre.FR())
				state = inD
			default:
				panic("sigalign: backtrace reached an empty component")
			}
		case inI:
			pushOperation(ops, start, InsertionOperation, 1)
			k++
			if c.Marker() == markerFromM {
				s -= oe
				pre = wf.Scores[s].M[k2i(k)]
				state = inM
			} else {
				s -= p.GapExt
				pre = wf.Scores[s].I[k2i(k)]
			}
		case inD:
			pushOperation(ops, start, DeletionOperation, 1)
			k--
			if c.Marker() == markerFromM {
				s -= oe
				pre = wf.Scores[s].M[k2i(k)]
				state = inM
			} else {
				s -= p.GapExt
				pre = wf.Scores[s].D[k2i(k)]
			}
		}
		c = pre
		fr = c.FR()
	}
}

func pushOperation(ops *[]AlignmentOperations, start int, op AlignmentOperation, n uint32) {
	if n == 0 {
		return
	}
	if l := len(*ops); l > start && (*ops)[l-1].Operation == op {
		(*ops)[l-1].Count += n
		return
	}
	*ops = append(*ops, AlignmentOperations{Operation: op, Count: n})
}

// firstFullPattern returns the first pattern fully covered by the query range [ga, gb).
func firstFullPattern(ga, gb, patternSize uint32) (uint32, bool) {
	p := (ga + patternSize - 1) / patternSize
	return p, (p+1)*patternSize <= gb
}

// backtraceLeftCheckingLeftmost backtraces the left side of an anchor whose query
// and target starts are qBase and tBase. It stops as soon as a run of matches
// covers a whole pattern, i.e., another anchor lies on the left of this one,
// removes the operations it appended, and returns the pattern index and target
// position of the crossed pattern with leftmost false.
func (wf *WaveFront) backtraceLeftCheckingLeftmost(s uint32, k int, p *Penalties, patternSize, qBase, tBase uint32,
	ops *[]AlignmentOperations) (crossedPattern, crossedTarget uint32, leftmost bool) {
	start := len(*ops)

	leftmost = wf.backtrace(s, k, p, ops, func(qa, qb uint32, k int, _ uint32, _ uint32) bool {
		ga, gb := qBase-qb, qBase-qa
		pi, ok := firstFullPattern(ga, gb, patternSize)
		if !ok {
			return true
		}
		gta := uint32(int(tBase) - int(qb) - k)
		crossedPattern, crossedTarget = pi, gta+pi*patternSize-ga
		return false
	})
	if !leftmost {
		*ops = (*ops)[:start]
	}
	return
}

// backtraceLeft backtraces the left side without any check.
func (wf *WaveFront) backtraceLeft(s uint32, k int, p *Penalties, ops *[]AlignmentOperations) {
	wf.backtrace(s, k, p, ops, func(_, _ uint32, _ int, _ uint32, _ uint32) bool { return true })
}

// backtraceRightCheckingTraversed backtraces the right side of an anchor whose
// query and target ends are qBase and tBase. For every run of matches covering
// a whole pattern, it appends the pattern index and the target position of the
// first covered pattern to traversed. They have to be resolved to anchor
// indexes with resolveTraversedAnchors.
func (wf *WaveFront) backtraceRightCheckingTraversed(s uint32, k int, p *Penalties, patternSize, qBase, tBase uint32,
	ops *[]AlignmentOperations, traversed *[]TraversedAnchor) {
	end := wf.Scores[s].M[k2i(k)]
	endLength, endScore := end.Length(), s

	wf.backtrace(s, k, p, ops, func(qa, qb uint32, k int, s uint32, deletions uint32) bool {
		ga, gb := qBase+qa, qBase+qb
		pi, ok := firstFullPattern(ga, gb, patternSize)
		if !ok {
			return true
		}
		gta := uint32(int(tBase) + int(qa) + k)
		*traversed = append(*traversed, TraversedAnchor{
			Index:            AnchorIndex{Pattern: pi, Index: gta + pi*patternSize - ga},
			RemainingLength:  endLength - (pi*patternSize - qBase + deletions),
			RemainingPenalty: endScore - s,
		})
		return true
	})
}
