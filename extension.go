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

type extensionStatus uint8

const (
	extensionValid extensionStatus = iota
	extensionTooShort
	extensionNotLeftmost
	extensionNotReachingEnd
	extensionOverCutoff
)

var extensionStatusNames = []string{"valid", "too-short", "not-leftmost", "not-reaching-end", "over-cutoff"}

func (s extensionStatus) String() string {
	if int(s) < len(extensionStatusNames) {
		return extensionStatusNames[s]
	}
	return "unknown"
}

// Extension is the result of extending an anchor to both sides.
// Operations and traversed anchors are saved in the buffers of the workspace,
// and the ranges are half-open indexes of the buffers.
type Extension struct {
	Position AlignmentPosition
	Penalty  uint32
	Length   uint32
	Status   extensionStatus

	LeftOps        [2]uint32
	RightOps       [2]uint32 // in reversed order
	LeftTraversed  [2]uint32
	RightTraversed [2]uint32
}

// anchorGeometry returns the query and target ranges of an anchor.
func anchorGeometry(table AnchorTable, idx AnchorIndex, patternSize uint32) (anchorSize, qStart, tStart uint32) {
	anchor := &table[idx.Pattern][idx.Index]
	anchorSize = anchor.PatternCount * patternSize
	return anchorSize, idx.Pattern * patternSize, anchor.TargetPosition
}

// extendLocally extends an anchor to the best end points on both sides.
//
//  1. Extend the right side with the right spare penalty.
//  2. Extend the left side with the spare penalty left by the best right candidate.
//  3. Pick the optimal pair of end points.
//  4. Backtrace the left side, failing if another anchor is on the left.
//  5. Backtrace the right side, recording traversed anchors.
func (algn *Aligner) extendLocally(table AnchorTable, idx AnchorIndex, query, target []byte) Extension {
	ws := algn.ws
	reg := algn.reg
	p := &reg.penalties
	ps := reg.patternSize
	maxp := reg.cutoff.MaxScaledPenaltyPerLength

	anchorSize, qStart, tStart := anchorGeometry(table, idx, ps)
	qEnd, tEnd := qStart+anchorSize, tStart+anchorSize
	anchorDelta := int64(anchorSize) * int64(maxp)

	// right
	ws.right.alignRight(query[qEnd:], target[tEnd:], p, algn.spare.RightSparePenalty(idx.Pattern))
	ws.right.fillSortedVpcs(maxp, &ws.rightVpcs)

	// left
	leftSpare := algn.spare.LeftSparePenalty(ws.rightVpcs[0].ScaledPenaltyDelta+anchorDelta, idx.Pattern)
	ws.left.alignLeft(query[:qStart], target[:tStart], p, leftSpare)
	ws.left.fillSortedVpcs(maxp, &ws.leftVpcs)

	li, ri := optimalPosition(ws.leftVpcs, ws.rightVpcs, anchorDelta)
	lv, rv := ws.leftVpcs[li], ws.rightVpcs[ri]
	lc := ws.left.Scores[lv.Penalty].M[k2i(lv.K)]
	rc := ws.right.Scores[rv.Penalty].M[k2i(rv.K)]

	ext := Extension{
		Position: AlignmentPosition{
			Query:  [2]uint32{qStart - lc.FR(), qEnd + rc.FR()},
			Target: [2]uint32{uint32(int(tStart) - int(lc.FR()) - lv.K), uint32(int(tEnd) + int(rc.FR()) + rv.K)},
		},
		Penalty: lv.Penalty + rv.Penalty,
		Length:  lc.Length() + anchorSize + rc.Length(),
	}
	if ext.Length < reg.cutoff.MinLength {
		ext.Status = extensionTooShort
		return ext
	}

	start := uint32(len(ws.ops))
	crossedPattern, crossedTarget, leftmost := ws.left.backtraceLeftCheckingLeftmost(lv.Penalty, lv.K, p, ps, qStart, tStart, &ws.ops)
	if !leftmost {
		n := uint32(len(ws.traversed))
		ws.traversed = append(ws.traversed, TraversedAnchor{Index: table.resolve(crossedPattern, crossedTarget, ps)})
		ext.LeftTraversed = [2]uint32{n, n + 1}
		ext.Status = extensionNotLeftmost
		return ext
	}
	ext.LeftOps = [2]uint32{start, uint32(len(ws.ops))}

	algn.backtraceRight(table, &ext, rv.Penalty, rv.K, qEnd, tEnd)
	return ext
}

// extendSemiGlobally extends an anchor to the ends of the query or the target on both sides.
func (algn *Aligner) extendSemiGlobally(table AnchorTable, idx AnchorIndex, query, target []byte) Extension {
	ws := algn.ws
	reg := algn.reg
	p := &reg.penalties
	ps := reg.patternSize
	maxp := int64(reg.cutoff.MaxScaledPenaltyPerLength)

	anchorSize, qStart, tStart := anchorGeometry(table, idx, ps)
	qEnd, tEnd := qStart+anchorSize, tStart+anchorSize

	var ext Extension

	ws.right.alignRight(query[qEnd:], target[tEnd:], p, algn.spare.RightSparePenalty(idx.Pattern))
	if !ws.right.EndPoint.ReachedEnd {
		ext.Status = extensionNotReachingEnd
		return ext
	}
	rc, rs, rk := ws.right.endComponent(), ws.right.EndPoint.Score, ws.right.EndPoint.K
	rightDelta := maxp*int64(rc.Length()) - PrecScale*int64(rs)

	leftSpare := algn.spare.LeftSparePenalty(rightDelta+int64(anchorSize)*maxp, idx.Pattern)
	ws.left.alignLeft(query[:qStart], target[:tStart], p, leftSpare)
	if !ws.left.EndPoint.ReachedEnd {
		ext.Status = extensionNotReachingEnd
		return ext
	}
	lc, ls, lk := ws.left.endComponent(), ws.left.EndPoint.Score, ws.left.EndPoint.K

	ext.Position = AlignmentPosition{
		Query:  [2]uint32{qStart - lc.FR(), qEnd + rc.FR()},
		Target: [2]uint32{uint32(int(tStart) - int(lc.FR()) - lk), uint32(int(tEnd) + int(rc.FR()) + rk)},
	}
	ext.Penalty = ls + rs
	ext.Length = lc.Length() + anchorSize + rc.Length()
	if ext.Length < reg.cutoff.MinLength {
		ext.Status = extensionTooShort
		return ext
	}
	if int64(ext.Penalty)*PrecScale > maxp*int64(ext.Length) {
		ext.Status = extensionOverCutoff
		return ext
	}

	start := uint32(len(ws.ops))
	ws.left.backtraceLeft(ls, lk, p, &ws.ops)
	ext.LeftOps = [2]uint32{start, uint32(len(ws.ops))}

	algn.backtraceRight(table, &ext, rs, rk, qEnd, tEnd)
	return ext
}

func (algn *Aligner) backtraceRight(table AnchorTable, ext *Extension, s uint32, k int, qEnd, tEnd uint32) {
	ws := algn.ws
	ps := algn.reg.patternSize

	start := uint32(len(ws.ops))
	traversedStart := len(ws.traversed)
	ws.right.backtraceRightCheckingTraversed(s, k, &algn.reg.penalties, ps, qEnd, tEnd, &ws.ops, &ws.traversed)
	resolveTraversedAnchors(table, &ws.traversed, traversedStart, ps)

	ext.RightOps = [2]uint32{start, uint32(len(ws.ops))}
	ext.RightTraversed = [2]uint32{uint32(traversedStart), uint32(len(ws.traversed))}
}

// extensionOf returns the index of the extension of an anchor,
// computing it only once. The extension buffer might grow,
// so callers should hold the index rather than a pointer.
func (algn *Aligner) extensionOf(table AnchorTable, idx AnchorIndex, query, target []byte,
	extend func(AnchorTable, AnchorIndex, []byte, []byte) Extension) uint32 {
	anchor := &table[idx.Pattern][idx.Index]
	if anchor.Extended {
		return anchor.ExtensionIndex
	}
	ext := extend(table, idx, query, target)

	ws := algn.ws
	i := uint32(len(ws.extensions))
	ws.extensions = append(ws.extensions, ext)
	anchor = &table[idx.Pattern][idx.Index]
	anchor.Extended = true
	anchor.ExtensionIndex = i
	return i
}

func (ws *workspace) leftTraversed(ext *Extension) []TraversedAnchor {
	return ws.traversed[ext.LeftTraversed[0]:ext.LeftTraversed[1]]
}

func (ws *workspace) rightTraversed(ext *Extension) []TraversedAnchor {
	return ws.traversed[ext.RightTraversed[0]:ext.RightTraversed[1]]
}
