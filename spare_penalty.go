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

// SparePenaltyCalculator computes the maximum penalty an extension can spend
// on one side of an anchor while the whole alignment can still satisfy the cutoff,
// assuming the part of the query before the anchor is free of penalty.
//
// Usage rules, it favors speed over checks:
//  1. Create it once per Regulator.
//  2. Call PrecalculateRightSparePenalty when the maximum query length increases.
//  3. Call ChangeLastPatternIndex for every new query.
type SparePenaltyCalculator struct {
	right            []uint32 // indexed by the reversed pattern index
	lastPatternIndex uint32

	// right: f(x) = (a*x + b) / c, x = last pattern index - pattern index
	a, b, c int64
	// left: g(y, z) = (d*y + e*z - f) / c, y = scaled penalty delta of the right side, z = pattern index
	d, e, f int64

	minPenalty uint32
}

func newSparePenaltyCalculator(p *Penalties, maxScaledPenaltyPerLength, patternSize, maxPatternCount uint32) *SparePenaltyCalculator {
	maxp := int64(maxScaledPenaltyPerLength)
	o, e := int64(p.GapOpen), int64(p.GapExt)
	ps := int64(patternSize)

	spc := &SparePenaltyCalculator{
		right: make([]uint32, 0, maxPatternCount),

		a: maxp * e * ps,
		b: maxp * (e*(3*ps-2) - o),
		c: e*PrecScale - maxp,

		d: e,
		e: maxp * e * ps,
		f: maxp * o,

		minPenalty: p.GapOpen,
	}
	spc.PrecalculateRightSparePenalty(maxPatternCount)
	return spc
}

// PrecalculateRightSparePenalty extends the table of right spare penalties
// to cover queries with maxPatternCount patterns. The table never shrinks.
func (spc *SparePenaltyCalculator) PrecalculateRightSparePenalty(maxPatternCount uint32) {
	var v int64
	for x := int64(len(spc.right)); x < int64(maxPatternCount); x++ {
		v = (spc.a*x + spc.b) / spc.c
		spc.right = append(spc.right, uint32(max(v, int64(spc.minPenalty))))
	}
}

// ChangeLastPatternIndex sets the index of the last pattern of the current query.
func (spc *SparePenaltyCalculator) ChangeLastPatternIndex(lastPatternIndex uint32) {
	spc.lastPatternIndex = lastPatternIndex
}

// RightSparePenalty returns the spare penalty of the right side of an anchor
// starting at the pattern.
func (spc *SparePenaltyCalculator) RightSparePenalty(patternIndex uint32) uint32 {
	return spc.right[spc.lastPatternIndex-patternIndex]
}

// LeftSparePenalty returns the spare penalty of the left side of an anchor
// starting at the pattern, given the largest scaled penalty delta the right
// side plus the anchor can contribute.
func (spc *SparePenaltyCalculator) LeftSparePenalty(maxScaledPenaltyDeltaOfRight int64, patternIndex uint32) uint32 {
	v := (spc.d*maxScaledPenaltyDeltaOfRight + spc.e*int64(patternIndex) - spc.f) / spc.c
	return uint32(max(v, int64(spc.minPenalty)))
}

// size returns the number of pattern counts the table covers.
func (spc *SparePenaltyCalculator) size() int {
	return len(spc.right)
}
