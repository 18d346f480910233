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

// Vpc is a valid position candidate, the best end point of one score.
//
// ScaledPenaltyDelta = maxp * length - PrecScale * penalty,
// an extension with a non-negative total delta satisfies the cutoff.
type Vpc struct {
	QueryLength        uint32
	ScaledPenaltyDelta int64
	Penalty            uint32
	K                  int
}

// fillSortedVpcs collects the Pareto-optimal candidates of all filled scores.
// The result is sorted by QueryLength ascending, so ScaledPenaltyDelta is
// descending and vpcs[0] has the largest delta.
//
//	| QL  |<QL |<QL | ... |<QL |
//	| PD> |PD> |PD> | ... | PD |
func (wf *WaveFront) fillSortedVpcs(maxScaledPenaltyPerLength uint32, vpcs *[]Vpc) {
	*vpcs = (*vpcs)[:0]
	maxp := int64(maxScaledPenaltyPerLength)

	var v Vpc
	for s := uint32(0); s <= wf.EndPoint.Score; s++ {
		c, k, ok := wf.Scores[s].bestM()
		if !ok {
			continue
		}
		v = Vpc{
			QueryLength:        c.FR(),
			ScaledPenaltyDelta: maxp*int64(c.Length()) - PrecScale*int64(s),
			Penalty:            s,
			K:                  k,
		}
		insertVpc(vpcs, v)
	}
}

// bestM returns the M component with the largest fr, ties are broken by length.
func (wfs *WaveFrontScore) bestM() (Component, int, bool) {
	var best Component
	var bestK int
	var found bool
	for k := -wfs.MaxK; k <= wfs.MaxK; k++ {
		c := wfs.M[k2i(k)]
		if c.IsEmpty() {
			continue
		}
		if !found || c.FR() > best.FR() || (c.FR() == best.FR() && c.Length() > best.Length()) {
			best, bestK, found = c, k, true
		}
	}
	return best, bestK, found
}

// insertVpc inserts v if no candidate dominates it,
// and removes the candidates it dominates.
func insertVpc(vpcs *[]Vpc, v Vpc) {
	s := *vpcs
	for _, u := range s {
		if u.QueryLength >= v.QueryLength && u.ScaledPenaltyDelta >= v.ScaledPenaltyDelta {
			return
		}
	}
	s = slices.DeleteFunc(s, func(u Vpc) bool {
		return u.QueryLength <= v.QueryLength && u.ScaledPenaltyDelta <= v.ScaledPenaltyDelta
	})
	i, _ := slices.BinarySearchFunc(s, v.QueryLength, func(u Vpc, ql uint32) int {
		switch {
		case u.QueryLength < ql:
			return -1
		case u.QueryLength > ql:
			return 1
		}
		return 0
	})
	*vpcs = slices.Insert(s, i, v)
}

// optimalPosition returns the indexes of the left and right candidates with the
// largest total query length whose total delta, including the anchor, is not negative.
// Ties are broken by the total penalty.
func optimalPosition(left, right []Vpc, anchorScaledPenaltyDelta int64) (int, int) {
	bestL, bestR := -1, -1
	var bestQL, ql uint32
	var bestPenalty, penalty uint32

	j := len(right) - 1
	for i := range left {
		for j >= 0 && left[i].ScaledPenaltyDelta+right[j].ScaledPenaltyDelta+anchorScaledPenaltyDelta < 0 {
			j--
		}
		if j < 0 {
			break
		}
		ql = left[i].QueryLength + right[j].QueryLength
		penalty = left[i].Penalty + right[j].Penalty
		if bestL < 0 || ql > bestQL || (ql == bestQL && penalty < bestPenalty) {
			bestL, bestR = i, j
			bestQL, bestPenalty = ql, penalty
		}
	}
	if bestL < 0 {
		panic("sigalign: no valid position candidate")
	}
	return bestL, bestR
}
