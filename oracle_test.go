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
	"bytes"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// globalPenalty returns the minimum penalty of a global alignment of q and t
// with affine gaps, by the full Gotoh matrices.
func globalPenalty(p Penalties, q, t []byte) uint32 {
	const inf = math.MaxUint32 / 2
	n, m := len(q), len(t)
	H := make([][]uint32, n+1)
	E := make([][]uint32, n+1) // ends with an insertion
	F := make([][]uint32, n+1) // ends with a deletion
	for i := range H {
		H[i] = make([]uint32, m+1)
		E[i] = make([]uint32, m+1)
		F[i] = make([]uint32, m+1)
	}

	for i := 0; i <= n; i++ {
		for j := 0; j <= m; j++ {
			if i == 0 && j == 0 {
				E[0][0], F[0][0] = inf, inf
				continue
			}
			E[i][j], F[i][j] = inf, inf
			if i > 0 {
				E[i][j] = min(H[i-1][j]+p.GapOpen+p.GapExt, E[i-1][j]+p.GapExt)
			}
			if j > 0 {
				F[i][j] = min(H[i][j-1]+p.GapOpen+p.GapExt, F[i][j-1]+p.GapExt)
			}
			h := min(E[i][j], F[i][j])
			if i > 0 && j > 0 {
				d := H[i-1][j-1]
				if q[i-1] != t[j-1] {
					d += p.Mismatch
				}
				h = min(h, d)
			}
			H[i][j] = h
		}
	}
	return H[n][m]
}

func TestGlobalPenalty(t *testing.T) {
	p := DefaultPenalties
	assert.Equal(t, uint32(0), globalPenalty(p, []byte("ACGT"), []byte("ACGT")))
	assert.Equal(t, uint32(4), globalPenalty(p, []byte("ACGT"), []byte("AGGT")))
	assert.Equal(t, uint32(8), globalPenalty(p, []byte("ACGTT"), []byte("ACGT")))
	assert.Equal(t, uint32(10), globalPenalty(p, []byte("ACGTTT"), []byte("ACGT")))
	assert.Equal(t, uint32(10), globalPenalty(p, nil, []byte("AC")))
}

// Reported alignments are never better than the optimum of their spans,
// and planted alignments are found at the optimum.
func TestAlignerOracle(t *testing.T) {
	p := DefaultPenalties
	reg, err := NewRegulator(p, 30, 0.1)
	require.NoError(t, err)
	r := rand.New(rand.NewPCG(21, 22))

	local, err := NewAligner(reg, nil)
	require.NoError(t, err)
	semi, err := NewAligner(reg, &Options{Mode: ModeSemiGlobal})
	require.NoError(t, err)

	for n := 0; n < 20; n++ {
		target := randomSeq(r, 200)
		start := r.IntN(50)
		end := start + 90 + r.IntN(40)
		mismatches := []int{10 + r.IntN(10), 40 + r.IntN(10)}
		query := substitute(target[start:end], mismatches...)
		ref := newTestReference(t, target)

		optimal := globalPenalty(p, query, target[start:end])
		assert.Equal(t, uint32(4*len(mismatches)), optimal)

		for _, algn := range []*Aligner{local, semi} {
			result := algn.Align(query, ref)
			require.Len(t, result, 1, algn.Mode().String())

			var found bool
			for _, a := range result[0].Alignments {
				qs, ts := a.Position.Query, a.Position.Target
				assert.True(t, globalPenalty(p, query[qs[0]:qs[1]], target[ts[0]:ts[1]]) <= a.Penalty)

				if qs == [2]uint32{0, uint32(len(query))} && ts == [2]uint32{uint32(start), uint32(end)} {
					found = true
					assert.Equal(t, optimal, a.Penalty)
				}
			}
			assert.True(t, found, "planted alignment in %s mode", algn.Mode())
		}

		// a shuffled target keeps the composition only
		shuffled := bytes.Clone(target)
		r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		for _, ta := range local.Align(query, newTestReference(t, shuffled)) {
			for _, a := range ta.Alignments {
				qs, ts := a.Position.Query, a.Position.Target
				assert.True(t, globalPenalty(p, query[qs[0]:qs[1]], shuffled[ts[0]:ts[1]]) <= a.Penalty)
			}
		}
	}
}

// Planted gap runs, the walk-back over anchors broken by gaps must end.
func TestAlignerOracleGaps(t *testing.T) {
	p := DefaultPenalties
	reg, err := NewRegulator(p, 50, 0.1)
	require.NoError(t, err)
	r := rand.New(rand.NewPCG(23, 24))

	local, err := NewAligner(reg, nil)
	require.NoError(t, err)
	semi, err := NewAligner(reg, &Options{Mode: ModeSemiGlobal})
	require.NoError(t, err)

	for n := 0; n < 24; n++ {
		target := randomSeq(r, 600)
		start := 50 + r.IntN(50)
		end := start + 400
		gapLen := []int{1, 2, 3, 5, 8, 10}[n%6]
		gapAt := 150 + r.IntN(100)

		region := target[start:end]
		var query []byte
		if n%12 < 6 { // deletion: target bases missing in the query
			query = append(bytes.Clone(region[:gapAt]), region[gapAt+gapLen:]...)
		} else { // insertion: extra bases in the query
			query = append(append(bytes.Clone(region[:gapAt]), randomSeq(r, gapLen)...), region[gapAt:]...)
		}
		query = substitute(query, 60+r.IntN(20))
		ref := newTestReference(t, target)

		optimal := globalPenalty(p, query, region)
		assert.True(t, optimal <= p.Mismatch+p.GapOpen+uint32(gapLen)*p.GapExt)

		for _, algn := range []*Aligner{local, semi} {
			result := algn.Align(query, ref)
			require.Len(t, result, 1, algn.Mode().String())

			var found bool
			for i := range result[0].Alignments {
				a := &result[0].Alignments[i]
				checkAlignment(t, reg, a, query, target)

				qs, ts := a.Position.Query, a.Position.Target
				assert.True(t, globalPenalty(p, query[qs[0]:qs[1]], target[ts[0]:ts[1]]) <= a.Penalty)

				if qs == [2]uint32{0, uint32(len(query))} && ts == [2]uint32{uint32(start), uint32(end)} {
					found = true
					assert.Equal(t, optimal, a.Penalty, "gap of %d at %d", gapLen, gapAt)
				}
			}
			assert.True(t, found, "planted gap of %d in %s mode", gapLen, algn.Mode())
		}
	}
}
