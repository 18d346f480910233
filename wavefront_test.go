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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPenalties = Penalties{Mismatch: 2, GapOpen: 3, GapExt: 1}

func TestNewWaveFront(t *testing.T) {
	p := &testPenalties
	assert.Equal(t, 0, maxKOfScore(p, 3))
	assert.Equal(t, 1, maxKOfScore(p, 4))
	assert.Equal(t, 2, maxKOfScore(p, 5))

	wf := NewWaveFront(p, 5)
	require.Len(t, wf.Scores, 6)
	assert.Equal(t, 4*1+3+5, wf.componentsCount())
	assert.Len(t, wf.Scores[5].M, 5)
	assert.Equal(t, 2, wf.Scores[5].MaxK)

	_, ok := wf.Scores[4].m(2)
	assert.False(t, ok)
}

func TestWaveFront(t *testing.T) {
	p := &testPenalties

	for _, c := range []struct {
		q, t   string
		end    EndPoint
		length uint32
		ops    []AlignmentOperations // reversed
	}{
		{
			"ACGTACGT", "ACGTACGT",
			EndPoint{Score: 0, K: 0, ReachedEnd: true}, 8,
			[]AlignmentOperations{{MatchOperation, 8}},
		},
		{
			"ACGTACGT", "ACGAACGT",
			EndPoint{Score: 2, K: 0, ReachedEnd: true}, 8,
			[]AlignmentOperations{{MatchOperation, 4}, {SubstOperation, 1}, {MatchOperation, 3}},
		},
		{
			"ACGTTACGT", "ACGTACGT",
			EndPoint{Score: 4, K: -1, ReachedEnd: true}, 9,
			[]AlignmentOperations{{MatchOperation, 4}, {InsertionOperation, 1}, {MatchOperation, 4}},
		},
		{
			"ACGTACGT", "ACGTTACGT",
			EndPoint{Score: 4, K: 1, ReachedEnd: true}, 9,
			[]AlignmentOperations{{MatchOperation, 4}, {DeletionOperation, 1}, {MatchOperation, 4}},
		},
	} {
		wf := NewWaveFront(p, 10)
		wf.alignRight([]byte(c.q), []byte(c.t), p, 10)
		require.Equal(t, c.end, wf.EndPoint, c.q+" vs "+c.t)
		assert.Equal(t, c.length, wf.endComponent().Length())

		var ops []AlignmentOperations
		wf.backtraceLeft(wf.EndPoint.Score, wf.EndPoint.K, p, &ops)
		assert.Equal(t, c.ops, ops)
	}
}

func TestWaveFrontLeft(t *testing.T) {
	p := &testPenalties
	wf := NewWaveFront(p, 10)
	wf.alignLeft([]byte("ACGTACGT"), []byte("TTACGTACGT"), p, 10)
	assert.Equal(t, EndPoint{Score: 0, K: 0, ReachedEnd: true}, wf.EndPoint)
	assert.Equal(t, uint32(8), wf.endComponent().FR())
}

func TestWaveFrontSparePenalty(t *testing.T) {
	p := &testPenalties

	wf := NewWaveFront(p, 10)
	wf.alignRight([]byte("AAAA"), []byte("CCCC"), p, 3)
	assert.Equal(t, EndPoint{Score: 3}, wf.EndPoint)

	// clamped to the allocated penalty
	wf = NewWaveFront(p, 2)
	wf.alignRight([]byte("AAAA"), []byte("CCCC"), p, 100)
	assert.Equal(t, EndPoint{Score: 2}, wf.EndPoint)
}

func TestWaveFrontPrint(t *testing.T) {
	p := &testPenalties
	q, s := []byte("ACGTACGT"), []byte("ACGAACGT")
	wf := NewWaveFront(p, 10)
	wf.alignRight(q, s, p, 10)

	var buf bytes.Buffer
	wf.Print(&buf)
	text := buf.String()
	assert.Contains(t, text, "M0: k[0, 0]:  k(0):3(Sta)")
	assert.Contains(t, text, "M2: k[0, 0]:  k(0):8(M)")
	assert.Contains(t, text, "end: s=2, k=0")

	buf.Reset()
	wf.Plot(q, s, &buf)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, len(q)+1)
	assert.Equal(t, "\tA\tC\tG\tA\tA\tC\tG\tT", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "A\t"+string(markerArrows[markerStart])+"0"))
}

func TestFirstFullPattern(t *testing.T) {
	p, ok := firstFullPattern(4, 12, 2)
	assert.True(t, ok)
	assert.Equal(t, uint32(2), p)

	p, ok = firstFullPattern(5, 8, 2)
	assert.True(t, ok)
	assert.Equal(t, uint32(3), p)

	_, ok = firstFullPattern(5, 7, 2)
	assert.False(t, ok)
}

func TestPushOperation(t *testing.T) {
	ops := []AlignmentOperations{{MatchOperation, 2}}
	pushOperation(&ops, 1, MatchOperation, 3) // not merged before start
	pushOperation(&ops, 1, MatchOperation, 1)
	pushOperation(&ops, 1, SubstOperation, 0)
	assert.Equal(t, []AlignmentOperations{{MatchOperation, 2}, {MatchOperation, 4}}, ops)
}

func TestBacktraceCheckingAnchors(t *testing.T) {
	p := &testPenalties
	wf := NewWaveFront(p, 10)

	// right side of an anchor ending at query 4 and target 10, pattern size 2
	wf.alignRight([]byte("ACGTACGT"), []byte("ACGTACGT"), p, 10)
	var ops []AlignmentOperations
	var traversed []TraversedAnchor
	wf.backtraceRightCheckingTraversed(0, 0, p, 2, 4, 10, &ops, &traversed)
	assert.Equal(t, []AlignmentOperations{{MatchOperation, 8}}, ops)
	assert.Equal(t, []TraversedAnchor{{
		Index:            AnchorIndex{Pattern: 2, Index: 10},
		RemainingLength:  8,
		RemainingPenalty: 0,
	}}, traversed)

	// left side crossing pattern 0 at target 0
	wf.alignLeft([]byte("ACGTAC"), []byte("ACGTAC"), p, 10)
	ops = []AlignmentOperations{{SubstOperation, 1}}
	cp, ct, leftmost := wf.backtraceLeftCheckingLeftmost(0, 0, p, 2, 6, 6, &ops)
	assert.False(t, leftmost)
	assert.Equal(t, uint32(0), cp)
	assert.Equal(t, uint32(0), ct)
	assert.Len(t, ops, 1)

	// no full pattern on the left
	wf.alignLeft([]byte("ACGT"), []byte("TTGT"), p, 0)
	ops = ops[:0]
	_, _, leftmost = wf.backtraceLeftCheckingLeftmost(0, 0, p, 3, 4, 4, &ops)
	assert.True(t, leftmost)
	assert.Equal(t, []AlignmentOperations{{MatchOperation, 2}}, ops)
}
