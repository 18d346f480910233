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
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryChannel(queries []*Query) <-chan *Query {
	ch := make(chan *Query, len(queries))
	for _, q := range queries {
		ch <- q
	}
	close(ch)
	return ch
}

func TestAlignBatch(t *testing.T) {
	reg, err := NewRegulator(DefaultPenalties, 50, 0.1)
	require.NoError(t, err)
	r := rand.New(rand.NewPCG(7, 8))

	targets := [][]byte{randomSeq(r, 400), randomSeq(r, 400)}
	ref := newTestReference(t, targets...)

	queries := make([]*Query, 20)
	for i := range queries {
		var seq []byte
		switch i % 3 {
		case 0:
			seq = bytes.Clone(targets[i%2][100:200])
		case 1:
			seq = ReverseComplement(targets[i%2][150:250])
		default:
			seq = randomSeq(r, 100)
		}
		queries[i] = &Query{ID: fmt.Sprintf("q%d", i), Seq: seq}
	}
	queries[5].Seq = []byte("ACGT-ACGT")

	algn, err := NewAligner(reg, nil)
	require.NoError(t, err)

	var results []*QueryResult
	err = AlignBatch(context.Background(), reg, nil, ref,
		&BatchOptions{Workers: 4, BothStrands: true, Alphabet: DNA},
		queryChannel(queries),
		func(qr *QueryResult) error {
			results = append(results, qr)
			return nil
		})
	require.NoError(t, err)
	require.Len(t, results, len(queries))

	for i, qr := range results {
		assert.Equal(t, i, qr.Index)
		assert.Same(t, queries[i], qr.Query)
		if i == 5 {
			assert.ErrorIs(t, qr.Err, ErrUnsupportedSequence)
			assert.Zero(t, qr.Count())
			continue
		}
		require.NoError(t, qr.Err)

		assert.Equal(t, algn.AlignLabeled(qr.Query.Seq, ref), qr.Forward)
		assert.Equal(t, algn.AlignLabeled(ReverseComplement(qr.Query.Seq), ref), qr.Reverse)
		switch i % 3 {
		case 0:
			require.Len(t, qr.Forward, 1)
			assert.Equal(t, uint32(i%2), qr.Forward[0].Index)
		case 1:
			require.Len(t, qr.Reverse, 1)
			assert.Equal(t, uint32(i%2), qr.Reverse[0].Index)
		}
	}
}

func TestAlignBatchEmitError(t *testing.T) {
	reg, err := NewRegulator(DefaultPenalties, 50, 0.1)
	require.NoError(t, err)
	r := rand.New(rand.NewPCG(9, 10))
	target := randomSeq(r, 300)
	ref := newTestReference(t, target)

	queries := make([]*Query, 10)
	for i := range queries {
		queries[i] = &Query{ID: fmt.Sprint(i), Seq: target[i*10 : i*10+100]}
	}

	errStop := errors.New("stop")
	var n int
	err = AlignBatch(context.Background(), reg, nil, ref, &BatchOptions{Workers: 2}, queryChannel(queries),
		func(qr *QueryResult) error {
			n++
			if n == 3 {
				return errStop
			}
			return nil
		})
	assert.ErrorIs(t, err, errStop)
	assert.Equal(t, 3, n)
}

func TestAlignBatchEmpty(t *testing.T) {
	reg, err := NewRegulator(DefaultPenalties, 50, 0.1)
	require.NoError(t, err)
	ref := newTestReference(t, []byte("ACGTACGT"))

	err = AlignBatch(context.Background(), reg, nil, ref, nil, queryChannel(nil),
		func(qr *QueryResult) error {
			t.Error("unexpected result")
			return nil
		})
	assert.NoError(t, err)

	// invalid options
	err = AlignBatch(context.Background(), reg, &Options{UseLimit: true}, ref, nil, queryChannel(nil),
		func(qr *QueryResult) error { return nil })
	assert.ErrorIs(t, err, ErrZeroLimit)
}

func TestAlignBatchCanceled(t *testing.T) {
	reg, err := NewRegulator(DefaultPenalties, 50, 0.1)
	require.NoError(t, err)
	ref := newTestReference(t, []byte("ACGTACGT"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	queries := make(chan *Query) // never closed
	err = AlignBatch(ctx, reg, nil, ref, &BatchOptions{Workers: 1}, queries,
		func(qr *QueryResult) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAlignBatchLimitBothStrands(t *testing.T) {
	reg, err := NewRegulator(DefaultPenalties, 50, 0.1)
	require.NoError(t, err)
	r := rand.New(rand.NewPCG(17, 18))

	frag := randomSeq(r, 100)
	flanked := func(s []byte) []byte {
		return append(append(randomSeq(r, 100), s...), randomSeq(r, 100)...)
	}
	// forward hits in t0 and t2, a reverse hit in t1
	ref := newTestReference(t, flanked(frag), flanked(ReverseComplement(frag)), flanked(frag))

	for _, c := range []struct {
		limit            uint32
		forward, reverse int
	}{
		{1, 1, 0},
		{2, 2, 0},
		{3, 2, 1},
		{10, 2, 1},
	} {
		var results []*QueryResult
		err = AlignBatch(context.Background(), reg, &Options{UseLimit: true, Limit: c.limit}, ref,
			&BatchOptions{Workers: 2, BothStrands: true},
			queryChannel([]*Query{{ID: "q", Seq: frag}}),
			func(qr *QueryResult) error {
				results = append(results, qr)
				return nil
			})
		require.NoError(t, err)
		require.Len(t, results, 1)

		qr := results[0]
		assert.Equal(t, c.forward, qr.Forward.Count(), "limit %d", c.limit)
		assert.Equal(t, c.reverse, qr.Reverse.Count(), "limit %d", c.limit)
		assert.NotNil(t, qr.Reverse)
		assert.LessOrEqual(t, qr.Count(), int(c.limit))
		if c.reverse > 0 {
			assert.Equal(t, uint32(1), qr.Reverse[0].Index)
		}
	}
}
