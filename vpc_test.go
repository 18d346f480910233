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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertVpc(t *testing.T) {
	var vpcs []Vpc
	insertVpc(&vpcs, Vpc{QueryLength: 2, ScaledPenaltyDelta: 30000})
	insertVpc(&vpcs, Vpc{QueryLength: 3, ScaledPenaltyDelta: -155000, Penalty: 2})
	insertVpc(&vpcs, Vpc{QueryLength: 1, ScaledPenaltyDelta: 10000, Penalty: 1}) // dominated
	assert.Equal(t, []Vpc{
		{QueryLength: 2, ScaledPenaltyDelta: 30000},
		{QueryLength: 3, ScaledPenaltyDelta: -155000, Penalty: 2},
	}, vpcs)

	insertVpc(&vpcs, Vpc{QueryLength: 3, ScaledPenaltyDelta: 0, Penalty: 4}) // dominating
	assert.Equal(t, []Vpc{
		{QueryLength: 2, ScaledPenaltyDelta: 30000},
		{QueryLength: 3, ScaledPenaltyDelta: 0, Penalty: 4},
	}, vpcs)

	insertVpc(&vpcs, Vpc{QueryLength: 0, ScaledPenaltyDelta: 50000})
	require.Len(t, vpcs, 3)
	assert.Equal(t, uint32(0), vpcs[0].QueryLength)
}

func TestFillSortedVpcs(t *testing.T) {
	p := &testPenalties
	wf := NewWaveFront(p, 10)
	wf.alignRight([]byte("ACGTACGT"), []byte("ACGAACGT"), p, 10)

	var vpcs []Vpc
	wf.fillSortedVpcs(15000, &vpcs)
	assert.Equal(t, []Vpc{
		{QueryLength: 3, ScaledPenaltyDelta: 45000, Penalty: 0, K: 0},
		{QueryLength: 8, ScaledPenaltyDelta: 120000 - 200000, Penalty: 2, K: 0},
	}, vpcs)
}

func TestOptimalPosition(t *testing.T) {
	left := []Vpc{{QueryLength: 0, ScaledPenaltyDelta: 0}}
	right := []Vpc{
		{QueryLength: 2, ScaledPenaltyDelta: 30000},
		{QueryLength: 3, ScaledPenaltyDelta: -155000, Penalty: 2},
	}
	l, r := optimalPosition(left, right, 90000)
	assert.Equal(t, [2]int{0, 0}, [2]int{l, r})

	l, r = optimalPosition(left, right, 200000)
	assert.Equal(t, [2]int{0, 1}, [2]int{l, r})

	// same query length, the smaller penalty wins
	left = []Vpc{
		{QueryLength: 1, ScaledPenaltyDelta: 100, Penalty: 2},
		{QueryLength: 2, ScaledPenaltyDelta: 50, Penalty: 3},
	}
	right = []Vpc{
		{QueryLength: 2, ScaledPenaltyDelta: 100, Penalty: 1},
		{QueryLength: 3, ScaledPenaltyDelta: -60, Penalty: 4},
	}
	l, r = optimalPosition(left, right, 0)
	assert.Equal(t, [2]int{1, 0}, [2]int{l, r})

	assert.Panics(t, func() {
		optimalPosition([]Vpc{{ScaledPenaltyDelta: -10}}, []Vpc{{ScaledPenaltyDelta: -10}}, 0)
	})
}
