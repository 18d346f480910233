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

func TestDeduplicate(t *testing.T) {
	long := Alignment{
		Penalty:    4,
		Length:     10,
		Position:   AlignmentPosition{Query: [2]uint32{0, 10}, Target: [2]uint32{0, 10}},
		Operations: []AlignmentOperations{{MatchOperation, 5}, {SubstOperation, 1}, {MatchOperation, 4}},
	}
	// shares the cell (6, 6)
	short := Alignment{
		Length:     4,
		Position:   AlignmentPosition{Query: [2]uint32{6, 10}, Target: [2]uint32{6, 10}},
		Operations: []AlignmentOperations{{MatchOperation, 4}},
	}
	// the same query range on another diagonal
	shifted := Alignment{
		Length:     4,
		Position:   AlignmentPosition{Query: [2]uint32{6, 10}, Target: [2]uint32{7, 11}},
		Operations: []AlignmentOperations{{MatchOperation, 4}},
	}
	// crossing the long one only through a gap
	gapped := Alignment{
		Length:   6,
		Position: AlignmentPosition{Query: [2]uint32{0, 4}, Target: [2]uint32{1, 3}},
		Operations: []AlignmentOperations{
			{MatchOperation, 1}, {InsertionOperation, 2}, {MatchOperation, 1},
		},
	}

	paths := make(map[uint64]struct{})
	result := deduplicate([]Alignment{short, gapped, long, shifted}, paths)
	require.Len(t, result, 3)
	assert.Equal(t, long, result[0])
	assert.Equal(t, gapped, result[1])
	assert.Equal(t, shifted, result[2])

	// idempotent
	again := deduplicate(append([]Alignment(nil), result...), paths)
	assert.Equal(t, result, again)

	// one alignment is kept as is
	assert.Equal(t, []Alignment{short}, deduplicate([]Alignment{short}, paths))
}

func TestWalkPath(t *testing.T) {
	a := Alignment{
		Position: AlignmentPosition{Query: [2]uint32{2, 6}, Target: [2]uint32{3, 7}},
		Operations: []AlignmentOperations{
			{MatchOperation, 1}, {DeletionOperation, 1}, {SubstOperation, 1}, {InsertionOperation, 1}, {MatchOperation, 1},
		},
	}
	var keys []uint64
	walkPath(&a, func(key uint64) bool {
		keys = append(keys, key)
		return true
	})
	assert.Equal(t, []uint64{pathKey(2, 3), pathKey(3, 5), pathKey(5, 6)}, keys)
}
