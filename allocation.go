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

import "math/bits"

// AllocationStrategy decides how large the workspace grows
// when a longer query comes.
type AllocationStrategy uint8

const (
	// LinearStrategy grows the query length by steps of 200.
	LinearStrategy AllocationStrategy = iota
	// DoublingStrategy grows the query length to the next power of 2.
	DoublingStrategy
)

// initialQueryLength is the query length allocated by a new Aligner.
const initialQueryLength uint32 = 200

const linearStep uint32 = 200

func (s AllocationStrategy) String() string {
	switch s {
	case LinearStrategy:
		return "linear"
	case DoublingStrategy:
		return "doubling"
	default:
		return "unknown"
	}
}

// enlarge returns the new query length to allocate, which is not smaller than required.
func (s AllocationStrategy) enlarge(current, required uint32) uint32 {
	if required <= current {
		return current
	}
	switch s {
	case DoublingStrategy:
		if required > 1<<31 {
			return required
		}
		return 1 << bits.Len32(required-1)
	default:
		return (required + linearStep - 1) / linearStep * linearStep
	}
}
