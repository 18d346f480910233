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

// the number of bits to save the backtrace marker.
const markerBits uint32 = 3
const markerMask uint32 = (1 << markerBits) - 1

const (
	// where a component comes from, saved as the lowest 3 bits of the offset.
	markerEmpty uint32 = iota
	markerStart        // only for the first component of score 0
	markerFromM
	markerFromI
	markerFromD
)

var markerArrows []rune = []rune{'⊕', '⬊', '⬂', '⟼', '↧'} // for visualization

// for showing components.
func marker2str(m uint32) string {
	switch m {
	case markerStart:
		return "Sta"
	case markerFromM:
		return "M"
	case markerFromI:
		return "I"
	case markerFromD:
		return "D"
	default:
		return "N/A"
	}
}
