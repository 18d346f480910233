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

// transformExtensionToAlignment joins the operations of the left side,
// the anchor and the reversed right side into a new Alignment.
func (ws *workspace) transformExtensionToAlignment(ext *Extension, anchorSize uint32) Alignment {
	left := ws.ops[ext.LeftOps[0]:ext.LeftOps[1]]
	right := ws.ops[ext.RightOps[0]:ext.RightOps[1]]

	ops := make([]AlignmentOperations, 0, len(left)+len(right)+1)
	ops = append(ops, left...)
	pushOperation(&ops, 0, MatchOperation, anchorSize)
	for i := len(right) - 1; i >= 0; i-- {
		pushOperation(&ops, 0, right[i].Operation, right[i].Count)
	}

	return Alignment{
		Penalty:    ext.Penalty,
		Length:     ext.Length,
		Position:   ext.Position,
		Operations: ops,
	}
}
