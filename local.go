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

// alignLocally finds the local alignments of the query in one target.
//
// Anchors are visited by pattern index then target position. For each anchor
// not skipped, its extension is computed once. A valid extension is kept, and
// each anchor on its right path is extended too. If the left side of that
// extension meets this anchor or an anchor on this path, it follows the same
// path, so the traversed anchor is skipped.
func (algn *Aligner) alignLocally(table AnchorTable, query, target []byte, alignments *[]Alignment) {
	ws := algn.ws
	extend := algn.extendLocally

	var idx, tIdx AnchorIndex
	var ei, ti uint32
	var ext *Extension
	var t TraversedAnchor
	for p := range table {
		for i := range table[p] {
			if table[p][i].Skipped {
				continue
			}
			idx = AnchorIndex{Pattern: uint32(p), Index: uint32(i)}
			ei = algn.extensionOf(table, idx, query, target, extend)
			if ws.extensions[ei].Status != extensionValid {
				continue
			}

			r := ws.extensions[ei].RightTraversed
			for j := r[0]; j < r[1]; j++ {
				t = ws.traversed[j]
				tIdx = t.Index
				if table[tIdx.Pattern][tIdx.Index].Skipped {
					continue
				}
				ti = algn.extensionOf(table, tIdx, query, target, extend)

				ext = &ws.extensions[ei]
				markTraversedAnchorsAsSkipped(table, idx, ws.rightTraversed(ext),
					tIdx, ws.leftTraversed(&ws.extensions[ti]))
			}

			*alignments = append(*alignments, ws.transformExtensionToAlignment(&ws.extensions[ei], table[p][i].PatternCount*algn.reg.patternSize))
		}
	}
}
