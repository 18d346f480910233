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

// alignSemiGlobally finds the alignments of the query in one target which
// reach an end of the query or the target on both sides.
// Anchors traversed by a valid extension are skipped.
func (algn *Aligner) alignSemiGlobally(table AnchorTable, query, target []byte, alignments *[]Alignment) {
	ws := algn.ws
	extend := algn.extendSemiGlobally

	var idx AnchorIndex
	var ei uint32
	var ext *Extension
	for p := range table {
		for i := range table[p] {
			if table[p][i].Skipped {
				continue
			}
			idx = AnchorIndex{Pattern: uint32(p), Index: uint32(i)}
			ei = algn.extensionOf(table, idx, query, target, extend)
			ext = &ws.extensions[ei]
			if ext.Status != extensionValid {
				continue
			}

			for _, t := range ws.rightTraversed(ext) {
				table[t.Index.Pattern][t.Index.Index].Skipped = true
			}

			*alignments = append(*alignments, ws.transformExtensionToAlignment(ext, table[p][i].PatternCount*algn.reg.patternSize))
		}
	}
}
