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

// workspace contains all buffers used by an Aligner.
// Buffers only grow, and they are reset for every target or query.
type workspace struct {
	allocatedQueryLength uint32

	left, right         *WaveFront
	leftVpcs, rightVpcs []Vpc

	ops        []AlignmentOperations
	traversed  []TraversedAnchor
	extensions []Extension

	target     []byte
	tables     anchorTables
	alignments []Alignment
	paths      map[uint64]struct{}
}

func newWorkspace() *workspace {
	return &workspace{
		leftVpcs:   make([]Vpc, 0, 64),
		rightVpcs:  make([]Vpc, 0, 64),
		ops:        make([]AlignmentOperations, 0, 1024),
		traversed:  make([]TraversedAnchor, 0, 256),
		extensions: make([]Extension, 0, 256),
		target:     make([]byte, 0, 1<<10),
		tables:     anchorTables{tables: make(map[uint32]AnchorTable, 64)},
		alignments: make([]Alignment, 0, 64),
		paths:      make(map[uint64]struct{}, 1024),
	}
}

// resetForTarget clears the buffers filled by the extensions of one target.
func (ws *workspace) resetForTarget() {
	ws.ops = ws.ops[:0]
	ws.traversed = ws.traversed[:0]
	ws.extensions = ws.extensions[:0]
	ws.alignments = ws.alignments[:0]
}

// allocateMoreSpaceIfNeeded makes sure the wavefronts and the spare
// penalties cover a query of the given length.
func (algn *Aligner) allocateMoreSpaceIfNeeded(queryLength uint32) {
	ws := algn.ws
	if ws.left != nil && queryLength <= ws.allocatedQueryLength {
		return
	}
	length := algn.strategy.enlarge(max(ws.allocatedQueryLength, initialQueryLength), queryLength)

	maxPenalty := algn.reg.maxPenaltyOfQueryLength(length)
	ws.left = NewWaveFront(&algn.reg.penalties, maxPenalty)
	ws.right = NewWaveFront(&algn.reg.penalties, maxPenalty)
	ws.allocatedQueryLength = length

	algn.spare.PrecalculateRightSparePenalty(length/algn.reg.patternSize + 1)

	if algn.logger != nil {
		algn.logger.Debug("workspace allocated",
			"query_length", length,
			"max_penalty", maxPenalty,
			"components", ws.left.componentsCount())
	}
}
