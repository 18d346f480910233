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

import "fmt"

// AlignmentOperation is the type of an alignment operation.
// Insertion consumes a query base only, and Deletion consumes a target base only.
type AlignmentOperation uint8

const (
	MatchOperation AlignmentOperation = iota
	SubstOperation
	InsertionOperation
	DeletionOperation
)

var operationSymbols = []byte{'=', 'X', 'I', 'D'}

// Byte returns the CIGAR symbol of the operation.
func (op AlignmentOperation) Byte() byte {
	if int(op) < len(operationSymbols) {
		return operationSymbols[op]
	}
	return '?'
}

func (op AlignmentOperation) String() string {
	switch op {
	case MatchOperation:
		return "Match"
	case SubstOperation:
		return "Subst"
	case InsertionOperation:
		return "Insertion"
	case DeletionOperation:
		return "Deletion"
	default:
		return fmt.Sprintf("AlignmentOperation(%d)", op)
	}
}

// MarshalText makes operations readable in JSON.
func (op AlignmentOperation) MarshalText() ([]byte, error) {
	return []byte{op.Byte()}, nil
}

// UnmarshalText parses a CIGAR symbol.
func (op *AlignmentOperation) UnmarshalText(b []byte) error {
	if len(b) == 1 {
		for i, c := range operationSymbols {
			if c == b[0] {
				*op = AlignmentOperation(i)
				return nil
			}
		}
	}
	return fmt.Errorf("sigalign: unknown alignment operation: %q", b)
}

// consumesQuery tells if the operation consumes a query base.
func (op AlignmentOperation) consumesQuery() bool { return op != DeletionOperation }

// consumesTarget tells if the operation consumes a target base.
func (op AlignmentOperation) consumesTarget() bool { return op != InsertionOperation }

// AlignmentOperations is a run of the same operation.
type AlignmentOperations struct {
	Operation AlignmentOperation `json:"op"`
	Count     uint32             `json:"n"`
}

// AlignmentPosition is the 0-based half-open ranges of an alignment.
type AlignmentPosition struct {
	Query  [2]uint32 `json:"query"`
	Target [2]uint32 `json:"target"`
}

// Alignment is one alignment between the query and a target.
type Alignment struct {
	Penalty    uint32                `json:"penalty"`
	Length     uint32                `json:"length"`
	Position   AlignmentPosition     `json:"position"`
	Operations []AlignmentOperations `json:"operations"`
}

// TargetAlignment contains the alignments of a query to one target.
type TargetAlignment struct {
	Index      uint32      `json:"index"`
	Alignments []Alignment `json:"alignments"`
}

// QueryAlignment contains the alignments of a query to all targets,
// sorted by target index.
type QueryAlignment []TargetAlignment

// Count returns the total number of alignments.
func (qa QueryAlignment) Count() int {
	var n int
	for _, ta := range qa {
		n += len(ta.Alignments)
	}
	return n
}

// LabeledTargetAlignment is a TargetAlignment with the label of the target.
type LabeledTargetAlignment struct {
	Index      uint32      `json:"index"`
	Label      string      `json:"label"`
	Alignments []Alignment `json:"alignments"`
}

// LabeledQueryAlignment is a QueryAlignment with target labels.
type LabeledQueryAlignment []LabeledTargetAlignment

// Count returns the total number of alignments.
func (lqa LabeledQueryAlignment) Count() int {
	var n int
	for _, ta := range lqa {
		n += len(ta.Alignments)
	}
	return n
}
