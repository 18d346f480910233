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
	"fmt"
	"slices"
	"strconv"
)

// PatternLocation holds the sorted positions of a pattern in a target.
type PatternLocation struct {
	Target    uint32
	Positions []uint32
}

// PatternLocator finds all exact occurrences of a pattern in the targets.
// targets is sorted, and only targets in it are searched.
type PatternLocator interface {
	Locate(pattern []byte, targets []uint32) []PatternLocation
}

// SequenceProvider gives target sequences.
type SequenceProvider interface {
	// TargetCount returns the number of targets.
	TargetCount() uint32
	// FillBuffer replaces the content of buf with the sequence of the target.
	FillBuffer(target uint32, buf *[]byte)
}

// LabelProvider gives target labels.
type LabelProvider interface {
	Label(target uint32) string
}

// Reference is a set of target sequences and a pattern locator on them.
// It is read-only during alignment and can be shared by multiple Aligners.
type Reference struct {
	locator     PatternLocator
	sequences   SequenceProvider
	searchRange []uint32
}

// NewReference creates a Reference searching all targets.
func NewReference(sequences SequenceProvider, locator PatternLocator) (*Reference, error) {
	n := sequences.TargetCount()
	if n == 0 {
		return nil, ErrEmptyReference
	}
	ref := &Reference{
		locator:     locator,
		sequences:   sequences,
		searchRange: make([]uint32, n),
	}
	for i := range ref.searchRange {
		ref.searchRange[i] = uint32(i)
	}
	return ref, nil
}

// TargetCount returns the number of targets.
func (ref *Reference) TargetCount() uint32 { return ref.sequences.TargetCount() }

// SearchRange returns the targets to search.
func (ref *Reference) SearchRange() []uint32 { return ref.searchRange }

// WithSearchRange returns a shallow copy of the reference searching only the given targets.
// The original reference is not changed, so it is safe to call while other
// goroutines are aligning with it.
func (ref *Reference) WithSearchRange(targets []uint32) (*Reference, error) {
	n := ref.sequences.TargetCount()
	r := slices.Clone(targets)
	slices.Sort(r)
	r = slices.Compact(r)
	if len(r) > 0 && r[len(r)-1] >= n {
		return nil, fmt.Errorf("%w: %d >= %d", ErrTargetOutOfRange, r[len(r)-1], n)
	}
	return &Reference{
		locator:     ref.locator,
		sequences:   ref.sequences,
		searchRange: r,
	}, nil
}

// Label returns the label of a target, or its index if labels are not available.
func (ref *Reference) Label(target uint32) string {
	if lp, ok := ref.sequences.(LabelProvider); ok {
		return lp.Label(target)
	}
	return strconv.FormatUint(uint64(target), 10)
}

// Sequence returns a copy of the sequence of a target.
func (ref *Reference) Sequence(target uint32) ([]byte, error) {
	if target >= ref.sequences.TargetCount() {
		return nil, fmt.Errorf("%w: %d", ErrTargetOutOfRange, target)
	}
	var buf []byte
	ref.sequences.FillBuffer(target, &buf)
	return buf, nil
}

func (ref *Reference) locate(pattern []byte) []PatternLocation {
	return ref.locator.Locate(pattern, ref.searchRange)
}

func (ref *Reference) fillBuffer(target uint32, buf *[]byte) {
	ref.sequences.FillBuffer(target, buf)
}

func (ref *Reference) labelResult(qa QueryAlignment) LabeledQueryAlignment {
	lqa := make(LabeledQueryAlignment, len(qa))
	for i, ta := range qa {
		lqa[i] = LabeledTargetAlignment{
			Index:      ta.Index,
			Label:      ref.Label(ta.Index),
			Alignments: ta.Alignments,
		}
	}
	return lqa
}
