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
	"errors"
	"fmt"
)

// Configuration errors, returned once when a Regulator, an Aligner or a
// Reference is built. The engine never runs with an invalid configuration.
var (
	// ErrInvalidGapExtendPenalty means the gap-extend penalty is 0.
	ErrInvalidGapExtendPenalty = errors.New("sigalign: gap-extend penalty should be a positive integer")

	// ErrInvalidMaxPenaltyPerLength means the maximum penalty per length is
	// not a positive value, or is too small to be represented in the fixed-point scale.
	ErrInvalidMaxPenaltyPerLength = errors.New("sigalign: maximum penalty per length should be a positive value")

	// ErrTooLargeMaxPenaltyPerLength means the maximum penalty per length is not
	// smaller than the gap-extend penalty, so the penalty budget of an extension is unbounded.
	ErrTooLargeMaxPenaltyPerLength = errors.New("sigalign: maximum penalty per length should be smaller than the gap-extend penalty")

	// ErrLowCutoff means no pattern size satisfies the cutoff.
	ErrLowCutoff = errors.New("sigalign: cutoff is too strict to detect any pattern")

	// ErrZeroLimit means a limit of 0 alignments was requested.
	ErrZeroLimit = errors.New("sigalign: limit of alignments should be positive")

	// ErrUnsupportedSequence means a sequence has bytes outside of the alphabet.
	ErrUnsupportedSequence = errors.New("sigalign: sequence contains unsupported characters")

	// ErrTargetOutOfRange means a target index is not in the sequence storage.
	ErrTargetOutOfRange = errors.New("sigalign: target index out of range")

	// ErrEmptyReference means no target sequences were added.
	ErrEmptyReference = errors.New("sigalign: no target sequences in the reference")
)

// SequenceError reports the first unsupported byte of a sequence.
type SequenceError struct {
	Position int
	Char     byte
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("%s: %q at position %d", ErrUnsupportedSequence, e.Char, e.Position)
}

func (e *SequenceError) Unwrap() error { return ErrUnsupportedSequence }
