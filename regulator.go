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
	"math"
)

// PrecScale is the fixed-point scale of the maximum penalty per length,
// so all arithmetic of the cutoff stays in integers.
const PrecScale = 100_000

// Penalties contains the penalties, Match is 0.
type Penalties struct {
	Mismatch uint32
	GapOpen  uint32
	GapExt   uint32
}

// DefaultPenalties is from the WFA paper.
var DefaultPenalties = Penalties{
	Mismatch: 4,
	GapOpen:  6,
	GapExt:   2,
}

func (p Penalties) gcd() uint32 {
	return gcd(gcd(p.Mismatch, p.GapOpen), p.GapExt)
}

func (p Penalties) divide(g uint32) Penalties {
	return Penalties{
		Mismatch: p.Mismatch / g,
		GapOpen:  p.GapOpen / g,
		GapExt:   p.GapExt / g,
	}
}

// Cutoff is the minimum length and the scaled maximum penalty per length
// an alignment has to satisfy.
type Cutoff struct {
	MinLength                 uint32
	MaxScaledPenaltyPerLength uint32
}

// MinPenaltyForPattern is the cheapest penalty to skip one pattern
// of the query, alternating by the parity of the skipped patterns.
type MinPenaltyForPattern struct {
	Odd  uint32
	Even uint32
}

func newMinPenaltyForPattern(p *Penalties) MinPenaltyForPattern {
	x, o, e := p.Mismatch, p.GapOpen, p.GapExt
	if x <= o+e {
		if 2*x <= o+2*e {
			return MinPenaltyForPattern{Odd: x, Even: x}
		}
		return MinPenaltyForPattern{Odd: x, Even: o + 2*e - x}
	}
	return MinPenaltyForPattern{Odd: o + e, Even: e}
}

// Regulator holds the parameters fixed for all alignments of one
// configuration. Penalties and the cutoff are stored divided by the
// greatest common divisor of the penalties. It is immutable and can be
// shared by multiple Aligners.
type Regulator struct {
	penalties            Penalties
	cutoff               Cutoff
	minPenaltyForPattern MinPenaltyForPattern
	gcd                  uint32
	patternSize          uint32
}

// NewRegulator validates the options and derives the pattern size.
// maxPenaltyPerLength is rounded to the precision of 1/PrecScale.
func NewRegulator(p Penalties, minLength uint32, maxPenaltyPerLength float64) (*Regulator, error) {
	if p.GapExt == 0 {
		return nil, ErrInvalidGapExtendPenalty
	}
	if math.IsNaN(maxPenaltyPerLength) || maxPenaltyPerLength <= 0 {
		return nil, ErrInvalidMaxPenaltyPerLength
	}
	if maxPenaltyPerLength >= float64(p.GapExt) {
		return nil, ErrTooLargeMaxPenaltyPerLength
	}

	g := p.gcd()
	scaled := uint32(math.Round(maxPenaltyPerLength*PrecScale)) / g
	if scaled == 0 {
		return nil, ErrInvalidMaxPenaltyPerLength
	}

	reg := &Regulator{
		penalties: p.divide(g),
		cutoff: Cutoff{
			MinLength:                 minLength,
			MaxScaledPenaltyPerLength: scaled,
		},
		gcd: g,
	}
	if uint64(scaled) >= uint64(reg.penalties.GapExt)*PrecScale {
		return nil, ErrTooLargeMaxPenaltyPerLength
	}

	reg.minPenaltyForPattern = newMinPenaltyForPattern(&reg.penalties)
	reg.patternSize = calculateMaxPatternSize(&reg.penalties, &reg.cutoff, &reg.minPenaltyForPattern)
	if reg.patternSize == 0 {
		return nil, ErrLowCutoff
	}

	return reg, nil
}

// Penalties returns the penalties given by the user.
func (reg *Regulator) Penalties() Penalties {
	return Penalties{
		Mismatch: reg.penalties.Mismatch * reg.gcd,
		GapOpen:  reg.penalties.GapOpen * reg.gcd,
		GapExt:   reg.penalties.GapExt * reg.gcd,
	}
}

// MismatchPenalty returns the mismatch penalty.
func (reg *Regulator) MismatchPenalty() uint32 { return reg.penalties.Mismatch * reg.gcd }

// GapOpenPenalty returns the gap-open penalty.
func (reg *Regulator) GapOpenPenalty() uint32 { return reg.penalties.GapOpen * reg.gcd }

// GapExtendPenalty returns the gap-extend penalty.
func (reg *Regulator) GapExtendPenalty() uint32 { return reg.penalties.GapExt * reg.gcd }

// MinLength returns the minimum length of an alignment.
func (reg *Regulator) MinLength() uint32 { return reg.cutoff.MinLength }

// MaxPenaltyPerLength returns the maximum penalty per length.
// The value might differ slightly from the input because of the fixed-point scale.
func (reg *Regulator) MaxPenaltyPerLength() float64 {
	return float64(reg.cutoff.MaxScaledPenaltyPerLength*reg.gcd) / PrecScale
}

// PatternSize returns the size of the query patterns used as seeds.
func (reg *Regulator) PatternSize() uint32 { return reg.patternSize }

// GCD returns the greatest common divisor of the penalties.
func (reg *Regulator) GCD() uint32 { return reg.gcd }

// MinPenaltyForPattern returns the minimum penalties in the compressed scale.
func (reg *Regulator) MinPenaltyForPattern() MinPenaltyForPattern { return reg.minPenaltyForPattern }

func (reg *Regulator) String() string {
	return fmt.Sprintf("mismatch: %d, gap-open: %d, gap-extend: %d, min-length: %d, max-penalty-per-length: %g, pattern-size: %d",
		reg.MismatchPenalty(), reg.GapOpenPenalty(), reg.GapExtendPenalty(),
		reg.cutoff.MinLength, reg.MaxPenaltyPerLength(), reg.patternSize)
}

// maxPenaltyOfQueryLength returns the largest penalty an alignment of a query
// with the given length can have while satisfying the cutoff, in the compressed scale.
func (reg *Regulator) maxPenaltyOfQueryLength(queryLength uint32) uint32 {
	maxp := int64(reg.cutoff.MaxScaledPenaltyPerLength)
	o, e := int64(reg.penalties.GapOpen), int64(reg.penalties.GapExt)

	v := maxp*(e*int64(queryLength)-o)/(PrecScale*e-maxp) + 1
	if v < o {
		return uint32(o)
	}
	return uint32(v)
}

// decompress converts penalties of alignments back to the user scale.
func (reg *Regulator) decompress(alignments []Alignment) {
	if reg.gcd == 1 {
		return
	}
	for i := range alignments {
		alignments[i].Penalty *= reg.gcd
	}
}
