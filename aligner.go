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
	"log/slog"
)

// Mode is the alignment mode.
type Mode uint8

const (
	// ModeLocal reports alignments which can end anywhere.
	ModeLocal Mode = iota
	// ModeSemiGlobal reports alignments reaching an end of the query or
	// the target on both sides.
	ModeSemiGlobal
)

func (m Mode) String() string {
	switch m {
	case ModeLocal:
		return "local"
	case ModeSemiGlobal:
		return "semi-global"
	default:
		return fmt.Sprintf("Mode(%d)", m)
	}
}

// ParseMode parses the name of a mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "local":
		return ModeLocal, nil
	case "semi-global", "semiglobal":
		return ModeSemiGlobal, nil
	}
	return 0, fmt.Errorf("sigalign: unknown alignment mode: %s", s)
}

// Options contains the options of an Aligner.
type Options struct {
	Mode Mode

	// If UseLimit is true, at most Limit alignments are reported for a query.
	// Targets are processed in ascending order of their indexes, and all
	// alignments of a target are deduplicated before the limit is applied.
	UseLimit bool
	Limit    uint32

	Strategy AllocationStrategy

	// Logger is used for debug messages, nil for no logging.
	Logger *slog.Logger
}

// DefaultOptions is local alignment without limit.
var DefaultOptions = Options{
	Mode:     ModeLocal,
	Strategy: LinearStrategy,
}

// Aligner aligns queries to a Reference.
// An Aligner owns its workspace and is not safe for concurrent use,
// use one Aligner per goroutine. The Regulator can be shared.
type Aligner struct {
	reg      *Regulator
	spare    *SparePenaltyCalculator
	mode     Mode
	limit    uint32 // 0 for no limit
	strategy AllocationStrategy
	logger   *slog.Logger

	ws *workspace
}

// NewAligner creates a new Aligner.
func NewAligner(reg *Regulator, opt *Options) (*Aligner, error) {
	if opt == nil {
		opt = &DefaultOptions
	}
	if opt.UseLimit && opt.Limit == 0 {
		return nil, ErrZeroLimit
	}
	if opt.Mode != ModeLocal && opt.Mode != ModeSemiGlobal {
		return nil, fmt.Errorf("sigalign: unknown alignment mode: %d", opt.Mode)
	}

	algn := &Aligner{
		reg: reg,
		spare: newSparePenaltyCalculator(&reg.penalties, reg.cutoff.MaxScaledPenaltyPerLength,
			reg.patternSize, initialQueryLength/reg.patternSize+1),
		mode:     opt.Mode,
		strategy: opt.Strategy,
		logger:   opt.Logger,
		ws:       newWorkspace(),
	}
	if opt.UseLimit {
		algn.limit = opt.Limit
	}
	algn.allocateMoreSpaceIfNeeded(initialQueryLength)
	return algn, nil
}

// Regulator returns the Regulator.
func (algn *Aligner) Regulator() *Regulator { return algn.reg }

// Mode returns the alignment mode.
func (algn *Aligner) Mode() Mode { return algn.mode }

// Limit returns the limit of alignments and whether it is used.
func (algn *Aligner) Limit() (uint32, bool) { return algn.limit, algn.limit > 0 }

// Align aligns the query to the targets in the search range of the reference.
// The query should be validated by the caller, see ValidateSequence.
func (algn *Aligner) Align(query []byte, ref *Reference) QueryAlignment {
	return algn.align(query, ref, algn.limit)
}

// align reports at most limit alignments, 0 for no limit.
func (algn *Aligner) align(query []byte, ref *Reference, limit uint32) QueryAlignment {
	reg := algn.reg
	ps := reg.patternSize
	patternCount := uint32(len(query)) / ps
	if patternCount == 0 {
		return QueryAlignment{}
	}

	algn.allocateMoreSpaceIfNeeded(uint32(len(query)))
	algn.spare.ChangeLastPatternIndex(patternCount - 1)

	ws := algn.ws
	buildAnchorTables(query, ps, ref, &ws.tables)

	result := make(QueryAlignment, 0, len(ws.tables.targets))
	var total uint32
	for _, target := range ws.tables.targets {
		table := ws.tables.tables[target]
		ws.resetForTarget()
		ref.fillBuffer(target, &ws.target)

		switch algn.mode {
		case ModeSemiGlobal:
			algn.alignSemiGlobally(table, query, ws.target, &ws.alignments)
		default:
			algn.alignLocally(table, query, ws.target, &ws.alignments)
		}

		if algn.logger != nil {
			algn.logger.Debug("target aligned",
				"target", target,
				"anchors", table.count(),
				"extensions", len(ws.extensions),
				"alignments", len(ws.alignments))
		}

		if len(ws.alignments) == 0 {
			continue
		}
		alignments := deduplicate(ws.alignments, ws.paths)
		reg.decompress(alignments)

		if limit > 0 && total+uint32(len(alignments)) > limit {
			alignments = alignments[:limit-total]
		}
		total += uint32(len(alignments))
		result = append(result, TargetAlignment{
			Index:      target,
			Alignments: append([]Alignment(nil), alignments...),
		})

		if limit > 0 && total >= limit {
			break
		}
	}

	return result
}

// AlignLabeled is the same as Align, and attaches target labels to the result.
func (algn *Aligner) AlignLabeled(query []byte, ref *Reference) LabeledQueryAlignment {
	return ref.labelResult(algn.Align(query, ref))
}
