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
	"bytes"

	"github.com/zeebo/wyhash"
)

// ScanLocator finds patterns by scanning the target sequences.
// It needs no index and suits small references.
type ScanLocator struct {
	storage *InMemoryStorage
}

// NewScanLocator creates a ScanLocator on the storage.
func NewScanLocator(storage *InMemoryStorage) *ScanLocator {
	return &ScanLocator{storage: storage}
}

// Locate returns all occurrences of the pattern, overlapping ones included.
func (l *ScanLocator) Locate(pattern []byte, targets []uint32) []PatternLocation {
	var locs []PatternLocation
	for _, t := range targets {
		if positions := scanPattern(l.storage.sequence(t), pattern); len(positions) > 0 {
			locs = append(locs, PatternLocation{Target: t, Positions: positions})
		}
	}
	return locs
}

func scanPattern(seq, pattern []byte) []uint32 {
	if len(pattern) == 0 {
		return nil
	}
	var positions []uint32
	var i, j int
	for i <= len(seq)-len(pattern) {
		j = bytes.Index(seq[i:], pattern)
		if j < 0 {
			break
		}
		positions = append(positions, uint32(i+j))
		i += j + 1
	}
	return positions
}

// --------------------------------------------------------------

type kmerHit struct {
	target   uint32
	position uint32
}

const kmerSeed uint64 = 1

// KmerIndex is a hash index of all k-mers of the targets.
// Patterns of length k are found by one lookup, other patterns by scanning.
type KmerIndex struct {
	k       uint32
	storage *InMemoryStorage
	index   map[uint64][]kmerHit
}

// NewKmerIndex indexes all k-mers of the storage, k should be the pattern size
// of the Regulator used for alignment.
func NewKmerIndex(storage *InMemoryStorage, k uint32) *KmerIndex {
	idx := &KmerIndex{
		k:       k,
		storage: storage,
		index:   make(map[uint64][]kmerHit, storage.TotalLength()),
	}
	if k == 0 {
		return idx
	}

	var seq []byte
	var h uint64
	for t := uint32(0); t < storage.TargetCount(); t++ {
		seq = storage.sequence(t)
		for i := 0; i+int(k) <= len(seq); i++ {
			h = wyhash.Hash(seq[i:i+int(k)], kmerSeed)
			idx.index[h] = append(idx.index[h], kmerHit{target: t, position: uint32(i)})
		}
	}
	return idx
}

// K returns the k-mer size.
func (idx *KmerIndex) K() uint32 { return idx.k }

// Locate returns all occurrences of the pattern in the targets.
func (idx *KmerIndex) Locate(pattern []byte, targets []uint32) []PatternLocation {
	if uint32(len(pattern)) != idx.k || idx.k == 0 {
		return NewScanLocator(idx.storage).Locate(pattern, targets)
	}

	hits := idx.index[wyhash.Hash(pattern, kmerSeed)]
	if len(hits) == 0 {
		return nil
	}

	// hits are sorted by target and position, so are targets.
	var locs []PatternLocation
	var j int
	k := int(idx.k)
	for _, hit := range hits {
		for j < len(targets) && targets[j] < hit.target {
			j++
		}
		if j == len(targets) {
			break
		}
		if targets[j] != hit.target {
			continue
		}
		seq := idx.storage.sequence(hit.target)
		if !bytes.Equal(seq[hit.position:int(hit.position)+k], pattern) { // hash collision
			continue
		}
		if n := len(locs); n > 0 && locs[n-1].Target == hit.target {
			locs[n-1].Positions = append(locs[n-1].Positions, hit.position)
		} else {
			locs = append(locs, PatternLocation{Target: hit.target, Positions: []uint32{hit.position}})
		}
	}
	return locs
}
