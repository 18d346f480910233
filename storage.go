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

// InMemoryStorage keeps all target sequences in one concatenated slice.
type InMemoryStorage struct {
	seqs    []byte
	offsets []uint32 // offsets[i] is the start of target i, with a final sentinel
	labels  []string
}

// NewInMemoryStorage creates an empty storage.
func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{offsets: []uint32{0}}
}

// Add appends a target and returns its index. The sequence is copied.
func (s *InMemoryStorage) Add(label string, seq []byte) uint32 {
	s.seqs = append(s.seqs, seq...)
	s.offsets = append(s.offsets, uint32(len(s.seqs)))
	s.labels = append(s.labels, label)
	return uint32(len(s.labels) - 1)
}

// TargetCount returns the number of targets.
func (s *InMemoryStorage) TargetCount() uint32 { return uint32(len(s.labels)) }

// TotalLength returns the total length of all targets.
func (s *InMemoryStorage) TotalLength() int { return len(s.seqs) }

// FillBuffer copies the sequence of the target to buf.
func (s *InMemoryStorage) FillBuffer(target uint32, buf *[]byte) {
	*buf = append((*buf)[:0], s.sequence(target)...)
}

// Label returns the label of the target.
func (s *InMemoryStorage) Label(target uint32) string { return s.labels[target] }

// sequence returns the sequence of the target without copying.
func (s *InMemoryStorage) sequence(target uint32) []byte {
	return s.seqs[s.offsets[target]:s.offsets[target+1]]
}
