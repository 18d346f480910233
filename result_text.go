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
	"strconv"
	"sync"
)

// AlignmentStats contains the statistics of an alignment.
type AlignmentStats struct {
	AlignLen   uint32
	Matches    uint32
	Mismatches uint32
	Gaps       uint32
	GapRegions uint32
}

// Identity returns the percentage of matches in the alignment.
func (s AlignmentStats) Identity() float64 {
	if s.AlignLen == 0 {
		return 0
	}
	return float64(s.Matches) / float64(s.AlignLen) * 100
}

// Stats counts matches, mismatches, gaps and gap regions.
func (a *Alignment) Stats() AlignmentStats {
	var s AlignmentStats
	for _, op := range a.Operations {
		s.AlignLen += op.Count
		switch op.Operation {
		case MatchOperation:
			s.Matches += op.Count
		case SubstOperation:
			s.Mismatches += op.Count
		case InsertionOperation, DeletionOperation:
			s.Gaps += op.Count
			s.GapRegions++
		}
	}
	return s
}

// CIGAR returns the CIGAR string with '=' and 'X' for matches and mismatches.
func (a *Alignment) CIGAR() string {
	buf := poolBytesBuffer.Get().(*bytes.Buffer)
	buf.Reset()

	writeCIGAR(buf, a.Operations)

	text := buf.String()
	poolBytesBuffer.Put(buf)
	return text
}

func writeCIGAR(buf *bytes.Buffer, ops []AlignmentOperations) {
	for _, op := range ops {
		buf.WriteString(strconv.Itoa(int(op.Count)))
		buf.WriteByte(op.Operation.Byte())
	}
}

// AlignmentText returns the formatted alignment strings for the query,
// the alignment line and the target. query and target are the whole sequences.
// Do not forget to recycle them with RecycleAlignmentText().
func (a *Alignment) AlignmentText(query, target []byte) (*[]byte, *[]byte, *[]byte) {
	Q := poolBytes.Get().(*[]byte)
	A := poolBytes.Get().(*[]byte)
	T := poolBytes.Get().(*[]byte)

	v, h := a.Position.Query[0], a.Position.Target[0]
	var i uint32
	for _, op := range a.Operations {
		switch op.Operation {
		case MatchOperation:
			for i = 0; i < op.Count; i++ {
				*Q = append(*Q, query[v])
				*A = append(*A, '|')
				*T = append(*T, target[h])
				v++
				h++
			}
		case SubstOperation:
			for i = 0; i < op.Count; i++ {
				*Q = append(*Q, query[v])
				*A = append(*A, ' ')
				*T = append(*T, target[h])
				v++
				h++
			}
		case InsertionOperation:
			for i = 0; i < op.Count; i++ {
				*Q = append(*Q, query[v])
				*A = append(*A, ' ')
				*T = append(*T, '-')
				v++
			}
		case DeletionOperation:
			for i = 0; i < op.Count; i++ {
				*Q = append(*Q, '-')
				*A = append(*A, ' ')
				*T = append(*T, target[h])
				h++
			}
		}
	}

	return Q, A, T
}

var poolBytesBuffer = &sync.Pool{New: func() interface{} {
	return bytes.NewBuffer(make([]byte, 0, 1024))
}}

var poolBytes = &sync.Pool{New: func() interface{} {
	buf := make([]byte, 0, 1024)
	return &buf
}}

// RecycleAlignmentText recycles alignment strings.
func RecycleAlignmentText(Q, A, T *[]byte) {
	*Q = (*Q)[:0]
	*A = (*A)[:0]
	*T = (*T)[:0]
	poolBytes.Put(Q)
	poolBytes.Put(A)
	poolBytes.Put(T)
}
