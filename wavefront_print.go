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
	"io"
	"sync"
)

// Print lists the non-empty components of the filled scores.
func (wf *WaveFront) Print(wtr io.Writer) {
	last := min(wf.EndPoint.Score, wf.MaxPenalty)
	for s := uint32(0); s <= last; s++ {
		wfs := &wf.Scores[s]
		printComponents(wtr, "M", s, wfs.MaxK, wfs.M)
		printComponents(wtr, "I", s, wfs.MaxK, wfs.I)
		printComponents(wtr, "D", s, wfs.MaxK, wfs.D)
	}
	if wf.EndPoint.ReachedEnd {
		fmt.Fprintf(wtr, "end: s=%d, k=%d\n", wf.EndPoint.Score, wf.EndPoint.K)
	} else {
		fmt.Fprintf(wtr, "end: s=%d, not reached\n", wf.EndPoint.Score)
	}
}

func printComponents(wtr io.Writer, name string, s uint32, maxK int, comps []Component) {
	var printed bool
	for i, c := range comps {
		if c.IsEmpty() {
			continue
		}
		if !printed {
			fmt.Fprintf(wtr, "%s%d: k[%d, %d]: ", name, s, -maxK, maxK)
			printed = true
		}
		fmt.Fprintf(wtr, " k(%d):%d(%s)", i2k(i), c.FR(), marker2str(c.Marker()))
	}
	if printed {
		fmt.Fprintln(wtr)
	}
}

// Plot draws the M components as a text table, rows are query bases and
// columns are target bases. A cell contains the score and the arrow of
// the backtrace marker of the component ending at it, and matched cells
// before it are filled with the same score.
// q and t should be the sequences filled with alignRight.
func (wf *WaveFront) Plot(q, t []byte, wtr io.Writer) {
	m := poolMatrix.Get().(*[]*[]int32)
	for range q {
		r := poolRow.Get().(*[]int32)
		for range t {
			*r = append(*r, -1)
		}
		*m = append(*m, r)
	}

	last := min(wf.EndPoint.Score, wf.MaxPenalty)
	var v, h int
	for s := uint32(0); s <= last; s++ {
		wfs := &wf.Scores[s]
		for i, c := range wfs.M {
			if c.IsEmpty() {
				continue
			}
			v = int(c.FR()) - 1
			h = v + i2k(i)
			if v < 0 || h < 0 || v >= len(q) || h >= len(t) {
				continue
			}
			if (*(*m)[v])[h] < 0 {
				(*(*m)[v])[h] = int32(s)<<markerBits | int32(c.Marker())
			}
			for v, h = v-1, h-1; v >= 0 && h >= 0; v, h = v-1, h-1 { // yes, in reverse order
				if (*(*m)[v])[h] >= 0 || q[v+1] != t[h+1] {
					break
				}
				(*(*m)[v])[h] = int32(s)<<markerBits | int32(markerStart)
			}
		}
	}

	for _, b := range t {
		fmt.Fprintf(wtr, "\t%c", b)
	}
	fmt.Fprintln(wtr)
	for v, b := range q {
		fmt.Fprintf(wtr, "%c", b)
		for _, x := range *(*m)[v] {
			if x < 0 {
				fmt.Fprintf(wtr, "\t")
			} else {
				fmt.Fprintf(wtr, "\t%c%d", markerArrows[uint32(x)&markerMask], uint32(x)>>markerBits)
			}
		}
		fmt.Fprintln(wtr)
	}

	recycleMatrix(m)
}

var poolMatrix = &sync.Pool{New: func() interface{} {
	tmp := make([]*[]int32, 0, 128)
	return &tmp
}}

var poolRow = &sync.Pool{New: func() interface{} {
	tmp := make([]int32, 0, 128)
	return &tmp
}}

func recycleMatrix(m *[]*[]int32) {
	for _, r := range *m {
		if r != nil {
			*r = (*r)[:0]
			poolRow.Put(r)
		}
	}
	*m = (*m)[:0]
	poolMatrix.Put(m)
}
