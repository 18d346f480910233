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

// alignRight fills the wavefront from the start of q and t,
// until the end of either sequence is reached or the spare penalty is used up.
func (wf *WaveFront) alignRight(q, t []byte, p *Penalties, spare uint32) {
	wf.fill(q, t, p, spare, countForwardMatches)
}

// alignLeft is the same as alignRight, but from the ends of q and t to their starts.
func (wf *WaveFront) alignLeft(q, t []byte, p *Penalties, spare uint32) {
	wf.fill(q, t, p, spare, countReverseMatches)
}

func (wf *WaveFront) fill(q, t []byte, p *Penalties, spare uint32, count matchCounter) {
	lq, lt := uint32(len(q)), uint32(len(t))

	// score 0
	wfs := &wf.Scores[0]
	n := uint32(count(q, t, 0, 0))
	wfs.M[0] = newComponent(n, markerStart, 0)
	wfs.I[0] = Component{}
	wfs.D[0] = Component{}
	if n == lq || n == lt {
		wf.EndPoint = EndPoint{Score: 0, K: 0, ReachedEnd: true}
		return
	}

	spare = min(spare, wf.MaxPenalty)
	var k int
	var ok bool
	for s := uint32(1); s <= spare; s++ {
		wf.next(s, p, lq, lt)

		if k, ok = wf.extend(s, q, t, count); ok {
			wf.EndPoint = EndPoint{Score: s, K: k, ReachedEnd: true}
			return
		}
	}
	wf.EndPoint = EndPoint{Score: spare}
}

// next computes all components of score s from the previous scores.
// All components of s are overwritten.
func (wf *WaveFront) next(s uint32, p *Penalties, lq, lt uint32) {
	cur := &wf.Scores[s]

	var preX, preOE, preE *WaveFrontScore
	if s >= p.Mismatch {
		preX = &wf.Scores[s-p.Mismatch]
	}
	if s >= p.GapOpen+p.GapExt {
		preOE = &wf.Scores[s-p.GapOpen-p.GapExt]
	}
	if s >= p.GapExt {
		preE = &wf.Scores[s-p.GapExt]
	}

	var m, ins, del, c Component
	var ok bool
	var fr uint32
	var i int
	for k := -cur.MaxK; k <= cur.MaxK; k++ {
		m, ins, del = Component{}, Component{}, Component{}

		// insertion, one query base: from k+1
		if preOE != nil {
			if c, ok = preOE.m(k + 1); ok && c.FR() < lq {
				ins = newComponent(c.FR()+1, markerFromM, c.Deletions)
			}
		}
		if preE != nil {
			if c, ok = preE.i(k + 1); ok && c.FR() < lq && (ins.IsEmpty() || c.FR()+1 > ins.FR()) {
				ins = newComponent(c.FR()+1, markerFromI, c.Deletions)
			}
		}

		// deletion, one target base: from k-1
		if preOE != nil {
			if c, ok = preOE.m(k - 1); ok && int(c.FR())+k <= int(lt) {
				del = newComponent(c.FR(), markerFromM, c.Deletions+1)
			}
		}
		if preE != nil {
			if c, ok = preE.d(k - 1); ok && int(c.FR())+k <= int(lt) && (del.IsEmpty() || c.FR() > del.FR()) {
				del = newComponent(c.FR(), markerFromD, c.Deletions+1)
			}
		}

		// mismatch
		if preX != nil {
			if c, ok = preX.m(k); ok {
				fr = c.FR() + 1
				if fr <= lq && int(fr)+k <= int(lt) {
					m = newComponent(fr, markerFromM, c.Deletions)
				}
			}
		}
		if !ins.IsEmpty() && (m.IsEmpty() || ins.FR() >= m.FR()) {
			m = newComponent(ins.FR(), markerFromI, ins.Deletions)
		}
		if !del.IsEmpty() && (m.IsEmpty() || del.FR() >= m.FR()) {
			m = newComponent(del.FR(), markerFromD, del.Deletions)
		}

		i = k2i(k)
		cur.M[i], cur.I[i], cur.D[i] = m, ins, del
	}
}

// extend counts matches for all M components of score s.
// If any of them reaches the end of q or t, it returns the k of the one
// with the largest fr, ties are broken by the alignment length.
func (wf *WaveFront) extend(s uint32, q, t []byte, count matchCounter) (int, bool) {
	wfs := &wf.Scores[s]
	lq, lt := uint32(len(q)), uint32(len(t))

	var reached bool
	var bestK int
	var best Component
	var c Component
	var fr uint32
	var i int
	for k := -wfs.MaxK; k <= wfs.MaxK; k++ {
		i = k2i(k)
		c = wfs.M[i]
		if c.IsEmpty() {
			continue
		}
		fr = c.FR()
		fr += uint32(count(q, t, int(fr), int(fr)+k))
		c.Offset = fr<<markerBits | c.Marker()
		wfs.M[i] = c

		if fr == lq || uint32(int(fr)+k) == lt {
			if !reached || fr > best.FR() || (fr == best.FR() && c.Length() > best.Length()) {
				best, bestK = c, k
				reached = true
			}
		}
	}
	return bestK, reached
}
