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

// Component is one cell of a wavefront.
// The furthest-reaching point (fr) is the number of query bases consumed
// on diagonal k (k = target consumed - query consumed),
// and the lowest 3 bits of Offset store the backtrace marker:
//
//	Offset = fr<<markerBits | marker
//
// Deletions is the number of deletions along the path to this component,
// so the alignment length is fr + Deletions.
type Component struct {
	Offset    uint32
	Deletions uint32
}

// FR returns the furthest-reaching point.
func (c Component) FR() uint32 { return c.Offset >> markerBits }

// Marker returns the backtrace marker.
func (c Component) Marker() uint32 { return c.Offset & markerMask }

// IsEmpty tells if the component is not reached.
func (c Component) IsEmpty() bool { return c.Offset&markerMask == markerEmpty }

// Length returns the alignment length to this component.
func (c Component) Length() uint32 { return c.Offset>>markerBits + c.Deletions }

func newComponent(fr, marker, deletions uint32) Component {
	return Component{Offset: fr<<markerBits | marker, Deletions: deletions}
}

// WaveFrontScore holds the M, I and D components of one score.
// Components of k are saved at k2i(k), and k is in [-MaxK, MaxK].
type WaveFrontScore struct {
	MaxK    int
	M, I, D []Component
}

// m returns the non-empty M component of k.
func (wfs *WaveFrontScore) m(k int) (Component, bool) {
	if k > wfs.MaxK || k < -wfs.MaxK {
		return Component{}, false
	}
	c := wfs.M[k2i(k)]
	return c, !c.IsEmpty()
}

func (wfs *WaveFrontScore) i(k int) (Component, bool) {
	if k > wfs.MaxK || k < -wfs.MaxK {
		return Component{}, false
	}
	c := wfs.I[k2i(k)]
	return c, !c.IsEmpty()
}

func (wfs *WaveFrontScore) d(k int) (Component, bool) {
	if k > wfs.MaxK || k < -wfs.MaxK {
		return Component{}, false
	}
	c := wfs.D[k2i(k)]
	return c, !c.IsEmpty()
}

// EndPoint is where a wavefront stops.
// If ReachedEnd is false, Score is the last filled score and K is meaningless.
type EndPoint struct {
	Score      uint32
	K          int
	ReachedEnd bool
}

// WaveFront is the set of wavefront scores of one side of an anchor,
// allocated once for the maximum penalty and reused for all extensions.
type WaveFront struct {
	MaxPenalty uint32
	EndPoint   EndPoint
	Scores     []WaveFrontScore
}

// maxKOfScore returns the largest |k| a score can reach.
func maxKOfScore(p *Penalties, s uint32) int {
	if s < p.GapOpen+p.GapExt {
		return 0
	}
	return int((s - p.GapOpen) / p.GapExt)
}

// NewWaveFront allocates a wavefront for scores in [0, maxPenalty].
// Components of all scores share three contiguous slices.
func NewWaveFront(p *Penalties, maxPenalty uint32) *WaveFront {
	wf := &WaveFront{
		MaxPenalty: maxPenalty,
		Scores:     make([]WaveFrontScore, maxPenalty+1),
	}

	var total int
	for s := uint32(0); s <= maxPenalty; s++ {
		total += 2*maxKOfScore(p, s) + 1
	}
	M := make([]Component, total)
	I := make([]Component, total)
	D := make([]Component, total)

	var start, n int
	for s := uint32(0); s <= maxPenalty; s++ {
		wfs := &wf.Scores[s]
		wfs.MaxK = maxKOfScore(p, s)
		n = 2*wfs.MaxK + 1
		wfs.M = M[start : start+n : start+n]
		wfs.I = I[start : start+n : start+n]
		wfs.D = D[start : start+n : start+n]
		start += n
	}

	return wf
}

// componentsCount returns the number of components of all scores.
func (wf *WaveFront) componentsCount() int {
	var n int
	for i := range wf.Scores {
		n += len(wf.Scores[i].M)
	}
	return n
}

// endComponent returns the M component of the end point.
func (wf *WaveFront) endComponent() Component {
	return wf.Scores[wf.EndPoint.Score].M[k2i(wf.EndPoint.K)]
}
