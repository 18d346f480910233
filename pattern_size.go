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

// calculateMaxPatternSize returns the largest k so that any alignment
// satisfying the cutoff keeps at least one exact k-sized pattern of the query.
// It returns 0 if no k is valid.
func calculateMaxPatternSize(p *Penalties, c *Cutoff, mpp *MinPenaltyForPattern) uint32 {
	lower := uint64(1)
	upper := upperValueOfK(c, mpp)

	var result uint64
	var mid uint64
	for lower <= upper {
		mid = lower + (upper-lower)/2
		if kCanBeUsedAsPatternSize(mid, p, c, mpp) {
			result = mid
			lower = mid + 1
		} else {
			upper = mid - 1
		}
	}
	return uint32(result)
}

func upperValueOfK(c *Cutoff, mpp *MinPenaltyForPattern) uint64 {
	v1 := PrecScale * uint64(mpp.Odd+mpp.Even) / (2 * uint64(c.MaxScaledPenaltyPerLength))
	v2 := (uint64(c.MinLength)+3)/2 - 1 // ceil((minl+2)/2) - 1
	return min(v1, v2)
}

func kCanBeUsedAsPatternSize(k uint64, p *Penalties, c *Cutoff, mpp *MinPenaltyForPattern) bool {
	m := calculateM(k, uint64(c.MinLength))
	var caseNumber uint64
	if m == 0 {
		m = 1
		caseNumber = 1
	} else {
		var ok bool
		caseNumber, ok = caseOfMinimumLength(k, m, p, c, mpp)
		if !ok {
			return false
		}
	}
	return nextFivePointsAreValid(caseNumber, k, m, p, c, mpp)
}

func calculateM(k, minLength uint64) uint64 {
	if k > minLength+2 {
		return 0
	}
	return (minLength + 2 - k) / (2 * k)
}

// caseOfMinimumLength checks if k is valid for an alignment with the
// minimum length, and returns which of the six cases the minimum length falls in.
func caseOfMinimumLength(k, m uint64, p *Penalties, c *Cutoff, mpp *MinPenaltyForPattern) (uint64, bool) {
	minl := uint64(c.MinLength)
	o, e := uint64(p.GapOpen), uint64(p.GapExt)
	odd, even := uint64(mpp.Odd), uint64(mpp.Even)
	pc := penaltyOfClosing(p)

	var caseNumber, minPenalty uint64
	switch {
	case minl == 2*m*k+k-2:
		caseNumber = 1
		minPenalty = m*odd + (m-1)*even
	case minl == 2*m*k+k-1:
		caseNumber = 2
		minPenalty = m*odd + (m-1)*even + o + e - odd
	case minl <= 2*m*k+2*k-2:
		caseNumber = 3
		oneMorePattern := m*odd + m*even
		if minl+1 < 2*m*k+k {
			minPenalty = oneMorePattern
		} else {
			fromPrevious := m*odd + (m-1)*even + o + e - odd + e*(minl+1-2*m*k-k)
			minPenalty = min(oneMorePattern, fromPrevious)
		}
	case minl == 2*m*k+2*k-1:
		caseNumber = 4
		minPenalty = m*odd + m*even + o + e - even
	case minl == 2*m*k+2*k:
		caseNumber = 5
		minPenalty = m*odd + m*even + o + e - even + pc
	default:
		caseNumber = 6
		oneMorePattern := (m+1)*odd + m*even
		if minl < 2*m*k+2*k {
			minPenalty = oneMorePattern
		} else {
			fromPrevious := m*odd + m*even + o + e - even + pc + e*(minl-2*m*k-2*k)
			minPenalty = min(oneMorePattern, fromPrevious)
		}
	}

	if exceedsCutoff(minPenalty, minl, c) {
		return caseNumber, true
	}
	return 0, false
}

// nextFivePointsAreValid checks the five lengths following the minimum length,
// shifted by one more pair of patterns for the cases already passed.
func nextFivePointsAreValid(caseNumber, k, m uint64, p *Penalties, c *Cutoff, mpp *MinPenaltyForPattern) bool {
	o, e := uint64(p.GapOpen), uint64(p.GapExt)
	odd, even := uint64(mpp.Odd), uint64(mpp.Even)
	pc := penaltyOfClosing(p)

	var l, pen uint64

	l = 2*m*k + k - 2
	pen = m*odd + (m-1)*even
	if caseNumber > 1 {
		l += 2 * k
		pen += odd + even
	}
	if !exceedsCutoff(pen, l, c) {
		return false
	}

	l = 2*m*k + k - 1
	pen = m*odd + (m-1)*even + o + e - odd
	if caseNumber > 2 {
		l += 2 * k
		pen += odd + even
	}
	if !exceedsCutoff(pen, l, c) {
		return false
	}

	l = 2*m*k + 2*k - 2
	pen = m*odd + m*even
	if caseNumber > 3 {
		l += 2 * k
		pen += o + e - even
	}
	if !exceedsCutoff(pen, l, c) {
		return false
	}

	l = 2*m*k + 2*k - 1
	pen = m*odd + m*even + o + e - even
	if caseNumber > 4 {
		l += 2 * k
		pen += even
	}
	if !exceedsCutoff(pen, l, c) {
		return false
	}

	l = 2*m*k + 2*k
	pen = m*odd + m*even + o + e - even + pc
	if caseNumber > 5 {
		l += 2 * k
		pen += even
	}
	return exceedsCutoff(pen, l, c)
}

// exceedsCutoff tells if an alignment with the penalty and length can not satisfy the cutoff.
func exceedsCutoff(penalty, length uint64, c *Cutoff) bool {
	return penalty*PrecScale > uint64(c.MaxScaledPenaltyPerLength)*length
}

func penaltyOfClosing(p *Penalties) uint64 {
	if p.GapOpen+p.GapExt <= p.Mismatch {
		return 0
	}
	return uint64(p.GapExt)
}
