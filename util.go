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

// gcd returns the greatest common divisor of a and b.
func gcd(a, b uint32) uint32 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// k2i converts k to the index of a component slice,
// where components are saved like this:
//
//	index: 0,  1,  2,  3,  4,  5,  6
//	k:     0, -1,  1, -2,  2, -3,  3
func k2i(k int) int {
	if k >= 0 {
		return k << 1
	}
	return ((-k) << 1) - 1
}

// i2k is the reverse of k2i.
func i2k(i int) int {
	if i == 0 {
		return 0
	}
	if i&1 == 1 { // negative
		return -((i + 1) >> 1)
	}
	return i >> 1
}

// matchCounter counts the consecutive matches of q and t,
// starting from the qi-th base of q and the ti-th base of t.
type matchCounter func(q, t []byte, qi, ti int) int

// countForwardMatches counts matches from left to right.
func countForwardMatches(q, t []byte, qi, ti int) int {
	var n int
	for qi < len(q) && ti < len(t) && q[qi] == t[ti] {
		n++
		qi++
		ti++
	}
	return n
}

// countReverseMatches counts matches from right to left,
// qi and ti are the numbers of bases already consumed from the ends.
func countReverseMatches(q, t []byte, qi, ti int) int {
	v, h := len(q)-1-qi, len(t)-1-ti
	var n int
	for v >= 0 && h >= 0 && q[v] == t[h] {
		n++
		v--
		h--
	}
	return n
}

// --------------------------------------------------------------

var complement [256]byte

func init() {
	for i := range complement {
		complement[i] = byte(i)
	}
	pairs := []string{"AT", "CG", "RY", "KM", "BV", "DH", "NN", "SS", "WW"}
	for _, p := range pairs {
		a, b := p[0], p[1]
		complement[a], complement[b] = b, a
		complement[a|0x20], complement[b|0x20] = b|0x20, a|0x20
	}
	complement['U'], complement['u'] = 'A', 'a'
}

// ReverseComplement returns the reverse complement of a nucleotide sequence
// in a new slice. IUPAC codes are supported, other bytes are kept.
func ReverseComplement(s []byte) []byte {
	rc := make([]byte, len(s))
	for i, j := 0, len(s)-1; j >= 0; i, j = i+1, j-1 {
		rc[i] = complement[s[j]]
	}
	return rc
}

// Alphabet is a set of allowed bytes of sequences.
type Alphabet [256]bool

// NewAlphabet creates an Alphabet from the letters, both cases are accepted.
func NewAlphabet(letters string) *Alphabet {
	var a Alphabet
	for i := 0; i < len(letters); i++ {
		c := letters[i]
		a[c] = true
		if c >= 'A' && c <= 'Z' {
			a[c|0x20] = true
		} else if c >= 'a' && c <= 'z' {
			a[c&^0x20] = true
		}
	}
	return &a
}

var (
	// DNA contains the four bases and N.
	DNA = NewAlphabet("ACGTN")
	// Protein contains the 20 amino acids plus X, B, Z, U, O and '*'.
	Protein = NewAlphabet("ACDEFGHIKLMNPQRSTVWYXBZUO*")
)

// ValidateSequence checks if all bytes of s are in the alphabet.
// The returned error wraps ErrUnsupportedSequence.
func ValidateSequence(s []byte, a *Alphabet) error {
	for i, c := range s {
		if !a[c] {
			return &SequenceError{Position: i, Char: c}
		}
	}
	return nil
}
