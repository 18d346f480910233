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
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testQueryResult() *QueryResult {
	return &QueryResult{
		Index: 0,
		Query: &Query{ID: "q1", Seq: []byte("GGACGTTACGTCC")},
		Forward: LabeledQueryAlignment{{
			Index: 1,
			Label: "chr2",
			Alignments: []Alignment{{
				Penalty:  8,
				Length:   10,
				Position: AlignmentPosition{Query: [2]uint32{2, 11}, Target: [2]uint32{2, 11}},
				Operations: []AlignmentOperations{
					{MatchOperation, 4}, {InsertionOperation, 1}, {MatchOperation, 2}, {DeletionOperation, 1}, {MatchOperation, 2},
				},
			}},
		}},
	}
}

func TestResultFormats(t *testing.T) {
	assert.Equal(t, []string{"json", "sam", "tsv"}, ResultFormats())

	_, err := NewResultWriter("xml", &bytes.Buffer{}, nil)
	assert.Error(t, err)
}

func TestTSVWriter(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewResultWriter("tsv", &buf, &WriterOptions{Header: true})
	require.NoError(t, err)

	require.NoError(t, w.Write(testQueryResult()))
	require.NoError(t, w.Write(&QueryResult{Query: &Query{ID: "bad"}, Err: ErrUnsupportedSequence}))
	require.NoError(t, w.Flush())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, TSVHeader, lines[0])
	assert.Equal(t, "q1\t13\t+\tchr2\t1\t8\t10\t2\t11\t2\t11\t80.00\t4=1I2=1D2=", lines[1])
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewResultWriter("json", &buf, &WriterOptions{RunID: "run-1"})
	require.NoError(t, err)

	r := testQueryResult()
	r.Reverse = LabeledQueryAlignment{}
	require.NoError(t, w.Write(r))
	require.NoError(t, w.Write(&QueryResult{Query: &Query{ID: "bad"}, Err: ErrUnsupportedSequence}))
	require.NoError(t, w.Flush())

	var records []JSONRecord
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var rec JSONRecord
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		records = append(records, rec)
	}
	require.Len(t, records, 3)

	assert.Equal(t, "run-1", records[0].RunID)
	assert.Equal(t, "+", records[0].Strand)
	assert.Equal(t, r.Forward, records[0].Results)

	assert.Equal(t, "-", records[1].Strand)
	assert.Empty(t, records[1].Results)

	assert.Equal(t, "bad", records[2].Query)
	assert.NotEmpty(t, records[2].Error)
}

func TestSAMWriter(t *testing.T) {
	storage := NewInMemoryStorage()
	storage.Add("chr1", []byte("ACGT"))
	storage.Add("chr2", []byte("TTACGTACAGTAA"))
	ref, err := NewReference(storage, NewScanLocator(storage))
	require.NoError(t, err)

	var buf bytes.Buffer
	w, err := NewResultWriter("sam", &buf, &WriterOptions{Header: true, Reference: ref})
	require.NoError(t, err)

	r := testQueryResult()
	r.Forward[0].Alignments = append(r.Forward[0].Alignments, r.Forward[0].Alignments[0])
	require.NoError(t, w.Write(r))
	require.NoError(t, w.Write(&QueryResult{Query: &Query{ID: "q2", Seq: []byte("AAAA")}}))
	require.NoError(t, w.Flush())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "@HD\tVN:1.6\tSO:unsorted", lines[0])
	assert.Equal(t, "@SQ\tSN:chr1\tLN:4", lines[1])
	assert.Equal(t, "@SQ\tSN:chr2\tLN:13", lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "@PG\t"))

	assert.Equal(t, "q1\t0\tchr2\t3\t255\t2S4=1I2=1D2=2S\t*\t0\t0\tGGACGTTACGTCC\t*\tNM:i:2\tZP:i:8", lines[4])
	assert.True(t, strings.HasPrefix(lines[5], "q1\t256\tchr2\t"))
	assert.Equal(t, "q2\t4\t*\t0\t0\t*\t*\t0\t0\tAAAA\t*", lines[6])
}
