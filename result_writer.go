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
	"fmt"
	"io"
	"slices"
	"strconv"
)

// ResultWriter writes results of queries in one format.
type ResultWriter interface {
	Write(r *QueryResult) error
	Flush() error
}

// WriterOptions contains the options of result writers.
type WriterOptions struct {
	// RunID is written in JSON records.
	RunID string
	// Header writes the header line of TSV or the header of SAM.
	Header bool
	// Reference is needed by SAM for the @SQ lines.
	Reference *Reference
}

var resultWriters = map[string]func(w io.Writer, opt *WriterOptions) ResultWriter{}

// RegisterResultWriter registers a writer constructor of a format,
// the last one wins.
func RegisterResultWriter(format string, fn func(w io.Writer, opt *WriterOptions) ResultWriter) {
	resultWriters[format] = fn
}

// ResultFormats returns the sorted names of registered formats.
func ResultFormats() []string {
	formats := make([]string, 0, len(resultWriters))
	for f := range resultWriters {
		formats = append(formats, f)
	}
	slices.Sort(formats)
	return formats
}

// NewResultWriter creates a writer of the format.
func NewResultWriter(format string, w io.Writer, opt *WriterOptions) (ResultWriter, error) {
	fn, ok := resultWriters[format]
	if !ok {
		return nil, fmt.Errorf("sigalign: unknown output format %q, available: %v", format, ResultFormats())
	}
	if opt == nil {
		opt = &WriterOptions{}
	}
	return fn(w, opt), nil
}

func init() {
	RegisterResultWriter("tsv", newTSVWriter)
	RegisterResultWriter("json", newJSONWriter)
	RegisterResultWriter("sam", newSAMWriter)
}

type strandResult struct {
	strand byte
	seq    []byte
	result LabeledQueryAlignment
}

func strands(r *QueryResult) []strandResult {
	s := []strandResult{{strand: '+', seq: r.Query.Seq, result: r.Forward}}
	if r.Reverse != nil {
		s = append(s, strandResult{strand: '-', result: r.Reverse})
	}
	return s
}

// --------------------------------------------------------------

// TSVHeader is the header line of the TSV format.
// Positions are 0-based and half-open.
const TSVHeader = "query\tqlen\tstrand\ttarget\ttarget_index\tpenalty\tlength\tqstart\tqend\ttstart\ttend\tidentity\tcigar"

type tsvWriter struct {
	w      *bufio.Writer
	header bool
}

func newTSVWriter(w io.Writer, opt *WriterOptions) ResultWriter {
	return &tsvWriter{w: bufio.NewWriter(w), header: opt.Header}
}

func (tw *tsvWriter) Write(r *QueryResult) error {
	if tw.header {
		tw.w.WriteString(TSVHeader)
		tw.w.WriteByte('\n')
		tw.header = false
	}
	if r.Err != nil {
		return nil
	}
	for _, sr := range strands(r) {
		for _, ta := range sr.result {
			for i := range ta.Alignments {
				a := &ta.Alignments[i]
				fmt.Fprintf(tw.w, "%s\t%d\t%c\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%.2f\t%s\n",
					r.Query.ID, len(r.Query.Seq), sr.strand, ta.Label, ta.Index,
					a.Penalty, a.Length,
					a.Position.Query[0], a.Position.Query[1],
					a.Position.Target[0], a.Position.Target[1],
					a.Stats().Identity(), a.CIGAR())
			}
		}
	}
	return nil
}

func (tw *tsvWriter) Flush() error { return tw.w.Flush() }

// --------------------------------------------------------------

// JSONRecord is one line of the JSON Lines format.
type JSONRecord struct {
	RunID   string                `json:"run_id,omitempty"`
	Query   string                `json:"query"`
	Strand  string                `json:"strand"`
	Results LabeledQueryAlignment `json:"results"`
	Error   string                `json:"error,omitempty"`
}

type jsonWriter struct {
	w     *bufio.Writer
	enc   *json.Encoder
	runID string
}

func newJSONWriter(w io.Writer, opt *WriterOptions) ResultWriter {
	bw := bufio.NewWriter(w)
	return &jsonWriter{w: bw, enc: json.NewEncoder(bw), runID: opt.RunID}
}

func (jw *jsonWriter) Write(r *QueryResult) error {
	if r.Err != nil {
		return jw.enc.Encode(JSONRecord{RunID: jw.runID, Query: r.Query.ID, Strand: "+", Error: r.Err.Error()})
	}
	for _, sr := range strands(r) {
		rec := JSONRecord{RunID: jw.runID, Query: r.Query.ID, Strand: string(sr.strand), Results: sr.result}
		if rec.Results == nil {
			rec.Results = LabeledQueryAlignment{}
		}
		if err := jw.enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}

func (jw *jsonWriter) Flush() error { return jw.w.Flush() }

// --------------------------------------------------------------

const (
	samFlagUnmapped  = 0x4
	samFlagReverse   = 0x10
	samFlagSecondary = 0x100
)

type samWriter struct {
	w      *bufio.Writer
	header bool
	ref    *Reference
	buf    bytes.Buffer
}

func newSAMWriter(w io.Writer, opt *WriterOptions) ResultWriter {
	return &samWriter{w: bufio.NewWriter(w), header: opt.Header, ref: opt.Reference}
}

func (sw *samWriter) writeHeader() error {
	sw.w.WriteString("@HD\tVN:1.6\tSO:unsorted\n")
	if sw.ref != nil {
		for t := uint32(0); t < sw.ref.TargetCount(); t++ {
			seq, err := sw.ref.Sequence(t)
			if err != nil {
				return err
			}
			fmt.Fprintf(sw.w, "@SQ\tSN:%s\tLN:%d\n", sw.ref.Label(t), len(seq))
		}
	}
	sw.w.WriteString("@PG\tID:sigalign\tPN:sigalign\n")
	return nil
}

func (sw *samWriter) Write(r *QueryResult) error {
	if sw.header {
		if err := sw.writeHeader(); err != nil {
			return err
		}
		sw.header = false
	}
	if r.Err != nil {
		return nil
	}

	var mapped bool
	for _, sr := range strands(r) {
		seq := sr.seq
		if sr.strand == '-' {
			seq = ReverseComplement(r.Query.Seq)
		}
		for _, ta := range sr.result {
			for i := range ta.Alignments {
				var flag int
				if sr.strand == '-' {
					flag |= samFlagReverse
				}
				if mapped {
					flag |= samFlagSecondary
				}
				mapped = true
				sw.writeRecord(r.Query.ID, flag, ta.Label, &ta.Alignments[i], seq)
			}
		}
	}
	if !mapped {
		fmt.Fprintf(sw.w, "%s\t%d\t*\t0\t0\t*\t*\t0\t0\t%s\t*\n", r.Query.ID, samFlagUnmapped, r.Query.Seq)
	}
	return nil
}

func (sw *samWriter) writeRecord(qname string, flag int, rname string, a *Alignment, seq []byte) {
	sw.buf.Reset()
	if a.Position.Query[0] > 0 {
		sw.buf.WriteString(strconv.Itoa(int(a.Position.Query[0])))
		sw.buf.WriteByte('S')
	}
	writeCIGAR(&sw.buf, a.Operations)
	if clip := len(seq) - int(a.Position.Query[1]); clip > 0 {
		sw.buf.WriteString(strconv.Itoa(clip))
		sw.buf.WriteByte('S')
	}

	st := a.Stats()
	fmt.Fprintf(sw.w, "%s\t%d\t%s\t%d\t255\t%s\t*\t0\t0\t%s\t*\tNM:i:%d\tZP:i:%d\n",
		qname, flag, rname, a.Position.Target[0]+1, sw.buf.Bytes(), seq,
		st.Mismatches+st.Gaps, a.Penalty)
}

func (sw *samWriter) Flush() error { return sw.w.Flush() }
