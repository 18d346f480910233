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
	"context"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Query is a named query sequence.
type Query struct {
	ID  string
	Seq []byte
}

// QueryResult is the result of a query in a batch.
// Index is the order of the query in the input.
type QueryResult struct {
	Index   int
	Query   *Query
	Forward LabeledQueryAlignment
	Reverse LabeledQueryAlignment // only with BatchOptions.BothStrands
	Err     error                 // error of the query, e.g., an unsupported sequence
}

// Count returns the number of alignments of both strands.
func (r *QueryResult) Count() int {
	return r.Forward.Count() + r.Reverse.Count()
}

// BatchOptions contains the options of AlignBatch.
type BatchOptions struct {
	// Workers is the number of goroutines, each owns an Aligner.
	// 0 for runtime.NumCPU().
	Workers int
	// BothStrands also aligns the reverse complement of queries.
	// With a limit of the Aligner, both strands share it: the reverse strand
	// only gets the alignments left by the forward strand.
	BothStrands bool
	// Alphabet is used to validate queries if not nil.
	Alphabet *Alphabet

	Logger *slog.Logger
}

type batchJob struct {
	index int
	query *Query
}

// AlignBatch aligns queries from the channel with multiple Aligners sharing the
// Regulator and the Reference, and calls emit for every query in input order.
// emit is called from a single goroutine. A query failing validation is emitted
// with Err set, while an error returned by emit stops the batch.
func AlignBatch(ctx context.Context, reg *Regulator, opt *Options, ref *Reference, bopt *BatchOptions,
	queries <-chan *Query, emit func(*QueryResult) error) error {
	if bopt == nil {
		bopt = &BatchOptions{}
	}
	workers := bopt.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	aligners := make([]*Aligner, workers)
	for i := range aligners {
		algn, err := NewAligner(reg, opt)
		if err != nil {
			return err
		}
		aligners[i] = algn
	}

	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan batchJob, workers)
	results := make(chan *QueryResult, workers)

	// dispatcher
	g.Go(func() error {
		defer close(jobs)
		var i int
		for {
			select {
			case q, ok := <-queries:
				if !ok {
					return nil
				}
				select {
				case jobs <- batchJob{index: i, query: q}:
				case <-ctx.Done():
					return ctx.Err()
				}
				i++
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	// workers
	g.Go(func() error {
		var wg errgroup.Group
		for _, algn := range aligners {
			wg.Go(func() error {
				for job := range jobs {
					r := alignQuery(algn, ref, bopt, job)
					select {
					case results <- r:
					case <-ctx.Done():
						return ctx.Err()
					}
				}
				return nil
			})
		}
		err := wg.Wait()
		close(results)
		return err
	})

	// collector, keeping the input order
	g.Go(func() error {
		pending := make(map[int]*QueryResult, workers)
		var next int
		for r := range results {
			pending[r.Index] = r
			for {
				x, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				if err := emit(x); err != nil {
					return err
				}
				next++
			}
		}
		return nil
	})

	err := g.Wait()
	if bopt.Logger != nil {
		bopt.Logger.Debug("batch finished", "workers", workers, "error", err)
	}
	return err
}

func alignQuery(algn *Aligner, ref *Reference, bopt *BatchOptions, job batchJob) *QueryResult {
	r := &QueryResult{Index: job.index, Query: job.query}
	if bopt.Alphabet != nil {
		if err := ValidateSequence(job.query.Seq, bopt.Alphabet); err != nil {
			r.Err = err
			return r
		}
	}
	r.Forward = algn.AlignLabeled(job.query.Seq, ref)
	if bopt.BothStrands {
		r.Reverse = alignReverseStrand(algn, ref, job.query.Seq, uint32(r.Forward.Count()))
	}
	return r
}

// alignReverseStrand aligns the reverse complement of the query with the limit
// left by n forward alignments.
func alignReverseStrand(algn *Aligner, ref *Reference, query []byte, n uint32) LabeledQueryAlignment {
	limit, ok := algn.Limit()
	if !ok {
		return algn.AlignLabeled(ReverseComplement(query), ref)
	}
	if n >= limit {
		return LabeledQueryAlignment{}
	}
	return ref.labelResult(algn.align(ReverseComplement(query), ref, limit-n))
}
