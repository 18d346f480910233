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

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"
	"github.com/shenwei356/sigalign"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var alignCmd = &cobra.Command{
	Use:   "align [flags] -r <target files> [query files]",
	Short: "Align queries to targets",
	Long: fmt.Sprintf(`Align queries to targets

Attention:
  1. Input format should be (gzipped) FASTA or FASTQ from files or stdin.
  2. Positions in TSV and JSON output are 0-based and half-open,
     SAM positions are 1-based.
  3. The penalties are divided by their greatest common divisor internally,
     reported penalties are in the original scale.

Output formats: %s

TSV columns:
  %s
`, strings.Join(sigalign.ResultFormats(), ", "), strings.ReplaceAll(sigalign.TSVHeader, "\t", ", ")),
	RunE: func(cmd *cobra.Command, args []string) error {
		seq.ValidateSeq = false
		timeStart := time.Now()

		cfg, err := parameters(cmd)
		if err != nil {
			return err
		}
		reg, err := cfg.regulator()
		if err != nil {
			return err
		}
		opt, err := cfg.options()
		if err != nil {
			return err
		}

		refFiles := getFlagStringSlice(cmd, "reference")
		if len(refFiles) == 0 {
			return fmt.Errorf("flag -r/--reference needed")
		}
		queryFiles := args
		if len(queryFiles) == 0 {
			logger.Info("no query files given, reading from stdin")
			queryFiles = []string{"-"}
		}

		runID := uuid.NewString()
		logger.Info("run started", "run_id", runID, "parameters", reg.String(), "mode", opt.Mode)

		storage, err := sigalign.ReadFastxToStorage(refFiles...)
		if err != nil {
			return err
		}
		var locator sigalign.PatternLocator
		if k := cfg.kmerSize(reg.PatternSize()); k > 0 {
			if k != reg.PatternSize() {
				logger.Warn("k-mer size differs from the pattern size, patterns are located by scanning targets",
					"kmer", k, "pattern_size", reg.PatternSize())
			}
			locator = sigalign.NewKmerIndex(storage, k)
		} else {
			locator = sigalign.NewScanLocator(storage)
		}
		ref, err := sigalign.NewReference(storage, locator)
		if err != nil {
			return err
		}
		logger.Info("targets loaded",
			"targets", humanize.Comma(int64(storage.TargetCount())),
			"bases", humanize.Comma(int64(storage.TotalLength())),
			"elapsed", time.Since(timeStart).String())

		outfh, closeOut, err := createOutput(getFlagString(cmd, "out-file"))
		if err != nil {
			return err
		}
		var closed bool
		defer func() {
			if !closed {
				closeOut()
			}
		}()
		wtr, err := sigalign.NewResultWriter(cfg.Format, outfh, &sigalign.WriterOptions{
			RunID:     runID,
			Header:    !getFlagBool(cmd, "no-header"),
			Reference: ref,
		})
		if err != nil {
			return err
		}

		metrics := newAlignMetrics()
		if addr := getFlagString(cmd, "metrics-addr"); addr != "" {
			stop := metrics.serve(addr)
			defer func() {
				if err := stop(); err != nil {
					logger.Warn("metrics server shutdown", "addr", addr, "error", err)
				}
			}()
		}

		var pbar *progress
		if !getFlagBool(cmd, "quiet") && !getFlagBool(cmd, "no-progress") {
			pbar = newProgress()
		}

		var total, matched, alignments int
		emit := func(r *sigalign.QueryResult) error {
			metrics.observe(r)
			pbar.increment()
			total++
			if r.Err != nil {
				logger.Warn("query skipped", "query", r.Query.ID, "error", r.Err)
			} else if n := r.Count(); n > 0 {
				matched++
				alignments += n
			}
			return wtr.Write(r)
		}

		bopt := &sigalign.BatchOptions{
			Workers:     getFlagInt(cmd, "threads"),
			BothStrands: cfg.BothStrands,
			Alphabet:    cfg.alphabet(),
			Logger:      logger,
		}

		g, ctx := errgroup.WithContext(context.Background())
		queries := make(chan *sigalign.Query, bopt.Workers)
		g.Go(func() error {
			defer close(queries)
			return readQueries(ctx, queryFiles, queries)
		})
		g.Go(func() error {
			return sigalign.AlignBatch(ctx, reg, opt, ref, bopt, queries, emit)
		})
		err = g.Wait()
		pbar.done()
		if err != nil {
			return err
		}
		if err = wtr.Flush(); err != nil {
			return err
		}
		closed = true
		if err = closeOut(); err != nil {
			return fmt.Errorf("close output: %w", err)
		}

		logger.Info("run finished",
			"run_id", runID,
			"queries", humanize.Comma(int64(total)),
			"matched", humanize.Comma(int64(matched)),
			"alignments", humanize.Comma(int64(alignments)),
			"elapsed", time.Since(timeStart).String())
		return nil
	},
}

// createOutput opens the output file, "-" for stdout. The returned function
// closes the file, and it does nothing for stdout.
func createOutput(file string) (io.Writer, func() error, error) {
	if file == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	fh, err := os.Create(file)
	if err != nil {
		return nil, nil, err
	}
	return fh, fh.Close, nil
}

// readQueries sends queries of the files to the channel.
func readQueries(ctx context.Context, files []string, queries chan<- *sigalign.Query) error {
	for _, file := range files {
		fastxReader, err := fastx.NewReader(nil, file, "")
		if err != nil {
			return fmt.Errorf("read query file %s: %w", file, err)
		}

		var record *fastx.Record
		for {
			record, err = fastxReader.Read()
			if err != nil {
				if err == io.EOF {
					break
				}
				fastxReader.Close()
				return fmt.Errorf("read query file %s: %w", file, err)
			}
			q := &sigalign.Query{
				ID:  string(record.ID),
				Seq: append([]byte(nil), record.Seq.Seq...),
			}
			select {
			case queries <- q:
			case <-ctx.Done():
				fastxReader.Close()
				return ctx.Err()
			}
		}
		fastxReader.Close()
	}
	return nil
}

func init() {
	rootCmd.AddCommand(alignCmd)

	addParameterFlags(alignCmd)
	alignCmd.Flags().StringSliceP("reference", "r", nil, "target sequence files, (gzipped) FASTA/FASTQ")
	alignCmd.Flags().StringP("out-file", "O", "-", `out file, "-" for stdout`)
	alignCmd.Flags().StringP("format", "f", "tsv", "output format: "+strings.Join(sigalign.ResultFormats(), ", "))
	alignCmd.Flags().BoolP("no-header", "H", false, "do not print the header of TSV or SAM")
	alignCmd.Flags().StringP("mode", "m", "local", `alignment mode: "local" or "semi-global"`)
	alignCmd.Flags().Uint32P("limit", "n", 0, "maximum alignments of a query, 0 for no limit")
	alignCmd.Flags().IntP("kmer", "k", -1, "k-mer size of the target index, -1 for the pattern size, 0 for scanning targets")
	alignCmd.Flags().BoolP("both-strands", "b", false, "also align the reverse complement of queries")
	alignCmd.Flags().StringP("alphabet", "a", "dna", `alphabet to validate queries: "dna", "protein" or "none"`)
	alignCmd.Flags().StringP("metrics-addr", "", "", "serve prometheus metrics at the address, e.g., :9090")
	alignCmd.Flags().BoolP("no-progress", "", false, "do not show the progress bar")
}
