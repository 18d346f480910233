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
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/shenwei356/sigalign"
	"github.com/spf13/cobra"
)

var pairCmd = &cobra.Command{
	Use:   "pair [flags] <query seq> <target seq>",
	Short: "Align two sequences and show the alignments",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
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
		algn, err := sigalign.NewAligner(reg, opt)
		if err != nil {
			return err
		}

		q, t := []byte(args[0]), []byte(args[1])
		if a := cfg.alphabet(); a != nil {
			if err = sigalign.ValidateSequence(q, a); err != nil {
				return fmt.Errorf("query: %w", err)
			}
		}
		storage := sigalign.NewInMemoryStorage()
		storage.Add("target", t)
		ref, err := sigalign.NewReference(storage, sigalign.NewScanLocator(storage))
		if err != nil {
			return err
		}

		outfh := bufio.NewWriter(os.Stdout)
		defer outfh.Flush()

		result := algn.Align(q, ref)
		if result.Count() == 0 {
			logger.Info("no alignments found")
			return nil
		}
		for _, ta := range result {
			for i := range ta.Alignments {
				writeAlignmentText(outfh, &ta.Alignments[i], q, t)
			}
		}
		return nil
	},
}

func writeAlignmentText(outfh io.Writer, a *sigalign.Alignment, q, t []byte) {
	Q, A, T := a.AlignmentText(q, t)
	st := a.Stats()

	fmt.Fprintf(outfh, "query   [%d, %d)\n", a.Position.Query[0], a.Position.Query[1])
	fmt.Fprintf(outfh, "target  [%d, %d)\n", a.Position.Target[0], a.Position.Target[1])
	fmt.Fprintf(outfh, "query   %s\n", *Q)
	fmt.Fprintf(outfh, "        %s\n", *A)
	fmt.Fprintf(outfh, "target  %s\n", *T)
	fmt.Fprintf(outfh, "cigar   %s\n", a.CIGAR())
	fmt.Fprintf(outfh, "penalty: %d, length: %d, matches: %d (%.2f%%), gaps: %d, gap regions: %d\n",
		a.Penalty, st.AlignLen, st.Matches, st.Identity(), st.Gaps, st.GapRegions)
	fmt.Fprintln(outfh)

	sigalign.RecycleAlignmentText(Q, A, T)
}

func init() {
	rootCmd.AddCommand(pairCmd)

	addParameterFlags(pairCmd)
	pairCmd.Flags().StringP("mode", "m", "local", `alignment mode: "local" or "semi-global"`)
	pairCmd.Flags().StringP("alphabet", "a", "dna", `alphabet to validate the query: "dna", "protein" or "none"`)
}
