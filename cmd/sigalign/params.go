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
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// derivedParameters is printed by the params command.
type derivedParameters struct {
	Mismatch            uint32  `yaml:"mismatch"`
	GapOpen             uint32  `yaml:"gap_open"`
	GapExtend           uint32  `yaml:"gap_extend"`
	MinLength           uint32  `yaml:"min_length"`
	MaxPenaltyPerLength float64 `yaml:"max_penalty_per_length"`
	GCD                 uint32  `yaml:"gcd"`
	PatternSize         uint32  `yaml:"pattern_size"`
	MinPenaltyOdd       uint32  `yaml:"min_penalty_for_odd_patterns"`
	MinPenaltyEven      uint32  `yaml:"min_penalty_for_even_patterns"`
}

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "Print parameters derived from penalties and cutoffs",
	Long: `Print parameters derived from penalties and cutoffs

The output is YAML. Penalties of patterns are in the scale divided by the gcd.
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := parameters(cmd)
		if err != nil {
			return err
		}
		reg, err := cfg.regulator()
		if err != nil {
			return err
		}

		mpp := reg.MinPenaltyForPattern()
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(derivedParameters{
			Mismatch:            reg.MismatchPenalty(),
			GapOpen:             reg.GapOpenPenalty(),
			GapExtend:           reg.GapExtendPenalty(),
			MinLength:           reg.MinLength(),
			MaxPenaltyPerLength: reg.MaxPenaltyPerLength(),
			GCD:                 reg.GCD(),
			PatternSize:         reg.PatternSize(),
			MinPenaltyOdd:       mpp.Odd,
			MinPenaltyEven:      mpp.Even,
		})
	},
}

func init() {
	rootCmd.AddCommand(paramsCmd)
	addParameterFlags(paramsCmd)
}
