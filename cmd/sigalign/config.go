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
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/shenwei356/sigalign"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Config holds the alignment parameters, from a YAML file and flags.
// Flags set explicitly override the values in the file.
type Config struct {
	Mismatch            uint32  `yaml:"mismatch" validate:"gt=0"`
	GapOpen             uint32  `yaml:"gap_open"`
	GapExtend           uint32  `yaml:"gap_extend" validate:"gt=0"`
	MinLength           uint32  `yaml:"min_length" validate:"gt=0"`
	MaxPenaltyPerLength float64 `yaml:"max_penalty_per_length" validate:"gt=0"`

	Mode  string `yaml:"mode" validate:"oneof=local semi-global semiglobal"`
	Limit uint32 `yaml:"limit"` // 0 for no limit

	Kmer        int    `yaml:"kmer" validate:"gte=-1"` // -1 for the pattern size, 0 for scanning targets
	BothStrands bool   `yaml:"both_strands"`
	Alphabet    string `yaml:"alphabet" validate:"oneof=dna protein none"`
	Format      string `yaml:"format" validate:"oneof=tsv json sam"`
}

func defaultConfig() Config {
	return Config{
		Mismatch:            sigalign.DefaultPenalties.Mismatch,
		GapOpen:             sigalign.DefaultPenalties.GapOpen,
		GapExtend:           sigalign.DefaultPenalties.GapExt,
		MinLength:           100,
		MaxPenaltyPerLength: 0.1,
		Mode:                "local",
		Kmer:                -1,
		Alphabet:            "dna",
		Format:              "tsv",
	}
}

var validate = validator.New()

// loadConfig reads a YAML file into cfg, keys missing in the file keep
// their values in cfg.
func loadConfig(file string, cfg *Config) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", file, err)
	}
	return nil
}

// Validate checks the values of fields.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	return nil
}

func (c *Config) regulator() (*sigalign.Regulator, error) {
	return sigalign.NewRegulator(sigalign.Penalties{
		Mismatch: c.Mismatch,
		GapOpen:  c.GapOpen,
		GapExt:   c.GapExtend,
	}, c.MinLength, c.MaxPenaltyPerLength)
}

func (c *Config) options() (*sigalign.Options, error) {
	mode, err := sigalign.ParseMode(c.Mode)
	if err != nil {
		return nil, err
	}
	opt := sigalign.DefaultOptions
	opt.Mode = mode
	if c.Limit > 0 {
		opt.UseLimit = true
		opt.Limit = c.Limit
	}
	opt.Logger = logger
	return &opt, nil
}

// kmerSize returns the k-mer size of the target index, 0 for scanning targets.
// Only k-mers of the pattern size are looked up in the index.
func (c *Config) kmerSize(patternSize uint32) uint32 {
	if c.Kmer < 0 {
		return patternSize
	}
	return uint32(c.Kmer)
}

func (c *Config) alphabet() *sigalign.Alphabet {
	switch c.Alphabet {
	case "dna":
		return sigalign.DNA
	case "protein":
		return sigalign.Protein
	}
	return nil
}

// addParameterFlags adds flags of the alignment parameters.
func addParameterFlags(cmd *cobra.Command) {
	d := defaultConfig()
	cmd.Flags().StringP("config", "c", "", "YAML file of parameters, explicitly set flags override it")
	cmd.Flags().Uint32P("mismatch", "x", d.Mismatch, "mismatch penalty")
	cmd.Flags().Uint32P("gap-open", "o", d.GapOpen, "gap open penalty")
	cmd.Flags().Uint32P("gap-extend", "e", d.GapExtend, "gap extension penalty")
	cmd.Flags().Uint32P("min-length", "l", d.MinLength, "minimum length of alignments")
	cmd.Flags().Float64P("max-penalty-per-length", "p", d.MaxPenaltyPerLength, "maximum penalty per length of alignments")
}

// parameters builds the Config from the file and explicitly set flags.
func parameters(cmd *cobra.Command) (*Config, error) {
	cfg := defaultConfig()
	if file := getFlagString(cmd, "config"); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return nil, err
		}
	}

	fs := cmd.Flags()
	changed := func(name string) bool {
		f := fs.Lookup(name)
		return f != nil && f.Changed
	}
	if changed("mismatch") {
		cfg.Mismatch = getFlagUint32(cmd, "mismatch")
	}
	if changed("gap-open") {
		cfg.GapOpen = getFlagUint32(cmd, "gap-open")
	}
	if changed("gap-extend") {
		cfg.GapExtend = getFlagUint32(cmd, "gap-extend")
	}
	if changed("min-length") {
		cfg.MinLength = getFlagUint32(cmd, "min-length")
	}
	if changed("max-penalty-per-length") {
		cfg.MaxPenaltyPerLength = getFlagFloat64(cmd, "max-penalty-per-length")
	}
	if changed("mode") {
		cfg.Mode = getFlagString(cmd, "mode")
	}
	if changed("limit") {
		cfg.Limit = getFlagUint32(cmd, "limit")
	}
	if changed("kmer") {
		cfg.Kmer = getFlagInt(cmd, "kmer")
	}
	if changed("both-strands") {
		cfg.BothStrands = getFlagBool(cmd, "both-strands")
	}
	if changed("alphabet") {
		cfg.Alphabet = getFlagString(cmd, "alphabet")
	}
	if changed("format") {
		cfg.Format = getFlagString(cmd, "format")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
