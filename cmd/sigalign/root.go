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
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

// VERSION is the version of sigalign.
const VERSION = "0.1.0"

var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

var profiler interface{ Stop() }

var rootCmd = &cobra.Command{
	Use:   "sigalign",
	Short: "Anchor-based similarity-guaranteed sequence alignment",
	Long: fmt.Sprintf(`sigalign: anchor-based similarity-guaranteed sequence alignment

sigalign reports all alignments of queries to targets that are at least as
long as a minimum length and have at most a maximum penalty per length.

 Author: Wei Shen <shenwei356@gmail.com>
Version: v%s
`, VERSION),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if getFlagBool(cmd, "verbose") {
			level = slog.LevelDebug
		} else if getFlagBool(cmd, "quiet") {
			level = slog.LevelError
		}
		var err error
		logger, err = newLogger(os.Stderr, getFlagString(cmd, "log-format"), level)
		if err != nil {
			return err
		}

		// go tool pprof -http=:8080 cpu.pprof
		if getFlagBool(cmd, "pprof-cpu") {
			profiler = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet)
		} else if getFlagBool(cmd, "pprof-mem") {
			profiler = profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if profiler != nil {
			profiler.Stop()
		}
	},
}

// Execute runs the root command.
func Execute() {
	checkError(rootCmd.Execute())
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolP("verbose", "v", false, "print debug messages")
	pf.BoolP("quiet", "q", false, "only print errors")
	pf.StringP("log-format", "", "text", `log format: "text" or "json"`)
	pf.IntP("threads", "j", runtime.NumCPU(), "number of threads, each owns an aligner")
	pf.BoolP("pprof-cpu", "", false, "cpu pprof. go tool pprof -http=:8080 cpu.pprof")
	pf.BoolP("pprof-mem", "", false, "mem pprof. go tool pprof -http=:8080 mem.pprof")

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

func newLogger(w io.Writer, format string, level slog.Level) (*slog.Logger, error) {
	opt := &slog.HandlerOptions{Level: level}
	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(w, opt)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opt)), nil
	}
	return nil, fmt.Errorf("unknown log format: %s", format)
}

func checkError(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		if profiler != nil {
			profiler.Stop()
		}
		os.Exit(1)
	}
}

func getFlagString(cmd *cobra.Command, flag string) string {
	value, err := cmd.Flags().GetString(flag)
	checkError(err)
	return value
}

func getFlagStringSlice(cmd *cobra.Command, flag string) []string {
	value, err := cmd.Flags().GetStringSlice(flag)
	checkError(err)
	return value
}

func getFlagBool(cmd *cobra.Command, flag string) bool {
	value, err := cmd.Flags().GetBool(flag)
	checkError(err)
	return value
}

func getFlagInt(cmd *cobra.Command, flag string) int {
	value, err := cmd.Flags().GetInt(flag)
	checkError(err)
	return value
}

func getFlagUint32(cmd *cobra.Command, flag string) uint32 {
	value, err := cmd.Flags().GetUint32(flag)
	checkError(err)
	return value
}

func getFlagFloat64(cmd *cobra.Command, flag string) float64 {
	value, err := cmd.Flags().GetFloat64(flag)
	checkError(err)
	return value
}
