// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"math"
	"strings"

	mstats "github.com/montanaflynn/stats"
	"github.com/spf13/cobra"

	"github.com/aclements/go-distfit/fit"
	"github.com/aclements/go-distfit/stats"
)

func newDescribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe file",
		Short: "Summarize a sample before fitting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := readSample(args[0])
			if err != nil {
				return err
			}
			if s.Len() == 0 {
				return fmt.Errorf("%s: no values", args[0])
			}
			describe(cmd.OutOrStdout(), s)
			return nil
		},
	}
	addInputFlags(cmd)
	return cmd
}

func describe(w io.Writer, s stats.Sample) {
	s.Sort()

	fmt.Fprintf(w, "N %d  sum %.6g  mean %.6g", len(s.Xs), s.Sum(), s.Mean())
	if gmean, err := mstats.GeometricMean(s.Xs); err == nil && !math.IsNaN(gmean) && s.Xs[0] > 0 {
		fmt.Fprintf(w, "  gmean %.6g", gmean)
	}
	fmt.Fprintf(w, "  std dev %.6g  variance %.6g\n", s.StdDev(), s.Variance())
	if modes, err := mstats.Mode(s.Xs); err == nil && len(modes) > 0 && len(modes) <= 3 {
		fmt.Fprintf(w, "mode %v\n", modes)
	}
	fmt.Fprintf(w, "integer-valued %v  suggested bin width %.4g\n", s.Integral(), fit.DefaultBinWidth(s))
	fmt.Fprintln(w)

	// Quartiles and tails.
	labels := map[int]string{0: "min", 50: "median", 100: "max"}
	for _, p := range []int{0, 1, 5, 25, 50, 75, 95, 99, 100} {
		label, ok := labels[p]
		if !ok {
			label = fmt.Sprintf("%d%%ile", p)
		}
		fmt.Fprintf(w, "%8s %.6g\n", label, s.Percentile(float64(p)/100))
	}
	fmt.Fprintln(w)

	// Kernel density estimate.
	fprintPDF(w, stats.KDE{}.From(s))
}

// fprintPDF prints a text rendering of the density of d.
func fprintPDF(w io.Writer, d stats.Dist) {
	const rows, width = 20, 50
	lo, hi := d.Bounds()
	if !(hi > lo) {
		return
	}
	ys := make([]float64, rows)
	ymax := 0.0
	for i := range ys {
		ys[i] = d.PDF(lo + (hi-lo)*(float64(i)+0.5)/rows)
		ymax = math.Max(ymax, ys[i])
	}
	if !(ymax > 0) {
		return
	}
	for i, y := range ys {
		x := lo + (hi-lo)*(float64(i)+0.5)/rows
		fmt.Fprintf(w, "%10.4g %s\n", x, strings.Repeat("█", int(math.Round(y/ymax*width))))
	}
}
