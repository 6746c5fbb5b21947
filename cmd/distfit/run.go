// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aclements/go-distfit/family"
	"github.com/aclements/go-distfit/fit"
	"github.com/aclements/go-distfit/gof"
	"github.com/aclements/go-distfit/sampleio"
	"github.com/aclements/go-distfit/session"
	"github.com/aclements/go-distfit/stats"
)

var (
	flagColumn     int
	flagColumnName string
	flagSheet      string
	flagCandidates []string
	flagBinWidth   string
	flagWeights    []string
	flagSave       string
	flagJSON       bool
)

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flagColumn, "column", 0, "column index for CSV and Excel input")
	cmd.Flags().StringVar(&flagColumnName, "column-name", "", "column header for CSV and Excel input")
	cmd.Flags().StringVar(&flagSheet, "sheet", "", "Excel sheet name (default first sheet)")
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagSave, "save", "", "save the run as a session file")
	cmd.Flags().BoolVar(&flagJSON, "json", false, "print the result as JSON")
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run file",
		Short: "Fit candidate distributions to a sample and rank them",
		Args:  cobra.ExactArgs(1),
		RunE:  runFit,
	}
	addInputFlags(cmd)
	addOutputFlags(cmd)
	cmd.Flags().StringSliceVar(&flagCandidates, "candidates", nil, "families to fit (default from config)")
	cmd.Flags().StringVar(&flagBinWidth, "bin-width", "", "chi-square bin width, or auto")
	cmd.Flags().StringSliceVar(&flagWeights, "weight", nil, "test weight as test=weight, or test=off")
	return cmd
}

func readSample(path string) (stats.Sample, error) {
	return sampleio.ReadFile(path, flagSheet, sampleio.Column{Index: flagColumn, Name: flagColumnName})
}

func runFit(cmd *cobra.Command, args []string) error {
	s, err := readSample(args[0])
	if err != nil {
		return err
	}
	req := cfg.Request(s)

	if len(flagCandidates) > 0 {
		req.Candidates = nil
		for _, name := range flagCandidates {
			t, err := family.ParseType(name)
			if err != nil {
				return err
			}
			req.Candidates = append(req.Candidates, t)
		}
	}
	switch strings.ToLower(flagBinWidth) {
	case "":
	case "auto":
		req.BinWidth = fit.Number(fit.DefaultBinWidth(s))
	default:
		req.BinWidth = fit.ParseBinWidth(flagBinWidth)
	}
	for _, w := range flagWeights {
		if err := applyWeight(req.Tests, w); err != nil {
			return err
		}
	}
	return fitAndReport(cmd, req)
}

// applyWeight applies a --weight flag value to tws.
func applyWeight(tws []fit.TestWeight, flag string) error {
	name, value, ok := strings.Cut(flag, "=")
	if !ok {
		return fmt.Errorf("--weight %q: want test=weight", flag)
	}
	k, err := gof.ParseKind(name)
	if err != nil {
		return err
	}
	for i := range tws {
		if tws[i].Kind != k {
			continue
		}
		if strings.EqualFold(value, "off") {
			tws[i].Selected = false
		} else {
			tws[i].Selected = true
			tws[i].Weight = fit.ParseWeight(value)
		}
		return nil
	}
	return fmt.Errorf("--weight %q: test not configured", flag)
}

func fitAndReport(cmd *cobra.Command, req fit.Request) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := cfg.Options()
	opts.Logger = logger
	res, err := fit.Run(ctx, req, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(out, "n=%d  bin width=%g  bins=%d\n", req.Sample.Len(), res.BinWidth, len(res.Edges)-1)
		fmt.Fprintln(out, renderRanking(res))
	}

	if flagSave != "" {
		sess, err := session.FromRun(res, req.Sample)
		if err != nil {
			return err
		}
		if err := sess.Save(flagSave); err != nil {
			return err
		}
		logger.Info("saved session", "path", flagSave)
	}
	return nil
}
