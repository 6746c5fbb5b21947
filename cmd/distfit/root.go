// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aclements/go-distfit/config"
)

var (
	cfgFile  string
	logLevel string

	cfg    *config.Config
	logger logr.Logger
	flush  = func() {}
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "distfit",
		Short:        "Fit and rank probability distributions for a sample",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfgFile == "" {
				cfg = config.Default()
			} else if cfg, err = config.Load(cfgFile); err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			logger, flush, err = newLogger(cfg.Log)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			flush()
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, or error")
	root.AddCommand(newRunCmd())
	root.AddCommand(newReplayCmd())
	root.AddCommand(newDescribeCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCatalogCmd())
	return root
}

// newLogger builds a zap logger for c and returns it as a logr.Logger.
// Debug level enables the fitting engine's verbose output.
func newLogger(c config.Log) (logr.Logger, func(), error) {
	var zc zap.Config
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
		zc.Sampling = nil
	}
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return logr.Discard(), func() {}, fmt.Errorf("log level: %w", err)
	}
	zc.Level.SetLevel(level)
	zc.OutputPaths = []string{"stderr"}
	zl, err := zc.Build()
	if err != nil {
		return logr.Discard(), func() {}, fmt.Errorf("building logger: %w", err)
	}
	return zapr.NewLogger(zl), func() { zl.Sync() }, nil
}
