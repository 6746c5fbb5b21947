// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the YAML configuration of the distfit command.
package config // import "github.com/aclements/go-distfit/config"

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aclements/go-distfit/family"
	"github.com/aclements/go-distfit/fit"
	"github.com/aclements/go-distfit/gof"
	"github.com/aclements/go-distfit/stats"
)

type Config struct {
	// Candidates are the families to fit. Empty means all.
	Candidates []string `yaml:"candidates"`
	// Tests configures the goodness-of-fit tests. Tests not
	// listed use the default weight.
	Tests []Test `yaml:"tests"`
	// BinWidth is the chi-square bin width, or "auto".
	BinWidth    string `yaml:"bin_width"`
	Parallelism int    `yaml:"parallelism"`
	Server      Server `yaml:"server"`
	Log         Log    `yaml:"log"`

	families []family.Type
	weights  []fit.TestWeight
}

type Test struct {
	Test     string `yaml:"test"`
	Selected *bool  `yaml:"selected"`
	Weight   string `yaml:"weight"`
}

type Server struct {
	Addr string `yaml:"addr"`
}

type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	if err := validate(cfg); err != nil {
		panic(err)
	}
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	cfg.families = nil
	for _, name := range cfg.Candidates {
		t, err := family.ParseType(name)
		if err != nil {
			return fmt.Errorf("candidates: %w", err)
		}
		cfg.families = append(cfg.families, t)
	}
	if len(cfg.families) == 0 {
		cfg.families = family.All()
	}

	cfg.weights = fit.DefaultTestWeights()
	seen := make(map[gof.Kind]bool)
	for i, tc := range cfg.Tests {
		k, err := gof.ParseKind(tc.Test)
		if err != nil {
			return fmt.Errorf("test %d: %w", i, err)
		}
		if seen[k] {
			return fmt.Errorf("test %q configured twice", tc.Test)
		}
		seen[k] = true
		tw := &cfg.weights[k]
		if tc.Selected != nil {
			tw.Selected = *tc.Selected
		}
		if tc.Weight != "" {
			tw.Weight = fit.ParseWeight(tc.Weight)
			if !tw.Weight.Valid {
				return fmt.Errorf("test %q: weight %q must be between 0 and 1", tc.Test, tc.Weight)
			}
		}
	}

	switch strings.ToLower(cfg.BinWidth) {
	case "":
		cfg.BinWidth = "auto"
	case "auto":
	default:
		if !fit.ParseBinWidth(cfg.BinWidth).Valid {
			return fmt.Errorf("bin_width %q must be a positive number or \"auto\"", cfg.BinWidth)
		}
	}

	if cfg.Parallelism < 0 {
		return fmt.Errorf("parallelism must not be negative")
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = "localhost:8080"
	}
	switch cfg.Log.Level {
	case "":
		cfg.Log.Level = "info"
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level %q must be debug, info, warn, or error", cfg.Log.Level)
	}
	return nil
}

// Families returns the configured candidate families.
func (cfg *Config) Families() []family.Type {
	return append([]family.Type(nil), cfg.families...)
}

// TestWeights returns the configured tests in kind order.
func (cfg *Config) TestWeights() []fit.TestWeight {
	return append([]fit.TestWeight(nil), cfg.weights...)
}

// BinWidthFor returns the configured bin width, or the default bin
// width for s if it is "auto".
func (cfg *Config) BinWidthFor(s stats.Sample) fit.NumberInput {
	if strings.EqualFold(cfg.BinWidth, "auto") {
		return fit.Number(fit.DefaultBinWidth(s))
	}
	return fit.ParseBinWidth(cfg.BinWidth)
}

// Options returns the fitting options implied by cfg.
func (cfg *Config) Options() fit.Options {
	return fit.Options{Parallelism: cfg.Parallelism}
}

// Request builds a fitting request for sample s.
func (cfg *Config) Request(s stats.Sample) fit.Request {
	return fit.Request{
		Sample:     s,
		Candidates: cfg.Families(),
		Tests:      cfg.TestWeights(),
		BinWidth:   cfg.BinWidthFor(s),
	}
}
