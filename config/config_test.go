// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aclements/go-distfit/config"
	"github.com/aclements/go-distfit/family"
	"github.com/aclements/go-distfit/gof"
	"github.com/aclements/go-distfit/stats"
)

func TestLoadMinimal(t *testing.T) {
	cfg, err := config.Load("testdata/minimal.yaml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got, want := len(cfg.Families()), len(family.All()); got != want {
		t.Errorf("expected %d families, got %d", want, got)
	}
	tws := cfg.TestWeights()
	if len(tws) != len(gof.Kinds()) {
		t.Fatalf("expected %d tests, got %d", len(gof.Kinds()), len(tws))
	}
	for _, tw := range tws {
		if !tw.Selected || tw.Weight.Value != 0.5 {
			t.Errorf("test %v: expected selected with weight 0.5, got %+v", tw.Kind, tw)
		}
	}
	if cfg.BinWidth != "auto" {
		t.Errorf("expected bin_width auto, got %q", cfg.BinWidth)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected log level info, got %q", cfg.Log.Level)
	}
	if cfg.Server.Addr == "" {
		t.Error("expected default server address")
	}
}

func TestLoadFull(t *testing.T) {
	cfg, err := config.Load("testdata/full.yaml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := []family.Type{family.Normal, family.LogNormal, family.Gamma, family.NegativeBinomial}
	got := cfg.Families()
	if len(got) != len(want) {
		t.Fatalf("expected families %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("family %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	tws := cfg.TestWeights()
	if tws[gof.ChiSquare].Weight.Value != 0.25 || tws[gof.KS].Weight.Value != 0.75 {
		t.Errorf("unexpected weights %+v", tws)
	}
	if cfg.Parallelism != 4 || cfg.Options().Parallelism != 4 {
		t.Errorf("expected parallelism 4, got %d", cfg.Parallelism)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("expected addr :9090, got %q", cfg.Server.Addr)
	}
	if !cfg.Log.Development || cfg.Log.Level != "debug" {
		t.Errorf("unexpected log config %+v", cfg.Log)
	}

	s := stats.Sample{Xs: []float64{1, 2, 3}}
	bw := cfg.BinWidthFor(s)
	if !bw.Valid || bw.Value != 2.5 {
		t.Errorf("expected bin width 2.5, got %+v", bw)
	}
	req := cfg.Request(s)
	if err := req.Validate(); err != nil {
		t.Errorf("request from config is invalid: %v", err)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := config.Load("nonexistent.yaml")
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadInvalid(t *testing.T) {
	if _, err := config.Load("testdata/badweight.yaml"); err == nil {
		t.Error("expected error for weight out of range")
	}

	dir := t.TempDir()
	for name, body := range map[string]string{
		"family":      "candidates: [cauchy]\n",
		"test":        "tests: [{test: anderson}]\n",
		"twice":       "tests: [{test: KS}, {test: k-s test}]\n",
		"binwidth":    "bin_width: \"-1\"\n",
		"parallelism": "parallelism: -2\n",
		"loglevel":    "log: {level: chatty}\n",
		"yaml":        "candidates: [\n",
	} {
		path := filepath.Join(dir, name+".yaml")
		if err := os.WriteFile(path, []byte(body), 0o666); err != nil {
			t.Fatal(err)
		}
		if _, err := config.Load(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestDefaultAutoBinWidth(t *testing.T) {
	cfg := config.Default()
	bw := cfg.BinWidthFor(stats.Sample{Xs: []float64{1, 1, 2, 3, 5, 8, 13}})
	if !bw.Valid || bw.Value < 1 {
		t.Errorf("expected a whole-number default width, got %+v", bw)
	}
}
