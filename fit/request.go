// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit

import (
	"errors"
	"fmt"
	"sort"

	"github.com/aclements/go-distfit/family"
	"github.com/aclements/go-distfit/gof"
	"github.com/aclements/go-distfit/stats"
)

var (
	ErrNoData        = errors.New("sample is empty")
	ErrNonFiniteData = errors.New("sample contains NaN or infinite values")
	ErrNoCandidates  = errors.New("no distribution families selected")
	ErrUnknownFamily = errors.New("unknown distribution family")
	ErrNoTests       = errors.New("no goodness-of-fit tests selected")
	ErrUnknownTest   = errors.New("unknown goodness-of-fit test")
	ErrDuplicateTest = errors.New("goodness-of-fit test configured more than once")
	ErrBadWeight     = errors.New("weight must be a number between 0 and 1")
	ErrBadBinWidth   = gof.ErrBadBinWidth
)

// ConfigError reports a request that cannot be run.
type ConfigError struct {
	// Field names the offending part of the request.
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Request is everything needed to perform a fitting run.
type Request struct {
	Sample     stats.Sample
	Candidates []family.Type
	Tests      []TestWeight
	BinWidth   NumberInput
}

// Validate returns nil if r can be run, and otherwise a *ConfigError
// describing the first problem found.
func (r *Request) Validate() error {
	_, err := r.validate()
	return err
}

// validate is Validate, also returning the chi-square bin edges.
func (r *Request) validate() ([]float64, error) {
	if r.Sample.Len() == 0 {
		return nil, &ConfigError{"sample", ErrNoData}
	}
	if !r.Sample.Finite() {
		return nil, &ConfigError{"sample", ErrNonFiniteData}
	}
	if len(r.Candidates) == 0 {
		return nil, &ConfigError{"candidates", ErrNoCandidates}
	}
	for _, t := range r.Candidates {
		if !t.Valid() {
			return nil, &ConfigError{"candidates", fmt.Errorf("%w: %v", ErrUnknownFamily, t)}
		}
	}
	if !r.BinWidth.Valid || !validBinWidth(r.BinWidth.Value) {
		return nil, &ConfigError{"bin width", fmt.Errorf("%w: %q", ErrBadBinWidth, r.BinWidth.Text)}
	}
	edges, err := gof.Edges(r.Sample, r.BinWidth.Value)
	if err != nil {
		return nil, &ConfigError{"bin width", err}
	}
	seen := make(map[gof.Kind]bool)
	selected := 0
	for _, tw := range r.Tests {
		if !tw.Kind.Valid() {
			return nil, &ConfigError{"tests", fmt.Errorf("%w: %v", ErrUnknownTest, tw.Kind)}
		}
		if seen[tw.Kind] {
			return nil, &ConfigError{"tests", fmt.Errorf("%w: %v", ErrDuplicateTest, tw.Kind)}
		}
		seen[tw.Kind] = true
		if !tw.Selected {
			continue
		}
		if !tw.Weight.Valid || !ValidWeight(tw.Weight.Value) {
			return nil, &ConfigError{"weight", fmt.Errorf("%v: %w: %q", tw.Kind, ErrBadWeight, tw.Weight.Text)}
		}
		selected++
	}
	if selected == 0 {
		return nil, &ConfigError{"tests", ErrNoTests}
	}
	return edges, nil
}

// Runnable reports whether r passes Validate.
func (r *Request) Runnable() bool {
	return r.Validate() == nil
}

// candidates returns the distinct candidate families in catalog order.
func (r *Request) candidates() []family.Type {
	seen := make(map[family.Type]bool)
	var ts []family.Type
	for _, t := range r.Candidates {
		if !seen[t] {
			seen[t] = true
			ts = append(ts, t)
		}
	}
	sort.Slice(ts, func(i, j int) bool { return ts[i] < ts[j] })
	return ts
}

// enabledTests returns the selected tests in test-kind order.
func (r *Request) enabledTests() []TestWeight {
	var tws []TestWeight
	for _, tw := range r.Tests {
		if tw.Selected {
			tws = append(tws, tw)
		}
	}
	sort.Slice(tws, func(i, j int) bool { return tws[i].Kind < tws[j].Kind })
	return tws
}
