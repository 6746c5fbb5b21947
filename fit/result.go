// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/aclements/go-distfit/family"
	"github.com/aclements/go-distfit/gof"
	"github.com/aclements/go-distfit/score"
)

// TestResult is the outcome of one test for one candidate. If Err is
// non-nil the test failed and Outcome is the zero value.
type TestResult struct {
	Kind    gof.Kind
	Weight  float64
	Outcome gof.Outcome
	Err     error
}

func (r TestResult) MarshalJSON() ([]byte, error) {
	j := struct {
		Kind    gof.Kind     `json:"kind"`
		Weight  float64      `json:"weight"`
		Outcome *gof.Outcome `json:"outcome,omitempty"`
		Error   string       `json:"error,omitempty"`
	}{Kind: r.Kind, Weight: r.Weight}
	if r.Err != nil {
		j.Error = r.Err.Error()
	} else {
		o := r.Outcome
		if !o.HasPValue {
			// NaN has no JSON encoding.
			o.PValue = 0
		}
		j.Outcome = &o
	}
	return json.Marshal(j)
}

// DistResult is the evaluation of one candidate family.
//
// If estimation failed, Dist is nil, Err records why, Tests is empty,
// and Score is undefined.
type DistResult struct {
	Type  family.Type
	Dist  *family.Fitted
	Err   error
	Tests []TestResult
	Score score.Score
}

// OK reports whether the candidate's parameters were estimated.
func (r *DistResult) OK() bool {
	return r.Err == nil && r.Dist != nil
}

func (r DistResult) MarshalJSON() ([]byte, error) {
	j := struct {
		Type  family.Type    `json:"type"`
		Name  string         `json:"name"`
		Dist  *family.Fitted `json:"dist,omitempty"`
		Error string         `json:"error,omitempty"`
		Tests []TestResult   `json:"tests"`
		Score score.Score    `json:"score"`
	}{Type: r.Type, Name: r.Type.String(), Dist: r.Dist, Tests: r.Tests, Score: r.Score}
	if r.Err != nil {
		j.Error = r.Err.Error()
	}
	if j.Tests == nil {
		j.Tests = []TestResult{}
	}
	return json.Marshal(j)
}

// RunResult is the complete, immutable result of a fitting run.
type RunResult struct {
	ID         uuid.UUID     `json:"id"`
	Generation uint64        `json:"generation"`
	BinWidth   float64       `json:"binWidth"`
	Edges      []float64     `json:"edges"`
	Tests      []TestWeight  `json:"testWeights"`
	Results    []DistResult  `json:"results"`
	Elapsed    time.Duration `json:"elapsedNs"`
}

// Find returns the result for family t.
func (r *RunResult) Find(t family.Type) (*DistResult, bool) {
	for i := range r.Results {
		if r.Results[i].Type == t {
			return &r.Results[i], true
		}
	}
	return nil, false
}

// Best returns the top-ranked candidate with a defined score.
func (r *RunResult) Best() (*DistResult, bool) {
	if len(r.Results) == 0 || !r.Results[0].Score.Defined {
		return nil, false
	}
	return &r.Results[0], true
}

// Types returns the candidate families in ranking order.
func (r *RunResult) Types() []family.Type {
	ts := make([]family.Type, len(r.Results))
	for i, res := range r.Results {
		ts[i] = res.Type
	}
	return ts
}
