// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package score combines goodness-of-fit outcomes into a single
// ranking score per candidate distribution.
package score // import "github.com/aclements/go-distfit/score"

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/aclements/go-distfit/gof"
)

// Part is the result of one enabled test for one candidate, together
// with the weight the user assigned to that test.
//
// Exactly one of Outcome and Err is meaningful: if Err is non-nil,
// the test failed and Outcome is ignored.
type Part struct {
	Outcome gof.Outcome
	Err     error
	Weight  float64
}

// Score is a candidate's combined score in [0, 1]. Higher is better.
//
// A Score with Defined unset means no test could be computed for the
// candidate. It ranks below every defined score, including 0.
type Score struct {
	Value   float64
	Defined bool
}

// Undefined is the score of a candidate with no successful tests.
var Undefined = Score{}

// Of returns a defined score with value v.
func Of(v float64) Score {
	return Score{Value: v, Defined: true}
}

// Compare returns -1, 0, or +1 depending on whether a ranks below,
// equal to, or above b.
func Compare(a, b Score) int {
	switch {
	case !a.Defined && !b.Defined:
		return 0
	case !a.Defined:
		return -1
	case !b.Defined:
		return 1
	case a.Value < b.Value:
		return -1
	case a.Value > b.Value:
		return 1
	}
	return 0
}

// Less reports whether s ranks strictly below o.
func (s Score) Less(o Score) bool {
	return Compare(s, o) < 0
}

func (s Score) String() string {
	if !s.Defined {
		return "n/a"
	}
	return strconv.FormatFloat(s.Value, 'f', 4, 64)
}

// MarshalJSON encodes a defined score as a number and an undefined
// score as null.
func (s Score) MarshalJSON() ([]byte, error) {
	if !s.Defined {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}

func (s *Score) UnmarshalJSON(data []byte) error {
	var v *float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v == nil {
		*s = Undefined
	} else {
		*s = Of(*v)
	}
	return nil
}

// Normalize maps a test outcome to [0, 1], where larger values
// indicate a better fit.
//
// If the outcome has a p-value, that is the normalized score.
// Otherwise a KS outcome scores 1-D and a chi-square outcome scores
// 1/(1+χ²/df), with df raised to at least 1.
func Normalize(o gof.Outcome) float64 {
	var v float64
	switch {
	case o.HasPValue:
		v = o.PValue
	// Without a p-value the statistic is mapped onto the same [0, 1]
	// scale and ranked alongside p-values. A chi-square test with no
	// degrees of freedom left and a zero statistic scores 1.
	case o.Kind == gof.KS:
		v = 1 - o.Statistic
	default:
		df := math.Max(float64(o.DF), 1)
		v = 1 / (1 + o.Statistic/df)
	}
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

// Combine returns the weighted mean of the normalized scores of the
// successful parts.
//
// Failed parts contribute nothing to the numerator but their weight
// still counts in the denominator, so a candidate is penalized for
// tests that could not be computed. If no part succeeded, the result
// is Undefined. If every weight is zero, the result is 0.
//
// Weights are used as given; callers must reject negative weights.
func Combine(parts []Part) Score {
	var num, den float64
	ok := false
	for _, p := range parts {
		den += p.Weight
		if p.Err != nil {
			continue
		}
		ok = true
		num += p.Weight * Normalize(p.Outcome)
	}
	if !ok {
		return Undefined
	}
	if den == 0 {
		return Of(0)
	}
	return Of(num / den)
}
