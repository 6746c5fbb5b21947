// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/aclements/go-distfit/gof"
)

// NumberInput is a user-entered number: the text as typed and the
// value it parsed to. Valid is false if the text did not parse to an
// acceptable value, in which case Value is meaningless.
type NumberInput struct {
	Text  string
	Value float64
	Valid bool
}

// Number returns a valid NumberInput for v.
func Number(v float64) NumberInput {
	return NumberInput{Text: strconv.FormatFloat(v, 'g', -1, 64), Value: v, Valid: true}
}

func parseNumber(text string, ok func(float64) bool) NumberInput {
	in := NumberInput{Text: text}
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err == nil && !math.IsNaN(v) && ok(v) {
		in.Value, in.Valid = v, true
	}
	return in
}

// ParseWeight parses a test weight. Weights must lie in [0, 1].
func ParseWeight(text string) NumberInput {
	return parseNumber(text, ValidWeight)
}

// ValidWeight reports whether v is an acceptable test weight.
func ValidWeight(v float64) bool {
	return v >= 0 && v <= 1
}

// ParseBinWidth parses a chi-square bin width, which must be a
// positive finite number.
func ParseBinWidth(text string) NumberInput {
	return parseNumber(text, validBinWidth)
}

func validBinWidth(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

type numberJSON struct {
	Text          string   `json:"text"`
	ComputedValue *float64 `json:"computedValue"`
}

// MarshalJSON encodes in as {"text": ..., "computedValue": ...},
// where computedValue is null for invalid input.
func (in NumberInput) MarshalJSON() ([]byte, error) {
	j := numberJSON{Text: in.Text}
	if in.Valid {
		v := in.Value
		j.ComputedValue = &v
	}
	return json.Marshal(j)
}

func (in *NumberInput) UnmarshalJSON(data []byte) error {
	var j numberJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	*in = NumberInput{Text: j.Text}
	if j.ComputedValue != nil {
		in.Value, in.Valid = *j.ComputedValue, true
	}
	return nil
}

// TestWeight is the user's configuration of one goodness-of-fit test.
type TestWeight struct {
	Kind     gof.Kind    `json:"kind"`
	Selected bool        `json:"selected"`
	Weight   NumberInput `json:"weight"`
}

// DefaultTestWeights returns every test kind, selected, with equal
// weights summing to 1.
func DefaultTestWeights() []TestWeight {
	kinds := gof.Kinds()
	tws := make([]TestWeight, len(kinds))
	for i, k := range kinds {
		tws[i] = TestWeight{Kind: k, Selected: true, Weight: Number(1 / float64(len(kinds)))}
	}
	return tws
}
