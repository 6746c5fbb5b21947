// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package family is the catalog of candidate distribution families
// and the estimators that fit each of them to a sample.
package family // import "github.com/aclements/go-distfit/family"

import (
	"fmt"
	"strings"
)

// Kind is the capability of a distribution family: whether its
// support is continuous or a set of integers.
type Kind int

const (
	Continuous Kind = iota
	Discrete
)

func (k Kind) String() string {
	switch k {
	case Continuous:
		return "continuous"
	case Discrete:
		return "discrete"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Type identifies a distribution family. The order of the constants
// is the catalog order, which breaks ties when ranking.
type Type int

const (
	Normal Type = iota
	LogNormal
	Weibull
	Exponential
	Gamma
	Uniform
	Binomial
	Bernoulli
	Poisson
	NegativeBinomial

	numTypes
)

var catalog = [numTypes]struct {
	key, name string
	kind      Kind
	params    int
}{
	Normal:           {"Normal", "Normal", Continuous, 2},
	LogNormal:        {"LogNormal", "Log-normal", Continuous, 2},
	Weibull:          {"Weibull", "Weibull", Continuous, 2},
	Exponential:      {"Exponential", "Exponential", Continuous, 1},
	Gamma:            {"Gamma", "Gamma", Continuous, 2},
	Uniform:          {"Uniform", "Uniform", Continuous, 2},
	Binomial:         {"Binomial", "Binomial", Discrete, 2},
	Bernoulli:        {"Bernoulli", "Bernoulli", Discrete, 1},
	Poisson:          {"Poisson", "Poisson", Discrete, 1},
	NegativeBinomial: {"NegativeBinomial", "Negative Binomial", Discrete, 2},
}

// All returns every known family in catalog order.
func All() []Type {
	ts := make([]Type, numTypes)
	for i := range ts {
		ts[i] = Type(i)
	}
	return ts
}

// OfKind returns the families of kind k in catalog order.
func OfKind(k Kind) []Type {
	var ts []Type
	for _, t := range All() {
		if t.Kind() == k {
			ts = append(ts, t)
		}
	}
	return ts
}

// Valid reports whether t is a cataloged family.
func (t Type) Valid() bool {
	return t >= 0 && t < numTypes
}

// String returns the human-readable name of t.
func (t Type) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return catalog[t].name
}

// Key returns the canonical, space-free name of t. This is the form
// used in persisted sessions and configuration files.
func (t Type) Key() string {
	if !t.Valid() {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return catalog[t].key
}

// Kind returns the capability of t. Invalid types report Continuous.
func (t Type) Kind() Kind {
	if !t.Valid() {
		return Continuous
	}
	return catalog[t].kind
}

func (t Type) IsContinuous() bool { return t.Valid() && t.Kind() == Continuous }
func (t Type) IsDiscrete() bool   { return t.Valid() && t.Kind() == Discrete }

// NumParams returns the number of parameters estimated for t.
func (t Type) NumParams() int {
	if !t.Valid() {
		return 0
	}
	return catalog[t].params
}

// ParseType returns the family named s. It accepts the canonical key
// and the human-readable name, ignoring case, spaces, dashes and
// underscores.
func ParseType(s string) (Type, error) {
	norm := func(s string) string {
		s = strings.ToLower(s)
		return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
	}
	want := norm(s)
	for _, t := range All() {
		if norm(catalog[t].key) == want || norm(catalog[t].name) == want {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown distribution family %q", s)
}

func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid distribution family %d", int(t))
	}
	return []byte(t.Key()), nil
}

func (t *Type) UnmarshalText(text []byte) error {
	v, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
