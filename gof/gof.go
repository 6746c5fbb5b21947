// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gof implements the goodness-of-fit tests used to compare a
// fitted distribution against the sample it was fitted to.
package gof // import "github.com/aclements/go-distfit/gof"

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aclements/go-distfit/family"
	"github.com/aclements/go-distfit/stats"
)

// Kind identifies a goodness-of-fit test.
type Kind int

const (
	// ChiSquare is Pearson's chi-squared test over binned counts.
	// It applies to continuous and discrete families.
	ChiSquare Kind = iota

	// KS is the one-sample Kolmogorov-Smirnov test. It applies
	// only to continuous families.
	KS

	numKinds
)

var kindInfo = [numKinds]struct {
	key, name  string
	applicable []family.Kind
}{
	ChiSquare: {"ChiSquare", "Chi-Squared test", []family.Kind{family.Continuous, family.Discrete}},
	KS:        {"KS", "K-S test", []family.Kind{family.Continuous}},
}

// Kinds returns every test kind in order.
func Kinds() []Kind {
	ks := make([]Kind, numKinds)
	for i := range ks {
		ks[i] = Kind(i)
	}
	return ks
}

func (k Kind) Valid() bool {
	return k >= 0 && k < numKinds
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindInfo[k].name
}

// Key returns the canonical name of k used in persisted sessions.
func (k Kind) Key() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindInfo[k].key
}

// Applies reports whether test k can be run against a distribution
// of capability fk.
func (k Kind) Applies(fk family.Kind) bool {
	if !k.Valid() {
		return false
	}
	for _, a := range kindInfo[k].applicable {
		if a == fk {
			return true
		}
	}
	return false
}

// Applicable returns the kinds in ks that apply to fk, in order.
func Applicable(ks []Kind, fk family.Kind) []Kind {
	var out []Kind
	for _, k := range ks {
		if k.Applies(fk) {
			out = append(out, k)
		}
	}
	return out
}

// ParseKind returns the test kind named s, by key or display name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if strings.EqualFold(s, k.Key()) || strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown goodness-of-fit test %q", s)
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid goodness-of-fit test %d", int(k))
	}
	return []byte(k.Key()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Spec is a test kind and its configuration.
type Spec struct {
	Kind Kind

	// Edges are the bin edges for ChiSquare, as returned by
	// Edges. They are shared read-only between candidates.
	Edges []float64
}

// Outcome is the result of a successful test.
type Outcome struct {
	Kind Kind `json:"kind"`

	// Statistic is the test statistic: χ² for ChiSquare and the
	// maximum ECDF deviation D for KS.
	Statistic float64 `json:"statistic"`

	// PValue is the probability of a statistic at least this
	// extreme under the fitted distribution. It is only
	// meaningful if HasPValue is set.
	PValue    float64 `json:"pValue"`
	HasPValue bool    `json:"hasPValue"`

	// DF is the chi-square degrees of freedom and Bins the number
	// of bins that contributed to the statistic. Both are 0 for
	// KS.
	DF   int `json:"df,omitempty"`
	Bins int `json:"bins,omitempty"`
}

var (
	ErrBadBinWidth    = errors.New("bin width must be a positive finite number")
	ErrTooManyBins    = errors.New("bin width yields too many bins")
	ErrEmptySample    = errors.New("sample is empty")
	ErrNonFinite      = errors.New("sample contains NaN or infinite values")
	ErrNoDistribution = errors.New("no fitted distribution")
	ErrNotApplicable  = errors.New("test does not apply to this kind of distribution")
	ErrUnknownKind    = errors.New("unknown goodness-of-fit test")
	ErrZeroExpected   = errors.New("bin with observations has zero expected count")
	ErrDegenerateBins = errors.New("fewer than two usable bins")
	ErrSingular       = errors.New("fitted CDF is undefined at a sample point")
)

// TestError records why a single test could not be computed.
type TestError struct {
	Kind Kind
	Err  error
}

func (e *TestError) Error() string {
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

func (e *TestError) Unwrap() error {
	return e.Err
}

// Run runs the test described by spec against fitted distribution d
// and the sample it was fitted to.
//
// All failures are returned as *TestError.
func Run(spec Spec, s stats.Sample, d *family.Fitted) (Outcome, error) {
	if !spec.Kind.Valid() {
		return Outcome{}, &TestError{spec.Kind, ErrUnknownKind}
	}
	if d == nil {
		return Outcome{}, &TestError{spec.Kind, ErrNoDistribution}
	}
	if !spec.Kind.Applies(d.Kind()) {
		return Outcome{}, &TestError{spec.Kind, ErrNotApplicable}
	}
	switch spec.Kind {
	case ChiSquare:
		return ChiSquareTest(s, d, spec.Edges)
	default:
		return KSTest(s, d)
	}
}
