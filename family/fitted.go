// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package family

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/aclements/go-distfit/stats"
)

// Param is one estimated parameter of a fitted distribution.
type Param struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Fitted is a distribution family with estimated parameters. It is
// immutable once returned by an Estimator.
//
// Exactly one of the continuous and discrete evaluators is set,
// according to Type.Kind.
type Fitted struct {
	Type   Type
	Params []Param

	cont stats.Dist
	disc stats.DiscreteDist
}

func newContinuous(t Type, d stats.Dist, params ...Param) *Fitted {
	return &Fitted{Type: t, Params: params, cont: d}
}

func newDiscrete(t Type, d stats.DiscreteDist, params ...Param) *Fitted {
	return &Fitted{Type: t, Params: params, disc: d}
}

// Kind returns the capability inherited from the family.
func (f *Fitted) Kind() Kind {
	return f.Type.Kind()
}

// Param returns the value of the named parameter.
func (f *Fitted) Param(name string) (float64, bool) {
	for _, p := range f.Params {
		if p.Name == name {
			return p.Value, true
		}
	}
	return math.NaN(), false
}

// CDF returns the cumulative probability at x.
func (f *Fitted) CDF(x float64) float64 {
	if f.disc != nil {
		return f.disc.CDF(x)
	}
	return f.cont.CDF(x)
}

// InvCDF returns the quantile for probability y. For discrete
// families this is the smallest support point whose CDF reaches y.
func (f *Fitted) InvCDF(y float64) float64 {
	if f.disc != nil {
		return f.disc.InvCDF(y)
	}
	return f.cont.InvCDF(y)
}

// Density returns the PDF at x for continuous families and the PMF
// at x for discrete families.
func (f *Fitted) Density(x float64) float64 {
	if f.disc != nil {
		return f.disc.PMF(x)
	}
	return f.cont.PDF(x)
}

// PMF returns the probability mass at k. It is 0 for continuous
// families.
func (f *Fitted) PMF(k float64) float64 {
	if f.disc == nil {
		return 0
	}
	return f.disc.PMF(k)
}

// Bounds returns reasonable bounds of the distribution's support.
func (f *Fitted) Bounds() (float64, float64) {
	if f.disc != nil {
		return f.disc.Bounds()
	}
	return f.cont.Bounds()
}

// SupportMin returns the lower end of the family's support, or -Inf.
func (f *Fitted) SupportMin() float64 {
	switch f.Type {
	case LogNormal, Weibull, Exponential, Gamma:
		return 0
	case Uniform:
		v, _ := f.Param("min")
		return v
	}
	if f.disc != nil {
		return 0
	}
	return math.Inf(-1)
}

func (f *Fitted) String() string {
	var b strings.Builder
	b.WriteString(f.Type.String())
	b.WriteByte('(')
	for i, p := range f.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%.6g", p.Name, p.Value)
	}
	b.WriteByte(')')
	return b.String()
}

func (f *Fitted) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type   Type    `json:"type"`
		Kind   string  `json:"kind"`
		Params []Param `json:"params"`
	}{f.Type, f.Kind().String(), f.Params})
}
