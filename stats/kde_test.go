// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"testing"
)

func TestKDEOneSample(t *testing.T) {
	x := float64(5)

	// Unweighted, fixed bandwidth
	kde := KDE{Bandwidth: 1}.From(Sample{Xs: []float64{x}})
	if e, g := StdNormal.PDF(0), kde.PDF(x); !aeq(e, g) {
		t.Errorf("bad PDF value at sample: expected %g, got %g", e, g)
	}
	if e, g := 0.0, kde.PDF(-10000); !aeq(e, g) {
		t.Errorf("bad PDF value at low tail: expected %g, got %g", e, g)
	}
	if e, g := 0.5, kde.CDF(x); !aeq(e, g) {
		t.Errorf("bad CDF value at sample: expected %g, got %g", e, g)
	}
	if g := kde.InvCDF(0.5); math.Abs(g-x) > 1e-6 {
		t.Errorf("bad InvCDF(0.5): expected %g, got %g", x, g)
	}
}

func TestKDEReflect(t *testing.T) {
	// With a boundary at 0, no density is lost below it.
	s := Sample{Xs: []float64{0.1, 0.2, 0.5, 1, 2}}
	kde := KDE{BoundaryMin: 0, BoundaryMax: math.Inf(1)}.From(s)
	if g := kde.PDF(-0.1); g != 0 {
		t.Errorf("PDF below boundary = %g; want 0", g)
	}
	if g := kde.CDF(0); g != 0 {
		t.Errorf("CDF at boundary = %g; want 0", g)
	}
	lo, hi := kde.Bounds()
	if lo < 0 || hi <= lo {
		t.Errorf("bad bounds [%g, %g]", lo, hi)
	}
	if g := kde.CDF(1000); !aeq(1, g) {
		t.Errorf("CDF far right = %g; want 1", g)
	}
}

func TestKDEConstantSample(t *testing.T) {
	kde := KDE{}.From(Sample{Xs: []float64{3, 3, 3}})
	if g := kde.PDF(3); !(g > 0) || math.IsInf(g, 0) {
		t.Errorf("PDF of constant sample = %g; want positive and finite", g)
	}
}
