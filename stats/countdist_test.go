// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"math"
	"testing"
)

func TestPoissonDist(t *testing.T) {
	dist := PoissonDist{Lambda: 2}
	testFunc(t, fmt.Sprintf("%+v.PMF", dist), dist.PMF,
		map[float64]float64{
			-1:  0,
			0:   math.Exp(-2),
			1:   2 * math.Exp(-2),
			2:   2 * math.Exp(-2),
			3:   4.0 / 3 * math.Exp(-2),
			3.5: 4.0 / 3 * math.Exp(-2),
		})
	testDiscreteCDF(t, fmt.Sprintf("%+v.CDF", dist), dist)
	if _, hi := dist.Bounds(); 1-dist.CDF(hi) > boundsTail {
		t.Errorf("%+v upper bound %v leaves %v", dist, hi, 1-dist.CDF(hi))
	}
}

func TestNegBinomialDist(t *testing.T) {
	// With R=1 this is the geometric distribution.
	dist := NegBinomialDist{R: 1, P: 0.25}
	testFunc(t, fmt.Sprintf("%+v.PMF", dist), dist.PMF,
		map[float64]float64{
			-1: 0,
			0:  0.25,
			1:  0.25 * 0.75,
			2:  0.25 * 0.75 * 0.75,
		})
	testFunc(t, fmt.Sprintf("%+v.CDF", dist), dist.CDF,
		map[float64]float64{
			-1: 0,
			0:  0.25,
			2:  1 - math.Pow(0.75, 3),
		})

	dist = NegBinomialDist{R: 3.5, P: 0.4}
	testDiscreteCDF(t, fmt.Sprintf("%+v.CDF", dist), dist)
	if !aeq(3.5*0.6/0.4, dist.Mean()) {
		t.Errorf("%+v Mean = %v", dist, dist.Mean())
	}
}

func TestDiscreteInvCDFEdges(t *testing.T) {
	dist := PoissonDist{Lambda: 3}
	if got := dist.InvCDF(0); got != 0 {
		t.Errorf("InvCDF(0) = %v; want 0", got)
	}
	if got := dist.InvCDF(1); !math.IsInf(got, 1) {
		t.Errorf("InvCDF(1) = %v; want +Inf", got)
	}
	if got := dist.InvCDF(-0.1); !math.IsNaN(got) {
		t.Errorf("InvCDF(-0.1) = %v; want NaN", got)
	}
}
