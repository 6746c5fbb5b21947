// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"sort"
	"testing"
)

func aeq(expect, got float64) bool {
	return math.Abs(expect-got) < 0.00001
}

// testFunc checks f against a table of expected values.
func testFunc(t *testing.T, name string, f func(float64) float64, vals map[float64]float64) {
	t.Helper()
	xs := make([]float64, 0, len(vals))
	for x := range vals {
		xs = append(xs, x)
	}
	sort.Float64s(xs)

	for _, x := range xs {
		want, got := vals[x], f(x)
		if math.IsNaN(want) && math.IsNaN(got) || aeq(want, got) {
			continue
		}
		t.Errorf("%s(%v) = %v; want %v", name, x, got, want)
	}
}

// testDiscreteCDF checks that the CDF of dist is the running sum of
// its PMF, is flat between support points, and that InvCDF inverts
// it.
func testDiscreteCDF(t *testing.T, name string, dist DiscreteDist) {
	t.Helper()
	lo, hi := dist.Bounds()
	if got := dist.CDF(lo - 1); got != 0 {
		t.Errorf("%s(%v) = %v; want 0", name, lo-1, got)
	}

	sum := 0.0
	for x := lo; x <= hi; x += dist.Step() {
		sum += dist.PMF(x)
		if got := dist.CDF(x); !aeq(sum, got) {
			t.Errorf("%s(%v) = %v; want %v", name, x, got, sum)
		}
		if got := dist.CDF(x + 0.5*dist.Step()); !aeq(sum, got) {
			t.Errorf("%s(%v) = %v; want %v", name, x+0.5*dist.Step(), got, sum)
		}
		if p := dist.PMF(x); p > 1e-9 {
			if got := dist.InvCDF(dist.CDF(x)); got != x {
				t.Errorf("%s: InvCDF(CDF(%v)) = %v", name, x, got)
			}
		}
	}
}
