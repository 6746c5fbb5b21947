// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"math"
	"testing"
)

func TestQuantileCI(t *testing.T) {
	var res QuantileCIResult
	check := func(wlo, whi int, wactual float64) {
		t.Helper()
		if wlo != res.LoOrder || whi != res.HiOrder || !aeq(wactual, res.Confidence) {
			t.Errorf("want [%v,%v]@%v, got [%v,%v]@%v",
				wlo, whi, wactual,
				res.LoOrder, res.HiOrder, res.Confidence)
		}
	}
	eq := func(a, b float64) bool {
		return a == b ||
			math.IsInf(a, 1) && math.IsInf(b, 1) ||
			math.IsInf(a, -1) && math.IsInf(b, -1)
	}
	checkSample := func(wlo, whi float64) {
		t.Helper()
		var s Sample
		for i := 1; i <= res.N; i++ {
			s.Xs = append(s.Xs, float64(i))
		}
		s.Sorted = true
		lo, hi := res.FromSample(s)
		if !eq(wlo, lo) || !eq(whi, hi) {
			t.Errorf("want [%v,%v], got [%v,%v]", wlo, whi, lo, hi)
		}
	}
	normBuckets := func(n int, p float64) []float64 {
		norm := BinomialDist{N: n, P: p}.NormalApprox()
		bs := make([]float64, n+1)
		for i := range bs {
			bs[i] = norm.CDF(float64(i)+0.5) - norm.CDF(float64(i)-0.5)
		}
		return bs
	}

	// Confidence is so low that it has to fall directly around
	// the quantile.
	res = QuantileCI(4, 0.5, 0.001)
	check(2, 3, 0.375)
	checkSample(2, 3)
	res = QuantileCI(4, 0.25, 0.001)
	check(1, 2, 0.421875)
	checkSample(1, 2)
	// Quantile near 0.
	res = QuantileCI(4, 0, 0.001)
	check(0, 1, 1)
	checkSample(-inf, 1)
	// Quantile near 1.
	res = QuantileCI(4, 1, 0.001)
	check(4, 5, 1)
	checkSample(4, inf)
	// Confidence is exactly the PMF.
	res = QuantileCI(4, 0.5, 0.375)
	check(2, 3, 0.375)
	// And just beyond the PMF. This should be left-biased.
	res = QuantileCI(4, 0.5, 0.3750001)
	check(1, 3, 0.375+0.25)
	// Confidence is 1 or nearly 1.
	res = QuantileCI(4, 0.5, 1)
	check(0, 5, 1)
	res = QuantileCI(4, 0.5, 0.99)
	check(0, 5, 1)

	// Odd sample size.
	res = QuantileCI(5, 0.5, 0.3125001)
	check(2, 4, 0.3125*2)
	res = QuantileCI(5, 0.5, 0.99-0.03125)
	check(0, 5, 1-0.03125)

	// Normal approximation.
	defer func(x int) { quantileCIApproxThreshold = x }(quantileCIApproxThreshold)
	quantileCIApproxThreshold = 0
	n := normBuckets(4, 0.5)
	res = QuantileCI(4, 0.5, 0.001)
	check(2, 3, n[2])
	res = QuantileCI(4, 0.5, n[2]+0.00001)
	check(1, 3, n[1]+n[2])
	res = QuantileCI(4, 0.5, 0.90)
	check(0, 4, n[0]+n[1]+n[2]+n[3])

	// Normal approximation degenerate cases.
	res = QuantileCI(5, 0, 0.95)
	check(0, 1, 1)
	res = QuantileCI(5, 1, 0.95)
	check(5, 6, 1)
}

func TestQuantileCIFromSampleSizeMismatch(t *testing.T) {
	res := QuantileCI(10, 0.5, 0.95)
	lo, hi := res.FromSample(Sample{Xs: []float64{1, 2, 3}})
	if !math.IsNaN(lo) || !math.IsNaN(hi) {
		t.Errorf("want NaN bounds for mismatched sample, got [%v,%v]", lo, hi)
	}
}

func BenchmarkQuantileCI(b *testing.B) {
	defer func(x int) { quantileCIApproxThreshold = x }(quantileCIApproxThreshold)
	for n := 5; n <= 100; n += 5 {
		for _, approx := range []bool{false, true} {
			if approx {
				quantileCIApproxThreshold = 0
			} else {
				quantileCIApproxThreshold = 1000
			}

			b.Run(fmt.Sprintf("n=%d/approx=%v", n, approx), func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					QuantileCI(n, 0.5, 0.95)
				}
			})
		}
	}
}
