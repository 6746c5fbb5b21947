// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import "math"

// A Dist is a continuous statistical distribution.
type Dist interface {
	// PDF returns the value of the probability density function
	// of this distribution at x.
	PDF(x float64) float64

	// CDF returns the value of the cumulative distribution
	// function for this distribution at x. This is the integral
	// of the PDF from -inf to x.
	CDF(x float64) float64

	// InvCDF returns the inverse of the CDF for y. That is,
	// InvCDF(CDF(x)) = x. The value of y must be in [0, 1].
	InvCDF(y float64) float64

	// Bounds returns reasonable bounds for this distribution's
	// PDF and CDF. The total weight outside of these bounds
	// should be approximately 0.
	Bounds() (float64, float64)
}

// A DiscreteDist is a statistical distribution whose support is a
// set of integers.
type DiscreteDist interface {
	// PMF returns the probability of exactly int(floor(k)).
	PMF(k float64) float64

	// CDF returns the probability of a value <= floor(k).
	CDF(k float64) float64

	// InvCDF returns the smallest integer k such that
	// CDF(k) >= y.
	InvCDF(y float64) float64

	// Bounds returns reasonable bounds of the support. For
	// unbounded supports, the upper bound covers all but a
	// negligible tail.
	Bounds() (float64, float64)

	// Step returns the spacing between support points.
	Step() float64
}

// CDFEach returns d.CDF(xs[i]) for each i.
func CDFEach(d interface{ CDF(float64) float64 }, xs []float64) []float64 {
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = d.CDF(x)
	}
	return ys
}

// InvCDFEach returns d.InvCDF(ys[i]) for each i.
func InvCDFEach(d interface{ InvCDF(float64) float64 }, ys []float64) []float64 {
	xs := make([]float64, len(ys))
	for i, y := range ys {
		xs[i] = d.InvCDF(y)
	}
	return xs
}

// discreteInvCDF returns the smallest integer k in [lo, hi] such
// that cdf(k) >= y. hi may be +inf.
func discreteInvCDF(cdf func(float64) float64, lo, hi, y float64) float64 {
	switch {
	case math.IsNaN(y) || y < 0 || y > 1:
		return nan
	case y == 0:
		return lo
	case y == 1:
		return hi
	}

	// Gallop to bracket the answer, then bisect over integers.
	// Invariant: cdf(a) < y <= cdf(b).
	a, b := lo-1, lo
	for step := 1.0; cdf(b) < y; step *= 2 {
		a = b
		b = lo + step
		if b >= hi {
			b = hi
			break
		}
	}
	for b-a > 1 {
		m := math.Floor((a + b) / 2)
		if cdf(m) >= y {
			b = m
		} else {
			a = m
		}
	}
	return b
}
