// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gof

import (
	"math"

	"github.com/aclements/go-distfit/family"
	"github.com/aclements/go-distfit/stats"
)

// KSTest performs a one-sample Kolmogorov-Smirnov test of sample s
// against the continuous fitted distribution d.
//
// The statistic D is the largest absolute difference between the
// empirical CDF of s and the CDF of d. The p-value uses the
// asymptotic Kolmogorov distribution with Stephens' correction for
// small samples. Since the parameters of d were estimated from s,
// the p-value is conservative.
func KSTest(s stats.Sample, d *family.Fitted) (Outcome, error) {
	fail := func(err error) (Outcome, error) {
		return Outcome{}, &TestError{KS, err}
	}
	if d == nil {
		return fail(ErrNoDistribution)
	}
	if d.Kind() != family.Continuous {
		return fail(ErrNotApplicable)
	}
	if s.Len() == 0 {
		return fail(ErrEmptySample)
	}
	if !s.Sorted {
		s = *s.Copy().Sort()
	}

	n := float64(s.Len())
	D := 0.0
	for i, x := range s.Xs {
		f := d.CDF(x)
		if math.IsNaN(f) {
			return fail(ErrSingular)
		}
		// Compare against the ECDF just below and at x.
		D = math.Max(D, math.Max(f-float64(i)/n, float64(i+1)/n-f))
	}
	D = math.Min(D, 1)

	sqrtN := math.Sqrt(n)
	return Outcome{
		Kind:      KS,
		Statistic: D,
		PValue:    KolmogorovQ((sqrtN + 0.12 + 0.11/sqrtN) * D),
		HasPValue: true,
	}, nil
}

// KolmogorovQ returns the survival function of the Kolmogorov
// distribution, P(K > λ).
func KolmogorovQ(lambda float64) float64 {
	if !(lambda > 0) {
		return 1
	}
	var q float64
	if lambda < 1.18 {
		// The alternating series converges slowly for small λ, so
		// use the Jacobi theta form of the CDF instead.
		y := math.Exp(-math.Pi * math.Pi / (8 * lambda * lambda))
		sum := y + math.Pow(y, 9) + math.Pow(y, 25) + math.Pow(y, 49)
		q = 1 - math.Sqrt(2*math.Pi)/lambda*sum
	} else {
		x := math.Exp(-2 * lambda * lambda)
		q = 2 * (x - math.Pow(x, 4) + math.Pow(x, 9))
	}
	return math.Max(0, math.Min(1, q))
}
