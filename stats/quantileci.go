// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import "math"

// QuantileCIResult is the confidence interval for a quantile.
type QuantileCIResult struct {
	// Quantile is the quantile of this confidence interval. This
	// is simply a copy of the argument to QuantileCI.
	Quantile float64

	// N is the sample size.
	N int

	// Confidence is the actual confidence level of this interval.
	// This will be >= the requested confidence.
	Confidence float64

	// LoOrder and HiOrder are the order statistics that bound the
	// confidence interval. By convention, these are 1-based, so
	// given an ordered slice of samples Xs, the CI is
	// Xs[LoOrder-1] to Xs[HiOrder-1].
	//
	// These may be outside the range of the sample, which
	// indicates that corresponding bound is negative or positive
	// infinity.
	LoOrder, HiOrder int
}

// FromSample returns the confidence interval of q in terms of values
// from a sample. It returns negative or positive infinity if the
// interval lies outside the sample, and NaNs if s is not the size
// the interval was computed for.
func (q QuantileCIResult) FromSample(s Sample) (lo, hi float64) {
	if len(s.Xs) != q.N {
		return nan, nan
	}
	if !s.Sorted {
		s = *s.Copy().Sort()
	}

	lo, hi = math.Inf(-1), math.Inf(1)
	if q.LoOrder >= 1 {
		lo = s.Xs[q.LoOrder-1]
	}
	if q.HiOrder-1 < len(s.Xs) {
		hi = s.Xs[q.HiOrder-1]
	}
	return
}

// quantileCIApproxThreshold is the sample size above which a normal
// approximation is used. This is a variable for testing.
var quantileCIApproxThreshold = 30

// QuantileCI returns the bounds of the confidence interval of the
// q'th quantile in a sample of size n.
//
// The sampling distribution for order statistics is the binomial
// distribution: the number of samples that fall below the population
// q-quantile is Binomial(n, q). Hence PMF(k) is the probability that
// the population quantile falls between the k'th and (k+1)'th order
// statistics.
func QuantileCI(n int, q, confidence float64) QuantileCIResult {
	res := QuantileCIResult{Quantile: q, N: n}
	if confidence >= 1 {
		res.Confidence = 1
		res.LoOrder, res.HiOrder = 0, n+1
		return res
	}

	samp := BinomialDist{N: n, P: q}
	var l, r int
	if n <= quantileCIApproxThreshold {
		l, r, res.Confidence = quantileCIExact(samp, confidence)
	} else {
		l, r, res.Confidence = quantileCIApprox(samp, confidence)
	}

	res.LoOrder = max(l, 0)
	res.HiOrder = min(r, n+1)
	return res
}

// quantileCIExact starts at the mode of samp and accumulates
// probabilities in decreasing order until it passes the confidence
// level. Probabilities decrease monotonically moving away from the
// mode. [l, r) is the summed interval.
func quantileCIExact(samp BinomialDist, confidence float64) (l, r int, conf float64) {
	// The binomial distribution can have two equal modes. Start
	// with the lower one to left-bias the result.
	x := int(math.Ceil(float64(samp.N+1)*samp.P) - 1)
	if samp.P == 0 {
		x = 0
	}
	conf = samp.PMF(float64(x))

	l, r = x, x+1
	lp, rp := samp.PMF(float64(l-1)), samp.PMF(float64(r))
	// Stop if there's nothing more to accumulate, which guards
	// against round-off keeping conf just below confidence.
	for conf < confidence && (lp > 0 || rp > 0) {
		if lp >= rp {
			conf += lp
			l--
			lp = samp.PMF(float64(l - 1))
		} else {
			conf += rp
			r++
			rp = samp.PMF(float64(r))
		}
	}
	return l, r, conf
}

// quantileCIApprox finds the band of samp containing the central
// confidence weight of its normal approximation.
func quantileCIApprox(samp BinomialDist, confidence float64) (l, r int, conf float64) {
	norm := samp.NormalApprox()
	l1 := norm.InvCDF((1 - confidence) / 2)
	r1 := 2*norm.Mu - l1

	// Point k of the binomial corresponds to band [k-0.5, k+0.5]
	// of the normal, so round out to ℕ + 0.5 boundaries and then
	// recover k.
	l = int(math.Floor(math.Floor(l1-0.5)+0.5)) + 1
	r = int(math.Floor(math.Ceil(r1-0.5)+0.5)) + 1

	// Pr[l <= X < r] with the continuity correction.
	cdf := func(l, r int) float64 {
		return norm.CDF(float64(r)-0.5) - norm.CDF(float64(l)-0.5)
	}
	conf = cdf(l, r)
	// The interval is symmetric. Left-bias it if that still
	// satisfies the confidence level.
	if c := cdf(l, r-1); c >= confidence && c < conf {
		conf, r = c, r-1
	}
	if l <= 0 && r >= samp.N+1 {
		// The normal's infinite support keeps its CDF short
		// of 1, but the quantile certainly lies in (-inf, inf).
		conf = 1
	}
	return l, r, conf
}
