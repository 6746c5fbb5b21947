// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"

	"gonum.org/v1/gonum/mathext"
)

// BinomialDist is a binomial distribution.
type BinomialDist struct {
	// N is the number of independent Bernoulli trials. N >= 0.
	//
	// If N=1, this is equivalent to the Bernoulli distribution.
	N int

	// P is the probability of success in each trial. 0 <= P <= 1.
	P float64
}

// PMF is the probability of getting exactly int(k) successes in d.N
// independent Bernoulli trials with probability d.P.
func (d BinomialDist) PMF(k float64) float64 {
	if math.IsInf(k, 0) || math.IsNaN(k) {
		return 0
	}
	ki := int(math.Floor(k))
	if ki < 0 || ki > d.N {
		return 0
	}
	switch d.P {
	case 0:
		if ki == 0 {
			return 1
		}
		return 0
	case 1:
		if ki == d.N {
			return 1
		}
		return 0
	}
	if d.N <= exactChooseLimit {
		return choose(d.N, ki) * math.Pow(d.P, float64(ki)) * math.Pow(1-d.P, float64(d.N-ki))
	}
	// Work in log space so large N doesn't overflow the
	// binomial coefficient.
	lp := lchoose(d.N, ki) + float64(ki)*math.Log(d.P) + float64(d.N-ki)*math.Log1p(-d.P)
	return math.Exp(lp)
}

// CDF is the probability of getting k or fewer successes in d.N
// independent Bernoulli trials with probability d.P.
func (d BinomialDist) CDF(k float64) float64 {
	if math.IsInf(k, 1) {
		return 1
	} else if math.IsInf(k, -1) {
		return 0
	}
	k = math.Floor(k)
	ki := int(k)
	if ki < 0 {
		return 0
	} else if ki >= d.N {
		return 1
	}

	return mathext.RegIncBeta(float64(d.N-ki), k+1, 1-d.P)
}

// InvCDF returns the smallest number of successes k such that
// CDF(k) >= y.
func (d BinomialDist) InvCDF(y float64) float64 {
	return discreteInvCDF(d.CDF, 0, float64(d.N), y)
}

func (d BinomialDist) Bounds() (float64, float64) {
	return 0, float64(d.N)
}

func (d BinomialDist) Step() float64 {
	return 1
}

func (d BinomialDist) Mean() float64 {
	return float64(d.N) * d.P
}

func (d BinomialDist) Variance() float64 {
	return float64(d.N) * d.P * (1 - d.P)
}

// NormalApprox returns a normal distribution approximation of
// binomial distribution d.
//
// Because the binomial distribution is discrete and the normal
// distribution is continuous, the caller must apply a continuity
// correction when using this approximation. Specifically, if b is the
// binomial distribution and n is the normal approximation, operations
// map as follows:
//
//	b.PMF(k) => n.CDF(k+0.5) - n.CDF(k-0.5)
//	b.CDF(k) => n.CDF(k+0.5)
func (d BinomialDist) NormalApprox() NormalDist {
	return NormalDist{Mu: d.Mean(), Sigma: math.Sqrt(d.Variance())}
}

// exactChooseLimit is the largest n for which choose(n, k) is exact
// in a float64 for every k.
const exactChooseLimit = 50

// choose returns the binomial coefficient n choose k.
func choose(n, k int) float64 {
	if k > n-k {
		k = n - k
	}
	c := 1.0
	for i := 1; i <= k; i++ {
		c = c * float64(n-k+i) / float64(i)
	}
	return c
}

// lchoose returns the natural log of the binomial coefficient n
// choose k, for 0 <= k <= n.
func lchoose(n, k int) float64 {
	a, _ := math.Lgamma(float64(n + 1))
	b, _ := math.Lgamma(float64(k + 1))
	c, _ := math.Lgamma(float64(n - k + 1))
	return a - b - c
}
