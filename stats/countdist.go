// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"

	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat/distuv"
)

// PoissonDist is a Poisson distribution with rate Lambda > 0.
type PoissonDist struct {
	Lambda float64
}

func (d PoissonDist) dist() distuv.Poisson {
	return distuv.Poisson{Lambda: d.Lambda}
}

// PMF is the probability of exactly int(floor(k)) events.
func (d PoissonDist) PMF(k float64) float64 {
	k = math.Floor(k)
	if k < 0 || math.IsInf(k, 1) || math.IsNaN(k) {
		return 0
	}
	return d.dist().Prob(k)
}

// CDF is the probability of floor(k) or fewer events.
func (d PoissonDist) CDF(k float64) float64 {
	k = math.Floor(k)
	if k < 0 {
		return 0
	} else if math.IsInf(k, 1) {
		return 1
	}
	return d.dist().CDF(k)
}

func (d PoissonDist) InvCDF(y float64) float64 {
	return discreteInvCDF(d.CDF, 0, inf, y)
}

func (d PoissonDist) Bounds() (float64, float64) {
	return 0, d.InvCDF(1 - boundsTail)
}

func (d PoissonDist) Step() float64 {
	return 1
}

func (d PoissonDist) Mean() float64 {
	return d.Lambda
}

func (d PoissonDist) Variance() float64 {
	return d.Lambda
}

// NegBinomialDist is a negative binomial distribution of the number
// of failures before the R'th success in independent trials that
// each succeed with probability P.
//
// R need not be an integer; with real R this is the Pólya
// distribution, which is what a moment fit to overdispersed counts
// produces.
type NegBinomialDist struct {
	// R is the number of successes. R > 0.
	R float64

	// P is the probability of success in each trial. 0 < P <= 1.
	P float64
}

// PMF is the probability of exactly int(floor(k)) failures.
func (d NegBinomialDist) PMF(k float64) float64 {
	k = math.Floor(k)
	if k < 0 || math.IsInf(k, 1) || math.IsNaN(k) {
		return 0
	}
	if d.P == 1 {
		if k == 0 {
			return 1
		}
		return 0
	}
	a, _ := math.Lgamma(k + d.R)
	b, _ := math.Lgamma(k + 1)
	c, _ := math.Lgamma(d.R)
	return math.Exp(a - b - c + d.R*math.Log(d.P) + k*math.Log1p(-d.P))
}

// CDF is the probability of floor(k) or fewer failures.
func (d NegBinomialDist) CDF(k float64) float64 {
	k = math.Floor(k)
	if k < 0 {
		return 0
	} else if math.IsInf(k, 1) {
		return 1
	}
	return mathext.RegIncBeta(d.R, k+1, d.P)
}

func (d NegBinomialDist) InvCDF(y float64) float64 {
	return discreteInvCDF(d.CDF, 0, inf, y)
}

func (d NegBinomialDist) Bounds() (float64, float64) {
	return 0, d.InvCDF(1 - boundsTail)
}

func (d NegBinomialDist) Step() float64 {
	return 1
}

func (d NegBinomialDist) Mean() float64 {
	return d.R * (1 - d.P) / d.P
}

func (d NegBinomialDist) Variance() float64 {
	return d.R * (1 - d.P) / (d.P * d.P)
}
