// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// boundsTail is the probability left outside Bounds on each side of
// an unbounded continuous distribution.
const boundsTail = 1e-4

// univariate is the subset of gonum's distuv interface that a
// continuous family needs to provide.
type univariate interface {
	Prob(x float64) float64
	CDF(x float64) float64
	Quantile(p float64) float64
}

// UnivariateDist adapts a gonum distuv distribution to Dist.
type UnivariateDist struct {
	D univariate
}

func (d UnivariateDist) PDF(x float64) float64 {
	return d.D.Prob(x)
}

func (d UnivariateDist) CDF(x float64) float64 {
	switch {
	case math.IsInf(x, -1):
		return 0
	case math.IsInf(x, 1):
		return 1
	}
	return d.D.CDF(x)
}

func (d UnivariateDist) InvCDF(y float64) float64 {
	if math.IsNaN(y) || y < 0 || y > 1 {
		return nan
	}
	return d.D.Quantile(y)
}

func (d UnivariateDist) Bounds() (float64, float64) {
	return d.D.Quantile(boundsTail), d.D.Quantile(1 - boundsTail)
}

// NormalDist is a normal (Gaussian) distribution with mean Mu and
// standard deviation Sigma.
type NormalDist struct {
	Mu, Sigma float64
}

// StdNormal is the standard normal distribution.
var StdNormal = NormalDist{0, 1}

func (n NormalDist) dist() distuv.Normal {
	return distuv.Normal{Mu: n.Mu, Sigma: n.Sigma}
}

func (n NormalDist) PDF(x float64) float64 {
	return n.dist().Prob(x)
}

func (n NormalDist) CDF(x float64) float64 {
	return n.dist().CDF(x)
}

func (n NormalDist) InvCDF(y float64) float64 {
	if y < 0 || y > 1 {
		return nan
	}
	return n.dist().Quantile(y)
}

func (n NormalDist) Bounds() (float64, float64) {
	const stddevs = 3
	return n.Mu - stddevs*n.Sigma, n.Mu + stddevs*n.Sigma
}

// PDFEach returns PDF(xs[i]) for each i.
func (n NormalDist) PDFEach(xs []float64) []float64 {
	res := make([]float64, len(xs))
	for i, x := range xs {
		res[i] = n.PDF(x)
	}
	return res
}

// CDFEach returns CDF(xs[i]) for each i.
func (n NormalDist) CDFEach(xs []float64) []float64 {
	return CDFEach(n, xs)
}
