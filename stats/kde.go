// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import "math"

// KDE represents options for constructing a Gaussian kernel density
// estimate.
//
// Kernel density estimation is a method for constructing an estimate
// ƒ̂(x) of a unknown distribution ƒ(x) given a sample from that
// distribution. The histogram overlay uses it to draw a smooth
// empirical density next to the fitted density.
//
// The default (zero) value of KDE is a reasonable default
// configuration.
type KDE struct {
	// Bandwidth is the bandwidth to use for the KDE.
	//
	// If this is zero, the bandwidth is computed from the
	// provided data using BandwidthScott.
	Bandwidth float64

	// [BoundaryMin, BoundaryMax) specify a bounded support for
	// the KDE. If both are 0 (their default values), they are
	// treated as +/-inf. Density that would fall outside the
	// support is reflected back into it.
	//
	// To specify a half-bounded support, set Min to math.Inf(-1)
	// or Max to math.Inf(1).
	BoundaryMin float64
	BoundaryMax float64
}

// BandwidthSilverman is a bandwidth estimator implementing
// Silverman's Rule of Thumb. It's fast, but not very robust to
// outliers as it assumes data is approximately normal.
//
// Silverman, B. W. (1986) Density Estimation.
func BandwidthSilverman(data interface {
	StdDev() float64
	Weight() float64
}) float64 {
	return 1.06 * data.StdDev() * math.Pow(data.Weight(), -1.0/5)
}

// BandwidthScott is a bandwidth estimator implementing Scott's Rule.
// This is generally robust to outliers: it chooses the minimum
// between the sample's standard deviation and an robust estimator of
// a Gaussian distribution's standard deviation.
//
// Scott, D. W. (1992) Multivariate Density Estimation: Theory,
// Practice, and Visualization.
func BandwidthScott(data interface {
	StdDev() float64
	Weight() float64
	Percentile(float64) float64
}) float64 {
	iqr := data.Percentile(0.75) - data.Percentile(0.25)
	hScale := 1.06 * math.Pow(data.Weight(), -1.0/5)
	stdDev := data.StdDev()
	if iqr == 0 || stdDev < iqr/1.349 {
		return hScale * stdDev
	}
	return hScale * (iqr / 1.349)
}

// From returns the kernel density estimate for the sample s.
//
// Samples with fewer than two distinct values have no spread to
// estimate a bandwidth from; for those From uses a bandwidth of 1
// unless one was set explicitly.
func (k KDE) From(s Sample) Dist {
	h := k.Bandwidth
	if h == 0 {
		h = BandwidthScott(s)
	}
	if !(h > 0) || math.IsInf(h, 0) {
		h = 1
	}

	min, max := k.BoundaryMin, k.BoundaryMax
	if min == 0 && max == 0 {
		min, max = math.Inf(-1), math.Inf(1)
	}
	return &kdeDist{NormalDist{0, h}, s.Xs, min, max}
}

type kdeDist struct {
	kernel   NormalDist
	xs       []float64
	min, max float64 // Support bounds
}

// normalizedXs returns x - kde.xs. Evaluating kernels shifted by
// kde.xs all at x is equivalent to evaluating one unshifted kernel at
// x - kde.xs.
func (kde *kdeDist) normalizedXs(x float64) []float64 {
	txs := make([]float64, len(kde.xs))
	for i, xi := range kde.xs {
		txs[i] = x - xi
	}
	return txs
}

func (kde *kdeDist) mean(ys []float64) float64 {
	return Sample{Xs: ys}.Sum() / float64(len(ys))
}

func (kde *kdeDist) PDF(x float64) float64 {
	if len(kde.xs) == 0 || x < kde.min || x >= kde.max {
		return 0
	}

	y := func(x float64) float64 {
		return kde.mean(kde.kernel.PDFEach(kde.normalizedXs(x)))
	}
	switch {
	case math.IsInf(kde.min, -1) && math.IsInf(kde.max, 1):
		return y(x)
	case math.IsInf(kde.max, 1):
		return y(x) + y(2*kde.min-x)
	case math.IsInf(kde.min, -1):
		return y(x) + y(2*kde.max-x)
	}
	d := 2 * (kde.max - kde.min)
	w := 2 * (x - kde.min)
	return series(func(n float64) float64 {
		// Points >= x
		return y(x+n*d) + y(x+n*d-w)
	}) + series(func(n float64) float64 {
		// Points < x
		return y(x-(n+1)*d+w) + y(x-(n+1)*d)
	})
}

func (kde *kdeDist) CDF(x float64) float64 {
	if x < kde.min {
		return 0
	} else if x >= kde.max || len(kde.xs) == 0 {
		return 1
	}

	y := func(x float64) float64 {
		return kde.mean(kde.kernel.CDFEach(kde.normalizedXs(x)))
	}
	switch {
	case math.IsInf(kde.min, -1) && math.IsInf(kde.max, 1):
		return y(x)
	case math.IsInf(kde.max, 1):
		return y(x) - y(2*kde.min-x)
	case math.IsInf(kde.min, -1):
		return y(x) + (1 - y(2*kde.max-x))
	}
	d := 2 * (kde.max - kde.min)
	w := 2 * (x - kde.min)
	return series(func(n float64) float64 {
		// Windows >= x-w
		return y(x+n*d) - y(x+n*d-w)
	}) + series(func(n float64) float64 {
		// Windows < x-w
		return y(x-(n+1)*d) - y(x-(n+1)*d-w)
	})
}

func (kde *kdeDist) InvCDF(y float64) float64 {
	if math.IsNaN(y) || y < 0 || y > 1 {
		return nan
	}
	lo, hi := kde.expand(y, y)
	x, _ := bisect(func(x float64) float64 { return kde.CDF(x) - y }, lo, hi, 1e-9*(hi-lo))
	return x
}

// expand returns an interval [lo, hi] that brackets the x values at
// which the CDF reaches lowY and highY.
func (kde *kdeDist) expand(lowY, highY float64) (lo, hi float64) {
	lo, hi = Sample{Xs: kde.xs}.Bounds()
	if len(kde.xs) == 0 {
		lo, hi = 0, 0
	}
	if lo == hi {
		lo -= 1
		hi += 1
	}
	for i := 0; kde.CDF(lo) > lowY && i < 64; i++ {
		lo -= hi - lo
	}
	for i := 0; kde.CDF(hi) < highY && i < 64; i++ {
		hi += hi - lo
	}
	return math.Max(lo, kde.min), math.Min(hi, kde.max)
}

func (kde *kdeDist) Bounds() (low float64, high float64) {
	// Find the end points that contain 99% of the CDF's weight.
	const (
		lowY      = 0.005
		highY     = 0.995
		tolerance = 0.001
	)
	lo, hi := kde.expand(lowY, highY)
	low, _ = bisect(func(x float64) float64 { return kde.CDF(x) - lowY }, lo, hi, tolerance)
	high, _ = bisect(func(x float64) float64 { return kde.CDF(x) - highY }, lo, hi, tolerance)

	// Expand width by 20% to give some margins
	width := high - low
	low, high = low-0.1*width, high+0.1*width

	return math.Max(low, kde.min), math.Min(high, kde.max)
}
