// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Sample is a collection of possibly weighted data points.
//
// A Sample is treated as immutable by everything in this module.
// Operations that need sorted data sort a copy.
type Sample struct {
	// Xs is the slice of sample values.
	Xs []float64

	// Sorted indicates that Xs is sorted in ascending order.
	Sorted bool
}

// Len returns the number of values in s.
func (s Sample) Len() int {
	return len(s.Xs)
}

// Weight returns the total weight of the Sample.
func (s Sample) Weight() float64 {
	return float64(len(s.Xs))
}

// Bounds returns the minimum and maximum values of the Sample.
//
// If the Sample is empty, Bounds returns NaN, NaN.
func (s Sample) Bounds() (min float64, max float64) {
	if len(s.Xs) == 0 {
		return nan, nan
	}
	if s.Sorted {
		return s.Xs[0], s.Xs[len(s.Xs)-1]
	}
	min, max = s.Xs[0], s.Xs[0]
	for _, x := range s.Xs {
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
	}
	return
}

// Sum returns the sum of the values of the Sample.
func (s Sample) Sum() float64 {
	sum := 0.0
	for _, x := range s.Xs {
		sum += x
	}
	return sum
}

// Mean returns the arithmetic mean of the Sample, or NaN if the
// Sample is empty.
func (s Sample) Mean() float64 {
	if len(s.Xs) == 0 {
		return nan
	}
	return stat.Mean(s.Xs, nil)
}

// Variance returns the sample variance of the Sample. It is NaN for
// fewer than two values.
func (s Sample) Variance() float64 {
	if len(s.Xs) < 2 {
		return nan
	}
	return stat.Variance(s.Xs, nil)
}

// StdDev returns the sample standard deviation of the Sample.
func (s Sample) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// Quantile returns the sample value X at which q of the sample is
// <= X. This uses interpolation method R8 from Hyndman and Fan
// (1996), which is approximately median-unbiased regardless of the
// distribution of the underlying population.
//
// q will be capped to the range [0, 1]. If the Sample is empty,
// Quantile returns NaN.
func (s Sample) Quantile(q float64) float64 {
	if len(s.Xs) == 0 {
		return nan
	} else if q <= 0 {
		min, _ := s.Bounds()
		return min
	} else if q >= 1 {
		_, max := s.Bounds()
		return max
	}

	if !s.Sorted {
		s = *s.Copy().Sort()
	}

	N := float64(len(s.Xs))
	n := 1/3.0 + q*(N+1/3.0)
	kf, frac := math.Modf(n)
	k := int(kf)
	if k <= 0 {
		return s.Xs[0]
	} else if k >= len(s.Xs) {
		return s.Xs[len(s.Xs)-1]
	}
	return s.Xs[k-1] + frac*(s.Xs[k]-s.Xs[k-1])
}

// Percentile is Quantile under the name the KDE bandwidth
// estimators expect.
func (s Sample) Percentile(q float64) float64 {
	return s.Quantile(q)
}

// Finite reports whether every value in s is finite.
func (s Sample) Finite() bool {
	for _, x := range s.Xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Integral reports whether every value in s is a whole number.
func (s Sample) Integral() bool {
	for _, x := range s.Xs {
		if x != math.Trunc(x) {
			return false
		}
	}
	return true
}

// Copy returns a copy of the Sample.
//
// The returned Sample shares no data with the original, so they can
// be modified (for example, sorted) independently.
func (s Sample) Copy() *Sample {
	xs := make([]float64, len(s.Xs))
	copy(xs, s.Xs)
	return &Sample{xs, s.Sorted}
}

// Sort sorts the samples in place in s and returns s.
//
// A sorted sample improves the performance of some algorithms.
func (s *Sample) Sort() *Sample {
	if s.Sorted || sort.Float64sAreSorted(s.Xs) {
		// All set
	} else {
		sort.Float64s(s.Xs)
	}
	s.Sorted = true
	return s
}
