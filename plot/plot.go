// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plot derives plot-ready series that compare a sample with
// a fitted distribution. It does not render anything.
package plot // import "github.com/aclements/go-distfit/plot"

import (
	"errors"
	"fmt"
	"math"

	"github.com/aclements/go-distfit/family"
	"github.com/aclements/go-distfit/fit"
	"github.com/aclements/go-distfit/gof"
	"github.com/aclements/go-distfit/stats"
)

// Confidence is the confidence level of the Q-Q band.
const Confidence = 0.95

// densityPoints is the number of grid points for continuous density
// curves.
const densityPoints = 200

// maxMassPoints caps the number of integers at which a PMF is drawn.
const maxMassPoints = 10000

// Point is a point in a series.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Line is the line Y = Slope·X + Intercept.
type Line struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// At returns the Y value of l at x.
func (l Line) At(x float64) float64 {
	return l.Slope*x + l.Intercept
}

// Interval is a confidence interval [Lo, Hi] of the empirical value
// plotted against theoretical value X.
type Interval struct {
	X  float64 `json:"x"`
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// Bar is one histogram bin [Lo, Hi). Density is Count scaled so the
// bar areas sum to 1.
type Bar struct {
	Lo      float64 `json:"lo"`
	Hi      float64 `json:"hi"`
	Count   int     `json:"count"`
	Density float64 `json:"density"`
}

// Series holds every derived series for one fitted distribution.
type Series struct {
	Type     family.Type `json:"type"`
	Discrete bool        `json:"discrete"`

	// QQ plots theoretical quantiles (X) against the sorted
	// sample (Y) at plotting positions (i-0.5)/n.
	QQ []Point `json:"qq"`

	// QQLine passes through the theoretical and empirical
	// quartiles. HasQQLine is false if the theoretical quartiles
	// coincide.
	QQLine    Line `json:"qqLine"`
	HasQQLine bool `json:"hasQQLine"`

	// QQBand is the confidence interval of each sample quantile,
	// clipped to the sample range.
	QQBand []Interval `json:"qqBand"`

	// PP plots plotting positions (X) against the fitted CDF at
	// the sorted sample (Y).
	PP []Point `json:"pp"`

	// ECDF is the empirical CDF at each sorted sample point and
	// CDF is the fitted CDF on the same abscissae.
	ECDF []Point `json:"ecdf"`
	CDF  []Point `json:"cdf"`

	// Density is the fitted PDF on a grid, or the PMF at each
	// integer, over the sample range.
	Density []Point `json:"density"`

	// Histogram bins the sample with the run's bin width.
	Histogram []Bar `json:"histogram"`

	// KDE is a Gaussian kernel density estimate of the sample on
	// the Density grid. It is empty for discrete families.
	KDE []Point `json:"kde,omitempty"`
}

// Empty reports whether s has no data.
func (s *Series) Empty() bool {
	return len(s.QQ) == 0
}

// Project derives the plot series comparing sample s with fitted
// distribution d. binWidth is the histogram bin width; if it is not
// positive, the histogram is omitted. An empty sample or nil d yields
// an empty Series.
func Project(s stats.Sample, d *family.Fitted, binWidth float64) Series {
	if s.Len() == 0 || d == nil || !s.Finite() {
		return Series{}
	}
	if !s.Sorted {
		s = *s.Copy().Sort()
	}
	ser := Series{Type: d.Type, Discrete: d.Kind() == family.Discrete}
	n := s.Len()
	min, max := s.Bounds()

	ser.QQ = make([]Point, n)
	ser.QQBand = make([]Interval, n)
	ser.PP = make([]Point, n)
	ser.ECDF = make([]Point, n)
	ser.CDF = make([]Point, n)
	ps := make([]float64, n)
	for i := range ps {
		ps[i] = (float64(i) + 0.5) / float64(n)
	}
	qs := stats.InvCDFEach(d, ps)
	cdf := stats.CDFEach(d, s.Xs)
	for i, x := range s.Xs {
		ser.QQ[i] = Point{qs[i], x}

		lo, hi := stats.QuantileCI(n, ps[i], Confidence).FromSample(s)
		ser.QQBand[i] = Interval{qs[i], math.Max(lo, min), math.Min(hi, max)}

		ser.PP[i] = Point{ps[i], cdf[i]}
		ser.ECDF[i] = Point{x, float64(i+1) / float64(n)}
		ser.CDF[i] = Point{x, cdf[i]}
	}
	ser.QQLine, ser.HasQQLine = quartileLine(s, d)

	if ser.Discrete {
		ser.Density = massPoints(d, min, max)
	} else {
		xs := densityGrid(d, min, max)
		ser.Density = make([]Point, len(xs))
		for i, x := range xs {
			ser.Density[i] = Point{x, d.Density(x)}
		}
		ser.KDE = kde(s, d, xs)
	}

	if binWidth > 0 {
		if edges, err := gof.Edges(s, binWidth); err == nil {
			ser.Histogram = histogram(s, edges)
		}
	}
	return ser
}

// quartileLine returns the line through the points pairing the
// theoretical and empirical first and third quartiles.
func quartileLine(s stats.Sample, d *family.Fitted) (Line, bool) {
	x1, x3 := d.InvCDF(0.25), d.InvCDF(0.75)
	y1, y3 := s.Quantile(0.25), s.Quantile(0.75)
	if !(x3 > x1) || math.IsInf(x1, 0) || math.IsInf(x3, 0) {
		return Line{}, false
	}
	slope := (y3 - y1) / (x3 - x1)
	return Line{Slope: slope, Intercept: y1 - slope*x1}, true
}

// densityGrid returns evenly spaced points over the part of d's
// bounds that overlaps [min, max].
func densityGrid(d *family.Fitted, min, max float64) []float64 {
	lo, hi := d.Bounds()
	lo, hi = math.Max(lo, min), math.Min(hi, max)
	if !(hi > lo) {
		lo, hi = min, max
	}
	if !(hi > lo) {
		// Constant sample. Show the density around it.
		lo, hi = min-1, max+1
	}
	xs := make([]float64, densityPoints)
	for i := range xs {
		xs[i] = lo + (hi-lo)*float64(i)/float64(densityPoints-1)
	}
	return xs
}

func massPoints(d *family.Fitted, min, max float64) []Point {
	lo, hi := math.Ceil(min), math.Floor(max)
	if hi-lo >= maxMassPoints {
		hi = lo + maxMassPoints - 1
	}
	var pts []Point
	for k := lo; k <= hi; k++ {
		pts = append(pts, Point{k, d.PMF(k)})
	}
	return pts
}

func kde(s stats.Sample, d *family.Fitted, xs []float64) []Point {
	var k stats.KDE
	if lo := d.SupportMin(); !math.IsInf(lo, 0) {
		k.BoundaryMin, k.BoundaryMax = lo, math.Inf(1)
	}
	est := k.From(s)
	pts := make([]Point, len(xs))
	for i, x := range xs {
		pts[i] = Point{x, est.PDF(x)}
	}
	return pts
}

func histogram(s stats.Sample, edges []float64) []Bar {
	counts := gof.Histogram(s, edges)
	n := float64(s.Len())
	bars := make([]Bar, len(counts))
	for i, c := range counts {
		lo, hi := edges[i], edges[i+1]
		bars[i] = Bar{Lo: lo, Hi: hi, Count: c, Density: float64(c) / (n * (hi - lo))}
	}
	return bars
}

var (
	ErrNotInRun = errors.New("family was not part of the run")
	ErrNoFit    = errors.New("family has no fitted distribution")
)

// ForCandidate projects the series for family t from a completed run
// over sample s.
func ForCandidate(run *fit.RunResult, s stats.Sample, t family.Type) (Series, error) {
	if run == nil {
		return Series{}, fmt.Errorf("%v: %w", t, ErrNotInRun)
	}
	r, ok := run.Find(t)
	if !ok {
		return Series{}, fmt.Errorf("%v: %w", t, ErrNotInRun)
	}
	if !r.OK() {
		return Series{}, fmt.Errorf("%v: %w: %v", t, ErrNoFit, r.Err)
	}
	return Project(s, r.Dist, run.BinWidth), nil
}
