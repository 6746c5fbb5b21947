// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gof

import (
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-distfit/stats"
)

// MaxBins bounds the number of bins Edges will generate.
const MaxBins = 1 << 20

// Edges returns chi-square bin edges for s with the given width.
//
// The edges start at min(s) and step by width. There are
// max(1, ceil((max-min)/width)) bins, so the last edge is at or
// beyond max(s). The last bin is closed on the right, so max(s) is
// always counted.
func Edges(s stats.Sample, width float64) ([]float64, error) {
	if !(width > 0) || math.IsInf(width, 0) {
		return nil, fmt.Errorf("%w: %v", ErrBadBinWidth, width)
	}
	if s.Len() == 0 {
		return nil, ErrEmptySample
	}
	if !s.Finite() {
		return nil, ErrNonFinite
	}
	min, max := s.Bounds()
	nf := math.Ceil((max - min) / width)
	if nf > MaxBins {
		return nil, fmt.Errorf("%w: %.3g bins of width %v", ErrTooManyBins, nf, width)
	}
	n := int(nf)
	if n < 1 {
		n = 1
	}

	edges := make([]float64, n+1)
	for i := range edges {
		// Multiply rather than accumulate to avoid drift.
		edges[i] = min + float64(i)*width
	}
	// Round-off can leave the last edge an ulp short of max.
	edges[n] = math.Max(edges[n], max)
	return edges, nil
}

// binOf returns the index of the bin containing x. Values below the
// first edge fall in the first bin and values at or above the last
// edge fall in the last bin.
func binOf(edges []float64, x float64) int {
	nb := len(edges) - 1
	i := sort.Search(len(edges), func(j int) bool { return edges[j] > x }) - 1
	if i < 0 {
		return 0
	} else if i >= nb {
		return nb - 1
	}
	return i
}

// Histogram returns the number of values of s in each bin.
func Histogram(s stats.Sample, edges []float64) []int {
	if len(edges) < 2 {
		return nil
	}
	counts := make([]int, len(edges)-1)
	for _, x := range s.Xs {
		counts[binOf(edges, x)]++
	}
	return counts
}
