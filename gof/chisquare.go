// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gof

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/aclements/go-distfit/family"
	"github.com/aclements/go-distfit/stats"
)

// maxPMFTerms is the largest number of integer support points whose
// PMF is summed for one bin. Wider bins use the CDF difference.
const maxPMFTerms = 4096

// ChiSquareTest performs Pearson's chi-squared goodness-of-fit test
// of sample s against fitted distribution d, using the bins given by
// edges.
//
// The first bin extends to -∞ and the last bin to +∞ when computing
// expected counts, so the bin probabilities sum to 1. Bins where
// both the expected and observed counts are zero are ignored. The
// degrees of freedom are the number of remaining bins minus 1 minus
// the number of parameters estimated for d. If that is less than 1,
// the outcome has no p-value.
func ChiSquareTest(s stats.Sample, d *family.Fitted, edges []float64) (Outcome, error) {
	fail := func(err error) (Outcome, error) {
		return Outcome{}, &TestError{ChiSquare, err}
	}
	if d == nil {
		return fail(ErrNoDistribution)
	}
	if s.Len() == 0 {
		return fail(ErrEmptySample)
	}
	if len(edges) < 2 {
		return fail(ErrDegenerateBins)
	}

	observed := Histogram(s, edges)
	var probs []float64
	if d.Kind() == family.Discrete {
		probs = discreteBinProbs(d, edges)
	} else {
		probs = continuousBinProbs(d, edges)
	}

	n := float64(s.Len())
	chi2, used := 0.0, 0
	for i, o := range observed {
		e := n * probs[i]
		if math.IsNaN(e) {
			return fail(ErrSingular)
		}
		if e <= 0 {
			if o > 0 {
				return fail(ErrZeroExpected)
			}
			continue
		}
		diff := float64(o) - e
		chi2 += diff * diff / e
		used++
	}
	if used < 2 {
		return fail(ErrDegenerateBins)
	}

	out := Outcome{
		Kind:      ChiSquare,
		Statistic: chi2,
		PValue:    math.NaN(),
		DF:        used - 1 - d.Type.NumParams(),
		Bins:      used,
	}
	if out.DF >= 1 {
		out.PValue = distuv.ChiSquared{K: float64(out.DF)}.Survival(chi2)
		out.HasPValue = true
	}
	return out, nil
}

// continuousBinProbs returns the probability mass of d in each bin,
// with the outer bins absorbing the tails.
func continuousBinProbs(d *family.Fitted, edges []float64) []float64 {
	nb := len(edges) - 1
	probs := make([]float64, nb)
	prev := 0.0
	for i := 0; i < nb; i++ {
		next := 1.0
		if i < nb-1 {
			next = d.CDF(edges[i+1])
		}
		probs[i] = math.Max(next-prev, 0)
		prev = next
	}
	return probs
}

// discreteBinProbs returns the probability mass of d in each bin. A
// bin [a, b) holds the integers k with a ≤ k < b; the outer bins
// absorb the tails.
func discreteBinProbs(d *family.Fitted, edges []float64) []float64 {
	nb := len(edges) - 1
	probs := make([]float64, nb)
	// below returns P(X < x) for the integer-supported d.
	below := func(x float64) float64 {
		return d.CDF(math.Ceil(x) - 1)
	}
	for i := 0; i < nb; i++ {
		switch {
		case nb == 1:
			probs[i] = 1
		case i == 0:
			probs[i] = below(edges[1])
		case i == nb-1:
			probs[i] = 1 - below(edges[i])
		default:
			lo, hi := math.Ceil(edges[i]), math.Ceil(edges[i+1])
			if hi-lo > maxPMFTerms {
				probs[i] = below(edges[i+1]) - below(edges[i])
				break
			}
			p := 0.0
			for k := lo; k < hi; k++ {
				p += d.PMF(k)
			}
			probs[i] = p
		}
		probs[i] = math.Max(probs[i], 0)
	}
	return probs
}
