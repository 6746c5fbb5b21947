// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit

import (
	"math"

	mstats "github.com/montanaflynn/stats"

	"github.com/aclements/go-distfit/stats"
)

// DefaultBinWidth suggests a chi-square bin width for s.
//
// It uses the Freedman-Diaconis rule, 2·IQR/∛n. If the interquartile
// range is zero it falls back to Sturges' rule over the full range,
// and if s is empty or constant it returns 1. For integer samples
// the width is rounded up to a whole number so every bin holds at
// least one support point.
func DefaultBinWidth(s stats.Sample) float64 {
	n := s.Len()
	if n == 0 || !s.Finite() {
		return 1
	}
	w := 0.0
	if iqr, err := mstats.InterQuartileRange(mstats.Float64Data(s.Xs)); err == nil && iqr > 0 {
		w = 2 * iqr / math.Cbrt(float64(n))
	} else if min, max := s.Bounds(); max > min {
		w = (max - min) / (math.Ceil(math.Log2(float64(n))) + 1)
	}
	if !(w > 0) || math.IsInf(w, 0) {
		return 1
	}
	if s.Integral() {
		w = math.Max(1, math.Ceil(w))
	}
	return w
}
