// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stats holds the probability distributions and sample
// routines that candidate fits are evaluated with.
//
// Continuous families are thin adapters over gonum's distuv package.
// The discrete families carry their own PMF and CDF so that the
// goodness-of-fit code can sum probability mass over integer support
// points.
package stats // import "github.com/aclements/go-distfit/stats"

import "math"

var inf = math.Inf(1)
var nan = math.NaN()
