// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclements/go-distfit/family"
	"github.com/aclements/go-distfit/fit"
	"github.com/aclements/go-distfit/stats"
)

func grid(n int, quantile func(float64) float64) stats.Sample {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = quantile((float64(i) + 0.5) / float64(n))
	}
	return stats.Sample{Xs: xs}
}

func TestProjectEmpty(t *testing.T) {
	s := grid(50, stats.StdNormal.InvCDF)
	d, err := family.Fit(family.Normal, s)
	require.NoError(t, err)

	empty := Project(stats.Sample{}, d, 1)
	assert.True(t, empty.Empty())
	assert.Nil(t, empty.Histogram)
	nofit := Project(s, nil, 1)
	assert.True(t, nofit.Empty())
}

func TestProjectContinuous(t *testing.T) {
	const n = 100
	s := grid(n, stats.StdNormal.InvCDF)
	d, err := family.Fit(family.Normal, s)
	require.NoError(t, err)

	ser := Project(s, d, 0.5)
	assert.Equal(t, family.Normal, ser.Type)
	assert.False(t, ser.Discrete)
	require.Len(t, ser.QQ, n)
	require.Len(t, ser.QQBand, n)
	require.Len(t, ser.PP, n)

	for i, p := range ser.QQ {
		assert.InDelta(t, p.X, p.Y, 0.1, "QQ[%d]", i)
		b := ser.QQBand[i]
		assert.Equal(t, p.X, b.X)
		assert.LessOrEqual(t, b.Lo, p.Y, "QQBand[%d]", i)
		assert.GreaterOrEqual(t, b.Hi, p.Y, "QQBand[%d]", i)
		if i > 0 {
			assert.GreaterOrEqual(t, p.X, ser.QQ[i-1].X)
			assert.GreaterOrEqual(t, ser.PP[i].Y, ser.PP[i-1].Y)
		}
	}
	assert.InDelta(t, 0.5/n, ser.PP[0].X, 1e-12)
	assert.InDelta(t, 1, ser.ECDF[n-1].Y, 1e-12)

	require.True(t, ser.HasQQLine)
	assert.InDelta(t, 1, ser.QQLine.Slope, 0.05)
	assert.InDelta(t, 0, ser.QQLine.Intercept, 0.05)

	require.Len(t, ser.Density, densityPoints)
	require.Len(t, ser.KDE, densityPoints)
	min, max := s.Bounds()
	assert.Equal(t, min, ser.Density[0].X)
	assert.InDelta(t, max, ser.Density[densityPoints-1].X, 1e-12)
	for _, p := range ser.Density {
		assert.GreaterOrEqual(t, p.Y, 0.0)
	}

	total, area := 0, 0.0
	for _, b := range ser.Histogram {
		total += b.Count
		area += b.Density * (b.Hi - b.Lo)
	}
	assert.Equal(t, n, total)
	assert.InDelta(t, 1, area, 1e-9)
}

func TestProjectDiscrete(t *testing.T) {
	s := grid(200, stats.PoissonDist{Lambda: 4}.InvCDF)
	d, err := family.Fit(family.Poisson, s)
	require.NoError(t, err)

	ser := Project(s, d, 1)
	assert.True(t, ser.Discrete)
	assert.Empty(t, ser.KDE)
	min, max := s.Bounds()
	require.Len(t, ser.Density, int(max-min)+1)
	sum := 0.0
	for i, p := range ser.Density {
		assert.Equal(t, min+float64(i), p.X)
		sum += p.Y
	}
	assert.LessOrEqual(t, sum, 1.0)
	assert.Greater(t, sum, 0.95)
	for _, p := range ser.QQ {
		assert.Equal(t, float64(int(p.X)), p.X, "discrete quantiles are integers")
	}
}

func TestProjectNoHistogram(t *testing.T) {
	s := grid(20, stats.StdNormal.InvCDF)
	d, err := family.Fit(family.Normal, s)
	require.NoError(t, err)
	ser := Project(s, d, 0)
	assert.False(t, ser.Empty())
	assert.Empty(t, ser.Histogram)
}

func TestForCandidate(t *testing.T) {
	s := grid(200, stats.NormalDist{Mu: 10, Sigma: 2}.InvCDF)
	req := fit.Request{
		Sample:     s,
		Candidates: []family.Type{family.Normal, family.Poisson},
		Tests:      fit.DefaultTestWeights(),
		BinWidth:   fit.Number(1),
	}
	run, err := fit.Run(context.Background(), req, fit.Options{})
	require.NoError(t, err)

	ser, err := ForCandidate(run, s, family.Normal)
	require.NoError(t, err)
	assert.Equal(t, family.Normal, ser.Type)
	assert.Len(t, ser.QQ, 200)

	_, err = ForCandidate(run, s, family.Poisson)
	assert.ErrorIs(t, err, ErrNoFit)
	_, err = ForCandidate(run, s, family.Gamma)
	assert.ErrorIs(t, err, ErrNotInRun)
	_, err = ForCandidate(nil, s, family.Normal)
	assert.ErrorIs(t, err, ErrNotInRun)
}
