// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package session

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclements/go-distfit/family"
	"github.com/aclements/go-distfit/fit"
	"github.com/aclements/go-distfit/gof"
	"github.com/aclements/go-distfit/stats"
)

func TestRoundTripReproducesRanking(t *testing.T) {
	xs := make([]float64, 300)
	for i := range xs {
		xs[i] = stats.NormalDist{Mu: 20, Sigma: 3}.InvCDF((float64(i) + 0.5) / 300)
	}
	req := fit.Request{
		Sample:     stats.Sample{Xs: xs},
		Candidates: []family.Type{family.Gamma, family.Normal, family.Exponential, family.Poisson},
		Tests:      fit.DefaultTestWeights(),
		BinWidth:   fit.ParseBinWidth("1.5"),
	}
	req.Tests[1].Weight = fit.ParseWeight("0.25")
	first, err := fit.Run(context.Background(), req, fit.Options{})
	require.NoError(t, err)

	sess, err := FromRun(first, req.Sample)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, sess.Encode(&buf))

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, sess, got)

	second, err := fit.Run(context.Background(), got.Request(), fit.Options{})
	require.NoError(t, err)
	assert.Equal(t, first.Types(), second.Types())
	for i := range first.Results {
		assert.Equal(t, first.Results[i].Score, second.Results[i].Score)
	}
	assert.Equal(t, first.BinWidth, second.BinWidth)
}

func TestDecodeFile(t *testing.T) {
	sess, err := Load(filepath.Join("testdata", "session.json"))
	require.NoError(t, err)
	assert.Len(t, sess.Data, 17)
	assert.Equal(t, 1.0, sess.BinWidth)
	assert.Equal(t, []family.Type{family.Poisson, family.NegativeBinomial, family.Normal}, sess.SelectedDists)
	require.Contains(t, sess.TestWeights, gof.KS)
	assert.False(t, sess.TestWeights[gof.KS].NumberInputData.Valid)

	req := sess.Request()
	require.Len(t, req.Tests, 2)
	assert.Equal(t, gof.ChiSquare, req.Tests[0].Kind)
	assert.Equal(t, 0.7, req.Tests[0].Weight.Value)
	// The deselected KS weight is invalid but does not block a run.
	assert.NoError(t, req.Validate())
}

func TestDecodeErrors(t *testing.T) {
	for _, test := range []struct {
		name, in string
	}{
		{"syntax", `{"data": [1, 2,,]}`},
		{"family", `{"data":[1],"binWidth":1,"selectedDists":["Cauchy"],"testWeights":{}}`},
		{"test", `{"data":[1],"binWidth":1,"selectedDists":[],"testWeights":{"AD":{"selected":true}}}`},
		{"bin width", `{"data":[1],"binWidth":0,"selectedDists":[],"testWeights":{}}`},
		{"weights", `{"data":[1],"binWidth":1,"selectedDists":[]}`},
		{"weight above 1", `{"data":[1],"binWidth":1,"selectedDists":[],"testWeights":{"KS":{"selected":true,"numberInputData":{"text":"5","computedValue":5}}}}`},
		{"negative weight", `{"data":[1],"binWidth":1,"selectedDists":[],"testWeights":{"KS":{"selected":true,"numberInputData":{"text":"-0.5","computedValue":-0.5}}}}`},
		{"type", `{"data":"oops"}`},
	} {
		t.Run(test.name, func(t *testing.T) {
			sess, err := Decode(strings.NewReader(test.in))
			assert.Nil(t, sess)
			var derr *DecodeError
			require.True(t, errors.As(err, &derr), "%v", err)
			switch test.name {
			case "syntax":
				assert.GreaterOrEqual(t, derr.Offset, int64(0))
			case "weight above 1", "negative weight":
				assert.ErrorIs(t, err, fit.ErrBadWeight)
			}
		})
	}
}

func TestDecodeIgnoresDeselectedWeight(t *testing.T) {
	in := `{"data":[1],"binWidth":1,"selectedDists":[],"testWeights":{"KS":{"selected":false,"numberInputData":{"text":"5","computedValue":5}}}}`
	sess, err := Decode(strings.NewReader(in))
	require.NoError(t, err)
	assert.False(t, sess.TestWeights[gof.KS].Selected)
}

func TestFromRunNil(t *testing.T) {
	_, err := FromRun(nil, stats.Sample{})
	assert.ErrorIs(t, err, ErrNoRun)
}

func TestSaveLoad(t *testing.T) {
	sess := &Session{
		Data:          []float64{1, 2, 3},
		BinWidth:      0.5,
		SelectedDists: []family.Type{family.Uniform},
		TestWeights: map[gof.Kind]TestWeightData{
			gof.KS: {Selected: true, NumberInputData: fit.Number(1)},
		},
	}
	path := filepath.Join(t.TempDir(), "s.json")
	require.NoError(t, sess.Save(path))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, sess, got)
}
