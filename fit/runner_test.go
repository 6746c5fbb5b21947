// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclements/go-distfit/family"
	"github.com/aclements/go-distfit/stats"
)

func waitCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestRunnerPublishes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	r := NewRunner(Options{Metrics: m})
	defer r.Close()
	assert.Nil(t, r.Latest())

	updates, unsubscribe := r.Subscribe()
	defer unsubscribe()

	h, err := r.Submit(normalRequest(family.Normal, family.Exponential))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), h.Generation())

	res, err := h.Wait(waitCtx(t))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), res.Generation)
	assert.Same(t, res, r.Latest())
	assert.Same(t, res, <-updates)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues(outcomeCompleted)))

	select {
	case <-h.Done():
	default:
		t.Fatal("Done not closed after Wait returned")
	}
}

func TestRunnerRejectsInvalid(t *testing.T) {
	r := NewRunner(Options{})
	defer r.Close()
	req := normalRequest()
	_, err := r.Submit(req)
	assert.ErrorIs(t, err, ErrNoCandidates)
	assert.Nil(t, r.Latest())
}

func TestRunnerSupersedes(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	// Runs over the 7-point sample block until released.
	slow := family.EstimatorFunc(func(ft family.Type, s stats.Sample) (*family.Fitted, error) {
		if s.Len() == 7 {
			select {
			case started <- struct{}{}:
			default:
			}
			<-release
		}
		return family.Fit(ft, s)
	})
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	r := NewRunner(Options{Estimator: slow, Metrics: m, Parallelism: 1})
	defer r.Close()

	old := normalRequest(family.Normal)
	old.Sample = stats.Sample{Xs: []float64{1, 2, 3, 4, 5, 6, 7}}
	h1, err := r.Submit(old)
	require.NoError(t, err)
	<-started

	h2, err := r.Submit(normalRequest(family.Normal))
	require.NoError(t, err)
	assert.Greater(t, h2.Generation(), h1.Generation())

	res2, err := h2.Wait(waitCtx(t))
	require.NoError(t, err)
	assert.Same(t, res2, r.Latest())

	close(release)
	_, err = h1.Wait(waitCtx(t))
	assert.ErrorIs(t, err, ErrSuperseded)
	assert.Same(t, res2, r.Latest(), "stale run replaced a newer result")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues(outcomeSuperseded)))
}

func TestRunnerClose(t *testing.T) {
	r := NewRunner(Options{})
	updates, unsubscribe := r.Subscribe()
	r.Close()
	_, ok := <-updates
	assert.False(t, ok)
	unsubscribe()

	_, err := r.Submit(normalRequest(family.Normal))
	assert.ErrorIs(t, err, ErrClosed)
}

func TestRunnerUnsubscribe(t *testing.T) {
	r := NewRunner(Options{})
	defer r.Close()
	updates, unsubscribe := r.Subscribe()
	unsubscribe()
	unsubscribe()
	_, ok := <-updates
	assert.False(t, ok)

	h, err := r.Submit(normalRequest(family.Normal))
	require.NoError(t, err)
	_, err = h.Wait(waitCtx(t))
	require.NoError(t, err)
}
