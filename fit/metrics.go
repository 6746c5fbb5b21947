// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/aclements/go-distfit/family"
	"github.com/aclements/go-distfit/gof"
)

// Metrics are the Prometheus collectors updated by Run and Runner.
// A nil *Metrics records nothing.
type Metrics struct {
	runs              *prometheus.CounterVec
	candidateFailures *prometheus.CounterVec
	testFailures      *prometheus.CounterVec
	runDuration       prometheus.Histogram
}

// Run outcomes used as the "outcome" label of distfit_runs_total.
const (
	outcomeCompleted  = "completed"
	outcomeCanceled   = "canceled"
	outcomeSuperseded = "superseded"
	outcomeInvalid    = "invalid"
)

// NewMetrics creates the fitting metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "distfit_runs_total",
			Help: "Fitting runs by outcome.",
		}, []string{"outcome"}),
		candidateFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "distfit_estimation_failures_total",
			Help: "Candidates whose parameters could not be estimated, by family.",
		}, []string{"family"}),
		testFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "distfit_test_failures_total",
			Help: "Goodness-of-fit tests that could not be computed, by test.",
		}, []string{"test"}),
		runDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "distfit_run_duration_seconds",
			Help:    "Wall time of completed fitting runs.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
	}
}

func (m *Metrics) run(outcome string) {
	if m != nil {
		m.runs.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) completed(d time.Duration) {
	if m != nil {
		m.runs.WithLabelValues(outcomeCompleted).Inc()
		m.runDuration.Observe(d.Seconds())
	}
}

// finished records the outcome of a run that was not superseded.
func (m *Metrics) finished(res *RunResult, err error) {
	var cerr *ConfigError
	switch {
	case err == nil:
		m.completed(res.Elapsed)
	case errors.As(err, &cerr):
		m.run(outcomeInvalid)
	default:
		m.run(outcomeCanceled)
	}
}

func (m *Metrics) estimationFailed(t family.Type) {
	if m != nil {
		m.candidateFailures.WithLabelValues(t.Key()).Inc()
	}
}

func (m *Metrics) testFailed(k gof.Kind) {
	if m != nil {
		m.testFailures.WithLabelValues(k.Key()).Inc()
	}
}
