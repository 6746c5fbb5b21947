// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fit runs candidate distribution families against a sample
// and ranks them by their combined goodness-of-fit score.
package fit // import "github.com/aclements/go-distfit/fit"

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/aclements/go-distfit/family"
	"github.com/aclements/go-distfit/gof"
	"github.com/aclements/go-distfit/score"
	"github.com/aclements/go-distfit/stats"
)

// Options control how a run is performed.
type Options struct {
	// Parallelism is the maximum number of candidates evaluated
	// at once. If <= 0, it defaults to GOMAXPROCS.
	Parallelism int

	// Estimator fits candidate families. If nil, it defaults to
	// family.Default.
	Estimator family.Estimator

	// Logger receives run progress. The zero Logger discards.
	Logger logr.Logger

	// Metrics, if non-nil, is updated by each run.
	Metrics *Metrics
}

func (o Options) withDefaults() Options {
	if o.Parallelism <= 0 {
		o.Parallelism = runtime.GOMAXPROCS(0)
	}
	if o.Estimator == nil {
		o.Estimator = family.Default
	}
	if o.Logger.GetSink() == nil {
		o.Logger = logr.Discard()
	}
	return o
}

// Run evaluates every candidate family in req and returns the ranked
// results.
//
// Candidates are evaluated concurrently and independently: a failure
// to estimate or test one candidate is recorded in its DistResult and
// never affects another. Results are sorted by score, best first;
// candidates with equal scores stay in catalog order. Run returns an
// error only if req is invalid or ctx is done before the run
// completes.
func Run(ctx context.Context, req Request, opts Options) (*RunResult, error) {
	opts = opts.withDefaults()
	res, err := run(ctx, req, opts)
	opts.Metrics.finished(res, err)
	return res, err
}

// run is Run without recording the run outcome in opts.Metrics.
func run(ctx context.Context, req Request, opts Options) (*RunResult, error) {
	edges, err := req.validate()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	id := uuid.New()
	log := opts.Logger.WithValues("run", id)
	// Candidates share one sorted copy of the sample.
	sample := req.Sample.Copy().Sort()
	cands := req.candidates()
	tests := req.enabledTests()
	log.Info("fitting run started", "n", sample.Len(), "candidates", len(cands), "tests", len(tests), "bins", len(edges)-1)

	results := make([]DistResult, len(cands))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Parallelism)
	for i, t := range cands {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = evaluate(t, *sample, edges, tests, opts, log)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[j].Score.Less(results[i].Score)
	})

	res := &RunResult{
		ID:       id,
		BinWidth: req.BinWidth.Value,
		Edges:    edges,
		Tests:    append([]TestWeight(nil), req.Tests...),
		Results:  results,
		Elapsed:  time.Since(start),
	}
	if best, ok := res.Best(); ok {
		log.Info("fitting run finished", "elapsed", res.Elapsed, "best", best.Type.Key(), "score", best.Score.Value)
	} else {
		log.Info("fitting run finished with no defined scores", "elapsed", res.Elapsed)
	}
	return res, nil
}

// evaluate estimates and tests a single candidate. It never panics.
func evaluate(t family.Type, s stats.Sample, edges []float64, tests []TestWeight, opts Options, log logr.Logger) (res DistResult) {
	log = log.WithValues("family", t.Key())
	defer func() {
		if r := recover(); r != nil {
			res = DistResult{Type: t, Err: fmt.Errorf("%v: internal error: %v", t, r), Score: score.Undefined}
			opts.Metrics.estimationFailed(t)
			log.Error(res.Err, "candidate evaluation panicked")
		}
	}()

	res.Type = t
	d, err := opts.Estimator.Fit(t, s)
	if err == nil && d == nil {
		err = fmt.Errorf("%v: estimator returned no distribution", t)
	}
	if err != nil {
		res.Err = err
		opts.Metrics.estimationFailed(t)
		log.V(1).Info("estimation failed", "err", err)
		return res
	}
	res.Dist = d

	parts := make([]score.Part, 0, len(tests))
	for _, tw := range tests {
		if !tw.Kind.Applies(d.Kind()) {
			continue
		}
		out, err := gof.Run(gof.Spec{Kind: tw.Kind, Edges: edges}, s, d)
		if err != nil {
			opts.Metrics.testFailed(tw.Kind)
			log.V(1).Info("test failed", "test", tw.Kind.Key(), "err", err)
			out = gof.Outcome{}
		}
		res.Tests = append(res.Tests, TestResult{Kind: tw.Kind, Weight: tw.Weight.Value, Outcome: out, Err: err})
		parts = append(parts, score.Part{Outcome: out, Err: err, Weight: tw.Weight.Value})
	}
	res.Score = score.Combine(parts)
	log.V(1).Info("candidate scored", "dist", d.String(), "score", res.Score.String())
	return res
}
