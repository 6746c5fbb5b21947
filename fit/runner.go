// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

var (
	// ErrSuperseded is returned for a run that was replaced by a
	// newer submission before its result could be published.
	ErrSuperseded = errors.New("run superseded by a newer submission")

	// ErrClosed is returned by Submit after Close.
	ErrClosed = errors.New("runner closed")
)

// A Runner performs fitting runs in the background and publishes the
// most recent result.
//
// Each submission is assigned an increasing generation. Submitting a
// new request cancels the run in flight, and a run only publishes its
// result if no newer request has been submitted since, so Latest
// always reflects the most recent submission to finish. Readers see
// either the previous result or the new one, never a partial result.
type Runner struct {
	opts   Options
	latest atomic.Pointer[RunResult]

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	subs   map[chan *RunResult]struct{}
	closed bool
	wg     sync.WaitGroup
}

// NewRunner returns a Runner that performs runs with opts.
func NewRunner(opts Options) *Runner {
	return &Runner{
		opts: opts.withDefaults(),
		subs: make(map[chan *RunResult]struct{}),
	}
}

// A Handle tracks one submitted run.
type Handle struct {
	gen  uint64
	done chan struct{}
	res  *RunResult
	err  error
}

// Generation returns the generation assigned to the run.
func (h *Handle) Generation() uint64 {
	return h.gen
}

// Done returns a channel that is closed when the run finishes.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the run finishes or ctx is done. It returns the
// published result, or ErrSuperseded if a newer submission replaced
// this run.
func (h *Handle) Wait(ctx context.Context) (*RunResult, error) {
	select {
	case <-h.done:
		return h.res, h.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Submit validates req and starts running it in the background. If
// req is invalid, Submit returns its *ConfigError and nothing runs.
func (r *Runner) Submit(req Request) (*Handle, error) {
	if err := req.Validate(); err != nil {
		r.opts.Metrics.run(outcomeInvalid)
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		cancel()
		return nil, ErrClosed
	}
	if r.cancel != nil {
		r.cancel()
	}
	r.gen++
	h := &Handle{gen: r.gen, done: make(chan struct{})}
	r.cancel = cancel
	r.wg.Add(1)
	r.mu.Unlock()

	log := r.opts.Logger.WithValues("generation", h.gen)
	go func() {
		defer r.wg.Done()
		defer close(h.done)
		defer cancel()

		opts := r.opts
		opts.Logger = log
		res, err := run(ctx, req, opts)
		if err == nil {
			res.Generation = h.gen
			err = r.publish(res)
		} else if ctx.Err() != nil && r.stale(h.gen) {
			err = ErrSuperseded
		}
		if errors.Is(err, ErrSuperseded) {
			r.opts.Metrics.run(outcomeSuperseded)
			log.V(1).Info("run superseded")
			h.err = err
			return
		}
		r.opts.Metrics.finished(res, err)
		if err != nil {
			log.Error(err, "run failed")
			h.err = err
			return
		}
		h.res = res
	}()
	return h, nil
}

func (r *Runner) stale(gen uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return gen != r.gen
}

func (r *Runner) publish(res *RunResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if res.Generation != r.gen {
		return ErrSuperseded
	}
	r.latest.Store(res)
	for ch := range r.subs {
		// Subscribers only care about the newest result, so
		// replace anything they have not received yet.
		select {
		case <-ch:
		default:
		}
		ch <- res
	}
	return nil
}

// Latest returns the most recently published result, or nil if no
// run has completed.
func (r *Runner) Latest() *RunResult {
	return r.latest.Load()
}

// Subscribe returns a channel that receives each newly published
// result. A slow subscriber only sees the newest result. The
// returned function unsubscribes and closes the channel.
func (r *Runner) Subscribe() (<-chan *RunResult, func()) {
	ch := make(chan *RunResult, 1)
	r.mu.Lock()
	if r.closed {
		close(ch)
	} else {
		r.subs[ch] = struct{}{}
	}
	r.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			if _, ok := r.subs[ch]; ok {
				delete(r.subs, ch)
				close(ch)
			}
		})
	}
}

// Close cancels any run in flight, waits for it to finish, and
// closes all subscriptions. The published result remains available.
func (r *Runner) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	if r.cancel != nil {
		r.cancel()
	}
	r.mu.Unlock()

	r.wg.Wait()

	r.mu.Lock()
	for ch := range r.subs {
		delete(r.subs, ch)
		close(ch)
	}
	r.mu.Unlock()
}
