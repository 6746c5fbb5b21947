// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package httpapi serves fitting runs over HTTP.
//
// Routes:
//
//	POST /runs                          submit a run (session JSON body)
//	GET  /runs/latest                   the latest published result
//	GET  /runs/latest/plots/{family}    plot series for one candidate
//	GET  /catalog                       the distribution families
//	GET  /metrics                       Prometheus metrics
package httpapi // import "github.com/aclements/go-distfit/httpapi"

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aclements/go-distfit/family"
	"github.com/aclements/go-distfit/fit"
	"github.com/aclements/go-distfit/plot"
	"github.com/aclements/go-distfit/session"
	"github.com/aclements/go-distfit/stats"
)

// maxBody bounds the size of a submitted run.
const maxBody = 64 << 20

type Options struct {
	Logger logr.Logger
	// Gatherer serves /metrics. If nil, /metrics is not routed.
	Gatherer prometheus.Gatherer
	// WaitTimeout bounds how long POST /runs?wait=1 blocks.
	WaitTimeout time.Duration
}

// Server is an http.Handler exposing a fit.Runner.
type Server struct {
	runner *fit.Runner
	opts   Options
	router *chi.Mux

	mu sync.Mutex
	// samples holds the sample of each submission that may still
	// be published, by generation.
	samples map[uint64]stats.Sample
}

// New returns a Server submitting runs to runner.
func New(runner *fit.Runner, opts Options) *Server {
	if opts.Logger.GetSink() == nil {
		opts.Logger = logr.Discard()
	}
	if opts.WaitTimeout <= 0 {
		opts.WaitTimeout = time.Minute
	}
	s := &Server{
		runner:  runner,
		opts:    opts,
		router:  chi.NewRouter(),
		samples: make(map[uint64]stats.Sample),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.logRequests)

	s.router.Post("/runs", s.handleSubmit)
	s.router.Get("/runs/latest", s.handleLatest)
	s.router.Get("/runs/latest/plots/{family}", s.handlePlot)
	s.router.Get("/catalog", s.handleCatalog)
	if s.opts.Gatherer != nil {
		s.router.Handle("/metrics", promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{}))
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.opts.Logger.V(1).Info("request", "method", r.Method, "path", r.URL.Path,
			"status", ww.Status(), "elapsed", time.Since(start), "id", middleware.GetReqID(r.Context()))
	})
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorBody{err.Error()})
}

type submitResponse struct {
	Generation uint64 `json:"generation"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	sess, err := session.Decode(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	req := sess.Request()

	// Hold mu across Submit so the sample is recorded before the
	// run can be published.
	s.mu.Lock()
	h, err := s.runner.Submit(req)
	if err == nil {
		s.samples[h.Generation()] = req.Sample
		s.pruneLocked(h.Generation())
	}
	s.mu.Unlock()
	if err != nil {
		var cerr *fit.ConfigError
		if errors.As(err, &cerr) {
			writeError(w, http.StatusUnprocessableEntity, err)
		} else {
			writeError(w, http.StatusServiceUnavailable, err)
		}
		return
	}

	if r.URL.Query().Get("wait") == "" {
		writeJSON(w, http.StatusAccepted, submitResponse{h.Generation()})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.opts.WaitTimeout)
	defer cancel()
	res, err := h.Wait(ctx)
	switch {
	case errors.Is(err, fit.ErrSuperseded):
		writeError(w, http.StatusConflict, err)
	case err != nil:
		writeError(w, http.StatusGatewayTimeout, err)
	default:
		writeJSON(w, http.StatusOK, res)
	}
}

// pruneLocked forgets samples of submissions older than gen, which
// can no longer be published.
func (s *Server) pruneLocked(gen uint64) {
	keep := gen
	if latest := s.runner.Latest(); latest != nil && latest.Generation < keep {
		keep = latest.Generation
	}
	for g := range s.samples {
		if g < keep {
			delete(s.samples, g)
		}
	}
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	res := s.runner.Latest()
	if res == nil {
		writeError(w, http.StatusNotFound, errors.New("no run has completed"))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handlePlot(w http.ResponseWriter, r *http.Request) {
	t, err := family.ParseType(chi.URLParam(r, "family"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res := s.runner.Latest()
	if res == nil {
		writeError(w, http.StatusNotFound, errors.New("no run has completed"))
		return
	}
	s.mu.Lock()
	sample, ok := s.samples[res.Generation]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("sample for latest run is unavailable"))
		return
	}
	ser, err := plot.ForCandidate(res, sample, t)
	switch {
	case errors.Is(err, plot.ErrNotInRun):
		writeError(w, http.StatusNotFound, err)
	case err != nil:
		writeError(w, http.StatusUnprocessableEntity, err)
	default:
		writeJSON(w, http.StatusOK, ser)
	}
}

type catalogEntry struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	NumParams int    `json:"numParams"`
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	var out []catalogEntry
	for _, t := range family.All() {
		out = append(out, catalogEntry{t.Key(), t.String(), t.Kind().String(), t.NumParams()})
	}
	writeJSON(w, http.StatusOK, out)
}
