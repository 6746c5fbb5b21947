// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package session saves and restores the inputs of a fitting run so
// it can be replayed later.
//
// A session is stored as JSON:
//
//	{
//	  "data": [1.2, 3.4, ...],
//	  "binWidth": 0.5,
//	  "selectedDists": ["Normal", "Gamma"],
//	  "testWeights": {
//	    "ChiSquare": {"selected": true, "numberInputData": {"text": "0.5", "computedValue": 0.5}},
//	    "KS": {"selected": true, "numberInputData": {"text": "0.5", "computedValue": 0.5}}
//	  }
//	}
package session // import "github.com/aclements/go-distfit/session"

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/aclements/go-distfit/family"
	"github.com/aclements/go-distfit/fit"
	"github.com/aclements/go-distfit/gof"
	"github.com/aclements/go-distfit/stats"
)

// Session is the saved state of a fitting run.
type Session struct {
	Data          []float64                   `json:"data"`
	BinWidth      float64                     `json:"binWidth"`
	SelectedDists []family.Type               `json:"selectedDists"`
	TestWeights   map[gof.Kind]TestWeightData `json:"testWeights"`
}

// TestWeightData is the saved configuration of one test.
type TestWeightData struct {
	Selected        bool            `json:"selected"`
	NumberInputData fit.NumberInput `json:"numberInputData"`
}

// ErrNoRun is returned by FromRun when there is no result to save.
var ErrNoRun = errors.New("no completed run to save")

// DecodeError reports a session that could not be read.
type DecodeError struct {
	// Offset is the byte offset of a JSON syntax error, or -1.
	Offset int64
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("decoding session at byte %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("decoding session: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// FromRun captures the inputs of run over sample s. The selected
// families are the ones that were run, not any selected since.
func FromRun(run *fit.RunResult, s stats.Sample) (*Session, error) {
	if run == nil {
		return nil, ErrNoRun
	}
	data := s.Copy().Sort().Xs
	sess := &Session{
		Data:          data,
		BinWidth:      run.BinWidth,
		SelectedDists: run.Types(),
		TestWeights:   make(map[gof.Kind]TestWeightData, len(run.Tests)),
	}
	for _, tw := range run.Tests {
		sess.TestWeights[tw.Kind] = TestWeightData{tw.Selected, tw.Weight}
	}
	return sess, nil
}

// Request rebuilds the run request that sess describes.
func (sess *Session) Request() fit.Request {
	req := fit.Request{
		Sample:     stats.Sample{Xs: append([]float64(nil), sess.Data...)},
		Candidates: append([]family.Type(nil), sess.SelectedDists...),
		BinWidth:   fit.Number(sess.BinWidth),
	}
	for k, tw := range sess.TestWeights {
		req.Tests = append(req.Tests, fit.TestWeight{Kind: k, Selected: tw.Selected, Weight: tw.NumberInputData})
	}
	sort.Slice(req.Tests, func(i, j int) bool { return req.Tests[i].Kind < req.Tests[j].Kind })
	return req
}

// Encode writes sess to w as indented JSON.
func (sess *Session) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sess)
}

// Decode reads a session from r. All failures are returned as
// *DecodeError.
func Decode(r io.Reader) (*Session, error) {
	var sess Session
	if err := json.NewDecoder(r).Decode(&sess); err != nil {
		var syn *json.SyntaxError
		if errors.As(err, &syn) {
			return nil, &DecodeError{syn.Offset, err}
		}
		return nil, &DecodeError{-1, err}
	}
	if err := sess.validate(); err != nil {
		return nil, &DecodeError{-1, err}
	}
	return &sess, nil
}

func (sess *Session) validate() error {
	if !(sess.BinWidth > 0) || math.IsInf(sess.BinWidth, 0) {
		return fmt.Errorf("binWidth %v: %w", sess.BinWidth, gof.ErrBadBinWidth)
	}
	for i, x := range sess.Data {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("data[%d] is not finite", i)
		}
	}
	if sess.TestWeights == nil {
		return errors.New("missing testWeights")
	}
	for _, k := range gof.Kinds() {
		tw, ok := sess.TestWeights[k]
		if !ok || !tw.Selected || !tw.NumberInputData.Valid {
			continue
		}
		if w := tw.NumberInputData.Value; !fit.ValidWeight(w) {
			return fmt.Errorf("%v weight %v: %w", k, w, fit.ErrBadWeight)
		}
	}
	return nil
}

// Load reads the session stored in file path.
func Load(path string) (*Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening session: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Save writes sess to file path.
func (sess *Session) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}
	if err := sess.Encode(f); err != nil {
		f.Close()
		return fmt.Errorf("writing session: %w", err)
	}
	return f.Close()
}
