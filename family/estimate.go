// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package family

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/aclements/go-distfit/stats"
)

var (
	ErrEmptySample    = errors.New("sample is empty")
	ErrNonFinite      = errors.New("sample contains NaN or infinite values")
	ErrNegative       = errors.New("sample contains negative values")
	ErrNonPositive    = errors.New("sample contains values <= 0")
	ErrNonInteger     = errors.New("sample contains non-integer values")
	ErrOutOfSupport   = errors.New("sample contains values outside {0, 1}")
	ErrDegenerate     = errors.New("sample has no spread to estimate from")
	ErrUnderdispersed = errors.New("sample variance does not exceed its mean")
	ErrNoConvergence  = errors.New("likelihood maximization did not converge")
	ErrUnknownType    = errors.New("unknown distribution family")
)

// EstimationError records why a family could not be fit to a
// sample.
type EstimationError struct {
	Type Type
	Err  error
}

func (e *EstimationError) Error() string {
	return fmt.Sprintf("fitting %v: %v", e.Type, e.Err)
}

func (e *EstimationError) Unwrap() error {
	return e.Err
}

// An Estimator fits a distribution family to a sample.
//
// Fit must not retain or modify s, and must be safe to call
// concurrently for different families.
type Estimator interface {
	Fit(t Type, s stats.Sample) (*Fitted, error)
}

// EstimatorFunc adapts a function to Estimator.
type EstimatorFunc func(t Type, s stats.Sample) (*Fitted, error)

func (f EstimatorFunc) Fit(t Type, s stats.Sample) (*Fitted, error) {
	return f(t, s)
}

// Default is the estimator used when none is given. Continuous
// families with closed-form maximum likelihood estimates use them;
// Gamma and Weibull maximize the likelihood numerically; discrete
// families use the method of moments.
var Default Estimator = EstimatorFunc(Fit)

// Fit estimates the parameters of family t from s.
//
// All failures are returned as *EstimationError wrapping one of the
// Err* sentinels.
func Fit(t Type, s stats.Sample) (*Fitted, error) {
	fail := func(err error) (*Fitted, error) {
		return nil, &EstimationError{t, err}
	}
	if !t.Valid() {
		return fail(ErrUnknownType)
	}
	if s.Len() == 0 {
		return fail(ErrEmptySample)
	}
	if !s.Finite() {
		return fail(ErrNonFinite)
	}
	if err := checkSupport(t, s); err != nil {
		return fail(err)
	}

	var f *Fitted
	var err error
	switch t {
	case Normal:
		f, err = fitNormal(s)
	case LogNormal:
		f, err = fitLogNormal(s)
	case Weibull:
		f, err = fitWeibull(s)
	case Exponential:
		f, err = fitExponential(s)
	case Gamma:
		f, err = fitGamma(s)
	case Uniform:
		f, err = fitUniform(s)
	case Binomial:
		f, err = fitBinomial(s)
	case Bernoulli:
		f, err = fitBernoulli(s)
	case Poisson:
		f, err = fitPoisson(s)
	case NegativeBinomial:
		f, err = fitNegBinomial(s)
	}
	if err != nil {
		return fail(err)
	}
	return f, nil
}

// checkSupport verifies that every value of s lies in the support of
// family t.
func checkSupport(t Type, s stats.Sample) error {
	min, max := s.Bounds()
	switch t {
	case Exponential:
		if min < 0 {
			return ErrNegative
		}
	case LogNormal, Weibull, Gamma:
		if min <= 0 {
			return ErrNonPositive
		}
	}
	if t.IsDiscrete() {
		if min < 0 {
			return ErrNegative
		}
		if !s.Integral() {
			return ErrNonInteger
		}
		if t == Bernoulli && max > 1 {
			return ErrOutOfSupport
		}
	}
	return nil
}

func meanStdDev(xs []float64) (mean, std float64, err error) {
	if len(xs) < 2 {
		return 0, 0, ErrDegenerate
	}
	mean, std = stat.MeanStdDev(xs, nil)
	if !(std > 0) {
		return 0, 0, ErrDegenerate
	}
	return mean, std, nil
}

func fitNormal(s stats.Sample) (*Fitted, error) {
	mu, sigma, err := meanStdDev(s.Xs)
	if err != nil {
		return nil, err
	}
	d := distuv.Normal{Mu: mu, Sigma: sigma}
	return newContinuous(Normal, stats.UnivariateDist{D: d},
		Param{"mu", mu}, Param{"sigma", sigma}), nil
}

func fitLogNormal(s stats.Sample) (*Fitted, error) {
	logs := make([]float64, len(s.Xs))
	for i, x := range s.Xs {
		logs[i] = math.Log(x)
	}
	mu, sigma, err := meanStdDev(logs)
	if err != nil {
		return nil, err
	}
	d := distuv.LogNormal{Mu: mu, Sigma: sigma}
	return newContinuous(LogNormal, stats.UnivariateDist{D: d},
		Param{"mu", mu}, Param{"sigma", sigma}), nil
}

func fitExponential(s stats.Sample) (*Fitted, error) {
	mean := s.Mean()
	if !(mean > 0) {
		return nil, ErrDegenerate
	}
	rate := 1 / mean
	d := distuv.Exponential{Rate: rate}
	return newContinuous(Exponential, stats.UnivariateDist{D: d},
		Param{"rate", rate}), nil
}

func fitUniform(s stats.Sample) (*Fitted, error) {
	min, max := s.Bounds()
	if !(max > min) {
		return nil, ErrDegenerate
	}
	d := distuv.Uniform{Min: min, Max: max}
	return newContinuous(Uniform, stats.UnivariateDist{D: d},
		Param{"min", min}, Param{"max", max}), nil
}

// maximizeLikelihood minimizes the negative log likelihood of xs
// under the two-parameter family built by mk, searching over the
// logs of the parameters so both stay positive.
func maximizeLikelihood(xs []float64, a0, b0 float64, mk func(a, b float64) distuv.LogProber) (a, b float64, err error) {
	nll := func(x []float64) float64 {
		a, b := math.Exp(x[0]), math.Exp(x[1])
		if a == 0 || b == 0 || math.IsInf(a, 0) || math.IsInf(b, 0) {
			return math.Inf(1)
		}
		d := mk(a, b)
		sum := 0.0
		for _, v := range xs {
			sum -= d.LogProb(v)
		}
		if math.IsNaN(sum) {
			return math.Inf(1)
		}
		return sum
	}
	problem := optimize.Problem{Func: nll}
	res, err := optimize.Minimize(problem, []float64{math.Log(a0), math.Log(b0)}, nil, &optimize.NelderMead{})
	if res == nil || math.IsInf(res.F, 0) || math.IsNaN(res.F) {
		if err == nil {
			err = ErrNoConvergence
		}
		return 0, 0, fmt.Errorf("%w: %v", ErrNoConvergence, err)
	}
	// Minimize reports iteration limits as errors, but the best
	// location found is still a valid fit as long as it is
	// finite.
	a, b = math.Exp(res.X[0]), math.Exp(res.X[1])
	if !(a > 0) || !(b > 0) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return 0, 0, ErrNoConvergence
	}
	return a, b, nil
}

func fitGamma(s stats.Sample) (*Fitted, error) {
	mean, std, err := meanStdDev(s.Xs)
	if err != nil {
		return nil, err
	}
	// Start from the method of moments.
	v := std * std
	alpha, beta, err := maximizeLikelihood(s.Xs, mean*mean/v, mean/v,
		func(a, b float64) distuv.LogProber { return distuv.Gamma{Alpha: a, Beta: b} })
	if err != nil {
		return nil, err
	}
	d := distuv.Gamma{Alpha: alpha, Beta: beta}
	return newContinuous(Gamma, stats.UnivariateDist{D: d},
		Param{"shape", alpha}, Param{"rate", beta}), nil
}

func fitWeibull(s stats.Sample) (*Fitted, error) {
	mean, std, err := meanStdDev(s.Xs)
	if err != nil {
		return nil, err
	}
	// Justus' approximation of the shape from the coefficient of
	// variation, then the matching scale.
	k0 := math.Pow(std/mean, -1.086)
	g, _ := math.Lgamma(1 + 1/k0)
	lambda0 := mean / math.Exp(g)
	k, lambda, err := maximizeLikelihood(s.Xs, k0, lambda0,
		func(a, b float64) distuv.LogProber { return distuv.Weibull{K: a, Lambda: b} })
	if err != nil {
		return nil, err
	}
	d := distuv.Weibull{K: k, Lambda: lambda}
	return newContinuous(Weibull, stats.UnivariateDist{D: d},
		Param{"shape", k}, Param{"scale", lambda}), nil
}

func fitBinomial(s stats.Sample) (*Fitted, error) {
	_, max := s.Bounds()
	if max == 0 {
		return nil, ErrDegenerate
	}
	mean := s.Mean()
	n := int(max)
	// The moment estimate of n is only usable for underdispersed
	// data, and can never be below the largest observation.
	if v := s.Variance(); v > 0 && v < mean {
		p := 1 - v/mean
		if mn := int(math.Round(mean / p)); mn > n {
			n = mn
		}
	}
	p := mean / float64(n)
	d := stats.BinomialDist{N: n, P: p}
	return newDiscrete(Binomial, d, Param{"n", float64(n)}, Param{"p", p}), nil
}

func fitBernoulli(s stats.Sample) (*Fitted, error) {
	p := s.Mean()
	d := stats.BinomialDist{N: 1, P: p}
	return newDiscrete(Bernoulli, d, Param{"p", p}), nil
}

func fitPoisson(s stats.Sample) (*Fitted, error) {
	lambda := s.Mean()
	if !(lambda > 0) {
		return nil, ErrDegenerate
	}
	return newDiscrete(Poisson, stats.PoissonDist{Lambda: lambda}, Param{"lambda", lambda}), nil
}

func fitNegBinomial(s stats.Sample) (*Fitted, error) {
	if s.Len() < 2 {
		return nil, ErrDegenerate
	}
	mean, v := s.Mean(), s.Variance()
	if !(v > mean) {
		return nil, ErrUnderdispersed
	}
	p := mean / v
	r := mean * mean / (v - mean)
	d := stats.NegBinomialDist{R: r, P: p}
	return newDiscrete(NegativeBinomial, d, Param{"r", r}, Param{"p", p}), nil
}
