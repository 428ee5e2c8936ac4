// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fit fits non-negative combinations of simple basis
// functions (constant, linear, quadratic, log2 and N·log2 N) to
// metric-versus-width data.
package fit

import (
	"errors"
	"math"

	"github.com/aclements/go-moremath/vec"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrTooFewPoints = errors.New("fit: need at least two points")
	ErrNoTerms      = errors.New("fit: no basis terms selected")
	ErrMismatch     = errors.New("fit: x and y have different lengths")
)

// CurvePoints is the number of points in a Result's prediction curve.
const CurvePoints = 200

// A Result is a fitted curve.
type Result struct {
	// Terms are the basis terms that participated in the fit.
	Terms Terms

	// Coefs has one non-negative coefficient per term in Terms,
	// in fixed term order.
	Coefs []float64

	// Norm is the divisor applied to x before evaluating the
	// basis functions, or 0 if x is used as is.
	Norm float64

	// R2 is the coefficient of determination of the fit against
	// the input points.
	R2 float64

	// CurveX and CurveY sample the fitted curve from half the
	// smallest x to 1.1 times the largest x. CurveX is in the
	// caller's units, before normalization.
	CurveX, CurveY []float64
}

// Regress fits ys as a non-negative linear combination of terms
// evaluated at xs.
//
// If norm is positive, each x is divided by norm before the basis
// functions are applied. This is used for area, leakage and energy,
// whose widths are expressed relative to a 32-bit adder.
func Regress(xs, ys []float64, terms Terms, norm float64) (*Result, error) {
	if len(xs) != len(ys) {
		return nil, ErrMismatch
	}
	if len(xs) < 2 {
		return nil, ErrTooFewPoints
	}
	if terms == 0 {
		return nil, ErrNoTerms
	}

	res := &Result{Terms: terms, Norm: norm}
	ts := terms.Slice()

	a := mat.NewDense(len(xs), len(ts), nil)
	for i, x := range xs {
		x = res.scale(x)
		for j, t := range ts {
			a.Set(i, j, t.Eval(x))
		}
	}
	coefs, err := NNLS(a, ys)
	if err != nil {
		return nil, err
	}
	res.Coefs = coefs

	est := make([]float64, len(xs))
	for i, x := range xs {
		est[i] = res.Predict(x)
	}
	res.R2 = rSquared(est, ys)

	res.CurveX = vec.Linspace(floats.Min(xs)/2, floats.Max(xs)*1.1, CurvePoints)
	res.CurveY = make([]float64, len(res.CurveX))
	for i, x := range res.CurveX {
		res.CurveY[i] = res.Predict(x)
	}
	return res, nil
}

func (r *Result) scale(x float64) float64 {
	if r.Norm > 0 {
		return x / r.Norm
	}
	return x
}

// Predict evaluates the fitted curve at x, given in the same units
// as the xs passed to Regress.
func (r *Result) Predict(x float64) float64 {
	x = r.scale(x)
	y := 0.0
	for i, t := range r.Terms.Slice() {
		y += r.Coefs[i] * t.Eval(x)
	}
	return y
}

// Coef returns the coefficient of term t, or 0 if t was not part of
// the fit.
func (r *Result) Coef(t Term) float64 {
	for i, t2 := range r.Terms.Slice() {
		if t2 == t {
			return r.Coefs[i]
		}
	}
	return 0
}

// Full returns the coefficients spread over all NumTerms terms, with
// zero for terms that did not participate.
func (r *Result) Full() [NumTerms]float64 {
	var out [NumTerms]float64
	for i, t := range r.Terms.Slice() {
		out[t] = r.Coefs[i]
	}
	return out
}

// rSquared returns 1 - SSres/SStot. A constant ys gives 1 for an
// exact fit and 0 otherwise.
func rSquared(est, ys []float64) float64 {
	if floats.Max(ys) == floats.Min(ys) {
		for i := range ys {
			if math.Abs(est[i]-ys[i]) > 1e-12*math.Max(1, math.Abs(ys[i])) {
				return 0
			}
		}
		return 1
	}
	return stat.RSquaredFrom(est, ys, nil)
}
