// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

var widths = []float64{8, 16, 32, 64, 128}

func gen(f func(x float64) float64) []float64 {
	ys := make([]float64, len(widths))
	for i, x := range widths {
		ys[i] = f(x)
	}
	return ys
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-7*math.Max(1, math.Abs(b))
}

func checkCoefs(t *testing.T, r *Result, want ...float64) {
	t.Helper()
	if len(r.Coefs) != len(want) {
		t.Fatalf("got %d coefficients %v, want %v", len(r.Coefs), r.Coefs, want)
	}
	for i := range want {
		if !near(r.Coefs[i], want[i]) {
			t.Errorf("coefficient %d (%s): got %v, want %v", i, r.Terms.Slice()[i], r.Coefs[i], want[i])
		}
	}
}

func TestParseTerms(t *testing.T) {
	for _, s := range []string{"c", "cg", "cl", "clsgn", "ln"} {
		ts, err := ParseTerms(s)
		if err != nil {
			t.Errorf("ParseTerms(%q): %v", s, err)
			continue
		}
		if got := ts.String(); got != s {
			t.Errorf("ParseTerms(%q).String() = %q", s, got)
		}
	}
	// Order in the input does not matter.
	if ts := MustParseTerms("gc"); ts.String() != "cg" || ts.Len() != 2 {
		t.Errorf("ParseTerms(\"gc\") = %q", ts)
	}
	if _, err := ParseTerms("cx"); err == nil {
		t.Errorf("ParseTerms(\"cx\") succeeded, want error")
	}
	if AllTerms.String() != "clsgn" {
		t.Errorf("AllTerms = %q", AllTerms)
	}
}

func TestRegressExact(t *testing.T) {
	ys := gen(func(x float64) float64 { return 2 + 3*x })
	r, err := Regress(widths, ys, MustParseTerms("cl"), 0)
	if err != nil {
		t.Fatal(err)
	}
	checkCoefs(t, r, 2, 3)
	if !near(r.R2, 1) {
		t.Errorf("R2 = %v, want 1", r.R2)
	}
	full := r.Full()
	if full[Const] != r.Coefs[0] || full[Linear] != r.Coefs[1] || full[Square] != 0 || full[Log2] != 0 || full[NLog2] != 0 {
		t.Errorf("Full() = %v", full)
	}
	if got := r.Predict(10); !near(got, 32) {
		t.Errorf("Predict(10) = %v, want 32", got)
	}
}

func TestRegressCurve(t *testing.T) {
	ys := gen(func(x float64) float64 { return 1 + math.Log2(x) })
	r, err := Regress(widths, ys, MustParseTerms("cg"), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.CurveX) != CurvePoints || len(r.CurveY) != CurvePoints {
		t.Fatalf("curve has %d/%d points, want %d", len(r.CurveX), len(r.CurveY), CurvePoints)
	}
	if !near(r.CurveX[0], 4) || !near(r.CurveX[CurvePoints-1], 140.8) {
		t.Errorf("curve spans [%v, %v], want [4, 140.8]", r.CurveX[0], r.CurveX[CurvePoints-1])
	}
	for i, x := range r.CurveX {
		if !near(r.CurveY[i], 1+math.Log2(x)) {
			t.Errorf("curve at %v = %v, want %v", x, r.CurveY[i], 1+math.Log2(x))
			break
		}
	}
}

func TestRegressNonNegative(t *testing.T) {
	tests := []struct {
		name  string
		ys    []float64
		terms string
	}{
		{"decreasing", gen(func(x float64) float64 { return 10 - 0.05*x }), "cl"},
		{"negative", gen(func(x float64) float64 { return -1 - x }), "clsgn"},
		{"wiggle", []float64{3, 1, 4, 1, 5}, "clsgn"},
		{"log", []float64{5, 4, 3.5, 3, 2.9}, "cg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, norm := range []float64{0, 32} {
				r, err := Regress(widths, tt.ys, MustParseTerms(tt.terms), norm)
				if err != nil {
					t.Fatal(err)
				}
				for i, c := range r.Coefs {
					if c < 0 {
						t.Errorf("norm %v: coefficient %d = %v < 0", norm, i, c)
					}
				}
			}
		})
	}

	// A decreasing line can't use the linear term, so the best
	// fit is the mean.
	ys := gen(func(x float64) float64 { return 10 - 0.05*x })
	r, _ := Regress(widths, ys, MustParseTerms("cl"), 0)
	mean := 0.0
	for _, y := range ys {
		mean += y / float64(len(ys))
	}
	checkCoefs(t, r, mean, 0)
}

func TestRegressNormalization(t *testing.T) {
	const s = 32.0
	tests := []struct {
		name      string
		f         func(x float64) float64
		terms     string
		raw, norm []float64
	}{
		{"poly", func(x float64) float64 { return 1 + 2*x + 0.01*x*x }, "cls",
			[]float64{1, 2, 0.01}, []float64{1, 2 * s, 0.01 * s * s}},
		{"log2", func(x float64) float64 { return 1 + 2*math.Log2(x) }, "cg",
			[]float64{1, 2}, []float64{1 + 2*math.Log2(s), 2}},
		{"nlog2", func(x float64) float64 { return 0.5 * x * math.Log2(x) }, "cln",
			[]float64{0, 0, 0.5}, []float64{0, 0.5 * s * math.Log2(s), 0.5 * s}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ys := gen(tt.f)
			r, err := Regress(widths, ys, MustParseTerms(tt.terms), 0)
			if err != nil {
				t.Fatal(err)
			}
			checkCoefs(t, r, tt.raw...)
			rn, err := Regress(widths, ys, MustParseTerms(tt.terms), s)
			if err != nil {
				t.Fatal(err)
			}
			checkCoefs(t, rn, tt.norm...)
			if !near(rn.R2, 1) {
				t.Errorf("normalized R2 = %v, want 1", rn.R2)
			}
			// The curve is in raw units either way.
			for i := range r.CurveX {
				if r.CurveX[i] != rn.CurveX[i] || !near(rn.CurveY[i], r.CurveY[i]) {
					t.Errorf("curves differ at %d: (%v, %v) vs (%v, %v)", i, r.CurveX[i], r.CurveY[i], rn.CurveX[i], rn.CurveY[i])
					break
				}
			}
		})
	}
}

func TestRegressZeroBound(t *testing.T) {
	// Exact data whose normalized fit leaves some terms at zero:
	// 0.5·x·log2(x) = 80·(x/32) + 16·(x/32)·log2(x/32).
	ys := gen(func(x float64) float64 { return 0.5 * x * math.Log2(x) })
	for _, test := range []struct {
		terms string
		want  []float64
	}{
		{"ln", []float64{80, 16}},
		{"cln", []float64{0, 80, 16}},
		{"clsgn", []float64{0, 80, 0, 0, 16}},
	} {
		r, err := Regress(widths, ys, MustParseTerms(test.terms), 32)
		if err != nil {
			t.Errorf("%s: %v", test.terms, err)
			continue
		}
		checkCoefs(t, r, test.want...)
		if !near(r.R2, 1) {
			t.Errorf("%s: R2 = %v, want 1", test.terms, r.R2)
		}
	}
}

func TestRegressErrors(t *testing.T) {
	if _, err := Regress([]float64{8}, []float64{1}, AllTerms, 0); err != ErrTooFewPoints {
		t.Errorf("one point: got %v, want %v", err, ErrTooFewPoints)
	}
	if _, err := Regress(widths, widths, 0, 0); err != ErrNoTerms {
		t.Errorf("no terms: got %v, want %v", err, ErrNoTerms)
	}
	if _, err := Regress(widths, widths[:2], AllTerms, 0); err != ErrMismatch {
		t.Errorf("mismatch: got %v, want %v", err, ErrMismatch)
	}
}

func TestRegressUnderdetermined(t *testing.T) {
	// Three mux sizes fit with all five terms.
	xs := []float64{2, 4, 8}
	ys := []float64{1, 1.6, 2.2}
	r, err := Regress(xs, ys, AllTerms, 0)
	if err != nil {
		t.Fatal(err)
	}
	for i, c := range r.Coefs {
		if c < 0 {
			t.Errorf("coefficient %d = %v < 0", i, c)
		}
	}
	if r.R2 < 0.999 {
		t.Errorf("R2 = %v, want ~1", r.R2)
	}
}

func TestRSquaredConstant(t *testing.T) {
	ys := []float64{2, 2, 2}
	if got := rSquared([]float64{2, 2, 2}, ys); got != 1 {
		t.Errorf("exact constant: got %v, want 1", got)
	}
	if got := rSquared([]float64{2, 2, 3}, ys); got != 0 {
		t.Errorf("inexact constant: got %v, want 0", got)
	}
}

func TestNNLS(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	x, err := NNLS(a, []float64{-1, 2})
	if err != nil {
		t.Fatal(err)
	}
	if x[0] != 0 || !near(x[1], 2) {
		t.Errorf("got %v, want [0 2]", x)
	}

	// Coupled columns where the unconstrained solution has a
	// negative component.
	a = mat.NewDense(3, 2, []float64{1, 1, 1, 2, 1, 3})
	x, err = NNLS(a, []float64{3, 2, 1})
	if err != nil {
		t.Fatal(err)
	}
	if !near(x[0], 2) || x[1] != 0 {
		t.Errorf("got %v, want [2 0]", x)
	}
}

func TestSigFig(t *testing.T) {
	tests := []struct {
		x    float64
		want string
	}{
		{2, "2"},
		{0.000123456, "0.00012"},
		{1234567, "1.2e+06"},
		{0.00001, "1e-05"},
		{3.14159, "3.1"},
		{96.4, "96"},
		{0, "0"},
		{1e-20, "1e-20"},
	}
	for _, tt := range tests {
		if got := SigFig(tt.x, 2); got != tt.want {
			t.Errorf("SigFig(%v, 2) = %q, want %q", tt.x, got, tt.want)
		}
	}
}

func TestEquation(t *testing.T) {
	r := &Result{Terms: MustParseTerms("cl"), Coefs: []float64{2, 3}}
	if got, want := r.Equation("N"), "2 + 3N"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	r = &Result{Terms: AllTerms, Coefs: []float64{0.001, 0, 1.34e-3, 4.56, 0.3}}
	if got, want := r.Equation("S"), "0.001 + 0.0013S^2 + 4.6log2(S) + 0.3Slog2(S)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	// A fit whose coefficients all round to zero has no terms.
	r = &Result{Terms: MustParseTerms("cg"), Coefs: []float64{0, 0}}
	if got := r.Equation("N"); got != "" {
		t.Errorf("all-zero fit: got %q, want empty", got)
	}
}
