// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrNoConvergence is returned by NNLS if the active set iteration
// does not settle.
var ErrNoConvergence = errors.New("fit: non-negative least squares did not converge")

// NNLS solves argmin_x ||Ax - b||₂ subject to x ≥ 0 using the
// Lawson–Hanson active set method.
func NNLS(a mat.Matrix, b []float64) ([]float64, error) {
	m, n := a.Dims()
	if len(b) != m {
		panic("fit: dimension mismatch between A and b")
	}
	bv := mat.NewVecDense(m, append([]float64(nil), b...))

	// Gradient entries below tol are rounding noise in Aᵀ(b - Ax).
	eps := math.Nextafter(1, 2) - 1
	tol := 10 * eps * float64(max(m, n)) * mat.Norm(a, 2) * math.Max(mat.Norm(bv, 2), 1)

	x := make([]float64, n)
	passive := make([]bool, n)
	// rejected marks variables that would enter at a non-positive
	// value. They stay out until x changes.
	rejected := make([]bool, n)
	w := make([]float64, n)

	gradient := func() {
		var r, g mat.VecDense
		r.MulVec(a, mat.NewVecDense(n, x))
		r.SubVec(bv, &r)
		g.MulVec(a.T(), &r)
		for j := range w {
			w[j] = g.AtVec(j)
		}
	}

	maxIter := 3 * n * max(m, n)
	for iter := 0; ; iter++ {
		gradient()
		j, best := -1, tol
		for i := range w {
			if !passive[i] && !rejected[i] && w[i] > best {
				j, best = i, w[i]
			}
		}
		if j < 0 {
			break
		}
		if iter >= maxIter {
			return clampNonNeg(x), ErrNoConvergence
		}

		passive[j] = true
		s := lstsqPassive(a, bv, passive)
		if s[j] <= 0 {
			passive[j] = false
			rejected[j] = true
			continue
		}
		for {
			// Step from x toward s as far as feasibility allows
			// and drop the variable that blocks the step, along
			// with any others that reached zero.
			block, alpha := -1, 1.0
			for i := range s {
				if !passive[i] || s[i] > 0 {
					continue
				}
				if r := x[i] / (x[i] - s[i]); block < 0 || r < alpha {
					block, alpha = i, r
				}
			}
			if block < 0 {
				copy(x, s)
				break
			}
			for i := range x {
				x[i] += alpha * (s[i] - x[i])
				if passive[i] && (i == block || x[i] <= 0) {
					passive[i] = false
					x[i] = 0
				}
			}
			s = lstsqPassive(a, bv, passive)
		}
		for i := range rejected {
			rejected[i] = false
		}
	}
	return clampNonNeg(x), nil
}

func clampNonNeg(x []float64) []float64 {
	for i := range x {
		if x[i] < 0 {
			x[i] = 0
		}
	}
	return x
}

// lstsqPassive solves the unconstrained least squares problem over
// the passive columns of a and returns a full-length solution with
// zeros in the active positions. Rank-deficient systems get the
// minimum-norm solution.
func lstsqPassive(a mat.Matrix, b *mat.VecDense, passive []bool) []float64 {
	m, n := a.Dims()
	var cols []int
	for j, p := range passive {
		if p {
			cols = append(cols, j)
		}
	}
	out := make([]float64, n)
	if len(cols) == 0 {
		return out
	}

	sub := mat.NewDense(m, len(cols), nil)
	for k, j := range cols {
		for i := 0; i < m; i++ {
			sub.Set(i, k, a.At(i, j))
		}
	}

	var svd mat.SVD
	if !svd.Factorize(sub, mat.SVDThin) {
		return out
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	sv := svd.Values(nil)

	cutoff := 1e-12 * floats.Max(sv) * float64(max(m, len(cols)))
	coef := make([]float64, len(cols))
	for k, s := range sv {
		if s <= cutoff {
			continue
		}
		// (u_kᵀ b / s_k) v_k
		utb := mat.Dot(u.ColView(k), b) / s
		for i := range coef {
			coef[i] += utb * v.At(i, k)
		}
	}
	for k, j := range cols {
		out[j] = coef[k]
	}
	return out
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
