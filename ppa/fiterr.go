// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ppa

import (
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/hmc-dse/ppa/synth"
)

// FitError summarizes how well the combined fits of one metric
// describe the best syntheses of every module.
type FitError struct {
	Metric synth.Metric
	N      int     // points compared
	Zero   int     // points left out because the fit predicts zero
	Mean   float64 // mean relative error
	StdDev float64 // population standard deviation of the relative error
}

// skipFitError reports whether a module's fit of m is known to be
// poor and left out of error summaries.
func skipFitError(module string, m synth.Metric) bool {
	return (m == synth.Delay && module == "flop") || (m.IsALE() && module == "mult")
}

// FitError computes the relative error |y/ŷ - 1| of every normalized
// best-synthesis point against its module's combined fit. Points
// where ŷ is zero have no relative error and are only counted.
func (a *Analyzer) FitError(m synth.Metric) (*FitError, error) {
	var errs []float64
	zero := 0
	for _, mod := range a.Config.Modules {
		if skipFitError(mod, m) {
			continue
		}
		s, err := a.Series(mod, m, Hard, true)
		if err != nil {
			return nil, err
		}
		if s.Combined == nil {
			continue
		}
		for _, ts := range s.Techs {
			for i, x := range ts.X {
				p := s.Combined.Predict(x)
				if p == 0 {
					zero++
					continue
				}
				errs = append(errs, math.Abs(ts.Y[i]/p-1))
			}
		}
	}
	fe := &FitError{Metric: m, N: len(errs), Zero: zero, Mean: math.NaN(), StdDev: math.NaN()}
	if len(errs) == 0 {
		return fe, nil
	}
	fe.Mean = stats.Mean(errs)
	dev := make([]float64, len(errs))
	for i, e := range errs {
		dev[i] = (e - fe.Mean) * (e - fe.Mean)
	}
	fe.StdDev = math.Sqrt(stats.Mean(dev))
	return fe, nil
}
