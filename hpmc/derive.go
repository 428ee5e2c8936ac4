// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpmc

import (
	"fmt"
	"math"
	"strings"
)

// A MissingCounterError reports a counter that a metric needs but
// that is absent from a record, or zero where it is a divisor.
type MissingCounterError struct {
	Benchmark string
	Config    string
	Metric    Metric
	Counter   string
	Zero      bool
}

func (e *MissingCounterError) Error() string {
	what := "missing"
	if e.Zero {
		what = "zero"
	}
	return fmt.Sprintf("%s (%s): %s: counter %q is %s", e.Benchmark, e.Config, e.Metric, e.Counter, what)
}

// A formula is ratio scale·Σnum/Σden of counter sums.
type formula struct {
	metric Metric
	scale  float64
	num    []string
	den    []string
}

var formulas = []formula{
	{CPI, 1, []string{Cycles}, []string{InstRet}},
	{BDMR, 100, []string{BrDirWrong}, []string{BrCount}},
	// Not the hardware counters' definition of a target miss
	// rate. Kept as is.
	{BTMR, 100, []string{BrTargetWrong}, []string{BrCount, JumpCount, RetCount}},
	{RASMPR, 100, []string{RASWrong}, []string{RetCount}},
	{ClassMPR, 100, []string{InstrClassWrong}, []string{InstRet}},
	{ICacheMR, 100, []string{ICacheMiss}, []string{ICacheAccess}},
	{DCacheMR, 100, []string{DCacheMiss}, []string{DCacheAccess}},
}

// Derive computes r.Metrics from r.Counters. Each metric is computed
// independently; one whose counters are missing, or whose divisor is
// zero, is set to NaN. Derive records the first such problem in
// r.Err and returns it.
func Derive(r *Record) error {
	r.Err = nil
	for _, f := range formulas {
		v, err := f.eval(r)
		if err != nil && r.Err == nil {
			r.Err = err
		}
		*r.Metrics.field(f.metric) = v
	}
	return r.Err
}

// DeriveAll derives metrics for every record, continuing past
// records with missing counters. It returns the errors of the
// records that failed.
func DeriveAll(recs []*Record) []error {
	var errs []error
	for _, r := range recs {
		if err := Derive(r); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func (f formula) eval(r *Record) (float64, error) {
	sum := func(names []string) (int64, error) {
		var s int64
		for _, n := range names {
			v, ok := r.Counters[n]
			if !ok {
				return 0, &MissingCounterError{r.Benchmark, r.Config, f.metric, n, false}
			}
			s += v
		}
		return s, nil
	}
	num, err := sum(f.num)
	if err != nil {
		return math.NaN(), err
	}
	den, err := sum(f.den)
	if err != nil {
		return math.NaN(), err
	}
	if den == 0 {
		return math.NaN(), &MissingCounterError{r.Benchmark, r.Config, f.metric, strings.Join(f.den, " + "), true}
	}
	return f.scale * float64(num) / float64(den), nil
}
