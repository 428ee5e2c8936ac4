// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sweep examines how one design point responds to its target
// frequency across every synthesis run.
package sweep

import (
	"math"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
	"github.com/hmc-dse/ppa/synth"
)

// A Point is one synthesis run of a sweep.
type Point struct {
	Freq  int     // target frequency, MHz
	Delay float64 // achieved critical path, ns
	Area  float64
}

// A Sweep is every run of one technology, module and width,
// partitioned by whether the run met its target frequency.
type Sweep struct {
	Tech   string
	Module string
	Width  int

	Achieved []Point
	Violated []Point

	// Median is the median target frequency of all runs.
	Median float64
}

// Split collects the runs in recs of module at width in tech.
func Split(recs []synth.Record, tech, module string, width int) *Sweep {
	s := &Sweep{Tech: tech, Module: module, Width: width, Median: math.NaN()}
	if len(recs) == 0 {
		return s
	}

	var g table.Grouping = table.TableFromStructs(recs)
	g = table.FilterEq(g, "Tech", tech)
	g = table.FilterEq(g, "Module", module)
	g = table.FilterEq(g, "Width", width)
	g = table.MapTables(g, func(_ table.GroupID, t *table.Table) *table.Table {
		freqs := t.MustColumn("Freq").([]int)
		delays := t.MustColumn("Delay").([]float64)
		violated := make([]bool, len(freqs))
		for i := range freqs {
			violated[i] = 1000/delays[i] < float64(freqs[i])
		}
		return table.NewBuilder(t).Add("Violated", violated).Done()
	})

	var all []float64
	g = table.GroupBy(g, "Violated")
	for _, gid := range g.Tables() {
		t := g.Table(gid)
		freqs := t.MustColumn("Freq").([]int)
		delays := t.MustColumn("Delay").([]float64)
		areas := t.MustColumn("Area").([]float64)
		pts := make([]Point, len(freqs))
		for i := range freqs {
			pts[i] = Point{freqs[i], delays[i], areas[i]}
			all = append(all, float64(freqs[i]))
		}
		if gid.Label().(bool) {
			s.Violated = pts
		} else {
			s.Achieved = pts
		}
	}
	if len(all) > 0 {
		s.Median = stats.Sample{Xs: all}.Quantile(0.5)
	}
	return s
}

// Outlier bounds on a run's target frequency relative to the median.
const (
	lowFreq  = 0.4
	highFreq = 1.4
)

// DropOutliers returns a copy of s keeping only runs whose target
// frequency is strictly between 0.4 and 1.4 times the median, which
// focuses on the frequencies near the design's limit.
func (s *Sweep) DropOutliers() *Sweep {
	keep := func(pts []Point) []Point {
		var out []Point
		for _, p := range pts {
			if r := float64(p.Freq) / s.Median; r > lowFreq && r < highFreq {
				out = append(out, p)
			}
		}
		return out
	}
	ns := *s
	ns.Achieved = keep(s.Achieved)
	ns.Violated = keep(s.Violated)
	return &ns
}

// Len returns the number of runs in s.
func (s *Sweep) Len() int {
	return len(s.Achieved) + len(s.Violated)
}
