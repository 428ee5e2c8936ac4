// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpmc

import (
	"fmt"
	"io"
	"math"

	"github.com/hmc-dse/ppa/internal/texttab"
)

var reportRows = []struct {
	label  string
	metric Metric
	format string
}{
	{"CPI", CPI, "%1.2f"},
	{"Branch Dir Pred Miss Rate", BDMR, "%2.2f"},
	{"Branch Target Pred Miss Rate", BTMR, "%2.2f"},
	{"RAS Miss Rate", RASMPR, "%1.2f"},
	{"Instr Class Miss Rate", ClassMPR, "%1.2f"},
	{"I Cache Miss Rate", ICacheMR, "%1.4f"},
	{"D Cache Miss Rate", DCacheMR, "%1.4f"},
}

// WriteText writes a block of derived metrics for each record.
// Metrics that could not be derived print as "-", followed by the
// record's error.
func WriteText(w io.Writer, recs []*Record) error {
	for _, r := range recs {
		var tab texttab.Table
		tab.Row().Cell("Test").Cell(r.Benchmark)
		tab.Row().Cell("Compile configuration").Cell(r.Config)
		for _, row := range reportRows {
			v := r.Metrics.Get(row.metric)
			s := "-"
			if !math.IsNaN(v) {
				s = fmt.Sprintf(row.format, v)
			}
			tab.Row().Cell(row.label).Cell(s, texttab.Right)
		}
		if err := tab.Format(w); err != nil {
			return err
		}
		if r.Err != nil {
			if _, err := fmt.Fprintf(w, "error: %v\n", r.Err); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// A Set is the records of one transcript, under a label naming the
// hardware configuration that produced it.
type Set struct {
	Label   string
	Records []*Record
}

// A Comparison is one metric of one benchmark across several sets.
type Comparison struct {
	Name   string // benchmark_config
	Labels []string
	Values []float64
}

// Compare groups the records of sets by benchmark and build
// configuration and collects metric m of each, in order of first
// appearance.
func Compare(sets []Set, m Metric) []*Comparison {
	var out []*Comparison
	index := make(map[string]*Comparison)
	for _, s := range sets {
		for _, r := range s.Records {
			c := index[r.Name()]
			if c == nil {
				c = &Comparison{Name: r.Name()}
				index[c.Name] = c
				out = append(out, c)
			}
			c.Labels = append(c.Labels, s.Label)
			c.Values = append(c.Values, r.Metrics.Get(m))
		}
	}
	return out
}

// WriteComparisons writes comps as a table with one row per benchmark
// and one column per set label, in order of first appearance.
// Missing or underived values print as "-".
func WriteComparisons(w io.Writer, comps []*Comparison, m Metric) error {
	var labels []string
	col := make(map[string]int)
	for _, c := range comps {
		for _, l := range c.Labels {
			if _, ok := col[l]; !ok {
				col[l] = len(labels)
				labels = append(labels, l)
			}
		}
	}

	var tab texttab.Table
	tab.Row().Cell(m.String())
	for _, l := range labels {
		tab.Cell(l, texttab.Right, texttab.LeftMargin("  "))
	}
	for _, c := range comps {
		vals := make([]string, len(labels))
		for i := range vals {
			vals[i] = "-"
		}
		for i, l := range c.Labels {
			if v := c.Values[i]; !math.IsNaN(v) {
				vals[col[l]] = fmt.Sprintf("%.2f", v)
			}
		}
		tab.Row().Cell(c.Name)
		for _, v := range vals {
			tab.Cell(v, texttab.Right, texttab.LeftMargin("  "))
		}
	}
	return tab.Format(w)
}
