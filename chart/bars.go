// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"math"

	"github.com/hmc-dse/ppa/hpmc"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// BarCols is the number of columns in a grid of comparison charts.
const BarCols = 7

// Bars draws one bar chart per comparison, each with one bar per
// configuration, laid out BarCols to a row.
func Bars(comps []*hpmc.Comparison, ylabel string) (Grid, error) {
	var g Grid
	for i, c := range comps {
		p := plot.New()
		p.Title.Text = c.Name
		p.Y.Label.Text = ylabel
		vals := make(plotter.Values, len(c.Values))
		for j, v := range c.Values {
			// Metrics that could not be derived draw as empty bars.
			if !math.IsNaN(v) {
				vals[j] = v
			}
		}
		bars, err := plotter.NewBarChart(vals, vg.Points(12))
		if err != nil {
			return nil, err
		}
		bars.Color = namedColor("blue")
		bars.LineStyle.Width = 0
		p.Add(bars)
		p.NominalX(c.Labels...)
		if i%BarCols == 0 {
			g = append(g, nil)
		}
		g[len(g)-1] = append(g[len(g)-1], p)
	}
	return g, nil
}
