// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"fmt"

	"github.com/hmc-dse/ppa/sweep"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// FreqSweep plots delay and area against target frequency for every
// run in s, stacked, with runs that met timing in green and runs that
// violated it in blue.
func FreqSweep(s *sweep.Sweep) (Grid, error) {
	delay, area := plot.New(), plot.New()
	delay.Title.Text = fmt.Sprintf("%s_%d", s.Module, s.Width)
	delay.Y.Label.Text = "Delay (ns)"
	area.X.Label.Text = "Target Freq (MHz)"
	area.Y.Label.Text = "Area (sq microns)"
	delay.Legend.Top = true

	for _, set := range []struct {
		pts   []sweep.Point
		color string
		label string
	}{
		{s.Achieved, "green", "timing achieved"},
		{s.Violated, "blue", "slack violated"},
	} {
		if len(set.pts) == 0 {
			continue
		}
		d := make(plotter.XYs, len(set.pts))
		a := make(plotter.XYs, len(set.pts))
		for i, pt := range set.pts {
			d[i] = plotter.XY{X: float64(pt.Freq), Y: pt.Delay}
			a[i] = plotter.XY{X: float64(pt.Freq), Y: pt.Area}
		}
		for _, pl := range []struct {
			p   *plot.Plot
			xys plotter.XYs
		}{{delay, d}, {area, a}} {
			sc, err := plotter.NewScatter(pl.xys)
			if err != nil {
				return nil, err
			}
			sc.GlyphStyle.Color = namedColor(set.color)
			sc.GlyphStyle.Shape = glyph("circle")
			sc.GlyphStyle.Radius = vg.Points(2.5)
			pl.p.Add(sc)
			if pl.p == delay {
				delay.Legend.Add(set.label, sc)
			}
		}
	}
	// Share the frequency axis.
	for _, p := range []*plot.Plot{delay, area} {
		p.X.Min = min(delay.X.Min, area.X.Min)
		p.X.Max = max(delay.X.Max, area.X.Max)
	}
	return Grid{{delay}, {area}}, nil
}

// SweepName returns the image name of s: its technology and module
// directories, then the width. Data-path multiplexers are grouped
// under "muxd" and named by module instead.
func SweepName(s *sweep.Sweep) string {
	mod, leaf := s.Module, fmt.Sprint(s.Width)
	if isDataMux(mod) {
		mod, leaf = "muxd", s.Module
	}
	return fmt.Sprintf("freqBuckshot/%s/%s/%s.png", s.Tech, mod, leaf)
}

func isDataMux(mod string) bool {
	return len(mod) > 3 && mod[:3] == "mux" && mod[len(mod)-1] == 'd'
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
