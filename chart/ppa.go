// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"fmt"

	"github.com/hmc-dse/ppa/fit"
	"github.com/hmc-dse/ppa/ppa"
	"github.com/hmc-dse/ppa/synth"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var dashed = []vg.Length{vg.Points(4), vg.Points(2)}

func xys(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i] = plotter.XY{X: xs[i], Y: ys[i]}
	}
	return pts
}

func r2Label(r2 float64) string {
	return fmt.Sprintf("R^2=%.4g", r2)
}

// addSeries draws the points and fits of s on p. Easy-target series
// are dashed. If legend is set, each fit's equation and R² are added
// to the legend.
func addSeries(p *plot.Plot, s *ppa.Series, v string, legend bool) error {
	var dash []vg.Length
	if s.Target == ppa.Easy {
		dash = dashed
	}
	addFit := func(tech synth.TechSpec, r *fit.Result) (*plotter.Line, error) {
		l, err := plotter.NewLine(xys(r.CurveX, r.CurveY))
		if err != nil {
			return nil, err
		}
		l.LineStyle.Color = namedColor(tech.Color)
		l.LineStyle.Dashes = dash
		p.Add(l)
		return l, nil
	}
	for _, ts := range s.Techs {
		sc, err := plotter.NewScatter(xys(ts.X, ts.Y))
		if err != nil {
			return err
		}
		sc.GlyphStyle.Color = namedColor(ts.Tech.Color)
		sc.GlyphStyle.Shape = glyph(ts.Tech.Shape)
		sc.GlyphStyle.Radius = vg.Points(3)
		p.Add(sc)
		l, err := addFit(ts.Tech, ts.Fit)
		if err != nil {
			return err
		}
		if legend {
			p.Legend.Add(ts.Fit.Equation(v), l)
			p.Legend.Add(r2Label(ts.Fit.R2), sc)
		}
	}
	if s.Combined == nil {
		return nil
	}
	l, err := addFit(synth.Combined, s.Combined)
	if err != nil {
		return err
	}
	if legend {
		p.Legend.Add(s.Combined.Equation(v), l)
	} else {
		p.Legend.Add(r2Label(s.Combined.R2), l)
	}
	return nil
}

func title(s *ppa.Series, cfg *synth.Config) string {
	if s.Target == ppa.Easy {
		return fmt.Sprintf("%s  (target  %dMHz)", s.Module, cfg.EasyFreq)
	}
	return s.Module + " (best achievable delay)"
}

// MetricPlot plots one or more series of the same module and metric,
// such as the hard and easy targets, against width. A single series
// gets a full legend of equations; several get one R² entry each.
func MetricPlot(cfg *synth.Config, series ...*ppa.Series) (*plot.Plot, error) {
	return metricPlot(cfg, len(series) == 1, series)
}

func metricPlot(cfg *synth.Config, equations bool, series []*ppa.Series) (*plot.Plot, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("no series to plot")
	}
	s0 := series[0]
	p := plot.New()
	p.Title.Text = title(s0, cfg)
	p.X.Label.Text = "Width (bits)"
	p.Y.Label.Text = s0.Metric.Label(s0.Normalized)
	p.X.Tick.Marker = ticks(intsToFloats(cfg.Widths))
	p.Legend.Top = true
	p.Legend.Left = s0.Metric.IsALE()
	p.Add(plotter.NewGrid())
	for _, s := range series {
		if err := addSeries(p, s, s.Variable(cfg), equations); err != nil {
			return nil, err
		}
	}
	if (s0.Module == "flop" || s0.Module == "csa") && s0.Metric == synth.Delay {
		p.Y.Min = 0
		p.Y.Max *= 1.1
	}
	return p, nil
}

func intsToFloats(xs []int) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = float64(x)
	}
	return out
}

// PPAGrid plots the delay, area, leakage and energy of module in a
// 2×2 grid. Each panel shows the best achievable synthesis and, if
// withEasy is set, the smallest one for area, leakage and energy.
func PPAGrid(a *ppa.Analyzer, module string, normalize, withEasy bool) (Grid, error) {
	layout := [2][2]synth.Metric{{synth.Delay, synth.Area}, {synth.LPower, synth.DEnergy}}
	g := make(Grid, 2)
	for i, row := range layout {
		for _, m := range row {
			targets := []ppa.Target{ppa.Hard}
			if withEasy && m != synth.Delay {
				targets = append(targets, ppa.Easy)
			}
			var series []*ppa.Series
			for _, target := range targets {
				s, err := a.Series(module, m, target, normalize)
				if err != nil {
					return nil, err
				}
				series = append(series, s)
			}
			p, err := metricPlot(a.Config, false, series)
			if err != nil {
				return nil, err
			}
			p.Title.Text = ""
			g[i] = append(g[i], p)
		}
	}
	g[0][0].Title.Text = module
	return g, nil
}

// MuxPlot plots multiplexer delay against input count, with the data
// path dashed and the control path solid.
func MuxPlot(cfg *synth.Config, series []*ppa.Series) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "mux timing"
	p.X.Label.Text = "Number of inputs"
	p.X.Tick.Marker = ticks(intsToFloats(cfg.MuxInputs))
	p.Add(plotter.NewGrid())
	for _, s := range series {
		p.Y.Label.Text = s.Metric.Label(s.Normalized)
		var dash []vg.Length
		if s.Module == ppa.MuxData {
			dash = dashed
		}
		for _, ts := range s.Techs {
			sc, err := plotter.NewScatter(xys(ts.X, ts.Y))
			if err != nil {
				return nil, err
			}
			sc.GlyphStyle.Color = namedColor(ts.Tech.Color)
			sc.GlyphStyle.Shape = glyph(ts.Tech.Shape)
			p.Add(sc)
			l, err := plotter.NewLine(xys(ts.Fit.CurveX, ts.Fit.CurveY))
			if err != nil {
				return nil, err
			}
			l.LineStyle.Color = namedColor(ts.Tech.Color)
			l.LineStyle.Dashes = dash
			p.Add(l)
		}
		if s.Combined == nil {
			continue
		}
		l, err := plotter.NewLine(xys(s.Combined.CurveX, s.Combined.CurveY))
		if err != nil {
			return nil, err
		}
		l.LineStyle.Color = namedColor(synth.Combined.Color)
		l.LineStyle.Dashes = dash
		p.Add(l)
		p.Legend.Add(s.Module, l)
	}
	return p, nil
}
