// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ppa fits power, performance and area models of hardware
// building blocks across process technologies.
//
// For each module and metric, the points of every technology are
// optionally normalized to that technology's reference adder and fit
// against width, first per technology and then all together. Only
// technologies with a result at every configured width take part.
package ppa

import (
	"fmt"

	"github.com/hmc-dse/ppa/fit"
	"github.com/hmc-dse/ppa/synth"
)

// A Target selects which synthesis of each design point to model.
type Target int

const (
	// Hard uses the synthesis with the best achievable delay.
	Hard Target = iota
	// Easy uses the synthesis at the relaxed target frequency,
	// which gives the smallest design.
	Easy
)

func (t Target) String() string {
	if t == Easy {
		return "easy"
	}
	return "hard"
}

// An Analyzer fits models to a set of synthesis results.
type Analyzer struct {
	Config *synth.Config

	// All is every synthesis result.
	All []synth.Record

	// Best is the best achievable synthesis of each design point
	// in All.
	Best *synth.Best
}

// NewAnalyzer returns an Analyzer for recs under cfg.
func NewAnalyzer(cfg *synth.Config, recs []synth.Record) *Analyzer {
	return &Analyzer{Config: cfg, All: recs, Best: synth.SelectBest(recs, cfg)}
}

// Values returns the widths and values of metric m for a module in
// one technology, in configured width order. Widths without a result
// are skipped.
//
// For Hard, these come from the best synthesis at each configured
// width. For Easy, they come from the first run at each configured
// width with the configured easy frequency.
func (a *Analyzer) Values(tech, module string, m synth.Metric, target Target) (xs, ys []float64) {
	lookup := a.Best.Lookup
	if target == Easy {
		easy := make(map[int]synth.Record)
		for _, r := range a.All {
			if r.Freq != a.Config.EasyFreq || r.Tech != tech || r.Module != module {
				continue
			}
			if _, ok := easy[r.Width]; !ok {
				easy[r.Width] = r
			}
		}
		lookup = func(_, _ string, w int) (synth.Record, bool) {
			r, ok := easy[w]
			return r, ok
		}
	}
	for _, w := range a.Config.Widths {
		if r, ok := lookup(tech, module, w); ok {
			xs = append(xs, float64(w))
			ys = append(ys, m.Of(r))
		}
	}
	return xs, ys
}

// covers reports whether xs holds each of widths exactly once.
func covers(xs []float64, widths []int) bool {
	if len(xs) != len(widths) {
		return false
	}
	seen := make(map[float64]bool, len(xs))
	for _, x := range xs {
		if seen[x] {
			return false
		}
		seen[x] = true
	}
	for _, w := range widths {
		if !seen[float64(w)] {
			return false
		}
	}
	return true
}

// A TechSeries is one technology's points of a metric and their fit.
type TechSeries struct {
	Tech synth.TechSpec
	X, Y []float64
	Fit  *fit.Result
}

// A Series is one metric of one module across technologies.
type Series struct {
	Module     string
	Metric     synth.Metric
	Target     Target
	Normalized bool

	// Techs are the technologies with complete width coverage,
	// in configuration order.
	Techs []*TechSeries

	// Excluded names the technologies left out because they lack
	// results at some width.
	Excluded []string

	// Combined fits the points of all of Techs together. It is nil
	// if Techs is empty.
	Combined *fit.Result
}

// Variable returns the name of the independent variable in s's
// equations: "S" for widths relative to the reference adder and "N"
// for raw widths or input counts.
func (s *Series) Variable(cfg *synth.Config) string {
	if s.Metric.IsALE() && cfg.NormWidth > 1 {
		return "S"
	}
	return "N"
}

// Series fits metric m of module for target. If normalize is set,
// each technology's values are divided by its reference adder's.
func (a *Analyzer) Series(module string, m synth.Metric, target Target, normalize bool) (*Series, error) {
	terms := a.Config.Fit(module).For(m)
	var norm float64
	if m.IsALE() {
		norm = a.Config.NormWidth
	}

	s := &Series{Module: module, Metric: m, Target: target, Normalized: normalize}
	var allX, allY []float64
	for _, tech := range a.Config.Techs {
		xs, ys := a.Values(tech.Name, module, m, target)
		if !covers(xs, a.Config.Widths) {
			s.Excluded = append(s.Excluded, tech.Name)
			continue
		}
		if normalize {
			ref := m.OfTech(tech)
			for i := range ys {
				ys[i] /= ref
			}
		}
		r, err := fit.Regress(xs, ys, terms, norm)
		if err != nil {
			return nil, fmt.Errorf("%s %s %v in %s: %w", module, m, target, tech.Name, err)
		}
		s.Techs = append(s.Techs, &TechSeries{Tech: tech, X: xs, Y: ys, Fit: r})
		allX = append(allX, xs...)
		allY = append(allY, ys...)
	}
	if len(s.Techs) > 0 {
		r, err := fit.Regress(allX, allY, terms, norm)
		if err != nil {
			return nil, fmt.Errorf("%s %s %v combined: %w", module, m, target, err)
		}
		s.Combined = r
	}
	return s, nil
}
