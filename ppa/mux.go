// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ppa

import (
	"fmt"
	"strconv"

	"github.com/hmc-dse/ppa/fit"
	"github.com/hmc-dse/ppa/synth"
)

// Multiplexer select paths.
const (
	MuxControl = "control"
	MuxData    = "data"
)

// MuxModules returns the module names of the multiplexers with the
// given input counts. Data-path variants carry a "d" suffix.
func MuxModules(inputs []int, path string) []string {
	mods := make([]string, len(inputs))
	for i, n := range inputs {
		mods[i] = "mux" + strconv.Itoa(n)
		if path == MuxData {
			mods[i] += "d"
		}
	}
	return mods
}

// MuxSeries fits the delay of single-bit multiplexers against their
// input count, once for the control path and once for the data path.
// The Module of each returned Series is the path name and its X
// values are input counts.
func (a *Analyzer) MuxSeries(normalize bool) ([]*Series, error) {
	cfg := a.Config
	mcfg := *cfg
	mcfg.Widths = []int{1}
	mcfg.Modules = append(MuxModules(cfg.MuxInputs, MuxControl), MuxModules(cfg.MuxInputs, MuxData)...)
	best := synth.SelectBest(a.All, &mcfg)

	xs := make([]float64, len(cfg.MuxInputs))
	for i, n := range cfg.MuxInputs {
		xs[i] = float64(n)
	}
	terms := cfg.DefaultFit.Timing

	var out []*Series
	for _, path := range []string{MuxData, MuxControl} {
		s := &Series{Module: path, Metric: synth.Delay, Target: Hard, Normalized: normalize}
		var allX, allY []float64
		for _, tech := range cfg.Techs {
			var ys []float64
			for _, mod := range MuxModules(cfg.MuxInputs, path) {
				if r, ok := best.Lookup(tech.Name, mod, 1); ok {
					ys = append(ys, r.Delay)
				}
			}
			if len(ys) != len(xs) {
				s.Excluded = append(s.Excluded, tech.Name)
				continue
			}
			if normalize {
				for i := range ys {
					ys[i] /= tech.Delay
				}
			}
			r, err := fit.Regress(xs, ys, terms, 0)
			if err != nil {
				return nil, fmt.Errorf("%s mux in %s: %w", path, tech.Name, err)
			}
			s.Techs = append(s.Techs, &TechSeries{Tech: tech, X: xs, Y: ys, Fit: r})
			allX = append(allX, xs...)
			allY = append(allY, ys...)
		}
		if len(s.Techs) > 0 {
			r, err := fit.Regress(allX, allY, terms, 0)
			if err != nil {
				return nil, fmt.Errorf("%s mux combined: %w", path, err)
			}
			s.Combined = r
		}
		out = append(out, s)
	}
	return out, nil
}
