// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synth

import (
	"fmt"

	"github.com/hmc-dse/ppa/fit"
)

// A TechSpec describes a process technology and its reference
// design, a 32-bit adder, whose metrics normalize that technology's
// results.
type TechSpec struct {
	Name  string
	Color string // plot color name
	Shape string // plot marker shape: "circle", "triangle", ...

	Delay, Area, LPower, DEnergy float64
}

// Combined is the pseudo-technology used to label fits over every
// technology at once.
var Combined = TechSpec{Name: "combined fit", Color: "red", Shape: "bar"}

// A FitSpec selects the basis terms used for one module's
// regressions.
type FitSpec struct {
	Timing fit.Terms // delay
	ALE    fit.Terms // area, leakage and energy
}

// For returns the terms to use for metric m.
func (f FitSpec) For(m Metric) fit.Terms {
	if m.IsALE() {
		return f.ALE
	}
	return f.Timing
}

// Config is the fixed description of a design space exploration.
type Config struct {
	// Widths are the bit widths synthesized for each module, in
	// ascending order.
	Widths []int

	// MuxInputs are the input counts of the multiplexer variants.
	MuxInputs []int

	// Modules are the module names, in report order.
	Modules []string

	// Techs are the technologies, in report order.
	Techs []TechSpec

	// Fits gives the basis terms for each module. Modules without
	// an entry use DefaultFit.
	Fits map[string]FitSpec

	// DefaultFit is used for modules missing from Fits.
	DefaultFit FitSpec

	// NormWidth divides widths before fitting area, leakage and
	// energy, expressing them relative to the reference adder.
	NormWidth float64

	// EasyFreq is the relaxed target frequency, in MHz, used for
	// the "smallest" design of each point.
	EasyFreq int
}

// DefaultConfig returns the configuration of the RISC-V building
// block study: ten modules synthesized in sky90 and tsmc28.
func DefaultConfig() *Config {
	cg, c, l, s := fit.MustParseTerms("cg"), fit.MustParseTerms("c"), fit.MustParseTerms("l"), fit.MustParseTerms("s")
	return &Config{
		Widths:    []int{8, 16, 32, 64, 128},
		MuxInputs: []int{2, 4, 8},
		Modules:   []string{"priorityencoder", "add", "csa", "shiftleft", "comparator", "flop", "mux2", "mux4", "mux8", "mult"},
		Techs: []TechSpec{
			{Name: "sky90", Color: "green", Shape: "circle", Delay: 43.2e-3, Area: 1440.600027, LPower: 714.057, DEnergy: 0.658022690438},
			{Name: "tsmc28", Color: "blue", Shape: "triangle", Delay: 12.2e-3, Area: 209.286002, LPower: 1060.0, DEnergy: .08153281695882594},
		},
		Fits: map[string]FitSpec{
			"add":             {cg, l},
			"mult":            {cg, s},
			"comparator":      {cg, l},
			"csa":             {c, l},
			"shiftleft":       {cg, l},
			"flop":            {c, l},
			"priorityencoder": {cg, l},
			"mux2":            {cg, l},
			"mux4":            {cg, l},
			"mux8":            {cg, l},
		},
		DefaultFit: FitSpec{fit.AllTerms, fit.AllTerms},
		NormWidth:  32,
		EasyFreq:   10,
	}
}

// Fit returns the FitSpec for module.
func (c *Config) Fit(module string) FitSpec {
	if f, ok := c.Fits[module]; ok {
		return f
	}
	return c.DefaultFit
}

// Tech returns the TechSpec named name.
func (c *Config) Tech(name string) (TechSpec, bool) {
	for _, t := range c.Techs {
		if t.Name == name {
			return t, true
		}
	}
	return TechSpec{}, false
}

// Validate checks that r lies inside the configured design space.
func (c *Config) Validate(r Record) error {
	if _, ok := c.Tech(r.Tech); !ok {
		return fmt.Errorf("%v: unknown technology %q", r, r.Tech)
	}
	for _, w := range c.Widths {
		if r.Width == w {
			return nil
		}
	}
	// Multiplexers are synthesized at width 1 and vary in input
	// count instead.
	if r.Width == 1 {
		return nil
	}
	return fmt.Errorf("%v: width %d not in %v", r, r.Width, c.Widths)
}
