// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package synth holds synthesis results for the PPA exploration and
// selects the best achievable synthesis of each design point.
package synth

import "fmt"

// A Record is the outcome of one synthesis run.
type Record struct {
	Module string
	Tech   string
	Width  int
	Freq   int // target frequency, MHz

	Delay   float64 // achieved critical path delay, ns
	Area    float64 // µm²
	LPower  float64 // leakage power, nW
	DEnergy float64 // dynamic energy per operation, nJ
}

// A Key identifies a design point: one module at one width in one
// technology.
type Key struct {
	Module string
	Tech   string
	Width  int
}

// Key returns r's design point.
func (r Record) Key() Key {
	return Key{r.Module, r.Tech, r.Width}
}

// MeetsTiming reports whether r's achieved delay satisfies its own
// target frequency.
func (r Record) MeetsTiming() bool {
	return 1000/r.Delay > float64(r.Freq)
}

func (r Record) String() string {
	return fmt.Sprintf("%s_%d/%s@%dMHz", r.Module, r.Width, r.Tech, r.Freq)
}

// A Metric is one of the PPA quantities of a Record.
type Metric int

const (
	Delay Metric = iota
	Area
	LPower
	DEnergy
)

// Metrics lists every Metric in report order.
var Metrics = []Metric{Delay, Area, LPower, DEnergy}

var metricInfo = []struct {
	name   string
	of     func(Record) float64
	ofTech func(TechSpec) float64
	label  string // unnormalized axis label
	nlabel string // normalized axis label
}{
	Delay:   {"delay", func(r Record) float64 { return r.Delay }, func(t TechSpec) float64 { return t.Delay }, "Delay (ns)", "Delay (FO4)"},
	Area:    {"area", func(r Record) float64 { return r.Area }, func(t TechSpec) float64 { return t.Area }, "Area (sq microns)", "Area (add32)"},
	LPower:  {"lpower", func(r Record) float64 { return r.LPower }, func(t TechSpec) float64 { return t.LPower }, "Leakage Power (nW)", "Leakage Power (add32)"},
	DEnergy: {"denergy", func(r Record) float64 { return r.DEnergy }, func(t TechSpec) float64 { return t.DEnergy }, "Dynamic Energy (nJ)", "Energy/Op (add32)"},
}

func (m Metric) String() string {
	if m < 0 || int(m) >= len(metricInfo) {
		return fmt.Sprintf("Metric(%d)", int(m))
	}
	return metricInfo[m].name
}

// ParseMetric returns the Metric named s, as printed by String.
func ParseMetric(s string) (Metric, error) {
	for i, mi := range metricInfo {
		if mi.name == s {
			return Metric(i), nil
		}
	}
	return 0, fmt.Errorf("unknown metric %q", s)
}

// Of returns metric m of r.
func (m Metric) Of(r Record) float64 {
	return metricInfo[m].of(r)
}

// OfTech returns the reference value of metric m in technology t.
func (m Metric) OfTech(t TechSpec) float64 {
	return metricInfo[m].ofTech(t)
}

// IsALE reports whether m is an area, leakage or energy metric.
// These are fit against width relative to the reference adder.
func (m Metric) IsALE() bool {
	return m != Delay
}

// Label returns an axis label for m.
func (m Metric) Label(normalized bool) string {
	if normalized {
		return metricInfo[m].nlabel
	}
	return metricInfo[m].label
}
