// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hpmc extracts hardware performance counters from simulator
// transcripts and derives CPI, branch prediction and cache metrics
// from them.
package hpmc

import "fmt"

// Counter names, as printed by the testbench.
const (
	Cycles          = "Mcycle"
	InstRet         = "InstRet"
	BrCount         = "Br Count"
	BrDirWrong      = "Br Dir Wrong"
	BrTargetWrong   = "Br Target Wrong"
	JumpCount       = "Jump, JR, ret"
	RetCount        = "ret"
	RASWrong        = "RAS Wrong"
	InstrClassWrong = "Instr Class Wrong"
	ICacheAccess    = "I Cache Access"
	ICacheMiss      = "I Cache Miss"
	DCacheAccess    = "D Cache Access"
	DCacheMiss      = "D Cache Miss"
)

// A Record is the counter dump of one benchmark run.
type Record struct {
	// Benchmark is the test name, from the memfile's base name.
	Benchmark string

	// Config is the build configuration, from the memfile's
	// path.
	Config string

	// File is the transcript the record was read from.
	File string

	// Counters maps counter names to their final values.
	Counters map[string]int64

	// Metrics are filled in by Derive.
	Metrics Metrics

	// Err is the first error Derive hit, if any.
	Err error
}

// Name returns the benchmark and configuration joined by "_".
func (r *Record) Name() string {
	return r.Benchmark + "_" + r.Config
}

// Metrics are the quantities derived from a Record's counters.
// Miss rates are percentages. A metric whose counters are missing is
// NaN.
type Metrics struct {
	CPI                  float64
	BranchDirMissRate    float64
	BranchTargetMissRate float64
	RASMissRate          float64
	InstrClassMissRate   float64
	ICacheMissRate       float64
	DCacheMissRate       float64
}

// A Metric selects one field of Metrics.
type Metric int

const (
	CPI Metric = iota
	BDMR
	BTMR
	RASMPR
	ClassMPR
	ICacheMR
	DCacheMR
)

var metricNames = []string{
	CPI:      "CPI",
	BDMR:     "BDMR",
	BTMR:     "BTMR",
	RASMPR:   "RASMPR",
	ClassMPR: "ClassMPR",
	ICacheMR: "ICacheMR",
	DCacheMR: "DCacheMR",
}

var metricLabels = []string{
	CPI:      "CPI",
	BDMR:     "BR Dir Miss Rate (%)",
	BTMR:     "BR Target Miss Rate (%)",
	RASMPR:   "RAS Miss Rate (%)",
	ClassMPR: "Instr Class Miss Rate (%)",
	ICacheMR: "I Cache Miss Rate (%)",
	DCacheMR: "D Cache Miss Rate (%)",
}

// Label returns a chart axis label for m.
func (m Metric) Label() string {
	if m < 0 || int(m) >= len(metricLabels) {
		return m.String()
	}
	return metricLabels[m]
}

func (m Metric) String() string {
	if m < 0 || int(m) >= len(metricNames) {
		return fmt.Sprintf("Metric(%d)", int(m))
	}
	return metricNames[m]
}

// ParseMetric returns the Metric with the short name s, such as
// "BDMR".
func ParseMetric(s string) (Metric, error) {
	for i, n := range metricNames {
		if n == s {
			return Metric(i), nil
		}
	}
	return 0, fmt.Errorf("unknown metric %q", s)
}

// Get returns metric m of ms.
func (ms *Metrics) Get(m Metric) float64 {
	return *ms.field(m)
}

func (ms *Metrics) field(m Metric) *float64 {
	switch m {
	case CPI:
		return &ms.CPI
	case BDMR:
		return &ms.BranchDirMissRate
	case BTMR:
		return &ms.BranchTargetMissRate
	case RASMPR:
		return &ms.RASMissRate
	case ClassMPR:
		return &ms.InstrClassMissRate
	case ICacheMR:
		return &ms.ICacheMissRate
	case DCacheMR:
		return &ms.DCacheMissRate
	}
	panic(fmt.Sprintf("bad metric %d", int(m)))
}
