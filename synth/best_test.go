// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synth

import (
	"reflect"
	"testing"
)

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.Modules = []string{"add", "csa"}
	cfg.Widths = []int{8, 16}
	return cfg
}

func TestMeetsTiming(t *testing.T) {
	tests := []struct {
		delay float64
		freq  int
		want  bool
	}{
		{1, 999, true},
		{1, 1000, false}, // strictly faster than the target
		{2.5, 400, false},
		{2.4, 400, true},
	}
	for _, tt := range tests {
		r := Record{Delay: tt.delay, Freq: tt.freq}
		if got := r.MeetsTiming(); got != tt.want {
			t.Errorf("delay %v @ %d MHz: got %v, want %v", tt.delay, tt.freq, got, tt.want)
		}
	}
}

func TestSelectBest(t *testing.T) {
	recs := []Record{
		{Module: "add", Tech: "sky90", Width: 8, Freq: 1000, Delay: 1.2},   // misses timing
		{Module: "add", Tech: "sky90", Width: 8, Freq: 500, Delay: 1.5},    // meets
		{Module: "add", Tech: "sky90", Width: 8, Freq: 600, Delay: 1.4},    // meets, faster
		{Module: "add", Tech: "sky90", Width: 8, Freq: 700, Delay: 1.4},    // tie, later
		{Module: "add", Tech: "sky90", Width: 16, Freq: 1000, Delay: 1.0},  // misses
		{Module: "add", Tech: "tsmc28", Width: 8, Freq: 2000, Delay: 0.45}, // meets
		{Module: "csa", Tech: "sky90", Width: 16, Freq: 100, Delay: 0.5},
		{Module: "mult", Tech: "sky90", Width: 8, Freq: 100, Delay: 0.5}, // not configured
	}
	b := SelectBest(recs, testConfig())

	want := []Record{recs[2], recs[6], recs[5]}
	if got := b.Records(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v\nwant %v", got, want)
	}

	if r, ok := b.Lookup("sky90", "add", 8); !ok || r.Freq != 600 {
		t.Errorf("Lookup(sky90, add, 8) = %v, %v; want the 600 MHz run", r, ok)
	}
	if r, ok := b.Lookup("sky90", "add", 16); ok {
		t.Errorf("Lookup(sky90, add, 16) = %v; want no record", r)
	}
	if _, ok := b.Lookup("sky90", "mult", 8); ok {
		t.Errorf("unconfigured module was selected")
	}
}

func TestSelectBestNone(t *testing.T) {
	recs := []Record{
		{Module: "add", Tech: "sky90", Width: 8, Freq: 2000, Delay: 1},
		{Module: "add", Tech: "sky90", Width: 8, Freq: 1000, Delay: 1},
	}
	if b := SelectBest(recs, testConfig()); b.Len() != 0 {
		t.Errorf("got %v, want nothing", b.Records())
	}
	if b := SelectBest(nil, testConfig()); b.Len() != 0 {
		t.Errorf("empty input: got %v", b.Records())
	}
}

func TestMetric(t *testing.T) {
	r := Record{Delay: 1, Area: 2, LPower: 3, DEnergy: 4}
	ts := TechSpec{Delay: 5, Area: 6, LPower: 7, DEnergy: 8}
	for i, m := range Metrics {
		if got := m.Of(r); got != float64(i+1) {
			t.Errorf("%v.Of = %v, want %v", m, got, i+1)
		}
		if got := m.OfTech(ts); got != float64(i+5) {
			t.Errorf("%v.OfTech = %v, want %v", m, got, i+5)
		}
		m2, err := ParseMetric(m.String())
		if err != nil || m2 != m {
			t.Errorf("ParseMetric(%q) = %v, %v", m, m2, err)
		}
		if m.IsALE() != (m != Delay) {
			t.Errorf("%v.IsALE() = %v", m, m.IsALE())
		}
	}
	if _, err := ParseMetric("speed"); err == nil {
		t.Errorf("ParseMetric(speed) succeeded")
	}
}

func TestConfig(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.Fit("shiftleft"); got.Timing.String() != "cg" || got.ALE.String() != "l" {
		t.Errorf("shiftleft fit = %v/%v, want cg/l", got.Timing, got.ALE)
	}
	if got := cfg.Fit("mult").For(Area).String(); got != "s" {
		t.Errorf("mult area terms = %q, want s", got)
	}
	if got := cfg.Fit("mux4d").For(Delay).String(); got != "clsgn" {
		t.Errorf("mux4d falls back to %q, want clsgn", got)
	}
	if err := cfg.Validate(Record{Module: "add", Tech: "sky90", Width: 32}); err != nil {
		t.Error(err)
	}
	if err := cfg.Validate(Record{Module: "add", Tech: "gf12", Width: 32}); err == nil {
		t.Error("unknown technology accepted")
	}
	if err := cfg.Validate(Record{Module: "add", Tech: "sky90", Width: 24}); err == nil {
		t.Error("width 24 accepted")
	}
	// DefaultConfig returns independent copies.
	cfg.Widths[0] = 4
	if DefaultConfig().Widths[0] != 8 {
		t.Error("DefaultConfig shares state")
	}
}
