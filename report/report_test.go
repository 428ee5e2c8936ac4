// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"errors"
	"math"
	"testing"
	"testing/fstest"

	"github.com/hmc-dse/ppa/synth"
)

func TestParseRunName(t *testing.T) {
	for _, test := range []struct {
		name string
		want Run
	}{
		{"ppa_add_32_rv32e_sky90nm_1000_MHz_2022-05-01-12-00", Run{"add", 32, "sky90", 1000}},
		{"ppa_mux4d_1_rv32e_tsmc28nm_5000_MHz_x", Run{"mux4d", 1, "tsmc28", 5000}},
		{"ppa_priorityencoder_128_rv32e_sky90nm_10_MHz", Run{"priorityencoder", 128, "sky90", 10}},
	} {
		got, err := ParseRunName(test.name)
		if err != nil {
			t.Errorf("%s: %v", test.name, err)
			continue
		}
		if got != test.want {
			t.Errorf("%s: got %+v, want %+v", test.name, got, test.want)
		}
	}

	for _, name := range []string{
		"ppa_add_32",
		"ppa_add_x_rv32e_sky90nm_1000_MHz",
		"ppa_add_32_rv32e_sky90nm_fast_MHz",
		"ppa_add_32_rv32e_sky90nm_0_MHz",
		"ppa_add_32_rv32e_xy_1000_MHz",
	} {
		if _, err := ParseRunName(name); err == nil {
			t.Errorf("%s: want error", name)
		}
	}
}

func TestParseRunNameTech(t *testing.T) {
	cfg := synth.DefaultConfig()
	for _, tech := range cfg.Techs {
		name := "ppa_add_32_rv32e_" + tech.Name + "nm_1000_MHz_a"
		r, err := ParseRunName(name)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if _, ok := cfg.Tech(r.Tech); !ok {
			t.Errorf("%s: technology %q not configured", name, r.Tech)
		}
		rec := synth.Record{Module: r.Module, Tech: r.Tech, Width: r.Width, Freq: r.Freq}
		if err := cfg.Validate(rec); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

const qor = `
  Timing Path Group 'clk'
  -----------------------------------
  Levels of Logic:              12.00
  Critical Path Length:          0.93
  Critical Path Slack:           0.05
  -----------------------------------
  Cell Count
  Design Area:                 1234.5
`

const power = `
                               Switch   Int      Leak      Total
Hierarchy                      Power    Power    Power     Power    %
--------------------------------------------------------------------
ppa_add_32                     2.0e-02  3.0e-02  7.140e+02 5.1e-02  100.0
`

func file(s string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(s)}
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"synthDC/runs/ppa_add_32_rv32e_sky90nm_1000_MHz_a/reports/add_qor.rep":      file(qor),
		"synthDC/runs/ppa_add_32_rv32e_sky90nm_1000_MHz_a/reports/add_power.rep":    file(power),
		"synthDC/runs/ppa_flop_8_rv32e_tsmc28nm_500_MHz_b/reports/flop_qor.rep":     file(qor),
		"synthDC/runs/ppa_flop_8_rv32e_tsmc28nm_500_MHz_b/reports/flop_power.rep":   file(power),
		"synthDC/runs/ppa_csa_16_rv32e_sky90nm_100_MHz_c/reports/csa_qor.rep":       file(qor),
		"synthDC/runs/ppa_csa_16_rv32e_sky90nm_100_MHz_c/hdl/csa.sv":                file("module csa;"),
		"synthDC/runs/wally_add_32_rv64gc_sky90nm_1000_MHz_d/reports/add_qor.rep":   file(qor),
		"synthDC/runs/ppa_add_32_rv32e_sky90nm_1000_MHz_a/reports/nested/x_qor.rep": file(""),
		"synthDC/scripts/ppa_add_32_rv32e_sky90nm_1000_MHz/README":                  file(""),
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Abs(b))
}

func checkRecord(t *testing.T, got, want synth.Record) {
	t.Helper()
	if got.Module != want.Module || got.Tech != want.Tech || got.Width != want.Width || got.Freq != want.Freq ||
		!near(got.Delay, want.Delay) || !near(got.Area, want.Area) || !near(got.LPower, want.LPower) || !near(got.DEnergy, want.DEnergy) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestReadRun(t *testing.T) {
	fsys := testFS()
	r, err := ReadRun(fsys, "synthDC/runs/ppa_add_32_rv32e_sky90nm_1000_MHz_a")
	if err != nil {
		t.Fatal(err)
	}
	checkRecord(t, r, synth.Record{Module: "add", Tech: "sky90", Width: 32, Freq: 1000, Delay: 0.95, Area: 1234.5, LPower: 714, DEnergy: 0.05})

	// Flop modules are halved; delay is not.
	r, err = ReadRun(fsys, "synthDC/runs/ppa_flop_8_rv32e_tsmc28nm_500_MHz_b")
	if err != nil {
		t.Fatal(err)
	}
	checkRecord(t, r, synth.Record{Module: "flop", Tech: "tsmc28", Width: 8, Freq: 500, Delay: 1.95, Area: 617.25, LPower: 357, DEnergy: 0.05})

	_, err = ReadRun(fsys, "synthDC/runs/ppa_csa_16_rv32e_sky90nm_100_MHz_c")
	var mre *MissingReportError
	if !errors.As(err, &mre) {
		t.Fatalf("got %v, want MissingReportError", err)
	}
	if mre.What != "100" || mre.Run.Module != "csa" {
		t.Errorf("got %+v", mre)
	}
}

func TestScan(t *testing.T) {
	recs, errs, err := Scan(testFS(), ".")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2: %+v", len(recs), recs)
	}
	if recs[0].Module != "add" || recs[1].Module != "flop" {
		t.Errorf("got modules %s, %s", recs[0].Module, recs[1].Module)
	}
	if len(errs) != 1 {
		t.Fatalf("got errors %v, want 1", errs)
	}
	var mre *MissingReportError
	if !errors.As(errs[0], &mre) || mre.Run.Module != "csa" {
		t.Errorf("got error %v", errs[0])
	}
}

func TestIsRunDir(t *testing.T) {
	for p, want := range map[string]bool{
		"runs/ppa_add_32_rv32e_sky90nm_1000_MHz":     true,
		"a/b/runs/ppa_x_rv32e":                       true,
		"oldruns/ppa_add_32_rv32e_sky90nm_1000_MHz":  true,
		"runs/wally_add_32_rv32e_sky90nm_1000_MHz":   false,
		"runs/ppa_add_32_rv64gc_sky90nm_1000_MHz":    false,
		"scripts/ppa_add_32_rv32e_sky90nm_1000_MHz":  false,
		"runs/ppa_add_32_rv32e_sky90nm_1000_MHz/hdl": false,
		"ppa_add_32_rv32e_sky90nm_1000_MHz":          false,
	} {
		if got := IsRunDir(p); got != want {
			t.Errorf("IsRunDir(%q) = %v, want %v", p, got, want)
		}
	}
}
