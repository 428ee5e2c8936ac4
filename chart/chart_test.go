// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"bytes"
	"context"
	"image/png"
	"math"
	"testing"

	"github.com/hmc-dse/ppa/artifact"
	"github.com/hmc-dse/ppa/hpmc"
	"github.com/hmc-dse/ppa/ppa"
	"github.com/hmc-dse/ppa/sweep"
	"github.com/hmc-dse/ppa/synth"
	"gonum.org/v1/plot/vg"
)

func testAnalyzer() *ppa.Analyzer {
	cfg := synth.DefaultConfig()
	cfg.Modules = []string{"add"}
	var recs []synth.Record
	for _, tech := range cfg.Techs {
		for _, w := range cfg.Widths {
			n := float64(w)
			d := tech.Delay * (2 + 0.5*math.Log2(n))
			recs = append(recs,
				synth.Record{Module: "add", Tech: tech.Name, Width: w, Freq: cfg.EasyFreq,
					Delay: 2 * d, Area: tech.Area * n / 32, LPower: tech.LPower * n / 32, DEnergy: tech.DEnergy * n / 32},
				synth.Record{Module: "add", Tech: tech.Name, Width: w, Freq: 1000,
					Delay: d, Area: tech.Area * n / 16, LPower: tech.LPower * n / 16, DEnergy: tech.DEnergy * n / 16},
			)
		}
		for i, n := range cfg.MuxInputs {
			recs = append(recs, synth.Record{Module: ppa.MuxModules(cfg.MuxInputs, ppa.MuxControl)[i], Tech: tech.Name, Width: 1, Freq: 100, Delay: tech.Delay * float64(n)})
		}
	}
	return ppa.NewAnalyzer(cfg, recs)
}

// checkPNG renders g and checks that it decodes to an image of the
// requested size.
func checkPNG(t *testing.T, g Grid) {
	t.Helper()
	var buf bytes.Buffer
	if err := g.WritePNG(&buf, 4*vg.Inch, 3*vg.Inch); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 4*DPI || b.Dy() != 3*DPI {
		t.Errorf("image is %dx%d, want %dx%d", b.Dx(), b.Dy(), 4*DPI, 3*DPI)
	}
}

func TestMetricPlot(t *testing.T) {
	a := testAnalyzer()
	s, err := a.Series("add", synth.Area, ppa.Hard, true)
	if err != nil {
		t.Fatal(err)
	}
	p, err := MetricPlot(a.Config, s)
	if err != nil {
		t.Fatal(err)
	}
	if p.Y.Label.Text != "Area (add32)" {
		t.Errorf("Y label = %q", p.Y.Label.Text)
	}
	checkPNG(t, Single(p))

	if _, err := MetricPlot(a.Config); err == nil {
		t.Error("MetricPlot with no series succeeded")
	}
}

func TestPPAGrid(t *testing.T) {
	a := testAnalyzer()
	g, err := PPAGrid(a, "add", true, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(g) != 2 || len(g[0]) != 2 || len(g[1]) != 2 {
		t.Fatalf("grid is not 2x2")
	}
	checkPNG(t, g)

	sink := artifact.NewMemSink()
	if err := Save(context.Background(), sink, "normalized/add.png", g); err != nil {
		t.Fatal(err)
	}
	b, ok := sink.File("normalized/add.png")
	if !ok || len(b) == 0 {
		t.Fatal("no image saved")
	}
	if _, err := png.Decode(bytes.NewReader(b)); err != nil {
		t.Error(err)
	}
}

func TestMuxPlot(t *testing.T) {
	a := testAnalyzer()
	series, err := a.MuxSeries(true)
	if err != nil {
		t.Fatal(err)
	}
	p, err := MuxPlot(a.Config, series)
	if err != nil {
		t.Fatal(err)
	}
	checkPNG(t, Single(p))
}

func TestFreqSweep(t *testing.T) {
	a := testAnalyzer()
	s := sweep.Split(a.All, "sky90", "add", 32)
	g, err := FreqSweep(s)
	if err != nil {
		t.Fatal(err)
	}
	checkPNG(t, g)

	// No runs at all still renders.
	g, err = FreqSweep(sweep.Split(a.All, "sky90", "csa", 32))
	if err != nil {
		t.Fatal(err)
	}
	checkPNG(t, g)
}

func TestSweepName(t *testing.T) {
	for _, test := range []struct {
		s    sweep.Sweep
		want string
	}{
		{sweep.Sweep{Tech: "sky90", Module: "add", Width: 32}, "freqBuckshot/sky90/add/32.png"},
		{sweep.Sweep{Tech: "tsmc28", Module: "mux4d", Width: 1}, "freqBuckshot/tsmc28/muxd/mux4d.png"},
		{sweep.Sweep{Tech: "tsmc28", Module: "mux4", Width: 8}, "freqBuckshot/tsmc28/mux4/8.png"},
	} {
		if got := SweepName(&test.s); got != test.want {
			t.Errorf("SweepName(%+v) = %q, want %q", test.s, got, test.want)
		}
	}
}

func TestBars(t *testing.T) {
	comps := make([]*hpmc.Comparison, 9)
	for i := range comps {
		comps[i] = &hpmc.Comparison{Name: "crc32_O2", Labels: []string{"gshare", "twobit"}, Values: []float64{5, math.NaN()}}
	}
	g, err := Bars(comps, "BR Dir Miss Rate (%)")
	if err != nil {
		t.Fatal(err)
	}
	if len(g) != 2 || len(g[0]) != BarCols || len(g[1]) != 2 {
		t.Fatalf("got %d rows", len(g))
	}
	checkPNG(t, g)
}
