// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Hpmcstat summarizes the hardware performance counters in simulation
// transcripts.
//
// Usage:
//
//	hpmcstat transcript...
//	hpmcstat -b [-metric name] [-o chart.png] transcript...
//
// Each transcript is the log of a simulation run that reports, for
// every benchmark, the memory image it loaded and the counter values
// it finished with. By default hpmcstat prints the CPI, branch
// prediction, and cache statistics of each benchmark.
//
// With -b, each transcript is taken to come from a different
// hardware configuration, named by the transcript's file name up to
// its first dot, and hpmcstat compares one metric across those
// configurations for every benchmark. The -o flag also draws the
// comparison as a grid of bar charts.
//
// Counters missing from a transcript, or zero where they divide,
// leave the affected metric blank and are reported after the
// benchmark's statistics.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hmc-dse/ppa/artifact"
	"github.com/hmc-dse/ppa/chart"
	"github.com/hmc-dse/ppa/hpmc"
)

var exit = os.Exit // replaced during testing

func usage() {
	fmt.Fprintf(os.Stderr, "usage: hpmcstat [options] transcript...\n")
	fmt.Fprintf(os.Stderr, "options:\n")
	flag.PrintDefaults()
	exit(2)
}

var (
	flagCompare = flag.Bool("b", false, "compare one metric across transcripts of different configurations")
	flagMetric  = flag.String("metric", "BDMR", "compare `metric`: CPI, BDMR, BTMR, RASMPR, ClassMPR, ICacheMR, DCacheMR")
	flagOut     = flag.String("o", "", "with -b, also draw the comparison to PNG `file`")
)

func main() {
	log.SetPrefix("hpmcstat: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
	}
	if err := hpmcstat(os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func hpmcstat(w io.Writer) error {
	if !*flagCompare {
		for _, file := range flag.Args() {
			recs, err := hpmc.ReadFile(file)
			if err != nil {
				return err
			}
			hpmc.DeriveAll(recs)
			if err := hpmc.WriteText(w, recs); err != nil {
				return err
			}
		}
		return nil
	}

	m, err := hpmc.ParseMetric(*flagMetric)
	if err != nil {
		return err
	}
	var sets []hpmc.Set
	for _, file := range flag.Args() {
		recs, err := hpmc.ReadFile(file)
		if err != nil {
			return err
		}
		for _, err := range hpmc.DeriveAll(recs) {
			log.Print(err)
		}
		sets = append(sets, hpmc.Set{Label: configName(file), Records: recs})
	}
	comps := hpmc.Compare(sets, m)
	if err := hpmc.WriteComparisons(w, comps, m); err != nil {
		return err
	}
	if *flagOut == "" || len(comps) == 0 {
		return nil
	}
	g, err := chart.Bars(comps, m.Label())
	if err != nil {
		return err
	}
	sink := artifact.DirSink{Dir: filepath.Dir(*flagOut)}
	return chart.Save(context.Background(), sink, filepath.Base(*flagOut), g)
}

// configName returns the configuration named by a transcript file:
// its base name up to the first dot.
func configName(file string) string {
	name := filepath.Base(file)
	if i := strings.Index(name, "."); i > 0 {
		name = name[:i]
	}
	return name
}
