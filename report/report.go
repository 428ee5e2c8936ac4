// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report extracts synthesis results from the report
// directories left behind by synthesis runs.
//
// Each run lives in a directory named like
//
//	ppa_add_32_rv32e_sky90nm_1000_MHz_<date>
//
// under a "runs" directory, with a timing ("qor") report and a power
// report in its reports subdirectory.
package report

import (
	"bufio"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/hmc-dse/ppa/synth"
)

// A Run identifies one synthesis run by its directory name.
type Run struct {
	Module string
	Width  int
	Tech   string
	Freq   int // target frequency, MHz
}

func (r Run) String() string {
	return fmt.Sprintf("%s_%d %s %d MHz", r.Module, r.Width, r.Tech, r.Freq)
}

var fieldRE = regexp.MustCompile(`[a-zA-Z0-9]+`)

// ParseRunName parses the base name of a run directory. The technology
// field carries a two-character suffix, as in sky90nm, which is dropped.
func ParseRunName(name string) (Run, error) {
	f := fieldRE.FindAllString(name, -1)
	if len(f) < 6 {
		return Run{}, fmt.Errorf("run %q: too few fields", name)
	}
	module, width, tech, freq := f[1], f[2], f[4], f[5]
	if len(tech) <= 2 {
		return Run{}, fmt.Errorf("run %q: bad technology %q", name, tech)
	}
	r := Run{Module: module, Tech: tech[:len(tech)-2]}
	var err error
	if r.Width, err = strconv.Atoi(width); err != nil {
		return Run{}, fmt.Errorf("run %q: bad width: %w", name, err)
	}
	if r.Freq, err = strconv.Atoi(freq); err != nil {
		return Run{}, fmt.Errorf("run %q: bad frequency: %w", name, err)
	}
	if r.Freq <= 0 {
		return Run{}, fmt.Errorf("run %q: bad frequency %d", name, r.Freq)
	}
	return r, nil
}

// MissingReportError records that a run lacks a report or an expected
// line in it.
type MissingReportError struct {
	Run  Run
	Dir  string
	What string // the phrase searched for
}

func (e *MissingReportError) Error() string {
	return fmt.Sprintf("%s: %v: no %q in reports", e.Dir, e.Run, e.What)
}

var numRE = regexp.MustCompile(`-?\d+\.\d+[e]?[-+]?\d*`)

// A query finds the numbers on the lines containing phrase in the
// reports whose names contain kind.
type query struct {
	phrase, kind string
}

var (
	slackQuery = query{"Path Slack", "qor"}
	areaQuery  = query{"Design Area", "qor"}
	powerQuery = query{"100", "power"}
)

func (p query) numbers(fsys fs.FS, dir string) ([]float64, error) {
	files, err := fs.Glob(fsys, path.Join(dir, "reports", "*"+p.kind+"*"))
	if err != nil {
		return nil, err
	}
	var nums []float64
	for _, name := range files {
		f, err := fsys.Open(name)
		if err != nil {
			return nil, err
		}
		s := bufio.NewScanner(f)
		for s.Scan() {
			line := s.Text()
			if !strings.Contains(line, p.phrase) {
				continue
			}
			for _, m := range numRE.FindAllString(line, -1) {
				x, err := strconv.ParseFloat(m, 64)
				if err != nil {
					continue
				}
				nums = append(nums, x)
			}
		}
		err = s.Err()
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return nums, nil
}

// ReadRun reads the results of the run in directory dir of fsys.
//
// The delay is the clock period less the worst slack. Dynamic energy
// is switching plus internal power over the target frequency. Flop
// modules hold two flops, so their area, leakage and energy are
// halved.
func ReadRun(fsys fs.FS, dir string) (synth.Record, error) {
	run, err := ParseRunName(path.Base(dir))
	if err != nil {
		return synth.Record{}, err
	}
	get := func(p query, n int) ([]float64, error) {
		nums, err := p.numbers(fsys, dir)
		if err != nil {
			return nil, err
		}
		if len(nums) < n {
			return nil, &MissingReportError{Run: run, Dir: dir, What: p.phrase}
		}
		return nums, nil
	}
	slack, err := get(slackQuery, 1)
	if err != nil {
		return synth.Record{}, err
	}
	area, err := get(areaQuery, 1)
	if err != nil {
		return synth.Record{}, err
	}
	power, err := get(powerQuery, 3)
	if err != nil {
		return synth.Record{}, err
	}

	freq := float64(run.Freq)
	r := synth.Record{
		Module:  run.Module,
		Tech:    run.Tech,
		Width:   run.Width,
		Freq:    run.Freq,
		Delay:   1000/freq - slack[0],
		Area:    area[0],
		LPower:  power[2],
		DEnergy: (power[0] + power[1]) / freq * 1000,
	}
	if strings.Contains(r.Module, "flop") {
		r.Area /= 2
		r.LPower /= 2
		r.DEnergy /= 2
	}
	return r, nil
}

// IsRunDir reports whether p names a run directory: a directory
// under "runs" whose name starts with "ppa" and mentions rv32e.
func IsRunDir(p string) bool {
	parent := path.Base(path.Dir(p))
	if !strings.HasSuffix(parent, "runs") {
		return false
	}
	ok, _ := path.Match("ppa*rv32e*", path.Base(p))
	return ok
}

// Scan finds every run directory below root and reads it. Runs that
// cannot be read are reported in errs and left out of recs.
func Scan(fsys fs.FS, root string) (recs []synth.Record, errs []error, err error) {
	err = fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || !IsRunDir(p) {
			return nil
		}
		r, err := ReadRun(fsys, p)
		if err != nil {
			errs = append(errs, err)
		} else {
			recs = append(recs, r)
		}
		return fs.SkipDir
	})
	return recs, errs, err
}
