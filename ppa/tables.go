// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ppa

import (
	"encoding/csv"
	"io"
	"log"
	"strconv"

	"github.com/aclements/go-gg/table"
	"github.com/hmc-dse/ppa/fit"
	"github.com/hmc-dse/ppa/synth"
)

// A CoefRow is the combined fit of one metric of one module.
type CoefRow struct {
	Module string
	Metric synth.Metric
	Target Target
	Terms  fit.Terms
	Coefs  [fit.NumTerms]float64
	R2     float64
}

// CoefRows fits every metric of every module, normalized, for the
// easy target and then the hard target. Metrics with no complete
// series have no row.
func (a *Analyzer) CoefRows() ([]CoefRow, error) {
	var rows []CoefRow
	for _, mod := range a.Config.Modules {
		for _, target := range []Target{Easy, Hard} {
			for _, m := range synth.Metrics {
				s, err := a.Series(mod, m, target, true)
				if err != nil {
					return nil, err
				}
				if s.Combined == nil {
					continue
				}
				rows = append(rows, CoefRow{
					Module: mod,
					Metric: m,
					Target: target,
					Terms:  s.Combined.Terms,
					Coefs:  s.Combined.Full(),
					R2:     s.Combined.R2,
				})
			}
		}
	}
	return rows, nil
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// CoefHeader is the header row of the coefficient table.
var CoefHeader = []string{"Module", "Metric", "Target", "1", "N", "N^2", "log2(N)", "Nlog2(N)", "R^2"}

// WriteCoefCSV writes rows as CSV. Coefficients of terms that were
// not part of a fit are left blank.
func WriteCoefCSV(w io.Writer, rows []CoefRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CoefHeader); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{r.Module, r.Metric.String(), r.Target.String()}
		for t := fit.Term(0); t < fit.NumTerms; t++ {
			if r.Terms.Has(t) {
				rec = append(rec, formatFloat(r.Coefs[t]))
			} else {
				rec = append(rec, "")
			}
		}
		rec = append(rec, formatFloat(r.R2))
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// An EquationRow holds the combined-fit equations of one module.
// Equations is in EquationHeader order, after the element name.
// Metrics with no complete series have an empty equation.
type EquationRow struct {
	Module    string
	Equations []string
}

// EquationHeader is the header row of the equation table.
var EquationHeader = []string{"Element", "Best delay", "Fast area", "Fast leakage", "Fast energy", "Small area", "Small leakage", "Small energy"}

// EquationRows returns the equations of each module's best delay,
// of the area, leakage and energy of its fastest design, and of those
// of its smallest design.
func (a *Analyzer) EquationRows() ([]EquationRow, error) {
	var rows []EquationRow
	for _, mod := range a.Config.Modules {
		row := EquationRow{Module: mod}
		for _, target := range []Target{Hard, Easy} {
			for _, m := range synth.Metrics {
				if target == Easy && m == synth.Delay {
					continue
				}
				s, err := a.Series(mod, m, target, true)
				if err != nil {
					return nil, err
				}
				eq := ""
				if s.Combined != nil {
					eq = s.Combined.Equation(s.Variable(a.Config))
				}
				row.Equations = append(row.Equations, eq)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteEquationCSV writes rows as CSV.
func WriteEquationCSV(w io.Writer, rows []EquationRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(EquationHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(append([]string{r.Module}, r.Equations...)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// bestRow is the printed form of a synthesis record.
type bestRow struct {
	Tech    string
	Module  string
	Width   int
	Freq    int
	Delay   float64
	Area    float64
	LPower  float64
	DEnergy float64
}

// PrintRecords writes recs to w as an aligned text table.
func PrintRecords(w io.Writer, recs []synth.Record) error {
	rows := make([]bestRow, len(recs))
	for i, r := range recs {
		rows[i] = bestRow{r.Tech, r.Module, r.Width, r.Freq, r.Delay, r.Area, r.LPower, r.DEnergy}
	}
	return table.Fprint(w, table.TableFromStructs(rows), "%s", "%s", "%d", "%d", "%.4f", "%.2f", "%.2f", "%.4g")
}

// LogExcluded logs the technologies each series left out of its fits.
func LogExcluded(series ...*Series) {
	for _, s := range series {
		for _, tech := range s.Excluded {
			log.Printf("%s %s (%v): %s lacks results at some widths; not fit", s.Module, s.Metric, s.Target, tech)
		}
	}
}
