// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Ppastat fits power, performance and area models to the results of
// a synthesis sweep.
//
// Usage:
//
//	ppastat [options]
//
// Ppastat reads synthesis results from the CSV file named by -csv,
// selects the best synthesis of every technology, module and width,
// and fits each module's delay, area, leakage power and dynamic
// energy against its width. By default it prints the fitted
// equations as CSV on standard output.
//
// The -scan flag first collects the results from a tree of synthesis
// run directories and writes them to the -csv file. Runs with
// missing or malformed reports are logged and skipped.
//
// The -best, -coefs, -eqs and -html flags write the best syntheses,
// the fit coefficients, the equations and an HTML summary of both.
// The -plots flag draws every module's fits, the target frequency
// sweeps and the multiplexer study into a directory. Output files are
// written relative to the current directory, or into the Cloud
// Storage bucket named by -gcs.
//
// The -db flag also stores all and best syntheses in a database,
// as one upload.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path"

	_ "github.com/GoogleCloudPlatform/cloudsql-proxy/proxy/dialers/mysql"
	"github.com/aclements/go-gg/table"
	_ "github.com/go-sql-driver/mysql"
	"github.com/hmc-dse/ppa/artifact"
	"github.com/hmc-dse/ppa/chart"
	"github.com/hmc-dse/ppa/ppa"
	"github.com/hmc-dse/ppa/report"
	"github.com/hmc-dse/ppa/storage/db"
	_ "github.com/hmc-dse/ppa/storage/db/sqlite3"
	"github.com/hmc-dse/ppa/sweep"
	"github.com/hmc-dse/ppa/synth"
)

var exit = os.Exit // replaced during testing

func usage() {
	fmt.Fprintf(os.Stderr, "usage: ppastat [options]\n")
	fmt.Fprintf(os.Stderr, "options:\n")
	flag.PrintDefaults()
	exit(2)
}

var (
	flagCSV  = flag.String("csv", "ppaData.csv", "read synthesis results from CSV `file`")
	flagScan = flag.String("scan", "", "collect results from the run directories under `dir` into the -csv file")

	flagBest  = flag.String("best", "", "write the best syntheses as CSV to `file`")
	flagCoefs = flag.String("coefs", "", "write the fit coefficients as CSV to `file`")
	flagEqs   = flag.String("eqs", "", "write the fitted equations as CSV to `file` instead of standard output")
	flagHTML  = flag.String("html", "", "write an HTML summary of the fits to `file`")
	flagPlots = flag.String("plots", "", "draw fits, frequency sweeps and multiplexer timing into `dir`")

	flagMux    = flag.Bool("mux", false, "print the multiplexer delay fits")
	flagFitErr = flag.Bool("fiterr", false, "print the error of the combined fits")
	flagV      = flag.Bool("v", false, "print the best syntheses and the technologies left out of fits")

	flagGCS      = flag.String("gcs", "", "write output files to Cloud Storage `bucket` instead of the current directory")
	flagGCSPath  = flag.String("gcs-prefix", "", "prefix output object names with `path`")
	flagGCSCreds = flag.String("gcs-creds", "", "authenticate to Cloud Storage with service account `file`")

	flagDBDriver = flag.String("db-driver", "sqlite3", "database `driver` for -db: sqlite3 or mysql")
	flagDB       = flag.String("db", "", "store the syntheses in the database named by `dsn`")
)

func main() {
	log.SetPrefix("ppastat: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 0 {
		flag.Usage()
	}

	ctx := context.Background()
	var sink artifact.Sink = artifact.DirSink{Dir: "."}
	if *flagGCS != "" {
		s, err := artifact.NewGCSSink(ctx, *flagGCS, *flagGCSPath, *flagGCSCreds)
		if err != nil {
			log.Fatal(err)
		}
		sink = s
	}
	if err := ppastat(ctx, os.Stdout, sink); err != nil {
		log.Fatal(err)
	}
}

func ppastat(ctx context.Context, w io.Writer, sink artifact.Sink) error {
	if *flagScan != "" {
		if err := scan(*flagScan, *flagCSV); err != nil {
			return err
		}
	}
	f, err := os.Open(*flagCSV)
	if err != nil {
		return err
	}
	recs, err := synth.ReadCSV(f)
	f.Close()
	if err != nil {
		return err
	}

	cfg := synth.DefaultConfig()
	for _, r := range recs {
		if err := cfg.Validate(r); err != nil {
			log.Print(err)
		}
	}
	a := ppa.NewAnalyzer(cfg, recs)

	if *flagV {
		if err := ppa.PrintRecords(w, a.Best.Records()); err != nil {
			return err
		}
		for _, mod := range cfg.Modules {
			for _, m := range synth.Metrics {
				s, err := a.Series(mod, m, ppa.Hard, true)
				if err != nil {
					return err
				}
				ppa.LogExcluded(s)
			}
		}
	}

	if *flagDB != "" {
		if err := store(ctx, a); err != nil {
			return err
		}
	}

	if *flagBest != "" {
		err := artifact.Write(ctx, sink, *flagBest, func(w io.Writer) error {
			return synth.WriteCSV(w, a.Best.Records())
		})
		if err != nil {
			return err
		}
	}

	coefs, err := a.CoefRows()
	if err != nil {
		return err
	}
	eqs, err := a.EquationRows()
	if err != nil {
		return err
	}
	if *flagCoefs != "" {
		err := artifact.Write(ctx, sink, *flagCoefs, func(w io.Writer) error {
			return ppa.WriteCoefCSV(w, coefs)
		})
		if err != nil {
			return err
		}
	}
	if *flagEqs != "" {
		err := artifact.Write(ctx, sink, *flagEqs, func(w io.Writer) error {
			return ppa.WriteEquationCSV(w, eqs)
		})
		if err != nil {
			return err
		}
	} else if err := ppa.WriteEquationCSV(w, eqs); err != nil {
		return err
	}
	if *flagHTML != "" {
		err := artifact.Write(ctx, sink, *flagHTML, func(w io.Writer) error {
			return ppa.WriteHTML(w, coefs, eqs)
		})
		if err != nil {
			return err
		}
	}

	if *flagMux {
		if err := printMux(w, a); err != nil {
			return err
		}
	}
	if *flagFitErr {
		if err := printFitErrors(w, a); err != nil {
			return err
		}
	}
	if *flagPlots != "" {
		if err := plots(ctx, sink, *flagPlots, a, recs); err != nil {
			return err
		}
	}
	return nil
}

// scan collects the run reports under root and writes them to the
// CSV file out.
func scan(root, out string) error {
	recs, errs, err := report.Scan(os.DirFS(root), ".")
	if err != nil {
		return err
	}
	for _, err := range errs {
		log.Printf("skipping run: %v", err)
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := synth.WriteCSV(f, recs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// store inserts every synthesis and the best ones as a new upload.
func store(ctx context.Context, a *ppa.Analyzer) error {
	d, err := db.OpenSQL(*flagDBDriver, *flagDB)
	if err != nil {
		return err
	}
	defer d.Close()
	u, err := d.NewUpload(ctx)
	if err != nil {
		return err
	}
	if err := u.Insert(ctx, db.Synths, a.All); err != nil {
		return err
	}
	if err := u.Insert(ctx, db.Best, a.Best.Records()); err != nil {
		return err
	}
	if *flagV {
		log.Printf("stored %d syntheses as upload %d", len(a.All), u.ID)
	}
	return nil
}

// muxRow is the printed form of a multiplexer delay fit.
type muxRow struct {
	Path     string
	Tech     string
	Equation string
	R2       float64
}

func printMux(w io.Writer, a *ppa.Analyzer) error {
	series, err := a.MuxSeries(true)
	if err != nil {
		return err
	}
	var rows []muxRow
	for _, s := range series {
		if *flagV {
			ppa.LogExcluded(s)
		}
		for _, ts := range s.Techs {
			rows = append(rows, muxRow{s.Module, ts.Tech.Name, ts.Fit.Equation("N"), ts.Fit.R2})
		}
		if s.Combined != nil {
			rows = append(rows, muxRow{s.Module, synth.Combined.Name, s.Combined.Equation("N"), s.Combined.R2})
		}
	}
	if len(rows) == 0 {
		fmt.Fprintf(w, "no multiplexer results\n")
		return nil
	}
	return table.Fprint(w, table.TableFromStructs(rows), "%s", "%s", "%s", "%.4f")
}

// fitErrRow is the printed form of a ppa.FitError.
type fitErrRow struct {
	Metric string
	N      int
	Mean   float64
	StdDev float64
}

func printFitErrors(w io.Writer, a *ppa.Analyzer) error {
	var rows []fitErrRow
	for _, m := range synth.Metrics {
		fe, err := a.FitError(m)
		if err != nil {
			return err
		}
		rows = append(rows, fitErrRow{fe.Metric.String(), fe.N, fe.Mean, fe.StdDev})
	}
	return table.Fprint(w, table.TableFromStructs(rows), "%s", "%d", "%.4f", "%.4f")
}

// plots draws every module with complete results, the frequency
// sweep of every design point, and the multiplexer study into dir.
func plots(ctx context.Context, sink artifact.Sink, dir string, a *ppa.Analyzer, recs []synth.Record) error {
	cfg := a.Config
	for _, mod := range cfg.Modules {
		s, err := a.Series(mod, synth.Delay, ppa.Hard, false)
		if err != nil {
			return err
		}
		if len(s.Techs) == 0 {
			continue
		}
		g, err := chart.PPAGrid(a, mod, true, true)
		if err != nil {
			return err
		}
		if err := chart.Save(ctx, sink, path.Join(dir, "normalized", mod+".png"), g); err != nil {
			return err
		}
		g, err = chart.PPAGrid(a, mod, false, false)
		if err != nil {
			return err
		}
		if err := chart.Save(ctx, sink, path.Join(dir, "unnormalized", mod+".png"), g); err != nil {
			return err
		}
	}

	var mods []string
	mods = append(mods, cfg.Modules...)
	mods = append(mods, ppa.MuxModules(cfg.MuxInputs, ppa.MuxData)...)
	for _, tech := range cfg.Techs {
		for _, mod := range mods {
			for _, w := range append([]int{1}, cfg.Widths...) {
				s := sweep.Split(recs, tech.Name, mod, w)
				if s.Len() == 0 {
					continue
				}
				g, err := chart.FreqSweep(s.DropOutliers())
				if err != nil {
					return err
				}
				if err := chart.Save(ctx, sink, path.Join(dir, chart.SweepName(s)), g); err != nil {
					return err
				}
			}
		}
	}

	series, err := a.MuxSeries(true)
	if err != nil {
		return err
	}
	haveMux := false
	for _, s := range series {
		if len(s.Techs) > 0 {
			haveMux = true
			break
		}
	}
	if !haveMux {
		return nil
	}
	p, err := chart.MuxPlot(cfg, series)
	if err != nil {
		return err
	}
	return chart.Save(ctx, sink, path.Join(dir, "mux.png"), chart.Single(p))
}
