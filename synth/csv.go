// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synth

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Header is the column header of synthesis CSV tables.
var Header = []string{"Module", "Tech", "Width", "Target Freq", "Delay", "Area", "L Power (nW)", "D energy (nJ)"}

// A CSVError reports a malformed row of a synthesis table.
type CSVError struct {
	Line int
	Err  error
}

func (e *CSVError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *CSVError) Unwrap() error {
	return e.Err
}

// ReadCSV reads a synthesis table with a header row. Any malformed
// row fails the whole read.
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	var recs []Record
	for i, row := range rows[1:] {
		rec, err := parseRow(row)
		if err != nil {
			// Line numbers are 1-based and include the header.
			return nil, &CSVError{i + 2, err}
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func parseRow(row []string) (Record, error) {
	r := Record{Module: row[0], Tech: row[1]}
	var err error
	if r.Width, err = strconv.Atoi(row[2]); err != nil {
		return r, fmt.Errorf("bad width: %w", err)
	}
	if r.Freq, err = strconv.Atoi(row[3]); err != nil {
		return r, fmt.Errorf("bad target frequency: %w", err)
	}
	for i, dst := range []*float64{&r.Delay, &r.Area, &r.LPower, &r.DEnergy} {
		if *dst, err = strconv.ParseFloat(row[4+i], 64); err != nil {
			return r, fmt.Errorf("bad %s: %w", Header[4+i], err)
		}
	}
	return r, nil
}

// WriteCSV writes recs as a synthesis table with a header row.
func WriteCSV(w io.Writer, recs []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range recs {
		row := []string{
			r.Module,
			r.Tech,
			strconv.Itoa(r.Width),
			strconv.Itoa(r.Freq),
			strof(r.Delay),
			strof(r.Area),
			strof(r.LPower),
			strof(r.DEnergy),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func strof(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
