// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out plain-text tables of aligned columns.
package texttab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table does layout of a text table.
//
// Row and Cell return the Table so callers can chain them to build
// up a row at once.
type Table struct {
	rows [][]cell
	cols int
}

type cell struct {
	value      string
	leftMargin string
	alignment  align
}

// A CellOption modifies a cell.
type CellOption func(c *cell)

// LeftMargin sets the separator printed before a cell. By default
// cells after the first column are separated by one space.
func LeftMargin(x string) CellOption {
	return func(c *cell) {
		c.leftMargin = x
	}
}

var (
	Left  CellOption = func(c *cell) { c.alignment = alignLeft }
	Right CellOption = func(c *cell) { c.alignment = alignRight }
)

type align int

const (
	alignLeft align = iota
	alignRight
)

func (a align) pad(s string, w int) string {
	n := w - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	if a == alignRight {
		return strings.Repeat(" ", n) + s
	}
	return s + strings.Repeat(" ", n)
}

// Row starts a new row.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, nil)
	return t
}

// Cell adds a cell to the current row.
func (t *Table) Cell(value string, opts ...CellOption) *Table {
	if len(t.rows) == 0 {
		t.Row()
	}
	row := &t.rows[len(t.rows)-1]
	c := cell{value: value}
	if len(*row) > 0 {
		c.leftMargin = " "
	}
	for _, o := range opts {
		o(&c)
	}
	*row = append(*row, c)
	if len(*row) > t.cols {
		t.cols = len(*row)
	}
	return t
}

// Format lays out t and writes it to w. Trailing spaces are trimmed
// from each line.
func (t *Table) Format(w io.Writer) error {
	margin := make([]int, t.cols)
	width := make([]int, t.cols)
	for _, row := range t.rows {
		for i, c := range row {
			if n := utf8.RuneCountInString(c.leftMargin); n > margin[i] {
				margin[i] = n
			}
			if n := utf8.RuneCountInString(c.value); n > width[i] {
				width[i] = n
			}
		}
	}

	var line strings.Builder
	for _, row := range t.rows {
		line.Reset()
		for i, c := range row {
			fmt.Fprintf(&line, "%*s", margin[i], c.leftMargin)
			line.WriteString(c.alignment.pad(c.value, width[i]))
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}
