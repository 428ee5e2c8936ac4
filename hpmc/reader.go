// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpmc

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"
	"strings"
)

// A Reader reads benchmark counter records from a simulator
// transcript.
//
// A line of the form
//
//	# Read memfile .../<config>/<a>/<b>/<benchmark>.elf.memfile
//
// starts a record. Counter lines, whose second field starts with
// "Cnt", have the form
//
//	# Cnt[3] = 1234 Br Count
//
// and add one counter. A line containing "is done" ends the record.
// All other lines are ignored.
//
// Its API is modeled on bufio.Scanner.
type Reader struct {
	s        *bufio.Scanner
	fileName string
	line     int
	err      error

	cur  *Record // block being read, or nil
	next *Record // last completed record
}

// A SyntaxError reports a malformed line in a transcript.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// NewReader returns a Reader for the transcript r. fileName is used
// in error messages and recorded in each Record.
func NewReader(r io.Reader, fileName string) *Reader {
	if fileName == "" {
		fileName = "<unknown>"
	}
	s := bufio.NewScanner(r)
	s.Buffer(nil, 1<<20)
	return &Reader{s: s, fileName: fileName}
}

// Scan advances to the next completed record and reports whether
// there was one. At EOF or on an error it returns false, and Err
// reports the error, if any.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	for r.s.Scan() {
		r.line++
		line := r.s.Text()
		fields := strings.Fields(line)
		switch {
		case len(fields) > 3 && fields[1] == "Read" && fields[2] == "memfile":
			rec, err := r.newRecord(fields[3])
			if err != nil {
				r.err = err
				return false
			}
			r.cur = rec
		case len(fields) > 4 && strings.HasPrefix(fields[1], "Cnt"):
			if err := r.parseCounter(line); err != nil {
				r.err = err
				return false
			}
		case strings.Contains(line, "is done"):
			if r.cur == nil {
				// Nothing is running, for example a second
				// "is done" for the same test.
				continue
			}
			r.next, r.cur = r.cur, nil
			return true
		}
	}
	if err := r.s.Err(); err != nil {
		r.err = fmt.Errorf("%s:%d: %w", r.fileName, r.line, err)
	}
	return false
}

// Record returns the record read by the last successful Scan.
func (r *Reader) Record() *Record {
	return r.next
}

// Err returns the first error encountered by Scan.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) syntaxError(format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{r.fileName, r.line, fmt.Sprintf(format, args...)}
}

// newRecord starts a record for the memfile at p. The configuration
// is the fourth path element from the end and the benchmark is the
// base name up to the first dot.
func (r *Reader) newRecord(p string) (*Record, error) {
	elems := strings.Split(p, "/")
	if len(elems) < 4 {
		return nil, r.syntaxError("memfile path %q too short to name a configuration", p)
	}
	bench := path.Base(p)
	if i := strings.Index(bench, "."); i >= 0 {
		bench = bench[:i]
	}
	return &Record{
		Benchmark: bench,
		Config:    elems[len(elems)-4],
		File:      r.fileName,
		Counters:  make(map[string]int64),
	}, nil
}

func (r *Reader) parseCounter(line string) error {
	if r.cur == nil {
		// Counters outside a benchmark block are noise from
		// other tests.
		return nil
	}
	i := strings.Index(line, "=")
	if i < 0 {
		return r.syntaxError("counter line missing '='")
	}
	f := strings.Fields(line[i+1:])
	if len(f) < 2 {
		return r.syntaxError("counter line missing value or name")
	}
	v, err := strconv.ParseInt(f[0], 10, 64)
	if err != nil {
		return r.syntaxError("bad counter value %q", f[0])
	}
	r.cur.Counters[strings.Join(f[1:], " ")] = v
	return nil
}

// ReadAll returns every record in the transcript.
func (r *Reader) ReadAll() ([]*Record, error) {
	var recs []*Record
	for r.Scan() {
		recs = append(recs, r.Record())
	}
	return recs, r.Err()
}

// ReadFile reads every record in the transcript named name.
func ReadFile(name string) ([]*Record, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return NewReader(f, name).ReadAll()
}
