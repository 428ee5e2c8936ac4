// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit

import (
	"fmt"
	"math"
	"strings"
)

// A Term is one basis function of a regression.
type Term int

// The basis terms, in the fixed order used for coefficient vectors.
const (
	Const  Term = iota // 1
	Linear             // x
	Square             // x²
	Log2               // log2(x)
	NLog2              // x·log2(x)

	NumTerms = iota
)

// termCodes are the single-letter codes of each Term, indexed by Term.
const termCodes = "clsgn"

// Code returns the single-letter code for t: one of "c", "l", "s",
// "g" or "n".
func (t Term) Code() string {
	return termCodes[t : t+1]
}

func (t Term) String() string {
	switch t {
	case Const:
		return "1"
	case Linear:
		return "N"
	case Square:
		return "N^2"
	case Log2:
		return "log2(N)"
	case NLog2:
		return "Nlog2(N)"
	}
	return fmt.Sprintf("Term(%d)", int(t))
}

// Eval evaluates basis function t at x.
func (t Term) Eval(x float64) float64 {
	switch t {
	case Const:
		return 1
	case Linear:
		return x
	case Square:
		return x * x
	case Log2:
		return math.Log2(x)
	case NLog2:
		return x * math.Log2(x)
	}
	panic(fmt.Sprintf("bad term %d", int(t)))
}

// Terms is a set of basis terms.
type Terms uint8

// AllTerms selects every basis term.
const AllTerms Terms = 1<<NumTerms - 1

// ParseTerms parses a string of term codes, such as "cg" for a
// constant plus log2 fit.
func ParseTerms(s string) (Terms, error) {
	var ts Terms
	for _, r := range s {
		i := strings.IndexRune(termCodes, r)
		if i < 0 {
			return 0, fmt.Errorf("unknown fit term %q in %q", r, s)
		}
		ts |= 1 << i
	}
	return ts, nil
}

// MustParseTerms is like ParseTerms but panics on error.
func MustParseTerms(s string) Terms {
	ts, err := ParseTerms(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// Has reports whether t is in ts.
func (ts Terms) Has(t Term) bool {
	return ts&(1<<t) != 0
}

// Len returns the number of terms in ts.
func (ts Terms) Len() int {
	n := 0
	for t := Term(0); t < NumTerms; t++ {
		if ts.Has(t) {
			n++
		}
	}
	return n
}

// Slice returns the terms of ts in fixed term order.
func (ts Terms) Slice() []Term {
	out := make([]Term, 0, NumTerms)
	for t := Term(0); t < NumTerms; t++ {
		if ts.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

// String returns the term codes of ts, for example "cg".
func (ts Terms) String() string {
	var b strings.Builder
	for _, t := range ts.Slice() {
		b.WriteString(t.Code())
	}
	return b.String()
}
