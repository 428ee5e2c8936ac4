// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit

import (
	"strconv"
	"strings"
)

// SigFig formats x rounded to figs significant figures in the
// shortest %g form, so 0.000123456 at 2 figures is "0.00012" and
// 1234567 is "1.2e+06".
func SigFig(x float64, figs int) string {
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'g', figs, 64), 64)
	if err != nil {
		// FormatFloat output always parses.
		panic(err)
	}
	return strconv.FormatFloat(r, 'g', -1, 64)
}

// Equation returns a human-readable form of the fit, such as
// "4.1 + 0.95log2(N)", naming the independent variable v. Terms
// whose coefficient rounds to zero at two significant figures are
// omitted.
func (r *Result) Equation(v string) string {
	var parts []string
	for i, t := range r.Terms.Slice() {
		c := SigFig(r.Coefs[i], 2)
		if c == "0" {
			continue
		}
		parts = append(parts, c+termText(t, v))
	}
	return strings.Join(parts, " + ")
}

func termText(t Term, v string) string {
	switch t {
	case Linear:
		return v
	case Square:
		return v + "^2"
	case Log2:
		return "log2(" + v + ")"
	case NLog2:
		return v + "log2(" + v + ")"
	}
	return ""
}
