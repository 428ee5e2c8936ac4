// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ppa

import (
	"io"

	"github.com/google/safehtml/template"
	"github.com/hmc-dse/ppa/fit"
)

var htmlTemplate = template.Must(template.New("").Funcs(htmlFuncs).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>PPA fits</title>
<style>
table.ppa { border-collapse: collapse; }
table.ppa td, table.ppa th { padding: 0 0.5em; }
table.ppa td.num { text-align: right; }
</style>
</head>
<body>
{{- with .Coefs}}
<h2>Coefficients</h2>
<table class='ppa'>
<tr>{{range $.CoefHeader}}<th>{{.}}{{end}}
{{range .}}<tr><td>{{.Module}}<td>{{.Metric}}<td>{{.Target}}{{$row := .}}{{range $.Terms}}<td class='num'>{{coef $row .}}{{end}}<td class='num'>{{printf "%.4f" .R2}}
{{end -}}
</table>
{{- end}}
{{- with .Equations}}
<h2>Equations</h2>
<table class='ppa'>
<tr>{{range $.EquationHeader}}<th>{{.}}{{end}}
{{range .}}<tr><td>{{.Module}}{{range .Equations}}<td>{{.}}{{end}}
{{end -}}
</table>
{{- end}}
</body>
</html>
`))

var htmlFuncs = template.FuncMap{
	"coef": func(r CoefRow, t fit.Term) string {
		if !r.Terms.Has(t) {
			return ""
		}
		return fit.SigFig(r.Coefs[t], 3)
	},
}

// WriteHTML writes an HTML page showing the coefficient and equation
// tables. Either may be nil.
func WriteHTML(w io.Writer, coefs []CoefRow, eqs []EquationRow) error {
	terms := make([]fit.Term, fit.NumTerms)
	for i := range terms {
		terms[i] = fit.Term(i)
	}
	return htmlTemplate.Execute(w, struct {
		CoefHeader     []string
		EquationHeader []string
		Terms          []fit.Term
		Coefs          []CoefRow
		Equations      []EquationRow
	}{CoefHeader, EquationHeader, terms, coefs, eqs})
}
