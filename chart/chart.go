// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart draws the fits and measurements of the other packages
// as PNG images.
package chart

import (
	"context"
	"fmt"
	"image/color"
	"io"

	"github.com/hmc-dse/ppa/artifact"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// DPI is the resolution of rendered images.
const DPI = 150

// A Grid is a table of plots rendered into a single image.
type Grid [][]*plot.Plot

// Size returns the default image size for g: 7×3.46 inches for a
// 2×2 grid, scaled by the number of rows and columns.
func (g Grid) Size() (width, height vg.Length) {
	rows, cols := len(g), 0
	for _, row := range g {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return vg.Length(cols) * 3.5 * vg.Inch, vg.Length(rows) * 1.73 * vg.Inch
}

// WritePNG draws g into a width×height PNG on w. Nil entries of g are
// left blank.
func (g Grid) WritePNG(w io.Writer, width, height vg.Length) error {
	if len(g) == 0 {
		return fmt.Errorf("empty plot grid")
	}
	cols := 0
	for _, row := range g {
		if len(row) > cols {
			cols = len(row)
		}
	}
	can := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(DPI), vgimg.UseBackgroundColor(color.White))
	dc := draw.New(can)
	tiles := draw.Tiles{
		Rows: len(g),
		Cols: cols,
		PadX: vg.Millimeter,
		PadY: vg.Millimeter,

		PadTop:    vg.Points(2),
		PadBottom: vg.Points(2),
		PadLeft:   vg.Points(2),
		PadRight:  vg.Points(2),
	}
	// plot.Align needs a full rectangle.
	full := make([][]*plot.Plot, len(g))
	for i, row := range g {
		full[i] = make([]*plot.Plot, cols)
		copy(full[i], row)
	}
	canvases := plot.Align(full, tiles, dc)
	for i, row := range full {
		for j, p := range row {
			if p != nil {
				p.Draw(canvases[i][j])
			}
		}
	}
	_, err := vgimg.PngCanvas{Canvas: can}.WriteTo(w)
	return err
}

// Save renders g at its default size as the PNG name in sink.
func Save(ctx context.Context, sink artifact.Sink, name string, g Grid) error {
	width, height := g.Size()
	return artifact.Write(ctx, sink, name, func(w io.Writer) error {
		return g.WritePNG(w, width, height)
	})
}

// Single returns a grid holding only p.
func Single(p *plot.Plot) Grid {
	return Grid{{p}}
}

var colors = map[string]color.Color{
	"red":    color.NRGBA{0xFF, 0, 0, 0xFF},
	"green":  color.NRGBA{0, 0x80, 0, 0xFF},
	"blue":   color.NRGBA{0, 0, 0xFF, 0xFF},
	"purple": color.NRGBA{0x99, 0, 0xFF, 0xFF},
	"black":  color.Black,
}

// namedColor returns the color called name, or black.
func namedColor(name string) color.Color {
	if c, ok := colors[name]; ok {
		return c
	}
	return color.Black
}

// glyph returns the marker called name, or a circle.
func glyph(name string) draw.GlyphDrawer {
	switch name {
	case "triangle":
		return TriUp{}
	case "cross":
		return CrossGlyph{}
	case "bar":
		return BarGlyph{}
	case "square":
		return draw.SquareGlyph{}
	}
	return draw.CircleGlyph{}
}

const cosπover4 = vg.Length(.707106781202420)

// CrossGlyph is a glyph that draws a big X.
// this version draws a heavier X.
type CrossGlyph struct{}

// DrawGlyph implements the Glyph interface.
func (CrossGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	c.SetLineStyle(draw.LineStyle{Color: sty.Color, Width: vg.Points(1)})
	r := sty.Radius * cosπover4
	p := make(vg.Path, 0, 2)
	p.Move(vg.Point{X: pt.X - r, Y: pt.Y - r})
	p.Line(vg.Point{X: pt.X + r, Y: pt.Y + r})
	c.Stroke(p)
	p = p[:0]
	p.Move(vg.Point{X: pt.X - r, Y: pt.Y + r})
	p.Line(vg.Point{X: pt.X + r, Y: pt.Y - r})
	c.Stroke(p)
}

// TriUp is a filled upward-pointing triangle.
type TriUp struct{}

// DrawGlyph implements the Glyph interface.
func (TriUp) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	r := sty.Radius
	p := make(vg.Path, 0, 4)
	p.Move(vg.Point{X: pt.X - r, Y: pt.Y - r*cosπover4})
	p.Line(vg.Point{X: pt.X, Y: pt.Y + r})
	p.Line(vg.Point{X: pt.X + r, Y: pt.Y - r*cosπover4})
	p.Close()
	c.SetColor(sty.Color)
	c.Fill(p)
}

// BarGlyph is a short horizontal bar.
type BarGlyph struct{}

// DrawGlyph implements the Glyph interface.
func (BarGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	c.SetLineStyle(draw.LineStyle{Color: sty.Color, Width: vg.Points(1.5)})
	p := make(vg.Path, 0, 2)
	p.Move(vg.Point{X: pt.X - sty.Radius, Y: pt.Y})
	p.Line(vg.Point{X: pt.X + sty.Radius, Y: pt.Y})
	c.Stroke(p)
}

// ticks returns fixed ticks at xs.
func ticks(xs []float64) plot.ConstantTicks {
	var t plot.ConstantTicks
	for _, x := range xs {
		t = append(t, plot.Tick{Value: x, Label: fmt.Sprint(x)})
	}
	return t
}
