package brokenaxes

import (
	"math"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// A BreakMark is one short diagonal stroke on a cell corner where the
// outer spine is interrupted by a gap.
type BreakMark struct {
	Cell     *Cell
	At       vg.Point // the corner
	From, To vg.Point
	Style    draw.LineStyle
	Hidden   bool
}

// makeDiags places marks on every outer corner which borders a gap. The
// marks are regenerated from scratch so repeated layouts never stack them.
func (b *BrokenAxes) makeDiags() {
	b.diags = nil
	if b.d <= 0 {
		return
	}
	rad := b.tilt * math.Pi / 180
	xlen := vg.Length(float64(b.d) * math.Cos(rad))
	ylen := vg.Length(float64(b.d) * math.Sin(rad))
	sty := draw.LineStyle{Color: b.diagColor, Width: b.Style.Spine.Width}

	add := func(c *Cell, x, y vg.Length) {
		b.diags = append(b.diags, &BreakMark{
			Cell:  c,
			At:    vg.Point{X: x, Y: y},
			From:  vg.Point{X: x - xlen, Y: y - ylen},
			To:    vg.Point{X: x + xlen, Y: y + ylen},
			Style: sty,
		})
	}

	lastRow, lastCol := b.Rows()-1, b.Cols()-1
	for _, c := range b.Cells() {
		r := c.Canvas.Rectangle
		if c.Row == lastRow {
			if c.Col != lastCol {
				add(c, r.Max.X, r.Min.Y)
			}
			if c.Col != 0 {
				add(c, r.Min.X, r.Min.Y)
			}
		}
		if c.Col == 0 {
			if c.Row != 0 {
				add(c, r.Min.X, r.Max.Y)
			}
			if c.Row != lastRow {
				add(c, r.Min.X, r.Min.Y)
			}
		}
		if b.despine {
			continue
		}
		if c.Row == 0 {
			if c.Col != lastCol {
				add(c, r.Max.X, r.Max.Y)
			}
			if c.Col != 0 {
				add(c, r.Min.X, r.Max.Y)
			}
		}
		if c.Col == lastCol {
			if c.Row != 0 {
				add(c, r.Max.X, r.Max.Y)
			}
			if c.Row != lastRow {
				add(c, r.Max.X, r.Min.Y)
			}
		}
	}
}

func (b *BrokenAxes) drawDiags(c draw.Canvas) {
	for _, m := range b.diags {
		if m.Hidden || m.Style.Color == nil || m.Style.Width <= 0 {
			continue
		}
		c.StrokeLine2(m.Style, m.From.X, m.From.Y, m.To.X, m.To.Y)
	}
}

// DiagHandles returns the break marks of the last layout. They may be
// restyled or hidden until the next layout.
func (b *BrokenAxes) DiagHandles() []*BreakMark { return b.diags }

// DrawDiags changes the half length d and the tilt (in degrees) of the
// break marks and regenerates them. Zero keeps the current value.
func (b *BrokenAxes) DrawDiags(d vg.Length, tilt float64) []*BreakMark {
	if d != 0 {
		b.d = d
	}
	if tilt != 0 {
		b.tilt = tilt
	}
	if b.laidOut {
		b.makeDiags()
	}
	return b.diags
}

// RemoveDiags removes all break marks. They stay removed until
// DrawDiags is called with a positive length.
func (b *BrokenAxes) RemoveDiags() {
	b.d = 0
	b.diags = nil
}
