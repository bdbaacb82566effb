package brokenaxes

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// A SecondaryAxis shows an alternative unit along the outer cells of one
// side of the composite. Forward maps primary data values to the
// secondary unit, Inverse maps them back.
type SecondaryAxis struct {
	Location Side
	Forward  func(float64) float64
	Inverse  func(float64) float64

	Label    string
	LabelPad vg.Length

	// Ticker produces the ticks in the secondary unit.
	Ticker plot.Ticker

	offset vg.Length // distance from the composite edge
}

// SecondaryXAxis adds a secondary x axis at loc ("top" or "bottom").
func (b *BrokenAxes) SecondaryXAxis(loc string, forward, inverse func(float64) float64, label string) (*SecondaryAxis, error) {
	return b.secondaryAxis("x", loc, []Side{Top, Bottom}, forward, inverse, label)
}

// SecondaryYAxis adds a secondary y axis at loc ("right" or "left").
func (b *BrokenAxes) SecondaryYAxis(loc string, forward, inverse func(float64) float64, label string) (*SecondaryAxis, error) {
	return b.secondaryAxis("y", loc, []Side{Right, Left}, forward, inverse, label)
}

func (b *BrokenAxes) secondaryAxis(axis, loc string, allowed []Side, forward, inverse func(float64) float64, label string) (*SecondaryAxis, error) {
	side, ok := ParseSide(loc)
	if ok {
		ok = side == allowed[0] || side == allowed[1]
	}
	if !ok {
		return nil, configErr(axis, -1, "secondary axis location %q not %s or %s", loc, allowed[0], allowed[1])
	}
	if forward == nil || inverse == nil {
		return nil, configErr(axis, -1, "secondary axis needs forward and inverse function")
	}
	sa := &SecondaryAxis{
		Location: side,
		Forward:  forward,
		Inverse:  inverse,
		Label:    label,
		LabelPad: vg.Points(4),
		Ticker:   plot.DefaultTicks{},
	}
	b.secondary = append(b.secondary, sa)
	b.touch()
	return sa, nil
}

func (sa *SecondaryAxis) vertical() bool {
	return sa.Location == Left || sa.Location == Right
}

func (sa *SecondaryAxis) style(b *BrokenAxes) AxisStyle {
	if sa.vertical() {
		return b.Style.YAxis
	}
	return b.Style.XAxis
}

// placedTick is a tick together with its position along the axis.
type placedTick struct {
	pos  vg.Length
	tick plot.Tick
}

// ticks returns the major ticks of sa inside cell c.
func (sa *SecondaryAxis) ticks(c *Cell) []placedTick {
	lim, ax, lo, hi := c.XLim(), &c.Axes.X, c.Canvas.Min.X, c.Canvas.Max.X
	if sa.vertical() {
		lim, ax, lo, hi = c.YLim(), &c.Axes.Y, c.Canvas.Min.Y, c.Canvas.Max.Y
	}
	a, z := sa.Forward(lim.Min), sa.Forward(lim.Max)
	if a > z {
		a, z = z, a
	}
	if math.IsNaN(a) || math.IsNaN(z) || math.IsInf(a, 0) || math.IsInf(z, 0) {
		return nil
	}
	var pts []placedTick
	for _, t := range sa.Ticker.Ticks(a, z) {
		if t.IsMinor() {
			continue
		}
		v := sa.Inverse(t.Value)
		if !lim.Contains(v) {
			continue
		}
		pts = append(pts, placedTick{pos: lo + vg.Length(ax.Norm(v))*(hi-lo), tick: t})
	}
	return pts
}

func (sa *SecondaryAxis) cells(b *BrokenAxes) []*Cell {
	var cs []*Cell
	for _, c := range b.Cells() {
		if b.isOuter(c, sa.Location) {
			cs = append(cs, c)
		}
	}
	return cs
}

// extent returns the space sa occupies outside the composite.
func (sa *SecondaryAxis) extent(b *BrokenAxes) vg.Length {
	a := sa.style(b)
	var lbl vg.Length
	for _, c := range sa.cells(b) {
		for _, pt := range sa.ticks(c) {
			if sa.vertical() {
				lbl = maxLength(lbl, a.MajorTick.Label.Width(pt.tick.Label))
			} else {
				lbl = maxLength(lbl, a.MajorTick.Label.Height(pt.tick.Label))
			}
		}
	}
	e := a.MajorTick.Length + a.MajorTick.LabelPad + lbl
	if sa.Label != "" {
		e += sa.LabelPad + b.Style.Label.Height(sa.Label)
	}
	return e + b.Style.Pad
}

// draw draws the axis line, ticks, tick labels and label of sa.
func (sa *SecondaryAxis) draw(b *BrokenAxes) {
	cv := b.region.Canvas
	comp := b.region.Composite
	a := sa.style(b)

	// dir points away from the composite.
	var base, dir vg.Length
	switch sa.Location {
	case Bottom:
		base, dir = comp.Min.Y-sa.offset, -1
	case Top:
		base, dir = comp.Max.Y+sa.offset, 1
	case Left:
		base, dir = comp.Min.X-sa.offset, -1
	case Right:
		base, dir = comp.Max.X+sa.offset, 1
	}
	at := func(pos, dist vg.Length) vg.Point {
		if sa.vertical() {
			return vg.Point{X: base + dir*dist, Y: pos}
		}
		return vg.Point{X: pos, Y: base + dir*dist}
	}

	lsty := a.MajorTick.Label
	switch sa.Location {
	case Bottom:
		lsty.XAlign, lsty.YAlign = draw.XCenter, draw.YTop
	case Top:
		lsty.XAlign, lsty.YAlign = draw.XCenter, draw.YBottom
	case Left:
		lsty.XAlign, lsty.YAlign = draw.XRight, draw.YCenter
	case Right:
		lsty.XAlign, lsty.YAlign = draw.XLeft, draw.YCenter
	}

	var lbl vg.Length
	for _, c := range sa.cells(b) {
		lo, hi := c.Canvas.Min.X, c.Canvas.Max.X
		if sa.vertical() {
			lo, hi = c.Canvas.Min.Y, c.Canvas.Max.Y
		}
		if sa.offset > 0 {
			p, q := at(lo, 0), at(hi, 0)
			cv.StrokeLine2(b.Style.Spine, p.X, p.Y, q.X, q.Y)
		}
		for _, pt := range sa.ticks(c) {
			p, q := at(pt.pos, 0), at(pt.pos, a.MajorTick.Length)
			cv.StrokeLine2(a.MajorTick.LineStyle, p.X, p.Y, q.X, q.Y)
			cv.FillText(lsty, at(pt.pos, a.MajorTick.Length+a.MajorTick.LabelPad), pt.tick.Label)
			if sa.vertical() {
				lbl = maxLength(lbl, lsty.Width(pt.tick.Label))
			} else {
				lbl = maxLength(lbl, lsty.Height(pt.tick.Label))
			}
		}
	}

	if sa.Label == "" {
		return
	}
	tsty := b.Style.Label
	tsty.XAlign = draw.XCenter
	if dir < 0 {
		tsty.YAlign = draw.YTop
	} else {
		tsty.YAlign = draw.YBottom
	}
	if sa.vertical() {
		tsty.Rotation = -math.Pi / 2 * float64(dir)
		tsty.YAlign = draw.YBottom
	}
	mid := (comp.Min.X + comp.Max.X) / 2
	if sa.vertical() {
		mid = (comp.Min.Y + comp.Max.Y) / 2
	}
	cv.FillText(tsty, at(mid, a.MajorTick.Length+a.MajorTick.LabelPad+lbl+sa.LabelPad), sa.Label)
}
