package brokenaxes

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/vdobler/brokenaxes/data"
	"github.com/vdobler/brokenaxes/geom"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Data bearing calls below replay themselves on every cell whose limits
// overlap the data. Each cell gets its own plotter so the returned
// handles, one per cell drawn into, can be styled individually. Cells are
// visited in the order of Cells.

// nextColor returns the color of the next series.
func (b *BrokenAxes) nextColor() color.Color {
	c := plotutil.Color(b.nseries)
	b.nseries++
	return c
}

// wants reports whether c shows some of the x range xr and the y range yr.
// Unset ranges and unbroken axes always match. With open, touching a
// cell in a single point does not count.
func (b *BrokenAxes) wants(c *Cell, xr, yr Interval, open bool) bool {
	match := func(s *Scale, r, lim Interval) bool {
		if !s.Broken() || !r.IsSet() {
			return true
		}
		if open {
			return r.overlapsOpen(lim)
		}
		return r.Overlaps(lim)
	}
	return match(b.X, xr, c.XLim()) && match(b.Y, yr, c.YLim())
}

// cellsFor returns the cells b.wants for xr and yr.
func (b *BrokenAxes) cellsFor(xr, yr Interval, open bool) []*Cell {
	var cs []*Cell
	for _, c := range b.Cells() {
		if b.wants(c, xr, yr, open) {
			cs = append(cs, c)
		}
	}
	Logger().Debug("brokenaxes: forwarding", "x", xr, "y", yr, "cells", len(cs))
	return cs
}

// shows reports whether the point (x,y) is shown in c. Unbroken axes show
// every value.
func (b *BrokenAxes) shows(c *Cell, x, y float64) bool {
	in := func(s *Scale, v float64, lim Interval) bool {
		return !s.Broken() || lim.Contains(v)
	}
	return in(b.X, x, c.XLim()) && in(b.Y, y, c.YLim())
}

func xyInterval(xys plotter.XYer) (Interval, Interval) {
	xr, yr := unsetInterval(), unsetInterval()
	for i := 0; i < xys.Len(); i++ {
		x, y := xys.XY(i)
		xr.Update(x)
		yr.Update(y)
	}
	return xr, yr
}

func cellErr(op string, c *Cell, err error) error {
	return fmt.Errorf("brokenaxes: %s in cell (%d,%d): %w", op, c.Row, c.Col, err)
}

// Line draws xys as a line, the equivalent of plot.
func (b *BrokenAxes) Line(label string, xys plotter.XYer) ([]*plotter.Line, error) {
	pts, err := plotter.CopyXYs(xys)
	if err != nil {
		return nil, fmt.Errorf("brokenaxes: line: %w", err)
	}
	col := b.nextColor()
	xr, yr := xyInterval(pts)
	var lines []*plotter.Line
	for _, c := range b.cellsFor(xr, yr, false) {
		l, err := plotter.NewLine(pts)
		if err != nil {
			return lines, cellErr("line", c, err)
		}
		l.Color = col
		c.Add(label, l)
		lines = append(lines, l)
	}
	b.touch()
	return lines, nil
}

// Step draws xys as a stairstep line.
func (b *BrokenAxes) Step(label string, xys plotter.XYer) ([]*geom.Step, error) {
	pts, err := plotter.CopyXYs(xys)
	if err != nil {
		return nil, fmt.Errorf("brokenaxes: step: %w", err)
	}
	col := b.nextColor()
	xr, yr := xyInterval(pts)
	var steps []*geom.Step
	for _, c := range b.cellsFor(xr, yr, false) {
		s := &geom.Step{XY: pts, LineStyle: plotter.DefaultLineStyle}
		s.Color = col
		c.Add(label, s)
		steps = append(steps, s)
	}
	b.touch()
	return steps, nil
}

// Scatter draws a glyph for every point of xys. Each cell receives only
// the points it shows.
func (b *BrokenAxes) Scatter(label string, xys plotter.XYer) ([]*plotter.Scatter, error) {
	pts, err := plotter.CopyXYs(xys)
	if err != nil {
		return nil, fmt.Errorf("brokenaxes: scatter: %w", err)
	}
	col := b.nextColor()
	var scatters []*plotter.Scatter
	for _, c := range b.Cells() {
		var sub plotter.XYs
		for _, p := range pts {
			if b.shows(c, p.X, p.Y) {
				sub = append(sub, p)
			}
		}
		if len(sub) == 0 {
			continue
		}
		s, err := plotter.NewScatter(sub)
		if err != nil {
			return scatters, cellErr("scatter", c, err)
		}
		s.Color = col
		c.Add(label, s)
		scatters = append(scatters, s)
	}
	b.touch()
	return scatters, nil
}

// Bar draws bars of the given heights centred on xs. A width of zero
// derives the width from the spacing of xs.
func (b *BrokenAxes) Bar(label string, xs, heights []float64, width float64) ([]*geom.Bar, error) {
	if len(xs) != len(heights) {
		return nil, fmt.Errorf("brokenaxes: bar: %d x values but %d heights", len(xs), len(heights))
	}
	xys := make(plotter.XYs, len(xs))
	for i := range xs {
		xys[i].X, xys[i].Y = xs[i], heights[i]
	}
	proto := geom.Bar{XY: xys, Width: width, BoxStyle: geom.BoxStyle{Fill: b.nextColor()}}
	rects, err := proto.Rects()
	if err != nil {
		return nil, fmt.Errorf("brokenaxes: bar: %w", err)
	}
	xmin, xmax, ymin, ymax := rects.DataRange()
	var bars []*geom.Bar
	for _, c := range b.cellsFor(Interval{xmin, xmax}, Interval{ymin, ymax}, true) {
		bar := proto
		c.Add(label, &bar)
		bars = append(bars, &bar)
	}
	b.touch()
	return bars, nil
}

// HistOptions control Hist.
type HistOptions struct {
	// Bins is the number of bins, 10 if zero.
	Bins int

	// Range restricts the binned range. Nil means the range of the data.
	Range *Interval

	// Density normalizes the histogram to unit area.
	Density bool
}

// A Histogram is the result of Hist.
type Histogram struct {
	// Bins are computed once over the combined range.
	Bins []plotter.HistogramBin

	// Parts holds the bins drawn in Cells[i].
	Parts []*geom.Rectangle
	Cells []*Cell
}

// Hist draws a histogram of xs. The bin edges are computed once over the
// combined range of all cells so bins line up across breaks. Each cell
// draws the bins which overlap its x interval.
func (b *BrokenAxes) Hist(label string, xs []float64, opts HistOptions) (*Histogram, error) {
	n := opts.Bins
	if n == 0 {
		n = 10
	}
	binner := NewBinner(n)
	if opts.Range != nil {
		binner.Range = *opts.Range
	} else {
		binner.Learn(xs...)
	}
	bins, err := binner.Histogram(xs, opts.Density)
	if err != nil {
		return nil, err
	}

	h := &Histogram{Bins: bins}
	fill := b.nextColor()
	for _, c := range b.Cells() {
		var rects data.XYUVs
		for _, bin := range bins {
			if b.wants(c, Interval{bin.Min, bin.Max}, Interval{0, bin.Weight}, true) {
				rects = append(rects, data.XYUV{X: bin.Min, Y: 0, U: bin.Max, V: bin.Weight})
			}
		}
		if len(rects) == 0 {
			continue
		}
		r := &geom.Rectangle{
			XYUV: rects,
			BoxStyle: geom.BoxStyle{
				Fill:   fill,
				Border: draw.LineStyle{Color: color.White, Width: vg.Points(0.5)},
			},
		}
		c.Add(label, r)
		h.Parts = append(h.Parts, r)
		h.Cells = append(h.Cells, c)
	}
	Logger().Debug("brokenaxes: histogram", "bins", n, "range", binner.Range, "cells", len(h.Cells))
	b.touch()
	return h, nil
}

// FillBetween fills the area between the curves (xs, y1) and (xs, y2).
func (b *BrokenAxes) FillBetween(label string, xs, y1, y2 []float64) ([]*plotter.Polygon, error) {
	if len(xs) != len(y1) || len(xs) != len(y2) {
		return nil, fmt.Errorf("brokenaxes: fill_between: lengths %d, %d and %d differ", len(xs), len(y1), len(y2))
	}
	n := len(xs)
	ring := make(plotter.XYs, 2*n)
	for i := range xs {
		ring[i].X, ring[i].Y = xs[i], y1[i]
		ring[2*n-1-i].X, ring[2*n-1-i].Y = xs[i], y2[i]
	}
	col := b.nextColor()
	xr, yr := xyInterval(ring)
	var polys []*plotter.Polygon
	for _, c := range b.cellsFor(xr, yr, true) {
		p, err := plotter.NewPolygon(ring)
		if err != nil {
			return polys, cellErr("fill_between", c, err)
		}
		p.Color = col
		p.LineStyle.Width = 0
		c.Add(label, p)
		polys = append(polys, p)
	}
	b.touch()
	return polys, nil
}

// errorPoints carries points with symmetric error bars.
type errorPoints struct {
	plotter.XYs
	plotter.XErrors
	plotter.YErrors
}

// ErrorBars are the result of ErrorBar. X and Y are nil if no errors were
// given for that direction.
type ErrorBars struct {
	Points []*plotter.Scatter
	X      []*plotter.XErrorBars
	Y      []*plotter.YErrorBars
}

// ErrorBar draws the points xys with symmetric error bars xerr and yerr.
// Either error slice may be nil.
func (b *BrokenAxes) ErrorBar(label string, xys plotter.XYer, xerr, yerr []float64) (*ErrorBars, error) {
	pts, err := plotter.CopyXYs(xys)
	if err != nil {
		return nil, fmt.Errorf("brokenaxes: errorbar: %w", err)
	}
	if (xerr != nil && len(xerr) != len(pts)) || (yerr != nil && len(yerr) != len(pts)) {
		return nil, fmt.Errorf("brokenaxes: errorbar: %d points but %d x and %d y errors", len(pts), len(xerr), len(yerr))
	}
	col := b.nextColor()
	eb := &ErrorBars{}
	for _, c := range b.Cells() {
		var ep errorPoints
		for i, p := range pts {
			if !b.shows(c, p.X, p.Y) {
				continue
			}
			ep.XYs = append(ep.XYs, p)
			var xe, ye float64
			if xerr != nil {
				xe = xerr[i]
			}
			if yerr != nil {
				ye = yerr[i]
			}
			ep.XErrors = append(ep.XErrors, struct{ Low, High float64 }{xe, xe})
			ep.YErrors = append(ep.YErrors, struct{ Low, High float64 }{ye, ye})
		}
		if len(ep.XYs) == 0 {
			continue
		}
		s, err := plotter.NewScatter(ep.XYs)
		if err != nil {
			return eb, cellErr("errorbar", c, err)
		}
		s.Color = col
		c.Add(label, s)
		eb.Points = append(eb.Points, s)
		if xerr != nil {
			xb, err := plotter.NewXErrorBars(ep)
			if err != nil {
				return eb, cellErr("errorbar", c, err)
			}
			xb.Color = col
			c.Add("", xb)
			eb.X = append(eb.X, xb)
		}
		if yerr != nil {
			yb, err := plotter.NewYErrorBars(ep)
			if err != nil {
				return eb, cellErr("errorbar", c, err)
			}
			yb.Color = col
			c.Add("", yb)
			eb.Y = append(eb.Y, yb)
		}
	}
	b.touch()
	return eb, nil
}

func ruleStyle(col color.Color) draw.LineStyle {
	sty := plotter.DefaultLineStyle
	sty.Color = col
	return sty
}

// HLine draws horizontal lines at ys across the full width of every cell
// which shows them.
func (b *BrokenAxes) HLine(label string, ys ...float64) ([]*geom.HLine, error) {
	vs, err := plotter.CopyValues(plotter.Values(ys))
	if err != nil {
		return nil, fmt.Errorf("brokenaxes: hline: %w", err)
	}
	col := b.nextColor()
	yr := unsetInterval()
	yr.Update(ys...)
	var lines []*geom.HLine
	for _, c := range b.cellsFor(unsetInterval(), yr, false) {
		var in plotter.Values
		for _, y := range vs {
			if !b.Y.Broken() || c.YLim().Contains(y) {
				in = append(in, y)
			}
		}
		if len(in) == 0 {
			continue
		}
		h := &geom.HLine{Y: in, LineStyle: ruleStyle(col)}
		c.Add(label, h)
		lines = append(lines, h)
	}
	b.touch()
	return lines, nil
}

// VLine draws vertical lines at xs across the full height of every cell
// which shows them.
func (b *BrokenAxes) VLine(label string, xs ...float64) ([]*geom.VLine, error) {
	vs, err := plotter.CopyValues(plotter.Values(xs))
	if err != nil {
		return nil, fmt.Errorf("brokenaxes: vline: %w", err)
	}
	col := b.nextColor()
	xr := unsetInterval()
	xr.Update(xs...)
	var lines []*geom.VLine
	for _, c := range b.cellsFor(xr, unsetInterval(), false) {
		var in plotter.Values
		for _, x := range vs {
			if !b.X.Broken() || c.XLim().Contains(x) {
				in = append(in, x)
			}
		}
		if len(in) == 0 {
			continue
		}
		v := &geom.VLine{X: in, LineStyle: ruleStyle(col)}
		c.Add(label, v)
		lines = append(lines, v)
	}
	b.touch()
	return lines, nil
}

// Segments draws straight lines from (X,Y) to (U,V). Each cell receives
// the segments whose bounding box overlaps it.
func (b *BrokenAxes) Segments(label string, segs data.XYUVer) ([]*geom.Segment, error) {
	col := b.nextColor()
	var sets []*geom.Segment
	for _, c := range b.Cells() {
		var in data.XYUVs
		for i := 0; i < segs.Len(); i++ {
			x, y, u, v := segs.XYUV(i)
			xr, yr := unsetInterval(), unsetInterval()
			xr.Update(x, u)
			yr.Update(y, v)
			if !xr.IsSet() || !yr.IsSet() {
				return sets, fmt.Errorf("brokenaxes: segments: non-finite segment %d", i)
			}
			if b.wants(c, xr, yr, false) {
				in = append(in, data.XYUV{X: x, Y: y, U: u, V: v})
			}
		}
		if len(in) == 0 {
			continue
		}
		s := &geom.Segment{XYUV: in, LineStyle: ruleStyle(col)}
		c.Add(label, s)
		sets = append(sets, s)
	}
	b.touch()
	return sets, nil
}

// Text draws s at (x,y) in the single cell strictly containing that
// point. ErrNoCell is returned if there is no such cell.
func (b *BrokenAxes) Text(x, y float64, s string) (*geom.Text, error) {
	for _, c := range b.Cells() {
		xl, yl := c.XLim(), c.YLim()
		inX := !b.X.Broken() || (xl.Min < x && x < xl.Max)
		inY := !b.Y.Broken() || (yl.Min < y && y < yl.Max)
		if !inX || !inY {
			continue
		}
		sty := b.Style.Label
		sty.XAlign, sty.YAlign = draw.XLeft, draw.YBottom
		t := &geom.Text{XYText: data.XYTexts{{X: x, Y: y, Text: s}}, TextStyle: sty}
		c.Add("", t)
		b.touch()
		return t, nil
	}
	return nil, fmt.Errorf("text %q at (%g,%g): %w", s, x, y, ErrNoCell)
}

// ImShow draws img covering the data rectangle x × y. Zero intervals
// select pixel coordinates centred on the pixels. Each cell crops the
// image to its limits.
func (b *BrokenAxes) ImShow(img image.Image, x, y Interval) ([]*geom.Image, error) {
	if img == nil {
		return nil, errors.New("brokenaxes: imshow: nil image")
	}
	bounds := img.Bounds()
	if x == (Interval{}) {
		x = Interval{-0.5, float64(bounds.Dx()) - 0.5}
	}
	if y == (Interval{}) {
		y = Interval{-0.5, float64(bounds.Dy()) - 0.5}
	}
	var ims []*geom.Image
	for _, c := range b.cellsFor(x, y, true) {
		im := &geom.Image{Img: img, XMin: x.Min, XMax: x.Max, YMin: y.Min, YMax: y.Max}
		c.Add("", im)
		ims = append(ims, im)
	}
	b.touch()
	return ims, nil
}

// Grid draws grid lines at the major ticks of axis "x", "y" or "both"
// into every cell.
func (b *BrokenAxes) Grid(axis string) ([]*plotter.Grid, error) {
	if axis == "" {
		axis = "both"
	}
	if axis != "x" && axis != "y" && axis != "both" {
		return nil, &UnsupportedOperationError{Op: "grid axis " + axis}
	}
	var grids []*plotter.Grid
	for _, c := range b.Cells() {
		g := plotter.NewGrid()
		if axis == "y" {
			g.Vertical.Color = nil
		}
		if axis == "x" {
			g.Horizontal.Color = nil
		}
		c.Add("", g)
		grids = append(grids, g)
	}
	b.touch()
	return grids, nil
}

// Add adds the plotters ps to every cell. The plotters must clip
// themselves to the limits of the plot they are drawn into.
func (b *BrokenAxes) Add(label string, ps ...plot.Plotter) {
	for _, c := range b.Cells() {
		c.Add(label, ps...)
	}
	b.touch()
}
