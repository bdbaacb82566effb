package brokenaxes

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Region describes the result of a layout.
type Region struct {
	// Figure is the canvas area the layout was computed for.
	Figure vg.Rectangle
	// Composite is the bounding box of all cells.
	Composite vg.Rectangle
	// Canvas is the canvas of the last Draw.
	Canvas draw.Canvas
}

// buildGrid allocates one cell per interval pair and applies limits,
// scales and the visibility of spines and tick labels.
func (b *BrokenAxes) buildGrid() error {
	nx, ny := b.X.count(), b.Y.count()
	b.cells = make([][]*Cell, ny)
	for r := range b.cells {
		b.cells[r] = make([]*Cell, nx)
		for col := range b.cells[r] {
			c, err := newCell(r, col, col, ny-1-r)
			if err != nil {
				return err
			}
			c.Axes.X.Scale = b.X.trans
			c.Axes.Y.Scale = b.Y.trans
			b.cells[r][col] = c
		}
	}
	b.applyLimits()
	b.setSpines()
	return nil
}

// applyLimits sets the limits of all cells from the scales.
func (b *BrokenAxes) applyLimits() {
	for _, c := range b.Cells() {
		c.setLimits(b.X.limits(c.XIndex), b.Y.limits(c.YIndex))
	}
}

// setSpines hides spines, ticks and tick labels on internal seams.
func (b *BrokenAxes) setSpines() {
	for _, c := range b.Cells() {
		bottom, left := b.isOuter(c, Bottom), b.isOuter(c, Left)
		top, right := b.isOuter(c, Top), b.isOuter(c, Right)

		c.XTickLabels, c.YTickLabels = bottom, left
		c.XTicks = bottom || b.internalSpines
		c.YTicks = left || b.internalSpines

		vis := [4]bool{
			Bottom: bottom || b.internalSpines,
			Left:   left || b.internalSpines,
			Top:    (top && !b.despine) || (!top && b.internalSpines),
			Right:  (right && !b.despine) || (!right && b.internalSpines),
		}
		for side := range c.Spines {
			c.Spines[side].Visible = vis[side]
			c.Spines[side].LineStyle = b.Style.Spine
		}
	}
}

// learnDataRange learns the data ranges of all plotters in all cells for
// the autoscaled scales.
func (b *BrokenAxes) learnDataRange() {
	if b.X.Broken() && b.Y.Broken() {
		return
	}
	b.X.Data, b.Y.Data = unsetInterval(), unsetInterval()
	for _, c := range b.Cells() {
		for _, lp := range c.plotters {
			dr, ok := lp.Plotter.(plot.DataRanger)
			if !ok {
				continue
			}
			xmin, xmax, ymin, ymax := dr.DataRange()
			b.X.UpdateData(xmin, xmax)
			b.Y.UpdateData(ymin, ymax)
		}
	}
}

// StandardizeTicks makes all cells share one tick base per axis. A base of
// zero selects the largest natural tick step among the outer cells.
// Log and SymLog axes always use their decade tickers.
func (b *BrokenAxes) StandardizeTicks(xbase, ybase float64) {
	b.xbase, b.ybase = xbase, ybase
	b.xfixed, b.yfixed = false, false
	b.standardizeTicks()
	b.touch()
}

func (b *BrokenAxes) standardizeTicks() {
	if !b.xfixed {
		base := b.xbase
		if base <= 0 {
			base = b.largestStep(b.X, b.LastRow(), (*Cell).XLim)
		}
		for _, c := range b.Cells() {
			c.Axes.X.Tick.Marker = tickerFor(b.X, base)
		}
		Logger().Debug("brokenaxes: x ticks standardized", "base", base)
	}
	if !b.yfixed {
		base := b.ybase
		if base <= 0 {
			base = b.largestStep(b.Y, b.FirstCol(), (*Cell).YLim)
		}
		for _, c := range b.Cells() {
			c.Axes.Y.Tick.Marker = tickerFor(b.Y, base)
		}
		Logger().Debug("brokenaxes: y ticks standardized", "base", base)
	}
}

// largestStep returns the largest natural tick step of s over cells. Cells
// with fewer than two ticks are skipped; zero is returned if none remain.
func (b *BrokenAxes) largestStep(s *Scale, cells []*Cell, lim func(*Cell) Interval) float64 {
	base := 0.0
	for _, c := range cells {
		step, ok := autoStep(s, lim(c))
		if !ok {
			Logger().Debug("brokenaxes: cell without tick step", "row", c.Row, "col", c.Col)
			continue
		}
		base = math.Max(base, step)
	}
	return base
}

// gridSizes splits total into len(ratios) sizes proportional to ratios,
// separated by gaps of space times the average size.
func gridSizes(total vg.Length, ratios []float64, space float64) ([]vg.Length, vg.Length) {
	n := float64(len(ratios))
	avg := float64(total) / (n + space*(n-1))
	sum := 0.0
	for _, r := range ratios {
		sum += r
	}
	sizes := make([]vg.Length, len(ratios))
	for i, r := range ratios {
		sizes[i] = vg.Length(r / sum * n * avg)
	}
	return sizes, vg.Length(space * avg)
}

// Layout computes the composite region and the canvases of all cells
// for c and regenerates the break marks. It is the hook to call whenever
// the figure size changed; calling it repeatedly for the same canvas
// yields the same result.
func (b *BrokenAxes) Layout(c draw.Canvas) Region {
	b.learnDataRange()
	b.applyLimits()
	b.standardizeTicks()

	m := b.margins()
	comp := vg.Rectangle{
		Min: vg.Point{X: c.Min.X + m[Left], Y: c.Min.Y + m[Bottom]},
		Max: vg.Point{X: c.Max.X - m[Right], Y: c.Max.Y - m[Top]},
	}
	if comp.Max.X < comp.Min.X {
		comp.Max.X = comp.Min.X
	}
	if comp.Max.Y < comp.Min.Y {
		comp.Max.Y = comp.Min.Y
	}

	widths, xgap := gridSizes(comp.Max.X-comp.Min.X, b.widthRatios, b.wspace)
	heights, ygap := gridSizes(comp.Max.Y-comp.Min.Y, b.heightRatios, b.hspace)

	y := comp.Max.Y
	for r, row := range b.cells {
		x := comp.Min.X
		for col, cell := range row {
			cell.Canvas = draw.Canvas{
				Canvas: c.Canvas,
				Rectangle: vg.Rectangle{
					Min: vg.Point{X: x, Y: y - heights[r]},
					Max: vg.Point{X: x + widths[col], Y: y},
				},
			}
			x += widths[col] + xgap
		}
		y -= heights[r] + ygap
	}

	b.region = Region{Figure: c.Rectangle, Composite: comp, Canvas: c}
	b.Overlay.Rect = comp
	b.laidOut, b.dirty = true, false
	b.makeDiags()

	Logger().Debug("brokenaxes: layout",
		"figure", c.Rectangle, "composite", comp,
		"widths", widths, "heights", heights, "marks", len(b.diags))
	return b.region
}

// Region returns the result of the last layout.
func (b *BrokenAxes) Region() Region { return b.region }

// margins returns the space needed around the composite for tick labels,
// secondary axes, axis labels and the title.
func (b *BrokenAxes) margins() [4]vg.Length {
	var m [4]vg.Length
	sty := b.Style

	xlabels := b.tickLabelExtent(sty.XAxis, b.LastRow(), func(c *Cell) []plot.Tick {
		return visibleTicks(c.Axes.X.Tick.Marker, c.XLim())
	}, false)
	ylabels := b.tickLabelExtent(sty.YAxis, b.FirstCol(), func(c *Cell) []plot.Tick {
		return visibleTicks(c.Axes.Y.Tick.Marker, c.YLim())
	}, true)

	m[Bottom] = sty.XAxis.MajorTick.Length + sty.XAxis.MajorTick.LabelPad + xlabels.height
	m[Left] = sty.YAxis.MajorTick.Length + sty.YAxis.MajorTick.LabelPad + ylabels.width
	m[Top] = sty.Pad + ylabels.height/2
	m[Right] = sty.Pad + xlabels.width/2

	// Secondary axes stack outside the primary tick labels on the bottom
	// and left, directly at the composite on the top and right.
	var base [4]vg.Length
	base[Bottom], base[Left] = m[Bottom], m[Left]
	for _, sa := range b.secondary {
		sa.offset = base[sa.Location]
		base[sa.Location] += sa.extent(b)
	}
	for _, side := range []Side{Top, Right} {
		if base[side] > 0 {
			m[side] = maxLength(m[side], base[side]+sty.Pad)
		}
	}
	m[Bottom], m[Left] = base[Bottom], base[Left]
	stack := m

	if t := b.Overlay.XLabel; t.Text != "" {
		m[Bottom] = maxLength(stack[Bottom], t.Padding) + t.Height(t.Text)
	}
	if t := b.Overlay.YLabel; t.Text != "" {
		m[Left] = maxLength(stack[Left], t.Padding) + t.Height(t.Text)
	}
	if t := b.Overlay.Title; t.Text != "" {
		m[Top] = maxLength(stack[Top], t.Padding) + t.Height(t.Text)
	}
	b.Overlay.stack = stack
	return m
}

func maxLength(a, b vg.Length) vg.Length {
	if a > b {
		return a
	}
	return b
}

type extent struct{ width, height vg.Length }

// tickLabelExtent returns the largest width and height of the major tick
// labels of cells.
func (b *BrokenAxes) tickLabelExtent(a AxisStyle, cells []*Cell, ticks func(*Cell) []plot.Tick, vertical bool) extent {
	var e extent
	for _, c := range cells {
		if (vertical && !c.YTickLabels) || (!vertical && !c.XTickLabels) {
			continue
		}
		for _, t := range ticks(c) {
			if t.IsMinor() {
				continue
			}
			e.width = maxLength(e.width, a.MajorTick.Label.Width(t.Label))
			e.height = maxLength(e.height, a.MajorTick.Label.Height(t.Label))
		}
	}
	return e
}

// visibleTicks returns the ticks of t which fall into iv.
func visibleTicks(t plot.Ticker, iv Interval) []plot.Tick {
	if t == nil {
		return nil
	}
	eps := 1e-9 * (iv.Max - iv.Min)
	var vis []plot.Tick
	for _, tk := range t.Ticks(iv.Min, iv.Max) {
		if tk.Value >= iv.Min-eps && tk.Value <= iv.Max+eps {
			vis = append(vis, tk)
		}
	}
	return vis
}

// drawTicks draws the tick marks and labels of c along its bottom and
// left edge.
func (b *BrokenAxes) drawTicks(c *Cell) {
	cv := c.Canvas
	if c.XTicks {
		a := b.Style.XAxis
		y0 := cv.Min.Y
		for _, t := range visibleTicks(c.Axes.X.Tick.Marker, c.XLim()) {
			x := cv.X(c.Axes.X.Norm(t.Value))
			if t.IsMinor() {
				cv.StrokeLine2(a.MinorTick.LineStyle, x, y0, x, y0-a.MinorTick.Length)
				continue
			}
			cv.StrokeLine2(a.MajorTick.LineStyle, x, y0, x, y0-a.MajorTick.Length)
			if c.XTickLabels {
				cv.FillText(a.MajorTick.Label,
					vg.Point{X: x, Y: y0 - a.MajorTick.Length - a.MajorTick.LabelPad}, t.Label)
			}
		}
	}
	if c.YTicks {
		a := b.Style.YAxis
		x0 := cv.Min.X
		for _, t := range visibleTicks(c.Axes.Y.Tick.Marker, c.YLim()) {
			y := cv.Y(c.Axes.Y.Norm(t.Value))
			if t.IsMinor() {
				cv.StrokeLine2(a.MinorTick.LineStyle, x0, y, x0-a.MinorTick.Length, y)
				continue
			}
			cv.StrokeLine2(a.MajorTick.LineStyle, x0, y, x0-a.MajorTick.Length, y)
			if c.YTickLabels {
				cv.FillText(a.MajorTick.Label,
					vg.Point{X: x0 - a.MajorTick.Length - a.MajorTick.LabelPad, Y: y}, t.Label)
			}
		}
	}
}
