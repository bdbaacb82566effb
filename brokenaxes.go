package brokenaxes

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Options configure a BrokenAxes. Start from DefaultOptions; the zero
// value is valid but draws no break marks and keeps the top and right
// spines.
type Options struct {
	// XLims and YLims are the intervals shown along x and y. A nil slice
	// gives a single interval autoscaled to the data.
	XLims, YLims []Interval

	// XScale and YScale select the scale kind shared by all cells.
	XScale, YScale ScaleKind

	// XLinThresh and YLinThresh set the linear region of SymLog scales.
	// Zero means 1.
	XLinThresh, YLinThresh float64

	// XTimeFormat and YTimeFormat format the ticks of Date scales.
	XTimeFormat, YTimeFormat string

	// WidthRatios (left to right) and HeightRatios (top to bottom)
	// override the sizes derived from the interval spans.
	WidthRatios, HeightRatios []float64

	// WSpace and HSpace are the gaps between cells as fraction of the
	// average cell width and height.
	WSpace, HSpace float64

	// D is the half length of the break marks, Tilt their angle in degrees.
	// D <= 0 disables break marks.
	D    vg.Length
	Tilt float64

	// DiagColor is the color of the break marks.
	DiagColor color.Color

	// Despine removes the outer top and right spines.
	Despine bool

	// InternalSpines keeps the spines and tick marks along internal seams.
	InternalSpines bool

	// XLabelPad and YLabelPad are the minimum distances of the axis
	// labels from the composite. Zero selects 15 and 30 points.
	XLabelPad, YLabelPad vg.Length

	// Style defaults to DefaultStyle(10).
	Style *Style
}

// DefaultOptions returns the options of an unbroken plot with the usual
// break mark appearance.
func DefaultOptions() Options {
	return Options{
		WSpace:    0.05,
		HSpace:    0.05,
		D:         vg.Points(5),
		Tilt:      45,
		DiagColor: color.Black,
		Despine:   true,
		XLabelPad: vg.Points(15),
		YLabelPad: vg.Points(30),
	}
}

// ----------------------------------------------------------------------------
// BrokenAxes

// BrokenAxes is a grid of cells which together look like a single plot
// with gaps in its x and/or y axis.
//
// A BrokenAxes is not safe for concurrent use.
type BrokenAxes struct {
	X, Y    *Scale
	Style   Style
	Overlay *Overlay

	cells [][]*Cell // [row][col], row 0 on top

	widthRatios, heightRatios []float64
	wspace, hspace            float64

	d         vg.Length
	tilt      float64
	diagColor color.Color
	diags     []*BreakMark

	despine, internalSpines bool

	xbase, ybase   float64 // forced tick bases, 0 for automatic
	xfixed, yfixed bool    // ticks set explicitly through Apply

	secondary []*SecondaryAxis
	nseries   int

	region  Region
	laidOut bool
	dirty   bool
}

// New creates the grid of cells for opts.
func New(opts Options) (*BrokenAxes, error) {
	if err := validateAxis("x", opts.XLims, opts.XScale, opts.XLinThresh); err != nil {
		return nil, err
	}
	if err := validateAxis("y", opts.YLims, opts.YScale, opts.YLinThresh); err != nil {
		return nil, err
	}
	if opts.WSpace < 0 || opts.HSpace < 0 {
		return nil, configErr("", -1, "negative spacing wspace=%g hspace=%g", opts.WSpace, opts.HSpace)
	}

	b := &BrokenAxes{
		X:              newScale(opts.XScale, opts.XLims, opts.XLinThresh, opts.XTimeFormat),
		Y:              newScale(opts.YScale, opts.YLims, opts.YLinThresh, opts.YTimeFormat),
		wspace:         opts.WSpace,
		hspace:         opts.HSpace,
		d:              opts.D,
		tilt:           opts.Tilt,
		diagColor:      opts.DiagColor,
		despine:        opts.Despine,
		internalSpines: opts.InternalSpines,
		dirty:          true,
	}
	if b.diagColor == nil {
		b.diagColor = color.Black
	}
	if opts.Style != nil {
		b.Style = *opts.Style
	} else {
		b.Style = DefaultStyle(10)
	}

	var err error
	b.widthRatios, err = ratios("x", b.X, opts.WidthRatios, false)
	if err != nil {
		return nil, err
	}
	b.heightRatios, err = ratios("y", b.Y, opts.HeightRatios, true)
	if err != nil {
		return nil, err
	}

	if err := b.buildGrid(); err != nil {
		return nil, err
	}
	b.Overlay = newOverlay(b.Style)
	if opts.XLabelPad > 0 {
		b.Overlay.XLabel.Padding = opts.XLabelPad
	}
	if opts.YLabelPad > 0 {
		b.Overlay.YLabel.Padding = opts.YLabelPad
	}
	b.standardizeTicks()

	Logger().Debug("brokenaxes: grid built",
		"rows", b.Rows(), "cols", b.Cols(),
		"xscale", b.X.Kind.String(), "yscale", b.Y.Kind.String(),
		"width_ratios", b.widthRatios, "height_ratios", b.heightRatios)
	return b, nil
}

func validateAxis(axis string, lims []Interval, kind ScaleKind, linThresh float64) error {
	if kind < Linear || kind > Date {
		return configErr(axis, -1, "unknown scale kind %d", int(kind))
	}
	if kind == SymLog && linThresh < 0 {
		return configErr(axis, -1, "negative symlog threshold %g", linThresh)
	}
	for i, iv := range lims {
		switch {
		case math.IsNaN(iv.Min) || math.IsNaN(iv.Max) || math.IsInf(iv.Min, 0) || math.IsInf(iv.Max, 0):
			return configErr(axis, i, "non-finite bound in %v", iv)
		case !(iv.Min < iv.Max):
			return configErr(axis, i, "zero or negative span %v", iv)
		case kind == Log && iv.Min <= 0:
			return configErr(axis, i, "non-positive bound %v on log scale", iv)
		}
	}
	if overlapping(lims) {
		Logger().Debug("brokenaxes: overlapping intervals", "axis", axis, "intervals", lims)
	}
	return nil
}

// overlapping reports whether any two intervals share more than a point.
func overlapping(lims []Interval) bool {
	s := append([]Interval(nil), lims...)
	sort.Slice(s, func(i, j int) bool { return s[i].Min < s[j].Min })
	for i := 1; i < len(s); i++ {
		if s[i].Min < s[i-1].Max {
			return true
		}
	}
	return false
}

// ratios returns the relative cell sizes along s: explicit ones if given,
// the transformed interval spans otherwise. Spans of y intervals are
// reversed because rows are ordered top to bottom.
func ratios(axis string, s *Scale, explicit []float64, reverse bool) ([]float64, error) {
	n := s.count()
	if explicit != nil {
		if len(explicit) != n {
			return nil, configErr(axis, -1, "%d ratios for %d intervals", len(explicit), n)
		}
		for i, r := range explicit {
			if !(r > 0) || math.IsInf(r, 0) {
				return nil, configErr(axis, i, "ratio %g not positive", r)
			}
		}
		return append([]float64(nil), explicit...), nil
	}
	if !s.Broken() {
		return []float64{1}, nil
	}
	rs := make([]float64, n)
	for i, iv := range s.Intervals {
		sp := s.span(iv)
		if !(sp > 0) || math.IsInf(sp, 0) {
			return nil, configErr(axis, i, "span %g of %v not positive after %s transform", sp, iv, s.Kind)
		}
		rs[i] = sp
	}
	if reverse {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			rs[i], rs[j] = rs[j], rs[i]
		}
	}
	return rs, nil
}

// Rows returns the number of cell rows.
func (b *BrokenAxes) Rows() int { return len(b.cells) }

// Cols returns the number of cell columns.
func (b *BrokenAxes) Cols() int { return len(b.cells[0]) }

// At returns the cell at the visual grid position (row, col).
func (b *BrokenAxes) At(row, col int) *Cell { return b.cells[row][col] }

// Cell returns the cell showing x interval xi and y interval yi.
func (b *BrokenAxes) Cell(xi, yi int) *Cell {
	return b.cells[b.Rows()-1-yi][xi]
}

// Cells returns all cells in row major order, starting top left.
func (b *BrokenAxes) Cells() []*Cell {
	all := make([]*Cell, 0, b.Rows()*b.Cols())
	for _, row := range b.cells {
		all = append(all, row...)
	}
	return all
}

// LastRow returns the cells of the bottom row.
func (b *BrokenAxes) LastRow() []*Cell { return b.cells[b.Rows()-1] }

// FirstCol returns the cells of the left column, top to bottom.
func (b *BrokenAxes) FirstCol() []*Cell {
	col := make([]*Cell, b.Rows())
	for r := range b.cells {
		col[r] = b.cells[r][0]
	}
	return col
}

// Spines returns the outer spines on the given side of the composite,
// e.g. to restyle them.
func (b *BrokenAxes) Spines(side Side) []*Spine {
	var sp []*Spine
	for _, c := range b.Cells() {
		if b.isOuter(c, side) {
			sp = append(sp, &c.Spines[side])
		}
	}
	return sp
}

func (b *BrokenAxes) isOuter(c *Cell, side Side) bool {
	switch side {
	case Bottom:
		return c.Row == b.Rows()-1
	case Top:
		return c.Row == 0
	case Left:
		return c.Col == 0
	case Right:
		return c.Col == b.Cols()-1
	}
	return false
}

// touch marks the layout as outdated.
func (b *BrokenAxes) touch() { b.dirty = true }

// Draw lays out b on c if necessary and draws it. A layout happens on
// the first call, whenever c differs in size or position from the last
// layout and after any change to b.
func (b *BrokenAxes) Draw(c draw.Canvas) error {
	if !b.laidOut || b.dirty || c.Rectangle != b.region.Figure {
		b.Layout(c)
	}
	b.region.Canvas = c
	for _, cell := range b.Cells() {
		cell.Canvas.Canvas = c.Canvas
	}

	if b.Style.Background != nil {
		c.SetColor(b.Style.Background)
		c.Fill(c.Rectangle.Path())
	}
	for _, cell := range b.Cells() {
		cell.draw(b.Style.Cell.Background)
	}
	for _, cell := range b.Cells() {
		cell.drawSpines()
		b.drawTicks(cell)
	}
	for _, sa := range b.secondary {
		sa.draw(b)
	}
	b.drawDiags(c)
	return b.Overlay.draw(c, b)
}

// DrawTiles draws the broken axes in baxes on the tiles t of dc. Nil
// entries are skipped.
func DrawTiles(baxes [][]*BrokenAxes, t draw.Tiles, dc draw.Canvas) error {
	for row, bs := range baxes {
		for col, b := range bs {
			if b == nil {
				continue
			}
			if err := b.Draw(t.At(dc, col, row)); err != nil {
				return fmt.Errorf("tile (%d,%d): %w", row, col, err)
			}
		}
	}
	return nil
}
