package brokenaxes

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Side names one edge of a cell or of the composite.
type Side int

const (
	Bottom Side = iota
	Left
	Top
	Right
)

func (s Side) String() string {
	return [...]string{"bottom", "left", "top", "right"}[s]
}

// ParseSide returns the Side named s.
func ParseSide(s string) (Side, bool) {
	for _, side := range []Side{Bottom, Left, Top, Right} {
		if side.String() == s {
			return side, true
		}
	}
	return Bottom, false
}

// A Spine is the line along one edge of a cell.
type Spine struct {
	Visible bool
	draw.LineStyle
}

// LabelledPlotter is a plotter drawn into a cell together with its
// legend label.
type LabelledPlotter struct {
	Label   string
	Plotter plot.Plotter
}

// ----------------------------------------------------------------------------
// Cell

// A Cell is one sub axes of a broken axes plot. It shows the interval
// pair (XIndex, YIndex) and sits at the visual grid position (Row, Col),
// with row 0 at the top.
type Cell struct {
	Row, Col       int
	XIndex, YIndex int

	// Axes holds the limits, normalizers and tickers of the cell.
	// It is never drawn itself; plotters use it for their transforms.
	Axes *plot.Plot

	// Background overrides Style.Cell.Background if non-nil.
	Background color.Color

	Spines [4]Spine

	// Canvas is the drawing area of the cell as of the last layout.
	Canvas draw.Canvas

	// XTicks and YTicks control the tick marks along the bottom and left
	// edge, XTickLabels and YTickLabels their labels.
	XTicks, YTicks           bool
	XTickLabels, YTickLabels bool

	plotters []LabelledPlotter
}

func newCell(row, col, xi, yi int) (*Cell, error) {
	p, err := plot.New()
	if err != nil {
		return nil, err
	}
	p.HideAxes()
	p.X.Padding, p.Y.Padding = 0, 0
	return &Cell{Row: row, Col: col, XIndex: xi, YIndex: yi, Axes: p}, nil
}

// Add adds plotters to c. The label is used for the legend, the empty
// label excludes the plotters from the legend.
func (c *Cell) Add(label string, ps ...plot.Plotter) {
	for _, p := range ps {
		c.plotters = append(c.plotters, LabelledPlotter{Label: label, Plotter: p})
	}
}

// Plotters returns the plotters of c in drawing order.
func (c *Cell) Plotters() []LabelledPlotter {
	return c.plotters
}

// XLim returns the x limits of c.
func (c *Cell) XLim() Interval { return Interval{c.Axes.X.Min, c.Axes.X.Max} }

// YLim returns the y limits of c.
func (c *Cell) YLim() Interval { return Interval{c.Axes.Y.Min, c.Axes.Y.Max} }

func (c *Cell) setLimits(x, y Interval) {
	c.Axes.X.Min, c.Axes.X.Max = x.Min, x.Max
	c.Axes.Y.Min, c.Axes.Y.Max = y.Min, y.Max
}

// InRangeXY reports whether (x,y) lies inside the closed limits of c.
func (c *Cell) InRangeXY(x, y float64) bool {
	return c.XLim().Contains(x) && c.YLim().Contains(y)
}

// ContainsXY reports whether (x,y) lies strictly inside the limits of c.
func (c *Cell) ContainsXY(x, y float64) bool {
	xl, yl := c.XLim(), c.YLim()
	return xl.Min < x && x < xl.Max && yl.Min < y && y < yl.Max
}

// MapXY maps the data coordinate (x,y) to a canvas point. The boolean
// reports whether the point is inside the limits of c.
func (c *Cell) MapXY(x, y float64) (vg.Point, bool) {
	pt := vg.Point{
		X: c.Canvas.X(c.Axes.X.Norm(x)),
		Y: c.Canvas.Y(c.Axes.Y.Norm(y)),
	}
	return pt, c.InRangeXY(x, y)
}

// draw draws the background and all plotters of c.
func (c *Cell) draw(fill color.Color) {
	if c.Background != nil {
		fill = c.Background
	}
	if fill != nil {
		c.Canvas.SetColor(fill)
		c.Canvas.Fill(c.Canvas.Rectangle.Path())
	}
	for _, lp := range c.plotters {
		lp.Plotter.Plot(c.Canvas, c.Axes)
	}
}

// drawSpines strokes the visible spines of c.
func (c *Cell) drawSpines() {
	r := c.Canvas.Rectangle
	ends := [4][2]vg.Point{
		Bottom: {r.Min, {X: r.Max.X, Y: r.Min.Y}},
		Left:   {r.Min, {X: r.Min.X, Y: r.Max.Y}},
		Top:    {{X: r.Min.X, Y: r.Max.Y}, r.Max},
		Right:  {{X: r.Max.X, Y: r.Min.Y}, r.Max},
	}
	for side, sp := range c.Spines {
		if !sp.Visible || sp.Color == nil || sp.Width <= 0 {
			continue
		}
		e := ends[side]
		c.Canvas.StrokeLine2(sp.LineStyle, e[0].X, e[0].Y, e[1].X, e[1].Y)
	}
}
