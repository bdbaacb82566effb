// Package geom provides geometric objects which gonum's plotter package
// lacks: rectangles, bars, rule lines, segments, texts and images.
//
// All geoms implement plot.Plotter and work in data coordinates. Each
// clamps or clips itself to the axis ranges of the plot it is drawn into
// so the same geom can be drawn into several plots which show adjacent
// parts of the data, e.g. the cells of a broken axes plot.
//
// The different geoms have singular names like Rectangle or Segment even
// if they may draw several rectangles or segments.
package geom

import (
	"fmt"
	"image"
	"image/color"
	stddraw "image/draw"
	"math"
	"sort"

	"github.com/vdobler/brokenaxes/data"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var defaultBorder = draw.LineStyle{Color: color.RGBA{0, 0, 0x10, 0xff}, Width: vg.Points(1)}

// ----------------------------------------------------------------------------
// Rectangle

// Rectangle draws rectangles with corners (X,Y) and (U,V).
// The coordinates are the outside coordinates, i.e. if the border is drawn for
// the rectangle then this border is drawn inside the rectangle given by the
// coordinates.
type Rectangle struct {
	XYUV data.XYUVer

	BoxStyle
}

// Plot implements plot.Plotter.
func (r *Rectangle) Plot(c draw.Canvas, plt *plot.Plot) {
	fill, border := r.Fill, r.Border
	if fill == nil && border.Color == nil {
		border = defaultBorder
	}
	m := mapper(&c, plt)
	for i := 0; i < r.XYUV.Len(); i++ {
		x, y, u, v := r.XYUV.XYUV(i)
		if math.IsNaN(x) || math.IsNaN(y) || math.IsNaN(u) || math.IsNaN(v) {
			continue
		}
		x, y = clampData(plt, x, y)
		u, v = clampData(plt, u, v)
		if x == u || y == v {
			continue // nothing inside the axis ranges
		}
		rect, ok := clipRect(vg.Rectangle{Min: m(x, y), Max: m(u, v)}, c)
		if !ok {
			continue
		}
		if fill != nil {
			c.SetColor(fill)
			c.Fill(rect.Path())
		}
		strokeRect(c, border, rect)
	}
}

// DataRange implements plot.DataRanger.
func (r *Rectangle) DataRange() (xmin, xmax, ymin, ymax float64) {
	x0, x1, y0, y1, u0, u1, v0, v1 := data.XYUVRange(r.XYUV)
	return math.Min(x0, u0), math.Max(x1, u1), math.Min(y0, v0), math.Max(y1, v1)
}

// Thumbnail implements plot.Thumbnailer.
func (r *Rectangle) Thumbnail(c *draw.Canvas) {
	rect := c.Rectangle
	rect.Min.Y += (rect.Max.Y - rect.Min.Y) / 6
	rect.Max.Y -= (rect.Max.Y - rect.Min.Y) / 5
	if r.Fill != nil {
		c.SetColor(r.Fill)
		c.Fill(rect.Path())
	}
	border := r.Border
	if r.Fill == nil && border.Color == nil {
		border = defaultBorder
	}
	strokeRect(*c, border, rect)
}

// ----------------------------------------------------------------------------
// Bar

// Bar draws rectangles standing/hanging from Bottom.
type Bar struct {
	XY plotter.XYer

	// Width of the bars in data units. Zero derives the width from the
	// smallest distance between x values.
	Width float64

	// Bottom is the base line of the bars.
	Bottom float64

	Position string  // "stack" (default), "dodge" or "fill"
	GGap     float64 // Gap between groups as fraction of sample distance.
	BGap     float64 // Gap inside a group as fraction of sample distance.

	BoxStyle
}

// Plot implements plot.Plotter.
func (b *Bar) Plot(c draw.Canvas, plt *plot.Plot) {
	rect, err := b.rects()
	if err != nil {
		return
	}
	rect.Plot(c, plt)
}

// DataRange implements plot.DataRanger.
func (b *Bar) DataRange() (xmin, xmax, ymin, ymax float64) {
	rect, err := b.rects()
	if err != nil {
		return math.NaN(), math.NaN(), math.NaN(), math.NaN()
	}
	return rect.DataRange()
}

// Thumbnail implements plot.Thumbnailer.
func (b *Bar) Thumbnail(c *draw.Canvas) {
	r := Rectangle{BoxStyle: b.BoxStyle}
	r.Thumbnail(c)
}

// Rects returns the rectangles drawn for b.
func (b *Bar) Rects() (*Rectangle, error) { return b.rects() }

func (b *Bar) rects() (*Rectangle, error) {
	pos := b.Position
	if pos == "" {
		pos = "stack"
	}
	XYUV := make(data.XYUVs, b.XY.Len())

	g := b.groups(pos)

	for _, x := range g.Xs() {
		is := g.Group[x] // indices of all bars to draw at x
		switch pos {
		case "stack", "fill":
			ymin, ymax := 0.0, 0.0
			Y, V := 0.0, 0.0
			for _, i := range is {
				center, halfwidth, err := g.Width(x, i)
				if err != nil {
					return nil, err
				}
				_, y := b.XY.XY(i)
				if y < 0 {
					Y, V = ymin, ymin+y
					ymin += y
				} else {
					Y, V = ymax, ymax+y
					ymax += y
				}
				XYUV[i].X, XYUV[i].Y = center-halfwidth, Y
				XYUV[i].U, XYUV[i].V = center+halfwidth, V
			}
			if pos == "fill" {
				ymin *= -1
				for _, i := range is {
					if XYUV[i].V < 0 {
						XYUV[i].Y /= ymin
						XYUV[i].V /= ymin
					} else {
						XYUV[i].Y /= ymax
						XYUV[i].V /= ymax
					}
				}
			}
		case "dodge":
			for _, i := range is {
				center, halfwidth, err := g.Width(x, i)
				if err != nil {
					return nil, err
				}
				_, y := b.XY.XY(i)
				XYUV[i].X, XYUV[i].Y = center-halfwidth, 0
				XYUV[i].U, XYUV[i].V = center+halfwidth, y
			}
		default:
			return nil, fmt.Errorf("geom.Bar: unknown value for Position: %q", pos)
		}
	}
	for i := range XYUV {
		XYUV[i].Y += b.Bottom
		XYUV[i].V += b.Bottom
	}

	return &Rectangle{XYUV: XYUV, BoxStyle: b.BoxStyle}, nil
}

func (b *Bar) groups(position string) *BarGroups {
	g := NewBarGroups(position, b.GGap, b.BGap, true)
	g.Fixed = b.Width
	for i := 0; i < b.XY.Len(); i++ {
		x, _ := b.XY.XY(i)
		g.Record(x, i)
	}
	return g
}

// ----------------------------------------------------------------------------
// BarGroups helps determing bar sizes for Bar

type BarGroups struct {
	Group    map[float64][]int
	Position string  // "dodge" or something else
	Ggap     float64 // between groups
	Dgap     float64 // between bars inside a group if dodged
	Same     bool    // Same width for all bars?
	Fixed    float64 // fixed width of a group, 0 for automatic

	xs []float64
	md float64
	lg int
}

// NewBarGroups creates a BarGroups for dodged bar positioning with
// sensible gaps between bars.
func NewBarGroups(position string, groupGap, barGap float64, sameWidth bool) *BarGroups {
	if groupGap == 0 {
		groupGap = 0.2
	}
	return &BarGroups{
		Group:    make(map[float64][]int),
		Position: position,
		Ggap:     groupGap,
		Dgap:     barGap,
		Same:     sameWidth,
	}
}

// Record the point i with the given x coordinate.
func (bg *BarGroups) Record(x float64, i int) {
	bg.Group[x] = append(bg.Group[x], i)
	bg.xs = nil
}

// Width returns the center and the halfwidth for the bar i at x.
func (bg *BarGroups) Width(x float64, i int) (center float64, halfwidth float64, err error) {
	minDelta := bg.MinDelta()
	nonGapWidth := minDelta * (1 - bg.Ggap)
	if bg.Fixed > 0 {
		nonGapWidth = bg.Fixed
	}

	if bg.Position != "dodge" {
		return x, nonGapWidth / 2, nil
	}

	n := len(bg.Group[x])
	if bg.Same {
		n = bg.MaxGroupSize()
	}
	if n == 0 {
		return 0, 0, fmt.Errorf("geom: no data at %g", x)
	}
	halfwidth = nonGapWidth / float64(2*n)

	g := -1
	for j, k := range bg.Group[x] {
		if k == i {
			g = j
			break
		}
	}
	if g == -1 {
		return 0, 0, fmt.Errorf("geom: no point %d at %g", i, x)
	}

	center = x
	m := len(bg.Group[x])
	center += float64(2*g-m+1) * halfwidth

	halfwidth -= minDelta * bg.Dgap

	return center, halfwidth, nil
}

// Xs returns the sorted list of recorded x values.
func (bg *BarGroups) Xs() []float64 {
	bg.recalc()
	return bg.xs
}

// MinDelta returns the smallest difference between recorded x-values.
func (bg *BarGroups) MinDelta() float64 {
	bg.recalc()
	return bg.md
}

// MaxGroupSize determines the maximum number of values recorded per x-values.
func (bg *BarGroups) MaxGroupSize() int {
	bg.recalc()
	return bg.lg
}

func (bg *BarGroups) recalc() {
	if bg.xs != nil {
		return
	}

	// xs: all x-values in sorted order
	bg.xs = make([]float64, 0, len(bg.Group))
	for x := range bg.Group {
		bg.xs = append(bg.xs, x)
	}
	sort.Float64s(bg.xs)

	// md: minimum distance between two x-values
	switch len(bg.xs) {
	case 0:
		bg.md = 0
	case 1:
		bg.md = 1
	default:
		bg.md = bg.xs[1] - bg.xs[0]
		for i := 2; i < len(bg.xs); i++ {
			if m := bg.xs[i] - bg.xs[i-1]; m < bg.md {
				bg.md = m
			}
		}
	}

	// lg: largest groups size
	bg.lg = 0
	for _, is := range bg.Group {
		if len(is) > bg.lg {
			bg.lg = len(is)
		}
	}
}

// ----------------------------------------------------------------------------
// Path

// Path connects the given points in data order through straight line segments.
type Path struct {
	XY plotter.XYer

	draw.LineStyle
}

// Plot implements plot.Plotter.
func (p *Path) Plot(c draw.Canvas, plt *plot.Plot) {
	if p.Color == nil || p.Width <= 0 {
		return
	}
	m := mapper(&c, plt)
	pts := make([]vg.Point, 0, p.XY.Len())
	for i := 0; i < p.XY.Len(); i++ {
		x, y := p.XY.XY(i)
		if math.IsNaN(x) || math.IsNaN(y) {
			// NaNs break the path.
			c.StrokeLines(p.LineStyle, c.ClipLinesXY(pts)...)
			pts = pts[:0]
			continue
		}
		pts = append(pts, m(x, y))
	}
	c.StrokeLines(p.LineStyle, c.ClipLinesXY(pts)...)
}

// DataRange implements plot.DataRanger.
func (p *Path) DataRange() (xmin, xmax, ymin, ymax float64) {
	return plotter.XYRange(p.XY)
}

// Thumbnail implements plot.Thumbnailer.
func (p *Path) Thumbnail(c *draw.Canvas) {
	y := c.Center().Y
	c.StrokeLine2(p.LineStyle, c.Min.X, y, c.Max.X, y)
}

// ----------------------------------------------------------------------------
// Step

// Step produces a stairstep plot of the given data.
type Step struct {
	XY plotter.XYer

	// Vertical changes the step to "vertical then horizontal".
	Vertical bool

	draw.LineStyle
}

func (s *Step) toPath() *Path {
	path := &Path{LineStyle: s.LineStyle}

	N := s.XY.Len()
	if N == 0 {
		path.XY = plotter.XYs{}
		return path
	}
	xy := make(plotter.XYs, 2*N-1)
	for i := 0; i < N; i++ {
		xy[i].X, xy[i].Y = s.XY.XY(i)
	}
	sort.Slice(xy[:N], func(i, j int) bool { return xy[i].X < xy[j].X })

	for i := len(xy) - 1; i > 0; i -= 2 {
		xy[i] = xy[i/2]
	}

	for i := 1; i < len(xy); i += 2 {
		if s.Vertical {
			xy[i].X, xy[i].Y = xy[i-1].X, xy[i+1].Y
		} else {
			xy[i].X, xy[i].Y = xy[i+1].X, xy[i-1].Y
		}
	}

	path.XY = xy
	return path
}

// Plot implements plot.Plotter.
func (s *Step) Plot(c draw.Canvas, plt *plot.Plot) {
	s.toPath().Plot(c, plt)
}

// DataRange implements plot.DataRanger.
func (s *Step) DataRange() (xmin, xmax, ymin, ymax float64) {
	// all additional points lie inside the range spaned by the original data points.
	return plotter.XYRange(s.XY)
}

// Thumbnail implements plot.Thumbnailer.
func (s *Step) Thumbnail(c *draw.Canvas) {
	c.StrokeLines(s.LineStyle, []vg.Point{
		{X: c.Min.X, Y: c.Min.Y}, {X: c.Center().X, Y: c.Min.Y},
		{X: c.Center().X, Y: c.Max.Y}, {X: c.Max.X, Y: c.Max.Y},
	})
}

// ----------------------------------------------------------------------------
// Segment

// Segment draws line segments between two points (X,Y) and (U,V).
type Segment struct {
	XYUV data.XYUVer

	draw.LineStyle
}

// Plot implements plot.Plotter.
func (s *Segment) Plot(c draw.Canvas, plt *plot.Plot) {
	if s.Color == nil || s.Width <= 0 {
		return
	}
	m := mapper(&c, plt)
	for i := 0; i < s.XYUV.Len(); i++ {
		x, y, u, v := s.XYUV.XYUV(i)
		if math.IsNaN(x) || math.IsNaN(y) || math.IsNaN(u) || math.IsNaN(v) {
			continue
		}
		c.StrokeLines(s.LineStyle, c.ClipLinesXY([]vg.Point{m(x, y), m(u, v)})...)
	}
}

// DataRange implements plot.DataRanger.
func (s *Segment) DataRange() (xmin, xmax, ymin, ymax float64) {
	x0, x1, y0, y1, u0, u1, v0, v1 := data.XYUVRange(s.XYUV)
	return math.Min(x0, u0), math.Max(x1, u1), math.Min(y0, v0), math.Max(y1, v1)
}

// Thumbnail implements plot.Thumbnailer.
func (s *Segment) Thumbnail(c *draw.Canvas) {
	y := c.Center().Y
	c.StrokeLine2(s.LineStyle, c.Min.X, y, c.Max.X, y)
}

// ----------------------------------------------------------------------------
// HLine

// HLine draws horizontal reference (or rule) lines at the given Y values
// across the whole x range of the plot.
type HLine struct {
	Y plotter.Valuer

	draw.LineStyle
}

// Plot implements plot.Plotter.
func (h *HLine) Plot(c draw.Canvas, plt *plot.Plot) {
	N := h.Y.Len()
	xyuv := make(data.XYUVs, N)
	xmin, xmax := plt.X.Min, plt.X.Max
	for i := 0; i < N; i++ {
		y := h.Y.Value(i)
		xyuv[i].X, xyuv[i].Y, xyuv[i].U, xyuv[i].V = xmin, y, xmax, y
	}
	segment := Segment{XYUV: xyuv, LineStyle: h.LineStyle}
	segment.Plot(c, plt)
}

// DataRange implements plot.DataRanger. The x range is NaN as rule lines
// extend over any x range.
func (h *HLine) DataRange() (xmin, xmax, ymin, ymax float64) {
	ymin, ymax = plotter.Range(h.Y)
	return math.NaN(), math.NaN(), ymin, ymax
}

// Thumbnail implements plot.Thumbnailer.
func (h *HLine) Thumbnail(c *draw.Canvas) {
	y := c.Center().Y
	c.StrokeLine2(h.LineStyle, c.Min.X, y, c.Max.X, y)
}

// ----------------------------------------------------------------------------
// VLine

// VLine draws vertical reference (or rule) lines at the given X values
// across the whole y range of the plot.
type VLine struct {
	X plotter.Valuer

	draw.LineStyle
}

// Plot implements plot.Plotter.
func (v *VLine) Plot(c draw.Canvas, plt *plot.Plot) {
	N := v.X.Len()
	xyuv := make(data.XYUVs, N)
	ymin, ymax := plt.Y.Min, plt.Y.Max
	for i := 0; i < N; i++ {
		x := v.X.Value(i)
		xyuv[i].X, xyuv[i].Y, xyuv[i].U, xyuv[i].V = x, ymin, x, ymax
	}
	segment := Segment{XYUV: xyuv, LineStyle: v.LineStyle}
	segment.Plot(c, plt)
}

// DataRange implements plot.DataRanger. The y range is NaN as rule lines
// extend over any y range.
func (v *VLine) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = plotter.Range(v.X)
	return xmin, xmax, math.NaN(), math.NaN()
}

// Thumbnail implements plot.Thumbnailer.
func (v *VLine) Thumbnail(c *draw.Canvas) {
	x := c.Center().X
	c.StrokeLine2(v.LineStyle, x, c.Min.Y, x, c.Max.Y)
}

// ----------------------------------------------------------------------------
// Text

// Text draws texts at data coordinates. Texts whose anchor is outside the
// axis ranges are not drawn.
type Text struct {
	XYText data.XYTexter

	draw.TextStyle
}

// Plot implements plot.Plotter.
func (t *Text) Plot(c draw.Canvas, plt *plot.Plot) {
	if t.Color == nil {
		return
	}
	m := mapper(&c, plt)
	for i := 0; i < t.XYText.Len(); i++ {
		x, y, text := t.XYText.XYText(i)
		if !inRange(plt.X, x) || !inRange(plt.Y, y) {
			continue
		}
		c.FillText(t.TextStyle, m(x, y), text)
	}
}

// DataRange implements plot.DataRanger.
func (t *Text) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for i := 0; i < t.XYText.Len(); i++ {
		x, y, _ := t.XYText.XYText(i)
		xmin, xmax = math.Min(xmin, x), math.Max(xmax, x)
		ymin, ymax = math.Min(ymin, y), math.Max(ymax, y)
	}
	return xmin, xmax, ymin, ymax
}

func inRange(a plot.Axis, v float64) bool {
	lo, hi := a.Min, a.Max
	if lo > hi {
		lo, hi = hi, lo
	}
	return v >= lo && v <= hi
}

// ----------------------------------------------------------------------------
// Image

// Image draws an image covering the data rectangle [XMin,XMax]×[YMin,YMax].
// Only the part of the image inside the axis ranges is drawn. Axes are
// assumed to be linear across the image.
type Image struct {
	Img                    image.Image
	XMin, XMax, YMin, YMax float64
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// Plot implements plot.Plotter.
func (im *Image) Plot(c draw.Canvas, plt *plot.Plot) {
	x0, y0 := clampData(plt, im.XMin, im.YMin)
	x1, y1 := clampData(plt, im.XMax, im.YMax)
	if x0 == x1 || y0 == y1 {
		return
	}
	sub := im.crop(x0, x1, y0, y1)
	if sub == nil {
		return
	}
	m := mapper(&c, plt)
	rect := CanonicRectangle(vg.Rectangle{Min: m(x0, y0), Max: m(x1, y1)})
	c.DrawImage(rect, sub)
}

// crop returns the part of the image covering the data rectangle
// [x0,x1]×[y0,y1].
func (im *Image) crop(x0, x1, y0, y1 float64) image.Image {
	b := im.Img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	col := func(x float64) int {
		return b.Min.X + int(math.Round((x-im.XMin)/(im.XMax-im.XMin)*w))
	}
	row := func(y float64) int {
		// Row 0 is the top of the image, i.e. YMax.
		return b.Min.Y + int(math.Round((im.YMax-y)/(im.YMax-im.YMin)*h))
	}
	r := image.Rect(col(x0), row(y1), col(x1), row(y0)).Intersect(b)
	if r.Empty() {
		return nil
	}
	if r == b {
		return im.Img
	}
	if si, ok := im.Img.(subImager); ok {
		return si.SubImage(r)
	}
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	stddraw.Draw(dst, dst.Bounds(), im.Img, r.Min, stddraw.Src)
	return dst
}

// DataRange implements plot.DataRanger.
func (im *Image) DataRange() (xmin, xmax, ymin, ymax float64) {
	return math.Min(im.XMin, im.XMax), math.Max(im.XMin, im.XMax),
		math.Min(im.YMin, im.YMax), math.Max(im.YMin, im.YMax)
}
