package geom

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// BoxStyle combines a line style for the border with a fill color for
// the interior of a geom.
type BoxStyle struct {
	Fill   color.Color
	Border draw.LineStyle
}

// CanonicRectangle returns the canonical form of r, i.e. its Min points
// having smaller coordinates than its Max point.
func CanonicRectangle(r vg.Rectangle) vg.Rectangle {
	if r.Min.X > r.Max.X {
		r.Min.X, r.Max.X = r.Max.X, r.Min.X
	}
	if r.Min.Y > r.Max.Y {
		r.Min.Y, r.Max.Y = r.Max.Y, r.Min.Y
	}
	return r
}

// clipRect clips rect to canvas. The returned rectangle is in the
// canonical form; ok is false if nothing of rect is left.
func clipRect(rect vg.Rectangle, canvas draw.Canvas) (vg.Rectangle, bool) {
	rect = CanonicRectangle(rect)
	limit := CanonicRectangle(canvas.Rectangle)

	if rect.Min.X < limit.Min.X {
		rect.Min.X = limit.Min.X
	}
	if rect.Min.Y < limit.Min.Y {
		rect.Min.Y = limit.Min.Y
	}
	if rect.Max.X > limit.Max.X {
		rect.Max.X = limit.Max.X
	}
	if rect.Max.Y > limit.Max.Y {
		rect.Max.Y = limit.Max.Y
	}
	return rect, rect.Min.X < rect.Max.X && rect.Min.Y < rect.Max.Y
}

// clampData restricts the data coordinate (x,y) to the axis ranges of plt.
// NaNs stay NaN.
func clampData(plt *plot.Plot, x, y float64) (float64, float64) {
	clamp := func(v, a, b float64) float64 {
		if a > b {
			a, b = b, a
		}
		return math.Max(a, math.Min(b, v))
	}
	return clamp(x, plt.X.Min, plt.X.Max), clamp(y, plt.Y.Min, plt.Y.Max)
}

// mapper returns the data to canvas mapping of plt on c.
func mapper(c *draw.Canvas, plt *plot.Plot) func(x, y float64) vg.Point {
	trX, trY := plt.Transforms(c)
	return func(x, y float64) vg.Point { return vg.Point{X: trX(x), Y: trY(y)} }
}

// strokeRect draws the border of rect inside rect.
func strokeRect(c draw.Canvas, border draw.LineStyle, rect vg.Rectangle) {
	if border.Color == nil || border.Width <= 0 {
		return
	}
	w := 0.499 * border.Width
	rect.Min.X += w
	rect.Min.Y += w
	rect.Max.X -= w
	rect.Max.Y -= w
	c.SetColor(border.Color)
	c.SetLineWidth(border.Width)
	c.SetLineDash(border.Dashes, border.DashOffs)
	c.Stroke(rect.Path())
}
