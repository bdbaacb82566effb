// Package data contains the small data interfaces used by the geoms
// beyond the ones of gonum's plotter package, together with slice based
// implementations.
package data

import "math"

// XYUVer wraps the Len and XYUV methods.
type XYUVer interface {
	// Len returns the number of x, y, u, v quadruples.
	Len() int

	// XYUV returns an x, y, u, v quadruple.
	XYUV(int) (x, y, u, v float64)
}

// XYUVRange returns the minimum and maximum x, y, u and v values.
// NaN values are ignored.
func XYUVRange(xyuvs XYUVer) (xmin, xmax, ymin, ymax, umin, umax, vmin, vmax float64) {
	xmin, xmax = math.Inf(1), math.Inf(-1)
	ymin, ymax = math.Inf(1), math.Inf(-1)
	umin, umax = math.Inf(1), math.Inf(-1)
	vmin, vmax = math.Inf(1), math.Inf(-1)
	for i := 0; i < xyuvs.Len(); i++ {
		x, y, u, v := xyuvs.XYUV(i)
		xmin, xmax = updateMin(xmin, x), updateMax(xmax, x)
		ymin, ymax = updateMin(ymin, y), updateMax(ymax, y)
		umin, umax = updateMin(umin, u), updateMax(umax, u)
		vmin, vmax = updateMin(vmin, v), updateMax(vmax, v)
	}
	return xmin, xmax, ymin, ymax, umin, umax, vmin, vmax
}

func updateMin(m, x float64) float64 {
	if math.IsNaN(x) {
		return m
	}
	return math.Min(m, x)
}

func updateMax(m, x float64) float64 {
	if math.IsNaN(x) {
		return m
	}
	return math.Max(m, x)
}

// XYUV is a single quadruple, typically the two corners of a rectangle
// or the end points of a segment.
type XYUV struct{ X, Y, U, V float64 }

// XYUVs implements the XYUVer interface.
type XYUVs []XYUV

func (d XYUVs) Len() int                        { return len(d) }
func (d XYUVs) XYUV(i int) (x, y, u, v float64) { return d[i].X, d[i].Y, d[i].U, d[i].V }

// XYTexter wraps the Len and XYText methods.
type XYTexter interface {
	// Len returns the number of texts.
	Len() int

	// XYText returns the position and the content of text i.
	XYText(int) (x, y float64, text string)
}

// XYText is a text placed at (X,Y).
type XYText struct {
	X, Y float64
	Text string
}

// XYTexts implements the XYTexter interface.
type XYTexts []XYText

func (d XYTexts) Len() int { return len(d) }
func (d XYTexts) XYText(i int) (x, y float64, text string) {
	return d[i].X, d[i].Y, d[i].Text
}
