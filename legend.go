package brokenaxes

import (
	"fmt"
	"image/color"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// LegendLoc is the position of the legend inside the composite region.
// The numeric values follow the well known location codes.
type LegendLoc int

const (
	Best LegendLoc = iota
	UpperRight
	UpperLeft
	LowerLeft
	LowerRight
	RightLoc
	CenterLeft
	CenterRight
	LowerCenter
	UpperCenter
	Center
)

var legendLocNames = [...]string{
	"best", "upper right", "upper left", "lower left", "lower right",
	"right", "center left", "center right", "lower center", "upper center",
	"center",
}

func (l LegendLoc) String() string {
	if l < Best || l > Center {
		return fmt.Sprintf("LegendLoc(%d)", int(l))
	}
	return legendLocNames[l]
}

// ParseLegendLoc returns the location named s, e.g. "upper left".
func ParseLegendLoc(s string) (LegendLoc, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Best, nil
	}
	for i, n := range legendLocNames {
		if n == s {
			return LegendLoc(i), nil
		}
	}
	return Best, fmt.Errorf("brokenaxes: unknown legend location %q", s)
}

// A LegendEntry is one line of the legend.
type LegendEntry struct {
	Label  string
	Thumbs []plot.Thumbnailer
}

// A Legend lists the labelled plotters of all cells.
type Legend struct {
	Loc     LegendLoc
	Entries []LegendEntry

	TextStyle draw.TextStyle

	// Padding is the space around and between the legend entries and the
	// distance of the frame to the composite edges.
	Padding vg.Length

	ThumbnailWidth vg.Length

	Border     draw.LineStyle
	Background color.Color

	// XOffs and YOffs shift the legend after placement.
	XOffs, YOffs vg.Length
}

// Legend places a legend at loc listing every labelled plotter of every
// cell once, in the order they were added. Repeated labels, e.g. of a
// series spanning several cells, produce a single entry.
func (b *BrokenAxes) Legend(loc LegendLoc) *Legend {
	l := &Legend{
		Loc:            loc,
		TextStyle:      b.Style.LegendText,
		Padding:        vg.Points(4),
		ThumbnailWidth: vg.Points(20),
		Border:         b.Style.LegendFrame,
		Background:     b.Style.LegendFill,
	}
	seen := make(map[string]int)
	first := make(map[string]*Cell)
	for _, c := range b.Cells() {
		for _, lp := range c.plotters {
			if lp.Label == "" {
				continue
			}
			th, ok := lp.Plotter.(plot.Thumbnailer)
			if !ok {
				continue
			}
			i, ok := seen[lp.Label]
			if !ok {
				i = len(l.Entries)
				seen[lp.Label] = i
				first[lp.Label] = c
				l.Entries = append(l.Entries, LegendEntry{Label: lp.Label})
			}
			if first[lp.Label] == c {
				l.Entries[i].Thumbs = append(l.Entries[i].Thumbs, th)
			}
		}
	}
	b.Overlay.Legend = l
	b.touch()
	Logger().Debug("brokenaxes: legend", "loc", loc.String(), "entries", len(l.Entries))
	return l
}

// Add appends an explicit entry to the legend.
func (l *Legend) Add(label string, thumbs ...plot.Thumbnailer) {
	l.Entries = append(l.Entries, LegendEntry{Label: label, Thumbs: thumbs})
}

// size returns the width and height of the legend box and the height of
// the individual rows.
func (l *Legend) size() (w, h, row vg.Length) {
	for _, e := range l.Entries {
		w = maxLength(w, l.TextStyle.Width(e.Label))
		row = maxLength(row, l.TextStyle.Height(e.Label))
	}
	w += 3*l.Padding + l.ThumbnailWidth
	h = vg.Length(len(l.Entries))*(row+l.Padding) + l.Padding
	return w, h, row
}

// box returns the legend rectangle for loc inside r.
func (l *Legend) box(loc LegendLoc, r vg.Rectangle) vg.Rectangle {
	w, h, _ := l.size()
	p := l.Padding
	var x, y vg.Length
	switch loc {
	case UpperLeft, LowerLeft, CenterLeft:
		x = r.Min.X + p
	case LowerCenter, UpperCenter, Center:
		x = (r.Min.X+r.Max.X)/2 - w/2
	default:
		x = r.Max.X - p - w
	}
	switch loc {
	case LowerLeft, LowerRight, LowerCenter:
		y = r.Min.Y + p
	case RightLoc, CenterLeft, CenterRight, Center:
		y = (r.Min.Y+r.Max.Y)/2 - h/2
	default:
		y = r.Max.Y - p - h
	}
	x += l.XOffs
	y += l.YOffs
	return vg.Rectangle{Min: vg.Point{X: x, Y: y}, Max: vg.Point{X: x + w, Y: y + h}}
}

// best returns the location whose box covers the fewest data points.
func (l *Legend) best(b *BrokenAxes, r vg.Rectangle) LegendLoc {
	var pts []vg.Point
	for _, c := range b.Cells() {
		for _, lp := range c.plotters {
			xy, ok := lp.Plotter.(plotter.XYer)
			if !ok {
				continue
			}
			for i := 0; i < xy.Len(); i++ {
				x, y := xy.XY(i)
				if pt, in := c.MapXY(x, y); in {
					pts = append(pts, pt)
				}
			}
		}
	}
	bestLoc, bestN := UpperRight, -1
	for loc := UpperRight; loc <= Center; loc++ {
		if loc == RightLoc {
			continue // same as CenterRight
		}
		box := l.box(loc, r)
		n := 0
		for _, pt := range pts {
			if pt.X >= box.Min.X && pt.X <= box.Max.X && pt.Y >= box.Min.Y && pt.Y <= box.Max.Y {
				n++
			}
		}
		if bestN < 0 || n < bestN {
			bestLoc, bestN = loc, n
		}
	}
	return bestLoc
}

// draw draws the legend into the composite region of b.
func (l *Legend) draw(c draw.Canvas, b *BrokenAxes) error {
	if len(l.Entries) == 0 {
		return nil
	}
	loc := l.Loc
	if loc < Best || loc > Center {
		return &UnsupportedOperationError{Op: "legend " + loc.String()}
	}
	if loc == Best {
		loc = l.best(b, b.Overlay.Rect)
	}
	box := l.box(loc, b.Overlay.Rect)
	if l.Background != nil {
		c.SetColor(l.Background)
		c.Fill(box.Path())
	}
	if l.Border.Color != nil && l.Border.Width > 0 {
		c.StrokeLines(l.Border, []vg.Point{
			box.Min, {X: box.Max.X, Y: box.Min.Y}, box.Max, {X: box.Min.X, Y: box.Max.Y}, box.Min,
		})
	}

	_, _, row := l.size()
	sty := l.TextStyle
	sty.XAlign, sty.YAlign = draw.XLeft, draw.YCenter
	y := box.Max.Y - l.Padding
	for _, e := range l.Entries {
		thumb := draw.Canvas{
			Canvas: c.Canvas,
			Rectangle: vg.Rectangle{
				Min: vg.Point{X: box.Min.X + l.Padding, Y: y - row},
				Max: vg.Point{X: box.Min.X + l.Padding + l.ThumbnailWidth, Y: y},
			},
		}
		for _, t := range e.Thumbs {
			t.Thumbnail(&thumb)
		}
		c.FillText(sty, vg.Point{X: thumb.Max.X + l.Padding, Y: y - row/2}, e.Label)
		y -= row + l.Padding
	}
	return nil
}
