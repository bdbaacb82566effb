package brokenaxes

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// A Style controls how a BrokenAxes is drawn.
type Style struct {
	// Background fills the whole canvas if non-nil.
	Background color.Color

	Title       draw.TextStyle
	TitlePad    vg.Length
	Label       draw.TextStyle
	LegendText  draw.TextStyle
	LegendFrame draw.LineStyle
	LegendFill  color.Color

	Cell struct {
		// Background fills each cell if non-nil.
		Background color.Color
	}

	Spine draw.LineStyle

	XAxis AxisStyle
	YAxis AxisStyle

	// Pad is kept free on the figure edges which carry no labels.
	Pad vg.Length
}

// AxisStyle styles the ticks along one axis.
type AxisStyle struct {
	MajorTick struct {
		draw.LineStyle
		Length vg.Length
		Label  draw.TextStyle
		// LabelPad separates tick labels from the tick marks.
		LabelPad vg.Length
	}
	MinorTick struct {
		draw.LineStyle
		Length vg.Length
	}
}

// DefaultStyle returns a Style which mimics the classic appearance of
// matplotlib. The baseFontSize is the font size of axis labels, the title
// is a bit bigger, tick labels a bit smaller.
func DefaultStyle(baseFontSize vg.Length) Style {
	scale := func(x vg.Length, f float64) vg.Length {
		return vg.Length(math.Round(f * float64(x)))
	}

	titleFont, err := vg.MakeFont("Helvetica", scale(baseFontSize, 1.2))
	if err != nil {
		panic(err)
	}
	baseFont, err := vg.MakeFont("Helvetica", baseFontSize)
	if err != nil {
		panic(err)
	}
	tickFont, err := vg.MakeFont("Helvetica", scale(baseFontSize, 1/1.2))
	if err != nil {
		panic(err)
	}

	s := Style{}
	s.Background = color.White

	s.Title.Color = color.Black
	s.Title.Font = titleFont
	s.Title.XAlign = draw.XCenter
	s.Title.YAlign = draw.YBottom
	s.TitlePad = scale(baseFontSize, 0.5)

	s.Label.Color = color.Black
	s.Label.Font = baseFont
	s.Label.XAlign = draw.XCenter

	s.LegendText.Color = color.Black
	s.LegendText.Font = tickFont
	s.LegendText.XAlign = draw.XLeft
	s.LegendText.YAlign = draw.YCenter
	s.LegendFrame.Color = color.Gray16{0xcccc}
	s.LegendFrame.Width = vg.Length(0.8)
	s.LegendFill = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xcc}

	s.Spine.Color = color.Black
	s.Spine.Width = vg.Length(0.8)

	for _, a := range []*AxisStyle{&s.XAxis, &s.YAxis} {
		a.MajorTick.Color = color.Black
		a.MajorTick.Width = vg.Length(0.8)
		a.MajorTick.Length = vg.Length(3.5)
		a.MajorTick.LabelPad = vg.Length(3.5)
		a.MajorTick.Label.Color = color.Black
		a.MajorTick.Label.Font = tickFont

		a.MinorTick.Color = color.Black
		a.MinorTick.Width = vg.Length(0.6)
		a.MinorTick.Length = vg.Length(2)
	}
	s.XAxis.MajorTick.Label.XAlign = draw.XCenter
	s.XAxis.MajorTick.Label.YAlign = draw.YTop
	s.YAxis.MajorTick.Label.XAlign = draw.XRight
	s.YAxis.MajorTick.Label.YAlign = draw.YCenter

	s.Pad = scale(baseFontSize, 0.5)

	return s
}

var namedColors = map[string]color.Color{
	"black":     color.Black,
	"white":     color.White,
	"red":       color.RGBA{R: 0xff, A: 0xff},
	"green":     color.RGBA{G: 0x80, A: 0xff},
	"blue":      color.RGBA{B: 0xff, A: 0xff},
	"gray":      color.Gray{Y: 0x80},
	"grey":      color.Gray{Y: 0x80},
	"lightgray": color.Gray{Y: 0xd3},
}

// ParseColor parses a color given as "#rgb", "#rrggbb", "#rrggbbaa", as
// one of a few names like "black" or "gray", or as "C0" to "C9" for the
// series colors of plotutil.
func ParseColor(s string) (color.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if len(s) == 2 && s[0] == 'c' && s[1] >= '0' && s[1] <= '9' {
		return plotutil.Color(int(s[1] - '0')), nil
	}
	if !strings.HasPrefix(s, "#") {
		return nil, fmt.Errorf("brokenaxes: unknown color %q", s)
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return nil, fmt.Errorf("brokenaxes: malformed color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("brokenaxes: malformed color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
