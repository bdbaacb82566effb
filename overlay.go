package brokenaxes

import (
	"math"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Label is a text drawn outside the composite region.
type Label struct {
	Text string
	draw.TextStyle

	// Padding is the minimum distance between the composite and the
	// label. Tick labels and secondary axes push the label further out.
	Padding vg.Length
}

// An Overlay decorates the composite region of a BrokenAxes as a whole.
// It is never drawn into and has no axes of its own; it only carries the
// title, the axis labels and the legend so they are centred on the whole
// grid instead of one cell.
type Overlay struct {
	Title  Label
	XLabel Label
	YLabel Label

	// Legend is drawn inside the composite if non-nil.
	Legend *Legend

	// Rect is the composite region as of the last layout.
	Rect vg.Rectangle

	stack [4]vg.Length // space taken by tick labels and secondary axes
}

func newOverlay(sty Style) *Overlay {
	o := &Overlay{}
	o.Title.TextStyle = sty.Title
	o.Title.XAlign, o.Title.YAlign = draw.XCenter, draw.YBottom
	o.Title.Padding = sty.TitlePad

	o.XLabel.TextStyle = sty.Label
	o.XLabel.XAlign, o.XLabel.YAlign = draw.XCenter, draw.YTop
	o.XLabel.Padding = vg.Points(15)

	o.YLabel.TextStyle = sty.Label
	o.YLabel.Rotation = math.Pi / 2
	o.YLabel.XAlign, o.YLabel.YAlign = draw.XCenter, draw.YBottom
	o.YLabel.Padding = vg.Points(30)
	return o
}

// SetTitle sets the title above the composite.
func (b *BrokenAxes) SetTitle(s string) {
	b.Overlay.Title.Text = s
	b.touch()
}

// SetXLabel sets the x axis label below the composite. A pad > 0
// overrides the padding.
func (b *BrokenAxes) SetXLabel(s string, pad vg.Length) {
	b.Overlay.XLabel.Text = s
	if pad > 0 {
		b.Overlay.XLabel.Padding = pad
	}
	b.touch()
}

// SetYLabel sets the y axis label left of the composite. A pad > 0
// overrides the padding.
func (b *BrokenAxes) SetYLabel(s string, pad vg.Length) {
	b.Overlay.YLabel.Text = s
	if pad > 0 {
		b.Overlay.YLabel.Padding = pad
	}
	b.touch()
}

// draw draws the labels and the legend of o onto c.
func (o *Overlay) draw(c draw.Canvas, b *BrokenAxes) error {
	r := o.Rect
	cx := (r.Min.X + r.Max.X) / 2
	cy := (r.Min.Y + r.Max.Y) / 2

	if t := o.Title; t.Text != "" {
		c.FillText(t.TextStyle, vg.Point{X: cx, Y: r.Max.Y + maxLength(o.stack[Top], t.Padding)}, t.Text)
	}
	if t := o.XLabel; t.Text != "" {
		c.FillText(t.TextStyle, vg.Point{X: cx, Y: r.Min.Y - maxLength(o.stack[Bottom], t.Padding)}, t.Text)
	}
	if t := o.YLabel; t.Text != "" {
		c.FillText(t.TextStyle, vg.Point{X: r.Min.X - maxLength(o.stack[Left], t.Padding), Y: cy}, t.Text)
	}
	if o.Legend != nil {
		return o.Legend.draw(c, b)
	}
	return nil
}
