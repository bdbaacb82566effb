package geom

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/vdobler/brokenaxes/data"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

func TestBarRectsStack(t *testing.T) {
	b := Bar{
		XY:     plotter.XYs{{X: 1, Y: 2}, {X: 2, Y: 3}, {X: 2, Y: -1}},
		Bottom: 1,
	}
	r, err := b.Rects()
	if err != nil {
		t.Fatal(err)
	}
	want := data.XYUVs{
		{X: 0.6, Y: 1, U: 1.4, V: 3},
		{X: 1.6, Y: 1, U: 2.4, V: 4},
		{X: 1.6, Y: 1, U: 2.4, V: 0},
	}
	got := r.XYUV.(data.XYUVs)
	for i := range want {
		if !closeXYUV(got[i], want[i]) {
			t.Errorf("%d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestBarRectsDodge(t *testing.T) {
	b := Bar{
		XY:       plotter.XYs{{X: 1, Y: 2}, {X: 1, Y: 4}},
		Position: "dodge",
	}
	r, err := b.Rects()
	if err != nil {
		t.Fatal(err)
	}
	got := r.XYUV.(data.XYUVs)
	// Single x value: distance 1, 20% gap, two bars of 0.4.
	if !closeXYUV(got[0], data.XYUV{X: 0.6, Y: 0, U: 1, V: 2}) {
		t.Errorf("first bar %v", got[0])
	}
	if !closeXYUV(got[1], data.XYUV{X: 1, Y: 0, U: 1.4, V: 4}) {
		t.Errorf("second bar %v", got[1])
	}
}

func TestBarFixedWidth(t *testing.T) {
	b := Bar{XY: plotter.XYs{{X: 0, Y: 1}, {X: 10, Y: 1}}, Width: 2}
	xmin, xmax, ymin, ymax := b.DataRange()
	if xmin != -1 || xmax != 11 || ymin != 0 || ymax != 1 {
		t.Errorf("got x=[%g,%g] y=[%g,%g]", xmin, xmax, ymin, ymax)
	}
}

func TestBarUnknownPosition(t *testing.T) {
	b := Bar{XY: plotter.XYs{{X: 0, Y: 1}}, Position: "sideways"}
	if _, err := b.Rects(); err == nil {
		t.Error("missing error")
	}
	xmin, _, _, _ := b.DataRange()
	if !math.IsNaN(xmin) {
		t.Errorf("got %g, want NaN", xmin)
	}
}

func TestBarGroupsMinDelta(t *testing.T) {
	for i, tc := range []struct {
		xs   []float64
		want float64
	}{
		{nil, 0},
		{[]float64{3}, 1},
		{[]float64{1, 4, 6, 10}, 2},
		{[]float64{5, 5, 7}, 2},
	} {
		g := NewBarGroups("stack", 0, 0, true)
		for j, x := range tc.xs {
			g.Record(x, j)
		}
		if got := g.MinDelta(); got != tc.want {
			t.Errorf("%d: got %g, want %g", i, got, tc.want)
		}
	}
}

func TestStepPath(t *testing.T) {
	s := Step{XY: plotter.XYs{{X: 2, Y: 5}, {X: 0, Y: 1}, {X: 1, Y: 3}}}
	p := s.toPath()
	want := plotter.XYs{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 3}, {X: 2, Y: 3}, {X: 2, Y: 5}}
	got := p.XY.(plotter.XYs)
	if len(got) != len(want) {
		t.Fatalf("got %d points, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRuleLineRanges(t *testing.T) {
	h := HLine{Y: plotter.Values{3, -1}}
	xmin, _, ymin, ymax := h.DataRange()
	if !math.IsNaN(xmin) || ymin != -1 || ymax != 3 {
		t.Errorf("HLine: got x=%g y=[%g,%g]", xmin, ymin, ymax)
	}
	v := VLine{X: plotter.Values{7}}
	xmin, xmax, ymin, _ := v.DataRange()
	if xmin != 7 || xmax != 7 || !math.IsNaN(ymin) {
		t.Errorf("VLine: got x=[%g,%g] y=%g", xmin, xmax, ymin)
	}
}

func TestImageCrop(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 50))
	im := Image{Img: img, XMin: 0, XMax: 10, YMin: 0, YMax: 5}

	sub := im.crop(5, 10, 0, 2.5)
	if got, want := sub.Bounds(), image.Rect(50, 25, 100, 50); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got := im.crop(0, 10, 0, 5); got != image.Image(img) {
		t.Error("full crop should return the original image")
	}
}

func TestPlotIntoRestrictedAxes(t *testing.T) {
	p, err := plot.New()
	if err != nil {
		t.Fatal(err)
	}
	p.X.Min, p.X.Max = 4, 8
	p.Y.Min, p.Y.Max = 0, 10

	img := vgimg.New(vg.Points(100), vg.Points(100))
	c := draw.New(img)

	// None of them may panic when parts lie outside the axis ranges.
	ps := []plot.Plotter{
		&Rectangle{XYUV: data.XYUVs{{X: 0, Y: 0, U: 5, V: 5}, {X: 0, Y: 0, U: 1, V: 1}}},
		&Bar{XY: plotter.XYs{{X: 3, Y: 4}, {X: 6, Y: 20}}, BoxStyle: BoxStyle{Fill: color.Black}},
		&HLine{Y: plotter.Values{5}, LineStyle: draw.LineStyle{Color: color.Black, Width: 1}},
		&VLine{X: plotter.Values{2, 6}, LineStyle: draw.LineStyle{Color: color.Black, Width: 1}},
		&Text{XYText: data.XYTexts{{X: 5, Y: 5, Text: "in"}, {X: 1, Y: 5, Text: "out"}}},
		&Image{Img: image.NewRGBA(image.Rect(0, 0, 10, 10)), XMin: 0, XMax: 10, YMin: 0, YMax: 10},
	}
	for _, pl := range ps {
		pl.Plot(c, p)
	}
}

func closeXYUV(a, b data.XYUV) bool {
	eq := func(x, y float64) bool { return math.Abs(x-y) < 1e-9 }
	return eq(a.X, b.X) && eq(a.Y, b.Y) && eq(a.U, b.U) && eq(a.V, b.V)
}
