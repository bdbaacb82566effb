package brokenaxes

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// fullDemo returns a 2×2 broken axes with one of every kind of series.
func fullDemo(t *testing.T) *BrokenAxes {
	t.Helper()
	opts := DefaultOptions()
	opts.XLims = lims(0, 1, 2, 3)
	opts.YLims = lims(0, 1, 2, 3)
	b := mustNew(t, opts)

	var xs, ys []float64
	for i := 0; i <= 60; i++ {
		x := float64(i) / 20
		xs, ys = append(xs, x), append(ys, x*x/3)
	}
	steps := []struct {
		name string
		args []interface{}
	}{
		{"plot", []interface{}{xs, ys, Kwargs{"label": "square"}}},
		{"step", []interface{}{xs, ys}},
		{"scatter", []interface{}{[]float64{0.5, 2.5}, []float64{0.5, 2.5}, Kwargs{"label": "points"}}},
		{"bar", []interface{}{[]float64{0.25, 2.25}, []float64{0.5, 2.5}, Kwargs{"width": 0.1}}},
		{"hist", []interface{}{ys, Kwargs{"bins": 6}}},
		{"fill_between", []interface{}{xs, ys, 0.0}},
		{"errorbar", []interface{}{[]float64{0.7}, []float64{0.3}, Kwargs{"xerr": []float64{0.1}, "yerr": []float64{0.1}}}},
		{"axhline", []interface{}{2.5}},
		{"axvline", []interface{}{0.2}},
		{"text", []interface{}{2.1, 2.9, "note"}},
		{"imshow", []interface{}{image.NewRGBA(image.Rect(0, 0, 3, 3)), Kwargs{"extent": []float64{0.1, 0.3, 0.1, 0.3}}}},
		{"grid", nil},
		{"set_title", []interface{}{"Broken"}},
		{"set_xlabel", []interface{}{"x"}},
		{"set_ylabel", []interface{}{"y"}},
		{"legend", []interface{}{Kwargs{"loc": "lower right"}}},
	}
	for _, c := range steps {
		if _, err := b.Call(c.name, c.args...); err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
	}
	return b
}

func isWhite(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r == 0xffff && g == 0xffff && b == 0xffff
}

func TestDrawLeavesGapsEmpty(t *testing.T) {
	b := fullDemo(t)
	// At 72 dpi one pixel is one point.
	img := vgimg.NewWith(vgimg.UseWH(vg.Points(400), vg.Points(300)), vgimg.UseDPI(72))
	dc := draw.New(img)
	if err := b.Draw(dc); err != nil {
		t.Fatal(err)
	}
	if bounds := img.Image().Bounds(); bounds.Dx() != 400 || bounds.Dy() != 300 {
		t.Fatalf("image bounds %v", bounds)
	}
	if len(b.DiagHandles()) != 4 {
		t.Errorf("got %d break marks", len(b.DiagHandles()))
	}

	// The pixel in the middle of the vertical gap.
	left, right := b.At(0, 0).Canvas, b.At(0, 1).Canvas
	x := (left.Max.X + right.Min.X) / 2
	y := (left.Min.Y + left.Max.Y) / 2
	px := img.Image().At(int(math.Round(float64(x))), int(math.Round(300-float64(y))))
	if !isWhite(px) {
		t.Errorf("gap pixel at (%v,%v) is %v", x, y, px)
	}

	// Drawing again reuses the layout.
	region := b.Region()
	if err := b.Draw(dc); err != nil {
		t.Fatal(err)
	}
	if b.Region().Composite != region.Composite {
		t.Error("second draw changed the layout")
	}
}

func TestDrawTiles(t *testing.T) {
	b1 := fullDemo(t)
	b2 := xBroken(t, 0, 1, 2, 3)
	tiles := draw.Tiles{Rows: 1, Cols: 3, PadX: vg.Points(10)}
	img := vgimg.New(vg.Points(600), vg.Points(200))
	dc := draw.New(img)
	err := DrawTiles([][]*BrokenAxes{{b1, nil, b2}}, tiles, dc)
	if err != nil {
		t.Fatal(err)
	}
	r1, r2 := b1.Region().Figure, b2.Region().Figure
	if r1.Max.X > r2.Min.X {
		t.Errorf("tiles overlap: %v and %v", r1, r2)
	}
	if w := r1.Max.X - r1.Min.X; w > vg.Points(200) {
		t.Errorf("tile too wide: %v", w)
	}
}

func TestSecondaryAxesStack(t *testing.T) {
	b := xBroken(t, 0, 10, 20, 30)
	c := testCanvas(vg.Points(400), vg.Points(300))
	plain := b.Layout(c).Composite

	double := func(x float64) float64 { return 2 * x }
	half := func(x float64) float64 { return x / 2 }
	s1, err := b.SecondaryXAxis("bottom", double, half, "double")
	if err != nil {
		t.Fatal(err)
	}
	s2, err := b.SecondaryXAxis("bottom", half, double, "")
	if err != nil {
		t.Fatal(err)
	}
	top, err := b.SecondaryXAxis("top", double, half, "")
	if err != nil {
		t.Fatal(err)
	}
	comp := b.Layout(c).Composite
	if !(s1.offset > 0 && s2.offset > s1.offset) {
		t.Errorf("bottom offsets %v and %v", s1.offset, s2.offset)
	}
	if top.offset != 0 {
		t.Errorf("top offset %v", top.offset)
	}
	if !(comp.Min.Y > plain.Min.Y) || !(comp.Max.Y < plain.Max.Y) {
		t.Errorf("composite %v did not shrink from %v", comp, plain)
	}
	if ticks := s1.ticks(b.At(0, 1)); len(ticks) == 0 {
		t.Error("no secondary ticks in right cell")
	} else if v := ticks[0].tick.Value; v < 40 || v > 60 {
		t.Errorf("first secondary tick %g outside doubled range", v)
	}
	if err := b.Draw(c); err != nil {
		t.Fatal(err)
	}

	var ce *ConfigurationError
	if _, err := b.SecondaryYAxis("top", double, half, ""); !errors.As(err, &ce) {
		t.Errorf("got %v, want ConfigurationError", err)
	}
	if _, err := b.SecondaryYAxis("right", nil, half, ""); !errors.As(err, &ce) {
		t.Errorf("got %v, want ConfigurationError", err)
	}
}

func TestLegendBestAvoidsData(t *testing.T) {
	opts := DefaultOptions()
	opts.XLims = lims(0, 1, 2, 3)
	opts.YLims = lims(0, 1)
	b := mustNew(t, opts)
	if _, err := b.Scatter("crowd", xys(2.9, 0.95, 2.8, 0.9, 2.95, 0.85)); err != nil {
		t.Fatal(err)
	}
	l := b.Legend(Best)
	b.Layout(testCanvas(vg.Points(400), vg.Points(300)))
	if loc := l.best(b, b.Overlay.Rect); loc != UpperLeft {
		t.Errorf("best location %v, want upper left", loc)
	}

	l.Loc = LegendLoc(42)
	if err := b.Draw(testCanvas(vg.Points(400), vg.Points(300))); err == nil {
		t.Error("missing error for invalid legend location")
	}
}

func TestLegendBoxes(t *testing.T) {
	b := mustNew(t, DefaultOptions())
	l := b.Legend(Best)
	l.Add("entry")
	r := vg.Rectangle{Max: vg.Point{X: 100, Y: 100}}
	p := float64(l.Padding)
	near := func(a vg.Length, b float64) bool { return math.Abs(float64(a)-b) < 1e-9 }
	for loc, want := range map[LegendLoc]func(vg.Rectangle) bool{
		UpperRight:  func(bx vg.Rectangle) bool { return near(bx.Max.X, 100-p) && near(bx.Max.Y, 100-p) },
		LowerLeft:   func(bx vg.Rectangle) bool { return near(bx.Min.X, p) && near(bx.Min.Y, p) },
		Center:      func(bx vg.Rectangle) bool { return near(bx.Min.X+bx.Max.X, 100) && near(bx.Min.Y+bx.Max.Y, 100) },
		CenterRight: func(bx vg.Rectangle) bool { return near(bx.Max.X, 100-p) && near(bx.Min.Y+bx.Max.Y, 100) },
		RightLoc:    func(bx vg.Rectangle) bool { return near(bx.Max.X, 100-p) && near(bx.Min.Y+bx.Max.Y, 100) },
	} {
		if bx := l.box(loc, r); !want(bx) {
			t.Errorf("%v: box %v", loc, bx)
		}
	}
	for name, want := range map[string]LegendLoc{"Upper Center": UpperCenter, "right": RightLoc, "center right": CenterRight} {
		if loc, err := ParseLegendLoc(name); err != nil || loc != want {
			t.Errorf("%q: got %v, %v", name, loc, err)
		}
	}
	if RightLoc.String() != "right" || int(RightLoc) != 5 {
		t.Errorf("right location is %v (%d)", RightLoc, int(RightLoc))
	}
}
