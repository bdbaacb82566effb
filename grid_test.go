package brokenaxes

import (
	"errors"
	"math"
	"strconv"
	"testing"
	"time"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

func testCanvas(w, h vg.Length) draw.Canvas {
	return draw.New(vgimg.New(w, h))
}

func lims(vs ...float64) []Interval {
	var ivs []Interval
	for i := 0; i+1 < len(vs); i += 2 {
		ivs = append(ivs, Interval{vs[i], vs[i+1]})
	}
	return ivs
}

func mustNew(t *testing.T, opts Options) *BrokenAxes {
	t.Helper()
	b, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return b
}

func width(c *Cell) float64  { return float64(c.Canvas.Max.X - c.Canvas.Min.X) }
func height(c *Cell) float64 { return float64(c.Canvas.Max.Y - c.Canvas.Min.Y) }

func TestGridCellCount(t *testing.T) {
	for _, tc := range []struct{ nx, ny int }{
		{1, 1}, {2, 1}, {1, 3}, {3, 2}, {4, 4},
	} {
		t.Run(strconv.Itoa(tc.nx)+"x"+strconv.Itoa(tc.ny), func(t *testing.T) {
			opts := DefaultOptions()
			for i := 0; i < tc.nx; i++ {
				opts.XLims = append(opts.XLims, Interval{float64(10 * i), float64(10*i + 5)})
			}
			for i := 0; i < tc.ny; i++ {
				opts.YLims = append(opts.YLims, Interval{float64(10 * i), float64(10*i + 5)})
			}
			b := mustNew(t, opts)
			if b.Rows() != tc.ny || b.Cols() != tc.nx || len(b.Cells()) != tc.nx*tc.ny {
				t.Errorf("got %d rows, %d cols, %d cells", b.Rows(), b.Cols(), len(b.Cells()))
			}
			for _, c := range b.Cells() {
				if got := b.Cell(c.XIndex, c.YIndex); got != c {
					t.Errorf("Cell(%d,%d) is not the cell at (%d,%d)", c.XIndex, c.YIndex, c.Row, c.Col)
				}
				if want := b.Y.Intervals[c.YIndex]; !c.YLim().Equal(want) {
					t.Errorf("cell (%d,%d) ylim %v, want %v", c.Row, c.Col, c.YLim(), want)
				}
			}
		})
	}
}

func TestWidthRatios(t *testing.T) {
	for _, tc := range []struct {
		name  string
		kind  ScaleKind
		xlims []Interval
		want  float64 // width of second over first cell
	}{
		{"linear", Linear, lims(0, 1, 4, 8), 4},
		{"log", Log, lims(1, 10, 100, 10000), 2},
		{"symlog", SymLog, lims(-1, 1, 10, 100), 0.5},
	} {
		t.Run(tc.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.XLims, opts.XScale = tc.xlims, tc.kind
			b := mustNew(t, opts)
			b.Layout(testCanvas(vg.Points(500), vg.Points(300)))
			got := width(b.At(0, 1)) / width(b.At(0, 0))
			if math.Abs(got-tc.want) > 1e-6 {
				t.Errorf("width ratio %g, want %g", got, tc.want)
			}
		})
	}
}

func TestExplicitRatios(t *testing.T) {
	opts := DefaultOptions()
	opts.XLims = lims(0, 1, 4, 8)
	opts.WidthRatios = []float64{1, 1}
	opts.YLims = lims(0, 1, 10, 30)
	b := mustNew(t, opts)
	b.Layout(testCanvas(vg.Points(500), vg.Points(300)))
	if got := width(b.At(0, 1)) / width(b.At(0, 0)); math.Abs(got-1) > 1e-6 {
		t.Errorf("width ratio %g, want 1", got)
	}
	// The top row shows the last y interval.
	if got := height(b.At(0, 0)) / height(b.At(1, 0)); math.Abs(got-20) > 1e-6 {
		t.Errorf("height ratio %g, want 20", got)
	}
	if !b.At(0, 0).YLim().Equal(Interval{10, 30}) {
		t.Errorf("top row ylim %v", b.At(0, 0).YLim())
	}
}

func TestGridSizes(t *testing.T) {
	sizes, gap := gridSizes(100, []float64{1, 3}, 0.5)
	// avg = 100/(2+0.5) = 40
	if !equal64(float64(sizes[0]), 20) || !equal64(float64(sizes[1]), 60) || !equal64(float64(gap), 20) {
		t.Errorf("got %v gap %v", sizes, gap)
	}
	if sum := sizes[0] + sizes[1] + gap; !equal64(float64(sum), 100) {
		t.Errorf("sum %v, want 100", sum)
	}
}

func TestSpinesAndTickLabels(t *testing.T) {
	opts := DefaultOptions()
	opts.XLims = lims(0, 1, 2, 3)
	opts.YLims = lims(0, 1, 2, 3)
	b := mustNew(t, opts)

	type vis struct {
		bottom, left, top, right bool
		xlabels, ylabels         bool
	}
	check := func(name string, b *BrokenAxes, want map[[2]int]vis) {
		for pos, w := range want {
			c := b.At(pos[0], pos[1])
			got := vis{
				c.Spines[Bottom].Visible, c.Spines[Left].Visible,
				c.Spines[Top].Visible, c.Spines[Right].Visible,
				c.XTickLabels, c.YTickLabels,
			}
			if got != w {
				t.Errorf("%s: cell %v got %+v, want %+v", name, pos, got, w)
			}
		}
	}
	check("despine", b, map[[2]int]vis{
		{0, 0}: {false, true, false, false, false, true},
		{0, 1}: {false, false, false, false, false, false},
		{1, 0}: {true, true, false, false, true, true},
		{1, 1}: {true, false, false, false, true, false},
	})

	opts.Despine = false
	b = mustNew(t, opts)
	check("full", b, map[[2]int]vis{
		{0, 0}: {false, true, true, false, false, true},
		{0, 1}: {false, false, true, true, false, false},
		{1, 1}: {true, false, false, true, true, false},
	})
	if n := len(b.Spines(Right)); n != 2 {
		t.Errorf("got %d right spines, want 2", n)
	}
}

func TestConfigurationErrors(t *testing.T) {
	for _, tc := range []struct {
		name  string
		opts  Options
		axis  string
		index int
	}{
		{"log non-positive", Options{XLims: lims(0, 1, 2, 3), XScale: Log}, "x", 0},
		{"zero span", Options{YLims: lims(0, 1, 2, 2)}, "y", 1},
		{"negative span", Options{XLims: lims(3, 1)}, "x", 0},
		{"nan", Options{XLims: lims(nan, 1)}, "x", 0},
		{"ratio count", Options{XLims: lims(0, 1, 2, 3), WidthRatios: []float64{1}}, "x", -1},
		{"ratio sign", Options{YLims: lims(0, 1, 2, 3), HeightRatios: []float64{1, -1}}, "y", 1},
		{"spacing", Options{WSpace: -0.1}, "", -1},
		{"scale kind", Options{XScale: ScaleKind(17)}, "x", -1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.opts)
			var ce *ConfigurationError
			if !errors.As(err, &ce) {
				t.Fatalf("got %v, want ConfigurationError", err)
			}
			if ce.Axis != tc.axis || ce.Index != tc.index {
				t.Errorf("got axis %q index %d, want %q %d", ce.Axis, ce.Index, tc.axis, tc.index)
			}
		})
	}
}

func TestOverlappingIntervalsAccepted(t *testing.T) {
	opts := DefaultOptions()
	opts.XLims = lims(0, 5, 3, 8)
	if _, err := New(opts); err != nil {
		t.Errorf("overlapping intervals rejected: %v", err)
	}
	if !overlapping(opts.XLims) || overlapping(lims(0, 1, 1, 2)) {
		t.Error("wrong overlap detection")
	}
}

func TestBreakMarks(t *testing.T) {
	for _, tc := range []struct {
		name    string
		x, y    []Interval
		despine bool
		want    int
	}{
		{"2x2 despined", lims(0, 1, 2, 3), lims(0, 1, 2, 3), true, 4},
		{"2x2 full", lims(0, 1, 2, 3), lims(0, 1, 2, 3), false, 8},
		{"x break despined", lims(0, 1, 2, 3), nil, true, 2},
		{"x break full", lims(0, 1, 2, 3), nil, false, 4},
		{"y break", nil, lims(0, 1, 2, 3, 4, 5), true, 4},
		{"unbroken", nil, nil, false, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.XLims, opts.YLims, opts.Despine = tc.x, tc.y, tc.despine
			b := mustNew(t, opts)
			c := testCanvas(vg.Points(400), vg.Points(300))
			b.Layout(c)
			if got := len(b.DiagHandles()); got != tc.want {
				t.Fatalf("got %d marks, want %d", got, tc.want)
			}
			// Repeated layouts and draws never accumulate marks.
			b.Layout(c)
			b.Layout(testCanvas(vg.Points(600), vg.Points(200)))
			if err := b.Draw(c); err != nil {
				t.Fatal(err)
			}
			if got := len(b.DiagHandles()); got != tc.want {
				t.Errorf("after relayout got %d marks, want %d", got, tc.want)
			}
		})
	}
}

func TestBreakMarkGeometry(t *testing.T) {
	opts := DefaultOptions()
	opts.XLims = lims(0, 1, 2, 3)
	opts.D = vg.Points(10)
	b := mustNew(t, opts)
	b.Layout(testCanvas(vg.Points(400), vg.Points(300)))
	marks := b.DrawDiags(0, 30)
	if len(marks) != 2 {
		t.Fatalf("got %d marks", len(marks))
	}
	first := b.At(0, 0)
	m := marks[0]
	if m.Cell != first || m.At.X != first.Canvas.Max.X || m.At.Y != first.Canvas.Min.Y {
		t.Errorf("first mark at %v in cell (%d,%d)", m.At, m.Cell.Row, m.Cell.Col)
	}
	dx, dy := float64(m.To.X-m.At.X), float64(m.To.Y-m.At.Y)
	if !equal64(dx, 10*math.Sqrt(3)/2) || !equal64(dy, 5) {
		t.Errorf("got half stroke (%g,%g)", dx, dy)
	}

	b.RemoveDiags()
	if len(b.DiagHandles()) != 0 {
		t.Error("marks not removed")
	}
	b.Layout(testCanvas(vg.Points(400), vg.Points(300)))
	if len(b.DiagHandles()) != 0 {
		t.Error("removed marks came back")
	}
}

func TestLayoutRegion(t *testing.T) {
	opts := DefaultOptions()
	opts.XLims = lims(0, 1, 2, 3)
	opts.YLims = lims(0, 1, 2, 3)
	b := mustNew(t, opts)
	b.SetXLabel("x", 0)
	b.SetTitle("title")
	c := testCanvas(vg.Points(400), vg.Points(300))
	r := b.Layout(c)

	if r.Figure != c.Rectangle {
		t.Errorf("figure %v, want %v", r.Figure, c.Rectangle)
	}
	if b.Overlay.Rect != r.Composite {
		t.Errorf("overlay %v, composite %v", b.Overlay.Rect, r.Composite)
	}
	if top := b.At(0, 0).Canvas.Max.Y; top != r.Composite.Max.Y {
		t.Errorf("top cell ends at %v, composite at %v", top, r.Composite.Max.Y)
	}
	if bl := b.At(1, 0).Canvas.Min; bl.X != r.Composite.Min.X || !equal64(float64(bl.Y), float64(r.Composite.Min.Y)) {
		t.Errorf("bottom left cell at %v, composite at %v", bl, r.Composite.Min)
	}
	if right := b.At(1, 1).Canvas.Max.X; !equal64(float64(right), float64(r.Composite.Max.X)) {
		t.Errorf("right cell ends at %v, composite at %v", right, r.Composite.Max.X)
	}
	// The title and the axis labels need room outside the composite.
	if r.Composite.Min.Y-c.Min.Y < b.Overlay.XLabel.Padding {
		t.Errorf("no room for x label: %v", r.Composite.Min.Y-c.Min.Y)
	}
	if r.Composite.Max.Y >= c.Max.Y {
		t.Errorf("no room for title")
	}
}

func TestStandardizeTicks(t *testing.T) {
	opts := DefaultOptions()
	opts.XLims = lims(0, 1, 10, 30)
	b := mustNew(t, opts)

	m0 := b.At(0, 0).Axes.X.Tick.Marker
	m1 := b.At(0, 1).Axes.X.Tick.Marker
	mt0, ok0 := m0.(MultipleTicks)
	mt1, ok1 := m1.(MultipleTicks)
	if !ok0 || !ok1 || mt0 != mt1 {
		t.Fatalf("cells use different tickers %#v and %#v", m0, m1)
	}
	step1, _ := autoStep(b.X, Interval{10, 30})
	if mt0.Base < step1 {
		t.Errorf("base %g smaller than step %g of wide cell", mt0.Base, step1)
	}

	b.StandardizeTicks(5, 0)
	if got := b.At(0, 0).Axes.X.Tick.Marker; got != (MultipleTicks{Base: 5}) {
		t.Errorf("got %#v", got)
	}
}

func TestLogTicksNotStandardized(t *testing.T) {
	opts := DefaultOptions()
	opts.YLims = lims(1, 10, 1000, 1e5)
	opts.YScale = Log
	b := mustNew(t, opts)
	for _, c := range b.Cells() {
		if _, ok := c.Axes.Y.Tick.Marker.(MultipleTicks); ok {
			t.Errorf("log axis uses multiple ticks")
		}
	}
}

func TestAutoscaleFromData(t *testing.T) {
	opts := DefaultOptions()
	opts.XLims = lims(0, 1, 4, 8)
	b := mustNew(t, opts)
	if _, err := b.Call("plot", []float64{0, 1, 4, 8}, []float64{10, 20, 30, 40}); err != nil {
		t.Fatal(err)
	}
	b.Layout(testCanvas(vg.Points(400), vg.Points(300)))
	ylim := b.At(0, 0).YLim()
	if !equal64(ylim.Min, 8.5) || !equal64(ylim.Max, 41.5) {
		t.Errorf("autoscaled y %v, want [8.5:41.5]", ylim)
	}
	if !b.At(0, 1).YLim().Equal(ylim) {
		t.Errorf("cells disagree on y limits")
	}
}

var dateTickTests = []struct {
	from, to time.Time
	format   string
}{
	{time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2020, 1, 3, 0, 0, 0, 0, time.UTC), ""},
	{time.Date(2020, 1, 1, 8, 0, 0, 0, time.UTC), time.Date(2020, 1, 1, 8, 10, 0, 0, time.UTC), ""},
	{time.Date(2020, 1, 1, 8, 0, 0, 0, time.UTC), time.Date(2020, 1, 1, 8, 0, 30, 0, time.UTC), ""},
	{time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC), ""},
	{time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2020, 1, 3, 0, 0, 0, 0, time.UTC), "Jan 02 15h"},
}

func TestDateTickLabelsDistinct(t *testing.T) {
	for i, tc := range dateTickTests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			opts := DefaultOptions()
			opts.XScale = Date
			opts.XTimeFormat = tc.format
			opts.XLims = []Interval{
				TimeInterval(tc.from, tc.to),
				TimeInterval(tc.to.Add(tc.to.Sub(tc.from)), tc.to.Add(2*tc.to.Sub(tc.from))),
			}
			b := mustNew(t, opts)
			b.Layout(testCanvas(vg.Points(600), vg.Points(200)))
			for _, c := range b.LastRow() {
				seen := make(map[string]bool)
				n := 0
				for _, tk := range visibleTicks(c.Axes.X.Tick.Marker, c.XLim()) {
					if tk.IsMinor() {
						continue
					}
					if seen[tk.Label] {
						t.Errorf("cell %d: duplicate label %q", c.Col, tk.Label)
					}
					seen[tk.Label] = true
					n++
				}
				if n < 2 {
					t.Errorf("cell %d: only %d labelled ticks", c.Col, n)
				}
			}
		})
	}
}
