package brokenaxes

import (
	"fmt"
	"image"
	"sort"

	"github.com/vdobler/brokenaxes/data"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Kwargs are the named arguments of a Call. If present they are the last
// argument.
type Kwargs map[string]interface{}

type callFunc func(b *BrokenAxes, args []interface{}, kw Kwargs) (interface{}, error)

// calls maps operation names to their implementation. The names follow
// the per axes drawing operations of matplotlib.
var calls map[string]callFunc

func init() {
	calls = map[string]callFunc{
		"plot":              callLine,
		"line":              callLine,
		"step":              callStep,
		"scatter":           callScatter,
		"bar":               callBar,
		"hist":              callHist,
		"fill_between":      callFillBetween,
		"errorbar":          callErrorBar,
		"axhline":           callHLine,
		"hline":             callHLine,
		"axvline":           callVLine,
		"vline":             callVLine,
		"segments":          callSegments,
		"text":              callText,
		"imshow":            callImShow,
		"grid":              callGrid,
		"legend":            callLegend,
		"set_title":         callTitle,
		"set_xlabel":        callXLabel,
		"set_ylabel":        callYLabel,
		"set":               callSet,
		"draw_diags":        callDrawDiags,
		"standardize_ticks": callStandardizeTicks,
		"secondary_xaxis":   callSecondaryX,
		"secondary_yaxis":   callSecondaryY,
	}
}

// Operations returns the names known to Call in lexical order.
func Operations() []string {
	names := make([]string, 0, len(calls))
	for n := range calls {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Call forwards the operation name with positional args. A trailing
// Kwargs (or map[string]interface{}) holds named arguments like "label",
// "bins" or "loc". Numeric arguments may be float64, int, []float64,
// []int or plotter.Values; "plot" also accepts a single plotter.XYer.
// The result is what the matching method returns.
//
// An unknown name fails with an UnsupportedOperationError.
func (b *BrokenAxes) Call(name string, args ...interface{}) (interface{}, error) {
	f, ok := calls[name]
	if !ok {
		return nil, &UnsupportedOperationError{Op: name}
	}
	kw := Kwargs{}
	if n := len(args); n > 0 {
		switch m := args[n-1].(type) {
		case Kwargs:
			kw, args = m, args[:n-1]
		case map[string]interface{}:
			kw, args = Kwargs(m), args[:n-1]
		}
	}
	res, err := f(b, args, kw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return res, nil
}

func (kw Kwargs) label() (string, error) {
	v, ok := kw["label"]
	if !ok {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("label: want string, got %T", v)
	}
	return s, nil
}

func (kw Kwargs) float(key string, def float64) (float64, error) {
	v, ok := kw[key]
	if !ok {
		return def, nil
	}
	return toFloat(v)
}

func (kw Kwargs) floats(key string) ([]float64, error) {
	v, ok := kw[key]
	if !ok {
		return nil, nil
	}
	return toFloats(v)
}

func (kw Kwargs) str(key, def string) (string, error) {
	v, ok := kw[key]
	if !ok {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s: want string, got %T", key, v)
	}
	return s, nil
}

func toFloat(v interface{}) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case vg.Length:
		return float64(x), nil
	}
	return 0, fmt.Errorf("want number, got %T", v)
}

func toFloats(v interface{}) ([]float64, error) {
	switch x := v.(type) {
	case []float64:
		return x, nil
	case plotter.Values:
		return x, nil
	case []int:
		fs := make([]float64, len(x))
		for i, n := range x {
			fs[i] = float64(n)
		}
		return fs, nil
	case []interface{}:
		fs := make([]float64, len(x))
		for i, e := range x {
			f, err := toFloat(e)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			fs[i] = f
		}
		return fs, nil
	}
	f, err := toFloat(v)
	if err != nil {
		return nil, fmt.Errorf("want numbers, got %T", v)
	}
	return []float64{f}, nil
}

// positional converts the first n args to float slices.
func positional(args []interface{}, n int) ([][]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("want %d positional arguments, got %d", n, len(args))
	}
	out := make([][]float64, n)
	for i, a := range args {
		fs, err := toFloats(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		out[i] = fs
	}
	return out, nil
}

func xysOf(args []interface{}) (plotter.XYer, error) {
	if len(args) == 1 {
		if xy, ok := args[0].(plotter.XYer); ok {
			return xy, nil
		}
	}
	vs, err := positional(args, 2)
	if err != nil {
		return nil, err
	}
	xs, ys := vs[0], vs[1]
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%d x but %d y values", len(xs), len(ys))
	}
	xys := make(plotter.XYs, len(xs))
	for i := range xs {
		xys[i].X, xys[i].Y = xs[i], ys[i]
	}
	return xys, nil
}

func callLine(b *BrokenAxes, args []interface{}, kw Kwargs) (interface{}, error) {
	xys, err := xysOf(args)
	if err != nil {
		return nil, err
	}
	label, err := kw.label()
	if err != nil {
		return nil, err
	}
	return b.Line(label, xys)
}

func callStep(b *BrokenAxes, args []interface{}, kw Kwargs) (interface{}, error) {
	xys, err := xysOf(args)
	if err != nil {
		return nil, err
	}
	label, err := kw.label()
	if err != nil {
		return nil, err
	}
	return b.Step(label, xys)
}

func callScatter(b *BrokenAxes, args []interface{}, kw Kwargs) (interface{}, error) {
	xys, err := xysOf(args)
	if err != nil {
		return nil, err
	}
	label, err := kw.label()
	if err != nil {
		return nil, err
	}
	return b.Scatter(label, xys)
}

func callBar(b *BrokenAxes, args []interface{}, kw Kwargs) (interface{}, error) {
	vs, err := positional(args, 2)
	if err != nil {
		return nil, err
	}
	label, err := kw.label()
	if err != nil {
		return nil, err
	}
	width, err := kw.float("width", 0)
	if err != nil {
		return nil, err
	}
	return b.Bar(label, vs[0], vs[1], width)
}

func callHist(b *BrokenAxes, args []interface{}, kw Kwargs) (interface{}, error) {
	vs, err := positional(args, 1)
	if err != nil {
		return nil, err
	}
	label, err := kw.label()
	if err != nil {
		return nil, err
	}
	bins, err := kw.float("bins", 10)
	if err != nil {
		return nil, err
	}
	opts := HistOptions{Bins: int(bins)}
	if d, ok := kw["density"].(bool); ok {
		opts.Density = d
	}
	r, err := kw.floats("range")
	if err != nil {
		return nil, err
	}
	if r != nil {
		if len(r) != 2 {
			return nil, fmt.Errorf("range: want 2 values, got %d", len(r))
		}
		opts.Range = &Interval{r[0], r[1]}
	}
	return b.Hist(label, vs[0], opts)
}

func callFillBetween(b *BrokenAxes, args []interface{}, kw Kwargs) (interface{}, error) {
	if len(args) == 2 {
		args = append(args, 0.0)
	}
	if len(args) != 3 {
		return nil, fmt.Errorf("want x, y1 and optional y2, got %d arguments", len(args))
	}
	xs, err := toFloats(args[0])
	if err != nil {
		return nil, err
	}
	y1, err := toFloats(args[1])
	if err != nil {
		return nil, err
	}
	y2, err := toFloats(args[2])
	if err != nil {
		return nil, err
	}
	if len(y2) == 1 && len(xs) != 1 {
		// A scalar y2 is a constant base line.
		c := y2[0]
		y2 = make([]float64, len(xs))
		for i := range y2 {
			y2[i] = c
		}
	}
	label, err := kw.label()
	if err != nil {
		return nil, err
	}
	return b.FillBetween(label, xs, y1, y2)
}

func callErrorBar(b *BrokenAxes, args []interface{}, kw Kwargs) (interface{}, error) {
	xys, err := xysOf(args)
	if err != nil {
		return nil, err
	}
	label, err := kw.label()
	if err != nil {
		return nil, err
	}
	xerr, err := kw.floats("xerr")
	if err != nil {
		return nil, err
	}
	yerr, err := kw.floats("yerr")
	if err != nil {
		return nil, err
	}
	return b.ErrorBar(label, xys, xerr, yerr)
}

func rulePositions(args []interface{}) ([]float64, error) {
	var vs []float64
	for i, a := range args {
		fs, err := toFloats(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		vs = append(vs, fs...)
	}
	if len(vs) == 0 {
		vs = []float64{0}
	}
	return vs, nil
}

func callHLine(b *BrokenAxes, args []interface{}, kw Kwargs) (interface{}, error) {
	ys, err := rulePositions(args)
	if err != nil {
		return nil, err
	}
	label, err := kw.label()
	if err != nil {
		return nil, err
	}
	return b.HLine(label, ys...)
}

func callVLine(b *BrokenAxes, args []interface{}, kw Kwargs) (interface{}, error) {
	xs, err := rulePositions(args)
	if err != nil {
		return nil, err
	}
	label, err := kw.label()
	if err != nil {
		return nil, err
	}
	return b.VLine(label, xs...)
}

func callSegments(b *BrokenAxes, args []interface{}, kw Kwargs) (interface{}, error) {
	vs, err := positional(args, 4)
	if err != nil {
		return nil, err
	}
	n := len(vs[0])
	for _, v := range vs[1:] {
		if len(v) != n {
			return nil, fmt.Errorf("coordinate lengths differ")
		}
	}
	segs := make(data.XYUVs, n)
	for i := range segs {
		segs[i] = data.XYUV{X: vs[0][i], Y: vs[1][i], U: vs[2][i], V: vs[3][i]}
	}
	label, err := kw.label()
	if err != nil {
		return nil, err
	}
	return b.Segments(label, segs)
}

func callText(b *BrokenAxes, args []interface{}, kw Kwargs) (interface{}, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("want x, y and text, got %d arguments", len(args))
	}
	x, err := toFloat(args[0])
	if err != nil {
		return nil, err
	}
	y, err := toFloat(args[1])
	if err != nil {
		return nil, err
	}
	s, ok := args[2].(string)
	if !ok {
		return nil, fmt.Errorf("text: want string, got %T", args[2])
	}
	return b.Text(x, y, s)
}

func callImShow(b *BrokenAxes, args []interface{}, kw Kwargs) (interface{}, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("want an image, got %d arguments", len(args))
	}
	img, ok := args[0].(image.Image)
	if !ok {
		return nil, fmt.Errorf("want image.Image, got %T", args[0])
	}
	ext, err := kw.floats("extent")
	if err != nil {
		return nil, err
	}
	var x, y Interval
	if ext != nil {
		if len(ext) != 4 {
			return nil, fmt.Errorf("extent: want 4 values, got %d", len(ext))
		}
		x, y = Interval{ext[0], ext[1]}, Interval{ext[2], ext[3]}
	}
	return b.ImShow(img, x, y)
}

func callGrid(b *BrokenAxes, args []interface{}, kw Kwargs) (interface{}, error) {
	axis, err := kw.str("axis", "both")
	if err != nil {
		return nil, err
	}
	if len(args) == 1 {
		if s, ok := args[0].(string); ok {
			axis = s
		}
	}
	return b.Grid(axis)
}

func callLegend(b *BrokenAxes, args []interface{}, kw Kwargs) (interface{}, error) {
	loc := Best
	v, ok := kw["loc"]
	if !ok && len(args) == 1 {
		v, ok = args[0], true
	}
	if ok {
		switch l := v.(type) {
		case string:
			var err error
			if loc, err = ParseLegendLoc(l); err != nil {
				return nil, err
			}
		case int:
			loc = LegendLoc(l)
		case LegendLoc:
			loc = l
		default:
			return nil, fmt.Errorf("loc: want string or int, got %T", v)
		}
	}
	if loc < Best || loc > Center {
		return nil, &UnsupportedOperationError{Op: "legend " + loc.String()}
	}
	return b.Legend(loc), nil
}

func textArg(args []interface{}, kw Kwargs) (string, vg.Length, error) {
	if len(args) != 1 {
		return "", 0, fmt.Errorf("want one text, got %d arguments", len(args))
	}
	s, ok := args[0].(string)
	if !ok {
		return "", 0, fmt.Errorf("want string, got %T", args[0])
	}
	pad, err := kw.float("labelpad", 0)
	if err != nil {
		return "", 0, err
	}
	return s, vg.Length(pad), nil
}

func callTitle(b *BrokenAxes, args []interface{}, kw Kwargs) (interface{}, error) {
	s, pad, err := textArg(args, kw)
	if err != nil {
		return nil, err
	}
	b.SetTitle(s)
	if pad > 0 {
		b.Overlay.Title.Padding = pad
	}
	return &b.Overlay.Title, nil
}

func callXLabel(b *BrokenAxes, args []interface{}, kw Kwargs) (interface{}, error) {
	s, pad, err := textArg(args, kw)
	if err != nil {
		return nil, err
	}
	b.SetXLabel(s, pad)
	return &b.Overlay.XLabel, nil
}

func callYLabel(b *BrokenAxes, args []interface{}, kw Kwargs) (interface{}, error) {
	s, pad, err := textArg(args, kw)
	if err != nil {
		return nil, err
	}
	b.SetYLabel(s, pad)
	return &b.Overlay.YLabel, nil
}

func callSet(b *BrokenAxes, args []interface{}, kw Kwargs) (interface{}, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("want only named arguments, got %d positional", len(args))
	}
	return nil, b.Apply(kw)
}

func callDrawDiags(b *BrokenAxes, args []interface{}, kw Kwargs) (interface{}, error) {
	d, err := kw.float("d", 0)
	if err != nil {
		return nil, err
	}
	tilt, err := kw.float("tilt", 0)
	if err != nil {
		return nil, err
	}
	return b.DrawDiags(vg.Length(d), tilt), nil
}

func callStandardizeTicks(b *BrokenAxes, args []interface{}, kw Kwargs) (interface{}, error) {
	xbase, err := kw.float("xbase", 0)
	if err != nil {
		return nil, err
	}
	ybase, err := kw.float("ybase", 0)
	if err != nil {
		return nil, err
	}
	b.StandardizeTicks(xbase, ybase)
	return nil, nil
}

func secondaryArgs(args []interface{}, kw Kwargs, def string) (string, func(float64) float64, func(float64) float64, string, error) {
	loc := def
	if len(args) > 0 {
		s, ok := args[0].(string)
		if !ok {
			return "", nil, nil, "", fmt.Errorf("location: want string, got %T", args[0])
		}
		loc = s
	}
	f, _ := kw["functions"].([2]func(float64) float64)
	if f[0] == nil || f[1] == nil {
		return "", nil, nil, "", fmt.Errorf("functions: want [2]func(float64) float64")
	}
	label, err := kw.label()
	return loc, f[0], f[1], label, err
}

func callSecondaryX(b *BrokenAxes, args []interface{}, kw Kwargs) (interface{}, error) {
	loc, fwd, inv, label, err := secondaryArgs(args, kw, "top")
	if err != nil {
		return nil, err
	}
	return b.SecondaryXAxis(loc, fwd, inv, label)
}

func callSecondaryY(b *BrokenAxes, args []interface{}, kw Kwargs) (interface{}, error) {
	loc, fwd, inv, label, err := secondaryArgs(args, kw, "right")
	if err != nil {
		return nil, err
	}
	return b.SecondaryYAxis(loc, fwd, inv, label)
}
