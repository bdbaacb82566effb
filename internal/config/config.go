// Package config loads the chart descriptions of brokenplot.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gonum.org/v1/plot/vg"

	"github.com/vdobler/brokenaxes"
)

// Chart describes one broken axes figure.
type Chart struct {
	Title  string
	XLabel string
	YLabel string

	// Width and Height of the figure in points.
	Width, Height float64
	Output        string

	X, Y Axis

	WSpace, HSpace float64
	D, Tilt        float64
	Despine        bool
	InternalSpines bool

	// Legend is a legend location like "upper right", empty for none.
	Legend string
	// Grid is "x", "y" or "both", empty for none.
	Grid string

	Series []Series
}

// Axis describes the breaks of one axis.
type Axis struct {
	Scale string
	// Limits are [min, max] pairs. On date scales they are dates like
	// 2020-01-31 or RFC 3339 times.
	Limits    [][]string
	Ratios    []float64
	LinThresh float64
	// Format is a time layout on date scales, a fmt verb otherwise.
	Format string
}

// Series is one forwarded drawing call.
type Series struct {
	// Kind is the operation name passed to BrokenAxes.Call.
	Kind  string
	Label string

	// X and Y hold inline values. File names a CSV file to read them
	// from, XCol and YCol select the columns.
	X, Y       []float64
	File       string
	XCol, YCol int

	YErr    []float64
	Bins    int
	Density bool
	Width   float64
}

// Load reads the chart description at path. The format follows the file
// extension (yaml, toml, json). Env var overrides use prefix BROKENPLOT_,
// e.g. BROKENPLOT_OUTPUT or BROKENPLOT_X_SCALE.
func Load(path string) (Chart, error) {
	v := viper.New()

	v.SetDefault("title", "")
	v.SetDefault("xlabel", "")
	v.SetDefault("ylabel", "")
	v.SetDefault("width", 400)
	v.SetDefault("height", 300)
	v.SetDefault("output", "brokenplot.png")
	v.SetDefault("x.scale", "linear")
	v.SetDefault("y.scale", "linear")
	v.SetDefault("x.format", "")
	v.SetDefault("y.format", "")
	v.SetDefault("wspace", 0.05)
	v.SetDefault("hspace", 0.05)
	v.SetDefault("d", 5)
	v.SetDefault("tilt", 45)
	v.SetDefault("despine", true)
	v.SetDefault("internalspines", false)
	v.SetDefault("legend", "")
	v.SetDefault("grid", "")

	v.SetConfigFile(path)
	v.SetEnvPrefix("BROKENPLOT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return Chart{}, fmt.Errorf("read chart %s: %w", path, err)
	}

	var c Chart
	if err := v.Unmarshal(&c); err != nil {
		return Chart{}, fmt.Errorf("unmarshal chart %s: %w", path, err)
	}
	for i := range c.Series {
		s := &c.Series[i]
		if s.Kind == "" {
			s.Kind = "plot"
		}
		if s.File != "" && s.XCol == 0 && s.YCol == 0 {
			s.YCol = 1
		}
	}
	if c.Width <= 0 || c.Height <= 0 {
		return Chart{}, fmt.Errorf("chart %s: bad size %gx%g", path, c.Width, c.Height)
	}
	return c, nil
}

// Options converts c to the options of a BrokenAxes.
func (c Chart) Options() (brokenaxes.Options, error) {
	opts := brokenaxes.DefaultOptions()

	var err error
	if opts.XScale, opts.XLims, err = c.X.parse(); err != nil {
		return opts, fmt.Errorf("x axis: %w", err)
	}
	if opts.YScale, opts.YLims, err = c.Y.parse(); err != nil {
		return opts, fmt.Errorf("y axis: %w", err)
	}
	opts.XLinThresh, opts.YLinThresh = c.X.LinThresh, c.Y.LinThresh
	if opts.XScale == brokenaxes.Date {
		opts.XTimeFormat = c.X.Format
	}
	if opts.YScale == brokenaxes.Date {
		opts.YTimeFormat = c.Y.Format
	}
	opts.WidthRatios, opts.HeightRatios = c.X.Ratios, c.Y.Ratios
	opts.WSpace, opts.HSpace = c.WSpace, c.HSpace
	opts.D = vg.Points(c.D)
	opts.Tilt = c.Tilt
	opts.Despine = c.Despine
	opts.InternalSpines = c.InternalSpines
	return opts, nil
}

func (a Axis) parse() (brokenaxes.ScaleKind, []brokenaxes.Interval, error) {
	kind, err := brokenaxes.ParseScaleKind(a.Scale)
	if err != nil {
		return kind, nil, err
	}
	var ivs []brokenaxes.Interval
	for i, l := range a.Limits {
		if len(l) != 2 {
			return kind, nil, fmt.Errorf("limit %d: want [min, max], got %d values", i, len(l))
		}
		min, err := parseValue(kind, l[0])
		if err != nil {
			return kind, nil, fmt.Errorf("limit %d: %w", i, err)
		}
		max, err := parseValue(kind, l[1])
		if err != nil {
			return kind, nil, fmt.Errorf("limit %d: %w", i, err)
		}
		ivs = append(ivs, brokenaxes.Interval{Min: min, Max: max})
	}
	return kind, ivs, nil
}

var dateLayouts = []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"}

func parseValue(kind brokenaxes.ScaleKind, s string) (float64, error) {
	s = strings.TrimSpace(s)
	if kind != brokenaxes.Date {
		return strconv.ParseFloat(s, 64)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return brokenaxes.UnixSeconds(t), nil
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, nil
	}
	return 0, fmt.Errorf("bad date %q", s)
}
