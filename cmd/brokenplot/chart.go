package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgeps"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/vdobler/brokenaxes"
	"github.com/vdobler/brokenaxes/internal/config"
)

// build creates the broken axes described by c and forwards its series.
// Relative CSV paths are resolved against the directory of the chart
// description at path.
func build(c config.Chart, path string) (*brokenaxes.BrokenAxes, error) {
	opts, err := c.Options()
	if err != nil {
		return nil, err
	}
	b, err := brokenaxes.New(opts)
	if err != nil {
		return nil, err
	}

	props := map[string]interface{}{}
	if c.X.Format != "" {
		props["xformat"] = c.X.Format
	}
	if c.Y.Format != "" {
		props["yformat"] = c.Y.Format
	}
	if err := b.Apply(props); err != nil {
		return nil, err
	}

	if c.Grid != "" {
		if _, err := b.Grid(c.Grid); err != nil {
			return nil, err
		}
	}
	dir := filepath.Dir(path)
	for i, s := range c.Series {
		args, err := seriesArgs(s, dir)
		if err != nil {
			return nil, fmt.Errorf("series %d: %w", i, err)
		}
		if _, err := b.Call(s.Kind, args...); err != nil {
			return nil, fmt.Errorf("series %d: %w", i, err)
		}
	}

	b.SetTitle(c.Title)
	b.SetXLabel(c.XLabel, 0)
	b.SetYLabel(c.YLabel, 0)
	if c.Legend != "" {
		loc, err := brokenaxes.ParseLegendLoc(c.Legend)
		if err != nil {
			return nil, err
		}
		b.Legend(loc)
	}
	return b, nil
}

// seriesArgs returns the Call arguments of s.
func seriesArgs(s config.Series, dir string) ([]interface{}, error) {
	xs, ys := s.X, s.Y
	if s.File != "" {
		path := s.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		cols, err := readColumns(path, s.XCol, s.YCol)
		if err != nil {
			return nil, err
		}
		xs, ys = cols[0], cols[1]
	}

	kw := brokenaxes.Kwargs{"label": s.Label}
	switch s.Kind {
	case "hist":
		vs := xs
		if len(vs) == 0 {
			vs = ys
		}
		if s.Bins > 0 {
			kw["bins"] = s.Bins
		}
		kw["density"] = s.Density
		return []interface{}{vs, kw}, nil
	case "axhline", "hline":
		return []interface{}{ys, kw}, nil
	case "axvline", "vline":
		return []interface{}{xs, kw}, nil
	case "bar":
		kw["width"] = s.Width
	case "errorbar":
		if s.YErr != nil {
			kw["yerr"] = s.YErr
		}
	case "fill_between":
		return []interface{}{xs, ys, 0.0, kw}, nil
	}
	return []interface{}{xs, ys, kw}, nil
}

// readColumns reads the numeric columns cols of a CSV file. Lines
// starting with # are skipped, as is a header line which does not parse.
func readColumns(path string, cols ...int) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comment = '#'
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	out := make([][]float64, len(cols))
	for line := 1; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		row := make([]float64, len(cols))
		bad := -1
		for i, c := range cols {
			if c < 0 || c >= len(rec) {
				return nil, fmt.Errorf("%s:%d: no column %d", path, line, c)
			}
			if row[i], err = strconv.ParseFloat(strings.TrimSpace(rec[c]), 64); err != nil {
				bad = c
				break
			}
		}
		if bad >= 0 {
			if line == 1 {
				continue
			}
			return nil, fmt.Errorf("%s:%d: column %d: %w", path, line, bad, err)
		}
		for i := range cols {
			out[i] = append(out[i], row[i])
		}
	}
	return out, nil
}

type canvasWriter interface {
	vg.CanvasSizer
	io.WriterTo
}

// newCanvas returns a canvas of size w×h for the format given by the
// extension of path.
func newCanvas(path string, w, h vg.Length) (canvasWriter, error) {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case "png":
		return vgimg.PngCanvas{Canvas: vgimg.New(w, h)}, nil
	case "jpg", "jpeg":
		return vgimg.JpegCanvas{Canvas: vgimg.New(w, h)}, nil
	case "tif", "tiff":
		return vgimg.TiffCanvas{Canvas: vgimg.New(w, h)}, nil
	case "svg":
		return vgsvg.New(w, h), nil
	case "pdf":
		return vgpdf.New(w, h), nil
	case "eps":
		return vgeps.New(w, h), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", ext)
	}
}

// save draws b and writes it to c.Output.
func save(b *brokenaxes.BrokenAxes, c config.Chart) error {
	cw, err := newCanvas(c.Output, vg.Points(c.Width), vg.Points(c.Height))
	if err != nil {
		return err
	}
	if err := b.Draw(draw.New(cw)); err != nil {
		return err
	}
	f, err := os.Create(c.Output)
	if err != nil {
		return err
	}
	if _, err := cw.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", c.Output, err)
	}
	return f.Close()
}
