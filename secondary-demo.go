//go:build ignore

package main

import (
	"os"

	"github.com/vdobler/brokenaxes"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

func main() {
	opts := brokenaxes.DefaultOptions()
	opts.XLims = []brokenaxes.Interval{{1, 3}, {9, 10}}
	opts.YLims = []brokenaxes.Interval{{1, 3}, {9, 10}}
	opts.Despine = false
	b, err := brokenaxes.New(opts)
	if err != nil {
		panic(err)
	}

	xys := make(plotter.XYs, 11)
	for i := range xys {
		xys[i].X, xys[i].Y = float64(i), float64(i)
	}
	b.Line("", xys)
	b.SetYLabel("pounds", 0)

	toKg := func(lb float64) float64 { return lb * 0.453592 }
	toLb := func(kg float64) float64 { return kg / 0.453592 }
	if _, err := b.SecondaryYAxis("right", toKg, toLb, "kg"); err != nil {
		panic(err)
	}

	// Two copies side by side.
	img := vgimg.New(900, 400)
	dc := draw.New(img)
	tiles := draw.Tiles{Rows: 1, Cols: 2, PadX: 20, PadLeft: 10, PadRight: 10}
	other, err := brokenaxes.New(opts)
	if err != nil {
		panic(err)
	}
	other.Scatter("points", xys)
	other.Legend(brokenaxes.Best)
	if err := brokenaxes.DrawTiles([][]*brokenaxes.BrokenAxes{{b, other}}, tiles, dc); err != nil {
		panic(err)
	}

	w, err := os.Create("testdata/secondary.png")
	if err != nil {
		panic(err)
	}
	defer w.Close()
	png := vgimg.PngCanvas{Canvas: img}
	if _, err = png.WriteTo(w); err != nil {
		panic(err)
	}
	if err = w.Close(); err != nil {
		panic(err)
	}
}
