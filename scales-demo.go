//go:build ignore

package main

import (
	"math"
	"os"

	"github.com/vdobler/brokenaxes"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

func curve(f func(float64) float64) plotter.XYs {
	xys := make(plotter.XYs, 300)
	for i := range xys {
		x := float64(i) / 299 * 10 * math.Pi
		xys[i].X, xys[i].Y = x, f(x)
	}
	return xys
}

func main() {
	opts := brokenaxes.DefaultOptions()
	opts.XLims = []brokenaxes.Interval{{0, 5}, {10, 30}}
	opts.YLims = []brokenaxes.Interval{{-100, 0}, {80, 100}}
	opts.HeightRatios = []float64{1, 3}
	opts.WidthRatios = []float64{3, 5}
	b, err := brokenaxes.New(opts)
	if err != nil {
		panic(err)
	}

	b.Line("Big sin", curve(func(x float64) float64 { return 100 * math.Sin(x) }))
	b.Line("Small sin", curve(func(x float64) float64 { return 5*math.Sin(x+math.Pi) + 90 }))
	b.Line("Exponential 1", curve(func(x float64) float64 { return 30*math.Exp(-x) - 50 }))
	dashed, _ := b.Line("Exponential 2", curve(func(x float64) float64 { return 90 + (1 - math.Exp(6/x)) }))
	for _, l := range dashed {
		l.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	}

	b.Legend(brokenaxes.LowerRight)
	b.SetTitle("Example for different scales for the x and y axis")

	img := vgimg.New(800, 600)
	dc := draw.New(img)
	if err := b.Draw(dc); err != nil {
		panic(err)
	}
	write(img, "testdata/scales-auto.png")

	// Manually set ticks; each cell shows the ones inside its limits.
	err = b.Apply(map[string]interface{}{
		"yticks": []float64{-100, -50, 0, 80, 85, 90, 95, 100},
	})
	if err != nil {
		panic(err)
	}
	img = vgimg.New(800, 600)
	if err := b.Draw(draw.New(img)); err != nil {
		panic(err)
	}
	write(img, "testdata/scales-manual.png")
}

func write(canvas *vgimg.Canvas, name string) {
	w, err := os.Create(name)
	if err != nil {
		panic(err)
	}
	defer w.Close()
	png := vgimg.PngCanvas{Canvas: canvas}
	if _, err = png.WriteTo(w); err != nil {
		panic(err)
	}
	if err = w.Close(); err != nil {
		panic(err)
	}
}
