//go:build ignore

package main

import (
	"math"
	"os"
	"time"

	"github.com/vdobler/brokenaxes"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

func day(m time.Month, d int) time.Time { return time.Date(2020, m, d, 0, 0, 0, 0, time.UTC) }

func main() {
	opts := brokenaxes.DefaultOptions()
	opts.XScale = brokenaxes.Date
	opts.XTimeFormat = "Jan 02"
	opts.XLims = []brokenaxes.Interval{
		brokenaxes.TimeInterval(day(1, 1), day(1, 15)),
		brokenaxes.TimeInterval(day(3, 1), day(3, 10)),
	}
	opts.YScale = brokenaxes.Log
	opts.YLims = []brokenaxes.Interval{{1, 100}, {1e4, 1e6}}
	b, err := brokenaxes.New(opts)
	if err != nil {
		panic(err)
	}

	var xys plotter.XYs
	for t := day(1, 1); t.Before(day(3, 11)); t = t.Add(6 * time.Hour) {
		x := brokenaxes.UnixSeconds(t)
		days := t.Sub(day(1, 1)).Hours() / 24
		xys = append(xys, plotter.XY{X: x, Y: 2 * math.Exp(days/6.5)})
	}
	b.Line("growth", xys)
	if _, err := b.HLine("threshold", 50, 2e5); err != nil {
		panic(err)
	}
	b.Grid("y")
	b.SetTitle("Growth with a gap")
	b.SetXLabel("date", 0)
	b.SetYLabel("cases", 0)
	b.Legend(brokenaxes.UpperLeft)

	img := vgimg.New(800, 500)
	if err := b.Draw(draw.New(img)); err != nil {
		panic(err)
	}
	w, err := os.Create("testdata/dates.png")
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
