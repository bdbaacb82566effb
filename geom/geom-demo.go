//go:build ignore

package main

import (
	"image"
	"image/color"

	"github.com/vdobler/brokenaxes/data"
	"github.com/vdobler/brokenaxes/geom"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

func main() {
	p, err := plot.New()
	if err != nil {
		panic(err)
	}
	p.Title.Text = "Geoms"
	p.X.Min, p.X.Max = 0, 10
	p.Y.Min, p.Y.Max = 0, 10

	xy := plotter.XYs{{1, 3}, {2, 5}, {3, 2}, {1, 1}, {2, 2}, {3, 4}}
	bars := &geom.Bar{
		XY:       xy,
		Position: "dodge",
		BoxStyle: geom.BoxStyle{Fill: plotutil.Color(0)},
	}
	step := &geom.Step{
		XY:        plotter.XYs{{4, 1}, {5, 3}, {6, 2}, {7, 6}},
		LineStyle: draw.LineStyle{Color: plotutil.Color(1), Width: vg.Points(1)},
	}
	segs := &geom.Segment{
		XYUV:      data.XYUVs{{X: 4, Y: 8, U: 9, V: 9}, {X: 4, Y: 9, U: 9, V: 8}},
		LineStyle: draw.LineStyle{Color: plotutil.Color(2), Width: vg.Points(1)},
	}
	rules := &geom.HLine{Y: plotter.Values{7}, LineStyle: draw.LineStyle{Color: color.Gray{0x80}, Width: 1}}

	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			img.Set(x, y, color.RGBA{uint8(16 * x), uint8(16 * y), 0x80, 0xff})
		}
	}
	pic := &geom.Image{Img: img, XMin: 7, XMax: 12, YMin: 0, YMax: 5}

	label := &geom.Text{
		XYText:    data.XYTexts{{X: 4, Y: 9.5, Text: "crossing segments"}},
		TextStyle: draw.TextStyle{Color: color.Black, Font: p.Title.Font},
	}

	p.Add(bars, step, segs, rules, pic, label)
	p.Legend.Add("bars", bars)
	p.Legend.Add("step", step)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, "../testdata/geoms.png"); err != nil {
		panic(err)
	}
}
