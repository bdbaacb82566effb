package geom

import (
	"testing"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

func rect(x0, y0, x1, y1 vg.Length) vg.Rectangle {
	return vg.Rectangle{Min: vg.Point{X: x0, Y: y0}, Max: vg.Point{X: x1, Y: y1}}
}

func TestCanonicRectangle(t *testing.T) {
	got := CanonicRectangle(rect(5, 7, 1, 2))
	if want := rect(1, 2, 5, 7); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestClipRect(t *testing.T) {
	canvas := draw.Canvas{Rectangle: rect(0, 0, 10, 10)}
	for i, tc := range []struct {
		in   vg.Rectangle
		want vg.Rectangle
		ok   bool
	}{
		{rect(2, 2, 4, 4), rect(2, 2, 4, 4), true},
		{rect(-5, -5, 20, 20), rect(0, 0, 10, 10), true},
		{rect(8, 12, 5, 3), rect(5, 3, 8, 10), true},
		{rect(11, 2, 15, 4), vg.Rectangle{}, false},
	} {
		got, ok := clipRect(tc.in, canvas)
		if ok != tc.ok {
			t.Errorf("%d: ok=%t, want %t", i, ok, tc.ok)
			continue
		}
		if ok && got != tc.want {
			t.Errorf("%d: got %v, want %v", i, got, tc.want)
		}
	}
}
