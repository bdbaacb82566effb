package brokenaxes

import (
	"fmt"
	"testing"
)

func TestBinner(t *testing.T) {
	p := NewBinner(4)
	p.Learn(2, 10, 6, nan)
	if !p.Range.Equal(Interval{2, 10}) {
		t.Fatalf("range %v", p.Range)
	}
	if got := fmt.Sprint(p.Edges()); got != "[2 4 6 8 10]" {
		t.Errorf("edges %s", got)
	}
	for x, want := range map[float64]int{
		2: 0, 3.9: 0, 4: 1, 7.5: 2, 9.99: 3, 10: 3, 1.9: -1, 10.1: -1, nan: -1,
	} {
		if got := p.Bin(x); got != want {
			t.Errorf("Bin(%g) = %d, want %d", x, got, want)
		}
	}
	for x, want := range map[float64]string{
		5:  "[4, 6)",
		0:  "(-∞, 2)",
		11: "(10, ∞)",
	} {
		if got := p.Label(x); got != want {
			t.Errorf("Label(%g) = %q, want %q", x, got, want)
		}
	}
}

func TestBinnerHistogram(t *testing.T) {
	p := NewBinner(2)
	p.Range = Interval{0, 2}
	bins, err := p.Histogram([]float64{0, 0.5, 1, 2, 3}, false)
	if err != nil {
		t.Fatal(err)
	}
	if bins[0].Weight != 2 || bins[1].Weight != 2 {
		t.Errorf("got weights %g and %g", bins[0].Weight, bins[1].Weight)
	}

	p = NewBinner(3)
	p.Learn(5, 5)
	bins, err = p.Histogram([]float64{5}, false)
	if err != nil {
		t.Fatal(err)
	}
	if !equal64(bins[0].Min, 4.5) || !equal64(bins[2].Max, 5.5) || bins[1].Weight != 1 {
		t.Errorf("degenerate range gave %v", bins)
	}

	p = NewBinner(5)
	if bins, err = p.Histogram(nil, true); err != nil || bins[4].Max != 1 {
		t.Errorf("empty data gave %v, %v", bins, err)
	}

	if _, err := NewBinner(0).Histogram([]float64{1}, false); err == nil {
		t.Error("missing error for zero bins")
	}
}
