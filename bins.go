package brokenaxes

import (
	"fmt"
	"math"

	"gonum.org/v1/plot/plotter"
)

// A Binner partitions a continuous range into equally wide bins.
// The upper edge belongs to the last bin.
type Binner struct {
	Bins  int
	Range Interval
}

// NewBinner returns a Binner with n bins and an unset range.
func NewBinner(n int) *Binner {
	return &Binner{Bins: n, Range: unsetInterval()}
}

// Learn extends the range of p to cover x. NaN and Inf are ignored.
func (p *Binner) Learn(x ...float64) { p.Range.Update(x...) }

func (p *Binner) width() float64 {
	return (p.Range.Max - p.Range.Min) / float64(p.Bins)
}

// Bin returns the index of the bin x falls into or -1 if x is outside
// the range.
func (p *Binner) Bin(x float64) int {
	min, max := p.Range.Min, p.Range.Max
	if !(x >= min && x <= max) {
		return -1
	}
	if x == max {
		return p.Bins - 1
	}
	k := int(math.Floor((x - min) / p.width()))
	if k >= p.Bins {
		k = p.Bins - 1
	}
	return k
}

// Edges returns the Bins+1 bin edges.
func (p *Binner) Edges() []float64 {
	e := make([]float64, p.Bins+1)
	w := p.width()
	for i := range e {
		e[i] = p.Range.Min + float64(i)*w
	}
	e[p.Bins] = p.Range.Max
	return e
}

// Label returns a description of the bin x falls into.
func (p *Binner) Label(x float64) string {
	k := p.Bin(x)
	switch {
	case k >= 0:
		e := p.Edges()
		return fmt.Sprintf("[%g, %g)", e[k], e[k+1])
	case x < p.Range.Min:
		return fmt.Sprintf("(-∞, %g)", p.Range.Min)
	}
	return fmt.Sprintf("(%g, ∞)", p.Range.Max)
}

// Histogram counts xs into the bins of p. With density the weights are
// normalized so the bars integrate to one.
func (p *Binner) Histogram(xs []float64, density bool) ([]plotter.HistogramBin, error) {
	if p.Bins <= 0 {
		return nil, fmt.Errorf("brokenaxes: %d histogram bins", p.Bins)
	}
	if !p.Range.IsSet() {
		p.Range = Interval{0, 1}
	}
	if p.Range.Min == p.Range.Max {
		p.Range.Min, p.Range.Max = p.Range.Min-0.5, p.Range.Max+0.5
	}
	e := p.Edges()
	bins := make([]plotter.HistogramBin, p.Bins)
	for i := range bins {
		bins[i].Min, bins[i].Max = e[i], e[i+1]
	}
	n := 0
	for _, x := range xs {
		if k := p.Bin(x); k >= 0 {
			bins[k].Weight++
			n++
		}
	}
	if density && n > 0 {
		for i := range bins {
			bins[i].Weight /= float64(n) * (bins[i].Max - bins[i].Min)
		}
	}
	return bins, nil
}
