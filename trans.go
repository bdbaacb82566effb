// Scale Transformations
//
// A transformation maps data values to a space in which the axis is
// linear. Spans in that space determine the relative size of cells.
package brokenaxes

import (
	"math"

	"gonum.org/v1/plot"
)

// A Transformation bundles a forward function and its inverse together
// with an appropiate Ticker.
type Transformation struct {
	Name    string
	Forward func(x float64) float64
	Inverse func(y float64) float64
	Ticker  plot.Ticker
}

// Trans maps x from the data interval from to the interval to.
func (t Transformation) Trans(from, to Interval, x float64) float64 {
	a, b := t.Forward(from.Min), t.Forward(from.Max)
	return to.Min + (to.Max-to.Min)*(t.Forward(x)-a)/(b-a)
}

// Untrans is the inverse of Trans.
func (t Transformation) Untrans(from, to Interval, y float64) float64 {
	a, b := t.Forward(from.Min), t.Forward(from.Max)
	u := a + (b-a)*(y-to.Min)/(to.Max-to.Min)
	return t.Inverse(u)
}

// Normalize implements plot.Normalizer.
func (t Transformation) Normalize(min, max, x float64) float64 {
	return t.Trans(Interval{min, max}, Interval{0, 1}, x)
}

var _ plot.Normalizer = Transformation{}

// LinearTrans implements a linear mapping.
var LinearTrans = Transformation{
	Name:    "Linear",
	Forward: func(x float64) float64 { return x },
	Inverse: func(y float64) float64 { return y },
	Ticker:  plot.DefaultTicks{},
}

// Log10Trans implements a logarithmic mapping. Non-positive values map to NaN.
var Log10Trans = Transformation{
	Name: "Log10",
	Forward: func(x float64) float64 {
		if x <= 0 {
			return math.NaN()
		}
		return math.Log10(x)
	},
	Inverse: func(y float64) float64 { return math.Pow(10, y) },
	Ticker:  plot.LogTicks{},
}

// SymLogTrans returns a symmetric logarithmic mapping which is linear
// in [-linThresh, linThresh] and logarithmic outside.
func SymLogTrans(linThresh float64) Transformation {
	return Transformation{
		Name: "SymLog",
		Forward: func(x float64) float64 {
			ax := math.Abs(x)
			if ax <= linThresh {
				return x / linThresh
			}
			return math.Copysign(1+math.Log10(ax/linThresh), x)
		},
		Inverse: func(y float64) float64 {
			ay := math.Abs(y)
			if ay <= 1 {
				return y * linThresh
			}
			return math.Copysign(linThresh*math.Pow(10, ay-1), y)
		},
		Ticker: SymLogTicks{LinThresh: linThresh},
	}
}

func transformationFor(kind ScaleKind, linThresh float64) Transformation {
	switch kind {
	case Log:
		return Log10Trans
	case SymLog:
		return SymLogTrans(linThresh)
	}
	return LinearTrans
}
