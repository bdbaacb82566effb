package brokenaxes

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"gonum.org/v1/plot"
)

// maxTicks limits the number of ticks a MultipleTicks produces.
const maxTicks = 1000

// MultipleTicks places major ticks on every integer multiple of Base.
type MultipleTicks struct {
	Base float64
}

// Ticks implements plot.Ticker.
func (mt MultipleTicks) Ticks(min, max float64) []plot.Tick {
	if !(mt.Base > 0) || math.IsInf(mt.Base, 0) || !(max >= min) {
		return nil
	}
	k0 := math.Ceil(min/mt.Base - 1e-9)
	k1 := math.Floor(max/mt.Base + 1e-9)
	if k1-k0 >= maxTicks {
		return nil
	}
	prec := precision(mt.Base)
	var ticks []plot.Tick
	for k := k0; k <= k1; k++ {
		v := k * mt.Base
		if v == 0 {
			v = 0 // no negative zero in labels
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'f', prec, 64)})
	}
	return ticks
}

// precision is the number of decimals needed to print multiples of base.
func precision(base float64) int {
	prec := 0
	for b := base; prec < 15; prec++ {
		if math.Abs(b-math.Round(b)) <= 1e-9*math.Max(1, math.Abs(b)) {
			break
		}
		b *= 10
	}
	return prec
}

// SymLogTicks places ticks at 0 and at signed powers of ten times LinThresh.
type SymLogTicks struct {
	LinThresh float64
}

// Ticks implements plot.Ticker.
func (st SymLogTicks) Ticks(min, max float64) []plot.Tick {
	lt := st.LinThresh
	if !(lt > 0) {
		lt = 1
	}
	var ticks []plot.Tick
	add := func(v float64) {
		if v >= min && v <= max {
			ticks = append(ticks, plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'g', -1, 64)})
		}
	}
	// Negative decades from the far end towards zero keep the ticks sorted.
	var neg []float64
	for v := lt; v <= -min && len(neg) < maxTicks; v *= 10 {
		neg = append(neg, -v)
	}
	for i := len(neg) - 1; i >= 0; i-- {
		add(neg[i])
	}
	add(0)
	for v := lt; v <= max && len(ticks) < maxTicks; v *= 10 {
		add(v)
	}
	return ticks
}

// FormattedTicks relabels the labelled ticks of Ticker with the fmt verb
// Format.
type FormattedTicks struct {
	Ticker plot.Ticker
	Format string
}

// Ticks implements plot.Ticker.
func (ft FormattedTicks) Ticks(min, max float64) []plot.Tick {
	ticks := ft.Ticker.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label = fmt.Sprintf(ft.Format, ticks[i].Value)
		}
	}
	return ticks
}

// tickStep returns the distance between the first two major ticks.
func tickStep(ticks []plot.Tick) (float64, bool) {
	var majors []float64
	for _, t := range ticks {
		if !t.IsMinor() {
			majors = append(majors, t.Value)
		}
		if len(majors) == 2 {
			return majors[1] - majors[0], true
		}
	}
	return 0, false
}

// Steps for date ticks, in seconds.
var dateSteps = []float64{
	1, 5, 15, 30,
	60, 5 * 60, 15 * 60, 30 * 60,
	3600, 3 * 3600, 6 * 3600, 12 * 3600,
	86400, 2 * 86400, 7 * 86400, 14 * 86400,
	30 * 86400, 91 * 86400, 182 * 86400, 365 * 86400,
}

// dateStep picks a calendar friendly step which yields at most 6 ticks on iv.
func dateStep(iv Interval) float64 {
	span := iv.Max - iv.Min
	for _, s := range dateSteps {
		if span/s <= 6 {
			return s
		}
	}
	years := math.Ceil(span / (6 * 365 * 86400))
	return years * 365 * 86400
}

// autoStep determines the natural tick step of s on iv.
func autoStep(s *Scale, iv Interval) (float64, bool) {
	switch s.Kind {
	case Date:
		return dateStep(iv), true
	case Linear:
		return tickStep(plot.DefaultTicks{}.Ticks(iv.Min, iv.Max))
	}
	return 0, false
}

// tickerFor returns the ticker used on s given a standardized base.
// A base <= 0 selects the natural ticker of s.
func tickerFor(s *Scale, base float64) plot.Ticker {
	if s.Kind == Date {
		return DateTicks{Scale: s, Step: base}
	}
	var t plot.Ticker
	switch {
	case s.Kind == Log || s.Kind == SymLog:
		t = s.trans.Ticker
	case base > 0:
		t = MultipleTicks{Base: base}
	default:
		t = plot.DefaultTicks{}
	}
	if s.NumberFormat != "" {
		return FormattedTicks{Ticker: t, Format: s.NumberFormat}
	}
	return t
}

// DateTicks places ticks on multiples of Step seconds and labels them as
// dates. A Step <= 0 picks a calendar friendly step for the range shown.
type DateTicks struct {
	Scale *Scale
	Step  float64
}

// Ticks implements plot.Ticker.
func (dt DateTicks) Ticks(min, max float64) []plot.Tick {
	step := dt.Step
	if step <= 0 {
		step = dateStep(Interval{min, max})
	}
	return plot.TimeTicks{
		Ticker: MultipleTicks{Base: step},
		Format: dt.Scale.timeLayout(step),
		Time:   func(v float64) time.Time { return FromUnixSeconds(v) },
	}.Ticks(min, max)
}

// FixedTicks places major ticks exactly at Values. The labels follow the
// current formats of Scale.
type FixedTicks struct {
	Scale  *Scale
	Values []float64
}

// Ticks implements plot.Ticker.
func (ft FixedTicks) Ticks(min, max float64) []plot.Tick {
	step := 0.0 // smallest gap
	for i := 1; i < len(ft.Values); i++ {
		if d := math.Abs(ft.Values[i] - ft.Values[i-1]); d > 0 && (step == 0 || d < step) {
			step = d
		}
	}
	ticks := make([]plot.Tick, len(ft.Values))
	for i, v := range ft.Values {
		ticks[i] = plot.Tick{Value: v, Label: ft.Scale.formatValue(v, step)}
	}
	return ticks
}
