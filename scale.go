package brokenaxes

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// ----------------------------------------------------------------------------
// Interval

// Interval represents a (potentially degenerate) real interval.
// Both edges of the interval may be NaN indicating this edge is not
// set determined.
type Interval struct {
	Min, Max float64
}

func unsetInterval() Interval {
	return Interval{math.NaN(), math.NaN()}
}

// TimeInterval returns the interval [t0, t1] in the numeric representation
// used for date axes: seconds since the Unix epoch.
func TimeInterval(t0, t1 time.Time) Interval {
	return Interval{Min: UnixSeconds(t0), Max: UnixSeconds(t1)}
}

// UnixSeconds converts t to (fractional) seconds since the Unix epoch.
func UnixSeconds(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/1e9
}

// FromUnixSeconds is the inverse of UnixSeconds. The result is in UTC.
func FromUnixSeconds(s float64) time.Time {
	sec, frac := math.Modf(s)
	nsec := math.Round(frac * 1e9)
	return time.Unix(int64(sec), int64(nsec)).UTC()
}

// Times returns the edges of a date interval as times in UTC.
func (i Interval) Times() (time.Time, time.Time) {
	return FromUnixSeconds(i.Min), FromUnixSeconds(i.Max)
}

// Update expands i to include x.
func (i *Interval) Update(x ...float64) {
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if !(i.Min < v) {
			i.Min = v
		}
		if !(i.Max > v) {
			i.Max = v
		}
	}
}

// IsSet reports whether both edges of i are known.
func (i Interval) IsSet() bool {
	return !math.IsNaN(i.Min) && !math.IsNaN(i.Max)
}

// Equal reports whether i and j have the same edges, treating NaN edges
// as equal to each other.
func (i Interval) Equal(j Interval) bool {
	same := func(a, b float64) bool {
		if math.IsNaN(a) {
			return math.IsNaN(b)
		}
		return a == b
	}
	return same(i.Min, j.Min) && same(i.Max, j.Max)
}

// Contains reports whether x lies in the closed interval i.
func (i Interval) Contains(x float64) bool {
	return x >= i.Min && x <= i.Max
}

// Overlaps reports whether the closed intervals i and j share at least
// one point.
func (i Interval) Overlaps(j Interval) bool {
	return i.Min <= j.Max && j.Min <= i.Max
}

// overlapsOpen is like Overlaps but ignores contact in a single point.
func (i Interval) overlapsOpen(j Interval) bool {
	return i.Min < j.Max && j.Min < i.Max
}

func (i Interval) String() string {
	return fmt.Sprintf("[%g:%g]", i.Min, i.Max)
}

// ----------------------------------------------------------------------------
// ScaleKind

// ScaleKind selects one of the handful known scale kinds.
type ScaleKind int

const (
	Linear ScaleKind = iota
	Log
	SymLog
	Date
)

// String returns the name of sk.
func (sk ScaleKind) String() string {
	switch sk {
	case Linear:
		return "linear"
	case Log:
		return "log"
	case SymLog:
		return "symlog"
	case Date:
		return "date"
	}
	return fmt.Sprintf("ScaleKind(%d)", int(sk))
}

// ParseScaleKind returns the ScaleKind named s. The empty string is linear.
func ParseScaleKind(s string) (ScaleKind, error) {
	switch s {
	case "", "linear":
		return Linear, nil
	case "log":
		return Log, nil
	case "symlog":
		return SymLog, nil
	case "date", "time":
		return Date, nil
	}
	return Linear, fmt.Errorf("brokenaxes: unknown scale kind %q", s)
}

// ----------------------------------------------------------------------------
// Scale

// Scale captures one axis of a broken axes plot: the intervals shown, the
// kind of mapping and the range covered by actual data.
type Scale struct {
	// Kind determines the fundamental nature of the scale.
	Kind ScaleKind

	// Intervals are the shown ranges, one per column (x) or row (y).
	// If empty the scale has a single interval autoscaled to Data.
	Intervals []Interval

	// Data is the range covered by actual data.
	Data Interval

	// Expand is the relative expansion applied when autoscaling.
	Expand float64

	// LinThresh is the half width of the linear region of a SymLog scale.
	LinThresh float64

	// TimeFormat is the time layout of date ticks. Empty selects a layout
	// fine enough for the tick step.
	TimeFormat string

	// NumberFormat is a fmt verb used to format the tick labels of
	// non-date scales. Empty keeps the labels of the ticker.
	NumberFormat string

	trans Transformation
}

func newScale(kind ScaleKind, lims []Interval, linThresh float64, timeFmt string) *Scale {
	s := &Scale{
		Kind:       kind,
		Intervals:  append([]Interval(nil), lims...),
		Data:       unsetInterval(),
		Expand:     0.05,
		LinThresh:  linThresh,
		TimeFormat: timeFmt,
	}
	if s.LinThresh == 0 {
		s.LinThresh = 1
	}
	s.trans = transformationFor(kind, s.LinThresh)
	return s
}

// Broken reports whether the scale has explicitly given intervals.
func (s *Scale) Broken() bool { return len(s.Intervals) > 0 }

// Trans returns the transformation of s.
func (s *Scale) Trans() Transformation { return s.trans }

// UpdateData updates the data range of s to cover x. On log scales
// non-positive values are ignored.
func (s *Scale) UpdateData(x ...float64) {
	for _, v := range x {
		if s.Kind == Log && !(v > 0) {
			continue
		}
		s.Data.Update(v)
	}
}

// limits returns the interval shown for index i.
func (s *Scale) limits(i int) Interval {
	if s.Broken() {
		return s.Intervals[i]
	}
	return s.autoscale()
}

// count is the number of intervals along s.
func (s *Scale) count() int {
	if s.Broken() {
		return len(s.Intervals)
	}
	return 1
}

// autoscale turns the data range into an actual scale range.
func (s *Scale) autoscale() Interval {
	if !s.Data.IsSet() {
		if s.Kind == Log {
			return Interval{1, 10}
		}
		return Interval{0, 1}
	}
	iv := s.Data
	switch s.Kind {
	case Log:
		if iv.Min == iv.Max {
			return Interval{iv.Min / 10, iv.Max * 10}
		}
		f := math.Pow(iv.Max/iv.Min, s.Expand)
		return Interval{iv.Min / f, iv.Max * f}
	default:
		if iv.Min == iv.Max {
			// De-degenerate in the manner of a single point plot.
			d := math.Abs(iv.Min) * 0.05
			if d == 0 {
				d = 1
			}
			return Interval{iv.Min - d, iv.Max + d}
		}
		ext := s.Expand * (iv.Max - iv.Min)
		return Interval{iv.Min - ext, iv.Max + ext}
	}
}

// timeLayout returns the layout of date labels which are step seconds
// apart. A step <= 0 means unknown.
func (s *Scale) timeLayout(step float64) string {
	switch {
	case s.TimeFormat != "":
		return s.TimeFormat
	case step > 0 && step < 60:
		return "2006-01-02 15:04:05"
	case step > 0 && step < 86400:
		return "2006-01-02 15:04"
	}
	return "2006-01-02"
}

// formatValue formats v like a tick label of s for ticks step apart.
func (s *Scale) formatValue(v, step float64) string {
	switch {
	case s.Kind == Date:
		return FromUnixSeconds(v).Format(s.timeLayout(step))
	case s.NumberFormat != "":
		return fmt.Sprintf(s.NumberFormat, v)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// span is the length of iv after transformation along s.
func (s *Scale) span(iv Interval) float64 {
	return s.trans.Forward(iv.Max) - s.trans.Forward(iv.Min)
}

func (s *Scale) String() string {
	if s == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s %v Data=%v", s.Kind, s.Intervals, s.Data)
}
