package brokenaxes

import (
	"math"
	"strconv"
	"testing"
	"time"
)

var nan = math.NaN()

var intervallUpdateTests = []struct {
	old  Interval
	x    float64
	want Interval
}{
	{Interval{3, 6}, 4, Interval{3, 6}},
	{Interval{3, 6}, 2, Interval{2, 6}},
	{Interval{3, 6}, 7, Interval{3, 7}},
	{Interval{nan, nan}, nan, Interval{nan, nan}},
	{Interval{nan, nan}, 5, Interval{5, 5}},
	{Interval{5, 5}, nan, Interval{5, 5}},
	{Interval{5, 5}, math.Inf(1), Interval{5, 5}},
}

func TestIntervalUpdate(t *testing.T) {
	for i, tc := range intervallUpdateTests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			got := tc.old
			got.Update(tc.x)
			if !got.Equal(tc.want) {
				t.Errorf("%v update %v = %v, want %v",
					tc.old, tc.x, got, tc.want)
			}
		})
	}
}

func TestIntervalOverlaps(t *testing.T) {
	a := Interval{0, 5}
	for i, tc := range []struct {
		b            Interval
		closed, open bool
	}{
		{Interval{5, 10}, true, false},
		{Interval{4, 10}, true, true},
		{Interval{6, 10}, false, false},
		{Interval{-3, 0}, true, false},
		{Interval{1, 2}, true, true},
	} {
		if got := a.Overlaps(tc.b); got != tc.closed {
			t.Errorf("%d: Overlaps(%v)=%t", i, tc.b, got)
		}
		if got := a.overlapsOpen(tc.b); got != tc.open {
			t.Errorf("%d: overlapsOpen(%v)=%t", i, tc.b, got)
		}
	}
}

func TestTimeIntervalRoundTrip(t *testing.T) {
	day1 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	day3 := time.Date(2020, 1, 3, 0, 0, 0, 0, time.UTC)
	iv := TimeInterval(day1, day3)

	b, err := New(Options{XLims: []Interval{iv}, XScale: Date})
	if err != nil {
		t.Fatal(err)
	}
	t0, t1 := b.At(0, 0).XLim().Times()
	if !t0.Equal(day1) || !t1.Equal(day3) {
		t.Errorf("got %s..%s, want %s..%s", t0, t1, day1, day3)
	}

	frac := time.Date(2021, 6, 5, 4, 3, 2, 500000000, time.UTC)
	if got := FromUnixSeconds(UnixSeconds(frac)); !got.Equal(frac) {
		t.Errorf("got %s, want %s", got, frac)
	}
}

func TestParseScaleKind(t *testing.T) {
	for s, want := range map[string]ScaleKind{
		"": Linear, "linear": Linear, "log": Log, "symlog": SymLog, "date": Date, "time": Date,
	} {
		got, err := ParseScaleKind(s)
		if err != nil || got != want {
			t.Errorf("ParseScaleKind(%q) = %v, %v; want %v", s, got, err, want)
		}
	}
	if _, err := ParseScaleKind("sqrt"); err == nil {
		t.Error("missing error for sqrt")
	}
}

var autoscaleTests = []struct {
	kind ScaleKind
	data Interval
	want Interval
}{
	{Linear, Interval{nan, nan}, Interval{0, 1}},
	{Log, Interval{nan, nan}, Interval{1, 10}},
	{Linear, Interval{0, 10}, Interval{-0.5, 10.5}},
	{Linear, Interval{5, 5}, Interval{4.75, 5.25}},
	{Linear, Interval{0, 0}, Interval{-1, 1}},
	{Log, Interval{1, 100}, Interval{math.Pow(10, -0.1), math.Pow(10, 2.1)}},
	{Log, Interval{10, 10}, Interval{1, 100}},
}

func TestAutoscale(t *testing.T) {
	for i, tc := range autoscaleTests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			s := newScale(tc.kind, nil, 0, "")
			s.Data = tc.data
			got := s.autoscale()
			if !equal64(got.Min, tc.want.Min) || !equal64(got.Max, tc.want.Max) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestUpdateDataLog(t *testing.T) {
	s := newScale(Log, nil, 0, "")
	s.UpdateData(-1, 0, 3, 30)
	if !s.Data.Equal(Interval{3, 30}) {
		t.Errorf("got %v", s.Data)
	}
}

func TestFormatValue(t *testing.T) {
	s := newScale(Linear, nil, 0, "")
	if got := s.formatValue(2.5, 0); got != "2.5" {
		t.Errorf("got %q", got)
	}
	s.NumberFormat = "%.2f"
	if got := s.formatValue(2.5, 0); got != "2.50" {
		t.Errorf("got %q", got)
	}
	d := newScale(Date, nil, 0, "2006-01-02")
	day := UnixSeconds(time.Date(2020, 2, 29, 12, 0, 0, 0, time.UTC))
	if got := d.formatValue(day, 3600); got != "2020-02-29" {
		t.Errorf("got %q", got)
	}

	auto := newScale(Date, nil, 0, "")
	for step, want := range map[float64]string{
		0:       "2020-02-29",
		86400:   "2020-02-29",
		3600:    "2020-02-29 12:00",
		15:      "2020-02-29 12:00:00",
		7 * 1e6: "2020-02-29",
	} {
		if got := auto.formatValue(day, step); got != want {
			t.Errorf("step %g: got %q, want %q", step, got, want)
		}
	}
}
