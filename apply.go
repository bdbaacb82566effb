package brokenaxes

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"

	"gonum.org/v1/plot/vg"
)

// Apply applies styling properties uniformly to all cells. Known
// properties are
//
//	background            color of the cell backgrounds
//	xticks, yticks        []float64 of fixed major tick positions
//	xformat, yformat      tick label format: a time layout on date
//	                      axes, a fmt verb like "%.1f" otherwise
//	tick.color            color of all tick marks
//	tick.width            line width of all tick marks
//	tick.length           length of the major tick marks
//	spine.color           color of all spines
//	spine.width           line width of all spines
//
// Colors may be given as color.Color or as a string understood by
// ParseColor, numbers as float64, int or vg.Length. Properties are applied
// in lexical order; an unknown property fails with an
// UnsupportedOperationError after the preceding ones were applied.
func (b *BrokenAxes) Apply(props map[string]interface{}) error {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := b.apply(k, props[k]); err != nil {
			return err
		}
	}
	b.touch()
	return nil
}

func (b *BrokenAxes) apply(key string, val interface{}) error {
	switch key {
	case "background":
		col, err := toColor(key, val)
		if err != nil {
			return err
		}
		for _, c := range b.Cells() {
			c.Background = col
		}

	case "xticks", "yticks":
		vs, ok := val.([]float64)
		if !ok {
			return fmt.Errorf("brokenaxes: %s: want []float64, got %T", key, val)
		}
		s := b.X
		if key == "yticks" {
			s = b.Y
		}
		t := FixedTicks{Scale: s, Values: append([]float64(nil), vs...)}
		for _, c := range b.Cells() {
			if key == "xticks" {
				c.Axes.X.Tick.Marker = t
			} else {
				c.Axes.Y.Tick.Marker = t
			}
		}
		if key == "xticks" {
			b.xfixed = true
		} else {
			b.yfixed = true
		}

	case "xformat", "yformat":
		f, ok := val.(string)
		if !ok {
			return fmt.Errorf("brokenaxes: %s: want string, got %T", key, val)
		}
		s := b.X
		if key == "yformat" {
			s = b.Y
		}
		if s.Kind == Date {
			s.TimeFormat = f
		} else {
			s.NumberFormat = f
		}

	case "tick.color":
		col, err := toColor(key, val)
		if err != nil {
			return err
		}
		for _, a := range []*AxisStyle{&b.Style.XAxis, &b.Style.YAxis} {
			a.MajorTick.Color = col
			a.MinorTick.Color = col
			a.MajorTick.Label.Color = col
		}

	case "tick.width", "tick.length":
		l, err := toLength(key, val)
		if err != nil {
			return err
		}
		for _, a := range []*AxisStyle{&b.Style.XAxis, &b.Style.YAxis} {
			if key == "tick.width" {
				a.MajorTick.Width, a.MinorTick.Width = l, l
			} else {
				a.MajorTick.Length = l
			}
		}

	case "spine.color":
		col, err := toColor(key, val)
		if err != nil {
			return err
		}
		b.Style.Spine.Color = col
		for _, c := range b.Cells() {
			for side := range c.Spines {
				c.Spines[side].Color = col
			}
		}

	case "spine.width":
		l, err := toLength(key, val)
		if err != nil {
			return err
		}
		b.Style.Spine.Width = l
		for _, c := range b.Cells() {
			for side := range c.Spines {
				c.Spines[side].Width = l
			}
		}

	default:
		return &UnsupportedOperationError{Op: key}
	}
	Logger().Debug("brokenaxes: applied", "property", key)
	return nil
}

func toColor(key string, val interface{}) (color.Color, error) {
	switch v := val.(type) {
	case color.Color:
		return v, nil
	case string:
		col, err := ParseColor(v)
		if err != nil {
			return nil, fmt.Errorf("brokenaxes: %s: %w", key, err)
		}
		return col, nil
	}
	return nil, fmt.Errorf("brokenaxes: %s: want color, got %T", key, val)
}

func toLength(key string, val interface{}) (vg.Length, error) {
	var l vg.Length
	switch v := val.(type) {
	case vg.Length:
		l = v
	case float64:
		l = vg.Length(v)
	case int:
		l = vg.Length(v)
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("brokenaxes: %s: %w", key, err)
		}
		l = vg.Length(f)
	default:
		return 0, fmt.Errorf("brokenaxes: %s: want length, got %T", key, val)
	}
	if l <= 0 {
		return 0, fmt.Errorf("brokenaxes: %s: length %g not positive", key, float64(l))
	}
	return l, nil
}
