package brokenaxes

import (
	"errors"
	"fmt"
)

// ErrNoCell is returned when a single point operation like Text does not
// fall into any cell.
var ErrNoCell = errors.New("brokenaxes: coordinate not within any cell")

// A ConfigurationError reports an invalid set of intervals, ratios or
// spacings passed to New.
type ConfigurationError struct {
	Axis   string // "x", "y" or "" for grid wide settings
	Index  int    // index of the offending interval or ratio, -1 if none
	Reason string
}

func (e *ConfigurationError) Error() string {
	switch {
	case e.Axis == "":
		return "brokenaxes: " + e.Reason
	case e.Index < 0:
		return fmt.Sprintf("brokenaxes: %s axis: %s", e.Axis, e.Reason)
	}
	return fmt.Sprintf("brokenaxes: %s axis interval %d: %s", e.Axis, e.Index, e.Reason)
}

func configErr(axis string, index int, format string, args ...interface{}) error {
	return &ConfigurationError{Axis: axis, Index: index, Reason: fmt.Sprintf(format, args...)}
}

// An UnsupportedOperationError is returned when a forwarded operation or
// styling property has no mapping to a cell operation.
type UnsupportedOperationError struct {
	Op string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("brokenaxes: unsupported operation %q", e.Op)
}
