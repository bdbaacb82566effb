// Package brokenaxes draws plots with gaps in their axes.
//
// It uses gonum.org/v1/plot for everything except the layout.
//
// Cells
//
// A BrokenAxes is a grid of cells, one per pair of x and y intervals.
// Each cell is sized in proportion to the span of its intervals as seen
// through the scale of the axis:
//   - Linear   the plain span
//   - Log      the span of the decadic logarithms
//   - SymLog   the span after the symmetric log transform
//   - Date     the span in seconds
//
// Tick labels are drawn only along the bottom row and the left column.
// Spines on internal seams are hidden and short diagonal break marks are
// drawn where an outer spine is interrupted. All cells share one tick step
// per axis so the ticks look like those of a single axis.
//
// Forwarding
//
// Drawing calls like Line, Scatter or Hist are replayed on every cell whose
// intervals overlap the data. They return one handle per cell drawn into.
// Call provides the same operations by name, e.g.
//
//	b.Call("plot", xs, ys, brokenaxes.Kwargs{"label": "data"})
//
// Decorations
//
// The title, the axis labels and the legend belong to the Overlay which
// spans the whole grid, so they are centred on the composite and not on
// a single cell.
package brokenaxes
