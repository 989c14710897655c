// Package trace implements the tracepoint annotation layer of a line chart.
//
// A tracepoint is a small marker pinned to a data-space position on a plotted
// series, paired with a label that shows the x/y value at that point. The
// Engine owns every marker/label pair, toggles them on and off at
// user-selected cells, re-projects them when the chart's axes change, and
// picks which corner of each label touches its marker so labels stay inside
// the plotting area.
package trace

import (
	"image"
	"math"

	"github.com/NimbleMarkets/ntcharts/canvas"
)

// Point is a position in data-space, i.e. the values the axes display rather
// than canvas cells.
type Point struct {
	X float64
	Y float64
}

// valueEpsilon is the tolerance used when comparing data-space values.
const valueEpsilon = 1e-9

// Eq reports whether two data-space points are equal within tolerance.
func (p Point) Eq(other Point) bool {
	return math.Abs(p.X-other.X) <= valueEpsilon &&
		math.Abs(p.Y-other.Y) <= valueEpsilon
}

// SeriesID is a handle to a series registered with the chart surface.
//
// Handles are never reused, so a handle whose series has been removed simply
// fails to resolve instead of aliasing a different series.
type SeriesID int

// SeriesResolver re-validates series handles and projects canvas cells onto
// series samples. Implemented by the chart surface, which owns the samples.
type SeriesResolver interface {
	// Resolve reports whether id refers to a still-registered series.
	Resolve(id SeriesID) bool

	// NearestSample returns the data-space value of the series sample
	// closest to the given canvas cell. Returns false if the series is
	// unknown or has no samples.
	NearestSample(id SeriesID, cell canvas.Point) (Point, bool)
}

// AxisMapper converts between data-space and canvas cells under the chart's
// current axis ranges, and formats values for display.
type AxisMapper interface {
	// CellForValue returns the canvas cell a data-space point renders at.
	// Out-of-range values yield cells outside the plot area; callers do
	// not clip.
	CellForValue(v Point) canvas.Point

	// PlotArea returns the canvas rectangle of the graphing area,
	// excluding axes and tick labels.
	PlotArea() image.Rectangle

	// FormatX and FormatY render axis values with the chart's display
	// precision.
	FormatX(v float64) string
	FormatY(v float64) string
}

// Component is the capability set shared by the two annotation leaf types,
// Marker and Label. The chart surface renders components without knowing
// which kind it holds.
type Component interface {
	// Bounds returns the component's current canvas-cell bounds.
	Bounds() image.Rectangle

	// Draw renders the component onto the canvas. Cells outside the
	// canvas are dropped by the canvas itself.
	Draw(c *canvas.Model)

	// OnStyleChanged is invoked when the shared style is replaced.
	OnStyleChanged(st *Style)
}

// Parent is the visual tree the engine attaches its components to,
// implemented by the chart surface.
type Parent interface {
	AddOverlay(c Component)
	RemoveOverlay(c Component)
}
