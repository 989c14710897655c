// Package plot renders data series as braille line charts on a terminal
// canvas and acts as the chart surface for the tracepoint annotation engine:
// it owns the series samples, resolves series handles, maps data-space
// values to canvas cells and hosts the engine's markers and labels as
// overlay components.
package plot

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/traceplot/traceplot/internal/trace"
)

// Series holds the samples of one plotted line. Samples are kept in append
// order; callers are expected to append with ascending x, which the chart's
// visible-range search relies on.
type Series struct {
	id    trace.SeriesID
	name  string
	xs    []float64
	ys    []float64
	style lipgloss.Style
}

// ID returns the series handle used by the annotation engine.
func (s *Series) ID() trace.SeriesID {
	return s.id
}

// Name returns the display name of the series.
func (s *Series) Name() string {
	return s.name
}

// Len returns the number of samples.
func (s *Series) Len() int {
	return len(s.xs)
}

// Sample returns the i-th sample as a data-space point.
func (s *Series) Sample(i int) trace.Point {
	return trace.Point{X: s.xs[i], Y: s.ys[i]}
}

// Style returns the line style used when drawing the series.
func (s *Series) Style() lipgloss.Style {
	return s.style
}
