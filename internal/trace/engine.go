package trace

import (
	"github.com/NimbleMarkets/ntcharts/canvas"
)

// hitSlop pads marker bounds by one cell in every direction for hit tests,
// since a terminal cell is a coarse target.
const hitSlop = 1

// annotation is the unit the engine manages: a marker/label pair bound to
// one series. The series handle is set at creation and never changes.
type annotation struct {
	label  *Label
	marker *Marker
	series SeriesID
	corner Corner
}

// Engine owns an insertion-ordered collection of tracepoint annotations and
// the toggle, re-projection, corner-selection and hit-testing logic over it.
//
// Iteration order is insertion order; where hit regions overlap, the
// earliest-inserted annotation wins. All methods must be called from the
// single goroutine driving the UI; the engine does no locking.
type Engine struct {
	style       *Style
	resolver    SeriesResolver
	parent      Parent
	annotations []*annotation
}

// NewEngine returns an engine that validates series handles against resolver.
// A nil style falls back to DefaultStyle.
func NewEngine(resolver SeriesResolver, style *Style) *Engine {
	if style == nil {
		style = DefaultStyle()
	}
	return &Engine{style: style, resolver: resolver}
}

// Count returns the number of live annotations.
func (e *Engine) Count() int {
	return len(e.annotations)
}

// AttachTo registers every live component with the parent's visual tree and
// keeps the parent so components created by later toggles are attached too.
func (e *Engine) AttachTo(p Parent) {
	e.parent = p
	for _, a := range e.annotations {
		p.AddOverlay(a.marker)
		p.AddOverlay(a.label)
	}
}

// Toggle adds a tracepoint at the series sample nearest to cell, or removes
// an existing one whose marker occupies that cell.
//
// The removal match is canonical: same series, and either the marker's
// slop-padded bounds contain the cell or its stored value equals the
// projection of the cell onto the series within tolerance. The first match
// in insertion order is removed.
//
// An added annotation is refreshed synchronously (bounds, label text, corner)
// before Toggle returns, so no annotation is ever observable with zero
// bounds. A handle that no longer resolves makes Toggle a no-op.
func (e *Engine) Toggle(cell canvas.Point, id SeriesID, am AxisMapper) {
	if e.resolver == nil || !e.resolver.Resolve(id) {
		return
	}

	projected, ok := e.resolver.NearestSample(id, cell)

	for i, a := range e.annotations {
		if a.series != id {
			continue
		}
		hit := cell.In(a.marker.Bounds().Inset(-hitSlop))
		if !hit && ok {
			hit = a.marker.ValueEquals(projected)
		}
		if hit {
			e.removeAt(i)
			return
		}
	}

	if !ok {
		return
	}

	a := &annotation{
		label:  newLabel(e.style),
		marker: newMarker(projected, e.style),
		series: id,
		corner: TopLeft,
	}
	e.annotations = append(e.annotations, a)
	e.refresh(a, am)
	e.selectCorner(a, cell, am)
	if e.parent != nil {
		e.parent.AddOverlay(a.marker)
		e.parent.AddOverlay(a.label)
	}
}

// RefreshAll re-projects every annotation under the given axis mapping, in
// insertion order: marker bounds from the stored data-space value, label
// text, and label bounds from the stored corner. Corners are not re-derived
// here. Idempotent for an unchanged mapping.
func (e *Engine) RefreshAll(am AxisMapper) {
	for _, a := range e.annotations {
		e.refresh(a, am)
	}
}

// UpdateCornerFor re-selects the label corner for the annotation owning the
// given marker, based on the pointer position within the plot area, then
// recomputes that label's bounds only. Unknown components are a no-op.
func (e *Engine) UpdateCornerFor(c Component, pointer canvas.Point, am AxisMapper) {
	for _, a := range e.annotations {
		if Component(a.marker) == c {
			e.selectCorner(a, pointer, am)
			return
		}
	}
}

// IsMarker reports whether c is one of the engine's markers.
func (e *Engine) IsMarker(c Component) bool {
	for _, a := range e.annotations {
		if Component(a.marker) == c {
			return true
		}
	}
	return false
}

// IsLabel reports whether c is one of the engine's labels.
func (e *Engine) IsLabel(c Component) bool {
	for _, a := range e.annotations {
		if Component(a.label) == c {
			return true
		}
	}
	return false
}

// AssociatedSeriesOf returns the series handle of the annotation owning the
// given marker. The false result is a normal outcome for components the
// engine does not own.
func (e *Engine) AssociatedSeriesOf(c Component) (SeriesID, bool) {
	for _, a := range e.annotations {
		if Component(a.marker) == c {
			return a.series, true
		}
	}
	return 0, false
}

// MarkerAt returns the first marker, in insertion order, whose slop-padded
// bounds contain the given cell. Used by the surface to route pointer events.
func (e *Engine) MarkerAt(cell canvas.Point) (*Marker, bool) {
	for _, a := range e.annotations {
		if cell.In(a.marker.Bounds().Inset(-hitSlop)) {
			return a.marker, true
		}
	}
	return nil, false
}

// SetStyle stores the shared style pointer and pushes it to every live
// marker and label.
func (e *Engine) SetStyle(st *Style) {
	if st == nil {
		st = DefaultStyle()
	}
	e.style = st
	for _, a := range e.annotations {
		a.marker.OnStyleChanged(st)
		a.label.OnStyleChanged(st)
	}
}

// DropSeries removes every annotation bound to the given series. The surface
// must call this before unregistering a series so no annotation is left
// holding a dead handle.
func (e *Engine) DropSeries(id SeriesID) {
	for i := len(e.annotations) - 1; i >= 0; i-- {
		if e.annotations[i].series == id {
			e.removeAt(i)
		}
	}
}

// Clear removes every annotation.
func (e *Engine) Clear() {
	for i := len(e.annotations) - 1; i >= 0; i-- {
		e.removeAt(i)
	}
}

// Draw renders every annotation in insertion order, marker before label.
// Surfaces that attach the engine's components as overlays render them
// individually instead and never call this.
func (e *Engine) Draw(c *canvas.Model) {
	for _, a := range e.annotations {
		a.marker.Draw(c)
		a.label.Draw(c)
	}
}

// refresh recomputes one annotation's marker bounds, label text and label
// bounds under the given mapping.
func (e *Engine) refresh(a *annotation, am AxisMapper) {
	a.marker.Reposition(am)
	a.label.SetFrom(a.marker.Value(), am)
	a.label.Anchor(a.marker.Bounds(), a.corner)
}

// selectCorner stores the corner chosen for the pointer position and
// re-anchors the label.
func (e *Engine) selectCorner(a *annotation, pointer canvas.Point, am AxisMapper) {
	a.corner = cornerFor(pointer, am.PlotArea())
	a.label.Anchor(a.marker.Bounds(), a.corner)
}

// removeAt releases the annotation at index i, detaching its components from
// the parent and preserving insertion order of the rest.
func (e *Engine) removeAt(i int) {
	a := e.annotations[i]
	if e.parent != nil {
		e.parent.RemoveOverlay(a.marker)
		e.parent.RemoveOverlay(a.label)
	}
	e.annotations = append(e.annotations[:i], e.annotations[i+1:]...)
}
