package trace

import (
	"image"

	"github.com/NimbleMarkets/ntcharts/canvas"
)

// Marker is a tracepoint: a one-cell glyph pinned to a data-space value on a
// series. Its canvas bounds are derived from the value through the current
// axis mapping and are recomputed whenever the axes change.
type Marker struct {
	value  Point
	bounds image.Rectangle
	style  *Style
}

func newMarker(value Point, st *Style) *Marker {
	return &Marker{value: value, style: st}
}

// Value returns the data-space value the marker annotates.
func (m *Marker) Value() Point {
	return m.value
}

// ValueEquals reports whether the marker annotates the given value, within
// floating tolerance.
func (m *Marker) ValueEquals(v Point) bool {
	return m.value.Eq(v)
}

// Reposition recomputes the marker's bounds from its stored value under the
// given axis mapping. Values outside the view land outside the canvas and
// clip naturally when drawn.
func (m *Marker) Reposition(am AxisMapper) {
	cell := am.CellForValue(m.value)
	m.bounds = image.Rect(cell.X, cell.Y, cell.X+1, cell.Y+1)
}

// Bounds returns the marker's current canvas bounds.
func (m *Marker) Bounds() image.Rectangle {
	return m.bounds
}

// Draw renders the marker glyph at its cell.
func (m *Marker) Draw(c *canvas.Model) {
	st := m.style
	if st == nil {
		st = DefaultStyle()
	}
	c.SetCell(m.bounds.Min, canvas.NewCellWithStyle(st.glyph(), st.Marker))
}

// OnStyleChanged installs the new shared style.
func (m *Marker) OnStyleChanged(st *Style) {
	m.style = st
}
