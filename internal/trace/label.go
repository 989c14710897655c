package trace

import (
	"image"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/mattn/go-runewidth"
)

// Label is a tracelabel: the two-line text annotation paired with a Marker,
// showing the marker's x and y value. One of its four corners anchors
// adjacent to the marker; the label body extends diagonally away from it.
type Label struct {
	xText  string
	yText  string
	bounds image.Rectangle
	style  *Style
}

func newLabel(st *Style) *Label {
	return &Label{style: st}
}

// SetFrom formats both text lines from a data-space point using the axis
// mapping's display precision.
func (l *Label) SetFrom(v Point, am AxisMapper) {
	l.xText = "x: " + am.FormatX(v.X)
	l.yText = "y: " + am.FormatY(v.Y)
}

// Texts returns the current x and y line.
func (l *Label) Texts() (x, y string) {
	return l.xText, l.yText
}

// size returns the label's cell dimensions: the widest line by two rows.
func (l *Label) size() (w, h int) {
	w = runewidth.StringWidth(l.xText)
	if yw := runewidth.StringWidth(l.yText); yw > w {
		w = yw
	}
	return w, 2
}

// Anchor recomputes the label's bounds so that the given corner of the label
// sits diagonally adjacent to the marker's bounds, corner-for-corner: a
// TopLeft anchor puts the label's top-left cell just below-right of the
// marker, extending the body down and to the right.
func (l *Label) Anchor(marker image.Rectangle, corner Corner) {
	w, h := l.size()

	var min image.Point
	switch corner {
	case TopLeft:
		min = image.Pt(marker.Max.X, marker.Max.Y)
	case TopRight:
		min = image.Pt(marker.Min.X-w, marker.Max.Y)
	case BottomLeft:
		min = image.Pt(marker.Max.X, marker.Min.Y-h)
	case BottomRight:
		min = image.Pt(marker.Min.X-w, marker.Min.Y-h)
	}
	l.bounds = image.Rect(min.X, min.Y, min.X+w, min.Y+h)
}

// Bounds returns the label's current canvas bounds.
func (l *Label) Bounds() image.Rectangle {
	return l.bounds
}

// Draw renders the two text lines stacked at the label's bounds.
func (l *Label) Draw(c *canvas.Model) {
	st := l.style
	if st == nil {
		st = DefaultStyle()
	}
	c.SetStringWithStyle(l.bounds.Min, l.xText, st.Label)
	c.SetStringWithStyle(l.bounds.Min.Add(image.Pt(0, 1)), l.yText, st.Label)
}

// OnStyleChanged installs the new shared style.
func (l *Label) OnStyleChanged(st *Style) {
	l.style = st
}
