package trace

import "image"

// Corner identifies which corner of a label's rectangle sits adjacent to its
// marker. The label body extends diagonally away from that corner, so a
// TopLeft anchor places the label below and to the right of the marker.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

// String returns the string representation of a Corner.
func (c Corner) String() string {
	switch c {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	case BottomRight:
		return "bottom-right"
	default:
		return "unknown"
	}
}

// cornerFor picks the label corner for a pointer position inside the plot
// area. The area is split into quadrants by its midlines; the chosen corner
// matches the quadrant so the label body extends away from the nearest
// edges. Canvas Y grows downward, so "top" quadrants are the smaller Y half.
func cornerFor(cell image.Point, area image.Rectangle) Corner {
	midX := area.Min.X + area.Dx()/2
	midY := area.Min.Y + area.Dy()/2

	right := cell.X >= midX
	bottom := cell.Y >= midY

	switch {
	case !right && !bottom:
		return TopLeft
	case right && !bottom:
		return TopRight
	case !right && bottom:
		return BottomLeft
	default:
		return BottomRight
	}
}
