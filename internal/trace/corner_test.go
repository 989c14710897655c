package trace

import (
	"image"
	"testing"
)

func TestCornerForMidlineTies(t *testing.T) {
	t.Parallel()
	area := image.Rect(0, 0, 40, 20)

	// Cells exactly on a midline count as the right/bottom half.
	tests := []struct {
		cell image.Point
		want Corner
	}{
		{image.Pt(19, 9), TopLeft},
		{image.Pt(20, 9), TopRight},
		{image.Pt(19, 10), BottomLeft},
		{image.Pt(20, 10), BottomRight},
	}
	for _, tc := range tests {
		if got := cornerFor(tc.cell, area); got != tc.want {
			t.Errorf("cornerFor(%v) = %v, want %v", tc.cell, got, tc.want)
		}
	}
}

func TestCornerForOffsetArea(t *testing.T) {
	t.Parallel()
	// The plot area rarely starts at the origin; quadrants follow the
	// area's own midlines, not the canvas's.
	area := image.Rect(6, 2, 46, 22)

	if got := cornerFor(image.Pt(7, 3), area); got != TopLeft {
		t.Errorf("cornerFor near area min = %v, want %v", got, TopLeft)
	}
	if got := cornerFor(image.Pt(45, 21), area); got != BottomRight {
		t.Errorf("cornerFor near area max = %v, want %v", got, BottomRight)
	}
}

func TestCornerString(t *testing.T) {
	t.Parallel()
	if got := TopRight.String(); got != "top-right" {
		t.Errorf("String() = %q, want %q", got, "top-right")
	}
	if got := Corner(42).String(); got != "unknown" {
		t.Errorf("String() = %q, want %q", got, "unknown")
	}
}
