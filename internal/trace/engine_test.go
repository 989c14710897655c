package trace_test

import (
	"image"
	"math"
	"strconv"
	"testing"

	"github.com/NimbleMarkets/ntcharts/canvas"

	"github.com/traceplot/traceplot/internal/trace"
)

// fakeMapper maps data-space values to cells by rounding, plus an offset so
// tests can simulate an axis range change.
type fakeMapper struct {
	area    image.Rectangle
	offsetX int
	offsetY int
}

func newFakeMapper() *fakeMapper {
	return &fakeMapper{area: image.Rect(0, 0, 40, 20)}
}

func (m *fakeMapper) CellForValue(v trace.Point) canvas.Point {
	return image.Pt(int(math.Round(v.X))+m.offsetX, int(math.Round(v.Y))+m.offsetY)
}

func (m *fakeMapper) PlotArea() image.Rectangle { return m.area }

func (m *fakeMapper) FormatX(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func (m *fakeMapper) FormatY(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

// fakeResolver serves samples from an in-memory map keyed by series handle.
type fakeResolver struct {
	mapper *fakeMapper
	series map[trace.SeriesID][]trace.Point
}

func newFakeResolver(m *fakeMapper) *fakeResolver {
	return &fakeResolver{mapper: m, series: make(map[trace.SeriesID][]trace.Point)}
}

func (r *fakeResolver) Resolve(id trace.SeriesID) bool {
	_, ok := r.series[id]
	return ok
}

func (r *fakeResolver) NearestSample(id trace.SeriesID, cell canvas.Point) (trace.Point, bool) {
	samples, ok := r.series[id]
	if !ok || len(samples) == 0 {
		return trace.Point{}, false
	}
	best := samples[0]
	bestDist := math.MaxFloat64
	for _, s := range samples {
		c := r.mapper.CellForValue(s)
		dx := float64(c.X - cell.X)
		dy := float64(c.Y - cell.Y)
		if d := dx*dx + dy*dy; d < bestDist {
			bestDist = d
			best = s
		}
	}
	return best, true
}

// fakeParent records overlay registrations in order.
type fakeParent struct {
	overlays []trace.Component
}

func (p *fakeParent) AddOverlay(c trace.Component) {
	p.overlays = append(p.overlays, c)
}

func (p *fakeParent) RemoveOverlay(c trace.Component) {
	for i, o := range p.overlays {
		if o == c {
			p.overlays = append(p.overlays[:i], p.overlays[i+1:]...)
			return
		}
	}
}

func (p *fakeParent) labelOf(e *trace.Engine) *trace.Label {
	for _, o := range p.overlays {
		if e.IsLabel(o) {
			return o.(*trace.Label)
		}
	}
	return nil
}

func setup(samples ...trace.Point) (*trace.Engine, *fakeMapper, *fakeParent) {
	mapper := newFakeMapper()
	resolver := newFakeResolver(mapper)
	resolver.series[1] = samples
	engine := trace.NewEngine(resolver, nil)
	parent := &fakeParent{}
	engine.AttachTo(parent)
	return engine, mapper, parent
}

func TestToggleAddsThenRemoves(t *testing.T) {
	t.Parallel()
	engine, mapper, parent := setup(trace.Point{X: 5, Y: 5}, trace.Point{X: 30, Y: 15})

	engine.Toggle(image.Pt(5, 5), 1, mapper)
	if engine.Count() != 1 {
		t.Fatalf("Count after add = %d, want 1", engine.Count())
	}
	marker, ok := engine.MarkerAt(image.Pt(5, 5))
	if !ok {
		t.Fatal("MarkerAt missed the added marker")
	}
	if got, want := marker.Bounds(), image.Rect(5, 5, 6, 6); got != want {
		t.Errorf("marker bounds = %v, want %v", got, want)
	}
	if len(parent.overlays) != 2 {
		t.Errorf("overlays after add = %d, want 2 (marker and label)", len(parent.overlays))
	}

	engine.Toggle(image.Pt(5, 5), 1, mapper)
	if engine.Count() != 0 {
		t.Fatalf("Count after second toggle = %d, want 0", engine.Count())
	}
	if len(parent.overlays) != 0 {
		t.Errorf("overlays after remove = %d, want 0", len(parent.overlays))
	}
}

func TestToggleRemovesWithinHitSlop(t *testing.T) {
	t.Parallel()
	engine, mapper, _ := setup(trace.Point{X: 5, Y: 5}, trace.Point{X: 30, Y: 15})

	engine.Toggle(image.Pt(5, 5), 1, mapper)

	// One cell off still hits the same marker.
	engine.Toggle(image.Pt(6, 6), 1, mapper)
	if engine.Count() != 0 {
		t.Fatalf("Count = %d, want 0 after toggling one cell away", engine.Count())
	}
}

func TestToggleRemovesByProjectedValue(t *testing.T) {
	t.Parallel()
	// A single sample: any click projects onto it, so a second toggle far
	// from the marker cell must still remove rather than stack a duplicate.
	engine, mapper, _ := setup(trace.Point{X: 5, Y: 5})

	engine.Toggle(image.Pt(5, 5), 1, mapper)
	engine.Toggle(image.Pt(30, 15), 1, mapper)
	if engine.Count() != 0 {
		t.Fatalf("Count = %d, want 0 after toggling the same projected sample", engine.Count())
	}
}

func TestToggleUnknownSeriesIsNoOp(t *testing.T) {
	t.Parallel()
	engine, mapper, _ := setup(trace.Point{X: 5, Y: 5})

	engine.Toggle(image.Pt(5, 5), 99, mapper)
	if engine.Count() != 0 {
		t.Fatalf("Count = %d, want 0 for a handle that does not resolve", engine.Count())
	}
}

func TestToggleKeepsSeriesIndependent(t *testing.T) {
	t.Parallel()
	mapper := newFakeMapper()
	resolver := newFakeResolver(mapper)
	resolver.series[1] = []trace.Point{{X: 5, Y: 5}}
	resolver.series[2] = []trace.Point{{X: 5.4, Y: 5.4}}
	engine := trace.NewEngine(resolver, nil)

	// Both samples render at cell (5,5), but toggles on different handles
	// must not remove each other's annotations.
	engine.Toggle(image.Pt(5, 5), 1, mapper)
	engine.Toggle(image.Pt(5, 5), 2, mapper)
	if engine.Count() != 2 {
		t.Fatalf("Count = %d, want 2 annotations on overlapping cells", engine.Count())
	}

	engine.Toggle(image.Pt(5, 5), 1, mapper)
	if engine.Count() != 1 {
		t.Fatalf("Count = %d, want 1 after removing only series 1", engine.Count())
	}
	marker, ok := engine.MarkerAt(image.Pt(5, 5))
	if !ok {
		t.Fatal("MarkerAt missed the surviving marker")
	}
	if id, ok := engine.AssociatedSeriesOf(marker); !ok || id != 2 {
		t.Errorf("AssociatedSeriesOf = (%d, %t), want (2, true)", id, ok)
	}
}

func TestRefreshAllIsIdempotent(t *testing.T) {
	t.Parallel()
	engine, mapper, _ := setup(trace.Point{X: 5, Y: 5})

	engine.Toggle(image.Pt(5, 5), 1, mapper)
	marker, _ := engine.MarkerAt(image.Pt(5, 5))
	before := marker.Bounds()

	engine.RefreshAll(mapper)
	engine.RefreshAll(mapper)
	if marker.Bounds() != before {
		t.Errorf("bounds drifted under an unchanged mapping: %v -> %v", before, marker.Bounds())
	}
}

func TestRefreshAllTracksMappingChange(t *testing.T) {
	t.Parallel()
	engine, mapper, _ := setup(trace.Point{X: 5, Y: 5})

	engine.Toggle(image.Pt(5, 5), 1, mapper)

	mapper.offsetX = 3
	mapper.offsetY = -2
	engine.RefreshAll(mapper)

	marker, ok := engine.MarkerAt(image.Pt(8, 3))
	if !ok {
		t.Fatal("marker did not follow the mapping change")
	}
	if got, want := marker.Bounds(), image.Rect(8, 3, 9, 4); got != want {
		t.Errorf("marker bounds = %v, want %v", got, want)
	}
}

func TestCornerSelectionPerQuadrant(t *testing.T) {
	t.Parallel()

	// The plot area is 40x20; the label body must extend away from the
	// nearest edges, so its position relative to the marker flips per
	// quadrant. Canvas Y grows downward.
	tests := []struct {
		name      string
		sample    trace.Point
		wantRight bool // label sits right of the marker
		wantBelow bool // label sits below the marker
	}{
		{"top-left quadrant", trace.Point{X: 5, Y: 5}, true, true},
		{"top-right quadrant", trace.Point{X: 30, Y: 5}, false, true},
		{"bottom-left quadrant", trace.Point{X: 5, Y: 15}, true, false},
		{"bottom-right quadrant", trace.Point{X: 30, Y: 15}, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			engine, mapper, parent := setup(tc.sample)

			cell := mapper.CellForValue(tc.sample)
			engine.Toggle(cell, 1, mapper)

			marker, ok := engine.MarkerAt(cell)
			if !ok {
				t.Fatal("MarkerAt missed the added marker")
			}
			label := parent.labelOf(engine)
			if label == nil {
				t.Fatal("no label attached")
			}

			lb, mb := label.Bounds(), marker.Bounds()
			if gotRight := lb.Min.X >= mb.Max.X; gotRight != tc.wantRight {
				t.Errorf("label right of marker = %t, want %t (label %v, marker %v)",
					gotRight, tc.wantRight, lb, mb)
			}
			if gotBelow := lb.Min.Y >= mb.Max.Y; gotBelow != tc.wantBelow {
				t.Errorf("label below marker = %t, want %t (label %v, marker %v)",
					gotBelow, tc.wantBelow, lb, mb)
			}
		})
	}
}

func TestUpdateCornerForReanchorsLabel(t *testing.T) {
	t.Parallel()
	engine, mapper, parent := setup(trace.Point{X: 5, Y: 5})

	engine.Toggle(image.Pt(5, 5), 1, mapper)
	marker, _ := engine.MarkerAt(image.Pt(5, 5))
	label := parent.labelOf(engine)

	// Dragging the pointer to the bottom-right quadrant flips the label
	// above and left of the marker.
	engine.UpdateCornerFor(marker, image.Pt(30, 15), mapper)
	if lb, mb := label.Bounds(), marker.Bounds(); lb.Min.X >= mb.Max.X || lb.Min.Y >= mb.Min.Y {
		t.Errorf("label %v did not move above-left of marker %v", lb, mb)
	}

	// Unknown components are ignored.
	engine.UpdateCornerFor(label, image.Pt(5, 5), mapper)
}

func TestComponentKindsAreExclusive(t *testing.T) {
	t.Parallel()
	engine, mapper, parent := setup(trace.Point{X: 5, Y: 5})

	engine.Toggle(image.Pt(5, 5), 1, mapper)
	marker, _ := engine.MarkerAt(image.Pt(5, 5))
	label := parent.labelOf(engine)

	if !engine.IsMarker(marker) || engine.IsLabel(marker) {
		t.Error("marker must be IsMarker and not IsLabel")
	}
	if !engine.IsLabel(label) || engine.IsMarker(label) {
		t.Error("label must be IsLabel and not IsMarker")
	}
	if _, ok := engine.AssociatedSeriesOf(label); ok {
		t.Error("AssociatedSeriesOf must not resolve a label")
	}
}

func TestMarkerAtMiss(t *testing.T) {
	t.Parallel()
	engine, mapper, _ := setup(trace.Point{X: 5, Y: 5})

	engine.Toggle(image.Pt(5, 5), 1, mapper)
	if _, ok := engine.MarkerAt(image.Pt(20, 12)); ok {
		t.Error("MarkerAt hit a cell far from any marker")
	}
}

func TestLabelTextUsesAxisFormatting(t *testing.T) {
	t.Parallel()
	engine, mapper, parent := setup(trace.Point{X: 5, Y: 12})

	engine.Toggle(image.Pt(5, 12), 1, mapper)
	label := parent.labelOf(engine)

	x, y := label.Texts()
	if x != "x: 5.00" {
		t.Errorf("x line = %q, want %q", x, "x: 5.00")
	}
	if y != "y: 12.00" {
		t.Errorf("y line = %q, want %q", y, "y: 12.00")
	}
}

func TestSetStyleChangesMarkerGlyph(t *testing.T) {
	t.Parallel()
	engine, mapper, _ := setup(trace.Point{X: 5, Y: 5})

	engine.Toggle(image.Pt(5, 5), 1, mapper)
	marker, _ := engine.MarkerAt(image.Pt(5, 5))

	cnv := canvas.New(40, 20)
	marker.Draw(&cnv)
	if got := cnv.Cell(image.Pt(5, 5)).Rune; got != trace.DefaultGlyph {
		t.Fatalf("glyph before restyle = %q, want %q", got, trace.DefaultGlyph)
	}

	st := trace.DefaultStyle()
	st.Glyph = '◆'
	engine.SetStyle(st)

	marker.Draw(&cnv)
	if got := cnv.Cell(image.Pt(5, 5)).Rune; got != '◆' {
		t.Errorf("glyph after restyle = %q, want %q", got, '◆')
	}
}

func TestEngineDrawRendersMarkerAndLabel(t *testing.T) {
	t.Parallel()
	engine, mapper, _ := setup(trace.Point{X: 5, Y: 5})

	engine.Toggle(image.Pt(5, 5), 1, mapper)

	cnv := canvas.New(40, 20)
	engine.Draw(&cnv)

	if got := cnv.Cell(image.Pt(5, 5)).Rune; got != trace.DefaultGlyph {
		t.Errorf("marker cell = %q, want %q", got, trace.DefaultGlyph)
	}
	// Top-left quadrant: the label starts just below-right of the marker.
	if got := cnv.Cell(image.Pt(6, 6)).Rune; got != 'x' {
		t.Errorf("label cell = %q, want 'x'", got)
	}
}

func TestDropSeriesRemovesOnlyItsAnnotations(t *testing.T) {
	t.Parallel()
	mapper := newFakeMapper()
	resolver := newFakeResolver(mapper)
	resolver.series[1] = []trace.Point{{X: 5, Y: 5}}
	resolver.series[2] = []trace.Point{{X: 30, Y: 15}}
	engine := trace.NewEngine(resolver, nil)
	parent := &fakeParent{}
	engine.AttachTo(parent)

	engine.Toggle(image.Pt(5, 5), 1, mapper)
	engine.Toggle(image.Pt(30, 15), 2, mapper)

	engine.DropSeries(1)
	if engine.Count() != 1 {
		t.Fatalf("Count = %d, want 1 after dropping series 1", engine.Count())
	}
	marker, ok := engine.MarkerAt(image.Pt(30, 15))
	if !ok {
		t.Fatal("series 2 annotation was dropped too")
	}
	if id, _ := engine.AssociatedSeriesOf(marker); id != 2 {
		t.Errorf("surviving annotation series = %d, want 2", id)
	}
	if len(parent.overlays) != 2 {
		t.Errorf("overlays = %d, want 2 after dropping one pair", len(parent.overlays))
	}
}

func TestClearDetachesEverything(t *testing.T) {
	t.Parallel()
	engine, mapper, parent := setup(trace.Point{X: 5, Y: 5}, trace.Point{X: 30, Y: 15})

	engine.Toggle(image.Pt(5, 5), 1, mapper)
	engine.Toggle(image.Pt(30, 15), 1, mapper)

	engine.Clear()
	if engine.Count() != 0 {
		t.Fatalf("Count = %d, want 0 after Clear", engine.Count())
	}
	if len(parent.overlays) != 0 {
		t.Errorf("overlays = %d, want 0 after Clear", len(parent.overlays))
	}
}

func TestAttachToRegistersExistingAnnotations(t *testing.T) {
	t.Parallel()
	mapper := newFakeMapper()
	resolver := newFakeResolver(mapper)
	resolver.series[1] = []trace.Point{{X: 5, Y: 5}}
	engine := trace.NewEngine(resolver, nil)

	// Toggled with no parent attached yet.
	engine.Toggle(image.Pt(5, 5), 1, mapper)

	parent := &fakeParent{}
	engine.AttachTo(parent)
	if len(parent.overlays) != 2 {
		t.Fatalf("overlays after late attach = %d, want 2", len(parent.overlays))
	}
}
