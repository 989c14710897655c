package plot

import (
	"image"
	"math"
	"sort"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/canvas/graph"
	"github.com/NimbleMarkets/ntcharts/linechart"

	"github.com/traceplot/traceplot/internal/trace"
)

// LineChart is a multi-series braille line chart with an annotation overlay.
//
// It embeds an ntcharts linechart for axes, ranges and the cell canvas, and
// implements trace.SeriesResolver, trace.AxisMapper and trace.Parent so the
// annotation engine can project cells onto samples, convert data-space
// values to cells and attach its markers and labels for rendering.
type LineChart struct {
	linechart.Model

	series map[trace.SeriesID]*Series
	order  []trace.SeriesID
	nextID trace.SeriesID

	overlays []trace.Component

	minValue float64
	maxValue float64
	xMinData float64
	xMaxData float64

	maxSteps int
	dirty    bool

	isZoomed     bool    // user has zoomed; keep their view on range updates
	userViewMinX float64 // preserved zoom window
	userViewMaxX float64
}

// New returns an empty chart of the given total size (including axes and
// tick labels).
func New(width, height int) *LineChart {
	c := &LineChart{
		Model: linechart.New(width, height, 0, 20, 0, 1,
			linechart.WithXYSteps(4, 5),
			linechart.WithXLabelFormatter(axisLabel),
			linechart.WithYLabelFormatter(axisLabel),
		),
		series:   make(map[trace.SeriesID]*Series),
		maxSteps: 20,
		minValue: math.Inf(1),
		maxValue: math.Inf(-1),
		xMinData: math.Inf(1),
		xMaxData: math.Inf(-1),
	}
	c.AxisStyle = axisStyle
	c.LabelStyle = labelStyle
	return c
}

func axisLabel(_ int, v float64) string {
	return FormatValue(v)
}

// AddSeries registers a new named series and returns it. Handles increase
// monotonically and are never reused, so a removed series' handle fails to
// resolve instead of aliasing a later one.
func (c *LineChart) AddSeries(name string) *Series {
	s := &Series{
		id:    c.nextID,
		name:  name,
		style: SeriesStyle(len(c.order)),
	}
	c.nextID++
	c.series[s.id] = s
	c.order = append(c.order, s.id)
	c.dirty = true
	return s
}

// RemoveSeries unregisters a series. The annotation engine must have dropped
// the series' annotations first (Engine.DropSeries); the stale handle then
// simply fails to resolve.
func (c *LineChart) RemoveSeries(id trace.SeriesID) {
	if _, ok := c.series[id]; !ok {
		return
	}
	delete(c.series, id)
	for i, sid := range c.order {
		if sid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.dirty = true
}

// SeriesByID returns a registered series.
func (c *LineChart) SeriesByID(id trace.SeriesID) (*Series, bool) {
	s, ok := c.series[id]
	return s, ok
}

// SeriesIDs returns the registered series handles in registration order.
func (c *LineChart) SeriesIDs() []trace.SeriesID {
	ids := make([]trace.SeriesID, len(c.order))
	copy(ids, c.order)
	return ids
}

// AddPoint appends a sample to a series and updates the chart ranges.
// Samples must be appended with ascending x per series.
func (c *LineChart) AddPoint(id trace.SeriesID, x, y float64) {
	s, ok := c.series[id]
	if !ok {
		return
	}
	s.xs = append(s.xs, x)
	s.ys = append(s.ys, y)

	if y < c.minValue {
		c.minValue = y
	}
	if y > c.maxValue {
		c.maxValue = y
	}
	if x < c.xMinData {
		c.xMinData = x
	}
	if x > c.xMaxData {
		c.xMaxData = x
	}

	c.updateRanges()
	c.dirty = true
}

// updateRanges recomputes the axis ranges from the observed data.
func (c *LineChart) updateRanges() {
	if !isFinite(c.minValue) || !isFinite(c.maxValue) {
		return
	}

	// Y range with padding.
	valueRange := c.maxValue - c.minValue
	padding := c.calculatePadding(valueRange)

	newMinY := c.minValue - padding
	newMaxY := c.maxValue + padding

	// Don't go negative for non-negative data.
	if c.minValue >= 0 && newMinY < 0 {
		newMinY = 0
	}

	// Round the observed max X up to a "nice" domain for axis display.
	dataMaxX := c.xMaxData
	if !isFinite(dataMaxX) {
		dataMaxX = 0
	}
	niceMax := dataMaxX
	if niceMax < 20 {
		// Keep a decent default domain while data is still sparse.
		niceMax = 20
	} else {
		niceMax = float64(((int(math.Ceil(niceMax)) + 9) / 10) * 10)
	}
	c.maxSteps = int(math.Ceil(niceMax))

	domainMin := c.xMinData
	if !isFinite(domainMin) || domainMin > 0 {
		domainMin = 0
	}

	c.SetYRange(newMinY, newMaxY)
	c.SetViewYRange(newMinY, newMaxY)

	// Always cover the nice domain; only alter the view when not zoomed.
	c.SetXRange(domainMin, niceMax)
	if !c.isZoomed {
		c.SetViewXRange(domainMin, niceMax)
	}

	c.SetXYRange(c.MinX(), c.MaxX(), newMinY, newMaxY)
}

// calculatePadding determines appropriate padding for the Y axis.
func (c *LineChart) calculatePadding(valueRange float64) float64 {
	if valueRange == 0 {
		absValue := math.Abs(c.maxValue)
		switch {
		case absValue < 0.001:
			return 0.0001
		case absValue < 0.1:
			return absValue * 0.1
		default:
			return 0.1
		}
	}

	padding := valueRange * 0.1
	if padding < 1e-6 {
		padding = 1e-6
	}
	return padding
}

// HandleZoom adjusts the view X range around the data value under mouseX,
// which is relative to the graphing area. Direction is "in" or "out".
func (c *LineChart) HandleZoom(direction string, mouseX int) {
	const zoomFactor = 0.1
	const minRange = 5.0

	viewMin := c.ViewMinX()
	viewMax := c.ViewMaxX()
	viewRange := viewMax - viewMin
	if viewRange <= 0 || c.GraphWidth() <= 0 {
		return
	}

	// The data position under the mouse stays fixed while the range
	// contracts or expands around it.
	mouseProportion := float64(mouseX) / float64(c.GraphWidth())
	valueUnderMouse := viewMin + mouseProportion*viewRange

	var newRange float64
	if direction == "in" {
		newRange = viewRange * (1 - zoomFactor)
	} else {
		newRange = viewRange * (1 + zoomFactor)
	}

	if newRange < minRange {
		newRange = minRange
	}
	if newRange > c.MaxX()-c.MinX() {
		newRange = c.MaxX() - c.MinX()
	}

	newMin := valueUnderMouse - newRange*mouseProportion
	newMax := valueUnderMouse + newRange*(1-mouseProportion)

	// Clamp to the domain [MinX .. MaxX].
	domMin, domMax := c.MinX(), c.MaxX()
	if newMin < domMin {
		newMin = domMin
		newMax = newMin + newRange
		if newMax > domMax {
			newMax = domMax
		}
	}
	if newMax > domMax {
		newMax = domMax
		newMin = newMax - newRange
		if newMin < domMin {
			newMin = domMin
		}
	}

	c.SetViewXRange(newMin, newMax)
	c.userViewMinX = newMin
	c.userViewMaxX = newMax
	c.isZoomed = true
	c.dirty = true
}

// ResetZoom restores the full data view.
func (c *LineChart) ResetZoom() {
	c.isZoomed = false
	c.updateRanges()
	c.dirty = true
}

// Resize updates the chart dimensions.
func (c *LineChart) Resize(width, height int) {
	if c.Width() != width || c.Height() != height {
		c.Model.Resize(width, height)
		c.updateRanges()
		c.dirty = true
	}
}

// Resolve implements trace.SeriesResolver.
func (c *LineChart) Resolve(id trace.SeriesID) bool {
	_, ok := c.series[id]
	return ok
}

// NearestSample implements trace.SeriesResolver: it projects a canvas cell
// onto the series sample whose rendered cell is closest, scanning all
// samples. O(n) per call, which is fine for interactive sample counts.
func (c *LineChart) NearestSample(id trace.SeriesID, cell canvas.Point) (trace.Point, bool) {
	s, ok := c.series[id]
	if !ok || s.Len() == 0 {
		return trace.Point{}, false
	}

	var best trace.Point
	bestDist := math.MaxFloat64
	for i := 0; i < s.Len(); i++ {
		v := s.Sample(i)
		p := c.CellForValue(v)
		dx := float64(p.X - cell.X)
		dy := float64(p.Y - cell.Y)
		if d := dx*dx + dy*dy; d < bestDist {
			bestDist = d
			best = v
		}
	}
	return best, true
}

// CellForValue implements trace.AxisMapper. It mirrors the placement math
// of the linechart's rune drawing, so marker bounds and drawn series agree
// cell-for-cell.
func (c *LineChart) CellForValue(v trace.Point) canvas.Point {
	sf := c.ScaleFloat64Point(canvas.Float64Point{X: v.X, Y: v.Y})
	p := canvas.CanvasPointFromFloat64Point(c.Origin(), sf)
	if c.YStep() > 0 {
		p.X++
	}
	if c.XStep() > 0 {
		p.Y--
	}
	return p
}

// PlotArea implements trace.AxisMapper: the canvas rectangle of the graphing
// area, excluding the axes and their tick labels.
func (c *LineChart) PlotArea() image.Rectangle {
	minX := 0
	if c.YStep() > 0 {
		minX = c.Origin().X + 1
	}
	maxY := c.Height()
	if c.XStep() > 0 {
		maxY = c.Origin().Y
	}
	return image.Rect(minX, 0, c.Width(), maxY)
}

// FormatX implements trace.AxisMapper.
func (c *LineChart) FormatX(v float64) string {
	return c.XLabelFormatter(0, v)
}

// FormatY implements trace.AxisMapper.
func (c *LineChart) FormatY(v float64) string {
	return c.YLabelFormatter(0, v)
}

// AddOverlay implements trace.Parent.
func (c *LineChart) AddOverlay(comp trace.Component) {
	c.overlays = append(c.overlays, comp)
	c.dirty = true
}

// RemoveOverlay implements trace.Parent.
func (c *LineChart) RemoveOverlay(comp trace.Component) {
	for i, o := range c.overlays {
		if o == comp {
			c.overlays = append(c.overlays[:i], c.overlays[i+1:]...)
			c.dirty = true
			return
		}
	}
}

// OverlayCount returns the number of attached overlay components.
func (c *LineChart) OverlayCount() int {
	return len(c.overlays)
}

// MarkDirty forces the next DrawIfNeeded to redraw.
func (c *LineChart) MarkDirty() {
	c.dirty = true
}

// DrawIfNeeded redraws only when the chart is marked dirty.
func (c *LineChart) DrawIfNeeded() {
	if c.dirty {
		c.Draw()
	}
}

// Draw renders the axes, every series as a braille line, and finally the
// annotation overlays on top.
func (c *LineChart) Draw() {
	c.Clear()
	c.DrawXYAxisAndLabel()

	for _, id := range c.order {
		c.drawSeries(c.series[id])
	}

	for _, o := range c.overlays {
		o.Draw(&c.Canvas)
	}

	c.dirty = false
}

// drawSeries renders one series' visible samples into a braille grid and
// blits the patterns onto the canvas with the series style.
func (c *LineChart) drawSeries(s *Series) {
	if s.Len() == 0 || c.GraphWidth() <= 0 || c.GraphHeight() <= 0 {
		return
	}

	// Visible index window via binary search on X; a small epsilon keeps a
	// sample exactly at viewMax from being dropped by rounding.
	lb := sort.Search(s.Len(), func(i int) bool { return s.Sample(i).X >= c.ViewMinX() })
	eps := c.pixelEpsX(c.ViewMaxX() - c.ViewMinX())
	ub := sort.Search(s.Len(), func(i int) bool { return s.Sample(i).X > c.ViewMaxX()+eps })
	if ub-lb <= 0 {
		return
	}

	bGrid := graph.NewBrailleGrid(
		c.GraphWidth(),
		c.GraphHeight(),
		0, float64(c.GraphWidth()),
		0, float64(c.GraphHeight()),
	)

	xScale := float64(c.GraphWidth()) / (c.ViewMaxX() - c.ViewMinX())
	yScale := float64(c.GraphHeight()) / (c.ViewMaxY() - c.ViewMinY())

	points := make([]canvas.Float64Point, 0, ub-lb)
	for i := lb; i < ub; i++ {
		v := s.Sample(i)
		x := (v.X - c.ViewMinX()) * xScale
		y := (v.Y - c.ViewMinY()) * yScale
		if x >= 0 && x <= float64(c.GraphWidth()) && y >= 0 && y <= float64(c.GraphHeight()) {
			points = append(points, canvas.Float64Point{X: x, Y: y})
		}
	}
	if len(points) == 0 {
		return
	}

	if len(points) == 1 {
		bGrid.Set(bGrid.GridPoint(points[0]))
	}
	for i := 0; i < len(points)-1; i++ {
		drawLine(bGrid, bGrid.GridPoint(points[i]), bGrid.GridPoint(points[i+1]))
	}

	startX := 0
	if c.YStep() > 0 {
		startX = c.Origin().X + 1
	}
	graph.DrawBraillePatterns(&c.Canvas,
		canvas.Point{X: startX, Y: 0},
		bGrid.BraillePatterns(),
		s.Style())
}

// pixelEpsX returns ~1 horizontal cell in X units for the current graph.
func (c *LineChart) pixelEpsX(xRange float64) float64 {
	if c.GraphWidth() <= 0 || xRange <= 0 {
		return 0
	}
	return xRange / float64(c.GraphWidth())
}

// drawLine rasterizes a line into the braille grid using Bresenham's
// algorithm.
func drawLine(bGrid *graph.BrailleGrid, p1, p2 canvas.Point) {
	dx := abs(p2.X - p1.X)
	dy := abs(p2.Y - p1.Y)

	sx := 1
	if p1.X > p2.X {
		sx = -1
	}
	sy := 1
	if p1.Y > p2.Y {
		sy = -1
	}

	err := dx - dy
	x, y := p1.X, p1.Y

	for {
		bGrid.Set(canvas.Point{X: x, Y: y})
		if x == p2.X && y == p2.Y {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
