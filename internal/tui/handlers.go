package tui

import (
	"fmt"

	"github.com/NimbleMarkets/ntcharts/canvas"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyMsg dispatches keyboard events through the key map.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if handler, ok := m.keyMap[msg.String()]; ok && handler != nil {
		return m, handler(m, msg)
	}
	return m, nil
}

// handleMouseMsg routes mouse events: left click toggles a tracepoint on the
// active series, motion over a marker re-selects its label corner, and the
// wheel zooms the view and re-projects every annotation.
func (m *Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	cell := m.cellForMouse(msg)

	event := tea.MouseEvent(msg)
	switch {
	case event.Button == tea.MouseButtonLeft && event.Action == tea.MouseActionPress:
		// Clicks on the chrome and the axis gutters are not toggles.
		if !cell.In(m.chart.PlotArea()) {
			return m, nil
		}
		id, ok := m.activeSeriesID()
		if !ok {
			return m, nil
		}
		m.engine.Toggle(cell, id, m.chart)
		m.chart.MarkDirty()

	case event.Action == tea.MouseActionMotion:
		if marker, ok := m.engine.MarkerAt(cell); ok {
			m.engine.UpdateCornerFor(marker, cell, m.chart)
			m.chart.MarkDirty()
		}

	case event.IsWheel():
		if !cell.In(m.chart.PlotArea()) {
			return m, nil
		}
		direction := "out"
		if event.Button == tea.MouseButtonWheelUp {
			direction = "in"
		}
		m.chart.HandleZoom(direction, cell.X-m.chart.PlotArea().Min.X)
		m.engine.RefreshAll(m.chart)
	}

	return m, nil
}

// cellForMouse translates terminal coordinates into canvas cells by removing
// the title bar offset.
func (m *Model) cellForMouse(msg tea.MouseMsg) canvas.Point {
	return canvas.Point{X: msg.X, Y: msg.Y - TitleBarHeight}
}

// handleWindowResize re-fits the chart and re-projects the annotations under
// the new axis geometry.
func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height

	chartWidth := msg.Width
	if chartWidth < MinChartWidth {
		chartWidth = MinChartWidth
	}
	chartHeight := msg.Height - TitleBarHeight - StatusBarHeight
	if chartHeight < MinChartHeight {
		chartHeight = MinChartHeight
	}

	m.chart.Resize(chartWidth, chartHeight)
	m.engine.RefreshAll(m.chart)
	m.help.SetSize(msg.Width, msg.Height)
	m.ready = true
}

func (m *Model) handleToggleHelp(msg tea.KeyMsg) tea.Cmd {
	m.help.Toggle()
	return nil
}

func (m *Model) handleQuit(msg tea.KeyMsg) tea.Cmd {
	m.logger.Debug("tui: quit requested")
	return tea.Quit
}

func (m *Model) handleCycleSeries(msg tea.KeyMsg) tea.Cmd {
	ids := m.chart.SeriesIDs()
	if len(ids) == 0 {
		return nil
	}
	m.activeSeries = (m.activeSeries + 1) % len(ids)
	return nil
}

func (m *Model) handleClearAnnotations(msg tea.KeyMsg) tea.Cmd {
	m.engine.Clear()
	m.chart.MarkDirty()
	return nil
}

func (m *Model) handleCycleColorScheme(msg tea.KeyMsg) tea.Cmd {
	current := m.config.ColorScheme()
	next := colorSchemeOrder[0]
	for i, name := range colorSchemeOrder {
		if name == current {
			next = colorSchemeOrder[(i+1)%len(colorSchemeOrder)]
			break
		}
	}
	if err := m.config.SetColorScheme(next); err != nil {
		m.logger.CaptureError(fmt.Errorf("tui: failed to save color scheme: %v", err))
		return nil
	}
	m.applyStyle()
	return nil
}

func (m *Model) handleCycleGlyph(msg tea.KeyMsg) tea.Cmd {
	current := m.config.MarkerGlyph()
	next := markerGlyphs[0]
	for i, g := range markerGlyphs {
		if g == current {
			next = markerGlyphs[(i+1)%len(markerGlyphs)]
			break
		}
	}
	if err := m.config.SetMarkerGlyph(next); err != nil {
		m.logger.CaptureError(fmt.Errorf("tui: failed to save marker glyph: %v", err))
		return nil
	}
	m.applyStyle()
	return nil
}

// applyStyle rebuilds the shared annotation style from config and propagates
// it to every live marker and label.
func (m *Model) applyStyle() {
	m.style = styleFromConfig(m.config)
	m.engine.SetStyle(m.style)
	m.chart.MarkDirty()
}

func (m *Model) handleZoomIn(msg tea.KeyMsg) tea.Cmd {
	m.zoomAtCenter("in")
	return nil
}

func (m *Model) handleZoomOut(msg tea.KeyMsg) tea.Cmd {
	m.zoomAtCenter("out")
	return nil
}

func (m *Model) handleResetZoom(msg tea.KeyMsg) tea.Cmd {
	m.chart.ResetZoom()
	m.engine.RefreshAll(m.chart)
	return nil
}

// zoomAtCenter zooms as if the mouse sat in the middle of the graph area.
func (m *Model) zoomAtCenter(direction string) {
	m.chart.HandleZoom(direction, m.chart.GraphWidth()/2)
	m.engine.RefreshAll(m.chart)
}
