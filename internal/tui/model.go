// Package tui is the traceplot application shell: a bubbletea model that
// hosts the line chart and routes key and mouse input to the chart surface
// and the tracepoint annotation engine.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/traceplot/traceplot/internal/observability"
	"github.com/traceplot/traceplot/internal/plot"
	"github.com/traceplot/traceplot/internal/trace"
)

// SeriesData is one named series of samples handed to the model at startup.
type SeriesData struct {
	Name string
	Xs   []float64
	Ys   []float64
}

// Model is the top-level bubbletea model.
type Model struct {
	width  int
	height int
	ready  bool

	chart  *plot.LineChart
	engine *trace.Engine
	style  *trace.Style

	activeSeries int // index into chart.SeriesIDs()

	help   *HelpModel
	keyMap map[string]func(*Model, tea.KeyMsg) tea.Cmd

	config *ConfigManager
	logger *observability.CoreLogger
}

// NewModel builds the application model around the given datasets.
func NewModel(datasets []SeriesData, cfg *ConfigManager, logger *observability.CoreLogger) *Model {
	chart := plot.New(80, 24)
	for _, d := range datasets {
		s := chart.AddSeries(d.Name)
		for i := range d.Xs {
			chart.AddPoint(s.ID(), d.Xs[i], d.Ys[i])
		}
	}

	style := styleFromConfig(cfg)
	engine := trace.NewEngine(chart, style)
	engine.AttachTo(chart)

	return &Model{
		chart:  chart,
		engine: engine,
		style:  style,
		help:   NewHelp(),
		keyMap: buildKeyMap(),
		config: cfg,
		logger: logger,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.handleWindowResize(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.help.IsActive() {
		return m.help.View()
	}

	m.chart.DrawIfNeeded()

	var b strings.Builder
	b.WriteString(m.titleBar())
	b.WriteString("\n")
	b.WriteString(m.chart.Canvas.View())
	b.WriteString("\n")
	b.WriteString(m.statusBar())
	return b.String()
}

// titleBar renders the single-row header.
func (m *Model) titleBar() string {
	title := titleStyle.Render("traceplot")
	series := ""
	if name, ok := m.activeSeriesName(); ok {
		series = statusKeyStyle.Render("  series: ") + titleStyle.Render(name)
	}
	return title + series
}

// statusBar renders the single-row footer.
func (m *Model) statusBar() string {
	status := fmt.Sprintf(
		" %d tracepoint(s) | x: [%s .. %s] | scheme: %s | h for help",
		m.engine.Count(),
		plot.FormatValue(m.chart.ViewMinX()),
		plot.FormatValue(m.chart.ViewMaxX()),
		m.config.ColorScheme(),
	)
	width := m.width
	if w := lipgloss.Width(status); w > width {
		width = w
	}
	return statusBarStyle.Width(width).Render(status)
}

// activeSeriesName resolves the display name of the active series.
func (m *Model) activeSeriesName() (string, bool) {
	id, ok := m.activeSeriesID()
	if !ok {
		return "", false
	}
	s, ok := m.chart.SeriesByID(id)
	if !ok {
		return "", false
	}
	return s.Name(), true
}

// activeSeriesID returns the handle of the active series.
func (m *Model) activeSeriesID() (trace.SeriesID, bool) {
	ids := m.chart.SeriesIDs()
	if len(ids) == 0 {
		return 0, false
	}
	if m.activeSeries >= len(ids) {
		m.activeSeries = 0
	}
	return ids[m.activeSeries], true
}
