package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/traceplot/traceplot/internal/trace"
)

// Layout constants.
const (
	TitleBarHeight  = 1
	StatusBarHeight = 1
	MinChartWidth   = 20
	MinChartHeight  = 5
)

// ASCII art for the help page.
const traceplotArt = `
████████ ██████   █████   ██████ ███████ ██████  ██       ██████  ████████
   ██    ██   ██ ██   ██ ██      ██      ██   ██ ██      ██    ██    ██
   ██    ██████  ███████ ██      █████   ██████  ██      ██    ██    ██
   ██    ██   ██ ██   ██ ██      ██      ██      ██      ██    ██    ██
   ██    ██   ██ ██   ██  ██████ ███████ ██      ███████  ██████     ██
`

// Marker glyph choices, cycled with the glyph key.
var markerGlyphs = []string{"●", "◆", "■", "✚"}

const DefaultMarkerGlyph = "●"

func validMarkerGlyph(g string) bool {
	for _, known := range markerGlyphs {
		if g == known {
			return true
		}
	}
	return false
}

// colorScheme is a marker/label color pair.
type colorScheme struct {
	Marker string
	Label  string
}

const DefaultColorScheme = "signal-amber"

var colorSchemes = map[string]colorScheme{
	"signal-amber": {Marker: "#FCBC32", Label: "252"},
	"orchid":       {Marker: "#E281FE", Label: "250"},
	"seafoam":      {Marker: "#4ECDC4", Label: "252"},
	"ember":        {Marker: "#F2AB9F", Label: "250"},
}

// colorSchemeOrder fixes the cycling order of the schemes.
var colorSchemeOrder = []string{"signal-amber", "orchid", "seafoam", "ember"}

// styleFromConfig builds the shared annotation style from the persisted
// configuration.
func styleFromConfig(cfg *ConfigManager) *trace.Style {
	scheme, ok := colorSchemes[cfg.ColorScheme()]
	if !ok {
		scheme = colorSchemes[DefaultColorScheme]
	}
	glyph := trace.DefaultGlyph
	if g := []rune(cfg.MarkerGlyph()); len(g) > 0 {
		glyph = g[0]
	}
	return &trace.Style{
		Glyph:  glyph,
		Marker: lipgloss.NewStyle().Foreground(lipgloss.Color(scheme.Marker)).Bold(true),
		Label:  lipgloss.NewStyle().Foreground(lipgloss.Color(scheme.Label)),
	}
}

// Chrome styles.
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")). // light gray
			Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#2B3038"}).
			Background(lipgloss.AdaptiveColor{Light: "#4ECDC4", Dark: "#E1F7FA"})

	statusKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Help screen styles.
var (
	helpKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Width(20)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FCBC32")).
				MarginTop(1).
				MarginBottom(1)

	helpArtStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FCBC32")).
			Bold(true)
)
