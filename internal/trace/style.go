package trace

import "github.com/charmbracelet/lipgloss"

// DefaultGlyph is the marker rune used when a style does not set one.
const DefaultGlyph = '●'

// Style is the shared look for every marker and label the engine owns.
//
// The engine and its components hold the same non-owning pointer; replacing
// the style via Engine.SetStyle propagates the new pointer to every live
// component.
type Style struct {
	// Glyph is the rune drawn at the marker's cell.
	Glyph rune

	// Marker styles the marker glyph.
	Marker lipgloss.Style

	// Label styles both lines of a tracepoint label.
	Label lipgloss.Style
}

// DefaultStyle returns the style used until the surface installs its own.
func DefaultStyle() *Style {
	return &Style{
		Glyph:  DefaultGlyph,
		Marker: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Label:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	}
}

func (st *Style) glyph() rune {
	if st == nil || st.Glyph == 0 {
		return DefaultGlyph
	}
	return st.Glyph
}
