package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/traceplot/traceplot/internal/version"
)

// HelpModel represents the help screen.
type HelpModel struct {
	viewport viewport.Model
	active   bool
	width    int
	height   int
}

func NewHelp() *HelpModel {
	vp := viewport.New(80, 20)
	return &HelpModel{viewport: vp}
}

// IsActive reports whether the help screen is shown.
func (h *HelpModel) IsActive() bool {
	return h.active
}

// Toggle shows or hides the help screen.
func (h *HelpModel) Toggle() {
	h.active = !h.active
	if h.active {
		h.viewport.SetContent(h.generateHelpContent())
	}
}

// SetSize resizes the help viewport.
func (h *HelpModel) SetSize(width, height int) {
	h.width = width
	h.height = height
	h.viewport.Width = width
	h.viewport.Height = height
	if h.active {
		h.viewport.SetContent(h.generateHelpContent())
	}
}

// generateHelpContent renders the art header and the key binding tables.
func (h *HelpModel) generateHelpContent() string {
	var b strings.Builder
	b.WriteString(helpArtStyle.Render(traceplotArt))
	b.WriteString("\n")
	b.WriteString(helpKeyStyle.Render("version"))
	b.WriteString(helpDescStyle.Render(version.Version))
	b.WriteString("\n")

	for _, category := range ModelKeyBindings() {
		b.WriteString(helpSectionStyle.Render(category.Name))
		b.WriteString("\n")
		for _, binding := range category.Bindings {
			key := helpKeyStyle.Render(strings.Join(binding.Keys, ", "))
			desc := helpDescStyle.Render(binding.Description)
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, key, desc))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// View renders the help screen.
func (h *HelpModel) View() string {
	return h.viewport.View()
}
