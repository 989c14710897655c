package plot

import "github.com/charmbracelet/lipgloss"

// Axis and tick label styles.
var (
	axisStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // gray

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")) // light gray
)

// seriesColors is the palette cycled through as series are registered.
var seriesColors = []string{
	"#E281FE",
	"#ED9FBB",
	"#F2AB9F",
	"#F8BD78",
	"#FFCF4F",
	"#A9FDF2",
	"#4ECDC4",
	"#45B7D1",
}

// SeriesStyle returns the line style for the i-th registered series.
func SeriesStyle(i int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(seriesColors[i%len(seriesColors)]))
}
