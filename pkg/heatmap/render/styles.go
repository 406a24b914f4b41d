package render

import "github.com/charmbracelet/lipgloss"

var (
	ColorDimmed = lipgloss.Color("#666666") // Dimmed text
	ColorWarn   = lipgloss.Color("#FFAA00") // Unresolved bindings
	ColorAccent = lipgloss.Color("#7B68EE") // Titles
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	NameStyle = lipgloss.NewStyle().
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorDimmed)

	WarnStyle = lipgloss.NewStyle().
			Foreground(ColorWarn)

	LineIndent = lipgloss.NewStyle().
			PaddingLeft(6)
)

// swatch renders a block of the given fill color.
func swatch(color string) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(color)).
		Render("    ")
}
