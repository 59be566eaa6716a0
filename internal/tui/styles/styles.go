// Package styles centralizes the lipgloss styles used across the TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// themes maps a config theme name to its accent color.
var themes = map[string]lipgloss.Color{
	"default": lipgloss.Color("99"),
	"ocean":   lipgloss.Color("39"),
	"forest":  lipgloss.Color("35"),
	"crimson": lipgloss.Color("161"),
}

var (
	// Accent is the theme color used for category labels and highlights.
	Accent = themes["default"]

	Subtle  = lipgloss.Color("241")
	Success = lipgloss.Color("42")
	Danger  = lipgloss.Color("196")

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("255"))

	Info = lipgloss.NewStyle().
		Foreground(Subtle)

	Score = lipgloss.NewStyle().
		Bold(true).
		Foreground(Success)

	Error = lipgloss.NewStyle().
		Foreground(Danger)

	Description = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	DotActive = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Bold(true)

	DotInactive = lipgloss.NewStyle().
			Foreground(Subtle)

	RailTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			MarginTop(1)

	RailItem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	Status = lipgloss.NewStyle().
		Foreground(Subtle).
		Italic(true)

	Tab = lipgloss.NewStyle().
		Padding(0, 2).
		Foreground(Subtle)

	TabActive = lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Underline(true)

	// Accent-dependent styles, rebuilt by ApplyTheme.
	Category         lipgloss.Style
	RailItemSelected lipgloss.Style
	Hero             lipgloss.Style
)

func init() {
	rebuild()
}

// ApplyTheme switches the accent color to the named theme's. Unknown names
// keep the current accent.
func ApplyTheme(name string) {
	color, ok := themes[name]
	if !ok {
		return
	}
	Accent = color
	rebuild()
}

func rebuild() {
	Category = lipgloss.NewStyle().
		Bold(true).
		Foreground(Accent)

	RailItemSelected = lipgloss.NewStyle().
		Foreground(lipgloss.Color("255")).
		Background(Accent).
		Bold(true)

	Hero = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Accent).
		Padding(1, 3)
}
