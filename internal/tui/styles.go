package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorGutter    = lipgloss.Color("#5a5a5a")
	colorStatusBg  = lipgloss.Color("#2a2a2a")
	colorStatusFg  = lipgloss.Color("#d0d0d0")
	colorSelection = lipgloss.Color("#264f78")
)

// Styles groups the lipgloss styles used by the viewer.
type Styles struct {
	LineNumber lipgloss.Style
	Selection  lipgloss.Style
	Cursor     lipgloss.Style
	StatusBar  lipgloss.Style

	SyntaxTheme string
}

func defaultStyles(syntaxTheme string) Styles {
	return Styles{
		LineNumber:  lipgloss.NewStyle().Foreground(colorGutter),
		Selection:   lipgloss.NewStyle().Background(colorSelection),
		Cursor:      lipgloss.NewStyle().Reverse(true),
		StatusBar:   lipgloss.NewStyle().Background(colorStatusBg).Foreground(colorStatusFg),
		SyntaxTheme: syntaxTheme,
	}
}
