package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds all the lipgloss styles for the TUI.
type Styles struct {
	// Layout
	Title     lipgloss.Style
	Form      lipgloss.Style
	Preview   lipgloss.Style
	StatusBar lipgloss.Style

	// Form controls
	Label        lipgloss.Style
	LabelFocused lipgloss.Style
	Value        lipgloss.Style
	Hint         lipgloss.Style
	Button       lipgloss.Style
	ButtonFocus  lipgloss.Style

	// Overlay (color picker, background picker)
	OverlayBorder        lipgloss.Style
	OverlaySelected      lipgloss.Style
	OverlayNormal        lipgloss.Style
	OverlayMatch         lipgloss.Style
	OverlayMatchSelected lipgloss.Style // Match highlighting on selected row
	SwatchCursor         lipgloss.Style

	// Misc
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
}

// DefaultStyles returns the default style configuration.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1),
		Form: lipgloss.NewStyle().
			MaxWidth(48),
		// Card behind the text rendition
		Preview: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Background(lipgloss.Color("#f1faee")),
		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),

		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
		LabelFocused: lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true),
		Value: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		Hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true),
		Button: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238")).
			Padding(0, 1),
		ButtonFocus: lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1).
			Bold(true),

		OverlayBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1),
		OverlaySelected: lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230")),
		OverlayNormal: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		OverlayMatch: lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // Magenta for matched chars
			Bold(true),
		OverlayMatchSelected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Background(lipgloss.Color("62")).
			Bold(true),
		SwatchCursor: lipgloss.NewStyle().
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("71")),
	}
}
