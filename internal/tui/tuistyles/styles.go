// Package tuistyles holds the lipgloss palette shared by the TUI and its
// components.
package tuistyles

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	ColorPrimary   = lipgloss.Color("#1E88E5")
	ColorSecondary = lipgloss.Color("#8E24AA")
	ColorAccent    = lipgloss.Color("#FDD835")
	ColorSuccess   = lipgloss.Color("#43A047")
	ColorDanger    = lipgloss.Color("#E53935")
	ColorWarning   = lipgloss.Color("#FB8C00")

	ColorForeground = lipgloss.Color("#ECEFF1")
	ColorMuted      = lipgloss.Color("#78909C")
	ColorBorder     = lipgloss.Color("#455A64")
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorForeground).
			Background(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	FocusedLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent)

	InvalidLabelStyle = lipgloss.NewStyle().
				Foreground(ColorDanger)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorForeground)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorDanger)
)

// RankColor returns the accent of a regime card: green for the cheapest,
// red for the most expensive and the border color otherwise
func RankColor(isLowest, isHighest bool) lipgloss.Color {
	switch {
	case isLowest:
		return ColorSuccess
	case isHighest:
		return ColorDanger
	default:
		return ColorBorder
	}
}

// RankIndicator returns the marker shown next to a regime name
func RankIndicator(isLowest, isHighest bool) string {
	switch {
	case isLowest:
		return "▼"
	case isHighest:
		return "▲"
	default:
		return "•"
	}
}
