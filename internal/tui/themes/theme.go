// Package themes holds the color palettes for the interactive calendar.
package themes

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/pocket-ledger/internal/model"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Normal      lipgloss.Style
	Bold        lipgloss.Style
	Amount      lipgloss.Style
	StatusError lipgloss.Style
	StatusInfo  lipgloss.Style
	RoundedBox  lipgloss.Style
	Primary     lipgloss.Color
	Muted       lipgloss.Color
	Border      lipgloss.Color
	Error       lipgloss.Color
}

// Dark is used for dark terminals.
var Dark = Theme{
	Primary: lipgloss.Color("#22c55e"),
	Muted:   lipgloss.Color("#737373"),
	Border:  lipgloss.Color("#404040"),
	Error:   lipgloss.Color("#ef4444"),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")).
		MarginBottom(1),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fafafa")),
	Bold: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")),
	Amount: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#22c55e")),
	StatusError: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ef4444")).
		Bold(true),
	StatusInfo: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#3b82f6")).
		Bold(true),
	RoundedBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#404040")).
		Padding(0, 1),
}

// Light is used for light terminals.
var Light = Theme{
	Primary: lipgloss.Color("#15803d"),
	Muted:   lipgloss.Color("#6b7280"),
	Border:  lipgloss.Color("#d4d4d4"),
	Error:   lipgloss.Color("#b91c1c"),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#171717")).
		MarginBottom(1),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#525252")),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#171717")),
	Bold: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#171717")),
	Amount: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#15803d")),
	StatusError: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#b91c1c")).
		Bold(true),
	StatusInfo: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#1d4ed8")).
		Bold(true),
	RoundedBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#d4d4d4")).
		Padding(0, 1),
}

// Default is the theme used when nothing else is chosen.
var Default = Dark

// For picks the palette for a stored theme preference. "system" follows the
// terminal background.
func For(pref model.Theme) Theme {
	switch pref {
	case model.ThemeLight:
		return Light
	case model.ThemeDark:
		return Dark
	default:
		if lipgloss.HasDarkBackground() {
			return Dark
		}
		return Light
	}
}
