package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette.
var (
	PrimaryColor = lipgloss.Color("#22C55E")
	SuccessColor = lipgloss.Color("#4ECDC4")
	WarningColor = lipgloss.Color("#FFE66D")
	ErrorColor   = lipgloss.Color("#EF4444")
	InfoColor    = lipgloss.Color("#95E1D3")
	SubtleColor  = lipgloss.Color("#666666")
	BorderColor  = lipgloss.Color("#333333")
)

// Message and text styles.
var (
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor).MarginBottom(1)
	SubtitleStyle = lipgloss.NewStyle().Foreground(SubtleColor).MarginBottom(1)
	SuccessStyle  = lipgloss.NewStyle().Foreground(SuccessColor)
	WarningStyle  = lipgloss.NewStyle().Foreground(WarningColor)
	ErrorStyle    = lipgloss.NewStyle().Foreground(ErrorColor)
	InfoStyle     = lipgloss.NewStyle().Foreground(InfoColor)
	SubtleStyle   = lipgloss.NewStyle().Foreground(SubtleColor)
	BoldStyle     = lipgloss.NewStyle().Bold(true)
	PromptStyle   = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor)

	// ProgressStyle fills breakdown bars for categories without a color.
	ProgressStyle = lipgloss.NewStyle().Foreground(PrimaryColor)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(1, 2)
)

// Table cell styles. Header and amount styles are layered onto
// TableCellStyle with Inherit, so they only carry what differs.
var (
	TableCellStyle   = lipgloss.NewStyle().PaddingLeft(1).PaddingRight(2)
	TableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor)
	AmountStyle      = lipgloss.NewStyle().Align(lipgloss.Right)
)

// Calendar styles.
var (
	TodayStyle        = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(PrimaryColor)
	SelectedStyle     = lipgloss.NewStyle().Bold(true).Reverse(true)
	OutsideMonthStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))
)

// Icons.
const (
	SuccessIcon  = "✓"
	ErrorIcon    = "✗"
	WarningIcon  = "⚠️"
	InfoIcon     = "ℹ️"
	LedgerIcon   = "💵"
	CalendarIcon = "📅"
)

// SwatchStyle colors text with a category's hex color.
func SwatchStyle(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the ledger icon.
func FormatTitle(title string) string {
	return formatIconTitle(LedgerIcon, title)
}

func formatIconTitle(icon, title string) string {
	return TitleStyle.Render(icon + " " + title)
}

// FormatPrompt formats a prompt message.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt + " → ")
}

// RenderBox renders content under a title inside a rounded box.
func RenderBox(title, content string) string {
	return BoxStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.UnsetMargins().Render(title),
		content,
	))
}
