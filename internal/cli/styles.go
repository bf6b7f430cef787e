// Package cli renders goals for the terminal and runs the interactive shell.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the piggy pink used for titles and prompts.
	PrimaryColor = lipgloss.Color("#FF8FAB")
	// SuccessColor marks completed actions.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// WarningColor marks recoverable problems.
	WarningColor = lipgloss.Color("#FFE66D")
	// ErrorColor marks failures.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// InfoColor marks neutral information.
	InfoColor = lipgloss.Color("#95E1D3")
	// SubtleColor marks secondary text.
	SubtleColor = lipgloss.Color("#666666")
	// LabelColor marks field labels in goal cards.
	LabelColor = lipgloss.Color("#C792EA")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor)
	InfoStyle    = lipgloss.NewStyle().Foreground(InfoColor)
	SubtleStyle  = lipgloss.NewStyle().Foreground(SubtleColor)
	LabelStyle   = lipgloss.NewStyle().Foreground(LabelColor)

	// MenuKeyStyle highlights the number of a shell menu entry.
	MenuKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(WarningColor)

	// BoxStyle is used for bordered goal cards.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(0, 1)

	// PromptStyle is used for shell prompts.
	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	PiggyIcon   = "🐷"
	ChartIcon   = "📊"
)

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

// FormatTitle formats a title with the piggy icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(PiggyIcon + " " + title)
}

// FormatPrompt formats a shell prompt.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt + ": ")
}

// RenderBox renders content in a bordered box under title.
func RenderBox(title, content string) string {
	boxTitle := TitleStyle.
		UnsetMargins().
		Render(title)

	return BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, boxTitle, content))
}
