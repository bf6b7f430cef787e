// Package themes holds the dashboard color schemes.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the dashboard.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Selected      lipgloss.Style
	Header        lipgloss.Style
	Box           lipgloss.Style
	Help          lipgloss.Style
	StatusActive  lipgloss.Style
	StatusDone    lipgloss.Style
	StatusStopped lipgloss.Style
	Primary       lipgloss.Color
	Success       lipgloss.Color
	Warning       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
}

// Default is the default theme.
var Default = Theme{
	Primary: lipgloss.Color("#FF8FAB"),
	Success: lipgloss.Color("#10b981"),
	Warning: lipgloss.Color("#f59e0b"),
	Muted:   lipgloss.Color("#737373"),
	Border:  lipgloss.Color("#404040"),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF8FAB")),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")),
	Selected: lipgloss.NewStyle().
		Background(lipgloss.Color("#FF8FAB")).
		Foreground(lipgloss.Color("#1a1a1a")).
		Bold(true),
	Header: lipgloss.NewStyle().
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(lipgloss.Color("#404040")),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#404040")).
		Padding(0, 1),
	Help: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#737373")),
	StatusActive: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#3b82f6")),
	StatusDone: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10b981")),
	StatusStopped: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ef4444")),
}
