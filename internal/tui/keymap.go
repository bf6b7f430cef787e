package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the dashboard keyboard shortcuts.
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	NextCategory key.Binding
	PrevCategory key.Binding
	AllGoals     key.Binding
	Refresh      key.Binding
	ToggleHelp   key.Binding
	Quit         key.Binding
	ForceQuit    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		NextCategory: key.NewBinding(
			key.WithKeys("tab", "l", "right"),
			key.WithHelp("Tab/→", "next category"),
		),
		PrevCategory: key.NewBinding(
			key.WithKeys("shift+tab", "h", "left"),
			key.WithHelp("Shift+Tab/←", "previous category"),
		),
		AllGoals: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "all goals"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r", "ctrl+r"),
			key.WithHelp("r", "refresh"),
		),
		ToggleHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q/Esc", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "force quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextCategory, k.ToggleHelp, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextCategory, k.PrevCategory, k.AllGoals},
		{k.Refresh, k.ToggleHelp, k.Quit},
	}
}
