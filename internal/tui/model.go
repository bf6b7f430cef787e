// Package tui provides the read-only goal dashboard built on bubbletea.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/piggy/internal/model"
	"github.com/Veraticus/piggy/internal/service"
	"github.com/Veraticus/piggy/internal/tui/themes"
)

const (
	defaultWidth  = 100
	defaultHeight = 24
	// Rows taken by everything that is not the table.
	chromeHeight = 14
)

// Model is the dashboard state. The category filter index is -1 while all
// goals are shown.
type Model struct {
	goals      service.GoalReader
	theme      themes.Theme
	keys       KeyMap
	categories []string
	rows       []model.Goal
	table      table.Model
	progress   progress.Model
	filter     int
	width      int
	height     int
	showHelp   bool
	quitting   bool
}

// New creates a dashboard over goals.
func New(goals service.GoalReader) Model {
	theme := themes.Default

	styles := table.DefaultStyles()
	styles.Header = theme.Header
	styles.Selected = theme.Selected

	t := table.New(
		table.WithColumns(columns(defaultWidth)),
		table.WithFocused(true),
		table.WithHeight(defaultHeight-chromeHeight),
		table.WithStyles(styles),
	)

	prog := progress.New(progress.WithDefaultGradient())
	prog.ShowPercentage = false
	prog.Width = 40

	m := Model{
		goals:    goals,
		theme:    theme,
		keys:     DefaultKeyMap(),
		table:    t,
		progress: prog,
		filter:   -1,
		width:    defaultWidth,
		height:   defaultHeight,
	}
	m.reload()
	return m
}

func columns(width int) []table.Column {
	name := max(width-70, 16)
	return []table.Column{
		{Title: "Goal", Width: name},
		{Title: "Category", Width: 14},
		{Title: "Saved", Width: 12},
		{Title: "Target", Width: 12},
		{Title: "Progress", Width: 9},
		{Title: "Status", Width: 10},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetColumns(columns(msg.Width))
		m.table.SetHeight(max(msg.Height-chromeHeight, 3))
		m.progress.Width = min(max(msg.Width-30, 10), 60)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.ForceQuit), key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextCategory):
			m.cycleCategory(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevCategory):
			m.cycleCategory(-1)
			return m, nil
		case key.Matches(msg, m.keys.AllGoals):
			m.filter = -1
			m.reload()
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.reload()
			return m, nil
		case key.Matches(msg, m.keys.ToggleHelp):
			m.showHelp = !m.showHelp
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// cycleCategory moves the filter through "all" and every category.
func (m *Model) cycleCategory(step int) {
	m.categories = m.goals.Categories()
	n := len(m.categories) + 1
	m.filter = ((m.filter+1+step)%n+n)%n - 1
	m.reload()
}

// reload re-reads goals through the current filter and rebuilds the table.
func (m *Model) reload() {
	m.categories = m.goals.Categories()
	if m.filter >= len(m.categories) {
		m.filter = -1
	}

	if category, ok := m.Category(); ok {
		m.rows = m.goals.ListGoalsByCategory(category)
	} else {
		m.rows = m.goals.ListGoals()
	}

	rows := make([]table.Row, 0, len(m.rows))
	for _, g := range m.rows {
		rows = append(rows, table.Row{
			g.Name(),
			g.Category(),
			fmt.Sprintf("%.2f", g.Balance()),
			fmt.Sprintf("%.2f", g.TargetAmount()),
			fmt.Sprintf("%.1f%%", g.Progress()),
			g.Status().English(),
		})
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

// Category returns the category being filtered on, if any.
func (m Model) Category() (string, bool) {
	if m.filter < 0 || m.filter >= len(m.categories) {
		return "", false
	}
	return m.categories[m.filter], true
}

// Selected returns the goal under the cursor.
func (m Model) Selected() (model.Goal, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.rows) {
		return model.Goal{}, false
	}
	return m.rows[i], true
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.theme.Title.Render("🐷 Savings goals"),
		m.renderFilter(),
		m.table.View(),
		m.renderSelected(),
		m.renderTotal(),
		m.renderHelp(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderFilter() string {
	label := "all goals"
	if category, ok := m.Category(); ok {
		label = category
	}
	return m.theme.Subtitle.Render(fmt.Sprintf("Showing: %s (%d)", label, len(m.rows)))
}

func (m Model) renderSelected() string {
	g, ok := m.Selected()
	if !ok {
		return m.theme.Subtitle.Render("No goals to show.")
	}

	completed := "-"
	if date, ok := g.CompletionDate(); ok {
		completed = date.String()
	}

	status := m.statusStyle(g.Status()).Render(fmt.Sprintf("%s (%s)", g.Status(), g.Status().English()))
	details := fmt.Sprintf("%s  started %s  completed %s  remaining %.2f  %s",
		g.Name(), g.StartDate(), completed, g.Remaining(), status)
	return m.theme.Box.Render(details)
}

func (m Model) statusStyle(status model.GoalStatus) lipgloss.Style {
	switch status {
	case model.StatusCompleted:
		return m.theme.StatusDone
	case model.StatusCancelled:
		return m.theme.StatusStopped
	default:
		return m.theme.StatusActive
	}
}

func (m Model) renderTotal() string {
	total := m.goals.TotalProgress()
	return fmt.Sprintf("Total %s %.1f%%", m.progress.ViewAs(min(total/100, 1)), total)
}

func (m Model) renderHelp() string {
	groups := [][]key.Binding{m.keys.ShortHelp()}
	if m.showHelp {
		groups = m.keys.FullHelp()
	}

	var lines []string
	for _, group := range groups {
		parts := make([]string, 0, len(group))
		for _, b := range group {
			parts = append(parts, b.Help().Key+" "+b.Help().Desc)
		}
		lines = append(lines, strings.Join(parts, " • "))
	}
	return m.theme.Help.Render(strings.Join(lines, "\n"))
}
