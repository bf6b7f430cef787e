package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/piggy/internal/goals"
	"github.com/Veraticus/piggy/internal/testutil"
)

func newTestGoals(t *testing.T) *goals.Manager {
	t.Helper()
	return testutil.SetupManager(t, []string{"Работа", "Путешествия", "Дом"},
		testutil.GoalSeed{Name: "Laptop", Category: "Работа", Target: 1000, Deposit: 250},
		testutil.GoalSeed{Name: "Rome", Category: "Путешествия", Target: 500, Deposit: 500},
		testutil.GoalSeed{Name: "Course", Category: "Работа", Target: 200},
	)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestModel_InitialView(t *testing.T) {
	m := New(newTestGoals(t))

	assert.Nil(t, m.Init())
	_, filtered := m.Category()
	assert.False(t, filtered)

	view := m.View()
	assert.Contains(t, view, "Savings goals")
	assert.Contains(t, view, "Showing: all goals (3)")
	assert.Contains(t, view, "Laptop")
	assert.Contains(t, view, "Rome")
	assert.Contains(t, view, "Total")

	selected, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "Laptop", selected.Name())
}

func TestModel_CategoryCycling(t *testing.T) {
	m := New(newTestGoals(t))

	tests := []struct {
		msg      tea.KeyMsg
		category string
		filtered bool
		count    int
	}{
		{msg: tea.KeyMsg{Type: tea.KeyTab}, category: "Работа", filtered: true, count: 2},
		{msg: runes("l"), category: "Путешествия", filtered: true, count: 1},
		{msg: runes("l"), category: "Дом", filtered: true, count: 0},
		{msg: runes("l"), filtered: false, count: 3},
		{msg: tea.KeyMsg{Type: tea.KeyShiftTab}, category: "Дом", filtered: true, count: 0},
		{msg: runes("h"), category: "Путешествия", filtered: true, count: 1},
		{msg: runes("a"), filtered: false, count: 3},
	}

	for _, tt := range tests {
		m, _ = update(t, m, tt.msg)
		category, filtered := m.Category()
		assert.Equal(t, tt.filtered, filtered)
		assert.Equal(t, tt.category, category)
		assert.Len(t, m.rows, tt.count)
	}
}

func TestModel_EmptyCategoryView(t *testing.T) {
	m := New(newTestGoals(t))
	for i := 0; i < 3; i++ {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	}

	_, ok := m.Selected()
	assert.False(t, ok)
	assert.Contains(t, m.View(), "No goals to show.")
}

func TestModel_CursorMovement(t *testing.T) {
	m := New(newTestGoals(t))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	selected, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "Rome", selected.Name())
	assert.Contains(t, m.View(), "выполнена (completed)")

	m, _ = update(t, m, runes("k"))
	selected, _ = m.Selected()
	assert.Equal(t, "Laptop", selected.Name())
}

func TestModel_RefreshPicksUpChanges(t *testing.T) {
	mgr := newTestGoals(t)
	m := New(mgr)

	_, err := mgr.AddGoal(context.Background(), "Sofa", 300, "Дом")
	require.NoError(t, err)
	assert.Len(t, m.rows, 3)

	m, _ = update(t, m, runes("r"))
	assert.Len(t, m.rows, 4)
}

func TestModel_HelpToggle(t *testing.T) {
	m := New(newTestGoals(t))
	assert.NotContains(t, m.View(), "refresh")

	m, _ = update(t, m, runes("?"))
	assert.Contains(t, m.View(), "refresh")
}

func TestModel_WindowResize(t *testing.T) {
	m := New(newTestGoals(t))

	m, cmd := update(t, m, tea.WindowSizeMsg{Width: 140, Height: 40})
	assert.Nil(t, cmd)
	assert.Equal(t, 140, m.width)
	assert.Equal(t, 60, m.progress.Width)
}

func TestModel_Quit(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
	}{
		{name: "q", msg: runes("q")},
		{name: "esc", msg: tea.KeyMsg{Type: tea.KeyEsc}},
		{name: "ctrl+c", msg: tea.KeyMsg{Type: tea.KeyCtrlC}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(newTestGoals(t))
			m, cmd := update(t, m, tt.msg)
			require.NotNil(t, cmd)
			assert.Equal(t, tea.QuitMsg{}, cmd())
			assert.Empty(t, m.View())
		})
	}
}

func TestRun_RequiresGoals(t *testing.T) {
	assert.Error(t, Run(context.Background(), nil))
}
