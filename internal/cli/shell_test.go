package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/piggy/internal/goals"
	"github.com/Veraticus/piggy/internal/storage"
)

func newShellManager(t *testing.T) (*goals.Manager, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "goals.json")
	store, err := storage.NewJSONStorage(path)
	require.NoError(t, err)

	clock := func() time.Time { return time.Date(2025, 11, 26, 9, 0, 0, 0, time.UTC) }
	m, err := goals.NewManager(context.Background(), store, goals.WithClock(clock))
	require.NoError(t, err)
	return m, path
}

func runShell(t *testing.T, m *goals.Manager, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	shell := NewShell(m, strings.NewReader(strings.Join(lines, "\n")+"\n"), &out)
	require.NoError(t, shell.Run(context.Background()))
	return out.String()
}

func TestShell_AddDepositListExit(t *testing.T) {
	m, path := newShellManager(t)

	out := runShell(t, m,
		"1", "Trip", "500", "Путешествия",
		"4", "Trip", "200",
		"2",
		"9",
	)

	assert.Contains(t, out, `Goal "Trip" added!`)
	assert.Contains(t, out, "Deposited 200.00. Current balance: 200.00")
	assert.Contains(t, out, "40.0%")
	assert.Contains(t, out, "Goodbye!")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc struct {
		Goals []struct {
			Name           string  `json:"name"`
			Status         string  `json:"status"`
			StartDate      string  `json:"start_date"`
			CurrentBalance float64 `json:"current_balance"`
		} `json:"goals"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc.Goals, 1)
	assert.Equal(t, "Trip", doc.Goals[0].Name)
	assert.Equal(t, 200.0, doc.Goals[0].CurrentBalance)
	assert.Equal(t, "активна", doc.Goals[0].Status)
	assert.Equal(t, "2025-11-26", doc.Goals[0].StartDate)
}

func TestShell_Actions(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		expected []string
	}{
		{
			name:     "empty list",
			lines:    []string{"2", "9"},
			expected: []string{"No goals yet!"},
		},
		{
			name:     "invalid choice",
			lines:    []string{"42", "9"},
			expected: []string{"Invalid choice. Enter a number from 1 to 9."},
		},
		{
			name:     "unknown category",
			lines:    []string{"1", "Trip", "500", "Fun", "9"},
			expected: []string{"Unknown category"},
		},
		{
			name:     "amount is not a number",
			lines:    []string{"1", "Trip", "lots", "9"},
			expected: []string{`"lots" is not a number`},
		},
		{
			name:     "withdraw too much",
			lines:    []string{"1", "Trip", "500", "Дом", "5", "Trip", "100", "9"},
			expected: []string{"Not enough funds"},
		},
		{
			name:     "deposit completes goal",
			lines:    []string{"1", "Car", "1000", "Другое", "4", "Car", "1200", "9"},
			expected: []string{"Current balance: 1000.00", `Goal "Car" is complete!`},
		},
		{
			name:     "change status",
			lines:    []string{"1", "Trip", "500", "Дом", "6", "Trip", "отменена", "9"},
			expected: []string{`Goal "Trip" is now отменена (cancelled)`},
		},
		{
			name:     "invalid status",
			lines:    []string{"1", "Trip", "500", "Дом", "6", "Trip", "paused", "9"},
			expected: []string{"Status must be one of"},
		},
		{
			name:     "remove missing goal",
			lines:    []string{"7", "Nonexistent", "9"},
			expected: []string{"Goal not found!"},
		},
		{
			name:     "remove goal",
			lines:    []string{"1", "Trip", "500", "Дом", "7", "Trip", "2", "9"},
			expected: []string{`Goal "Trip" removed!`, "No goals yet!"},
		},
		{
			name:     "list by empty category",
			lines:    []string{"3", "Работа", "9"},
			expected: []string{"No goals in this category!"},
		},
		{
			name:     "total progress",
			lines:    []string{"1", "A", "1000", "Дом", "4", "A", "250", "8", "9"},
			expected: []string{"Total progress across all goals: 25.0%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newShellManager(t)
			out := runShell(t, m, tt.lines...)
			for _, want := range tt.expected {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestShell_EndOfInputExits(t *testing.T) {
	m, _ := newShellManager(t)
	var out bytes.Buffer

	shell := NewShell(m, strings.NewReader("1\nTrip\n"), &out)
	require.NoError(t, shell.Run(context.Background()))
	assert.Empty(t, m.ListGoals())
}

func TestShell_CanceledContextExits(t *testing.T) {
	m, _ := newShellManager(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	shell := NewShell(m, strings.NewReader("1\n"), &bytes.Buffer{})
	assert.NoError(t, shell.Run(ctx))
}
