package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/piggy/internal/service"
)

// Run shows the dashboard until the user quits or ctx is canceled.
func Run(ctx context.Context, goals service.GoalReader) error {
	if goals == nil {
		return fmt.Errorf("goal reader is required")
	}

	program := tea.NewProgram(New(goals),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := program.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("dashboard error: %w", err)
	}
	return nil
}
