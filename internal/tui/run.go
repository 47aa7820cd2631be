package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the calendar until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts ...Option) error {
	m := New(ctx, opts...)
	if m.storage == nil {
		return errNoStorage
	}

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("calendar error: %w", err)
	}
	return nil
}
