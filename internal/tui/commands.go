package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/pocket-ledger/internal/dates"
)

var errNoStorage = errors.New("storage not configured")

const loadTimeout = 10 * time.Second

// loadMonth reads the month's expenses together with the categories and
// settings needed to draw them.
func (m Model) loadMonth(month time.Time) tea.Cmd {
	storage := m.storage
	parent := m.ctx
	return func() tea.Msg {
		if storage == nil {
			return monthLoadedMsg{month: month, err: errNoStorage}
		}

		ctx, cancel := context.WithTimeout(parent, loadTimeout)
		defer cancel()

		settings, err := storage.GetSettings(ctx)
		if err != nil {
			return monthLoadedMsg{month: month, err: fmt.Errorf("failed to load settings: %w", err)}
		}

		categories, err := storage.ListCategories(ctx)
		if err != nil {
			return monthLoadedMsg{month: month, err: fmt.Errorf("failed to load categories: %w", err)}
		}

		start, end := dates.GetMonthRange(month.Year(), int(month.Month()))
		expenses, err := storage.ListExpensesForDateRange(ctx, start, end)
		if err != nil {
			return monthLoadedMsg{month: month, err: fmt.Errorf("failed to load expenses: %w", err)}
		}

		return monthLoadedMsg{
			month:      month,
			settings:   settings,
			categories: categories,
			expenses:   expenses,
		}
	}
}
