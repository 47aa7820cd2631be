package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/pocket-ledger/internal/cli"
	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/dates"
	"github.com/Veraticus/pocket-ledger/internal/insights"
	"github.com/Veraticus/pocket-ledger/internal/storage"
	"github.com/Veraticus/pocket-ledger/internal/tui"
)

const monthLayout = "2006-01"

func (a *app) calendarCmd() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show a month of daily totals",
		Long: `Print a month grid with each day's spending rounded to whole dollars.
With -i the calendar opens interactively and can be browsed day by day.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			month, err := monthFlag(cmd)
			if err != nil {
				return err
			}

			return a.withStorage(cmd, func(ctx context.Context, store *storage.SQLiteStorage) error {
				if interactive {
					return tui.Run(ctx, tui.WithStorage(store), tui.WithMonth(month))
				}

				settings, err := store.GetSettings(ctx)
				if err != nil {
					return err
				}
				start, end := dates.GetMonthRange(month.Year(), int(month.Month()))
				expenses, err := store.ListExpensesForDateRange(ctx, start, end)
				if err != nil {
					return err
				}

				agg := insights.AggregateExpenses(expenses)
				writeln(cmd.OutOrStdout(), cli.RenderMonth(cli.MonthView{
					Month:        month,
					Today:        dates.Today(),
					ByDay:        agg.ByDay,
					WeekStartsOn: settings.WeekStartsOn,
					InProgress:   dates.IsCurrentOrFutureMonth(month.Year(), int(month.Month())),
				}))
				return nil
			})
		},
	}

	cmd.Flags().StringP("month", "m", "", "month as YYYY-MM (default: this month)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse the calendar interactively")

	return cmd
}

func monthFlag(cmd *cobra.Command) (time.Time, error) {
	raw, _ := cmd.Flags().GetString("month")
	if raw == "" {
		return dates.Today(), nil
	}
	t, err := time.ParseInLocation(monthLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, common.NewUserError("--month must be YYYY-MM", err)
	}
	return t, nil
}
