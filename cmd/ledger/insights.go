package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/pocket-ledger/internal/cli"
	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/dates"
	"github.com/Veraticus/pocket-ledger/internal/insights"
	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/storage"
)

const rangeCustom = "custom"

func (a *app) insightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Show where the money went in a period",
		Long: `Summarise spending for the week, month or year containing --date, or for
an explicit --start/--end range with --range custom. Categories are listed by
amount with their rounded share of the total.

--prev and --next step one period back or forward and may be repeated.
Stepping past the current period is refused.`,
		Example: `  ledger insights
  ledger insights --range week --date 2024-03-14
  ledger insights --range week --prev --prev
  ledger insights --range custom --start 2024-01-01 --end 2024-03-31`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rangeName, _ := cmd.Flags().GetString("range")

			return a.withStorage(cmd, func(ctx context.Context, store *storage.SQLiteStorage) error {
				start, end, label, err := resolveInsightsRange(ctx, cmd, store, rangeName)
				if err != nil {
					return err
				}

				expenses, err := store.ListExpensesForDateRange(ctx, start, end)
				if err != nil {
					return err
				}
				categories, err := store.ListCategories(ctx)
				if err != nil {
					return err
				}

				agg := insights.AggregateExpenses(expenses)
				shares := insights.CategoryBreakdown(agg, categories)
				writeln(cmd.OutOrStdout(), cli.RenderBreakdown(label, shares, agg.TotalCents, len(expenses)))
				return nil
			})
		},
	}

	cmd.Flags().StringP("range", "r", "month", "week, month, year or custom")
	cmd.Flags().StringP("date", "d", "", "any day inside the period (default: today)")
	cmd.Flags().String("start", "", "first day for --range custom")
	cmd.Flags().String("end", "", "last day for --range custom")
	cmd.Flags().Count("prev", "step one period back (repeatable)")
	cmd.Flags().Count("next", "step one period forward (repeatable)")

	return cmd
}

// resolveInsightsRange turns the flags into an inclusive ISO range and a
// heading for it.
func resolveInsightsRange(ctx context.Context, cmd *cobra.Command, store *storage.SQLiteStorage, rangeName string) (string, string, string, error) {
	prev, _ := cmd.Flags().GetCount("prev")
	next, _ := cmd.Flags().GetCount("next")

	if rangeName == rangeCustom {
		if prev > 0 || next > 0 {
			return "", "", "", common.NewUserError("--prev and --next need a week, month or year range", nil)
		}
		if !cmd.Flags().Changed("start") || !cmd.Flags().Changed("end") {
			return "", "", "", common.NewUserError("--range custom needs both --start and --end", nil)
		}
		start, end, err := rangeFlags(cmd)
		if err != nil {
			return "", "", "", err
		}
		return start, end, fmt.Sprintf("%s to %s", start, end), nil
	}

	rangeType, err := dates.ParseRangeType(rangeName)
	if err != nil {
		return "", "", "", common.NewUserError("--range must be week, month, year or custom", err)
	}
	viewDate, err := dateFlag(cmd, "date")
	if err != nil {
		return "", "", "", err
	}
	settings, err := store.GetSettings(ctx)
	if err != nil {
		return "", "", "", err
	}

	viewDate, err = stepPeriod(viewDate, rangeType, settings.WeekStartsOn, next-prev)
	if err != nil {
		return "", "", "", err
	}

	start, end, err := dates.PeriodRange(viewDate, rangeType, settings.WeekStartsOn)
	if err != nil {
		return "", "", "", err
	}
	label := dates.FormatPeriodLabel(viewDate, rangeType, settings.WeekStartsOn)
	if dates.IsCurrentPeriod(viewDate, rangeType, settings.WeekStartsOn) {
		label += " (current)"
	}
	return start, end, label, nil
}

// stepPeriod shifts viewDate by steps periods, negative meaning back in
// time. Moving forward stops at the current period.
func stepPeriod(viewDate time.Time, rangeType model.RangeType, weekStartsOn model.WeekStart, steps int) (time.Time, error) {
	direction := model.Next
	if steps < 0 {
		direction = model.Previous
		steps = -steps
	}
	for i := 0; i < steps; i++ {
		if direction == model.Next && dates.IsCurrentPeriod(viewDate, rangeType, weekStartsOn) {
			return time.Time{}, common.NewUserError("Already showing the current period; there is nothing to step forward to.", nil)
		}
		viewDate = dates.ShiftPeriod(viewDate, rangeType, direction)
	}
	return viewDate, nil
}
