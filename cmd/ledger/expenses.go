package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/pocket-ledger/internal/cli"
	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/dates"
	"github.com/Veraticus/pocket-ledger/internal/form"
	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/money"
	"github.com/Veraticus/pocket-ledger/internal/storage"
)

func (a *app) addCmd() *cobra.Command {
	var in form.ExpenseInput

	cmd := &cobra.Command{
		Use:   "add <amount>",
		Short: "Record an expense",
		Example: `  ledger add 12.50 -c default-1 -n "Lunch"
  ledger add '$1,200' -c default-4 -d 2024-01-01`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Amount = args[0]
			newExpense, err := form.ParseExpenseInput(in)
			if err != nil {
				return common.NewUserError(capitalize(err.Error()), err)
			}

			return a.withStorage(cmd, func(ctx context.Context, store *storage.SQLiteStorage) error {
				category, err := requireCategory(ctx, store, newExpense.CategoryID)
				if err != nil {
					return err
				}

				expense, err := store.CreateExpense(ctx, newExpense)
				if err != nil {
					return fmt.Errorf("failed to add expense: %w", err)
				}

				writeln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Added %s to %s on %s",
					money.FormatCentsToUSD(expense.AmountCents), category.Name, expense.Date)))
				writeln(cmd.OutOrStdout(), cli.SubtleStyle.Render("id: "+expense.ID))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&in.CategoryID, "category", "c", "", "category id (see 'ledger categories list')")
	cmd.Flags().StringVarP(&in.Date, "date", "d", "", "date as YYYY-MM-DD (default: today)")
	cmd.Flags().StringVarP(&in.Note, "note", "n", "", "optional note")

	return cmd
}

func (a *app) editCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change an expense",
		Long:  `Change any of an expense's fields. Only the flags you pass are updated; --note "" clears the note.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := form.ExpensePatchInput{
				Amount:     changedString(cmd, "amount"),
				Date:       changedString(cmd, "date"),
				CategoryID: changedString(cmd, "category"),
				Note:       changedString(cmd, "note"),
			}
			if in == (form.ExpensePatchInput{}) {
				return common.NewUserError("Nothing to change; pass at least one of --amount, --date, --category, --note", nil)
			}

			patch, err := form.ParseExpensePatch(in)
			if err != nil {
				return common.NewUserError(capitalize(err.Error()), err)
			}

			return a.withStorage(cmd, func(ctx context.Context, store *storage.SQLiteStorage) error {
				if patch.CategoryID != nil {
					if _, err := requireCategory(ctx, store, *patch.CategoryID); err != nil {
						return err
					}
				}

				expense, err := store.UpdateExpense(ctx, args[0], patch)
				if err != nil {
					return fmt.Errorf("failed to update expense %s: %w", args[0], err)
				}

				category, err := store.GetCategory(ctx, expense.CategoryID)
				if err != nil {
					return err
				}
				writeln(cmd.OutOrStdout(), cli.FormatSuccess("Updated expense"))
				writeln(cmd.OutOrStdout(), cli.RenderExpense(*expense, category))
				return nil
			})
		},
	}

	cmd.Flags().String("amount", "", "new amount")
	cmd.Flags().String("date", "", "new date as YYYY-MM-DD")
	cmd.Flags().StringP("category", "c", "", "new category id")
	cmd.Flags().StringP("note", "n", "", "new note")

	return cmd
}

func (a *app) removeCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete an expense",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStorage(cmd, func(ctx context.Context, store *storage.SQLiteStorage) error {
				expense, err := store.GetExpense(ctx, args[0])
				if err != nil {
					return err
				}
				if expense == nil {
					return fmt.Errorf("expense %s: %w", args[0], common.ErrNotFound)
				}

				if !force {
					question := fmt.Sprintf("Delete %s from %s?", money.FormatCentsToUSD(expense.AmountCents), expense.Date)
					ok, err := cli.Confirm(ctx, cli.NewNonBlockingReader(cmd.InOrStdin()), cmd.OutOrStdout(), question)
					if err != nil {
						return err
					}
					if !ok {
						writeln(cmd.OutOrStdout(), cli.SubtleStyle.Render("Deletion cancelled."))
						return nil
					}
				}

				if err := store.DeleteExpense(ctx, expense.ID); err != nil {
					return fmt.Errorf("failed to delete expense: %w", err)
				}
				writeln(cmd.OutOrStdout(), cli.FormatSuccess("Deleted expense "+expense.ID))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	return cmd
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStorage(cmd, func(ctx context.Context, store *storage.SQLiteStorage) error {
				expense, err := store.GetExpense(ctx, args[0])
				if err != nil {
					return err
				}
				if expense == nil {
					return fmt.Errorf("expense %s: %w", args[0], common.ErrNotFound)
				}

				category, err := store.GetCategory(ctx, expense.CategoryID)
				if err != nil {
					return err
				}
				writeln(cmd.OutOrStdout(), cli.RenderExpense(*expense, category))
				return nil
			})
		},
	}
}

func (a *app) dayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day",
		Short: "List the expenses of one day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := dateFlag(cmd, "date")
			if err != nil {
				return err
			}

			return a.withStorage(cmd, func(ctx context.Context, store *storage.SQLiteStorage) error {
				iso := dates.FormatDateToISO(day)
				expenses, err := store.ListExpensesForDay(ctx, iso)
				if err != nil {
					return err
				}
				categories, err := store.ListCategories(ctx)
				if err != nil {
					return err
				}

				title := day.Format("Monday, January 2, 2006")
				if dates.IsToday(iso) {
					title += " (today)"
				}
				writeln(cmd.OutOrStdout(), cli.FormatTitle(title))
				writeln(cmd.OutOrStdout(), cli.RenderExpenses(expenses, categories))
				return nil
			})
		},
	}

	cmd.Flags().StringP("date", "d", "", "day as YYYY-MM-DD (default: today)")

	return cmd
}

func (a *app) listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses in a date range",
		Long:  `List expenses between --start and --end inclusive, newest entry first. Without flags the current month is shown.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start, end, err := rangeFlags(cmd)
			if err != nil {
				return err
			}
			categoryID, _ := cmd.Flags().GetString("category")

			return a.withStorage(cmd, func(ctx context.Context, store *storage.SQLiteStorage) error {
				var expenses []model.Expense
				if categoryID != "" {
					expenses, err = store.ListExpensesByCategory(ctx, categoryID, start, end)
				} else {
					expenses, err = store.ListExpensesForDateRange(ctx, start, end)
				}
				if err != nil {
					return err
				}

				categories, err := store.ListCategories(ctx)
				if err != nil {
					return err
				}

				writeln(cmd.OutOrStdout(), cli.FormatTitle(fmt.Sprintf("%s to %s", start, end)))
				writeln(cmd.OutOrStdout(), cli.RenderExpenses(expenses, categories))
				return nil
			})
		},
	}

	cmd.Flags().String("start", "", "first day as YYYY-MM-DD (default: start of this month)")
	cmd.Flags().String("end", "", "last day as YYYY-MM-DD (default: end of this month)")
	cmd.Flags().StringP("category", "c", "", "only this category")

	return cmd
}

// rangeFlags resolves --start/--end, defaulting each to the current month.
func rangeFlags(cmd *cobra.Command) (string, string, error) {
	start, err := isoFlag(cmd, "start")
	if err != nil {
		return "", "", err
	}
	end, err := isoFlag(cmd, "end")
	if err != nil {
		return "", "", err
	}

	today := dates.Today()
	monthStart, monthEnd := dates.GetMonthRange(today.Year(), int(today.Month()))
	if start == "" {
		start = monthStart
	}
	if end == "" {
		end = monthEnd
	}
	if start > end {
		return "", "", common.NewUserError("--start must not be after --end", nil)
	}
	return start, end, nil
}

// requireCategory looks up id, seeding the default categories on a fresh
// database first.
func requireCategory(ctx context.Context, store *storage.SQLiteStorage, id string) (*model.Category, error) {
	if err := store.InitDefaultCategories(ctx); err != nil {
		return nil, err
	}
	category, err := store.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, common.NewUserError(fmt.Sprintf("Unknown category %q; see 'ledger categories list'", id), common.ErrNotFound)
	}
	return category, nil
}

func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	value, _ := cmd.Flags().GetString(name)
	return &value
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
