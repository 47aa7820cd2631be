package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Veraticus/pocket-ledger/internal/cli"
	"github.com/Veraticus/pocket-ledger/internal/dates"
	"github.com/Veraticus/pocket-ledger/internal/insights"
	"github.com/Veraticus/pocket-ledger/internal/storage"
)

func (a *app) suggestCmd() *cobra.Command {
	var categoryID, query string
	opts := insights.DefaultSuggestOptions()

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest notes used before in a category",
		Long: `Suggest notes from the last six months of a category that start with
--query, most recent first. Matching ignores case.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStorage(cmd, func(ctx context.Context, store *storage.SQLiteStorage) error {
				if _, err := requireCategory(ctx, store, categoryID); err != nil {
					return err
				}

				start, end := insights.NoteSuggestionWindow(dates.Today())
				expenses, err := store.ListExpensesByCategory(ctx, categoryID, start, end)
				if err != nil {
					return err
				}

				suggestions := insights.SuggestNotes(expenses, query, opts)
				if len(suggestions) == 0 {
					writeln(cmd.OutOrStdout(), cli.SubtleStyle.Render("No suggestions."))
					return nil
				}
				for _, s := range suggestions {
					writeln(cmd.OutOrStdout(), s)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&categoryID, "category", "c", "", "category id")
	cmd.Flags().StringVarP(&query, "query", "q", "", "note prefix")
	cmd.Flags().IntVar(&opts.Max, "max", opts.Max, "maximum number of suggestions")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}
