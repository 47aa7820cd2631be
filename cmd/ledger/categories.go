package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/pocket-ledger/internal/cli"
	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/form"
	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/storage"
)

func (a *app) categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category", "cat"},
		Short:   "Manage expense categories",
		Long: `List, create, rename, recolor and delete categories.

Categories are listed most used first. A category that still has expenses
cannot be deleted.`,
	}

	cmd.AddCommand(a.listCategoriesCmd())
	cmd.AddCommand(a.addCategoryCmd())
	cmd.AddCommand(a.updateCategoryCmd())
	cmd.AddCommand(a.deleteCategoryCmd())
	cmd.AddCommand(colorsCmd())

	return cmd
}

func (a *app) listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories, most used first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStorage(cmd, func(ctx context.Context, store *storage.SQLiteStorage) error {
				categories, err := store.ListCategories(ctx)
				if err != nil {
					return err
				}
				counts, err := store.CountExpensesByCategory(ctx)
				if err != nil {
					return err
				}
				writeln(cmd.OutOrStdout(), cli.RenderCategories(categories, counts))
				return nil
			})
		},
	}
}

func (a *app) addCategoryCmd() *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Example: `  ledger categories add "Coffee" --color amber
  ledger categories add Travel --color '#0ea5e9'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := form.ValidateCategoryName(args[0])
			if err != nil {
				return common.NewUserError(capitalize(err.Error()), err)
			}
			hex, err := form.ParseColor(color)
			if err != nil {
				return common.NewUserError(capitalize(err.Error()), err)
			}

			return a.withStorage(cmd, func(ctx context.Context, store *storage.SQLiteStorage) error {
				// Seed first so the defaults are not skipped by a non-empty table.
				if err := store.InitDefaultCategories(ctx); err != nil {
					return err
				}
				category, err := store.CreateCategory(ctx, model.NewCategory{Name: name, Color: hex})
				if err != nil {
					return fmt.Errorf("failed to create category: %w", err)
				}
				writeln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Created category %s (%s)", category.Name, category.ID)))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&color, "color", form.DefaultColor, "preset name or #rrggbb (see 'ledger categories colors')")

	return cmd
}

func (a *app) updateCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename or recolor a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch model.CategoryPatch
			if name := changedString(cmd, "name"); name != nil {
				trimmed, err := form.ValidateCategoryName(*name)
				if err != nil {
					return common.NewUserError(capitalize(err.Error()), err)
				}
				patch.Name = &trimmed
			}
			if color := changedString(cmd, "color"); color != nil {
				hex, err := form.ParseColor(*color)
				if err != nil {
					return common.NewUserError(capitalize(err.Error()), err)
				}
				patch.Color = &hex
			}
			if patch.Name == nil && patch.Color == nil {
				return common.NewUserError("Nothing to change; pass --name or --color", nil)
			}

			return a.withStorage(cmd, func(ctx context.Context, store *storage.SQLiteStorage) error {
				if err := store.InitDefaultCategories(ctx); err != nil {
					return err
				}
				category, err := store.UpdateCategory(ctx, args[0], patch)
				if err != nil {
					return fmt.Errorf("failed to update category %s: %w", args[0], err)
				}
				writeln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Updated category %s (%s, %s)", category.ID, category.Name, category.Color)))
				return nil
			})
		},
	}

	cmd.Flags().String("name", "", "new name")
	cmd.Flags().String("color", "", "new preset name or #rrggbb")

	return cmd
}

func (a *app) deleteCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a category that has no expenses",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStorage(cmd, func(ctx context.Context, store *storage.SQLiteStorage) error {
				if err := store.DeleteCategory(ctx, args[0]); err != nil {
					return fmt.Errorf("failed to delete category %s: %w", args[0], err)
				}
				writeln(cmd.OutOrStdout(), cli.FormatSuccess("Deleted category "+args[0]))
				return nil
			})
		},
	}
}

func colorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "colors",
		Short: "Show the preset category colors",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			var b strings.Builder
			for _, p := range form.Presets {
				swatch := cli.SwatchStyle(p.Hex).Render("●")
				fmt.Fprintf(&b, "%s %-8s %s\n", swatch, p.Name, p.Hex)
			}
			fmt.Fprint(cmd.OutOrStdout(), b.String())
		},
	}
}
