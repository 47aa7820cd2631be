package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/Veraticus/pocket-ledger/internal/cli"
	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/dates"
	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/ofx"
	"github.com/Veraticus/pocket-ledger/internal/storage"
)

type importOptions struct {
	categoryID string
	dryRun     bool
	noCP       bool
}

func (a *app) importCmd() *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import <file.ofx|file.qfx>...",
		Short: "Import debits from OFX/QFX statements",
		Long: `Import every debit in one or more OFX/QFX statements as an expense in the
given category. Credits are ignored. Transactions already recorded with the
same date, amount and note are skipped, so re-importing a statement is safe.

A checkpoint is taken before anything is written unless --no-checkpoint is
passed or import.auto_checkpoint is false.`,
		Example: `  ledger import ~/Downloads/checking.qfx -c default-7
  ledger import statements/*.ofx -c default-1 --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			candidates, err := readStatements(cmd.Context(), args)
			if err != nil {
				return err
			}

			return a.withStorage(cmd, func(ctx context.Context, store *storage.SQLiteStorage) error {
				return a.runImport(ctx, cmd, store, candidates, opts)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.categoryID, "category", "c", "", "category for the imported expenses")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "list what would be imported without writing")
	cmd.Flags().BoolVar(&opts.noCP, "no-checkpoint", false, "skip the automatic checkpoint")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func readStatements(ctx context.Context, paths []string) ([]ofx.Candidate, error) {
	parser := ofx.NewParser()
	var all []ofx.Candidate

	for _, path := range paths {
		switch ext := filepath.Ext(path); ext {
		case ".ofx", ".qfx", ".OFX", ".QFX":
		default:
			return nil, common.NewUserError(fmt.Sprintf("%s is not an OFX/QFX file", path), nil)
		}

		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		candidates, err := parser.ParseFile(ctx, f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		all = append(all, candidates...)
	}
	return all, nil
}

func (a *app) runImport(ctx context.Context, cmd *cobra.Command, store *storage.SQLiteStorage, candidates []ofx.Candidate, opts importOptions) error {
	out := cmd.OutOrStdout()

	category, err := requireCategory(ctx, store, opts.categoryID)
	if err != nil {
		return err
	}

	candidates = slices.DeleteFunc(candidates, func(c ofx.Candidate) bool {
		return dates.IsFutureDate(c.Date)
	})
	if len(candidates) == 0 {
		writeln(out, cli.FormatInfo("No debits found."))
		return nil
	}

	fresh, err := dropRecorded(ctx, store, candidates)
	if err != nil {
		return err
	}
	if skipped := len(candidates) - len(fresh); skipped > 0 {
		writeln(out, cli.FormatInfo(fmt.Sprintf("Skipping %d already recorded", skipped)))
	}
	if len(fresh) == 0 {
		writeln(out, cli.FormatSuccess("Everything is already imported."))
		return nil
	}

	if opts.dryRun {
		preview := make([]model.Expense, 0, len(fresh))
		for i, c := range fresh {
			in := c.NewExpense(category.ID)
			preview = append(preview, model.Expense{
				ID: fmt.Sprintf("new-%d", i+1), Date: in.Date, CategoryID: in.CategoryID,
				AmountCents: in.AmountCents, Note: in.Note,
			})
		}
		writeln(out, cli.RenderExpenses(preview, []model.Category{*category}))
		writeln(out, cli.FormatInfo(fmt.Sprintf("Dry run: %d expenses would be imported into %s", len(fresh), category.Name)))
		return nil
	}

	if a.cfg.AutoCheckpointImport && !opts.noCP {
		manager, err := a.checkpointManager(store)
		if err != nil {
			return err
		}
		info, err := manager.AutoCheckpoint(ctx, "import")
		if err != nil {
			return err
		}
		writeln(out, cli.SubtleStyle.Render("Checkpoint "+info.ID))
	}

	handler := cli.NewInterruptHandler(out)
	ctx, stop := handler.HandleInterrupts(ctx, "Import", "Expenses imported so far were kept; run the import again to finish.")
	defer stop()

	bar := cli.NewProgressBar(out, len(fresh), "Importing expenses...")
	imported := 0
	for _, c := range fresh {
		if ctx.Err() != nil {
			break
		}
		if _, err := store.CreateExpense(ctx, c.NewExpense(category.ID)); err != nil {
			if errors.Is(err, context.Canceled) {
				break
			}
			common.LogError(err, "Failed to import expense", common.Fields{"fitid": c.FITID, "date": c.Date})
			return fmt.Errorf("import stopped after %d expenses: %w", imported, err)
		}
		imported++
		if err := bar.Add(1); err != nil {
			slog.Warn("Failed to update progress bar", "error", err)
		}
	}

	if handler.WasInterrupted() {
		return context.Canceled
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	common.LogInfo("Import finished", common.Fields{"imported": imported, "category": category.ID})
	writeln(out, cli.FormatSuccess(fmt.Sprintf("Imported %d expenses into %s", imported, category.Name)))
	return nil
}

// dropRecorded removes candidates already present in the store over the
// statements' date span.
func dropRecorded(ctx context.Context, store *storage.SQLiteStorage, candidates []ofx.Candidate) ([]ofx.Candidate, error) {
	start, end := candidates[0].Date, candidates[0].Date
	for _, c := range candidates[1:] {
		start = min(start, c.Date)
		end = max(end, c.Date)
	}

	existing, err := store.ListExpensesForDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing expenses: %w", err)
	}
	return ofx.FilterExisting(candidates, existing), nil
}
