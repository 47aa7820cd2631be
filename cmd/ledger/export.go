package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/pocket-ledger/internal/cli"
	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/export"
	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/storage"
)

const (
	formatCSV  = "csv"
	formatXLSX = "xlsx"
)

func (a *app) exportCmd() *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export expenses to CSV or XLSX",
		Long: `Export the expenses between --start and --end (default: this month).
The format follows the --output extension unless --format is given. Without
--output, CSV is written to stdout.`,
		Example: `  ledger export --start 2024-01-01 --end 2024-12-31 -o 2024.xlsx
  ledger export --format csv > january.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start, end, err := rangeFlags(cmd)
			if err != nil {
				return err
			}
			format, err = resolveExportFormat(format, output)
			if err != nil {
				return err
			}
			if format == formatXLSX && output == "" {
				return common.NewUserError("XLSX export needs --output", nil)
			}

			return a.withStorage(cmd, func(ctx context.Context, store *storage.SQLiteStorage) error {
				expenses, err := store.ListExpensesForDateRange(ctx, start, end)
				if err != nil {
					return err
				}
				categories, err := store.ListCategories(ctx)
				if err != nil {
					return err
				}

				w := cmd.OutOrStdout()
				if output != "" {
					f, err := os.Create(output)
					if err != nil {
						return fmt.Errorf("failed to create %s: %w", output, err)
					}
					defer func() {
						if closeErr := f.Close(); closeErr != nil {
							slog.Warn("Failed to close export file", "path", output, "error", closeErr)
						}
					}()
					w = f
				}

				if err := writeExport(w, format, expenses, categories); err != nil {
					return err
				}
				if output != "" {
					writeln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Exported %d expenses to %s", len(expenses), output)))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "csv or xlsx")
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write")
	cmd.Flags().String("start", "", "first day as YYYY-MM-DD")
	cmd.Flags().String("end", "", "last day as YYYY-MM-DD")

	return cmd
}

func resolveExportFormat(format, output string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
		if format == "" {
			format = formatCSV
		}
	}
	switch format {
	case formatCSV, formatXLSX:
		return format, nil
	default:
		return "", common.NewUserError(fmt.Sprintf("Unsupported export format %q; use csv or xlsx", format), nil)
	}
}

func writeExport(w io.Writer, format string, expenses []model.Expense, categories []model.Category) error {
	if format == formatXLSX {
		return export.WriteXLSX(w, expenses, categories)
	}
	return export.WriteCSV(w, expenses, categories)
}
