package export

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/Veraticus/pocket-ledger/internal/insights"
	"github.com/Veraticus/pocket-ledger/internal/model"
)

const (
	// ExpensesSheet holds one row per expense.
	ExpensesSheet = "Expenses"
	// SummarySheet holds totals per category.
	SummarySheet = "Summary"

	usdFormat = `"$"#,##0.00`
)

// WriteXLSX writes a workbook with an Expenses sheet and a Summary sheet of
// per-category totals, largest first.
func WriteXLSX(w io.Writer, expenses []model.Expense, categories []model.Category) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Error("failed to close workbook", "error", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", ExpensesSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	styles, err := newStyles(f)
	if err != nil {
		return err
	}

	if err := writeExpensesSheet(f, styles, Rows(expenses, categories)); err != nil {
		return err
	}

	agg := insights.AggregateExpenses(expenses)
	if err := writeSummarySheet(f, styles, insights.CategoryBreakdown(agg, categories), agg.TotalCents); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

type sheetStyles struct {
	header int
	money  int
	total  int
}

func newStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	var err error

	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return s, fmt.Errorf("failed to create header style: %w", err)
	}

	numFmt := usdFormat
	s.money, err = f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return s, fmt.Errorf("failed to create money style: %w", err)
	}

	s.total, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		Fill:         excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		CustomNumFmt: &numFmt,
	})
	if err != nil {
		return s, fmt.Errorf("failed to create total style: %w", err)
	}
	return s, nil
}

func writeExpensesSheet(f *excelize.File, styles sheetStyles, rows []Row) error {
	if err := writeHeader(f, ExpensesSheet, Header, styles.header); err != nil {
		return err
	}

	for i, r := range rows {
		rowNum := i + 2
		values := []any{r.Date, r.Category, centsToDecimal(r.AmountCents).InexactFloat64(), r.Note}
		if err := f.SetSheetRow(ExpensesSheet, fmt.Sprintf("A%d", rowNum), &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", rowNum, err)
		}
	}

	if len(rows) > 0 {
		if err := f.SetCellStyle(ExpensesSheet, "C2", fmt.Sprintf("C%d", len(rows)+1), styles.money); err != nil {
			return fmt.Errorf("failed to style amounts: %w", err)
		}
	}

	widths := map[string]float64{"A": 12, "B": 20, "C": 12, "D": 40}
	for col, width := range widths {
		if err := f.SetColWidth(ExpensesSheet, col, col, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, styles sheetStyles, shares []insights.CategoryShare, totalCents int64) error {
	if err := writeHeader(f, SummarySheet, []string{"Category", "Amount", "Share"}, styles.header); err != nil {
		return err
	}

	for i, s := range shares {
		rowNum := i + 2
		values := []any{s.Name, centsToDecimal(s.AmountCents).InexactFloat64(), fmt.Sprintf("%d%%", s.Percent)}
		if err := f.SetSheetRow(SummarySheet, fmt.Sprintf("A%d", rowNum), &values); err != nil {
			return fmt.Errorf("failed to write summary row %d: %w", rowNum, err)
		}
		if err := f.SetCellStyle(SummarySheet, fmt.Sprintf("B%d", rowNum), fmt.Sprintf("B%d", rowNum), styles.money); err != nil {
			return fmt.Errorf("failed to style summary row %d: %w", rowNum, err)
		}
	}

	totalRow := len(shares) + 2
	totalValues := []any{"Total", centsToDecimal(totalCents).InexactFloat64()}
	if err := f.SetSheetRow(SummarySheet, fmt.Sprintf("A%d", totalRow), &totalValues); err != nil {
		return fmt.Errorf("failed to write total row: %w", err)
	}
	if err := f.SetCellStyle(SummarySheet, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("C%d", totalRow), styles.total); err != nil {
		return fmt.Errorf("failed to style total row: %w", err)
	}

	if err := f.SetColWidth(SummarySheet, "A", "A", 24); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return fmt.Errorf("failed to style header: %w", err)
		}
	}
	return nil
}
