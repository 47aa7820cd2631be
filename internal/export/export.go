// Package export writes expenses to CSV and XLSX files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/pocket-ledger/internal/model"
)

// Header is the column order shared by every export format.
var Header = []string{"Date", "Category", "Amount", "Note"}

// Row is one flattened expense ready to be written.
type Row struct {
	Date        string
	Category    string
	Note        string
	AmountCents int64
}

// Rows resolves category names and flattens expenses in the given order.
// Expenses whose category no longer exists are labelled "Unknown".
func Rows(expenses []model.Expense, categories []model.Category) []Row {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	rows := make([]Row, 0, len(expenses))
	for _, e := range expenses {
		name, ok := names[e.CategoryID]
		if !ok {
			name = "Unknown"
		}
		rows = append(rows, Row{
			Date:        e.Date,
			Category:    name,
			Note:        e.NoteText(),
			AmountCents: e.AmountCents,
		})
	}
	return rows
}

// WriteCSV writes a header row then one row per expense. Amounts are plain
// decimals ("12.34") so spreadsheets parse them as numbers.
func WriteCSV(w io.Writer, expenses []model.Expense, categories []model.Category) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range Rows(expenses, categories) {
		record := []string{r.Date, r.Category, centsToDecimal(r.AmountCents).StringFixed(2), r.Note}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

func centsToDecimal(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
