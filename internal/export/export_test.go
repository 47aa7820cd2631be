package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Veraticus/pocket-ledger/internal/model"
)

func note(s string) *string { return &s }

var (
	testCategories = []model.Category{
		{ID: "food", Name: "Food & Dining"},
		{ID: "rent", Name: "Rent"},
	}
	testExpenses = []model.Expense{
		{Date: "2024-01-31", CategoryID: "food", AmountCents: 1250, Note: note("Lunch, with \"friends\"")},
		{Date: "2024-01-15", CategoryID: "rent", AmountCents: 150000},
		{Date: "2024-01-02", CategoryID: "gone", AmountCents: 5},
	}
)

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, testExpenses, testCategories))

	want := "Date,Category,Amount,Note\n" +
		"2024-01-31,Food & Dining,12.50,\"Lunch, with \"\"friends\"\"\"\n" +
		"2024-01-15,Rent,1500.00,\n" +
		"2024-01-02,Unknown,0.05,\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil, nil))
	assert.Equal(t, "Date,Category,Amount,Note\n", buf.String())
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, testExpenses, testCategories))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{ExpensesSheet, SummarySheet}, f.GetSheetList())

	rows, err := f.GetRows(ExpensesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, "2024-01-31", rows[1][0])
	assert.Equal(t, "Food & Dining", rows[1][1])
	assert.Equal(t, "Unknown", rows[3][1])

	raw, err := f.GetCellValue(ExpensesSheet, "C3", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "1500", raw)

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	require.Len(t, summary, 5)
	assert.Equal(t, "Rent", summary[1][0])
	assert.Equal(t, "Food & Dining", summary[2][0])
	assert.Equal(t, "Unknown", summary[3][0])
	assert.Equal(t, "Total", summary[4][0])

	total, err := f.GetCellValue(SummarySheet, "B5", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "1512.55", total)
}

func TestRows(t *testing.T) {
	rows := Rows(testExpenses[:1], testCategories)
	require.Len(t, rows, 1)
	assert.Equal(t, Row{Date: "2024-01-31", Category: "Food & Dining", Note: "Lunch, with \"friends\"", AmountCents: 1250}, rows[0])
}
