package form

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/pocket-ledger/internal/dates"
	"github.com/Veraticus/pocket-ledger/internal/model"
)

func ptr[T any](v T) *T { return &v }

func TestParseExpenseInput(t *testing.T) {
	tests := []struct {
		wantErr error
		want    model.NewExpense
		name    string
		in      ExpenseInput
	}{
		{
			name: "valid with note",
			in:   ExpenseInput{Amount: "$1,234.5", Date: "2024-01-15", CategoryID: "default-1", Note: "  groceries "},
			want: model.NewExpense{Date: "2024-01-15", AmountCents: 123450, CategoryID: "default-1", Note: ptr("groceries")},
		},
		{
			name: "blank note becomes absent",
			in:   ExpenseInput{Amount: "5", Date: "2024-01-15", CategoryID: "c", Note: "   "},
			want: model.NewExpense{Date: "2024-01-15", AmountCents: 500, CategoryID: "c"},
		},
		{
			name:    "missing amount",
			in:      ExpenseInput{Amount: " ", Date: "2024-01-15", CategoryID: "c"},
			wantErr: ErrAmountRequired,
		},
		{
			name:    "zero amount",
			in:      ExpenseInput{Amount: "0.00", Date: "2024-01-15", CategoryID: "c"},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "too many decimals",
			in:      ExpenseInput{Amount: "12.345", Date: "2024-01-15", CategoryID: "c"},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "missing category",
			in:      ExpenseInput{Amount: "1", Date: "2024-01-15"},
			wantErr: ErrCategoryRequired,
		},
		{
			name:    "bad date",
			in:      ExpenseInput{Amount: "1", Date: "2024-13-01", CategoryID: "c"},
			wantErr: ErrInvalidDate,
		},
		{
			name:    "future date",
			in:      ExpenseInput{Amount: "1", Date: "2999-01-01", CategoryID: "c"},
			wantErr: ErrFutureDate,
		},
		{
			name:    "note too long",
			in:      ExpenseInput{Amount: "1", Date: "2024-01-15", CategoryID: "c", Note: strings.Repeat("x", model.MaxNoteLength+1)},
			wantErr: ErrNoteTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseExpenseInput(tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseExpenseInput_NoteAtLimit(t *testing.T) {
	note := strings.Repeat("é", model.MaxNoteLength)
	got, err := ParseExpenseInput(ExpenseInput{Amount: "1", Date: "2024-01-15", CategoryID: "c", Note: note})
	require.NoError(t, err)
	assert.Equal(t, note, *got.Note)
}

func TestParseExpenseInput_DefaultsToToday(t *testing.T) {
	got, err := ParseExpenseInput(ExpenseInput{Amount: "1", CategoryID: "c"})
	require.NoError(t, err)
	assert.Equal(t, dates.TodayISO(), got.Date)
}

func TestParseExpensePatch(t *testing.T) {
	patch, err := ParseExpensePatch(ExpensePatchInput{Amount: ptr("2.50"), Note: ptr("  ")})
	require.NoError(t, err)
	assert.Equal(t, int64(250), *patch.AmountCents)
	assert.Equal(t, "", *patch.Note)
	assert.Nil(t, patch.Date)
	assert.Nil(t, patch.CategoryID)

	_, err = ParseExpensePatch(ExpensePatchInput{CategoryID: ptr(" ")})
	assert.ErrorIs(t, err, ErrCategoryRequired)

	_, err = ParseExpensePatch(ExpensePatchInput{Date: ptr("2999-12-31")})
	assert.ErrorIs(t, err, ErrFutureDate)

	empty, err := ParseExpensePatch(ExpensePatchInput{})
	require.NoError(t, err)
	assert.Equal(t, model.ExpensePatch{}, empty)
}

func TestValidateCategoryName(t *testing.T) {
	name, err := ValidateCategoryName("  Pets ")
	require.NoError(t, err)
	assert.Equal(t, "Pets", name)

	_, err = ValidateCategoryName(" \t ")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "#EF4444", want: "#ef4444"},
		{in: "blue", want: "#3b82f6"},
		{in: " Emerald ", want: "#10b981"},
		{in: "#fff", wantErr: true},
		{in: "ef4444", wantErr: true},
		{in: "mauve", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidColor)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTheme(t *testing.T) {
	for _, in := range []string{"light", "DARK", " system "} {
		_, err := ParseTheme(in)
		assert.NoError(t, err, in)
	}
	_, err := ParseTheme("sepia")
	assert.ErrorIs(t, err, ErrInvalidTheme)
}

func TestParseWeekStart(t *testing.T) {
	tests := map[string]model.WeekStart{
		"sunday": model.WeekStartsSunday,
		"Mon":    model.WeekStartsMonday,
		"0":      model.WeekStartsSunday,
		"1":      model.WeekStartsMonday,
	}
	for in, want := range tests {
		got, err := ParseWeekStart(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"2", "tuesday", ""} {
		_, err := ParseWeekStart(in)
		assert.ErrorIs(t, err, ErrInvalidWeekStart, in)
	}
}
