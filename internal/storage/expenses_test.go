package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/model"
)

func usageCounts(t *testing.T, store *SQLiteStorage) map[string]int {
	t.Helper()
	cats, err := store.ListCategories(context.Background())
	require.NoError(t, err)

	counts := make(map[string]int, len(cats))
	for _, c := range cats {
		counts[c.ID] = c.UsageCount
	}
	return counts
}

func seedCategories(t *testing.T, store *SQLiteStorage, ids ...string) {
	t.Helper()
	for _, id := range ids {
		_, err := store.db.Exec("INSERT INTO categories (id, name, color, usage_count) VALUES (?, ?, '#000000', 0)", id, id)
		require.NoError(t, err)
	}
}

func TestCreateExpense(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	exp, err := store.CreateExpense(ctx, model.NewExpense{
		Date:        "2024-01-15",
		AmountCents: 1250,
		CategoryID:  "cat-1",
		Note:        strPtr("  lunch  "),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, exp.ID)
	assert.Equal(t, "lunch", exp.NoteText())
	assert.Equal(t, exp.CreatedAt, exp.UpdatedAt)
	assert.Positive(t, exp.CreatedAt)

	stored, err := store.GetExpense(ctx, exp.ID)
	require.NoError(t, err)
	assert.Equal(t, exp, stored)
}

func TestCreateExpense_NoteHandling(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	tests := []struct {
		note *string
		want *string
		name string
	}{
		{name: "absent stays absent", note: nil, want: nil},
		{name: "blank kept as empty", note: strPtr("   "), want: strPtr("")},
		{name: "trimmed", note: strPtr("\tcoffee\n"), want: strPtr("coffee")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp, err := store.CreateExpense(ctx, model.NewExpense{Date: "2024-01-01", AmountCents: 1, CategoryID: "c", Note: tt.note})
			require.NoError(t, err)

			stored, err := store.GetExpense(ctx, exp.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stored.Note)
		})
	}
}

func TestCreateExpense_IncrementsOnlyItsCategory(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	seedCategories(t, store, "cat-1", "cat-2", "cat-3")

	before := usageCounts(t, store)

	_, err := store.CreateExpense(ctx, model.NewExpense{Date: "2024-01-15", AmountCents: 999, CategoryID: "cat-1"})
	require.NoError(t, err)

	after := usageCounts(t, store)
	assert.Equal(t, before["cat-1"]+1, after["cat-1"])
	assert.Equal(t, before["cat-2"], after["cat-2"])
	assert.Equal(t, before["cat-3"], after["cat-3"])
}

func TestCreateExpense_IncrementsRegardlessOfAmount(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	seedCategories(t, store, "cat-1")

	_, err := store.CreateExpense(ctx, model.NewExpense{Date: "2024-01-15", AmountCents: 0, CategoryID: "cat-1"})
	require.NoError(t, err)

	assert.Equal(t, 1, usageCounts(t, store)["cat-1"])
}

func TestUpdateExpense(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	seedCategories(t, store, "cat-1", "cat-2")

	exp, err := store.CreateExpense(ctx, model.NewExpense{Date: "2024-01-15", AmountCents: 100, CategoryID: "cat-1"})
	require.NoError(t, err)

	t.Run("other fields leave usage untouched", func(t *testing.T) {
		before := usageCounts(t, store)
		amount := int64(250)

		updated, err := store.UpdateExpense(ctx, exp.ID, model.ExpensePatch{AmountCents: &amount, Note: strPtr(" dinner ")})
		require.NoError(t, err)

		assert.Equal(t, int64(250), updated.AmountCents)
		assert.Equal(t, "dinner", updated.NoteText())
		assert.Equal(t, exp.CreatedAt, updated.CreatedAt)
		assert.Greater(t, updated.UpdatedAt, exp.UpdatedAt)
		assert.Equal(t, before, usageCounts(t, store))
	})

	t.Run("same category does not increment", func(t *testing.T) {
		before := usageCounts(t, store)

		_, err := store.UpdateExpense(ctx, exp.ID, model.ExpensePatch{CategoryID: strPtr("cat-1")})
		require.NoError(t, err)
		assert.Equal(t, before, usageCounts(t, store))
	})

	t.Run("new category increments only the new one", func(t *testing.T) {
		before := usageCounts(t, store)

		updated, err := store.UpdateExpense(ctx, exp.ID, model.ExpensePatch{CategoryID: strPtr("cat-2")})
		require.NoError(t, err)
		assert.Equal(t, "cat-2", updated.CategoryID)

		after := usageCounts(t, store)
		assert.Equal(t, before["cat-1"], after["cat-1"])
		assert.Equal(t, before["cat-2"]+1, after["cat-2"])
	})

	t.Run("empty patch refreshes updatedAt only", func(t *testing.T) {
		current, err := store.GetExpense(ctx, exp.ID)
		require.NoError(t, err)

		updated, err := store.UpdateExpense(ctx, exp.ID, model.ExpensePatch{})
		require.NoError(t, err)
		assert.Greater(t, updated.UpdatedAt, current.UpdatedAt)
		assert.Equal(t, current.Date, updated.Date)
		assert.Equal(t, current.AmountCents, updated.AmountCents)
	})
}

func TestUpdateExpense_NotFound(t *testing.T) {
	store := createTestStorage(t)

	_, err := store.UpdateExpense(context.Background(), "missing", model.ExpensePatch{})
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestDeleteExpense(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	seedCategories(t, store, "cat-1")

	exp, err := store.CreateExpense(ctx, model.NewExpense{Date: "2024-01-15", AmountCents: 100, CategoryID: "cat-1"})
	require.NoError(t, err)

	require.NoError(t, store.DeleteExpense(ctx, exp.ID))
	gone, err := store.GetExpense(ctx, exp.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	// Usage is a popularity signal and is never decremented.
	assert.Equal(t, 1, usageCounts(t, store)["cat-1"])

	assert.NoError(t, store.DeleteExpense(ctx, exp.ID))
}

func TestListExpensesForDateRange(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	dates := []string{"2023-12-31", "2024-01-01", "2024-01-15", "2024-01-31", "2024-02-01"}
	for _, d := range dates {
		_, err := store.CreateExpense(ctx, model.NewExpense{Date: d, AmountCents: 100, CategoryID: "c"})
		require.NoError(t, err)
	}

	got, err := store.ListExpensesForDateRange(ctx, "2024-01-01", "2024-01-31")
	require.NoError(t, err)

	gotDates := make([]string, len(got))
	for i, e := range got {
		gotDates[i] = e.Date
	}
	// Newest created first.
	assert.Equal(t, []string{"2024-01-31", "2024-01-15", "2024-01-01"}, gotDates)
}

func TestListExpensesForDateRange_Empty(t *testing.T) {
	store := createTestStorage(t)

	got, err := store.ListExpensesForDateRange(context.Background(), "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListExpensesForDay(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	first, err := store.CreateExpense(ctx, model.NewExpense{Date: "2024-03-05", AmountCents: 100, CategoryID: "c"})
	require.NoError(t, err)
	_, err = store.CreateExpense(ctx, model.NewExpense{Date: "2024-03-06", AmountCents: 200, CategoryID: "c"})
	require.NoError(t, err)
	second, err := store.CreateExpense(ctx, model.NewExpense{Date: "2024-03-05", AmountCents: 300, CategoryID: "c"})
	require.NoError(t, err)

	got, err := store.ListExpensesForDay(ctx, "2024-03-05")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)
}

func TestListExpenses_TiesBreakByInsertOrder(t *testing.T) {
	store := createTestStorage(t)
	store.clock = func() time.Time { return time.UnixMilli(1_700_000_000_000) }
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		exp, err := store.CreateExpense(ctx, model.NewExpense{Date: "2024-03-05", AmountCents: 1, CategoryID: "c"})
		require.NoError(t, err)
		ids = append(ids, exp.ID)
	}

	got, err := store.ListExpensesForDay(ctx, "2024-03-05")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{ids[2], ids[1], ids[0]}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestListExpensesByCategory(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	inputs := []model.NewExpense{
		{Date: "2024-01-10", AmountCents: 100, CategoryID: "food"},
		{Date: "2024-01-20", AmountCents: 200, CategoryID: "rent"},
		{Date: "2024-02-10", AmountCents: 300, CategoryID: "food"},
		{Date: "2024-01-31", AmountCents: 400, CategoryID: "food"},
	}
	for _, in := range inputs {
		_, err := store.CreateExpense(ctx, in)
		require.NoError(t, err)
	}

	got, err := store.ListExpensesByCategory(ctx, "food", "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(400), got[0].AmountCents)
	assert.Equal(t, int64(100), got[1].AmountCents)
}
