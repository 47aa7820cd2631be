package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupTestDB(t *testing.T) {
	db := SetupTestDB(t)

	cat := db.MustCreateCategory("Coffee", "#f59e0b")
	assert.Equal(t, "id-1", cat.ID)

	db.Clock.Set(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	exp := db.MustCreateExpense("2024-05-31", 450, cat.ID, "")
	assert.Equal(t, "id-2", exp.ID)
	assert.Nil(t, exp.Note)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 1e6, time.UTC).UnixMilli(), exp.CreatedAt)

	got, err := db.Storage.GetCategory(db.ctx(), cat.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.UsageCount)
}

func TestSeed(t *testing.T) {
	db := SetupTestDB(t)
	seeded := db.Seed(JanuaryFixtures)
	require.Len(t, seeded, len(JanuaryFixtures))

	january, err := db.Storage.ListExpensesForDateRange(db.ctx(), "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.Len(t, january, 4)
	assert.Equal(t, "coffee beans", january[0].NoteText(), "newest entry first")
}
