package testutil

import "github.com/Veraticus/pocket-ledger/internal/model"

// ExpenseFixture is a compact expense description for seeding.
type ExpenseFixture struct {
	Date       string
	CategoryID string
	Note       string
	Cents      int64
}

// JanuaryFixtures spans a month boundary on both ends and uses three
// categories from the default set.
var JanuaryFixtures = []ExpenseFixture{
	{Date: "2023-12-31", Cents: 1500, CategoryID: "default-1", Note: "New Year's Eve dinner"},
	{Date: "2024-01-01", Cents: 450, CategoryID: "default-1", Note: "Coffee"},
	{Date: "2024-01-01", Cents: 2500, CategoryID: "default-2", Note: "Taxi"},
	{Date: "2024-01-15", Cents: 8999, CategoryID: "default-3", Note: "Coat"},
	{Date: "2024-01-31", Cents: 1200, CategoryID: "default-1", Note: "coffee beans"},
	{Date: "2024-02-01", Cents: 3000, CategoryID: "default-2"},
}

// Seed bootstraps the default categories and inserts fixtures in order.
func (db *TestDB) Seed(fixtures []ExpenseFixture) []model.Expense {
	db.t.Helper()
	if _, err := db.Storage.ListCategories(db.ctx()); err != nil {
		db.t.Fatalf("failed to bootstrap categories: %v", err)
	}

	out := make([]model.Expense, 0, len(fixtures))
	for _, f := range fixtures {
		out = append(out, *db.MustCreateExpense(f.Date, f.Cents, f.CategoryID, f.Note))
	}
	return out
}
