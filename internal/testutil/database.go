// Package testutil provides shared fixtures for tests that need a real store.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/storage"
)

// TestDB wraps a migrated in-memory store and the test that owns it.
type TestDB struct {
	Storage *storage.SQLiteStorage
	Clock   *Clock
	t       *testing.T
}

// Clock is a manual clock handed to the store. Every read advances it by one
// millisecond so createdAt values stay distinct.
type Clock struct {
	now time.Time
}

// NewClock returns a clock starting at start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now advances the clock and returns the new time.
func (c *Clock) Now() time.Time {
	c.now = c.now.Add(time.Millisecond)
	return c.now
}

// Set moves the clock to t.
func (c *Clock) Set(t time.Time) {
	c.now = t
}

// SetupTestDB creates a new in-memory test database with deterministic ids
// ("id-1", "id-2", ...) and a manual clock. It automatically handles
// migrations and cleanup.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	clock := NewClock(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC))
	n := 0
	nextID := func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}

	store, err := storage.NewSQLiteStorage(":memory:",
		storage.WithClock(clock.Now),
		storage.WithIDGenerator(nextID),
	)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{
		Storage: store,
		Clock:   clock,
		t:       t,
	}
}

func (db *TestDB) ctx() context.Context {
	return context.Background()
}

// MustCreateCategory creates a category or fails the test.
func (db *TestDB) MustCreateCategory(name, color string) *model.Category {
	db.t.Helper()
	cat, err := db.Storage.CreateCategory(context.Background(), model.NewCategory{Name: name, Color: color})
	if err != nil {
		db.t.Fatalf("failed to create category %q: %v", name, err)
	}
	return cat
}

// MustCreateExpense creates an expense or fails the test. An empty note is
// stored as absent.
func (db *TestDB) MustCreateExpense(date string, cents int64, categoryID, note string) *model.Expense {
	db.t.Helper()
	in := model.NewExpense{Date: date, AmountCents: cents, CategoryID: categoryID}
	if note != "" {
		in.Note = &note
	}
	exp, err := db.Storage.CreateExpense(context.Background(), in)
	if err != nil {
		db.t.Fatalf("failed to create expense on %s: %v", date, err)
	}
	return exp
}
