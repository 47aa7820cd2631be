package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClock hands out strictly increasing millisecond timestamps.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.now = c.now.Add(time.Millisecond)
	return c.now
}

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// createTestStorage returns a migrated file-backed store with a deterministic
// clock and id generator.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	clock := &testClock{now: time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)}
	store, err := NewSQLiteStorage(dbPath, WithClock(clock.Now), WithIDGenerator(sequentialIDs("id")))
	require.NoError(t, err)

	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNewSQLiteStorage(t *testing.T) {
	t.Run("empty path rejected", func(t *testing.T) {
		_, err := NewSQLiteStorage("  ")
		require.ErrorIs(t, err, ErrEmptyString)
	})

	t.Run("creates parent directories", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "nested", "dir", "ledger.db")
		store, err := NewSQLiteStorage(dbPath)
		require.NoError(t, err)
		defer func() { _ = store.Close() }()

		assert.Equal(t, dbPath, store.DBPath())
		assert.FileExists(t, dbPath)
	})

	t.Run("in memory", func(t *testing.T) {
		store, err := NewSQLiteStorage(":memory:")
		require.NoError(t, err)
		defer func() { _ = store.Close() }()

		require.NoError(t, store.Migrate(context.Background()))
	})
}

func TestMigrate(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)

	// Running again is a no-op.
	require.NoError(t, store.Migrate(ctx))

	indexes := []string{
		"idx_expenses_date",
		"idx_expenses_category_id",
		"idx_expenses_created_at",
		"idx_categories_name",
		"idx_categories_usage_count",
	}
	for _, name := range indexes {
		var count int
		err := store.db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name = ?", name,
		).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "index %s should exist", name)
	}
}

func TestNilContextRejected(t *testing.T) {
	store := createTestStorage(t)

	//nolint:staticcheck // deliberately passing a nil context
	_, err := store.GetCategory(nil, "x")
	assert.ErrorIs(t, err, ErrNilContext)

	//nolint:staticcheck // deliberately passing a nil context
	err = store.DeleteExpense(nil, "x")
	assert.ErrorIs(t, err, ErrNilContext)
}

func TestValidateString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: "ledger.db"},
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace", input: " \t", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateString(tt.input, "param")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrEmptyString)
				assert.Contains(t, err.Error(), "param")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
