package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/model"
)

// DefaultCategories are inserted the first time categories are read from an
// empty store.
var DefaultCategories = []model.Category{
	{ID: "default-1", Name: "Food & Dining", Color: "#ef4444"},
	{ID: "default-2", Name: "Transportation", Color: "#f97316"},
	{ID: "default-3", Name: "Shopping", Color: "#eab308"},
	{ID: "default-4", Name: "Bills & Utilities", Color: "#22c55e"},
	{ID: "default-5", Name: "Entertainment", Color: "#3b82f6"},
	{ID: "default-6", Name: "Health", Color: "#8b5cf6"},
	{ID: "default-7", Name: "Other", Color: "#6b7280"},
}

// InitDefaultCategories seeds the preset categories when none exist.
func (s *SQLiteStorage) InitDefaultCategories(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	return s.withTx(ctx, func(q querier) error {
		var count int
		if err := q.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
			return fmt.Errorf("failed to count categories: %w", err)
		}
		if count > 0 {
			return nil
		}

		for _, cat := range DefaultCategories {
			if _, err := q.ExecContext(ctx,
				"INSERT INTO categories (id, name, color, usage_count) VALUES (?, ?, ?, 0)",
				cat.ID, cat.Name, cat.Color,
			); err != nil {
				return fmt.Errorf("failed to insert default category %q: %w", cat.Name, err)
			}
		}

		slog.Info("seeded default categories", "count", len(DefaultCategories))
		return nil
	})
}

// ListCategories returns every category, most used first and then by name.
func (s *SQLiteStorage) ListCategories(ctx context.Context) ([]model.Category, error) {
	if err := s.InitDefaultCategories(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, color, usage_count
		FROM categories
		ORDER BY usage_count DESC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Error("failed to close rows", "error", closeErr)
		}
	}()

	var categories []model.Category
	for rows.Next() {
		var cat model.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Color, &cat.UsageCount); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	slog.Debug("retrieved categories", "count", len(categories))
	return categories, nil
}

// GetCategory returns the category with id, or nil if there is none.
func (s *SQLiteStorage) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return getCategory(ctx, s.db, id)
}

func getCategory(ctx context.Context, q querier, id string) (*model.Category, error) {
	var cat model.Category
	err := q.QueryRowContext(ctx,
		"SELECT id, name, color, usage_count FROM categories WHERE id = ?", id,
	).Scan(&cat.ID, &cat.Name, &cat.Color, &cat.UsageCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}
	return &cat, nil
}

// CreateCategory stores a new category with a trimmed name and zero usage.
// Empty names are not rejected here.
func (s *SQLiteStorage) CreateCategory(ctx context.Context, in model.NewCategory) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	cat := model.Category{
		ID:    s.newID(),
		Name:  strings.TrimSpace(in.Name),
		Color: in.Color,
	}

	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO categories (id, name, color, usage_count) VALUES (?, ?, ?, 0)",
		cat.ID, cat.Name, cat.Color,
	); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	slog.Info("created new category", "name", cat.Name, "id", cat.ID)
	return &cat, nil
}

// UpdateCategory merges patch onto an existing category.
func (s *SQLiteStorage) UpdateCategory(ctx context.Context, id string, patch model.CategoryPatch) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var updated *model.Category
	err := s.withTx(ctx, func(q querier) error {
		cat, err := getCategory(ctx, q, id)
		if err != nil {
			return err
		}
		if cat == nil {
			return fmt.Errorf("category %s: %w", id, common.ErrNotFound)
		}

		patch.Apply(cat)
		if _, err := q.ExecContext(ctx,
			"UPDATE categories SET name = ?, color = ? WHERE id = ?",
			cat.Name, cat.Color, cat.ID,
		); err != nil {
			return fmt.Errorf("failed to update category: %w", err)
		}
		updated = cat
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("updated category", "id", id, "name", updated.Name)
	return updated, nil
}

// DeleteCategory removes a category. It refuses while any expense still
// references it; deleting an unknown id succeeds.
func (s *SQLiteStorage) DeleteCategory(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	err := s.withTx(ctx, func(q querier) error {
		inUse, err := categoryHasExpenses(ctx, q, id)
		if err != nil {
			return err
		}
		if inUse {
			return common.ErrCategoryInUse
		}

		if _, err := q.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id); err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("deleted category", "id", id)
	return nil
}

// IncrementUsage bumps a category's usage count. A missing category is
// skipped with a warning.
func (s *SQLiteStorage) IncrementUsage(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return incrementUsage(ctx, s.db, id)
}

func incrementUsage(ctx context.Context, q querier, id string) error {
	result, err := q.ExecContext(ctx,
		"UPDATE categories SET usage_count = usage_count + 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to increment usage: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		slog.Warn("usage increment for unknown category ignored", "category_id", id)
	}
	return nil
}

// CategoryHasExpenses reports whether any expense references id.
func (s *SQLiteStorage) CategoryHasExpenses(ctx context.Context, id string) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}
	return categoryHasExpenses(ctx, s.db, id)
}

func categoryHasExpenses(ctx context.Context, q querier, id string) (bool, error) {
	var exists bool
	if err := q.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM expenses WHERE category_id = ?)", id,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check category expenses: %w", err)
	}
	return exists, nil
}

// CountExpensesByCategory returns the number of expenses per category id.
// Categories without expenses are absent from the map.
func (s *SQLiteStorage) CountExpensesByCategory(ctx context.Context) (map[string]int, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT category_id, COUNT(*) FROM expenses GROUP BY category_id")
	if err != nil {
		return nil, fmt.Errorf("failed to count expenses by category: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Error("failed to close rows", "error", closeErr)
		}
	}()

	counts := make(map[string]int)
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("failed to scan expense count: %w", err)
		}
		counts[id] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense counts: %w", err)
	}
	return counts, nil
}
