package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/model"
)

const expenseColumns = "id, date, amount_cents, category_id, note, created_at, updated_at"

// Newest created first; rowid breaks ties between inserts in the same millisecond.
const expenseOrder = "ORDER BY created_at DESC, rowid DESC"

// CreateExpense stores a new expense and bumps its category's usage count in
// the same transaction.
func (s *SQLiteStorage) CreateExpense(ctx context.Context, in model.NewExpense) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	now := s.nowMillis()
	exp := model.Expense{
		ID:          s.newID(),
		Date:        in.Date,
		AmountCents: in.AmountCents,
		CategoryID:  in.CategoryID,
		Note:        model.TrimNote(in.Note),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.withTx(ctx, func(q querier) error {
		if _, err := q.ExecContext(ctx,
			"INSERT INTO expenses ("+expenseColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
			exp.ID, exp.Date, exp.AmountCents, exp.CategoryID, nullString(exp.Note), exp.CreatedAt, exp.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}
		return incrementUsage(ctx, q, exp.CategoryID)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("created expense", "id", exp.ID, "date", exp.Date, "amount_cents", exp.AmountCents, "category_id", exp.CategoryID)
	return &exp, nil
}

// UpdateExpense merges patch onto an existing expense. The new category's
// usage count is bumped only when the category actually changes.
func (s *SQLiteStorage) UpdateExpense(ctx context.Context, id string, patch model.ExpensePatch) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var updated *model.Expense
	err := s.withTx(ctx, func(q querier) error {
		exp, err := getExpense(ctx, q, id)
		if err != nil {
			return err
		}
		if exp == nil {
			return fmt.Errorf("expense %s: %w", id, common.ErrNotFound)
		}

		previousCategory := exp.CategoryID
		patch.Apply(exp)
		exp.UpdatedAt = s.nowMillis()

		if _, err := q.ExecContext(ctx, `
			UPDATE expenses
			SET date = ?, amount_cents = ?, category_id = ?, note = ?, updated_at = ?
			WHERE id = ?`,
			exp.Date, exp.AmountCents, exp.CategoryID, nullString(exp.Note), exp.UpdatedAt, exp.ID,
		); err != nil {
			return fmt.Errorf("failed to update expense: %w", err)
		}

		if patch.CategoryID != nil && *patch.CategoryID != previousCategory {
			if err := incrementUsage(ctx, q, *patch.CategoryID); err != nil {
				return err
			}
		}

		updated = exp
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("updated expense", "id", id)
	return updated, nil
}

// DeleteExpense removes an expense. Unknown ids are not an error and usage
// counts are never decremented.
func (s *SQLiteStorage) DeleteExpense(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	slog.Info("deleted expense", "id", id)
	return nil
}

// GetExpense returns the expense with id, or nil if there is none.
func (s *SQLiteStorage) GetExpense(ctx context.Context, id string) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return getExpense(ctx, s.db, id)
}

// ListExpensesForDateRange returns expenses dated within [start, end].
func (s *SQLiteStorage) ListExpensesForDateRange(ctx context.Context, start, end string) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.queryExpenses(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE date >= ? AND date <= ? "+expenseOrder,
		start, end)
}

// ListExpensesForDay returns expenses dated exactly date.
func (s *SQLiteStorage) ListExpensesForDay(ctx context.Context, date string) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.queryExpenses(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE date = ? "+expenseOrder,
		date)
}

// ListExpensesByCategory returns a category's expenses dated within [start, end].
func (s *SQLiteStorage) ListExpensesByCategory(ctx context.Context, categoryID, start, end string) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.queryExpenses(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE category_id = ? AND date >= ? AND date <= ? "+expenseOrder,
		categoryID, start, end)
}

func (s *SQLiteStorage) queryExpenses(ctx context.Context, query string, args ...any) ([]model.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Error("failed to close rows", "error", closeErr)
		}
	}()

	var expenses []model.Expense
	for rows.Next() {
		exp, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, *exp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}

	slog.Debug("retrieved expenses", "count", len(expenses))
	return expenses, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (*model.Expense, error) {
	var exp model.Expense
	var note sql.NullString
	if err := row.Scan(&exp.ID, &exp.Date, &exp.AmountCents, &exp.CategoryID, &note, &exp.CreatedAt, &exp.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan expense: %w", err)
	}
	if note.Valid {
		exp.Note = &note.String
	}
	return &exp, nil
}

func getExpense(ctx context.Context, q querier, id string) (*model.Expense, error) {
	row := q.QueryRowContext(ctx, "SELECT "+expenseColumns+" FROM expenses WHERE id = ?", id)
	exp, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return exp, err
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
