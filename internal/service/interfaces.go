// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/pocket-ledger/internal/model"
)

// CategoryStore manages expense categories.
type CategoryStore interface {
	InitDefaultCategories(ctx context.Context) error
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetCategory(ctx context.Context, id string) (*model.Category, error)
	CreateCategory(ctx context.Context, in model.NewCategory) (*model.Category, error)
	UpdateCategory(ctx context.Context, id string, patch model.CategoryPatch) (*model.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	IncrementUsage(ctx context.Context, id string) error
	CategoryHasExpenses(ctx context.Context, id string) (bool, error)
	CountExpensesByCategory(ctx context.Context) (map[string]int, error)
}

// ExpenseStore manages expenses. Lists are ordered newest created first.
type ExpenseStore interface {
	CreateExpense(ctx context.Context, in model.NewExpense) (*model.Expense, error)
	UpdateExpense(ctx context.Context, id string, patch model.ExpensePatch) (*model.Expense, error)
	DeleteExpense(ctx context.Context, id string) error
	GetExpense(ctx context.Context, id string) (*model.Expense, error)
	ListExpensesForDateRange(ctx context.Context, start, end string) ([]model.Expense, error)
	ListExpensesForDay(ctx context.Context, date string) ([]model.Expense, error)
	ListExpensesByCategory(ctx context.Context, categoryID, start, end string) ([]model.Expense, error)
}

// SettingsStore manages the singleton settings record.
type SettingsStore interface {
	GetSettings(ctx context.Context) (*model.Settings, error)
	UpdateSettings(ctx context.Context, patch model.SettingsPatch) (*model.Settings, error)
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	CategoryStore
	ExpenseStore
	SettingsStore

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
