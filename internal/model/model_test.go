package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestExpensePatch_Apply(t *testing.T) {
	base := Expense{
		ID: "e1", Date: "2024-01-15", CategoryID: "food", AmountCents: 1250,
		Note: ptr("Lunch"), CreatedAt: 10, UpdatedAt: 10,
	}

	tests := []struct {
		name  string
		patch ExpensePatch
		want  Expense
	}{
		{
			name:  "empty patch changes nothing",
			patch: ExpensePatch{},
			want:  base,
		},
		{
			name:  "amount and category",
			patch: ExpensePatch{AmountCents: ptr(int64(999)), CategoryID: ptr("transport")},
			want: Expense{
				ID: "e1", Date: "2024-01-15", CategoryID: "transport", AmountCents: 999,
				Note: ptr("Lunch"), CreatedAt: 10, UpdatedAt: 10,
			},
		},
		{
			name:  "note is trimmed",
			patch: ExpensePatch{Note: ptr("  Dinner \n"), Date: ptr("2024-01-16")},
			want: Expense{
				ID: "e1", Date: "2024-01-16", CategoryID: "food", AmountCents: 1250,
				Note: ptr("Dinner"), CreatedAt: 10, UpdatedAt: 10,
			},
		},
		{
			name:  "blank note stays an empty string",
			patch: ExpensePatch{Note: ptr("   ")},
			want: Expense{
				ID: "e1", Date: "2024-01-15", CategoryID: "food", AmountCents: 1250,
				Note: ptr(""), CreatedAt: 10, UpdatedAt: 10,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := base
			tt.patch.Apply(&got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpense_NoteText(t *testing.T) {
	assert.Empty(t, Expense{}.NoteText())
	assert.Equal(t, "Taxi", Expense{Note: ptr("Taxi")}.NoteText())
}

func TestTrimNote(t *testing.T) {
	assert.Nil(t, TrimNote(nil))
	assert.Equal(t, "a b", *TrimNote(ptr(" a b ")))
}

func TestCategoryPatch_Apply(t *testing.T) {
	c := Category{ID: "c1", Name: "Food", Color: "#ef4444", UsageCount: 3}

	CategoryPatch{Name: ptr("  Groceries ")}.Apply(&c)
	assert.Equal(t, Category{ID: "c1", Name: "Groceries", Color: "#ef4444", UsageCount: 3}, c)

	CategoryPatch{Color: ptr("#22c55e")}.Apply(&c)
	assert.Equal(t, "#22c55e", c.Color)
	assert.Equal(t, 3, c.UsageCount)
}

func TestSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, Settings{ID: SettingsID, Theme: ThemeSystem, WeekStartsOn: WeekStartsSunday}, s)

	SettingsPatch{WeekStartsOn: ptr(WeekStartsMonday)}.Apply(&s)
	assert.Equal(t, WeekStartsMonday, s.WeekStartsOn)
	assert.Equal(t, ThemeSystem, s.Theme)

	SettingsPatch{Theme: ptr(ThemeDark)}.Apply(&s)
	assert.Equal(t, ThemeDark, s.Theme)

	assert.True(t, ThemeLight.IsValid())
	assert.False(t, Theme("neon").IsValid())
	assert.Equal(t, "monday", WeekStartsMonday.String())
	assert.Equal(t, "WeekStart(5)", WeekStart(5).String())
}
