package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/pocket-ledger/internal/insights"
	"github.com/Veraticus/pocket-ledger/internal/model"
)

func TestWeekdayHeaders(t *testing.T) {
	assert.Equal(t, "Sun", WeekdayHeaders(model.WeekStartsSunday)[0])

	monday := WeekdayHeaders(model.WeekStartsMonday)
	assert.Equal(t, "Mon", monday[0])
	assert.Equal(t, "Sun", monday[6])
	assert.Len(t, monday, 7)
}

func TestRenderMonth(t *testing.T) {
	out := RenderMonth(MonthView{
		Month:        time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local),
		Today:        time.Date(2025, time.January, 15, 0, 0, 0, 0, time.Local),
		WeekStartsOn: model.WeekStartsMonday,
		ByDay: map[string]int64{
			"2025-01-10": 123456,
			"2025-01-20": 49,
			"2024-12-31": 99999,
		},
	})

	assert.Contains(t, out, CalendarIcon+" January 2025")
	assert.Contains(t, out, "$1,235")
	assert.Contains(t, out, "Month total:")
	assert.Contains(t, out, "$1,235.05")
	// Adjacent-month totals are not drawn.
	assert.NotContains(t, out, "$1,000")
	assert.Less(t, strings.Index(out, "Mon"), strings.Index(out, "Sun"))
}

func TestRenderMonth_InProgress(t *testing.T) {
	out := RenderMonth(MonthView{
		Month:      time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local),
		ByDay:      map[string]int64{"2025-01-02": 500},
		InProgress: true,
	})

	assert.Contains(t, out, "Month to date:")
	assert.NotContains(t, out, "Month total:")
	assert.Contains(t, out, "$5.00")
}

func TestCellStyle(t *testing.T) {
	header := cellStyle(table.HeaderRow, true)
	assert.True(t, header.GetBold())
	assert.Equal(t, TableHeaderStyle.GetForeground(), header.GetForeground())

	amount := cellStyle(0, true)
	assert.Equal(t, lipgloss.Right, amount.GetAlignHorizontal())
	assert.False(t, amount.GetBold())

	plain := cellStyle(0, false)
	assert.Equal(t, lipgloss.Left, plain.GetAlignHorizontal())
	assert.Equal(t, 1, plain.GetPaddingLeft())
}

func TestRenderExpenses(t *testing.T) {
	note := "Dinner with friends"
	out := RenderExpenses([]model.Expense{
		{ID: "e1", Date: "2024-01-15", CategoryID: "food", AmountCents: 123456, Note: &note},
		{ID: "e2", Date: "2024-01-14", CategoryID: "gone", AmountCents: 100},
	}, []model.Category{{ID: "food", Name: "Food & Dining"}})

	assert.Contains(t, out, "Food & Dining")
	assert.Contains(t, out, "$1,234.56")
	assert.Contains(t, out, "Dinner with friends")
	assert.Contains(t, out, UnknownCategory)
	assert.Contains(t, out, "$1,235.56")

	assert.Contains(t, RenderExpenses(nil, nil), "No expenses.")
}

func TestRenderCategories(t *testing.T) {
	out := RenderCategories([]model.Category{
		{ID: "default-1", Name: "Food & Dining", Color: "#ef4444", UsageCount: 12},
	}, map[string]int{"default-1": 3})

	assert.Contains(t, out, "default-1")
	assert.Contains(t, out, "#ef4444")
	assert.Contains(t, out, "12")
	assert.Contains(t, out, "3")
}

func TestRenderBreakdown(t *testing.T) {
	out := RenderBreakdown("January 2025", []insights.CategoryShare{
		{CategoryID: "rent", Name: "Rent", AmountCents: 7500, Percent: 75},
		{CategoryID: "food", Name: "Food", AmountCents: 2500, Percent: 25},
	}, 10000, 4)

	assert.Contains(t, out, "January 2025")
	assert.Contains(t, out, "$100.00")
	assert.Contains(t, out, "across 4 expenses")
	assert.Contains(t, out, "75%")
	assert.Less(t, strings.Index(out, "Rent"), strings.Index(out, "Food"))

	empty := RenderBreakdown("2025", nil, 0, 0)
	assert.Contains(t, empty, "No spending in this period.")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}
