package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/pocket-ledger/internal/dates"
	"github.com/Veraticus/pocket-ledger/internal/testutil"
	tuitesting "github.com/Veraticus/pocket-ledger/internal/tui/testing"
	"github.com/Veraticus/pocket-ledger/internal/tui/themes"
)

func fixedNow() time.Time {
	return time.Date(2024, time.January, 15, 12, 0, 0, 0, time.Local)
}

func newTestModel(t *testing.T, opts ...Option) Model {
	t.Helper()
	db := testutil.SetupTestDB(t)
	db.Seed(testutil.JanuaryFixtures)

	base := []Option{
		WithStorage(db.Storage),
		WithClock(fixedNow),
		WithTheme(themes.Dark),
	}
	return New(context.Background(), append(base, opts...)...)
}

// settle runs cmd and feeds its message back into the model.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	next, _ := m.Update(cmd())
	return next.(Model)
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_LoadsOpeningMonth(t *testing.T) {
	m := newTestModel(t)
	assert.True(t, m.loading)
	assert.Equal(t, "2024-01-01", dates.FormatDateToISO(m.Month()))
	assert.Equal(t, "2024-01-15", dates.FormatDateToISO(m.Selected()))

	m = settle(t, m, m.Init())
	require.NoError(t, m.Err())
	assert.False(t, m.loading)
	assert.Equal(t, int64(450+2500+8999+1200), m.aggregate.TotalCents)
	assert.Len(t, m.categories, 7)

	view := tuitesting.StripANSI(m.View())
	assert.Contains(t, view, "January 2024")
	assert.Contains(t, view, "$131.49")
	assert.Contains(t, view, "Monday, January 15")
	assert.Contains(t, view, "Coat")
	assert.Contains(t, view, "Shopping")
	assert.True(t, tuitesting.ContainsInOrder(view, "Top:", "Shopping", "Transportation", "Food & Dining"))
}

func TestModel_WithMonth(t *testing.T) {
	m := newTestModel(t, WithMonth(time.Date(2023, time.December, 20, 0, 0, 0, 0, time.Local)))
	assert.Equal(t, "2023-12-01", dates.FormatDateToISO(m.Month()))
	assert.Equal(t, "2023-12-01", dates.FormatDateToISO(m.Selected()))

	m = settle(t, m, m.Init())
	assert.Equal(t, int64(1500), m.aggregate.TotalCents)
}

func TestModel_Navigation(t *testing.T) {
	m := newTestModel(t)
	m = settle(t, m, m.Init())

	tests := []struct {
		key          tea.KeyMsg
		wantSelected string
		wantReload   bool
	}{
		{tea.KeyMsg{Type: tea.KeyRight}, "2024-01-16", false},
		{runes("h"), "2024-01-15", false},
		{tea.KeyMsg{Type: tea.KeyDown}, "2024-01-22", false},
		{runes("k"), "2024-01-15", false},
		{runes("]"), "2024-02-15", true},
		{runes("t"), "2024-01-15", true},
		{runes("["), "2023-12-15", true},
	}

	for _, tt := range tests {
		var cmd tea.Cmd
		m, cmd = press(t, m, tt.key)
		assert.Equal(t, tt.wantSelected, dates.FormatDateToISO(m.Selected()), "after %q", tt.key.String())
		if tt.wantReload {
			assert.True(t, m.loading)
			m = settle(t, m, cmd)
		} else {
			assert.Nil(t, cmd)
		}
		assert.False(t, m.loading)
	}

	assert.Equal(t, int64(1500), m.aggregate.TotalCents)
}

func TestModel_CrossingMonthBoundary(t *testing.T) {
	m := newTestModel(t, WithMonth(time.Date(2024, time.February, 1, 0, 0, 0, 0, time.Local)))
	m = settle(t, m, m.Init())
	assert.Equal(t, int64(3000), m.aggregate.TotalCents)

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, "2024-01-31", dates.FormatDateToISO(m.Selected()))
	assert.Equal(t, "2024-01-01", dates.FormatDateToISO(m.Month()))
	m = settle(t, m, cmd)

	view := tuitesting.StripANSI(m.View())
	assert.Contains(t, view, "coffee beans")
	assert.Contains(t, view, "$12.00")
}

func TestModel_MonthKeysClampDay(t *testing.T) {
	m := newTestModel(t)
	m = settle(t, m, m.Init())
	assert.Contains(t, tuitesting.StripANSI(m.View()), "Month to date:")

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Nil(t, cmd)
	for i := 0; i < 15; i++ {
		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	}
	require.Equal(t, "2024-01-31", dates.FormatDateToISO(m.Selected()))

	m, cmd = press(t, m, runes("]"))
	m = settle(t, m, cmd)
	assert.Equal(t, "2024-02-29", dates.FormatDateToISO(m.Selected()))

	m, _ = press(t, m, runes("["))
	m, cmd = press(t, m, runes("["))
	m = settle(t, m, cmd)
	assert.Equal(t, "2023-12-29", dates.FormatDateToISO(m.Selected()))
	assert.Contains(t, tuitesting.StripANSI(m.View()), "Month total:")
}

func TestModel_DropsStaleLoads(t *testing.T) {
	m := newTestModel(t)
	january := m.Init()

	m, cmd := press(t, m, runes("["))
	require.NotNil(t, cmd)

	m = settle(t, m, january)
	assert.True(t, m.loading, "January result must not satisfy the December load")
	assert.Equal(t, int64(0), m.aggregate.TotalCents)

	m = settle(t, m, cmd)
	assert.False(t, m.loading)
	assert.Equal(t, int64(1500), m.aggregate.TotalCents)
}

func TestModel_NoStorage(t *testing.T) {
	m := New(context.Background(), WithClock(fixedNow), WithTheme(themes.Dark))
	m = settle(t, m, m.Init())

	require.ErrorIs(t, m.Err(), errNoStorage)
	assert.Contains(t, tuitesting.StripANSI(m.View()), "storage not configured")
	assert.ErrorIs(t, Run(context.Background()), errNoStorage)
}

func TestModel_HelpAndQuit(t *testing.T) {
	m := newTestModel(t)
	m = settle(t, m, m.Init())

	short := tuitesting.StripANSI(m.View())
	assert.Contains(t, short, "previous month")
	assert.NotContains(t, short, "next week")

	m, _ = press(t, m, runes("?"))
	assert.Contains(t, tuitesting.StripANSI(m.View()), "next week")

	m, cmd := press(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestModel_WindowSize(t *testing.T) {
	m := newTestModel(t)
	next, cmd := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Nil(t, cmd)
	m = next.(Model)
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
	assert.Equal(t, 120, m.help.Width)
}
