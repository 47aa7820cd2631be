// Package tui provides an interactive month calendar of recorded spending.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/pocket-ledger/internal/dates"
	"github.com/Veraticus/pocket-ledger/internal/insights"
	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/service"
	"github.com/Veraticus/pocket-ledger/internal/tui/themes"
)

// Model holds the calendar state.
type Model struct {
	selected   time.Time
	month      time.Time
	today      time.Time
	ctx        context.Context
	storage    service.Storage
	lastError  error
	theme      themes.Theme
	keymap     KeyMap
	help       help.Model
	categories []model.Category
	expenses   []model.Expense
	aggregate  model.RangeAggregate
	settings   model.Settings
	config     Config
	width      int
	height     int
	themeFixed bool
	loading    bool
	quitting   bool
}

// New builds the calendar model. Nothing is read from storage until Init.
func New(ctx context.Context, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	today := dates.AddDays(cfg.Now(), 0)
	selected := today
	if !cfg.Month.IsZero() && !dates.InMonth(cfg.Month, today) {
		selected = time.Date(cfg.Month.Year(), cfg.Month.Month(), 1, 0, 0, 0, 0, cfg.Month.Location())
	}

	m := Model{
		ctx:       ctx,
		config:    cfg,
		storage:   cfg.Storage,
		keymap:    DefaultKeyMap(),
		help:      help.New(),
		theme:     themes.Default,
		settings:  model.DefaultSettings(),
		aggregate: insights.AggregateExpenses(nil),
		today:     today,
		selected:  selected,
		month:     firstOfMonth(selected),
		width:     cfg.Width,
		height:    cfg.Height,
		loading:   true,
	}
	if cfg.Theme != nil {
		m.theme = *cfg.Theme
		m.themeFixed = true
	}
	m.help.Width = cfg.Width
	return m
}

// Init loads the opening month.
func (m Model) Init() tea.Cmd {
	return m.loadMonth(m.month)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case monthLoadedMsg:
		return m.handleMonthLoaded(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleMonthLoaded(msg monthLoadedMsg) Model {
	// A slow load for a month we already left is dropped.
	if !msg.month.Equal(m.month) {
		return m
	}
	m.loading = false
	if msg.err != nil {
		m.lastError = msg.err
		return m
	}

	m.lastError = nil
	m.settings = *msg.settings
	m.categories = msg.categories
	m.expenses = msg.expenses
	m.aggregate = insights.AggregateExpenses(msg.expenses)
	if !m.themeFixed {
		m.theme = themes.For(m.settings.Theme)
	}
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keymap.Refresh):
		m.loading = true
		return m, m.loadMonth(m.month)
	case key.Matches(msg, m.keymap.Left):
		return m.moveTo(dates.AddDays(m.selected, -1))
	case key.Matches(msg, m.keymap.Right):
		return m.moveTo(dates.AddDays(m.selected, 1))
	case key.Matches(msg, m.keymap.Up):
		return m.moveTo(dates.AddDays(m.selected, -7))
	case key.Matches(msg, m.keymap.Down):
		return m.moveTo(dates.AddDays(m.selected, 7))
	case key.Matches(msg, m.keymap.PrevMonth):
		return m.moveTo(dates.ShiftPeriod(m.selected, model.RangeMonth, model.Previous))
	case key.Matches(msg, m.keymap.NextMonth):
		return m.moveTo(dates.ShiftPeriod(m.selected, model.RangeMonth, model.Next))
	case key.Matches(msg, m.keymap.Today):
		return m.moveTo(m.today)
	}
	return m, nil
}

// moveTo selects day and reloads when the cursor leaves the shown month.
func (m Model) moveTo(day time.Time) (tea.Model, tea.Cmd) {
	m.selected = day
	if dates.InMonth(day, m.month) {
		return m, nil
	}
	m.month = firstOfMonth(day)
	m.loading = true
	return m, m.loadMonth(m.month)
}

// Selected returns the day under the cursor.
func (m Model) Selected() time.Time {
	return m.selected
}

// Month returns the first day of the month being shown.
func (m Model) Month() time.Time {
	return m.month
}

// Err returns the last load error, if any.
func (m Model) Err() error {
	return m.lastError
}

func (m Model) dayExpenses(day time.Time) []model.Expense {
	iso := dates.FormatDateToISO(day)
	var out []model.Expense
	for _, e := range m.expenses {
		if e.Date == iso {
			out = append(out, e)
		}
	}
	return out
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
