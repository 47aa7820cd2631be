package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/pocket-ledger/internal/cli"
	"github.com/Veraticus/pocket-ledger/internal/insights"
	"github.com/Veraticus/pocket-ledger/internal/money"
)

const topCategories = 3

// View renders the calendar, the selected day and the help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		cli.RenderMonth(cli.MonthView{
			Month:        m.month,
			Today:        m.today,
			Selected:     m.selected,
			ByDay:        m.aggregate.ByDay,
			WeekStartsOn: m.settings.WeekStartsOn,
			InProgress:   !m.month.Before(firstOfMonth(m.today)),
		}),
		m.renderTopCategories(),
		m.renderDay(),
	}

	switch {
	case m.lastError != nil:
		sections = append(sections, m.theme.StatusError.Render("Error: "+m.lastError.Error()))
	case m.loading:
		sections = append(sections, m.theme.StatusInfo.Render("Loading…"))
	}

	if m.config.ShowHelp {
		sections = append(sections, m.help.View(m.keymap))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTopCategories() string {
	shares := insights.CategoryBreakdown(m.aggregate, m.categories)
	if len(shares) == 0 {
		return m.theme.Subtitle.Render("No spending this month.")
	}
	if len(shares) > topCategories {
		shares = shares[:topCategories]
	}

	parts := make([]string, 0, len(shares))
	for _, s := range shares {
		dot := cli.SwatchStyle(s.Color).Render("●")
		parts = append(parts, fmt.Sprintf("%s %s %d%%", dot, s.Name, s.Percent))
	}
	return m.theme.Subtitle.Render("Top: ") + strings.Join(parts, "   ")
}

func (m Model) renderDay() string {
	expenses := m.dayExpenses(m.selected)
	title := m.theme.Bold.Render(m.selected.Format("Monday, January 2"))

	if len(expenses) == 0 {
		return m.theme.RoundedBox.Render(title + "\n" + m.theme.Subtitle.Render("Nothing spent."))
	}

	names := make(map[string]string, len(m.categories))
	for _, c := range m.categories {
		names[c.ID] = c.Name
	}

	var total int64
	lines := []string{title}
	for _, e := range expenses {
		total += e.AmountCents
		name, ok := names[e.CategoryID]
		if !ok {
			name = cli.UnknownCategory
		}
		line := fmt.Sprintf("%10s  %s", money.FormatCentsToUSD(e.AmountCents), name)
		if note := e.NoteText(); note != "" {
			line += m.theme.Subtitle.Render("  " + note)
		}
		lines = append(lines, line)
	}
	lines = append(lines, fmt.Sprintf("%s %s", m.theme.Subtitle.Render("Day total:"), m.theme.Amount.Render(money.FormatCentsToUSD(total))))
	return m.theme.RoundedBox.Render(strings.Join(lines, "\n"))
}
