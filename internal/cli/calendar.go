package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Veraticus/pocket-ledger/internal/dates"
	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/money"
)

const calendarCellWidth = 8

// MonthView is everything needed to draw one month.
type MonthView struct {
	Month        time.Time
	Today        time.Time
	Selected     time.Time // zero means no selection
	ByDay        map[string]int64 // YYYY-MM-DD -> cents
	WeekStartsOn model.WeekStart
	// InProgress labels the footer "Month to date" for a month that has not
	// ended yet.
	InProgress bool
}

// WeekdayHeaders returns short weekday names starting at ws.
func WeekdayHeaders(ws model.WeekStart) []string {
	names := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if ws == model.WeekStartsMonday {
		return append(names[1:], names[0])
	}
	return names
}

// RenderMonth draws the month as a grid; each day shows its whole-dollar
// total. Days from adjacent months are dimmed and show no total.
func RenderMonth(v MonthView) string {
	grid := dates.GetCalendarGrid(v.Month, v.WeekStartsOn)
	todayISO := dates.FormatDateToISO(v.Today)

	var monthTotal int64
	rows := make([][]string, 0, len(grid.Weeks))
	for _, week := range grid.Weeks {
		row := make([]string, 0, len(week))
		for _, day := range week {
			row = append(row, dayCell(day, v, todayISO))
			if dates.InMonth(day, v.Month) {
				monthTotal += v.ByDay[dates.FormatDateToISO(day)]
			}
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(SubtleStyle).
		BorderRow(true).
		Headers(WeekdayHeaders(v.WeekStartsOn)...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			style := lipgloss.NewStyle().Width(calendarCellWidth).Align(lipgloss.Right).PaddingRight(1)
			if row == table.HeaderRow {
				return style.Bold(true).Align(lipgloss.Center)
			}
			return style
		})

	title := formatIconTitle(CalendarIcon, dates.FormatPeriodLabel(v.Month, model.RangeMonth, v.WeekStartsOn))
	footerLabel := "Month total:"
	if v.InProgress {
		footerLabel = "Month to date:"
	}
	footer := fmt.Sprintf("%s %s", SubtleStyle.Render(footerLabel), BoldStyle.Render(money.FormatCentsToUSD(monthTotal)))
	return lipgloss.JoinVertical(lipgloss.Left, title, t.Render(), footer)
}

func dayCell(day time.Time, v MonthView, todayISO string) string {
	iso := dates.FormatDateToISO(day)
	number := fmt.Sprint(day.Day())

	if !dates.InMonth(day, v.Month) {
		return OutsideMonthStyle.Render(number) + "\n"
	}
	switch {
	case !v.Selected.IsZero() && iso == dates.FormatDateToISO(v.Selected):
		number = SelectedStyle.Render(number)
	case iso == todayISO:
		number = TodayStyle.Render(number)
	}

	total := ""
	if cents := v.ByDay[iso]; cents > 0 {
		total = money.FormatCentsToWholeDollars(cents)
	}
	return strings.Join([]string{number, total}, "\n")
}
