package dates

import (
	"time"

	"github.com/Veraticus/pocket-ledger/internal/model"
)

// CalendarGrid is a month laid out as full weeks.
type CalendarGrid struct {
	Weeks [][]time.Time
}

// GetCalendarGrid returns whole weeks covering the month containing
// monthDate. Leading and trailing days come from the adjacent months so every
// row has seven days and starts on weekStartsOn.
func GetCalendarGrid(monthDate time.Time, weekStartsOn model.WeekStart) CalendarGrid {
	gridStart := startOfWeek(startOfMonth(monthDate), weekStartsOn)
	gridEnd := addDays(startOfWeek(endOfMonth(monthDate), weekStartsOn), 6)

	var grid CalendarGrid
	var week []time.Time
	for day := gridStart; !day.After(gridEnd); day = addDays(day, 1) {
		week = append(week, day)
		if len(week) == 7 {
			grid.Weeks = append(grid.Weeks, week)
			week = nil
		}
	}
	return grid
}

// InMonth reports whether day belongs to the same month as monthDate.
func InMonth(day, monthDate time.Time) bool {
	return day.Year() == monthDate.Year() && day.Month() == monthDate.Month()
}
