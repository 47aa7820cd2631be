// Package dates provides calendar arithmetic for the ledger.
//
// A calendar date is a time.Time at local midnight; its string form is the
// zero-padded ISO layout YYYY-MM-DD, which sorts lexicographically. All "is
// this now" checks read the local wall clock at call time.
package dates

import (
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/pocket-ledger/internal/model"
)

// ISOLayout is the storage and display layout for calendar dates.
const ISOLayout = "2006-01-02"

// ErrInvalidDate is returned when a string is not a valid YYYY-MM-DD date.
var ErrInvalidDate = errors.New("invalid date")

// now is swapped out by tests.
var now = time.Now

// FormatDateToISO formats t as YYYY-MM-DD.
func FormatDateToISO(t time.Time) string {
	return t.Format(ISOLayout)
}

// ParseDateFromISO parses a YYYY-MM-DD string into local midnight.
func ParseDateFromISO(s string) (time.Time, error) {
	t, err := time.ParseInLocation(ISOLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// TodayISO returns the current local date as YYYY-MM-DD.
func TodayISO() string {
	return FormatDateToISO(now())
}

// Today returns the current local date at midnight.
func Today() time.Time {
	return startOfDay(now())
}

// GetMonthRange returns the first and last day of the month (1-12).
func GetMonthRange(year, month int) (string, string) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	last := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.Local)
	return FormatDateToISO(first), FormatDateToISO(last)
}

// GetWeekRange returns the seven-day window containing t.
func GetWeekRange(t time.Time, weekStartsOn model.WeekStart) (string, string) {
	start := startOfWeek(t, weekStartsOn)
	return FormatDateToISO(start), FormatDateToISO(addDays(start, 6))
}

// GetYearRange returns January 1st and December 31st of year.
func GetYearRange(year int) (string, string) {
	first := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	last := time.Date(year, time.December, 31, 0, 0, 0, 0, time.Local)
	return FormatDateToISO(first), FormatDateToISO(last)
}

// IsToday reports whether dateStr is the current local date.
func IsToday(dateStr string) bool {
	d, err := ParseDateFromISO(dateStr)
	if err != nil {
		return false
	}
	return d.Equal(Today())
}

// IsFutureDate reports whether dateStr is strictly after today.
func IsFutureDate(dateStr string) bool {
	d, err := ParseDateFromISO(dateStr)
	if err != nil {
		return false
	}
	return d.After(Today())
}

// IsCurrentOrFutureMonth reports whether (year, month) is not before the
// current month.
func IsCurrentOrFutureMonth(year, month int) bool {
	current := now()
	if year != current.Year() {
		return year > current.Year()
	}
	return month >= int(current.Month())
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// addDays moves by calendar days, so DST changes never shift the date.
func addDays(t time.Time, days int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+days, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// addMonths keeps the day of month where possible and clamps otherwise,
// so Jan 31 + 1 month is the last day of February.
func addMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	firstOfTarget := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(firstOfTarget.Year(), firstOfTarget.Month()); d > last {
		d = last
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func normalizeWeekStart(ws model.WeekStart) model.WeekStart {
	if ws == model.WeekStartsMonday {
		return model.WeekStartsMonday
	}
	return model.WeekStartsSunday
}

func startOfWeek(t time.Time, weekStartsOn model.WeekStart) time.Time {
	day := startOfDay(t)
	diff := (int(day.Weekday()) - int(normalizeWeekStart(weekStartsOn)) + 7) % 7
	return addDays(day, -diff)
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func endOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location())
}

// AddMonths shifts t by n calendar months, clamping to the last day of the
// target month.
func AddMonths(t time.Time, n int) time.Time {
	return addMonths(startOfDay(t), n)
}

// AddDays shifts t by n calendar days and drops the time of day.
func AddDays(t time.Time, n int) time.Time {
	return addDays(startOfDay(t), n)
}
