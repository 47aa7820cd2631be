package dates

import (
	"fmt"
	"time"

	"github.com/Veraticus/pocket-ledger/internal/model"
)

// IsCurrentPeriod reports whether viewDate lies in the same week, month or
// year as now.
func IsCurrentPeriod(viewDate time.Time, rangeType model.RangeType, weekStartsOn model.WeekStart) bool {
	current := now()
	switch rangeType {
	case model.RangeWeek:
		return startOfWeek(viewDate, weekStartsOn).Equal(startOfWeek(current.In(viewDate.Location()), weekStartsOn))
	case model.RangeMonth:
		return viewDate.Year() == current.Year() && viewDate.Month() == current.Month()
	case model.RangeYear:
		return viewDate.Year() == current.Year()
	default:
		return false
	}
}

// FormatPeriodLabel renders the period containing viewDate:
//
//	week:  "Jan 27 – 31, 2025", "Jan 27 – Feb 2, 2025" or "Dec 29, 2025 – Jan 4, 2026"
//	month: "January 2025"
//	year:  "2025"
func FormatPeriodLabel(viewDate time.Time, rangeType model.RangeType, weekStartsOn model.WeekStart) string {
	switch rangeType {
	case model.RangeWeek:
		start := startOfWeek(viewDate, weekStartsOn)
		end := addDays(start, 6)
		switch {
		case start.Month() == end.Month():
			return fmt.Sprintf("%s – %s", start.Format("Jan 2"), end.Format("2, 2006"))
		case start.Year() == end.Year():
			return fmt.Sprintf("%s – %s", start.Format("Jan 2"), end.Format("Jan 2, 2006"))
		default:
			return fmt.Sprintf("%s – %s", start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006"))
		}
	case model.RangeMonth:
		return viewDate.Format("January 2006")
	case model.RangeYear:
		return viewDate.Format("2006")
	default:
		return ""
	}
}

// ShiftPeriod moves viewDate one week, month or year. Month and year shifts
// keep the day of month, clamping to the last day when it does not exist.
func ShiftPeriod(viewDate time.Time, rangeType model.RangeType, direction model.Direction) time.Time {
	step := 1
	if direction == model.Previous {
		step = -1
	}
	switch rangeType {
	case model.RangeWeek:
		return addDays(viewDate, 7*step)
	case model.RangeMonth:
		return addMonths(viewDate, step)
	case model.RangeYear:
		return addMonths(viewDate, 12*step)
	default:
		return viewDate
	}
}

// PeriodRange returns the ISO start and end of the period containing viewDate.
func PeriodRange(viewDate time.Time, rangeType model.RangeType, weekStartsOn model.WeekStart) (string, string, error) {
	switch rangeType {
	case model.RangeWeek:
		start, end := GetWeekRange(viewDate, weekStartsOn)
		return start, end, nil
	case model.RangeMonth:
		start, end := GetMonthRange(viewDate.Year(), int(viewDate.Month()))
		return start, end, nil
	case model.RangeYear:
		start, end := GetYearRange(viewDate.Year())
		return start, end, nil
	default:
		return "", "", fmt.Errorf("unknown range type %q", rangeType)
	}
}

// ParseRangeType accepts "week", "month" or "year".
func ParseRangeType(s string) (model.RangeType, error) {
	switch rt := model.RangeType(s); rt {
	case model.RangeWeek, model.RangeMonth, model.RangeYear:
		return rt, nil
	default:
		return "", fmt.Errorf("unknown range type %q (want week, month or year)", s)
	}
}
