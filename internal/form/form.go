// Package form validates raw user input before it reaches the store. The
// repositories trust their inputs, so every rule a user can trip lives here.
package form

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Veraticus/pocket-ledger/internal/dates"
	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/money"
)

// Validation errors. Messages are shown to the user as-is.
var (
	ErrAmountRequired   = errors.New("please enter a valid amount")
	ErrInvalidAmount    = errors.New("please enter a valid amount")
	ErrCategoryRequired = errors.New("please select a category")
	ErrInvalidDate      = errors.New("please enter a date as YYYY-MM-DD")
	ErrFutureDate       = errors.New("can't add expenses for future dates")
	ErrNoteTooLong      = fmt.Errorf("note must be %d characters or less", model.MaxNoteLength)
	ErrEmptyName        = errors.New("category name cannot be empty")
	ErrInvalidColor     = errors.New("color must be a preset name or #rrggbb")
	ErrInvalidTheme     = errors.New("theme must be light, dark or system")
	ErrInvalidWeekStart = errors.New("week start must be sunday or monday")
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ExpenseInput is an expense as typed by the user.
type ExpenseInput struct {
	Amount     string
	Date       string
	CategoryID string
	Note       string
}

// ParseExpenseInput validates in and converts it to a NewExpense. A note that
// trims to nothing becomes absent.
func ParseExpenseInput(in ExpenseInput) (model.NewExpense, error) {
	cents, err := parseAmount(in.Amount)
	if err != nil {
		return model.NewExpense{}, err
	}

	if strings.TrimSpace(in.CategoryID) == "" {
		return model.NewExpense{}, ErrCategoryRequired
	}

	date, err := parseExpenseDate(in.Date)
	if err != nil {
		return model.NewExpense{}, err
	}

	note, err := parseNote(in.Note)
	if err != nil {
		return model.NewExpense{}, err
	}

	return model.NewExpense{
		Date:        date,
		AmountCents: cents,
		CategoryID:  strings.TrimSpace(in.CategoryID),
		Note:        note,
	}, nil
}

// ExpensePatchInput carries the fields a user chose to edit; nil means
// unchanged.
type ExpensePatchInput struct {
	Amount     *string
	Date       *string
	CategoryID *string
	Note       *string
}

// ParseExpensePatch applies the same rules as ParseExpenseInput to the
// fields that are present. Clearing the note stores it as absent.
func ParseExpensePatch(in ExpensePatchInput) (model.ExpensePatch, error) {
	var patch model.ExpensePatch

	if in.Amount != nil {
		cents, err := parseAmount(*in.Amount)
		if err != nil {
			return model.ExpensePatch{}, err
		}
		patch.AmountCents = &cents
	}

	if in.CategoryID != nil {
		id := strings.TrimSpace(*in.CategoryID)
		if id == "" {
			return model.ExpensePatch{}, ErrCategoryRequired
		}
		patch.CategoryID = &id
	}

	if in.Date != nil {
		date, err := parseExpenseDate(*in.Date)
		if err != nil {
			return model.ExpensePatch{}, err
		}
		patch.Date = &date
	}

	if in.Note != nil {
		note, err := parseNote(*in.Note)
		if err != nil {
			return model.ExpensePatch{}, err
		}
		if note == nil {
			// The patch cannot express "unset", so an empty note is written.
			empty := ""
			note = &empty
		}
		patch.Note = note
	}

	return patch, nil
}

func parseAmount(raw string) (int64, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, ErrAmountRequired
	}
	cents, err := money.ParseUSDToCents(raw)
	if err != nil || cents <= 0 {
		return 0, ErrInvalidAmount
	}
	return cents, nil
}

func parseExpenseDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return dates.TodayISO(), nil
	}
	t, err := dates.ParseDateFromISO(raw)
	if err != nil {
		return "", ErrInvalidDate
	}
	iso := dates.FormatDateToISO(t)
	if dates.IsFutureDate(iso) {
		return "", ErrFutureDate
	}
	return iso, nil
}

func parseNote(raw string) (*string, error) {
	if utf8.RuneCountInString(raw) > model.MaxNoteLength {
		return nil, ErrNoteTooLong
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	return &trimmed, nil
}

// ValidateCategoryName trims name and rejects an empty result.
func ValidateCategoryName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrEmptyName
	}
	return trimmed, nil
}

// ParseColor accepts a preset name ("blue") or a #rrggbb hex value and
// returns the lower-case hex form.
func ParseColor(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if hex, ok := presetByName[strings.ToLower(raw)]; ok {
		return hex, nil
	}
	if !hexColor.MatchString(raw) {
		return "", ErrInvalidColor
	}
	return strings.ToLower(raw), nil
}

// ParseTheme validates a theme name.
func ParseTheme(raw string) (model.Theme, error) {
	theme := model.Theme(strings.ToLower(strings.TrimSpace(raw)))
	if !theme.IsValid() {
		return "", ErrInvalidTheme
	}
	return theme, nil
}

// ParseWeekStart accepts "sunday"/"monday" or "0"/"1".
func ParseWeekStart(raw string) (model.WeekStart, error) {
	switch v := strings.ToLower(strings.TrimSpace(raw)); v {
	case "sunday", "sun":
		return model.WeekStartsSunday, nil
	case "monday", "mon":
		return model.WeekStartsMonday, nil
	default:
		n, err := strconv.Atoi(v)
		if err != nil || (n != 0 && n != 1) {
			return 0, ErrInvalidWeekStart
		}
		return model.WeekStart(n), nil
	}
}
