package model

import "strings"

// MaxNoteLength is the longest note accepted by the expense form.
const MaxNoteLength = 500

// Expense is a single dated amount spent against a category.
type Expense struct {
	ID          string
	Date        string // YYYY-MM-DD, the day the money was spent
	CategoryID  string
	Note        *string
	AmountCents int64
	CreatedAt   int64 // ms epoch
	UpdatedAt   int64 // ms epoch
}

// NoteText returns the note or "" when the expense has none.
func (e Expense) NoteText() string {
	if e.Note == nil {
		return ""
	}
	return *e.Note
}

// NewExpense holds the fields for creating an expense.
type NewExpense struct {
	Note        *string
	Date        string
	CategoryID  string
	AmountCents int64
}

// ExpensePatch describes a partial update; nil fields are left untouched.
type ExpensePatch struct {
	Date        *string
	AmountCents *int64
	CategoryID  *string
	Note        *string
}

// Apply merges the patch onto e. It does not touch timestamps.
func (p ExpensePatch) Apply(e *Expense) {
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.AmountCents != nil {
		e.AmountCents = *p.AmountCents
	}
	if p.CategoryID != nil {
		e.CategoryID = *p.CategoryID
	}
	if p.Note != nil {
		e.Note = TrimNote(p.Note)
	}
}

// TrimNote trims surrounding whitespace. A note that trims to "" stays "",
// it is not turned into nil; that conversion belongs to the form layer.
func TrimNote(note *string) *string {
	if note == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*note)
	return &trimmed
}
