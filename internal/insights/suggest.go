package insights

import (
	"strings"
	"time"

	"github.com/Veraticus/pocket-ledger/internal/dates"
	"github.com/Veraticus/pocket-ledger/internal/model"
)

// SuggestionLookbackMonths bounds how far back note suggestions look.
const SuggestionLookbackMonths = 6

// SuggestOptions tunes SuggestNotes.
type SuggestOptions struct {
	Max            int
	MinQueryLength int
}

// DefaultSuggestOptions matches the expense form's autocomplete.
func DefaultSuggestOptions() SuggestOptions {
	return SuggestOptions{Max: 3, MinQueryLength: 1}
}

// SuggestNotes returns distinct notes starting with query, compared
// case-insensitively, in the order the expenses are given.
func SuggestNotes(expenses []model.Expense, query string, opts SuggestOptions) []string {
	if opts.Max <= 0 {
		opts.Max = DefaultSuggestOptions().Max
	}
	if len([]rune(query)) < opts.MinQueryLength {
		return nil
	}

	prefix := strings.ToLower(query)
	seen := make(map[string]struct{})
	var out []string
	for _, e := range expenses {
		if e.Note == nil || *e.Note == "" {
			continue
		}
		note := *e.Note
		if !strings.HasPrefix(strings.ToLower(note), prefix) {
			continue
		}
		if _, dup := seen[note]; dup {
			continue
		}
		seen[note] = struct{}{}
		out = append(out, note)
		if len(out) >= opts.Max {
			break
		}
	}
	return out
}

// NoteSuggestionWindow returns the ISO range searched for suggestions:
// six months back from today through today.
func NoteSuggestionWindow(today time.Time) (string, string) {
	start := dates.AddMonths(today, -SuggestionLookbackMonths)
	return dates.FormatDateToISO(start), dates.FormatDateToISO(today)
}
