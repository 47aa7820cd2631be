package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/pocket-ledger/internal/model"
)

func noted(note string) model.Expense {
	return model.Expense{Note: &note}
}

func TestSuggestNotes(t *testing.T) {
	expenses := []model.Expense{
		noted("Coffee at Blue Bottle"),
		{},
		noted("coffee beans"),
		noted("Coffee at Blue Bottle"),
		noted("Lunch"),
		noted("Coffee grinder"),
		noted("Coffee filters"),
		noted(""),
	}

	tests := []struct {
		name  string
		query string
		want  []string
		opts  SuggestOptions
	}{
		{
			name:  "case insensitive prefix capped at three",
			query: "COF",
			opts:  DefaultSuggestOptions(),
			want:  []string{"Coffee at Blue Bottle", "coffee beans", "Coffee grinder"},
		},
		{
			name:  "no match",
			query: "tea",
			opts:  DefaultSuggestOptions(),
			want:  nil,
		},
		{
			name:  "prefix only, not substring",
			query: "bottle",
			opts:  DefaultSuggestOptions(),
			want:  nil,
		},
		{
			name:  "below minimum length",
			query: "c",
			opts:  SuggestOptions{Max: 3, MinQueryLength: 2},
			want:  nil,
		},
		{
			name:  "empty query with default minimum",
			query: "",
			opts:  DefaultSuggestOptions(),
			want:  nil,
		},
		{
			name:  "larger cap",
			query: "coffee",
			opts:  SuggestOptions{Max: 10, MinQueryLength: 1},
			want:  []string{"Coffee at Blue Bottle", "coffee beans", "Coffee grinder", "Coffee filters"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SuggestNotes(expenses, tt.query, tt.opts))
		})
	}
}

func TestNoteSuggestionWindow(t *testing.T) {
	start, end := NoteSuggestionWindow(time.Date(2024, 8, 31, 15, 0, 0, 0, time.Local))
	assert.Equal(t, "2024-02-29", start)
	assert.Equal(t, "2024-08-31", end)
}
