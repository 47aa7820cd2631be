// Package insights turns expense lists into the summaries shown by the
// insights and calendar views. Nothing here touches the store.
package insights

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/pocket-ledger/internal/model"
)

// UnknownCategoryName labels spending whose category no longer exists.
const UnknownCategoryName = "Unknown"

// AggregateExpenses sums expenses in total, per category and per day.
// The maps are never nil.
func AggregateExpenses(expenses []model.Expense) model.RangeAggregate {
	agg := model.RangeAggregate{
		ByCategory: make(map[string]int64),
		ByDay:      make(map[string]int64),
	}
	for _, e := range expenses {
		agg.TotalCents += e.AmountCents
		agg.ByCategory[e.CategoryID] += e.AmountCents
		agg.ByDay[e.Date] += e.AmountCents
	}
	return agg
}

// CategoryShare is one row of the category breakdown.
type CategoryShare struct {
	CategoryID  string
	Name        string
	Color       string
	AmountCents int64
	Percent     int
}

// CategoryBreakdown lists categories with positive spending, largest first.
// Ties are ordered by name.
func CategoryBreakdown(agg model.RangeAggregate, categories []model.Category) []CategoryShare {
	known := make(map[string]model.Category, len(categories))
	for _, c := range categories {
		known[c.ID] = c
	}

	shares := make([]CategoryShare, 0, len(agg.ByCategory))
	for id, amount := range agg.ByCategory {
		if amount <= 0 {
			continue
		}
		share := CategoryShare{
			CategoryID:  id,
			Name:        UnknownCategoryName,
			AmountCents: amount,
			Percent:     percentOf(amount, agg.TotalCents),
		}
		if c, ok := known[id]; ok {
			share.Name = c.Name
			share.Color = c.Color
		}
		shares = append(shares, share)
	}

	slices.SortFunc(shares, func(a, b CategoryShare) int {
		if c := cmp.Compare(b.AmountCents, a.AmountCents); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.CategoryID, b.CategoryID)
	})
	return shares
}

// percentOf rounds part/total*100 to the nearest whole percent.
func percentOf(part, total int64) int {
	if total <= 0 {
		return 0
	}
	pct := decimal.NewFromInt(part).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(total), 4).
		Round(0)
	return int(pct.IntPart())
}
