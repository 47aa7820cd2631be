package model

// RangeAggregate summarises a list of expenses. It is derived, never stored.
type RangeAggregate struct {
	ByCategory map[string]int64 // category id -> cents
	ByDay      map[string]int64 // YYYY-MM-DD -> cents
	TotalCents int64
}

// RangeType is the granularity of an insights period.
type RangeType string

const (
	RangeWeek  RangeType = "week"
	RangeMonth RangeType = "month"
	RangeYear  RangeType = "year"
)

// Direction moves a period backwards or forwards.
type Direction string

const (
	Previous Direction = "previous"
	Next     Direction = "next"
)
