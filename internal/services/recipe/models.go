package recipe

import (
	"encoding/json"
	"sort"
)

// StorageKey is the backend key holding every recipe day.
const StorageKey = "recipeData"

// DateLayout is the format of the keys in Days.
const DateLayout = "2006-01-02"

// Day is the recipe list for one date. Items are arbitrary JSON values.
type Day struct {
	Items []json.RawMessage `json:"items"`
}

// EmptyDay is returned for dates that have no entry.
func EmptyDay() Day {
	return Day{Items: []json.RawMessage{}}
}

// Days maps a date string to its recipe list.
type Days map[string]Day

// Dates returns the keys of d in ascending order.
func (d Days) Dates() []string {
	dates := make([]string, 0, len(d))
	for date := range d {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}
