package ledger

import (
	"slices"
	"time"

	"github.com/tally-app/tally/pkg/transaction"
)

// Filter narrows a transaction list. Zero fields do not filter.
type Filter struct {
	Type       transaction.TypeFilter
	CategoryId *int
	// From is inclusive and To exclusive.
	From time.Time
	To   time.Time
	// Take keeps only the newest Take transactions.
	Take int
}

func (f Filter) Matches(t transaction.Transaction) bool {
	if !f.Type.Matches(t) {
		return false
	}
	if f.CategoryId != nil && !t.InCategory(*f.CategoryId) {
		return false
	}
	if !f.From.IsZero() && t.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && !t.Date.Before(f.To) {
		return false
	}
	return true
}

// Apply returns the matching transactions newest first. The input is not modified.
func (f Filter) Apply(transactions []transaction.Transaction) []transaction.Transaction {
	result := make([]transaction.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if f.Matches(t) {
			result = append(result, t)
		}
	}
	slices.SortStableFunc(result, func(a, b transaction.Transaction) int {
		return b.Date.Compare(a.Date)
	})
	if f.Take > 0 && len(result) > f.Take {
		result = result[:f.Take]
	}
	return result
}

// MonthWindow returns a filter limited to the calendar month in loc.
func MonthWindow(m YearMonth, loc *time.Location) Filter {
	from := time.Date(m.Year, time.Month(m.Month), 1, 0, 0, 0, 0, loc)
	return Filter{From: from, To: from.AddDate(0, 1, 0)}
}
