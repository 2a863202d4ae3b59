package ledger

import (
	"slices"
	"time"

	"github.com/tally-app/tally/pkg/transaction"
)

const (
	TodayTitle     = "Today"
	YesterdayTitle = "Yesterday"
	// SectionDateLayout renders titles of older sections, e.g. "07 Mar 2025".
	SectionDateLayout = "02 Jan 2006"
)

type Section struct {
	Title string
	// Date is midnight of the section's calendar day.
	Date  time.Time
	Items []transaction.Transaction
}

// Sections groups transactions by calendar day in now's location. Sections
// come newest first, and so do the items inside each one.
func Sections(transactions []transaction.Transaction, now time.Time) []Section {
	loc := now.Location()
	byDay := map[dayKey]*Section{}
	for _, t := range transactions {
		day := startOfDay(t.Date, loc)
		key := keyOf(day)
		section, ok := byDay[key]
		if !ok {
			section = &Section{Date: day}
			byDay[key] = section
		}
		section.Items = append(section.Items, t)
	}

	today := startOfDay(now, loc)
	yesterday := today.AddDate(0, 0, -1)

	sections := make([]Section, 0, len(byDay))
	for _, section := range byDay {
		section.Title = sectionTitle(section.Date, today, yesterday)
		slices.SortStableFunc(section.Items, func(a, b transaction.Transaction) int {
			return b.Date.Compare(a.Date)
		})
		sections = append(sections, *section)
	}
	slices.SortFunc(sections, func(a, b Section) int {
		return b.Date.Compare(a.Date)
	})
	return sections
}

func sectionTitle(day, today, yesterday time.Time) string {
	switch {
	case day.Equal(today):
		return TodayTitle
	case day.Equal(yesterday):
		return YesterdayTitle
	default:
		return day.Format(SectionDateLayout)
	}
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	year, month, day := t.In(loc).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

type dayKey struct {
	year  int
	month time.Month
	day   int
}

func keyOf(t time.Time) dayKey {
	year, month, day := t.Date()
	return dayKey{year, month, day}
}
