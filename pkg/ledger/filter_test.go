package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tally-app/tally/pkg/transaction"
)

func TestFilter_Apply(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, time.March, d, 10, 0, 0, 0, time.UTC) }
	groceries := 1
	transactions := []transaction.Transaction{
		{Id: 1, Type: transaction.Expense, Date: day(1), CategoryId: &groceries},
		{Id: 2, Type: transaction.Income, Date: day(5)},
		{Id: 3, Type: transaction.Expense, Date: day(10)},
		{Id: 4, Type: transaction.Expense, Date: day(20), CategoryId: &groceries},
		{Id: 5, Type: transaction.Type("garbled"), Date: day(25)},
	}

	t.Run("should keep everything newest first without criteria", func(t *testing.T) {
		assert.Equal(t, []int{5, 4, 3, 2, 1}, ids(Filter{}.Apply(transactions)))
	})

	t.Run("should filter by type", func(t *testing.T) {
		assert.Equal(t, []int{4, 3, 1}, ids(Filter{Type: transaction.OnlyExpenses}.Apply(transactions)))
		assert.Equal(t, []int{2}, ids(Filter{Type: transaction.OnlyIncomes}.Apply(transactions)))
	})

	t.Run("should filter by category", func(t *testing.T) {
		assert.Equal(t, []int{4, 1}, ids(Filter{CategoryId: &groceries}.Apply(transactions)))
	})

	t.Run("should filter by half open window", func(t *testing.T) {
		filter := Filter{From: day(5), To: day(20)}
		assert.Equal(t, []int{3, 2}, ids(filter.Apply(transactions)))
	})

	t.Run("should take the newest", func(t *testing.T) {
		assert.Equal(t, []int{5, 4}, ids(Filter{Take: 2}.Apply(transactions)))
		assert.Len(t, Filter{Take: 50}.Apply(transactions), 5)
	})

	t.Run("should not modify the input", func(t *testing.T) {
		Filter{Type: transaction.OnlyExpenses}.Apply(transactions)
		assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(transactions))
	})
}

func TestMonthWindow(t *testing.T) {
	filter := MonthWindow(YearMonth{Month: 12, Year: 2024}, time.UTC)

	assert.Equal(t, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), filter.From)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), filter.To)
	assert.True(t, filter.Matches(transaction.Transaction{Date: time.Date(2024, time.December, 31, 23, 59, 0, 0, time.UTC)}))
	assert.False(t, filter.Matches(transaction.Transaction{Date: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)}))
}
