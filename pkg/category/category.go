package category

import (
	"github.com/tally-app/tally/pkg/money"
	"github.com/tally-app/tally/pkg/transaction"
)

// Category belongs to a user and can be attached to any number of budgets.
type Category struct {
	Id    int
	Name  string
	Emoji string
}

type Create struct {
	Name  string
	Emoji string
}

// BudgetCategory is a category as attached to one budget, carrying that budget's limit.
type BudgetCategory struct {
	Category
	BudgetId    int
	LimitAmount money.Amount
	// Transactions are the ones the API embeds in the category, if any.
	Transactions []transaction.Transaction
}

type Attach struct {
	BudgetId    int
	CategoryId  int
	LimitAmount money.Amount
}

// MergeTransactions returns explicit followed by every transaction embedded in
// categories whose Id is not already present. Embedded transactions without a
// category get the one they were embedded in.
func MergeTransactions(explicit []transaction.Transaction, categories []BudgetCategory) []transaction.Transaction {
	seen := make(map[int]bool, len(explicit))
	merged := make([]transaction.Transaction, 0, len(explicit))
	for _, t := range explicit {
		seen[t.Id] = true
		merged = append(merged, t)
	}
	for _, c := range categories {
		for _, t := range c.Transactions {
			if seen[t.Id] {
				continue
			}
			seen[t.Id] = true
			if t.CategoryId == nil {
				id := c.Id
				t.CategoryId = &id
			}
			if t.BudgetId == 0 {
				t.BudgetId = c.BudgetId
			}
			merged = append(merged, t)
		}
	}
	return merged
}
