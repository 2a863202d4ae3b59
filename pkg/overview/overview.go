// Package overview assembles the figures the budget screens display from
// budgets, categories and transactions.
package overview

import (
	"github.com/tally-app/tally/pkg/budget"
	"github.com/tally-app/tally/pkg/category"
	"github.com/tally-app/tally/pkg/ledger"
	"github.com/tally-app/tally/pkg/money"
	"github.com/tally-app/tally/pkg/transaction"
)

const RecentTransactions = 5

type CategoryStats struct {
	Category    category.Category
	LimitAmount money.Amount
	Progress    ledger.Progress
}

type Dashboard struct {
	Budget budget.Budget
	// Balance is stable income plus incomes minus expenses of the budget.
	Balance    money.Amount
	Totals     ledger.Totals
	Categories []CategoryStats
	Recent     []transaction.Transaction
}

// BuildDashboard computes every figure of the dashboard from one transaction list.
func BuildDashboard(b budget.WithCategories, transactions []transaction.Transaction) Dashboard {
	categories := make([]CategoryStats, 0, len(b.Categories))
	for _, c := range b.Categories {
		categories = append(categories, CategoryStats{
			Category:    c.Category,
			LimitAmount: c.LimitAmount,
			Progress:    ledger.CategoryProgress(c.Id, c.LimitAmount, transactions),
		})
	}
	return Dashboard{
		Budget:     b.Budget,
		Balance:    ledger.Balance(b.StableIncome, transactions),
		Totals:     ledger.SumTotals(transactions),
		Categories: categories,
		Recent:     ledger.Filter{Take: RecentTransactions}.Apply(transactions),
	}
}
