// Package ledger derives the figures every screen shows from a budget, its
// categories and a set of transactions. All functions are pure: they take
// every input, including the current time, as a parameter.
package ledger

import (
	"github.com/tally-app/tally/pkg/money"
	"github.com/tally-app/tally/pkg/transaction"
)

type Totals struct {
	Income   money.Amount
	Expenses money.Amount
}

// Net is Income minus Expenses.
func (t Totals) Net() money.Amount {
	return t.Income.Sub(t.Expenses)
}

// SumTotals splits transactions into income and expense sums. Any type other
// than income is summed as an expense.
func SumTotals(transactions []transaction.Transaction) Totals {
	totals := Totals{}
	for _, t := range transactions {
		if t.IsIncome() {
			totals.Income = totals.Income.Add(t.Amount)
		} else {
			totals.Expenses = totals.Expenses.Add(t.Amount)
		}
	}
	return totals
}

// Balance returns stableIncome + Σincome − Σexpense over the given transactions.
func Balance(stableIncome money.Amount, transactions []transaction.Transaction) money.Amount {
	balance := stableIncome
	for _, t := range transactions {
		balance = balance.Add(t.Signed())
	}
	return balance
}
