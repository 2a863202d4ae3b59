package budget

import (
	"github.com/tally-app/tally/pkg/category"
	"github.com/tally-app/tally/pkg/ledger"
	"github.com/tally-app/tally/pkg/money"
)

// Budget is a user's plan for one month. The API keeps one per user and month.
type Budget struct {
	Id           int
	Month        int
	Year         int
	StableIncome money.Amount
	// TotalBalance is whatever the API reports; local figures come from ledger.Balance.
	TotalBalance money.Amount
	UserId       int
}

func (b Budget) Period() ledger.YearMonth {
	return ledger.YearMonth{Month: b.Month, Year: b.Year}
}

type WithCategories struct {
	Budget
	Categories []category.BudgetCategory
}

type Create struct {
	Month        int
	Year         int
	StableIncome money.Amount
}
