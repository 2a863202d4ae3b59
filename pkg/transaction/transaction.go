package transaction

import (
	"fmt"
	"time"

	"github.com/tally-app/tally/pkg/money"
)

type Type string

const (
	Expense Type = "expense"
	Income  Type = "income"
)

func (t Type) Valid() bool {
	return t == Expense || t == Income
}

// TypeFilter selects transactions by type. The zero value selects all of them.
type TypeFilter string

const (
	AllTypes     TypeFilter = ""
	OnlyExpenses TypeFilter = TypeFilter(Expense)
	OnlyIncomes  TypeFilter = TypeFilter(Income)
)

func ParseTypeFilter(value string) (TypeFilter, error) {
	switch value {
	case "", "all":
		return AllTypes, nil
	case string(Expense):
		return OnlyExpenses, nil
	case string(Income):
		return OnlyIncomes, nil
	}
	return AllTypes, fmt.Errorf("unknown transaction type filter %q", value)
}

func (f TypeFilter) Matches(t Transaction) bool {
	if f == AllTypes {
		return true
	}
	return Type(f) == t.Type
}

type Transaction struct {
	Id   int
	Name string
	// Type is kept as received; values other than income and expense are not
	// rejected when reading and count as expenses in balance arithmetic.
	Type Type
	// Amount is a non-negative magnitude, the sign comes from Type.
	Amount        money.Amount
	Date          time.Time
	CategoryId    *int
	CategoryName  string
	CategoryEmoji string
	BudgetId      int
}

func (t Transaction) IsIncome() bool {
	return t.Type == Income
}

func (t Transaction) InCategory(categoryId int) bool {
	return t.CategoryId != nil && *t.CategoryId == categoryId
}

// Signed returns the transaction's contribution to a balance.
func (t Transaction) Signed() money.Amount {
	if t.IsIncome() {
		return t.Amount
	}
	return t.Amount.Neg()
}

type Create struct {
	Name       string
	Type       Type
	Amount     money.Amount
	Date       time.Time
	CategoryId *int
	BudgetId   int
}
