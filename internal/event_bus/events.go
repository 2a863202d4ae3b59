package event_bus

import (
	"time"

	"github.com/tally-app/tally/pkg/money"
)

const (
	BudgetCreatedEvent      EventType = "budget.created"
	CategoryAttachedEvent   EventType = "budget.category.attached"
	TransactionCreatedEvent EventType = "transaction.created"
)

type BudgetCreated struct {
	BudgetId int
	Month    int
	Year     int
}

type CategoryAttached struct {
	BudgetId    int
	CategoryId  int
	LimitAmount money.Amount
}

type TransactionCreated struct {
	Id         int
	BudgetId   int
	CategoryId *int
	Type       string
	Amount     money.Amount
	Date       time.Time
}
