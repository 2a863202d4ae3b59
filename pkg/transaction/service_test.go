package transaction

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tally-app/tally/internal/event_bus"
	"github.com/tally-app/tally/internal/utils"
	"github.com/tally-app/tally/pkg/money"
	"github.com/tally-app/tally/pkg/user"
)

var repoStub = NewStubTransactionRepo()
var clock = &utils.MockClock{FixedNow: time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)}

func setup(t *testing.T) (*ServiceImpl, *event_bus.EventBus, func()) {
	eventBus := event_bus.NewEventBus()
	service := NewTransactionService(repoStub, eventBus, clock)
	return service, eventBus, func() {
		t.Log("Teardown after test")
		repoStub.Cleanup()
	}
}

func signedIn() context.Context {
	return user.WithSession(context.Background(), user.Session{Token: "jwt", User: user.User{Id: 1, Username: "alice"}})
}

func intPtr(i int) *int {
	return &i
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("should store expense and publish event", func(t *testing.T) {
		service, eventBus, teardown := setup(t)
		defer teardown()

		// given
		repoStub.AddBudget(2, 4)
		var published []event_bus.TransactionCreated
		event_bus.SubscribeTyped(eventBus, event_bus.TransactionCreatedEvent, func(e event_bus.EventT[event_bus.TransactionCreated]) error {
			published = append(published, e.Data)
			return nil
		})

		// when
		created, err := service.Create(signedIn(), Create{
			Name:       " Groceries ",
			Type:       Expense,
			Amount:     money.MustParse("42.50"),
			CategoryId: intPtr(4),
			BudgetId:   2,
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, created.Id)
		assert.Equal(t, "Groceries", created.Name)
		assert.Equal(t, clock.Now(), created.Date)
		require.Len(t, published, 1)
		assert.Equal(t, 2, published[0].BudgetId)
		assert.Equal(t, "expense", published[0].Type)
		assert.True(t, money.MustParse("42.5").Equal(published[0].Amount))
	})

	t.Run("should keep the given date", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		repoStub.AddBudget(2)
		date := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

		created, err := service.Create(signedIn(), Create{Name: "Salary", Type: Income, Amount: money.New(1500), Date: date, BudgetId: 2})

		require.NoError(t, err)
		assert.Equal(t, date, created.Date)
	})

	t.Run("should validate", func(t *testing.T) {
		tests := []struct {
			name   string
			create Create
			want   error
		}{
			{"missing name", Create{Name: "  ", Type: Income, Amount: money.New(1)}, ErrNameRequired},
			{"unknown type", Create{Name: "x", Type: "transfer", Amount: money.New(1)}, ErrInvalidType},
			{"zero amount", Create{Name: "x", Type: Income, Amount: money.Zero}, ErrInvalidAmount},
			{"negative amount", Create{Name: "x", Type: Income, Amount: money.New(-3)}, ErrInvalidAmount},
			{"expense without category", Create{Name: "x", Type: Expense, Amount: money.New(3)}, ErrCategoryRequired},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				service, _, teardown := setup(t)
				defer teardown()

				_, err := service.Create(signedIn(), tt.create)

				assert.ErrorIs(t, err, tt.want)
				assert.ErrorIs(t, err, ErrInvalidTransaction)
			})
		}
	})

	t.Run("should pass through category not in budget", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		repoStub.AddBudget(2, 4)

		_, err := service.Create(signedIn(), Create{Name: "Fuel", Type: Expense, Amount: money.New(60), CategoryId: intPtr(9), BudgetId: 2})

		assert.ErrorIs(t, err, ErrCategoryNotFoundInBudget)
	})

	t.Run("should require a session", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		_, err := service.Create(context.Background(), Create{Name: "Salary", Type: Income, Amount: money.New(1)})

		assert.ErrorIs(t, err, user.ErrNoSession)
	})
}

func TestServiceImpl_List(t *testing.T) {
	service, _, teardown := setup(t)
	defer teardown()

	// given
	repoStub.AddBudget(2)
	repoStub.Seed(
		Transaction{Id: 1, Name: "Salary", Type: Income, Amount: money.New(1500), Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), BudgetId: 2},
		Transaction{Id: 2, Name: "Food", Type: Expense, Amount: money.New(300), Date: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), BudgetId: 2},
		Transaction{Id: 3, Name: "Bonus", Type: Income, Amount: money.New(200), Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), BudgetId: 3},
	)

	// when
	incomes, err := service.List(signedIn(), OnlyIncomes, 0)
	require.NoError(t, err)
	latest, err := service.List(signedIn(), AllTypes, 2)
	require.NoError(t, err)
	ofBudget, err := service.ListByBudget(signedIn(), 2, -1)
	require.NoError(t, err)
	_, missingErr := service.ListByBudget(signedIn(), 99, 0)

	// then
	assert.Equal(t, []int{3, 1}, ids(incomes))
	assert.Equal(t, []int{3, 2}, ids(latest))
	assert.Equal(t, []int{2, 1}, ids(ofBudget))
	assert.ErrorIs(t, missingErr, ErrBudgetNotFound)
}

func ids(transactions []Transaction) []int {
	result := make([]int, 0, len(transactions))
	for _, t := range transactions {
		result = append(result, t.Id)
	}
	return result
}
