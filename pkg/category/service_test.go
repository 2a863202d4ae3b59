package category

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tally-app/tally/internal/event_bus"
	"github.com/tally-app/tally/pkg/money"
	"github.com/tally-app/tally/pkg/user"
)

var repoStub = NewStubCategoryRepo()

func setup(t *testing.T) (*ServiceImpl, *event_bus.EventBus, func()) {
	eventBus := event_bus.NewEventBus()
	service := NewCategoryService(repoStub, eventBus)
	return service, eventBus, func() {
		t.Log("Teardown after test")
		repoStub.Cleanup()
	}
}

func signedIn() context.Context {
	return user.WithSession(context.Background(), user.Session{Token: "jwt", User: user.User{Id: 1}})
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("should create category", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		created, err := service.Create(signedIn(), Create{Name: " Food ", Emoji: "🍔"})

		require.NoError(t, err)
		assert.Equal(t, Category{Id: 1, Name: "Food", Emoji: "🍔"}, created)
		all, err := service.List(signedIn())
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("should require a name", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		_, err := service.Create(signedIn(), Create{Name: "   "})

		assert.ErrorIs(t, err, ErrNameRequired)
		assert.ErrorIs(t, err, ErrInvalidCategory)
	})
}

func TestServiceImpl_AttachToBudget(t *testing.T) {
	t.Run("should attach and publish", func(t *testing.T) {
		service, eventBus, teardown := setup(t)
		defer teardown()

		// given
		repoStub.AddBudget(2)
		food, err := service.Create(signedIn(), Create{Name: "Food"})
		require.NoError(t, err)
		var published []event_bus.CategoryAttached
		event_bus.SubscribeTyped(eventBus, event_bus.CategoryAttachedEvent, func(e event_bus.EventT[event_bus.CategoryAttached]) error {
			published = append(published, e.Data)
			return nil
		})

		// when
		err = service.AttachToBudget(signedIn(), Attach{BudgetId: 2, CategoryId: food.Id, LimitAmount: money.New(400)})

		// then
		require.NoError(t, err)
		categories, err := service.ListByBudget(signedIn(), 2)
		require.NoError(t, err)
		require.Len(t, categories, 1)
		assert.Equal(t, "Food", categories[0].Name)
		assert.True(t, money.New(400).Equal(categories[0].LimitAmount))
		require.Len(t, published, 1)
		assert.Equal(t, food.Id, published[0].CategoryId)
	})

	t.Run("should reject negative limit", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		err := service.AttachToBudget(signedIn(), Attach{BudgetId: 2, CategoryId: 1, LimitAmount: money.New(-1)})

		assert.ErrorIs(t, err, ErrNegativeLimit)
	})

	t.Run("should report missing budget and category", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		repoStub.AddBudget(2)

		assert.ErrorIs(t, service.AttachToBudget(signedIn(), Attach{BudgetId: 3, CategoryId: 1}), ErrBudgetNotFound)
		assert.ErrorIs(t, service.AttachToBudget(signedIn(), Attach{BudgetId: 2, CategoryId: 1}), ErrCategoryNotFound)
	})

	t.Run("should require a session", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		err := service.AttachToBudget(context.Background(), Attach{BudgetId: 2, CategoryId: 1})

		assert.ErrorIs(t, err, user.ErrNoSession)
	})
}
