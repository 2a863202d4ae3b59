package app

import (
	"fmt"

	"github.com/tally-app/tally/internal/api"
	"github.com/tally-app/tally/internal/config"
	"github.com/tally-app/tally/internal/event_bus"
	"github.com/tally-app/tally/internal/utils"
	"github.com/tally-app/tally/pkg/budget"
	"github.com/tally-app/tally/pkg/category"
	"github.com/tally-app/tally/pkg/overview"
	"github.com/tally-app/tally/pkg/transaction"
	"github.com/tally-app/tally/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	ApiClient *api.Client
	EventBus  *event_bus.EventBus
	Clock     utils.Clock

	UserService user.Service
	UserHandler *user.Handler
	Sessions    user.Resolver

	BudgetService *budget.BudgetServiceImpl
	BudgetHandler *budget.BudgetHandler

	CategoryService *category.ServiceImpl
	CategoryHandler *category.Handler

	TransactionService *transaction.ServiceImpl
	TransactionHandler *transaction.Handler

	OverviewService *overview.OverviewServiceImpl
	OverviewHandler *overview.OverviewHandler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(client *api.Client, cfg config.Application) (*Dependencies, error) {
	location, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	deps := &Dependencies{
		ApiClient: client,
		EventBus:  event_bus.NewEventBus(),
		Clock:     utils.InLocation(utils.SystemClock{}, location),
	}

	deps.UserService = user.NewUserService(user.NewUserRepo(client))
	deps.UserHandler = user.NewHandler(deps.UserService)
	deps.Sessions = user.NewCachedResolver(deps.UserService, cfg.Cache.Size, cfg.Cache.SessionTTL)

	deps.BudgetService = budget.NewBudgetServiceImpl(budget.NewBudgetRepo(client), deps.EventBus, deps.Clock)
	deps.BudgetHandler = budget.NewBudgetHandler(deps.BudgetService)

	deps.CategoryService = category.NewCategoryService(category.NewCategoryRepo(client), deps.EventBus)
	deps.CategoryHandler = category.NewHandler(deps.CategoryService)

	deps.TransactionService = transaction.NewTransactionService(transaction.NewTransactionRepo(client), deps.EventBus, deps.Clock)
	deps.TransactionHandler = transaction.NewHandler(deps.TransactionService)

	deps.OverviewService, err = overview.NewOverviewServiceImpl(
		deps.BudgetService,
		deps.TransactionService,
		deps.EventBus,
		deps.Clock,
		cfg.Cache.Size,
		cfg.Cache.TTL,
	)
	if err != nil {
		return nil, err
	}
	deps.OverviewHandler = overview.NewOverviewHandler(deps.OverviewService, overview.NewCsvSectionsRenderer())

	return deps, nil
}
