package budget

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/tally-app/tally/internal/event_bus"
	"github.com/tally-app/tally/internal/utils"
	"github.com/tally-app/tally/pkg/ledger"
	"github.com/tally-app/tally/pkg/user"
)

var ErrInvalidBudget = errors.New("invalid budget")

type BudgetService interface {
	Current(ctx context.Context) (WithCategories, error)
	ByMonth(ctx context.Context, period ledger.YearMonth) (WithCategories, error)
	Create(ctx context.Context, create Create) (Budget, error)
	// Adjacent steps from period in direction and returns the budget found
	// there. The returned period is valid even when the error is ErrBudgetNotFound.
	Adjacent(ctx context.Context, period ledger.YearMonth, direction ledger.Direction) (WithCategories, ledger.YearMonth, error)
}

type BudgetServiceImpl struct {
	repo     BudgetRepo
	eventBus *event_bus.EventBus
	clock    utils.Clock
}

func NewBudgetServiceImpl(repo BudgetRepo, eventBus *event_bus.EventBus, clock utils.Clock) *BudgetServiceImpl {
	return &BudgetServiceImpl{repo: repo, eventBus: eventBus, clock: clock}
}

func (s *BudgetServiceImpl) Current(ctx context.Context) (WithCategories, error) {
	if _, err := user.CurrentId(ctx); err != nil {
		return WithCategories{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Current(ctx)
}

// ByMonth returns the budget of period. A zero period means the current month.
func (s *BudgetServiceImpl) ByMonth(ctx context.Context, period ledger.YearMonth) (WithCategories, error) {
	if _, err := user.CurrentId(ctx); err != nil {
		return WithCategories{}, fmt.Errorf("failed to get current user: %w", err)
	}
	period = s.withDefaults(period)
	if err := validatePeriod(period); err != nil {
		return WithCategories{}, err
	}
	return s.repo.ByMonth(ctx, period)
}

func (s *BudgetServiceImpl) Create(ctx context.Context, create Create) (Budget, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Budget{}, fmt.Errorf("failed to get current user: %w", err)
	}
	period := s.withDefaults(ledger.YearMonth{Month: create.Month, Year: create.Year})
	create.Month, create.Year = period.Month, period.Year
	if err := validatePeriod(period); err != nil {
		return Budget{}, err
	}
	if create.StableIncome.IsNegative() {
		return Budget{}, fmt.Errorf("%w: stable income must not be negative", ErrInvalidBudget)
	}

	created, err := s.repo.Store(ctx, create)
	if err != nil {
		return Budget{}, err
	}
	log.Debugf("created budget %d for %s (user %d)", created.Id, period.Label(), userId)

	err = event_bus.PublishTyped(context.WithoutCancel(ctx), s.eventBus, event_bus.BudgetCreatedEvent, event_bus.BudgetCreated{
		BudgetId: created.Id,
		Month:    created.Month,
		Year:     created.Year,
	})
	if err != nil {
		log.Errorf("failed to publish budget created event: %v", err)
	}
	return created, nil
}

func (s *BudgetServiceImpl) Adjacent(ctx context.Context, period ledger.YearMonth, direction ledger.Direction) (WithCategories, ledger.YearMonth, error) {
	period = s.withDefaults(period)
	if err := validatePeriod(period); err != nil {
		return WithCategories{}, ledger.YearMonth{}, err
	}
	target := period.Step(direction)
	budget, err := s.ByMonth(ctx, target)
	return budget, target, err
}

func (s *BudgetServiceImpl) withDefaults(period ledger.YearMonth) ledger.YearMonth {
	now := ledger.MonthOf(s.clock.Now())
	if period.Month == 0 {
		period.Month = now.Month
	}
	if period.Year == 0 {
		period.Year = now.Year
	}
	return period
}

func validatePeriod(period ledger.YearMonth) error {
	if period.Month < 1 || period.Month > 12 {
		return fmt.Errorf("%w: month must be between 1 and 12, got %d", ErrInvalidBudget, period.Month)
	}
	if period.Year <= 0 {
		return fmt.Errorf("%w: year must be positive, got %d", ErrInvalidBudget, period.Year)
	}
	return nil
}
