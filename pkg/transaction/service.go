package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/tally-app/tally/internal/event_bus"
	"github.com/tally-app/tally/internal/utils"
	"github.com/tally-app/tally/pkg/user"
)

var ErrInvalidTransaction = errors.New("invalid transaction")
var ErrNameRequired = fmt.Errorf("%w: name is required", ErrInvalidTransaction)
var ErrInvalidType = fmt.Errorf("%w: type must be %q or %q", ErrInvalidTransaction, Expense, Income)
var ErrInvalidAmount = fmt.Errorf("%w: amount must be greater than zero", ErrInvalidTransaction)
var ErrCategoryRequired = fmt.Errorf("%w: expenses need a category", ErrInvalidTransaction)

type Service interface {
	List(ctx context.Context, filter TypeFilter, take int) ([]Transaction, error)
	ListByBudget(ctx context.Context, budgetId int, take int) ([]Transaction, error)
	Create(ctx context.Context, create Create) (Transaction, error)
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
	clock    utils.Clock
}

func NewTransactionService(repo Repository, eventBus *event_bus.EventBus, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus, clock: clock}
}

func (s *ServiceImpl) List(ctx context.Context, filter TypeFilter, take int) ([]Transaction, error) {
	if _, err := user.CurrentId(ctx); err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.List(ctx, filter, max(take, 0))
}

func (s *ServiceImpl) ListByBudget(ctx context.Context, budgetId int, take int) ([]Transaction, error) {
	if _, err := user.CurrentId(ctx); err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.ListByBudget(ctx, budgetId, max(take, 0))
}

func (s *ServiceImpl) Create(ctx context.Context, create Create) (Transaction, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to get current user: %w", err)
	}

	create.Name = strings.TrimSpace(create.Name)
	if err := validate(create); err != nil {
		log.Debugf("rejected transaction of user %d: %v", userId, err)
		return Transaction{}, err
	}
	if create.Date.IsZero() {
		create.Date = s.clock.Now()
	}

	created, err := s.repo.Store(ctx, create)
	if err != nil {
		return Transaction{}, err
	}

	// Stored upstream, so subscribers hear about it even if the caller went away.
	err = event_bus.PublishTyped(context.WithoutCancel(ctx), s.eventBus, event_bus.TransactionCreatedEvent, event_bus.TransactionCreated{
		Id:         created.Id,
		BudgetId:   created.BudgetId,
		CategoryId: created.CategoryId,
		Type:       string(created.Type),
		Amount:     created.Amount,
		Date:       created.Date,
	})
	if err != nil {
		// The transaction is already stored upstream, so it is returned anyway.
		log.Errorf("failed to publish transaction created event: %v", err)
	}
	return created, nil
}

func validate(create Create) error {
	if create.Name == "" {
		return ErrNameRequired
	}
	if !create.Type.Valid() {
		return ErrInvalidType
	}
	if !create.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if create.Type == Expense && create.CategoryId == nil {
		return ErrCategoryRequired
	}
	return nil
}
