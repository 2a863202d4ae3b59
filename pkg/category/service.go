package category

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/tally-app/tally/internal/event_bus"
	"github.com/tally-app/tally/pkg/user"
)

var ErrInvalidCategory = errors.New("invalid category")
var ErrNameRequired = fmt.Errorf("%w: name is required", ErrInvalidCategory)
var ErrNegativeLimit = fmt.Errorf("%w: limit amount must not be negative", ErrInvalidCategory)

type Service interface {
	List(ctx context.Context) ([]Category, error)
	Create(ctx context.Context, create Create) (Category, error)
	ListByBudget(ctx context.Context, budgetId int) ([]BudgetCategory, error)
	AttachToBudget(ctx context.Context, attach Attach) error
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewCategoryService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) List(ctx context.Context) ([]Category, error) {
	if _, err := user.CurrentId(ctx); err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.List(ctx)
}

func (s *ServiceImpl) Create(ctx context.Context, create Create) (Category, error) {
	if _, err := user.CurrentId(ctx); err != nil {
		return Category{}, fmt.Errorf("failed to get current user: %w", err)
	}
	create.Name = strings.TrimSpace(create.Name)
	create.Emoji = strings.TrimSpace(create.Emoji)
	if create.Name == "" {
		return Category{}, ErrNameRequired
	}
	return s.repo.Store(ctx, create)
}

func (s *ServiceImpl) ListByBudget(ctx context.Context, budgetId int) ([]BudgetCategory, error) {
	if _, err := user.CurrentId(ctx); err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.ListByBudget(ctx, budgetId)
}

func (s *ServiceImpl) AttachToBudget(ctx context.Context, attach Attach) error {
	if _, err := user.CurrentId(ctx); err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	if attach.LimitAmount.IsNegative() {
		return ErrNegativeLimit
	}
	if err := s.repo.Attach(ctx, attach); err != nil {
		return err
	}

	err := event_bus.PublishTyped(context.WithoutCancel(ctx), s.eventBus, event_bus.CategoryAttachedEvent, event_bus.CategoryAttached{
		BudgetId:    attach.BudgetId,
		CategoryId:  attach.CategoryId,
		LimitAmount: attach.LimitAmount,
	})
	if err != nil {
		log.Errorf("failed to publish category attached event: %v", err)
	}
	return nil
}
