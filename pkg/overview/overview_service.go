package overview

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	log "github.com/sirupsen/logrus"
	"github.com/tally-app/tally/internal/event_bus"
	"github.com/tally-app/tally/internal/utils"
	"github.com/tally-app/tally/pkg/budget"
	"github.com/tally-app/tally/pkg/category"
	"github.com/tally-app/tally/pkg/ledger"
	"github.com/tally-app/tally/pkg/transaction"
	"github.com/tally-app/tally/pkg/user"
)

type OverviewService interface {
	// Dashboard returns the dashboard of period. A zero period means the current month.
	Dashboard(ctx context.Context, period ledger.YearMonth) (Dashboard, error)
	Sections(ctx context.Context, filter ledger.Filter) ([]ledger.Section, error)
}

type cacheKey struct {
	userId int
	period ledger.YearMonth
}

type OverviewServiceImpl struct {
	budgets      budget.BudgetService
	transactions transaction.Service
	clock        utils.Clock
	cache        *expirable.LRU[cacheKey, Dashboard]

	// mu guards generations and orders invalidation against cache fills.
	mu sync.Mutex
	// generations counts invalidations per user. A purge bumps epoch instead.
	generations map[int]uint64
	epoch       uint64
}

// generation identifies the state of a user's cached dashboards. It changes on
// every invalidation that touches the user.
type generation struct {
	epoch uint64
	user  uint64
}

func NewOverviewServiceImpl(
	budgets budget.BudgetService,
	transactions transaction.Service,
	eventBus *event_bus.EventBus,
	clock utils.Clock,
	cacheSize int,
	cacheTTL time.Duration,
) (*OverviewServiceImpl, error) {
	if cacheSize <= 0 {
		return nil, fmt.Errorf("failed to create dashboard cache: size must be positive, got %d", cacheSize)
	}
	if cacheTTL <= 0 {
		return nil, fmt.Errorf("failed to create dashboard cache: ttl must be positive, got %s", cacheTTL)
	}
	s := &OverviewServiceImpl{
		budgets:      budgets,
		transactions: transactions,
		clock:        clock,
		cache:        expirable.NewLRU[cacheKey, Dashboard](cacheSize, nil, cacheTTL),
		generations:  map[int]uint64{},
	}

	event_bus.SubscribeTyped(eventBus, event_bus.TransactionCreatedEvent, func(e event_bus.EventT[event_bus.TransactionCreated]) error {
		s.invalidate(e.Context())
		return nil
	})
	event_bus.SubscribeTyped(eventBus, event_bus.CategoryAttachedEvent, func(e event_bus.EventT[event_bus.CategoryAttached]) error {
		s.invalidate(e.Context())
		return nil
	})
	event_bus.SubscribeTyped(eventBus, event_bus.BudgetCreatedEvent, func(e event_bus.EventT[event_bus.BudgetCreated]) error {
		s.invalidate(e.Context())
		return nil
	})
	return s, nil
}

func (s *OverviewServiceImpl) Dashboard(ctx context.Context, period ledger.YearMonth) (Dashboard, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if period == (ledger.YearMonth{}) {
		period = ledger.MonthOf(s.clock.Now())
	}

	key := cacheKey{userId: userId, period: period}
	if dashboard, ok := s.cache.Get(key); ok {
		log.Tracef("dashboard cache hit for user %d, %s", userId, period.Label())
		return dashboard, nil
	}

	seen := s.generationOf(userId)
	b, err := s.budgets.ByMonth(ctx, period)
	if err != nil {
		return Dashboard{}, err
	}
	explicit, err := s.transactions.ListByBudget(ctx, b.Id, 0)
	if err != nil {
		return Dashboard{}, err
	}
	dashboard := BuildDashboard(b, category.MergeTransactions(explicit, b.Categories))

	s.store(key, seen, dashboard)
	return dashboard, nil
}

func (s *OverviewServiceImpl) Sections(ctx context.Context, filter ledger.Filter) ([]ledger.Section, error) {
	transactions, err := s.transactions.List(ctx, filter.Type, 0)
	if err != nil {
		return nil, err
	}
	return ledger.Sections(filter.Apply(transactions), s.clock.Now()), nil
}

func (s *OverviewServiceImpl) generationOf(userId int) generation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return generation{epoch: s.epoch, user: s.generations[userId]}
}

// store caches dashboard unless the user was invalidated since seen was read.
func (s *OverviewServiceImpl) store(key cacheKey, seen generation, dashboard Dashboard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if (generation{epoch: s.epoch, user: s.generations[key.userId]}) != seen {
		log.Debugf("not caching dashboard of user %d, %s: invalidated while loading", key.userId, key.period.Label())
		return
	}
	s.cache.Add(key, dashboard)
}

// invalidate drops every cached dashboard of the user found in ctx.
func (s *OverviewServiceImpl) invalidate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userId, err := user.CurrentId(ctx)
	if err != nil {
		log.Warnf("dropping all cached dashboards, event without user: %v", err)
		s.epoch++
		s.cache.Purge()
		return
	}
	s.generations[userId]++
	for _, key := range s.cache.Keys() {
		if key.userId == userId {
			s.cache.Remove(key)
		}
	}
}
