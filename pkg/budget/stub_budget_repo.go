package budget

import (
	"context"

	"github.com/tally-app/tally/pkg/ledger"
)

type StubBudgetRepo struct {
	nextId  int
	current ledger.YearMonth
	data    map[ledger.YearMonth]WithCategories
}

func NewStubBudgetRepo() *StubBudgetRepo {
	repo := &StubBudgetRepo{}
	repo.Cleanup()
	return repo
}

// SetCurrent chooses the period the stub answers Current with.
func (s *StubBudgetRepo) SetCurrent(period ledger.YearMonth) {
	s.current = period
}

func (s *StubBudgetRepo) Current(ctx context.Context) (WithCategories, error) {
	return s.ByMonth(ctx, s.current)
}

func (s *StubBudgetRepo) ByMonth(ctx context.Context, period ledger.YearMonth) (WithCategories, error) {
	budget, ok := s.data[period]
	if !ok {
		return WithCategories{}, ErrBudgetNotFound
	}
	return budget, nil
}

func (s *StubBudgetRepo) Store(ctx context.Context, create Create) (Budget, error) {
	period := ledger.YearMonth{Month: create.Month, Year: create.Year}
	if _, ok := s.data[period]; ok {
		return Budget{}, ErrBudgetExists
	}
	s.nextId++
	budget := Budget{
		Id:           s.nextId,
		Month:        create.Month,
		Year:         create.Year,
		StableIncome: create.StableIncome,
		TotalBalance: create.StableIncome,
	}
	s.data[period] = WithCategories{Budget: budget}
	return budget, nil
}

// Put stores budget as it is, replacing any budget of the same period.
func (s *StubBudgetRepo) Put(budget WithCategories) {
	s.data[budget.Period()] = budget
}

func (s *StubBudgetRepo) Cleanup() {
	s.nextId = 0
	s.current = ledger.YearMonth{}
	s.data = map[ledger.YearMonth]WithCategories{}
}
