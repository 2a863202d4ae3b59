package transaction

import (
	"context"
	"slices"
)

type StubTransactionRepo struct {
	nextId       int
	transactions []Transaction
	budgets      map[int][]int // budgetId -> categoryIds attached to it
}

func NewStubTransactionRepo() *StubTransactionRepo {
	repo := &StubTransactionRepo{}
	repo.Cleanup()
	return repo
}

// AddBudget makes the stub accept transactions for the budget and the given categories.
func (s *StubTransactionRepo) AddBudget(budgetId int, categoryIds ...int) {
	s.budgets[budgetId] = append(s.budgets[budgetId], categoryIds...)
}

func (s *StubTransactionRepo) List(ctx context.Context, filter TypeFilter, take int) ([]Transaction, error) {
	return s.newestFirst(func(t Transaction) bool { return filter.Matches(t) }, take), nil
}

func (s *StubTransactionRepo) ListByBudget(ctx context.Context, budgetId int, take int) ([]Transaction, error) {
	if _, ok := s.budgets[budgetId]; !ok {
		return nil, ErrBudgetNotFound
	}
	return s.newestFirst(func(t Transaction) bool { return t.BudgetId == budgetId }, take), nil
}

func (s *StubTransactionRepo) Store(ctx context.Context, create Create) (Transaction, error) {
	categories, ok := s.budgets[create.BudgetId]
	if !ok {
		return Transaction{}, ErrBudgetNotFound
	}
	if create.CategoryId != nil && !slices.Contains(categories, *create.CategoryId) {
		return Transaction{}, ErrCategoryNotFoundInBudget
	}
	s.nextId++
	stored := Transaction{
		Id:         s.nextId,
		Name:       create.Name,
		Type:       create.Type,
		Amount:     create.Amount,
		Date:       create.Date,
		CategoryId: create.CategoryId,
		BudgetId:   create.BudgetId,
	}
	s.transactions = append(s.transactions, stored)
	return stored, nil
}

// Seed stores transactions as they are, bypassing validation.
func (s *StubTransactionRepo) Seed(transactions ...Transaction) {
	for _, t := range transactions {
		s.nextId = max(s.nextId, t.Id)
	}
	s.transactions = append(s.transactions, transactions...)
}

func (s *StubTransactionRepo) Cleanup() {
	s.nextId = 0
	s.transactions = nil
	s.budgets = map[int][]int{}
}

func (s *StubTransactionRepo) newestFirst(match func(Transaction) bool, take int) []Transaction {
	var result []Transaction
	for _, t := range s.transactions {
		if match(t) {
			result = append(result, t)
		}
	}
	slices.SortStableFunc(result, func(a, b Transaction) int {
		return b.Date.Compare(a.Date)
	})
	if take > 0 && len(result) > take {
		result = result[:take]
	}
	return result
}
