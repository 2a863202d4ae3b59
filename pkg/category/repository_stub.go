package category

import (
	"context"
	"slices"
)

type StubCategoryRepo struct {
	nextId     int
	categories []Category
	budgets    map[int][]BudgetCategory
}

func NewStubCategoryRepo() *StubCategoryRepo {
	repo := &StubCategoryRepo{}
	repo.Cleanup()
	return repo
}

// AddBudget registers an empty budget the stub can attach categories to.
func (s *StubCategoryRepo) AddBudget(budgetId int, categories ...BudgetCategory) {
	s.budgets[budgetId] = append(s.budgets[budgetId], categories...)
}

func (s *StubCategoryRepo) List(ctx context.Context) ([]Category, error) {
	return slices.Clone(s.categories), nil
}

func (s *StubCategoryRepo) Store(ctx context.Context, create Create) (Category, error) {
	s.nextId++
	category := Category{Id: s.nextId, Name: create.Name, Emoji: create.Emoji}
	s.categories = append(s.categories, category)
	return category, nil
}

func (s *StubCategoryRepo) ListByBudget(ctx context.Context, budgetId int) ([]BudgetCategory, error) {
	categories, ok := s.budgets[budgetId]
	if !ok {
		return nil, ErrBudgetNotFound
	}
	return slices.Clone(categories), nil
}

func (s *StubCategoryRepo) Attach(ctx context.Context, attach Attach) error {
	if _, ok := s.budgets[attach.BudgetId]; !ok {
		return ErrBudgetNotFound
	}
	idx := slices.IndexFunc(s.categories, func(c Category) bool { return c.Id == attach.CategoryId })
	if idx < 0 {
		return ErrCategoryNotFound
	}
	s.budgets[attach.BudgetId] = append(s.budgets[attach.BudgetId], BudgetCategory{
		Category:    s.categories[idx],
		BudgetId:    attach.BudgetId,
		LimitAmount: attach.LimitAmount,
	})
	return nil
}

func (s *StubCategoryRepo) Cleanup() {
	s.nextId = 0
	s.categories = nil
	s.budgets = map[int][]BudgetCategory{}
}
