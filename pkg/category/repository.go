package category

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/tally-app/tally/internal/api"
	"github.com/tally-app/tally/pkg/money"
	"github.com/tally-app/tally/pkg/transaction"
)

const CodeCategoryNotFound = "CATEGORY_NOT_FOUND"

var ErrBudgetNotFound = transaction.ErrBudgetNotFound
var ErrCategoryNotFound = errors.New("category not found")

type Repository interface {
	List(ctx context.Context) ([]Category, error)
	Store(ctx context.Context, create Create) (Category, error)
	ListByBudget(ctx context.Context, budgetId int) ([]BudgetCategory, error)
	Attach(ctx context.Context, attach Attach) error
}

type CategoryDTO struct {
	Id    int    `json:"id"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}

type BudgetCategoryDTO struct {
	Id           int                          `json:"id"`
	Name         string                       `json:"name"`
	Emoji        string                       `json:"emoji"`
	BudgetId     int                          `json:"budgetId,omitempty"`
	LimitAmount  money.Amount                 `json:"limitAmount"`
	Transactions []transaction.TransactionDTO `json:"transactions,omitempty"`
}

type attachDTO struct {
	CategoryId  int          `json:"categoryId"`
	LimitAmount money.Amount `json:"limitAmount"`
}

type RepositoryImpl struct {
	client *api.Client
}

func NewCategoryRepo(client *api.Client) *RepositoryImpl {
	return &RepositoryImpl{client: client}
}

func (r *RepositoryImpl) List(ctx context.Context) ([]Category, error) {
	var dtos []CategoryDTO
	if err := r.client.Do(ctx, api.Request{Method: http.MethodGet, Path: "/categories"}, &dtos); err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	categories := make([]Category, 0, len(dtos))
	for _, dto := range dtos {
		categories = append(categories, Category(dto))
	}
	return categories, nil
}

func (r *RepositoryImpl) Store(ctx context.Context, create Create) (Category, error) {
	var created CategoryDTO
	err := r.client.Do(ctx, api.Request{
		Method: http.MethodPost,
		Path:   "/categories",
		Body:   CategoryDTO{Name: create.Name, Emoji: create.Emoji},
	}, &created)
	if err != nil {
		return Category{}, fmt.Errorf("failed to create category %q: %w", create.Name, err)
	}
	return Category(created), nil
}

func (r *RepositoryImpl) ListByBudget(ctx context.Context, budgetId int) ([]BudgetCategory, error) {
	var dtos []BudgetCategoryDTO
	err := r.client.Do(ctx, api.Request{Method: http.MethodGet, Path: fmt.Sprintf("/budgets/%d/categories", budgetId)}, &dtos)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, fmt.Errorf("failed to fetch categories of budget %d: %w", budgetId, err)
	}
	categories := DTOsToBudgetCategories(dtos)
	for i := range categories {
		if categories[i].BudgetId == 0 {
			categories[i].BudgetId = budgetId
		}
	}
	return categories, nil
}

func (r *RepositoryImpl) Attach(ctx context.Context, attach Attach) error {
	err := r.client.Do(ctx, api.Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/budgets/%d/categories", attach.BudgetId),
		Body:   attachDTO{CategoryId: attach.CategoryId, LimitAmount: attach.LimitAmount},
	}, nil)
	if err == nil {
		return nil
	}
	switch {
	case api.CodeOf(err) == CodeCategoryNotFound:
		return fmt.Errorf("%w: %v", ErrCategoryNotFound, err)
	case api.CodeOf(err) == transaction.CodeBudgetNotFound, errors.Is(err, api.ErrNotFound):
		return fmt.Errorf("%w: %v", ErrBudgetNotFound, err)
	}
	return fmt.Errorf("failed to attach category %d to budget %d: %w", attach.CategoryId, attach.BudgetId, err)
}

func DTOToBudgetCategory(dto BudgetCategoryDTO) BudgetCategory {
	return BudgetCategory{
		Category:     Category{Id: dto.Id, Name: dto.Name, Emoji: dto.Emoji},
		BudgetId:     dto.BudgetId,
		LimitAmount:  dto.LimitAmount,
		Transactions: transaction.DTOsToTransactions(dto.Transactions),
	}
}

func DTOsToBudgetCategories(dtos []BudgetCategoryDTO) []BudgetCategory {
	categories := make([]BudgetCategory, 0, len(dtos))
	for _, dto := range dtos {
		categories = append(categories, DTOToBudgetCategory(dto))
	}
	return categories
}

// BudgetCategoryToDTO drops embedded transactions; they are served separately.
func BudgetCategoryToDTO(c BudgetCategory) BudgetCategoryDTO {
	return BudgetCategoryDTO{
		Id:          c.Id,
		Name:        c.Name,
		Emoji:       c.Emoji,
		BudgetId:    c.BudgetId,
		LimitAmount: c.LimitAmount,
	}
}
