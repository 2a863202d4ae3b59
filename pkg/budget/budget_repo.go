package budget

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tally-app/tally/internal/api"
	"github.com/tally-app/tally/pkg/category"
	"github.com/tally-app/tally/pkg/ledger"
	"github.com/tally-app/tally/pkg/money"
	"github.com/tally-app/tally/pkg/transaction"
)

var ErrBudgetNotFound = transaction.ErrBudgetNotFound

// CodeBudgetExists is sent by the API when the user already has a budget for the month.
const CodeBudgetExists = "BUDGET_ALREADY_EXISTS"

var ErrBudgetExists = errors.New("budget already exists for this month")

type BudgetRepo interface {
	Current(ctx context.Context) (WithCategories, error)
	ByMonth(ctx context.Context, period ledger.YearMonth) (WithCategories, error)
	Store(ctx context.Context, create Create) (Budget, error)
}

type budgetDTO struct {
	Id           int                          `json:"id"`
	Month        int                          `json:"month"`
	Year         int                          `json:"year"`
	StableIncome money.Amount                 `json:"stableIncome"`
	TotalBalance money.Amount                 `json:"totalBalance"`
	UserId       int                          `json:"userId"`
	Categories   []category.BudgetCategoryDTO `json:"categories,omitempty"`
}

type createDTO struct {
	Month        int          `json:"month"`
	Year         int          `json:"year"`
	StableIncome money.Amount `json:"stableIncome"`
}

type BudgetRepoImpl struct {
	client *api.Client
}

func NewBudgetRepo(client *api.Client) *BudgetRepoImpl {
	return &BudgetRepoImpl{client: client}
}

func (r *BudgetRepoImpl) Current(ctx context.Context) (WithCategories, error) {
	return r.fetch(ctx, api.Request{Method: http.MethodGet, Path: "/budgets/current"})
}

func (r *BudgetRepoImpl) ByMonth(ctx context.Context, period ledger.YearMonth) (WithCategories, error) {
	return r.fetch(ctx, api.Request{
		Method: http.MethodGet,
		Path:   "/budgets",
		Query: url.Values{
			"month": {strconv.Itoa(period.Month)},
			"year":  {strconv.Itoa(period.Year)},
		},
	})
}

func (r *BudgetRepoImpl) Store(ctx context.Context, create Create) (Budget, error) {
	var created budgetDTO
	err := r.client.Do(ctx, api.Request{
		Method: http.MethodPost,
		Path:   "/budgets",
		Body:   createDTO(create),
	}, &created)
	if err != nil {
		if api.CodeOf(err) == CodeBudgetExists {
			return Budget{}, fmt.Errorf("%w: %v", ErrBudgetExists, err)
		}
		return Budget{}, fmt.Errorf("failed to create budget for %d/%d: %w", create.Month, create.Year, err)
	}
	return dtoToBudget(created).Budget, nil
}

func (r *BudgetRepoImpl) fetch(ctx context.Context, req api.Request) (WithCategories, error) {
	var dto budgetDTO
	if err := r.client.Do(ctx, req, &dto); err != nil {
		if errors.Is(err, api.ErrNotFound) || api.CodeOf(err) == transaction.CodeBudgetNotFound {
			return WithCategories{}, ErrBudgetNotFound
		}
		return WithCategories{}, fmt.Errorf("failed to fetch budget: %w", err)
	}
	// Some API versions answer 200 with an empty body when there is no budget.
	if dto.Id == 0 {
		return WithCategories{}, ErrBudgetNotFound
	}
	return dtoToBudget(dto), nil
}

func dtoToBudget(dto budgetDTO) WithCategories {
	categories := category.DTOsToBudgetCategories(dto.Categories)
	for i := range categories {
		categories[i].BudgetId = dto.Id
	}
	return WithCategories{
		Budget: Budget{
			Id:           dto.Id,
			Month:        dto.Month,
			Year:         dto.Year,
			StableIncome: dto.StableIncome,
			TotalBalance: dto.TotalBalance,
			UserId:       dto.UserId,
		},
		Categories: categories,
	}
}
