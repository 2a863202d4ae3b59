package transaction

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tally-app/tally/internal/api"
	"github.com/tally-app/tally/pkg/money"
)

const (
	CodeBudgetNotFound           = "BUDGET_NOT_FOUND"
	CodeCategoryNotFoundInBudget = "CATEGORY_NOT_FOUND_IN_BUDGET"
)

var ErrBudgetNotFound = errors.New("budget not found")
var ErrCategoryNotFoundInBudget = errors.New("category not found in budget")

type Repository interface {
	List(ctx context.Context, filter TypeFilter, take int) ([]Transaction, error)
	ListByBudget(ctx context.Context, budgetId int, take int) ([]Transaction, error)
	Store(ctx context.Context, create Create) (Transaction, error)
}

// TransactionDTO is the JSON shape of a transaction, both upstream and towards our own clients.
type TransactionDTO struct {
	Id            int          `json:"id"`
	Name          string       `json:"name"`
	Type          string       `json:"type"`
	Amount        money.Amount `json:"amount"`
	Date          time.Time    `json:"date"`
	CategoryId    *int         `json:"categoryId,omitempty"`
	CategoryName  string       `json:"categoryName,omitempty"`
	CategoryEmoji string       `json:"categoryEmoji,omitempty"`
	BudgetId      int          `json:"budgetId,omitempty"`
}

type createDTO struct {
	Name       string       `json:"name"`
	Type       string       `json:"type"`
	Amount     money.Amount `json:"amount"`
	Date       time.Time    `json:"date"`
	CategoryId *int         `json:"categoryId,omitempty"`
	BudgetId   int          `json:"budgetId,omitempty"`
}

type RepositoryImpl struct {
	client *api.Client
}

func NewTransactionRepo(client *api.Client) *RepositoryImpl {
	return &RepositoryImpl{client: client}
}

func (r *RepositoryImpl) List(ctx context.Context, filter TypeFilter, take int) ([]Transaction, error) {
	query := url.Values{}
	if filter != AllTypes {
		query.Set("type", string(filter))
	}
	if take > 0 {
		query.Set("take", strconv.Itoa(take))
	}
	var dtos []TransactionDTO
	if err := r.client.Do(ctx, api.Request{Method: http.MethodGet, Path: "/transactions", Query: query}, &dtos); err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	return DTOsToTransactions(dtos), nil
}

func (r *RepositoryImpl) ListByBudget(ctx context.Context, budgetId int, take int) ([]Transaction, error) {
	query := url.Values{}
	if take > 0 {
		query.Set("take", strconv.Itoa(take))
	}
	var dtos []TransactionDTO
	err := r.client.Do(ctx, api.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/budgets/%d/transactions", budgetId),
		Query:  query,
	}, &dtos)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, fmt.Errorf("failed to fetch transactions of budget %d: %w", budgetId, err)
	}
	return DTOsToTransactions(dtos), nil
}

func (r *RepositoryImpl) Store(ctx context.Context, create Create) (Transaction, error) {
	var created TransactionDTO
	err := r.client.Do(ctx, api.Request{
		Method: http.MethodPost,
		Path:   "/transactions",
		Body: createDTO{
			Name:       create.Name,
			Type:       string(create.Type),
			Amount:     create.Amount,
			Date:       create.Date,
			CategoryId: create.CategoryId,
			BudgetId:   create.BudgetId,
		},
	}, &created)
	if err != nil {
		switch api.CodeOf(err) {
		case CodeBudgetNotFound:
			return Transaction{}, fmt.Errorf("%w: %v", ErrBudgetNotFound, err)
		case CodeCategoryNotFoundInBudget:
			return Transaction{}, fmt.Errorf("%w: %v", ErrCategoryNotFoundInBudget, err)
		}
		log.Errorf("failed to create transaction %q: %v", create.Name, err)
		return Transaction{}, err
	}
	return DTOToTransaction(created), nil
}

func DTOToTransaction(dto TransactionDTO) Transaction {
	return Transaction{
		Id:            dto.Id,
		Name:          dto.Name,
		Type:          Type(dto.Type),
		Amount:        dto.Amount,
		Date:          dto.Date,
		CategoryId:    dto.CategoryId,
		CategoryName:  dto.CategoryName,
		CategoryEmoji: dto.CategoryEmoji,
		BudgetId:      dto.BudgetId,
	}
}

func DTOsToTransactions(dtos []TransactionDTO) []Transaction {
	transactions := make([]Transaction, 0, len(dtos))
	for _, dto := range dtos {
		transactions = append(transactions, DTOToTransaction(dto))
	}
	return transactions
}

func TransactionToDTO(t Transaction) TransactionDTO {
	return TransactionDTO{
		Id:            t.Id,
		Name:          t.Name,
		Type:          string(t.Type),
		Amount:        t.Amount,
		Date:          t.Date,
		CategoryId:    t.CategoryId,
		CategoryName:  t.CategoryName,
		CategoryEmoji: t.CategoryEmoji,
		BudgetId:      t.BudgetId,
	}
}

func TransactionsToDTOs(transactions []Transaction) []TransactionDTO {
	dtos := make([]TransactionDTO, 0, len(transactions))
	for _, t := range transactions {
		dtos = append(dtos, TransactionToDTO(t))
	}
	return dtos
}
