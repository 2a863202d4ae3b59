package transaction

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/tally-app/tally/internal/rest"
	"github.com/tally-app/tally/pkg/money"
	"github.com/tally-app/tally/pkg/user"
)

type CreateDTO struct {
	Name       string      `json:"name"`
	Type       string      `json:"type"`
	Amount     money.Exact `json:"amount"`
	Date       *time.Time  `json:"date,omitempty"`
	CategoryId *int        `json:"categoryId,omitempty"`
	BudgetId   int         `json:"budgetId,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// List godoc
// @Summary List transactions of the current user
// @Tags Transaction
// @Produce json
// @Param type query string false "expense, income or all"
// @Param take query int false "Maximum number of transactions"
// @Success 200 {array} TransactionDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/transactions [get]
// @Security Bearer
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := ParseTypeFilter(r.URL.Query().Get("type"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid type filter", err.Error())
		return
	}
	take, err := rest.QueryInt(r, "take", 0)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid take", "'take' must be an integer")
		return
	}

	transactions, err := h.service.List(r.Context(), filter, take)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, TransactionsToDTOs(transactions))
}

// ListByBudget godoc
// @Summary List transactions of a budget
// @Tags Transaction
// @Produce json
// @Param budgetId path int true "Budget ID"
// @Param take query int false "Maximum number of transactions"
// @Success 200 {array} TransactionDTO
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/budgets/{budgetId}/transactions [get]
// @Security Bearer
func (h *Handler) ListByBudget(w http.ResponseWriter, r *http.Request) {
	budgetId, err := strconv.Atoi(mux.Vars(r)["budgetId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid budget id", err.Error())
		return
	}
	take, err := rest.QueryInt(r, "take", 0)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid take", "'take' must be an integer")
		return
	}

	transactions, err := h.service.ListByBudget(r.Context(), budgetId, take)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, TransactionsToDTOs(transactions))
}

// Create godoc
// @Summary Record a transaction
// @Tags Transaction
// @Accept json
// @Produce json
// @Param transaction body CreateDTO true "Transaction"
// @Success 201 {object} TransactionDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid transaction"
// @Failure 404 {object} rest.ErrorResponse "Budget not found"
// @Failure 422 {object} rest.ErrorResponse "Category is not part of the budget"
// @Router /api/transactions [post]
// @Security Bearer
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}

	create := Create{
		Name:       dto.Name,
		Type:       Type(dto.Type),
		Amount:     dto.Amount.Amount(),
		CategoryId: dto.CategoryId,
		BudgetId:   dto.BudgetId,
	}
	if dto.Date != nil {
		create.Date = *dto.Date
	}

	created, err := h.service.Create(r.Context(), create)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, TransactionToDTO(created))
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrNoSession):
		rest.WriteError(w, http.StatusUnauthorized, "Not signed in", "")
	case errors.Is(err, ErrInvalidTransaction):
		rest.WriteError(w, http.StatusBadRequest, "Invalid transaction", err.Error())
	case errors.Is(err, ErrBudgetNotFound):
		rest.WriteCodedError(w, http.StatusNotFound, CodeBudgetNotFound, "Budget not found")
	case errors.Is(err, ErrCategoryNotFoundInBudget):
		rest.WriteCodedError(w, http.StatusUnprocessableEntity, CodeCategoryNotFoundInBudget, "Category is not part of the budget")
	default:
		log.Errorf("transaction request failed: %v", err)
		http.Error(w, err.Error(), http.StatusBadGateway)
	}
}
