package category

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/tally-app/tally/internal/rest"
	"github.com/tally-app/tally/pkg/money"
	"github.com/tally-app/tally/pkg/user"
)

type AttachDTO struct {
	CategoryId  int         `json:"categoryId"`
	LimitAmount money.Exact `json:"limitAmount"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// List godoc
// @Summary List categories of the current user
// @Tags Category
// @Produce json
// @Success 200 {array} CategoryDTO
// @Router /api/categories [get]
// @Security Bearer
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	dtos := make([]CategoryDTO, 0, len(categories))
	for _, c := range categories {
		dtos = append(dtos, CategoryDTO(c))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// Create godoc
// @Summary Create a category
// @Tags Category
// @Accept json
// @Produce json
// @Param category body CategoryDTO true "Category"
// @Success 201 {object} CategoryDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/categories [post]
// @Security Bearer
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating category")
	var dto CategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	created, err := h.service.Create(r.Context(), Create{Name: dto.Name, Emoji: dto.Emoji})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, CategoryDTO(created))
}

// ListByBudget godoc
// @Summary List categories attached to a budget with their limits
// @Tags Category
// @Produce json
// @Param budgetId path int true "Budget ID"
// @Success 200 {array} BudgetCategoryDTO
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/budgets/{budgetId}/categories [get]
// @Security Bearer
func (h *Handler) ListByBudget(w http.ResponseWriter, r *http.Request) {
	budgetId, err := strconv.Atoi(mux.Vars(r)["budgetId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid budget id", err.Error())
		return
	}
	categories, err := h.service.ListByBudget(r.Context(), budgetId)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	dtos := make([]BudgetCategoryDTO, 0, len(categories))
	for _, c := range categories {
		dtos = append(dtos, BudgetCategoryToDTO(c))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// Attach godoc
// @Summary Attach a category to a budget with a limit
// @Tags Category
// @Accept json
// @Param budgetId path int true "Budget ID"
// @Param attachment body AttachDTO true "Category and limit"
// @Success 204
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/budgets/{budgetId}/categories [post]
// @Security Bearer
func (h *Handler) Attach(w http.ResponseWriter, r *http.Request) {
	budgetId, err := strconv.Atoi(mux.Vars(r)["budgetId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid budget id", err.Error())
		return
	}
	var dto AttachDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	err = h.service.AttachToBudget(r.Context(), Attach{
		BudgetId:    budgetId,
		CategoryId:  dto.CategoryId,
		LimitAmount: dto.LimitAmount.Amount(),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrNoSession):
		rest.WriteError(w, http.StatusUnauthorized, "Not signed in", "")
	case errors.Is(err, ErrInvalidCategory):
		rest.WriteError(w, http.StatusBadRequest, "Invalid category", err.Error())
	case errors.Is(err, ErrBudgetNotFound):
		rest.WriteError(w, http.StatusNotFound, "Budget not found", "")
	case errors.Is(err, ErrCategoryNotFound):
		rest.WriteCodedError(w, http.StatusNotFound, CodeCategoryNotFound, "Category not found")
	default:
		log.Errorf("category request failed: %v", err)
		http.Error(w, err.Error(), http.StatusBadGateway)
	}
}
