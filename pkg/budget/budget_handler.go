package budget

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/tally-app/tally/internal/rest"
	"github.com/tally-app/tally/pkg/category"
	"github.com/tally-app/tally/pkg/ledger"
	"github.com/tally-app/tally/pkg/money"
	"github.com/tally-app/tally/pkg/user"
)

type BudgetDTO struct {
	Id           int                          `json:"id"`
	Month        int                          `json:"month"`
	Year         int                          `json:"year"`
	Label        string                       `json:"label"`
	StableIncome money.Amount                 `json:"stableIncome"`
	TotalBalance money.Amount                 `json:"totalBalance"`
	UserId       int                          `json:"userId,omitempty"`
	Categories   []category.BudgetCategoryDTO `json:"categories"`
}

type CreateDTO struct {
	Month        int         `json:"month,omitempty"`
	Year         int         `json:"year,omitempty"`
	StableIncome money.Exact `json:"stableIncome"`
}

type PeriodDTO struct {
	Month int    `json:"month"`
	Year  int    `json:"year"`
	Label string `json:"label"`
}

// NavigationDTO is the result of stepping to an adjacent month. Budget is
// null when there is no budget for that month yet.
type NavigationDTO struct {
	Period PeriodDTO  `json:"period"`
	Budget *BudgetDTO `json:"budget"`
}

type BudgetHandler struct {
	budgetService BudgetService
}

func NewBudgetHandler(budgetService BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService}
}

// Current godoc
// @Summary Get the budget of the current month
// @Tags Budget
// @Produce json
// @Success 200 {object} BudgetDTO
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/budgets/current [get]
// @Security Bearer
func (handler *BudgetHandler) Current(w http.ResponseWriter, r *http.Request) {
	budget, err := handler.budgetService.Current(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, BudgetToDTO(budget))
}

// ByMonth godoc
// @Summary Get the budget of a month
// @Tags Budget
// @Produce json
// @Param month query int false "Month (1-12), defaults to the current one"
// @Param year query int false "Year, defaults to the current one"
// @Success 200 {object} BudgetDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/budgets [get]
// @Security Bearer
func (handler *BudgetHandler) ByMonth(w http.ResponseWriter, r *http.Request) {
	period, ok := periodFromQuery(w, r)
	if !ok {
		return
	}
	budget, err := handler.budgetService.ByMonth(r.Context(), period)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, BudgetToDTO(budget))
}

// Register godoc
// @Summary Create a budget
// @Tags Budget
// @Accept json
// @Produce json
// @Param budget body CreateDTO true "Budget"
// @Success 201 {object} BudgetDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 409 {object} rest.ErrorResponse
// @Router /api/budgets [post]
// @Security Bearer
func (handler *BudgetHandler) Register(w http.ResponseWriter, r *http.Request) {
	log.Debug("Registering new budget")

	var createDTO CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&createDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}

	created, err := handler.budgetService.Create(r.Context(), Create{
		Month:        createDTO.Month,
		Year:         createDTO.Year,
		StableIncome: createDTO.StableIncome.Amount(),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, BudgetToDTO(WithCategories{Budget: created}))
}

// Navigate godoc
// @Summary Step to the previous or next month
// @Tags Budget
// @Produce json
// @Param month query int false "Month the user is looking at"
// @Param year query int false "Year the user is looking at"
// @Param direction query string true "previous or next"
// @Success 200 {object} NavigationDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/budgets/navigate [get]
// @Security Bearer
func (handler *BudgetHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	period, ok := periodFromQuery(w, r)
	if !ok {
		return
	}
	direction, err := ledger.ParseDirection(r.URL.Query().Get("direction"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid direction", err.Error())
		return
	}

	budget, target, err := handler.budgetService.Adjacent(r.Context(), period, direction)
	if err != nil && !errors.Is(err, ErrBudgetNotFound) {
		writeServiceError(w, err)
		return
	}

	navigation := NavigationDTO{Period: PeriodDTO{Month: target.Month, Year: target.Year, Label: target.Label()}}
	if err == nil {
		dto := BudgetToDTO(budget)
		navigation.Budget = &dto
	}
	rest.WriteJSON(w, http.StatusOK, navigation)
}

func periodFromQuery(w http.ResponseWriter, r *http.Request) (ledger.YearMonth, bool) {
	month, err := rest.QueryInt(r, "month", 0)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid month", "'month' must be an integer")
		return ledger.YearMonth{}, false
	}
	year, err := rest.QueryInt(r, "year", 0)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid year", "'year' must be an integer")
		return ledger.YearMonth{}, false
	}
	return ledger.YearMonth{Month: month, Year: year}, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrNoSession):
		rest.WriteError(w, http.StatusUnauthorized, "Not signed in", "")
	case errors.Is(err, ErrInvalidBudget):
		rest.WriteError(w, http.StatusBadRequest, "Invalid budget", err.Error())
	case errors.Is(err, ErrBudgetNotFound):
		rest.WriteError(w, http.StatusNotFound, "Budget not found", "")
	case errors.Is(err, ErrBudgetExists):
		rest.WriteCodedError(w, http.StatusConflict, CodeBudgetExists, "Budget already exists for this month")
	default:
		log.Errorf("budget request failed: %v", err)
		http.Error(w, err.Error(), http.StatusBadGateway)
	}
}

func BudgetToDTO(budget WithCategories) BudgetDTO {
	categories := make([]category.BudgetCategoryDTO, 0, len(budget.Categories))
	for _, c := range budget.Categories {
		categories = append(categories, category.BudgetCategoryToDTO(c))
	}
	return BudgetDTO{
		Id:           budget.Id,
		Month:        budget.Month,
		Year:         budget.Year,
		Label:        budget.Period().Label(),
		StableIncome: budget.StableIncome,
		TotalBalance: budget.TotalBalance,
		UserId:       budget.UserId,
		Categories:   categories,
	}
}
