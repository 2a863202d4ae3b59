package overview

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/tally-app/tally/internal/rest"
	"github.com/tally-app/tally/pkg/budget"
	"github.com/tally-app/tally/pkg/ledger"
	"github.com/tally-app/tally/pkg/money"
	"github.com/tally-app/tally/pkg/transaction"
	"github.com/tally-app/tally/pkg/user"
)

type CategoryStatsDTO struct {
	Id           int          `json:"id"`
	Name         string       `json:"name"`
	Emoji        string       `json:"emoji"`
	LimitAmount  money.Amount `json:"limitAmount"`
	Spent        money.Amount `json:"spent"`
	Ratio        float64      `json:"ratio"`
	ClampedRatio float64      `json:"clampedRatio"`
	Tier         ledger.Tier  `json:"tier"`
}

type DashboardDTO struct {
	Budget     budget.BudgetDTO             `json:"budget"`
	Balance    money.Amount                 `json:"balance"`
	Income     money.Amount                 `json:"income"`
	Expenses   money.Amount                 `json:"expenses"`
	Categories []CategoryStatsDTO           `json:"categories"`
	Recent     []transaction.TransactionDTO `json:"recent"`
}

type SectionDTO struct {
	Title        string                       `json:"title"`
	Date         string                       `json:"date"`
	Transactions []transaction.TransactionDTO `json:"transactions"`
}

type OverviewHandler struct {
	overviewService  OverviewService
	sectionsRenderer SectionsRenderer
}

func NewOverviewHandler(overviewService OverviewService, sectionsRenderer SectionsRenderer) *OverviewHandler {
	return &OverviewHandler{overviewService, sectionsRenderer}
}

// GetDashboard godoc
// @Summary Balance, totals, category progress and recent transactions of a month
// @Tags Overview
// @Produce json
// @Param month query int false "Month (1-12)"
// @Param year query int false "Year"
// @Success 200 {object} DashboardDTO
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/overview [get]
// @Security Bearer
func (handler *OverviewHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	month, err := rest.QueryInt(r, "month", 0)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid month", "'month' must be an integer")
		return
	}
	year, err := rest.QueryInt(r, "year", 0)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid year", "'year' must be an integer")
		return
	}

	dashboard, err := handler.overviewService.Dashboard(r.Context(), ledger.YearMonth{Month: month, Year: year})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, dashboardToDTO(dashboard))
}

// GetSections godoc
// @Summary Transactions grouped by day, newest first
// @Tags Overview
// @Produce json,text/csv
// @Param type query string false "expense, income or all"
// @Param category query int false "Category ID"
// @Param take query int false "Maximum number of transactions"
// @Success 200 {array} SectionDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/transactions/sections [get]
// @Security Bearer
func (handler *OverviewHandler) GetSections(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}

	sections, err := handler.overviewService.Sections(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "text/csv") {
		csv, err := handler.sectionsRenderer.RenderSections(sections)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(csv)); err != nil {
			log.Errorf("failed to write csv: %v", err)
		}
		return
	}

	dtos := make([]SectionDTO, 0, len(sections))
	for _, section := range sections {
		dtos = append(dtos, SectionDTO{
			Title:        section.Title,
			Date:         section.Date.Format("2006-01-02"),
			Transactions: transaction.TransactionsToDTOs(section.Items),
		})
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func filterFromQuery(r *http.Request) (ledger.Filter, error) {
	typeFilter, err := transaction.ParseTypeFilter(r.URL.Query().Get("type"))
	if err != nil {
		return ledger.Filter{}, err
	}
	take, err := rest.QueryInt(r, "take", 0)
	if err != nil {
		return ledger.Filter{}, errors.New("'take' must be an integer")
	}
	filter := ledger.Filter{Type: typeFilter, Take: take}
	if value := r.URL.Query().Get("category"); value != "" {
		categoryId, err := strconv.Atoi(value)
		if err != nil {
			return ledger.Filter{}, errors.New("'category' must be an integer")
		}
		filter.CategoryId = &categoryId
	}
	return filter, nil
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrNoSession):
		rest.WriteError(w, http.StatusUnauthorized, "Not signed in", "")
	case errors.Is(err, budget.ErrInvalidBudget):
		rest.WriteError(w, http.StatusBadRequest, "Invalid period", err.Error())
	case errors.Is(err, budget.ErrBudgetNotFound):
		rest.WriteCodedError(w, http.StatusNotFound, transaction.CodeBudgetNotFound, "Budget not found")
	default:
		log.Errorf("overview request failed: %v", err)
		http.Error(w, err.Error(), http.StatusBadGateway)
	}
}

func dashboardToDTO(d Dashboard) DashboardDTO {
	categories := make([]CategoryStatsDTO, 0, len(d.Categories))
	for _, c := range d.Categories {
		categories = append(categories, CategoryStatsDTO{
			Id:           c.Category.Id,
			Name:         c.Category.Name,
			Emoji:        c.Category.Emoji,
			LimitAmount:  c.LimitAmount,
			Spent:        c.Progress.Spent,
			Ratio:        c.Progress.Ratio,
			ClampedRatio: c.Progress.ClampedRatio,
			Tier:         c.Progress.Tier,
		})
	}
	return DashboardDTO{
		Budget:     budget.BudgetToDTO(budget.WithCategories{Budget: d.Budget}),
		Balance:    d.Balance,
		Income:     d.Totals.Income,
		Expenses:   d.Totals.Expenses,
		Categories: categories,
		Recent:     transaction.TransactionsToDTOs(d.Recent),
	}
}
