package budget

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tally-app/tally/internal/api"
	"github.com/tally-app/tally/pkg/ledger"
	"github.com/tally-app/tally/pkg/money"
	"github.com/tally-app/tally/pkg/user"
)

func setupRepo(t *testing.T, router *mux.Router) *BudgetRepoImpl {
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return NewBudgetRepo(api.NewClient(server.URL, 5*time.Second, user.Token))
}

func TestBudgetRepoImpl_ByMonth(t *testing.T) {
	// given
	router := mux.NewRouter()
	router.HandleFunc("/budgets", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("month") != "3" || r.URL.Query().Get("year") != "2025" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{
			"id": 2, "month": 3, "year": 2025, "stableIncome": "1500", "totalBalance": null, "userId": 1,
			"categories": [{"id": 4, "name": "Food", "emoji": "🍔", "limitAmount": 400}]
		}`))
	}).Methods("GET")
	repo := setupRepo(t, router)

	// when
	budget, err := repo.ByMonth(signedIn(), ledger.YearMonth{Month: 3, Year: 2025})
	_, missingErr := repo.ByMonth(signedIn(), ledger.YearMonth{Month: 4, Year: 2025})

	// then
	require.NoError(t, err)
	assert.Equal(t, 2, budget.Id)
	assert.True(t, money.New(1500).Equal(budget.StableIncome))
	assert.True(t, budget.TotalBalance.IsZero())
	require.Len(t, budget.Categories, 1)
	assert.Equal(t, 2, budget.Categories[0].BudgetId)
	assert.ErrorIs(t, missingErr, ErrBudgetNotFound)
}

func TestBudgetRepoImpl_Current_EmptyBody(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/budgets/current", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")
	repo := setupRepo(t, router)

	_, err := repo.Current(signedIn())

	assert.ErrorIs(t, err, ErrBudgetNotFound)
}

func TestBudgetRepoImpl_Store_Conflict(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/budgets", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"code": "BUDGET_ALREADY_EXISTS", "message": "exists"}`))
	}).Methods("POST")
	repo := setupRepo(t, router)

	_, err := repo.Store(signedIn(), Create{Month: 3, Year: 2025})

	assert.ErrorIs(t, err, ErrBudgetExists)
}
