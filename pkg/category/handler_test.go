package category

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandler(t *testing.T) (*mux.Router, func()) {
	service, _, teardown := setup(t)
	handler := NewHandler(service)
	router := mux.NewRouter()
	router.HandleFunc("/api/categories", handler.List).Methods("GET")
	router.HandleFunc("/api/categories", handler.Create).Methods("POST")
	router.HandleFunc("/api/budgets/{budgetId}/categories", handler.ListByBudget).Methods("GET")
	router.HandleFunc("/api/budgets/{budgetId}/categories", handler.Attach).Methods("POST")
	return router, teardown
}

func serve(router *mux.Router, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req.WithContext(signedIn()))
	return w
}

func TestHandler_CreateAndAttach(t *testing.T) {
	router, teardown := setupHandler(t)
	defer teardown()

	// given
	repoStub.AddBudget(2)

	// when
	created := serve(router, http.MethodPost, "/api/categories", `{"name": "Food", "emoji": "🍔"}`)
	attached := serve(router, http.MethodPost, "/api/budgets/2/categories", `{"categoryId": 1, "limitAmount": 400}`)
	listed := serve(router, http.MethodGet, "/api/budgets/2/categories", "")

	// then
	require.Equal(t, http.StatusCreated, created.Code)
	require.Equal(t, http.StatusNoContent, attached.Code)
	require.Equal(t, http.StatusOK, listed.Code)
	var dtos []BudgetCategoryDTO
	require.NoError(t, json.NewDecoder(listed.Body).Decode(&dtos))
	require.Len(t, dtos, 1)
	assert.Equal(t, "🍔", dtos[0].Emoji)
	assert.Equal(t, "400", dtos[0].LimitAmount.String())
}

func TestHandler_Errors(t *testing.T) {
	router, teardown := setupHandler(t)
	defer teardown()

	repoStub.AddBudget(2)

	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodPost, "/api/categories", `{"name": ""}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodPost, "/api/budgets/2/categories", `{"categoryId": 1, "limitAmount": -5}`).Code)
	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodPost, "/api/budgets/2/categories", `{"categoryId": 7, "limitAmount": 5}`).Code)
	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/api/budgets/3/categories", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodGet, "/api/budgets/abc/categories", "").Code)
}

func TestHandler_AttachMalformedLimit(t *testing.T) {
	router, teardown := setupHandler(t)
	defer teardown()

	// given
	repoStub.AddBudget(2)
	created := serve(router, http.MethodPost, "/api/categories", `{"name": "Food"}`)
	require.Equal(t, http.StatusCreated, created.Code)

	// when
	comma := serve(router, http.MethodPost, "/api/budgets/2/categories", `{"categoryId": 1, "limitAmount": "1,500"}`)
	garbage := serve(router, http.MethodPost, "/api/budgets/2/categories", `{"categoryId": 1, "limitAmount": "abc"}`)
	listed := serve(router, http.MethodGet, "/api/budgets/2/categories", "")

	// then
	assert.Equal(t, http.StatusBadRequest, comma.Code)
	assert.Equal(t, http.StatusBadRequest, garbage.Code)
	var dtos []BudgetCategoryDTO
	require.NoError(t, json.NewDecoder(listed.Body).Decode(&dtos))
	assert.Empty(t, dtos)
}
