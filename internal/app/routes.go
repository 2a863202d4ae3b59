package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// User
	r.HandleFunc("/api/signup", deps.UserHandler.SignUp).Methods("POST")
	r.HandleFunc("/api/signin", deps.UserHandler.SignIn).Methods("POST")
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")

	// Budgets
	r.HandleFunc("/api/budgets/current", deps.BudgetHandler.Current).Methods("GET")
	r.HandleFunc("/api/budgets/navigate", deps.BudgetHandler.Navigate).Methods("GET")
	r.HandleFunc("/api/budgets", deps.BudgetHandler.ByMonth).Methods("GET")
	r.HandleFunc("/api/budgets", deps.BudgetHandler.Register).Methods("POST")

	// Categories
	r.HandleFunc("/api/categories", deps.CategoryHandler.List).Methods("GET")
	r.HandleFunc("/api/categories", deps.CategoryHandler.Create).Methods("POST")
	r.HandleFunc("/api/budgets/{budgetId:[0-9]+}/categories", deps.CategoryHandler.ListByBudget).Methods("GET")
	r.HandleFunc("/api/budgets/{budgetId:[0-9]+}/categories", deps.CategoryHandler.Attach).Methods("POST")

	// Transactions
	r.HandleFunc("/api/transactions/sections", deps.OverviewHandler.GetSections).Methods("GET")
	r.HandleFunc("/api/transactions", deps.TransactionHandler.List).Methods("GET")
	r.HandleFunc("/api/transactions", deps.TransactionHandler.Create).Methods("POST")
	r.HandleFunc("/api/budgets/{budgetId:[0-9]+}/transactions", deps.TransactionHandler.ListByBudget).Methods("GET")

	// Overview
	r.HandleFunc("/api/overview", deps.OverviewHandler.GetDashboard).Methods("GET")
}
