package app

import (
	"github.com/finbook/finbook/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// User management
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user", deps.UserHandler.GetAvailableUsers).Methods("GET")
	r.HandleFunc("/api/user/name-availability", deps.UserHandler.IsUsernameAvailable).Methods("GET").Queries("username", "{username}")
	r.HandleFunc("/api/user/{userUid}", deps.UserHandler.DeleteUser).Methods("DELETE")

	// Incomes
	r.HandleFunc("/api/incomes", deps.IncomesHandler.List).Methods("GET")
	r.HandleFunc("/api/incomes", deps.IncomesHandler.Create).Methods("POST")
	r.HandleFunc("/api/incomes/{id}", deps.IncomesHandler.Update).Methods("PUT")
	r.HandleFunc("/api/incomes/{id}", deps.IncomesHandler.Delete).Methods("DELETE")

	// Expenses
	r.HandleFunc("/api/receipts", deps.ReceiptsHandler.List).Methods("GET")
	r.HandleFunc("/api/receipts", deps.ReceiptsHandler.Create).Methods("POST")
	r.HandleFunc("/api/receipts/{id}", deps.ReceiptsHandler.Update).Methods("PUT")
	r.HandleFunc("/api/receipts/{id}", deps.ReceiptsHandler.Delete).Methods("DELETE")

	// Tags
	r.HandleFunc("/api/tags/{type}", deps.TagHandler.ListByType).Methods("GET")
	r.HandleFunc("/api/tags", deps.TagHandler.Create).Methods("POST")
	r.HandleFunc("/api/tags/{id}", deps.TagHandler.Update).Methods("PUT")
	r.HandleFunc("/api/tags/{id}", deps.TagHandler.Delete).Methods("DELETE")

	// Categories
	r.HandleFunc("/api/categories", deps.CategoryHandler.List).Methods("GET")
	r.HandleFunc("/api/categories", deps.CategoryHandler.Create).Methods("POST")
	r.HandleFunc("/api/categories/{id}", deps.CategoryHandler.Update).Methods("PUT")
	r.HandleFunc("/api/categories/{id}", deps.CategoryHandler.Delete).Methods("DELETE")

	// Monthly budgets
	r.HandleFunc("/api/monthly-budget", deps.BudgetHandler.GetMonthPlan).Methods("GET")
	r.HandleFunc("/api/budgets/{month}", deps.BudgetHandler.ReplaceMonthPlan).Methods("PUT")

	// Savings goals
	r.HandleFunc("/api/goals", deps.GoalHandler.List).Methods("GET")
	r.HandleFunc("/api/goals", deps.GoalHandler.Create).Methods("POST")
	r.HandleFunc("/api/goals/{id}", deps.GoalHandler.Update).Methods("PUT")

	// eKasa receipt import
	r.HandleFunc("/api/receipts/import-ekasa", deps.EkasaHandler.ImportReceipt).Methods("POST")
	r.HandleFunc("/api/receipts/ekasa-items", deps.EkasaHandler.ListItems).Methods("GET")
	r.HandleFunc("/api/receipts/ekasa-items/{id}/category", deps.EkasaHandler.CategorizeItem).Methods("PUT")

	// QR import
	r.HandleFunc("/api/import-qr/preview", deps.ImportHandler.Preview).Methods("POST")
	r.HandleFunc("/api/import-qr/confirm", deps.ImportHandler.Confirm).Methods("POST")

	// Month comparison
	r.HandleFunc("/api/comparison", deps.ComparisonHandler.Compare).Methods("GET")

	// Dashboard
	r.HandleFunc("/api/dashboard", deps.DashboardHandler.GetSummary).Methods("GET")

	// CSV export
	r.HandleFunc("/api/export", deps.ExportHandler.ExportMonth).Methods("GET")

	// Google Sheets integration
	r.HandleFunc("/api/integrations/google/auth", deps.GoogleAuth.OAuthLogin).Methods("GET")
	r.HandleFunc("/api/integrations/google/auth", deps.GoogleAuth.OAuthLogout).Methods("DELETE")
	r.HandleFunc("/api/integrations/google/auth/callback", deps.GoogleAuth.OAuthCallback).Methods("GET")
	r.HandleFunc("/api/integrations/google/sheets/push", deps.SheetsHandler.PushMonth).Methods("POST")
}
