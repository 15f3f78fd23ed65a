package app

import (
	"database/sql"

	"github.com/finbook/finbook/internal/config"
	"github.com/finbook/finbook/internal/event_bus"
	"github.com/finbook/finbook/internal/utils"
	"github.com/finbook/finbook/pkg/budget"
	"github.com/finbook/finbook/pkg/category"
	"github.com/finbook/finbook/pkg/comparison"
	"github.com/finbook/finbook/pkg/dashboard"
	"github.com/finbook/finbook/pkg/ekasa"
	"github.com/finbook/finbook/pkg/export"
	"github.com/finbook/finbook/pkg/goal"
	"github.com/finbook/finbook/pkg/importqr"
	"github.com/finbook/finbook/pkg/sheets"
	"github.com/finbook/finbook/pkg/tag"
	"github.com/finbook/finbook/pkg/transaction"
	"github.com/finbook/finbook/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	UserService user.Service
	UserHandler *user.Handler

	TagRepo    tag.Repo
	TagService tag.Service
	TagHandler *tag.Handler

	TransactionRepo    *transaction.RepoImpl
	TransactionService transaction.Service
	IncomesHandler     *transaction.Handler
	ReceiptsHandler    *transaction.Handler

	CategoryRepo    category.Repo
	CategoryService category.Service
	CategoryHandler *category.Handler

	BudgetRepo    budget.Repo
	BudgetService budget.Service
	BudgetHandler *budget.Handler

	GoalRepo    goal.Repo
	GoalService goal.Service
	GoalHandler *goal.Handler

	EkasaClient  ekasa.Client
	ReceiptRepo  ekasa.Repo
	EkasaService ekasa.Service
	EkasaHandler *ekasa.Handler

	ImportService importqr.Service
	ImportHandler *importqr.Handler

	ComparisonService comparison.Service
	ComparisonHandler *comparison.Handler

	DashboardRepo    dashboard.Repo
	DashboardService dashboard.Service
	DashboardHandler *dashboard.Handler

	ExportService export.Service
	ExportHandler *export.Handler

	GoogleAuth    *sheets.GoogleAuth
	SheetsService sheets.Service
	SheetsHandler *sheets.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.TagRepo = tag.NewTagRepo(db)
	deps.TagService = tag.NewTagService(deps.TagRepo, deps.EventBus)
	deps.TagHandler = tag.NewHandler(deps.TagService)

	deps.TransactionRepo = transaction.NewTransactionRepo(db)
	deps.TransactionService = transaction.NewTransactionService(deps.TransactionRepo, deps.EventBus)
	deps.IncomesHandler = transaction.NewHandler(deps.TransactionService, transaction.KindIncome, "incomes", deps.Clock)
	deps.ReceiptsHandler = transaction.NewHandler(deps.TransactionService, transaction.KindExpense, "receipts", deps.Clock)

	deps.CategoryRepo = category.NewCategoryRepo(db)
	deps.CategoryService = category.NewCategoryService(deps.CategoryRepo, deps.EventBus)
	deps.CategoryHandler = category.NewHandler(deps.CategoryService)

	deps.BudgetRepo = budget.NewBudgetRepo(db)
	deps.BudgetService = budget.NewBudgetService(deps.BudgetRepo, deps.TransactionRepo)
	deps.BudgetHandler = budget.NewHandler(deps.BudgetService)

	deps.GoalRepo = goal.NewGoalRepo(db)
	deps.GoalService = goal.NewGoalService(deps.GoalRepo, deps.TransactionRepo, deps.Clock)
	deps.GoalHandler = goal.NewHandler(deps.GoalService)

	deps.EkasaClient = ekasa.NewClient(cfg.Ekasa.BaseURL)
	deps.ReceiptRepo = ekasa.NewReceiptRepo(db)
	deps.EkasaService = ekasa.NewEkasaService(deps.EkasaClient, deps.ReceiptRepo, deps.TagService, deps.EventBus, deps.Clock)
	deps.EkasaHandler = ekasa.NewHandler(deps.EkasaService)

	deps.ImportService = importqr.NewImportService(deps.TransactionService, deps.Clock)
	deps.ImportHandler = importqr.NewHandler(deps.ImportService)

	deps.ComparisonService = comparison.NewComparisonService(deps.TransactionRepo, deps.Clock)
	deps.ComparisonHandler = comparison.NewHandler(deps.ComparisonService)

	deps.DashboardRepo = dashboard.NewDashboardRepo(db)
	deps.DashboardService = dashboard.NewDashboardService(deps.TransactionRepo, deps.DashboardRepo, deps.Clock)
	deps.DashboardHandler = dashboard.NewHandler(deps.DashboardService)

	deps.ExportService = export.NewExportService(deps.TransactionService, deps.TagService)
	deps.ExportHandler = export.NewHandler(deps.ExportService)

	deps.GoogleAuth = sheets.NewGoogleAuth(db, cfg)
	deps.SheetsService = sheets.NewSheetsService(deps.GoogleAuth, deps.DashboardService, cfg.Google.SpreadsheetId)
	deps.SheetsHandler = sheets.NewHandler(deps.SheetsService)

	return deps
}
