package dashboard

import (
	"net/http"

	"github.com/finbook/finbook/internal/rest"
	"github.com/finbook/finbook/internal/utils"
)

type DonutSliceDTO struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

type SummaryDTO struct {
	Month          string          `json:"month"`
	TotalIncomes   float64         `json:"total_inc"`
	TotalExpenses  float64         `json:"total_exp"`
	Balance        float64         `json:"balance"`
	Donut          []DonutSliceDTO `json:"donut"`
	Months         []string        `json:"months"`
	SeriesIncomes  []float64       `json:"series_inc"`
	SeriesExpenses []float64       `json:"series_exp"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetSummary serves GET /api/dashboard?month=YYYY-MM. The month defaults to
// the current one.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	var month utils.MonthKey
	if raw := r.URL.Query().Get("month"); raw != "" {
		parsed, err := utils.ParseMonthKey(raw)
		if err != nil {
			rest.Error(w, http.StatusBadRequest, "bad_request", err.Error())
			return
		}
		month = parsed
	}
	summary, err := h.service.GetSummary(r.Context(), month)
	if err != nil {
		rest.Error(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	rest.JSON(w, http.StatusOK, toDTO(summary))
}

func toDTO(summary Summary) SummaryDTO {
	donut := make([]DonutSliceDTO, 0, len(summary.Donut))
	for _, slice := range summary.Donut {
		donut = append(donut, DonutSliceDTO{
			Category:   slice.Category,
			Amount:     slice.Amount.Float(),
			Percentage: slice.Percentage,
		})
	}
	months := make([]string, 0, len(summary.Months))
	for _, month := range summary.Months {
		months = append(months, string(month))
	}
	incomes := make([]float64, 0, len(summary.SeriesIncomes))
	for _, amount := range summary.SeriesIncomes {
		incomes = append(incomes, amount.Float())
	}
	expenses := make([]float64, 0, len(summary.SeriesExpenses))
	for _, amount := range summary.SeriesExpenses {
		expenses = append(expenses, amount.Float())
	}
	return SummaryDTO{
		Month:          string(summary.Month),
		TotalIncomes:   summary.TotalIncomes.Float(),
		TotalExpenses:  summary.TotalExpenses.Float(),
		Balance:        summary.Balance.Float(),
		Donut:          donut,
		Months:         months,
		SeriesIncomes:  incomes,
		SeriesExpenses: expenses,
	}
}
