package budget

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/finbook/finbook/internal/money"
	"github.com/finbook/finbook/internal/rest"
	"github.com/finbook/finbook/internal/utils"
	"github.com/gorilla/mux"
)

type ItemDTO struct {
	ID            string  `json:"id,omitempty"`
	Section       string  `json:"section"`
	LimitAmount   float64 `json:"limit_amount"`
	PercentTarget int     `json:"percent_target"`
	Spent         float64 `json:"spent"`
}

type MonthPlanDTO struct {
	Month      string    `json:"month"`
	Items      []ItemDTO `json:"items"`
	TotalLimit float64   `json:"total_limit"`
	TotalSpent float64   `json:"total_spent"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetMonthPlan serves GET /api/monthly-budget?month=YYYY-MM.
func (h *Handler) GetMonthPlan(w http.ResponseWriter, r *http.Request) {
	month, err := utils.ParseMonthKey(r.URL.Query().Get("month"))
	if err != nil {
		rest.Error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	plan, err := h.service.GetMonthPlan(r.Context(), month)
	if err != nil {
		rest.Error(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	rest.JSON(w, http.StatusOK, planToDTO(plan))
}

// ReplaceMonthPlan serves PUT /api/budgets/{month}.
func (h *Handler) ReplaceMonthPlan(w http.ResponseWriter, r *http.Request) {
	month, err := utils.ParseMonthKey(mux.Vars(r)["month"])
	if err != nil {
		rest.Error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	var body struct {
		Items []ItemDTO `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		rest.Error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	items := make([]Item, 0, len(body.Items))
	for _, dto := range body.Items {
		limit, err := money.ParseFloat(dto.LimitAmount)
		if err != nil {
			rest.Error(w, http.StatusBadRequest, "validation", "limit_amount must be a non-negative number")
			return
		}
		items = append(items, Item{
			Section:       dto.Section,
			LimitAmount:   limit,
			PercentTarget: dto.PercentTarget,
		})
	}

	plan, err := h.service.ReplaceMonthPlan(r.Context(), month, items)
	if err != nil {
		if errors.Is(err, ErrInvalidSection) {
			rest.Error(w, http.StatusBadRequest, "validation", err.Error())
			return
		}
		rest.Error(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	rest.JSON(w, http.StatusOK, planToDTO(plan))
}

func planToDTO(plan MonthPlan) MonthPlanDTO {
	items := make([]ItemDTO, 0, len(plan.Items))
	for _, item := range plan.Items {
		items = append(items, ItemDTO{
			ID:            item.ID,
			Section:       item.Section,
			LimitAmount:   item.LimitAmount.Float(),
			PercentTarget: item.PercentTarget,
			Spent:         item.Spent.Float(),
		})
	}
	return MonthPlanDTO{
		Month:      string(plan.Month),
		Items:      items,
		TotalLimit: plan.TotalLimit.Float(),
		TotalSpent: plan.TotalSpent.Float(),
	}
}
