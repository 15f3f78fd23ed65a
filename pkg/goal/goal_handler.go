package goal

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/finbook/finbook/internal/money"
	"github.com/finbook/finbook/internal/rest"
	"github.com/finbook/finbook/internal/utils"
	"github.com/gorilla/mux"
)

type GoalDTO struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	TargetAmount float64  `json:"target_amount"`
	Section      string   `json:"section,omitempty"`
	MonthFrom    string   `json:"month_from,omitempty"`
	MonthTo      string   `json:"month_to,omitempty"`
	IsDone       bool     `json:"is_done"`
	Actual       *float64 `json:"actual,omitempty"`
	ProgressYTD  *float64 `json:"progress_ytd,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// List serves GET /api/goals with an optional section query parameter.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	goals, err := h.service.List(r.Context(), r.URL.Query().Get("section"))
	if err != nil {
		rest.Error(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	dtos := make([]GoalDTO, 0, len(goals))
	for _, g := range goals {
		dtos = append(dtos, toDTO(g))
	}
	rest.JSON(w, http.StatusOK, map[string]any{"items": dtos, "count": len(dtos)})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	goal, err := decodeGoal(r)
	if err != nil {
		rest.Error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	created, err := h.service.Create(r.Context(), goal)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			rest.Error(w, http.StatusBadRequest, "validation", err.Error())
			return
		}
		rest.Error(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	rest.JSON(w, http.StatusCreated, map[string]string{"id": created.ID})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	goal, err := decodeGoal(r)
	if err != nil {
		rest.Error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	goal.ID = mux.Vars(r)["id"]
	_, err = h.service.Update(r.Context(), goal)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			rest.Error(w, http.StatusNotFound, "not_found", "goal not found")
			return
		}
		if errors.Is(err, ErrValidation) {
			rest.Error(w, http.StatusBadRequest, "validation", err.Error())
			return
		}
		rest.Error(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	rest.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func decodeGoal(r *http.Request) (Goal, error) {
	var dto GoalDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		return Goal{}, err
	}
	target, err := money.ParseFloat(dto.TargetAmount)
	if err != nil {
		return Goal{}, err
	}
	return Goal{
		Name:         dto.Name,
		Type:         Type(dto.Type),
		TargetAmount: target,
		Section:      dto.Section,
		MonthFrom:    utils.MonthKey(dto.MonthFrom),
		MonthTo:      utils.MonthKey(dto.MonthTo),
		IsDone:       dto.IsDone,
	}, nil
}

func toDTO(g Goal) GoalDTO {
	dto := GoalDTO{
		ID:           g.ID,
		Name:         g.Name,
		Type:         string(g.Type),
		TargetAmount: g.TargetAmount.Float(),
		Section:      g.Section,
		MonthFrom:    string(g.MonthFrom),
		MonthTo:      string(g.MonthTo),
		IsDone:       g.IsDone,
	}
	if g.Section != "" {
		switch g.Type {
		case TypeMonthly:
			actual := g.Actual.Float()
			dto.Actual = &actual
		case TypeYearly:
			ytd := g.ProgressYTD.Float()
			dto.ProgressYTD = &ytd
		}
	}
	return dto
}
