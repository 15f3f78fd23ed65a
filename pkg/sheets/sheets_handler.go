package sheets

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/finbook/finbook/internal/rest"
	"github.com/finbook/finbook/internal/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// PushMonth serves POST /api/integrations/google/sheets/push.
func (h *Handler) PushMonth(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Month string `json:"month"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		rest.Error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	month, err := utils.ParseMonthKey(body.Month)
	if err != nil {
		rest.Error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	updatedRange, err := h.service.PushMonth(r.Context(), month)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			rest.Error(w, http.StatusUnauthorized, "unauthenticated", err.Error())
			return
		}
		rest.Error(w, http.StatusBadGateway, "sheets_error", err.Error())
		return
	}
	rest.JSON(w, http.StatusOK, map[string]string{"updatedRange": updatedRange})
}
