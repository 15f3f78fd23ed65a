package importqr

import (
	"encoding/json"
	"net/http"

	"github.com/finbook/finbook/internal/rest"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Preview serves POST /api/import-qr/preview.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		rest.Error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	rows := h.service.Preview(r.Context(), body.Payload)
	if rows == nil {
		rows = []Row{}
	}
	rest.JSON(w, http.StatusOK, map[string]any{"items": rows, "count": len(rows)})
}

// Confirm serves POST /api/import-qr/confirm.
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Items []Row `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		rest.Error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	created, err := h.service.Confirm(r.Context(), body.Items)
	if err != nil {
		rest.Error(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	rest.JSON(w, http.StatusOK, map[string]int{"created": created})
}
