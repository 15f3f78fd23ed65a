package export

import (
	"fmt"
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

// ExportMonth serves GET /api/export?month=YYYY-MM. The CSV file is returned
// directly, without the response envelope.
func (h *Handler) ExportMonth(w http.ResponseWriter, r *http.Request) {
	month, err := utils.ParseMonthKey(r.URL.Query().Get("month"))
	if err != nil {
		rest.Error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	content, filename, err := h.service.ExportMonth(r.Context(), month)
	if err != nil {
		rest.Error(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(content))
}
