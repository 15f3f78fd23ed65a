package transaction

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/finbook/finbook/internal/money"
	"github.com/finbook/finbook/internal/rest"
	"github.com/finbook/finbook/internal/utils"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type TransactionDTO struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	TagId       string  `json:"tag_id,omitempty"`
	Section     string  `json:"section,omitempty"`
	Source      string  `json:"source,omitempty"`
}

// Handler serves one transaction kind. The same handler type backs both
// /api/incomes and /api/receipts.
type Handler struct {
	service Service
	kind    Kind
	listKey string
	clock   utils.Clock
}

func NewHandler(service Service, kind Kind, listKey string, clock utils.Clock) *Handler {
	return &Handler{service: service, kind: kind, listKey: listKey, clock: clock}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	month, err := h.monthParam(r)
	if err != nil {
		rest.Error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	sortBy := r.URL.Query().Get("sort")
	order := r.URL.Query().Get("order")

	listing, err := h.service.ListMonth(r.Context(), h.kind, month, sortBy, order)
	if err != nil {
		rest.Error(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	dtos := make([]TransactionDTO, 0, len(listing.Rows))
	for _, row := range listing.Rows {
		dtos = append(dtos, toDTO(row))
	}
	rest.JSON(w, http.StatusOK, map[string]any{
		h.listKey:      dtos,
		"total_amount": listing.Total.Float(),
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debugf("Creating new %s", h.kind)
	var dto TransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.Error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	tx, err := fromDTO(dto, h.kind)
	if err != nil {
		rest.Error(w, http.StatusBadRequest, "validation", err.Error())
		return
	}

	created, err := h.service.Create(r.Context(), tx)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			rest.Error(w, http.StatusBadRequest, "validation", err.Error())
			return
		}
		rest.Error(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	rest.JSON(w, http.StatusCreated, toDTO(created))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var dto TransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.Error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if dto.ID != "" && dto.ID != id {
		rest.Error(w, http.StatusBadRequest, "bad_request", "id in body does not match path")
		return
	}
	tx, err := fromDTO(dto, h.kind)
	if err != nil {
		rest.Error(w, http.StatusBadRequest, "validation", err.Error())
		return
	}
	tx.ID = id

	// The month bound is only enforced when the edit view supplies it.
	var month utils.MonthKey
	if m := r.URL.Query().Get("month"); m != "" {
		month, err = utils.ParseMonthKey(m)
		if err != nil {
			rest.Error(w, http.StatusBadRequest, "bad_request", err.Error())
			return
		}
	}

	updated, err := h.service.Update(r.Context(), tx, month)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			rest.Error(w, http.StatusBadRequest, "validation", err.Error())
		case errors.Is(err, ErrNotFound):
			rest.Error(w, http.StatusNotFound, "not_found", "transaction not found")
		default:
			rest.Error(w, http.StatusInternalServerError, "internal", err.Error())
		}
		return
	}
	rest.JSON(w, http.StatusOK, toDTO(updated))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	_, err := h.service.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			rest.Error(w, http.StatusNotFound, "not_found", "transaction not found")
			return
		}
		rest.Error(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) monthParam(r *http.Request) (utils.MonthKey, error) {
	m := r.URL.Query().Get("month")
	if m == "" {
		return utils.MonthKeyOf(h.clock.Now()), nil
	}
	return utils.ParseMonthKey(m)
}

func toDTO(tx Transaction) TransactionDTO {
	return TransactionDTO{
		ID:          tx.ID,
		Date:        tx.Date.Format(dateFormat),
		Description: tx.Description,
		Amount:      tx.Amount.Float(),
		TagId:       tx.TagId,
		Section:     tx.Section,
		Source:      tx.Source,
	}
}

func fromDTO(dto TransactionDTO, kind Kind) (Transaction, error) {
	date, err := time.Parse(dateFormat, dto.Date)
	if err != nil {
		return Transaction{}, errors.New("invalid date format, expected YYYY-MM-DD")
	}
	amount, err := money.ParseFloat(dto.Amount)
	if err != nil {
		return Transaction{}, errors.New("amount must be a non-negative number")
	}
	return Transaction{
		ID:          dto.ID,
		Kind:        kind,
		Date:        date,
		Description: dto.Description,
		Amount:      amount,
		TagId:       dto.TagId,
		Section:     dto.Section,
		Source:      dto.Source,
	}, nil
}
