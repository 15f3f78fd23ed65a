package ekasa

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/finbook/finbook/internal/rest"
	"github.com/finbook/finbook/internal/utils"
	"github.com/gorilla/mux"
)

type ReceiptItemDTO struct {
	ID         string  `json:"id"`
	ReceiptId  string  `json:"receipt_id"`
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
	VatRate    int     `json:"vat_rate"`
	CategoryId string  `json:"category_id,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ImportReceipt serves POST /api/receipts/import-ekasa.
func (h *Handler) ImportReceipt(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ReceiptId string `json:"receiptId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		rest.Error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	receipt, err := h.service.ImportReceipt(r.Context(), body.ReceiptId)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidOPD):
			rest.Error(w, http.StatusBadRequest, "bad_request", "invalid receiptId")
		case errors.Is(err, ErrReceiptNotFound):
			rest.Error(w, http.StatusNotFound, "ekasa_error", "receipt not found in eKasa")
		case errors.Is(err, ErrDuplicate):
			rest.Error(w, http.StatusConflict, "duplicate", "receipt already imported")
		default:
			rest.Error(w, http.StatusBadGateway, "ekasa_error", err.Error())
		}
		return
	}
	rest.JSON(w, http.StatusCreated, map[string]any{
		"receipt_id":  receipt.ID,
		"tag_id":      receipt.TagId,
		"seller":      receipt.Seller,
		"total_items": len(receipt.Items),
	})
}

// ListItems serves GET /api/receipts/ekasa-items?month=YYYY-MM.
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	month, err := utils.ParseMonthKey(r.URL.Query().Get("month"))
	if err != nil {
		rest.Error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	items, err := h.service.ListItems(r.Context(), month)
	if err != nil {
		rest.Error(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	dtos := make([]ReceiptItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, toItemDTO(item))
	}
	rest.JSON(w, http.StatusOK, map[string]any{"items": dtos, "count": len(dtos)})
}

// CategorizeItem serves PUT /api/receipts/ekasa-items/{id}/category.
func (h *Handler) CategorizeItem(w http.ResponseWriter, r *http.Request) {
	itemId := mux.Vars(r)["id"]
	var body struct {
		CategoryId string `json:"category_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		rest.Error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if err := h.service.CategorizeItem(r.Context(), itemId, body.CategoryId); err != nil {
		if errors.Is(err, ErrNotFound) {
			rest.Error(w, http.StatusNotFound, "not_found", "receipt item not found")
			return
		}
		rest.Error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	rest.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func toItemDTO(item ReceiptItem) ReceiptItemDTO {
	return ReceiptItemDTO{
		ID:         item.ID,
		ReceiptId:  item.ReceiptId,
		Name:       item.Name,
		Quantity:   float64(item.Quantity) / 1000.0,
		UnitPrice:  item.UnitPrice.Float(),
		TotalPrice: item.TotalPrice.Float(),
		VatRate:    item.VatRate,
		CategoryId: item.CategoryId,
	}
}
