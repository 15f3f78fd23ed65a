package category

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/finbook/finbook/internal/rest"
	"github.com/gorilla/mux"
)

type CategoryDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsPinned bool   `json:"is_pinned"`
	Count    int    `json:"count"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.List(r.Context())
	if err != nil {
		rest.Error(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	dtos := make([]CategoryDTO, 0, len(categories))
	for _, c := range categories {
		dtos = append(dtos, toDTO(c))
	}
	rest.JSON(w, http.StatusOK, map[string]any{"categories": dtos, "count": len(dtos)})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.Error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	created, err := h.service.Create(r.Context(), Category{Name: dto.Name, IsPinned: dto.IsPinned})
	if err != nil {
		rest.Error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	rest.JSON(w, http.StatusCreated, toDTO(created))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var dto CategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.Error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	_, err := h.service.Update(r.Context(), Category{ID: id, Name: dto.Name, IsPinned: dto.IsPinned})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			rest.Error(w, http.StatusNotFound, "not_found", "category not found")
			return
		}
		rest.Error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	rest.JSON(w, http.StatusOK, map[string]string{"id": id})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	_, err := h.service.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			rest.Error(w, http.StatusNotFound, "not_found", "category not found")
			return
		}
		rest.Error(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toDTO(c Category) CategoryDTO {
	return CategoryDTO{ID: c.ID, Name: c.Name, IsPinned: c.IsPinned, Count: c.Count}
}
