package tag

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/finbook/finbook/internal/rest"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type TagDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Counter int    `json:"counter"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListByType serves GET /api/tags/{type} with type income or expense.
func (h *Handler) ListByType(w http.ResponseWriter, r *http.Request) {
	tagType := Type(mux.Vars(r)["type"])
	tags, err := h.service.List(r.Context(), tagType)
	if err != nil {
		if !tagType.Valid() {
			rest.Error(w, http.StatusBadRequest, "bad_request", "invalid tag type")
			return
		}
		rest.Error(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	dtos := make([]TagDTO, 0, len(tags))
	for _, t := range tags {
		dtos = append(dtos, toDTO(t))
	}
	rest.JSON(w, http.StatusOK, map[string]any{"tags": dtos, "count": len(dtos)})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new tag")
	var dto TagDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.Error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	created, err := h.service.Create(r.Context(), dto.Name, Type(dto.Type))
	if err != nil {
		if errors.Is(err, ErrNameTaken) {
			rest.Error(w, http.StatusConflict, "name_taken", err.Error())
			return
		}
		rest.Error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	rest.JSON(w, http.StatusCreated, toDTO(created))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var dto TagDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.Error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	_, err := h.service.Rename(r.Context(), id, dto.Name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			rest.Error(w, http.StatusNotFound, "not_found", "tag not found")
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
			rest.Error(w, http.StatusNotFound, "not_found", "tag not found")
			return
		}
		rest.Error(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toDTO(t Tag) TagDTO {
	return TagDTO{ID: t.ID, Name: t.Name, Type: string(t.Type), Counter: t.Counter}
}
