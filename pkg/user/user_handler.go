package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/finbook/finbook/internal/rest"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type UserDTO struct {
	Uid         string `json:"uid"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	current, err := CurrentUser(r.Context())
	if err != nil {
		rest.Error(w, http.StatusForbidden, "no_user", "no user in request")
		return
	}
	rest.JSON(w, http.StatusOK, userToDTO(current))
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var dto UserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.Error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	created, err := h.service.CreateUser(r.Context(), User{Username: dto.Username, DisplayName: dto.DisplayName})
	if err != nil {
		log.Errorf("failed to create user: %v", err)
		rest.Error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	rest.JSON(w, http.StatusCreated, userToDTO(created))
}

func (h *Handler) GetAvailableUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.GetAvailableUsers(r.Context())
	if err != nil {
		rest.Error(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	dtos := make([]UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, userToDTO(u))
	}
	rest.JSON(w, http.StatusOK, dtos)
}

func (h *Handler) IsUsernameAvailable(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	available, err := h.service.IsUsernameAvailable(r.Context(), username)
	if err != nil {
		rest.Error(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	rest.JSON(w, http.StatusOK, map[string]bool{"available": available})
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["userUid"]
	ok, err := h.service.DeleteUser(r.Context(), uid)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			rest.Error(w, http.StatusNotFound, "not_found", "user not found")
			return
		}
		rest.Error(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	if !ok {
		rest.Error(w, http.StatusNotFound, "not_found", "user not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func userToDTO(u User) UserDTO {
	return UserDTO{Uid: u.Uid, Username: u.Username, DisplayName: u.DisplayName}
}
