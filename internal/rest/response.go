package rest

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// ErrorDTO is the error half of the API envelope.
type ErrorDTO struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type envelope struct {
	Data  any       `json:"data"`
	Error *ErrorDTO `json:"error"`
}

// JSON writes a successful envelope response: {"data": ..., "error": null}.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Data: data}); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}

// Error writes an error envelope response: {"data": null, "error": {...}}.
func Error(w http.ResponseWriter, status int, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Error: &ErrorDTO{Code: code, Message: message}}); err != nil {
		log.Errorf("failed to encode error response: %v", err)
	}
}
