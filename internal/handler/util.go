package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopwise-ai/assistant-core/internal/backend"
	"github.com/shopwise-ai/assistant-core/internal/service"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}

// writeIntentError maps orchestrator errors onto HTTP statuses.
func writeIntentError(w http.ResponseWriter, err error) {
	switch {
	case backend.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrQueryBusy), errors.Is(err, service.ErrChatBusy):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrProductNotFound), errors.Is(err, service.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
