package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shopwise-ai/assistant-core/internal/middleware"
	"github.com/shopwise-ai/assistant-core/internal/model"
	"github.com/shopwise-ai/assistant-core/internal/service"
	"github.com/shopwise-ai/assistant-core/pkg/logger"
)

// ChatHandler handles chat endpoints.
type ChatHandler struct {
	sessions *service.SessionStore
	logger   *logger.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(sessions *service.SessionStore, log *logger.Logger) *ChatHandler {
	return &ChatHandler{
		sessions: sessions,
		logger:   log,
	}
}

// Send handles POST /api/v1/sessions/{id}/chat
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	orch, ok := resolveSession(h.sessions, w, r)
	if !ok {
		return
	}

	var req model.SendChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := middleware.ValidateChatMessage(req.Message); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := orch.SendChatMessage(r.Context(), req.Message); err != nil {
		writeIntentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orch.Snapshot())
}
