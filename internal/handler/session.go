package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shopwise-ai/assistant-core/internal/middleware"
	"github.com/shopwise-ai/assistant-core/internal/model"
	"github.com/shopwise-ai/assistant-core/internal/service"
	"github.com/shopwise-ai/assistant-core/pkg/logger"
)

// SessionHandler handles session lifecycle endpoints.
type SessionHandler struct {
	sessions *service.SessionStore
	logger   *logger.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(sessions *service.SessionStore, log *logger.Logger) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		logger:   log,
	}
}

// resolveSession parses the session id route param and looks up the
// orchestrator, writing the error response itself on failure.
func resolveSession(sessions *service.SessionStore, w http.ResponseWriter, r *http.Request) (*service.Orchestrator, bool) {
	sessionID := chi.URLParam(r, "id")
	if err := middleware.ValidateSessionID(sessionID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	orch, err := sessions.Get(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	return orch, true
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	orch := h.sessions.Create(r.Context())

	writeJSON(w, http.StatusCreated, &model.CreateSessionResponse{
		Session:  orch.Session(),
		Snapshot: orch.Snapshot(),
	})
}

// Get handles GET /api/v1/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	orch, ok := resolveSession(h.sessions, w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, orch.Snapshot())
}

// DismissNotification handles POST /api/v1/sessions/{id}/notifications/dismiss
func (h *SessionHandler) DismissNotification(w http.ResponseWriter, r *http.Request) {
	orch, ok := resolveSession(h.sessions, w, r)
	if !ok {
		return
	}
	orch.DismissNotification()
	writeJSON(w, http.StatusOK, orch.Snapshot())
}
