package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shopwise-ai/assistant-core/internal/middleware"
	"github.com/shopwise-ai/assistant-core/internal/model"
	"github.com/shopwise-ai/assistant-core/internal/service"
	"github.com/shopwise-ai/assistant-core/pkg/logger"
)

// QueryHandler handles recommendation query endpoints.
type QueryHandler struct {
	sessions    *service.SessionStore
	suggestions []string
	logger      *logger.Logger
}

// NewQueryHandler creates a new query handler.
func NewQueryHandler(sessions *service.SessionStore, suggestions []string, log *logger.Logger) *QueryHandler {
	return &QueryHandler{
		sessions:    sessions,
		suggestions: suggestions,
		logger:      log,
	}
}

// Suggestions handles GET /api/v1/suggestions
func (h *QueryHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, &model.SuggestionsResponse{
		Suggestions: h.suggestions,
	})
}

// Submit handles POST /api/v1/sessions/{id}/query
func (h *QueryHandler) Submit(w http.ResponseWriter, r *http.Request) {
	orch, ok := resolveSession(h.sessions, w, r)
	if !ok {
		return
	}

	var req model.SubmitQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := middleware.ValidateQuery(req.Query); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := orch.SubmitQuery(r.Context(), req.Query); err != nil {
		writeIntentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orch.Snapshot())
}

// SubmitSuggestion handles POST /api/v1/sessions/{id}/suggestion
func (h *QueryHandler) SubmitSuggestion(w http.ResponseWriter, r *http.Request) {
	orch, ok := resolveSession(h.sessions, w, r)
	if !ok {
		return
	}

	var req model.SubmitSuggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := middleware.ValidateQuery(req.Suggestion); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := orch.SubmitSuggestion(r.Context(), req.Suggestion); err != nil {
		writeIntentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orch.Snapshot())
}
