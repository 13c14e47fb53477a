package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shopwise-ai/assistant-core/internal/middleware"
	"github.com/shopwise-ai/assistant-core/internal/model"
	"github.com/shopwise-ai/assistant-core/internal/service"
	"github.com/shopwise-ai/assistant-core/pkg/logger"
)

// CartHandler handles cart and favorites endpoints.
type CartHandler struct {
	sessions *service.SessionStore
	logger   *logger.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(sessions *service.SessionStore, log *logger.Logger) *CartHandler {
	return &CartHandler{
		sessions: sessions,
		logger:   log,
	}
}

// AddItem handles POST /api/v1/sessions/{id}/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	orch, ok := resolveSession(h.sessions, w, r)
	if !ok {
		return
	}

	var req model.AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := middleware.ValidateProductID(req.ProductID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := orch.AddToCart(r.Context(), req.ProductID); err != nil {
		writeIntentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orch.Snapshot())
}

// RemoveItem handles DELETE /api/v1/sessions/{id}/cart/items/{productId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	orch, ok := resolveSession(h.sessions, w, r)
	if !ok {
		return
	}

	productID := chi.URLParam(r, "productId")
	if err := middleware.ValidateProductID(productID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := orch.RemoveFromCart(r.Context(), productID); err != nil {
		writeIntentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orch.Snapshot())
}

// ToggleFavorite handles POST /api/v1/sessions/{id}/favorites/{productId}
func (h *CartHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	orch, ok := resolveSession(h.sessions, w, r)
	if !ok {
		return
	}

	productID := chi.URLParam(r, "productId")
	if err := middleware.ValidateProductID(productID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := orch.ToggleFavorite(r.Context(), productID); err != nil {
		writeIntentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orch.Snapshot())
}
