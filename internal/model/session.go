package model

import (
	"time"
)

// Session identifies one shopping-assistant session.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionSnapshot is a consistent read of all session entities, handed to
// the presentation layer after every intent.
type SessionSnapshot struct {
	SessionID    string             `json:"session_id"`
	QueryState   QueryState         `json:"query_state"`
	QueryError   string             `json:"query_error,omitempty"`
	Results      *RecommendationSet `json:"results,omitempty"`
	Cart         CartView           `json:"cart"`
	Favorites    []Product          `json:"favorites"`
	Conversation []ChatMessage      `json:"conversation"`
	Notification *Notification      `json:"notification,omitempty"`
	ChatPending  bool               `json:"chat_pending"`
}

// CreateSessionResponse is returned by POST /sessions.
type CreateSessionResponse struct {
	Session  Session         `json:"session"`
	Snapshot SessionSnapshot `json:"snapshot"`
}

// SubmitQueryRequest is the body for POST /sessions/{id}/query.
type SubmitQueryRequest struct {
	Query string `json:"query"`
}

// SubmitSuggestionRequest is the body for POST /sessions/{id}/suggestion.
type SubmitSuggestionRequest struct {
	Suggestion string `json:"suggestion"`
}

// SendChatRequest is the body for POST /sessions/{id}/chat.
type SendChatRequest struct {
	Message string `json:"message"`
}

// AddCartItemRequest is the body for POST /sessions/{id}/cart/items.
type AddCartItemRequest struct {
	ProductID string `json:"productId"`
}

// SuggestionsResponse lists the configured query suggestion chips.
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}
