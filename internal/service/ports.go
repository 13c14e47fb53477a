// Package service provides the shopping assistant's orchestration core:
// the per-session state machine and the managers it delegates to.
package service

import (
	"context"
	"errors"

	"github.com/shopwise-ai/assistant-core/internal/model"
)

// Guard and lookup failures surfaced by the orchestrator.
var (
	// ErrQueryBusy rejects a query submitted while one is in flight.
	ErrQueryBusy = errors.New("a product query is already in flight")

	// ErrChatBusy rejects a chat message sent while one is in flight.
	ErrChatBusy = errors.New("a chat request is already in flight")

	// ErrProductNotFound reports a product id unknown to the session.
	ErrProductNotFound = errors.New("product not found")

	// ErrSessionNotFound reports an unknown session id.
	ErrSessionNotFound = errors.New("session not found")
)

// RecommendationFetcher is the port to the recommendation backend.
type RecommendationFetcher interface {
	GetProductRecommendations(ctx context.Context, query string) (*model.RecommendationSet, error)
}

// ChatResponder is the port to the conversational backend.
type ChatResponder interface {
	GetAIResponse(ctx context.Context, history []model.ChatMessage, message string) (string, error)
}

// ActivityPublisher receives advisory session activity events. Implemented
// by the NATS stream manager; the orchestrator tolerates a nil publisher.
type ActivityPublisher interface {
	PublishActivity(ctx context.Context, event *model.ActivityEvent) error
}
