package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/shopwise-ai/assistant-core/internal/backend"
	"github.com/shopwise-ai/assistant-core/internal/model"
	"github.com/shopwise-ai/assistant-core/pkg/logger"
)

// ChatService turns a user message plus conversation history into an
// assistant reply. The caller appends both turns to the conversation.
type ChatService struct {
	responder ChatResponder
	logger    *logger.Logger
}

// NewChatService creates a new chat service.
func NewChatService(responder ChatResponder, log *logger.Logger) *ChatService {
	return &ChatService{
		responder: responder,
		logger:    log,
	}
}

// Reply validates the message and asks the backend for an assistant turn.
func (s *ChatService) Reply(ctx context.Context, history []model.ChatMessage, message string) (model.ChatMessage, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return model.ChatMessage{}, &backend.ValidationError{Field: "message", Reason: "must not be empty"}
	}

	content, err := s.responder.GetAIResponse(ctx, history, message)
	if err != nil {
		s.logger.Warn("chat reply failed", zap.Error(err))
		return model.ChatMessage{}, err
	}

	return model.ChatMessage{
		Role:    model.RoleAssistant,
		Content: content,
	}, nil
}
