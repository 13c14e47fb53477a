package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopwise-ai/assistant-core/internal/model"
	"github.com/shopwise-ai/assistant-core/pkg/logger"
	"github.com/shopwise-ai/assistant-core/pkg/metrics"
)

// SessionStore creates and resolves session orchestrators. Sessions live in
// memory for the process lifetime; there is no persistence or eviction.
type SessionStore struct {
	recommendations *RecommendationService
	chat            *ChatService
	events          ActivityPublisher
	notificationTTL time.Duration
	logger          *logger.Logger

	mu       sync.RWMutex
	sessions map[string]*Orchestrator
}

// NewSessionStore creates a new session store.
func NewSessionStore(
	recs *RecommendationService,
	chat *ChatService,
	events ActivityPublisher,
	notificationTTL time.Duration,
	log *logger.Logger,
) *SessionStore {
	return &SessionStore{
		recommendations: recs,
		chat:            chat,
		events:          events,
		notificationTTL: notificationTTL,
		logger:          log,
		sessions:        make(map[string]*Orchestrator),
	}
}

// Create starts a new session with a greeting-seeded conversation.
func (s *SessionStore) Create(ctx context.Context) *Orchestrator {
	session := model.Session{
		ID:        uuid.Must(uuid.NewV7()).String(),
		CreatedAt: time.Now(),
	}

	orch := NewOrchestrator(session, s.recommendations, s.chat, s.events, s.notificationTTL, s.logger)

	s.mu.Lock()
	s.sessions[session.ID] = orch
	s.mu.Unlock()

	metrics.SessionsTotal.Inc()
	s.logger.Info("session created", zap.String("session_id", session.ID))
	orch.publish(ctx, model.ActivitySessionCreated, nil)

	return orch
}

// Get resolves a session by id.
func (s *SessionStore) Get(sessionID string) (*Orchestrator, error) {
	s.mu.RLock()
	orch, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return orch, nil
}
