package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/shopwise-ai/assistant-core/internal/backend"
	"github.com/shopwise-ai/assistant-core/internal/model"
	"github.com/shopwise-ai/assistant-core/pkg/logger"
)

// RecommendationService fetches and normalizes product recommendations. It
// never mutates session entities; the orchestrator applies results.
type RecommendationService struct {
	fetcher RecommendationFetcher
	logger  *logger.Logger
}

// NewRecommendationService creates a new recommendation service.
func NewRecommendationService(fetcher RecommendationFetcher, log *logger.Logger) *RecommendationService {
	return &RecommendationService{
		fetcher: fetcher,
		logger:  log,
	}
}

// Fetch trims and validates the query, then asks the backend for a
// recommendation set. An empty query fails locally and never reaches the
// backend.
func (s *RecommendationService) Fetch(ctx context.Context, query string) (*model.RecommendationSet, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &backend.ValidationError{Field: "query", Reason: "must not be empty"}
	}

	set, err := s.fetcher.GetProductRecommendations(ctx, query)
	if err != nil {
		s.logger.Warn("recommendation fetch failed",
			zap.String("query", query),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("recommendations fetched",
		zap.String("query", query),
		zap.Int("count", len(set.Recommendations)),
	)
	return set, nil
}
