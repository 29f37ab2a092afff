package service

import (
	"context"
	"errors"
	"fmt"

	"focusmap/gateway-service/internal/app/gateway/aggregation"
	"focusmap/gateway-service/internal/app/gateway/entity"
	"focusmap/gateway-service/internal/app/gateway/repository"
	"focusmap/pkg/logger"
	"focusmap/pkg/metrics"
)

// RatingService считает средние оценки рабочего места
// Категория всегда берется из хранилища, подсказка клиента только сверяется
type RatingService struct {
	workspaceRepo repository.WorkspaceRepository
	ratingRepo    repository.RatingRepository
}

// NewRatingService создает новый сервис оценок с внедрением зависимостей
func NewRatingService(
	workspaceRepo repository.WorkspaceRepository,
	ratingRepo repository.RatingRepository,
) *RatingService {
	return &RatingService{
		workspaceRepo: workspaceRepo,
		ratingRepo:    ratingRepo,
	}
}

// CalculateAverage возвращает средние оценки рабочего места.
// Отсутствие рабочего места - ErrWorkspaceNotFound, отсутствие оценок - нулевой результат.
func (s *RatingService) CalculateAverage(ctx context.Context, workspaceID string, hint entity.WorkspaceType) (*entity.AverageRatingResult, error) {
	workspace, err := s.workspaceRepo.GetByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, repository.ErrWorkspaceNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrWorkspaceNotFound, workspaceID)
		}
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	if hint != "" && hint != workspace.Type {
		logger.Debug().
			Str("workspace_id", workspaceID).
			Str("hint", string(hint)).
			Str("category", string(workspace.Type)).
			Msg("Category hint does not match stored category, using stored one")
	}

	ratings, err := s.ratingRepo.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ratings: %w", err)
	}

	for _, rating := range ratings {
		if err := aggregation.CheckRating(workspace.Type, rating); err != nil {
			metrics.RatingValidationMismatches.WithLabelValues(string(workspace.Type)).Inc()
			logger.Warn().
				Err(err).
				Str("workspace_id", workspaceID).
				Str("rating_id", rating.ID.Hex()).
				Msg("Rating does not match workspace category")
		}
	}

	result := aggregation.Compute(workspace.Type, ratings)

	metrics.RatingAggregations.WithLabelValues(string(workspace.Type)).Inc()
	metrics.RatingsPerAggregation.Observe(float64(len(ratings)))

	return &result, nil
}
