package processor

import (
	"context"
	"fmt"

	"focusmap/gateway-service/internal/app/gateway/aggregation"
	"focusmap/gateway-service/internal/app/gateway/repository"
	"focusmap/pkg/logger"
	"focusmap/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// DefaultAuditLimit сколько несоответствий читается за один прогон
const DefaultAuditLimit int64 = 500

// CronScheduler периодически ищет оценки, не совпадающие с категорией рабочего места
type CronScheduler struct {
	cron       *cron.Cron
	ratingRepo repository.RatingRepository
	limit      int64
}

func NewCronScheduler(ratingRepo repository.RatingRepository, limit int64) *CronScheduler {
	if limit <= 0 {
		limit = DefaultAuditLimit
	}

	c := cron.New(cron.WithLogger(cron.PrintfLogger(logger.Logger())))

	return &CronScheduler{
		cron:       c,
		ratingRepo: ratingRepo,
		limit:      limit,
	}
}

// Start регистрирует задачу аудита и сразу выполняет первый прогон
func (s *CronScheduler) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("Starting category audit scheduler")

	_, err := s.cron.AddFunc(schedule, func() {
		if _, err := s.RunAudit(ctx); err != nil {
			logger.Error().Err(err).Msg("Category audit failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid audit schedule %q: %w", schedule, err)
	}

	s.cron.Start()

	if _, err := s.RunAudit(ctx); err != nil {
		logger.Warn().Err(err).Msg("Initial category audit failed")
	}

	return nil
}

// RunAudit выполняет один прогон аудита и возвращает число найденных несоответствий
func (s *CronScheduler) RunAudit(ctx context.Context) (int, error) {
	mismatches, err := s.ratingRepo.FindCategoryMismatches(ctx, s.limit)
	if err != nil {
		return 0, fmt.Errorf("failed to find category mismatches: %w", err)
	}

	for _, m := range mismatches {
		event := logger.Warn().
			Str("rating_id", m.ID.Hex()).
			Str("workspace_id", m.WorkspaceID.Hex()).
			Str("category", string(m.WorkspaceType))
		if err := aggregation.CheckRating(m.WorkspaceType, m.Rating); err != nil {
			event = event.Err(err)
		}
		event.Msg("Rating does not match workspace category")
	}

	metrics.RatingCategoryMismatches.Set(float64(len(mismatches)))
	logger.Info().Int("mismatches", len(mismatches)).Msg("Category audit completed")

	return len(mismatches), nil
}

func (s *CronScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Category audit scheduler stopped")
}

func (s *CronScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}
