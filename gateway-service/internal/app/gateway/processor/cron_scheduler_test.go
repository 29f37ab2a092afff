package processor

import (
	"context"
	"errors"
	"testing"

	"focusmap/gateway-service/internal/app/gateway/entity"
	"focusmap/gateway-service/internal/app/gateway/repository/mocks"
	"focusmap/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func score(v float64) *float64 {
	return &v
}

func mismatch(category entity.WorkspaceType, categories entity.RatingCategories) entity.RatingMismatch {
	return entity.RatingMismatch{
		Rating: entity.Rating{
			ID:          primitive.NewObjectID(),
			WorkspaceID: primitive.NewObjectID(),
			Categories:  categories,
		},
		WorkspaceType: category,
	}
}

// ===================== NewCronScheduler Tests =====================

func TestNewCronScheduler(t *testing.T) {
	ratingRepo := new(mocks.MockRatingRepository)

	scheduler := NewCronScheduler(ratingRepo, 0)

	assert.NotNil(t, scheduler.cron)
	assert.Equal(t, DefaultAuditLimit, scheduler.limit)
}

// ===================== Start Tests =====================

func TestCronScheduler_Start_Success(t *testing.T) {
	ratingRepo := new(mocks.MockRatingRepository)
	scheduler := NewCronScheduler(ratingRepo, 100)

	ratingRepo.On("FindCategoryMismatches", mock.Anything, int64(100)).Return([]entity.RatingMismatch{}, nil)

	err := scheduler.Start(context.Background(), "@hourly")

	assert.NoError(t, err)
	assert.Len(t, scheduler.GetEntries(), 1)

	scheduler.Stop()
	ratingRepo.AssertExpectations(t)
}

func TestCronScheduler_Start_InvalidSchedule(t *testing.T) {
	ratingRepo := new(mocks.MockRatingRepository)
	scheduler := NewCronScheduler(ratingRepo, 100)

	err := scheduler.Start(context.Background(), "every now and then")

	assert.Error(t, err)
	ratingRepo.AssertNotCalled(t, "FindCategoryMismatches", mock.Anything, mock.Anything)
}

func TestCronScheduler_Start_InitialAuditError_ContinuesWork(t *testing.T) {
	ratingRepo := new(mocks.MockRatingRepository)
	scheduler := NewCronScheduler(ratingRepo, 100)

	ratingRepo.On("FindCategoryMismatches", mock.Anything, int64(100)).Return(nil, errors.New("mongo unavailable"))

	err := scheduler.Start(context.Background(), "*/5 * * * *")

	assert.NoError(t, err)
	assert.Len(t, scheduler.GetEntries(), 1)

	scheduler.Stop()
}

// ===================== RunAudit Tests =====================

func TestCronScheduler_RunAudit_SetsGauge(t *testing.T) {
	ratingRepo := new(mocks.MockRatingRepository)
	scheduler := NewCronScheduler(ratingRepo, 10)

	ratingRepo.On("FindCategoryMismatches", mock.Anything, int64(10)).Return([]entity.RatingMismatch{
		mismatch(entity.WorkspaceTypeCafe, entity.RatingCategories{Wifi: 3, Resources: score(4)}),
		mismatch(entity.WorkspaceTypeLibrary, entity.RatingCategories{Wifi: 3, Taste: score(5)}),
	}, nil)

	count, err := scheduler.RunAudit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.RatingCategoryMismatches))
}

func TestCronScheduler_RunAudit_Error(t *testing.T) {
	ratingRepo := new(mocks.MockRatingRepository)
	scheduler := NewCronScheduler(ratingRepo, 10)

	ratingRepo.On("FindCategoryMismatches", mock.Anything, int64(10)).Return(nil, errors.New("timeout"))

	count, err := scheduler.RunAudit(context.Background())

	assert.Error(t, err)
	assert.Zero(t, count)
}
