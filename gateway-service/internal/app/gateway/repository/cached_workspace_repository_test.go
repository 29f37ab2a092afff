package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"focusmap/gateway-service/internal/app/gateway/entity"
	"focusmap/gateway-service/internal/app/gateway/repository/mocks"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CachedWorkspaceRepositoryTestSuite тестовый suite для кеша категорий
type CachedWorkspaceRepositoryTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	client    *redis.Client
	next      *mocks.MockWorkspaceRepository
	repo      *CachedWorkspaceRepository
}

func TestCachedWorkspaceRepositorySuite(t *testing.T) {
	suite.Run(t, new(CachedWorkspaceRepositoryTestSuite))
}

func (s *CachedWorkspaceRepositoryTestSuite) SetupSuite() {
	var err error
	s.miniRedis, err = miniredis.Run()
	require.NoError(s.T(), err)

	s.client = redis.NewClient(&redis.Options{
		Addr: s.miniRedis.Addr(),
	})
}

func (s *CachedWorkspaceRepositoryTestSuite) SetupTest() {
	s.miniRedis.FlushAll()
	s.next = new(mocks.MockWorkspaceRepository)
	s.repo = NewCachedWorkspaceRepository(s.next, s.client, time.Hour)
}

func (s *CachedWorkspaceRepositoryTestSuite) TearDownSuite() {
	s.client.Close()
	s.miniRedis.Close()
}

// ===================== GetByID Tests =====================

func (s *CachedWorkspaceRepositoryTestSuite) TestGetByID_MissLoadsAndCaches() {
	ctx := context.Background()
	id := primitive.NewObjectID()
	workspace := &entity.Workspace{ID: id, Name: "Kahve Durağı", Type: entity.WorkspaceTypeCafe}

	s.next.On("GetByID", ctx, id.Hex()).Return(workspace, nil).Once()

	// Act
	result, err := s.repo.GetByID(ctx, id.Hex())

	// Assert
	s.NoError(err)
	s.Equal(workspace, result)

	cached, err := s.miniRedis.Get("workspace:category:" + id.Hex())
	s.NoError(err)
	s.Equal("cafe", cached)
	s.Equal(time.Hour, s.miniRedis.TTL("workspace:category:"+id.Hex()))
	s.next.AssertExpectations(s.T())
}

func (s *CachedWorkspaceRepositoryTestSuite) TestGetByID_HitSkipsStore() {
	ctx := context.Background()
	id := primitive.NewObjectID()
	s.Require().NoError(s.miniRedis.Set("workspace:category:"+id.Hex(), "library"))

	// Act
	result, err := s.repo.GetByID(ctx, id.Hex())

	// Assert
	s.NoError(err)
	s.Equal(id, result.ID)
	s.Equal(entity.WorkspaceTypeLibrary, result.Type)
	s.next.AssertNotCalled(s.T(), "GetByID", ctx, id.Hex())
}

func (s *CachedWorkspaceRepositoryTestSuite) TestGetByID_NotFoundIsNotCached() {
	ctx := context.Background()
	id := primitive.NewObjectID().Hex()

	s.next.On("GetByID", ctx, id).Return(nil, ErrWorkspaceNotFound).Twice()

	_, err := s.repo.GetByID(ctx, id)
	s.ErrorIs(err, ErrWorkspaceNotFound)

	_, err = s.repo.GetByID(ctx, id)
	s.ErrorIs(err, ErrWorkspaceNotFound)

	s.False(s.miniRedis.Exists("workspace:category:" + id))
	s.next.AssertExpectations(s.T())
}

func (s *CachedWorkspaceRepositoryTestSuite) TestGetByID_CorruptedValueFallsBack() {
	ctx := context.Background()
	id := primitive.NewObjectID()
	s.Require().NoError(s.miniRedis.Set("workspace:category:"+id.Hex(), "cowork"))

	workspace := &entity.Workspace{ID: id, Type: entity.WorkspaceTypeCafe}
	s.next.On("GetByID", ctx, id.Hex()).Return(workspace, nil).Once()

	result, err := s.repo.GetByID(ctx, id.Hex())

	s.NoError(err)
	s.Equal(entity.WorkspaceTypeCafe, result.Type)

	cached, _ := s.miniRedis.Get("workspace:category:" + id.Hex())
	s.Equal("cafe", cached)
}

func (s *CachedWorkspaceRepositoryTestSuite) TestGetByID_StoreErrorPropagates() {
	ctx := context.Background()
	id := primitive.NewObjectID().Hex()
	dbErr := errors.New("connection reset")

	s.next.On("GetByID", ctx, id).Return(nil, dbErr)

	result, err := s.repo.GetByID(ctx, id)

	s.Nil(result)
	s.ErrorIs(err, dbErr)
}

func (s *CachedWorkspaceRepositoryTestSuite) TestGetByID_RedisDownFallsBackToStore() {
	ctx := context.Background()
	id := primitive.NewObjectID()

	// отдельный клиент на закрытый адрес
	broken := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 50 * time.Millisecond})
	defer broken.Close()
	repo := NewCachedWorkspaceRepository(s.next, broken, time.Hour)

	workspace := &entity.Workspace{ID: id, Type: entity.WorkspaceTypeLibrary}
	s.next.On("GetByID", ctx, id.Hex()).Return(workspace, nil).Once()

	result, err := repo.GetByID(ctx, id.Hex())

	s.NoError(err)
	s.Equal(workspace, result)
}
