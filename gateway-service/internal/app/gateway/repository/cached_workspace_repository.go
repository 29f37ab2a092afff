package repository

import (
	"context"
	"errors"
	"time"

	"focusmap/gateway-service/internal/app/gateway/entity"
	"focusmap/pkg/logger"
	"focusmap/pkg/metrics"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const workspaceCategoryKeyPrefix = "workspace:category:"

// CachedWorkspaceRepository кеширует в Redis категорию существующих рабочих мест.
// Категория неизменяема, поэтому кешируются только положительные ответы;
// ErrWorkspaceNotFound всегда идет в MongoDB. Ошибки Redis не прерывают запрос.
type CachedWorkspaceRepository struct {
	next   WorkspaceRepository
	client *redis.Client
	ttl    time.Duration
}

// NewCachedWorkspaceRepository оборачивает репозиторий рабочих мест кешем категорий
func NewCachedWorkspaceRepository(next WorkspaceRepository, client *redis.Client, ttl time.Duration) *CachedWorkspaceRepository {
	return &CachedWorkspaceRepository{
		next:   next,
		client: client,
		ttl:    ttl,
	}
}

func workspaceCategoryKey(id string) string {
	return workspaceCategoryKeyPrefix + id
}

// GetByID возвращает рабочее место из кеша (только ID и Type) или из MongoDB
func (r *CachedWorkspaceRepository) GetByID(ctx context.Context, id string) (*entity.Workspace, error) {
	if workspace, ok := r.lookup(ctx, id); ok {
		return workspace, nil
	}

	workspace, err := r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.store(ctx, id, workspace.Type)
	return workspace, nil
}

func (r *CachedWorkspaceRepository) lookup(ctx context.Context, id string) (*entity.Workspace, bool) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, false
	}

	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpGet)
	value, err := r.client.Get(ctx, workspaceCategoryKey(id)).Result()
	timer.ObserveDuration()

	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.RecordCacheMiss(serviceName, workspaceCategoryKeyPrefix)
			return nil, false
		}
		metrics.RecordRedisError(serviceName, metrics.RedisOpGet)
		logger.Warn().Err(err).Str("workspace_id", id).Msg("Redis lookup failed, falling back to MongoDB")
		return nil, false
	}

	category := entity.WorkspaceType(value)
	if !category.Valid() {
		metrics.RecordCacheMiss(serviceName, workspaceCategoryKeyPrefix)
		return nil, false
	}

	metrics.RecordCacheHit(serviceName, workspaceCategoryKeyPrefix)
	return &entity.Workspace{ID: objectID, Type: category}, true
}

func (r *CachedWorkspaceRepository) store(ctx context.Context, id string, category entity.WorkspaceType) {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpSet)
	err := r.client.Set(ctx, workspaceCategoryKey(id), string(category), r.ttl).Err()
	timer.ObserveDuration()

	if err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpSet)
		logger.Warn().Err(err).Str("workspace_id", id).Msg("Failed to cache workspace category")
	}
}
