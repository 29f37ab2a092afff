package repository

import (
	"context"
	"fmt"
	"time"

	"focusmap/gateway-service/internal/app/gateway/entity"
	"focusmap/pkg/logger"
	"focusmap/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type commentRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewCommentRepository создает репозиторий комментариев
// Автоматически создает составной индекс (workspaceId, createdAt desc) под выдачу "новые сверху"
func NewCommentRepository(db *mongo.Database) CommentRepository {
	collection := db.Collection("comments")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "workspaceId", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("workspaceId_createdAt_idx"),
	}

	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		logger.Warn().Err(err).Msg("Failed to create index on comments (workspaceId, createdAt)")
	}

	return &commentRepository{
		collection: collection,
		now:        time.Now,
	}
}

// Create сохраняет комментарий, выставляя createdAt/updatedAt и ID
func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	// MongoDB хранит время с точностью до миллисекунд
	now := r.now().UTC().Truncate(time.Millisecond)
	comment.CreatedAt = now
	comment.UpdatedAt = now
	if comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
	}

	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, "comments")
	defer timer.ObserveDuration()

	if _, err := r.collection.InsertOne(ctx, comment); err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpInsert)
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

// ListByWorkspace получает комментарии рабочего места, новые сверху.
// При равном createdAt порядок определяется _id (тоже по убыванию).
func (r *commentRepository) ListByWorkspace(ctx context.Context, workspaceID string) ([]entity.Comment, error) {
	objectID, err := primitive.ObjectIDFromHex(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidID, workspaceID)
	}

	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "comments")
	defer timer.ObserveDuration()

	filter, opts := listByWorkspaceQuery(objectID)
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to find comments: %w", err)
	}
	defer cursor.Close(ctx)

	comments := make([]entity.Comment, 0)
	if err := cursor.All(ctx, &comments); err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}

	return comments, nil
}

// listByWorkspaceQuery новые сверху, при равном createdAt порядок задает _id
func listByWorkspaceQuery(workspaceID primitive.ObjectID) (bson.M, *options.FindOptions) {
	filter := bson.M{"workspaceId": workspaceID}
	opts := options.Find().SetSort(bson.D{
		{Key: "createdAt", Value: -1},
		{Key: "_id", Value: -1},
	})
	return filter, opts
}
