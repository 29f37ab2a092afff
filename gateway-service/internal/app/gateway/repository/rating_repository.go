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

type ratingRepository struct {
	collection *mongo.Collection
}

// NewRatingRepository создает репозиторий оценок
// Автоматически создает индекс по workspaceId для выборки оценок рабочего места
func NewRatingRepository(db *mongo.Database) RatingRepository {
	collection := db.Collection("ratings")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "workspaceId", Value: 1}},
		Options: options.Index().SetName("workspaceId_idx"),
	}

	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		// индекс может уже существовать с другим именем
		logger.Warn().Err(err).Msg("Failed to create index on ratings.workspaceId")
	}

	return &ratingRepository{
		collection: collection,
	}
}

// ListByWorkspace получает все оценки рабочего места одним запросом
func (r *ratingRepository) ListByWorkspace(ctx context.Context, workspaceID string) ([]entity.Rating, error) {
	objectID, err := primitive.ObjectIDFromHex(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidID, workspaceID)
	}

	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "ratings")
	defer timer.ObserveDuration()

	cursor, err := r.collection.Find(ctx, bson.M{"workspaceId": objectID})
	if err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to find ratings: %w", err)
	}
	defer cursor.Close(ctx)

	ratings := make([]entity.Rating, 0)
	if err := cursor.All(ctx, &ratings); err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to decode ratings: %w", err)
	}

	return ratings, nil
}

// FindCategoryMismatches находит оценки, набор измерений которых противоречит категории рабочего места.
// Кафе: нет taste или есть resources/computers. Библиотека: нет resources/computers или есть taste.
func (r *ratingRepository) FindCategoryMismatches(ctx context.Context, limit int64) ([]entity.RatingMismatch, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpAggregate, "ratings")
	defer timer.ObserveDuration()

	cursor, err := r.collection.Aggregate(ctx, mismatchPipeline(limit))
	if err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpAggregate)
		return nil, fmt.Errorf("failed to aggregate rating mismatches: %w", err)
	}
	defer cursor.Close(ctx)

	mismatches := make([]entity.RatingMismatch, 0)
	if err := cursor.All(ctx, &mismatches); err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpAggregate)
		return nil, fmt.Errorf("failed to decode rating mismatches: %w", err)
	}

	return mismatches, nil
}

func mismatchPipeline(limit int64) mongo.Pipeline {
	exists := func(field string, ok bool) bson.M {
		return bson.M{"categories." + field: bson.M{"$exists": ok}}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         "workspaces",
			"localField":   "workspaceId",
			"foreignField": "_id",
			"as":           "workspace",
		}}},
		{{Key: "$unwind", Value: "$workspace"}},
		{{Key: "$match", Value: bson.M{"$or": bson.A{
			bson.M{
				"workspace.type": string(entity.WorkspaceTypeCafe),
				"$or":            bson.A{exists("taste", false), exists("resources", true), exists("computers", true)},
			},
			bson.M{
				"workspace.type": string(entity.WorkspaceTypeLibrary),
				"$or":            bson.A{exists("resources", false), exists("computers", false), exists("taste", true)},
			},
		}}}},
		{{Key: "$project", Value: bson.M{
			"workspaceId":   1,
			"userId":        1,
			"categories":    1,
			"createdAt":     1,
			"updatedAt":     1,
			"workspaceType": "$workspace.type",
		}}},
	}

	if limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
	}

	return pipeline
}
