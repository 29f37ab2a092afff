package repository

import (
	"context"
	"errors"
	"fmt"

	"focusmap/gateway-service/internal/app/gateway/entity"
	"focusmap/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type workspaceRepository struct {
	collection *mongo.Collection
}

// NewWorkspaceRepository создает репозиторий рабочих мест поверх коллекции workspaces
func NewWorkspaceRepository(db *mongo.Database) WorkspaceRepository {
	return &workspaceRepository{
		collection: db.Collection("workspaces"),
	}
}

// GetByID получает рабочее место по ID.
// Некорректный ObjectID никогда не находится и дает ErrWorkspaceNotFound.
func (r *workspaceRepository) GetByID(ctx context.Context, id string) (*entity.Workspace, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrWorkspaceNotFound
	}

	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "workspaces")
	defer timer.ObserveDuration()

	filter := bson.M{"_id": objectID}
	opts := options.FindOne().SetProjection(bson.M{"_id": 1, "name": 1, "type": 1})

	var workspace entity.Workspace
	err = r.collection.FindOne(ctx, filter, opts).Decode(&workspace)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrWorkspaceNotFound
		}
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	if !workspace.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWorkspaceType, workspace.Type)
	}

	return &workspace, nil
}
