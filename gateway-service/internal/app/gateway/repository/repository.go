package repository

import (
	"context"
	"errors"

	"focusmap/gateway-service/internal/app/gateway/entity"
)

const serviceName = "gateway-service"

var (
	// Стандартные ошибки репозитория для обработки в service layer
	ErrWorkspaceNotFound    = errors.New("workspace not found")
	ErrUnknownWorkspaceType = errors.New("workspace has unknown type")
	ErrInvalidID            = errors.New("invalid object id")
)

// WorkspaceRepository читает рабочие места (нужна только категория)
type WorkspaceRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Workspace, error)
}

// RatingRepository читает оценки рабочих мест
type RatingRepository interface {
	ListByWorkspace(ctx context.Context, workspaceID string) ([]entity.Rating, error)
	FindCategoryMismatches(ctx context.Context, limit int64) ([]entity.RatingMismatch, error)
}

// CommentRepository хранит комментарии к рабочим местам
type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	ListByWorkspace(ctx context.Context, workspaceID string) ([]entity.Comment, error)
}
