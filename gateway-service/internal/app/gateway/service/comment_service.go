package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"focusmap/gateway-service/internal/app/gateway/entity"
	"focusmap/gateway-service/internal/app/gateway/infrastructure"
	"focusmap/gateway-service/internal/app/gateway/repository"
	"focusmap/pkg/logger"
	"focusmap/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// MaxCommentLength максимальная длина комментария в символах
	MaxCommentLength = 1000

	publishTimeout = 2 * time.Second
)

// CommentService обрабатывает бизнес-логику комментариев
// Координирует работу репозиториев и Kafka
type CommentService struct {
	workspaceRepo repository.WorkspaceRepository
	commentRepo   repository.CommentRepository
	kafkaProducer infrastructure.MessagePublisher
}

// NewCommentService создает новый сервис комментариев с внедрением зависимостей
func NewCommentService(
	workspaceRepo repository.WorkspaceRepository,
	commentRepo repository.CommentRepository,
	kafkaProducer infrastructure.MessagePublisher,
) *CommentService {
	return &CommentService{
		workspaceRepo: workspaceRepo,
		commentRepo:   commentRepo,
		kafkaProducer: kafkaProducer,
	}
}

// GetWorkspaceComments получает комментарии рабочего места, новые сверху
// Пустой список - нормальный ответ, а не ошибка
func (s *CommentService) GetWorkspaceComments(ctx context.Context, workspaceID string) ([]entity.Comment, error) {
	if !primitive.IsValidObjectID(workspaceID) {
		return nil, fmt.Errorf("%w: invalid workspace id %q", ErrInvalidInput, workspaceID)
	}

	comments, err := s.commentRepo.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	if comments == nil {
		comments = []entity.Comment{}
	}

	return comments, nil
}

// AddComment добавляет комментарий
// 1. Проверяет данные и существование рабочего места
// 2. Сохраняет комментарий в MongoDB
// 3. Отправляет событие COMMENT_ADDED в Kafka
func (s *CommentService) AddComment(ctx context.Context, workspaceID, userID, content string) (*entity.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(content) > MaxCommentLength {
		return nil, fmt.Errorf("%w: content exceeds %d characters", ErrInvalidInput, MaxCommentLength)
	}

	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id %q", ErrInvalidInput, userID)
	}
	workspaceOID, err := primitive.ObjectIDFromHex(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid workspace id %q", ErrInvalidInput, workspaceID)
	}

	if _, err := s.workspaceRepo.GetByID(ctx, workspaceID); err != nil {
		if errors.Is(err, repository.ErrWorkspaceNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrWorkspaceNotFound, workspaceID)
		}
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	comment := &entity.Comment{
		WorkspaceID: workspaceOID,
		UserID:      userOID,
		Text:        content,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	metrics.CommentsAdded.Inc()

	event := entity.CommentEvent{
		EventType:   "COMMENT_ADDED",
		CommentID:   comment.ID.Hex(),
		WorkspaceID: workspaceID,
		UserID:      userID,
		Timestamp:   comment.CreatedAt,
	}

	if err := s.publishCommentEvent(ctx, event); err != nil {
		// комментарий уже сохранен, проблемы с Kafka не критичны
		logger.Warn().Err(err).Str("comment_id", event.CommentID).Msg("Failed to publish comment added event")
	}

	return comment, nil
}

// publishCommentEvent отправляет событие о комментарии в Kafka
func (s *CommentService) publishCommentEvent(ctx context.Context, event entity.CommentEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal comment event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	// ключ = WorkspaceID, события одного рабочего места попадают в одну партицию
	if err := s.kafkaProducer.PublishMessage(ctx, event.WorkspaceID, eventData); err != nil {
		return fmt.Errorf("failed to publish to kafka: %w", err)
	}

	return nil
}
