package handler

import (
	"context"
	"net/http"
	"strings"

	"focusmap/gateway-service/internal/app/gateway/entity"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommentGateway операции с комментариями через SOAP
type CommentGateway interface {
	GetWorkplaceComments(ctx context.Context, workspaceID string) ([]entity.CommentDTO, error)
	AddComment(ctx context.Context, workspaceID, userID, content string) (*entity.CommentDTO, error)
}

type CommentHandler struct {
	comments  CommentGateway
	validator *validator.Validate
}

func NewCommentHandler(comments CommentGateway) *CommentHandler {
	return &CommentHandler{
		comments:  comments,
		validator: validator.New(),
	}
}

// GetComments GET /api/workspaces/:workspaceId/comments
func (h *CommentHandler) GetComments(c *gin.Context) {
	workspaceID := c.Param("workspaceId")
	if !primitive.IsValidObjectID(workspaceID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID"})
		return
	}

	comments, err := h.comments.GetWorkplaceComments(c.Request.Context(), workspaceID)
	if err != nil {
		writeCallError(c, "Failed to get comments", err)
		return
	}

	c.JSON(http.StatusOK, entity.CommentListResponse{
		Comments: comments,
		Total:    len(comments),
	})
}

// AddComment POST /api/workspaces/:workspaceId/comments
func (h *CommentHandler) AddComment(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	userIDStr, ok := userID.(string)
	if !ok || !primitive.IsValidObjectID(userIDStr) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return
	}

	workspaceID := c.Param("workspaceId")
	if !primitive.IsValidObjectID(workspaceID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID"})
		return
	}

	var req entity.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	// текст из одних пробелов считается пустым
	req.Text = strings.TrimSpace(req.Text)
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	comment, err := h.comments.AddComment(c.Request.Context(), workspaceID, userIDStr, req.Text)
	if err != nil {
		writeCallError(c, "Failed to add comment", err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}
