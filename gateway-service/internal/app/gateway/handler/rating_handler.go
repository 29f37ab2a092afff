package handler

import (
	"context"
	"net/http"

	"focusmap/gateway-service/internal/app/gateway/entity"
	"focusmap/gateway-service/internal/app/gateway/ratingpb"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"google.golang.org/protobuf/encoding/protojson"
)

// RatingFetcher получает средние оценки через gRPC
type RatingFetcher interface {
	CalculateAverageRatings(ctx context.Context, workspaceID, category string) (*ratingpb.AverageRatingsResponse, error)
}

type RatingHandler struct {
	ratings   RatingFetcher
	marshaler protojson.MarshalOptions
}

func NewRatingHandler(ratings RatingFetcher) *RatingHandler {
	return &RatingHandler{
		ratings: ratings,
		// нулевые средние тоже отдаем клиенту
		marshaler: protojson.MarshalOptions{EmitUnpopulated: true},
	}
}

// GetAverageRatings GET /api/workspaces/:workspaceId/ratings/average?type=cafe|library
func (h *RatingHandler) GetAverageRatings(c *gin.Context) {
	workspaceID := c.Param("workspaceId")
	if !primitive.IsValidObjectID(workspaceID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID"})
		return
	}

	category := c.Query("type")
	if category != "" && !entity.WorkspaceType(category).Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be cafe or library"})
		return
	}

	resp, err := h.ratings.CalculateAverageRatings(c.Request.Context(), workspaceID, category)
	if err != nil {
		writeCallError(c, "Failed to get average ratings", err)
		return
	}

	data, err := h.marshaler.Marshal(resp)
	if err != nil {
		writeCallError(c, "Failed to encode average ratings", err)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}
