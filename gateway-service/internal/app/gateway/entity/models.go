package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkspaceType категория рабочего места, задается при создании и больше не меняется
type WorkspaceType string

const (
	WorkspaceTypeCafe    WorkspaceType = "cafe"
	WorkspaceTypeLibrary WorkspaceType = "library"
)

// Valid сообщает, является ли значение известной категорией
func (t WorkspaceType) Valid() bool {
	return t == WorkspaceTypeCafe || t == WorkspaceTypeLibrary
}

type Workspace struct {
	ID   primitive.ObjectID `json:"id" bson:"_id"`
	Name string             `json:"name" bson:"name"`
	Type WorkspaceType      `json:"type" bson:"type"` // cafe | library
}

// RatingCategories оценки по измерениям (0..5).
// Taste заполняется только для кафе, Resources и Computers только для библиотек.
type RatingCategories struct {
	Wifi        float64  `json:"wifi" bson:"wifi"`
	Quiet       float64  `json:"quiet" bson:"quiet"`
	Power       float64  `json:"power" bson:"power"`
	Cleanliness float64  `json:"cleanliness" bson:"cleanliness"`
	Taste       *float64 `json:"taste,omitempty" bson:"taste,omitempty"`
	Resources   *float64 `json:"resources,omitempty" bson:"resources,omitempty"`
	Computers   *float64 `json:"computers,omitempty" bson:"computers,omitempty"`
}

type Rating struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	WorkspaceID primitive.ObjectID `json:"workspaceId" bson:"workspaceId"`
	UserID      primitive.ObjectID `json:"userId" bson:"userId"`
	Categories  RatingCategories   `json:"categories" bson:"categories"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt,omitempty"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt,omitempty"`
}

// RatingMismatch оценка вместе с категорией ее рабочего места (результат $lookup)
type RatingMismatch struct {
	Rating        `bson:",inline"`
	WorkspaceType WorkspaceType `json:"workspaceType" bson:"workspaceType"`
}

// AverageRatingResult вычисляется заново на каждый запрос и нигде не хранится
type AverageRatingResult struct {
	Wifi         float64 `json:"wifi"`
	Quiet        float64 `json:"quiet"`
	Power        float64 `json:"power"`
	Cleanliness  float64 `json:"cleanliness"`
	Taste        float64 `json:"taste"`
	Resources    float64 `json:"resources"`
	Computers    float64 `json:"computers"`
	TotalRatings int     `json:"totalRatings"`
}

type Comment struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	WorkspaceID primitive.ObjectID `json:"workspaceId" bson:"workspaceId"`
	UserID      primitive.ObjectID `json:"userId" bson:"userId"`
	Text        string             `json:"text" bson:"text"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type CommentEvent struct {
	EventType   string    `json:"event_type"` // COMMENT_ADDED
	CommentID   string    `json:"comment_id"`
	WorkspaceID string    `json:"workspace_id"`
	UserID      string    `json:"user_id"`
	Timestamp   time.Time `json:"timestamp"`
}
