package entity

import "time"

// CreateCommentRequest - запрос на добавление комментария через REST
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=1000"`
}

// CommentDTO - комментарий в том виде, в котором его отдают SOAP и REST
type CommentDTO struct {
	ID        string    `json:"id" xml:"id"`
	Content   string    `json:"content" xml:"content"`
	UserID    string    `json:"userId" xml:"userId"`
	CreatedAt time.Time `json:"createdAt" xml:"createdAt"`
}

// CommentListResponse - ответ со списком комментариев
type CommentListResponse struct {
	Comments []CommentDTO `json:"comments"`
	Total    int          `json:"total"`
}

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func NewCommentDTO(c *Comment) CommentDTO {
	return CommentDTO{
		ID:        c.ID.Hex(),
		Content:   c.Text,
		UserID:    c.UserID.Hex(),
		CreatedAt: c.CreatedAt,
	}
}
