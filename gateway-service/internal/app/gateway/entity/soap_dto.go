package entity

import "encoding/xml"

// CommentServiceNamespace target namespace WSDL-контракта сервиса комментариев
const CommentServiceNamespace = "http://focusmap.com/comment-service"

// Имена операций SOAP (локальные имена элементов в soap:Body)
const (
	OpGetWorkplaceComments = "getWorkplaceComments"
	OpAddComment           = "addComment"
)

type GetWorkplaceCommentsRequest struct {
	XMLName     xml.Name `xml:"http://focusmap.com/comment-service getWorkplaceComments"`
	WorkspaceID string   `xml:"workspaceId" validate:"required"`
}

type GetWorkplaceCommentsResponse struct {
	XMLName  xml.Name     `xml:"http://focusmap.com/comment-service getWorkplaceCommentsResponse"`
	Comments []CommentDTO `xml:"comments"`
}

type AddCommentRequest struct {
	XMLName     xml.Name `xml:"http://focusmap.com/comment-service addComment"`
	WorkspaceID string   `xml:"workspaceId" validate:"required"`
	UserID      string   `xml:"userId" validate:"required"`
	Content     string   `xml:"content" validate:"required,max=1000"`
}

type AddCommentResponse struct {
	XMLName xml.Name   `xml:"http://focusmap.com/comment-service addCommentResponse"`
	Comment CommentDTO `xml:"comment"`
}
