package dto

import "github.com/mapboard-app/mapboard/internal/models"

type CreateCommentRequest struct {
	Content string `json:"content"`
}

// CommentView joins the author's username (nil for anonymous or deleted
// accounts) and, for the global feed, the parent drawing title.
type CommentView struct {
	models.Comment
	Username     *string `json:"username"`
	DrawingTitle *string `json:"drawing_title,omitempty"`
}

type CommentResponse struct {
	Success bool        `json:"success"`
	Comment CommentView `json:"comment"`
}
