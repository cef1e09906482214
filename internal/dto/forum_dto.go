package dto

import (
	"time"

	"github.com/mapboard-app/mapboard/internal/models"
)

type CreateThreadRequest struct {
	CategoryID uint   `json:"category_id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
}

type CreatePostRequest struct {
	Content string `json:"content"`
}

type CategoryView struct {
	models.ForumCategory
	ThreadCount  int64      `json:"thread_count"`
	LastActivity *time.Time `json:"last_activity"`
}

type ThreadView struct {
	models.ForumThread
	Username     *string `json:"username"`
	CategoryName string  `json:"category_name,omitempty"`
	PostCount    int64   `json:"post_count"`
}

type ThreadDetailResponse struct {
	Thread ThreadView    `json:"thread"`
	Posts  []CommentView `json:"posts"`
}

type CreateThreadResponse struct {
	Success bool               `json:"success"`
	Thread  models.ForumThread `json:"thread"`
	Post    CommentView        `json:"post"`
}

type CreatePostResponse struct {
	Success bool        `json:"success"`
	Post    CommentView `json:"post"`
}
