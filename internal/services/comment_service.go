package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mapboard-app/mapboard/internal/dto"
	"github.com/mapboard-app/mapboard/internal/models"
	"gorm.io/gorm"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotCommentOwner = errors.New("you can only delete your own comments")
)

type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// ListAll returns every comment, newest first, with author username and the
// parent drawing title where present.
func (s *CommentService) ListAll() ([]dto.CommentView, error) {
	var views []dto.CommentView
	err := s.db.Model(&models.Comment{}).
		Select("comments.*, users.username AS username, drawings.title AS drawing_title").
		Joins("LEFT JOIN users ON comments.user_id = users.id").
		Joins("LEFT JOIN drawings ON comments.drawing_id = drawings.id").
		Order("comments.created_at DESC").
		Scan(&views).Error
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return views, nil
}

func (s *CommentService) ForDrawing(drawingID uint) ([]dto.CommentView, error) {
	var views []dto.CommentView
	err := s.db.Model(&models.Comment{}).
		Select("comments.*, users.username AS username").
		Joins("LEFT JOIN users ON comments.user_id = users.id").
		Where("comments.drawing_id = ?", drawingID).
		Order("comments.created_at DESC").
		Scan(&views).Error
	if err != nil {
		return nil, fmt.Errorf("list drawing comments: %w", err)
	}
	return views, nil
}

func (s *CommentService) ForThread(threadID uint) ([]dto.CommentView, error) {
	var views []dto.CommentView
	err := s.db.Model(&models.Comment{}).
		Select("comments.*, users.username AS username").
		Joins("LEFT JOIN users ON comments.user_id = users.id").
		Where("comments.thread_id = ?", threadID).
		Order("comments.created_at ASC").
		Scan(&views).Error
	if err != nil {
		return nil, fmt.Errorf("list thread posts: %w", err)
	}
	return views, nil
}

func (s *CommentService) Get(id uint) (*dto.CommentView, error) {
	var view dto.CommentView
	err := s.db.Model(&models.Comment{}).
		Select("comments.*, users.username AS username").
		Joins("LEFT JOIN users ON comments.user_id = users.id").
		Where("comments.id = ?", id).
		Scan(&view).Error
	if err != nil {
		return nil, fmt.Errorf("lookup comment: %w", err)
	}
	if view.ID == 0 {
		return nil, ErrCommentNotFound
	}
	return &view, nil
}

// Create stores a comment, optionally attached to a drawing or a thread.
// A nil userID means anonymous; a userID that no longer resolves to an
// account is dropped rather than rejected. Thread comments bump the thread's
// last_post_at watermark.
func (s *CommentService) Create(content string, userID, drawingID, threadID *uint) (*dto.CommentView, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: comment content is required", ErrValidation)
	}

	if userID != nil {
		var user models.User
		if err := s.db.First(&user, "id = ?", *userID).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("lookup user: %w", err)
			}
			userID = nil
		}
	}

	comment := models.Comment{
		Content:   content,
		UserID:    userID,
		DrawingID: drawingID,
		ThreadID:  threadID,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	if threadID != nil {
		now := time.Now()
		if err := s.db.Model(&models.ForumThread{}).
			Where("id = ?", *threadID).
			Updates(map[string]interface{}{
				"last_post_at": now,
				"updated_at":   now,
			}).Error; err != nil {
			return nil, fmt.Errorf("bump thread watermark: %w", err)
		}
	}

	return s.Get(comment.ID)
}

// Delete removes a comment; only its author may do so.
func (s *CommentService) Delete(id, actorID uint) error {
	comment, err := s.Get(id)
	if err != nil {
		return err
	}
	if comment.UserID == nil || *comment.UserID != actorID {
		return ErrNotCommentOwner
	}
	if err := s.db.Delete(&models.Comment{}, id).Error; err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}
