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
	ErrCategoryNotFound = errors.New("category not found")
	ErrThreadNotFound   = errors.New("thread not found")
	ErrNotThreadOwner   = errors.New("you can only delete your own threads")
)

type ForumService struct {
	db       *gorm.DB
	comments *CommentService
}

func NewForumService(db *gorm.DB, comments *CommentService) *ForumService {
	return &ForumService{db: db, comments: comments}
}

// Categories returns the catalog with per-category thread counts and the
// latest activity watermark, in pinned order.
func (s *ForumService) Categories() ([]dto.CategoryView, error) {
	var views []dto.CategoryView
	err := s.db.Model(&models.ForumCategory{}).
		Select("forum_categories.*, COUNT(DISTINCT forum_threads.id) AS thread_count, MAX(forum_threads.last_post_at) AS last_activity").
		Joins("LEFT JOIN forum_threads ON forum_categories.id = forum_threads.category_id").
		Group("forum_categories.id").
		Order("forum_categories.order_index, forum_categories.name").
		Scan(&views).Error
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return views, nil
}

func (s *ForumService) GetCategory(id uint) (*models.ForumCategory, error) {
	var category models.ForumCategory
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("lookup category: %w", err)
	}
	return &category, nil
}

// CategoryThreads lists a category's threads with author and post count,
// most recently active first.
func (s *ForumService) CategoryThreads(categoryID uint) ([]dto.ThreadView, error) {
	var views []dto.ThreadView
	err := s.db.Model(&models.ForumThread{}).
		Select("forum_threads.*, users.username AS username, COUNT(DISTINCT comments.id) AS post_count").
		Joins("LEFT JOIN users ON forum_threads.user_id = users.id").
		Joins("LEFT JOIN comments ON forum_threads.id = comments.thread_id").
		Where("forum_threads.category_id = ?", categoryID).
		Group("forum_threads.id, users.username").
		Order("forum_threads.last_post_at DESC, forum_threads.created_at DESC").
		Scan(&views).Error
	if err != nil {
		return nil, fmt.Errorf("list threads: %w", err)
	}
	return views, nil
}

func (s *ForumService) GetThread(id uint) (*dto.ThreadView, error) {
	var view dto.ThreadView
	err := s.db.Model(&models.ForumThread{}).
		Select("forum_threads.*, users.username AS username, forum_categories.name AS category_name, COUNT(DISTINCT comments.id) AS post_count").
		Joins("LEFT JOIN users ON forum_threads.user_id = users.id").
		Joins("LEFT JOIN forum_categories ON forum_threads.category_id = forum_categories.id").
		Joins("LEFT JOIN comments ON forum_threads.id = comments.thread_id").
		Where("forum_threads.id = ?", id).
		Group("forum_threads.id, users.username, forum_categories.name").
		Scan(&view).Error
	if err != nil {
		return nil, fmt.Errorf("lookup thread: %w", err)
	}
	if view.ID == 0 {
		return nil, ErrThreadNotFound
	}
	return &view, nil
}

// CreateThread creates a thread and its opening post together. Anonymous
// authors are allowed.
func (s *ForumService) CreateThread(req *dto.CreateThreadRequest, userID *uint) (*models.ForumThread, *dto.CommentView, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if req.CategoryID == 0 || title == "" || content == "" {
		return nil, nil, fmt.Errorf("%w: category ID, title, and content are required", ErrValidation)
	}

	if _, err := s.GetCategory(req.CategoryID); err != nil {
		return nil, nil, err
	}

	thread := models.ForumThread{
		CategoryID: req.CategoryID,
		Title:      title,
		UserID:     userID,
		LastPostAt: time.Now(),
	}
	if err := s.db.Create(&thread).Error; err != nil {
		return nil, nil, fmt.Errorf("create thread: %w", err)
	}

	post, err := s.comments.Create(content, userID, nil, &thread.ID)
	if err != nil {
		return nil, nil, err
	}
	return &thread, post, nil
}

// CreatePost adds a reply to an existing thread.
func (s *ForumService) CreatePost(threadID uint, content string, userID *uint) (*dto.CommentView, error) {
	if _, err := s.GetThread(threadID); err != nil {
		return nil, err
	}
	return s.comments.Create(content, userID, nil, &threadID)
}

// Search matches threads whose title or any post body contains the query,
// case-insensitively, optionally limited to one category.
func (s *ForumService) Search(query string, categoryID *uint) ([]dto.ThreadView, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", ErrValidation)
	}
	pattern := "%" + strings.ToLower(query) + "%"

	tx := s.db.Model(&models.ForumThread{}).
		Select("forum_threads.*, users.username AS username, forum_categories.name AS category_name, COUNT(DISTINCT comments.id) AS post_count").
		Joins("LEFT JOIN users ON forum_threads.user_id = users.id").
		Joins("LEFT JOIN forum_categories ON forum_threads.category_id = forum_categories.id").
		Joins("LEFT JOIN comments ON forum_threads.id = comments.thread_id").
		Where("LOWER(forum_threads.title) LIKE ? OR forum_threads.id IN (?)",
			pattern,
			s.db.Model(&models.Comment{}).Select("thread_id").
				Where("thread_id IS NOT NULL AND LOWER(content) LIKE ?", pattern),
		)
	if categoryID != nil {
		tx = tx.Where("forum_threads.category_id = ?", *categoryID)
	}

	var views []dto.ThreadView
	err := tx.
		Group("forum_threads.id, users.username, forum_categories.name").
		Order("forum_threads.last_post_at DESC, forum_threads.created_at DESC").
		Scan(&views).Error
	if err != nil {
		return nil, fmt.Errorf("search threads: %w", err)
	}
	return views, nil
}

// DeleteThread removes a thread and, via the FK cascade, its posts. Only the
// thread's author may delete it.
func (s *ForumService) DeleteThread(id, actorID uint) error {
	thread, err := s.GetThread(id)
	if err != nil {
		return err
	}
	if thread.UserID == nil || *thread.UserID != actorID {
		return ErrNotThreadOwner
	}
	if err := s.db.Delete(&models.ForumThread{}, id).Error; err != nil {
		return fmt.Errorf("delete thread: %w", err)
	}
	return nil
}
