package models

import "time"

// ForumCategory rows are created and reconciled only by the startup routine,
// never by end users. Names are case-insensitively unique after reconciliation.
type ForumCategory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Icon        string    `gorm:"size:50" json:"icon"`
	OrderIndex  int       `gorm:"default:0;index:idx_forum_categories_order" json:"order_index"`
	CreatedAt   time.Time `json:"created_at"`
}

// ForumThread groups posts (Comments with ThreadID set) under a category.
// LastPostAt is bumped whenever a post is added.
type ForumThread struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	CategoryID uint           `gorm:"not null;index:idx_forum_threads_category_id" json:"category_id"`
	Category   *ForumCategory `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Title      string         `gorm:"size:255;not null" json:"title"`
	UserID     *uint          `json:"user_id"`
	User       *User          `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	LastPostAt time.Time      `gorm:"index:idx_forum_threads_last_post_at,sort:desc" json:"last_post_at"`
}
