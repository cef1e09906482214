package models

import "time"

// Comment is free text attached to a drawing, to a forum thread (as a post),
// or to nothing at all. Anonymous authorship is allowed: UserID stays nil.
// Which parent it belongs to is decided by the creation path, not a constraint.
type Comment struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	Content   string       `gorm:"type:text;not null" json:"content"`
	UserID    *uint        `gorm:"index:idx_comments_user_id" json:"user_id"`
	User      *User        `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	DrawingID *uint        `gorm:"index:idx_comments_drawing_id" json:"drawing_id"`
	Drawing   *Drawing     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ThreadID  *uint        `gorm:"index:idx_comments_thread_id" json:"thread_id"`
	Thread    *ForumThread `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time    `gorm:"index:idx_comments_created_at,sort:desc" json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
