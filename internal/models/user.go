package models

import "time"

// User is a registered account. Drawing privileges are granted per user by an
// admin; the startup reconciliation re-asserts that only admins hold them.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:255;not null;uniqueIndex:idx_users_username" json:"username"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	IsAdmin   bool      `gorm:"not null;default:false" json:"is_admin"`
	CanDraw   bool      `gorm:"default:false" json:"can_draw"`
	CreatedAt time.Time `json:"created_at"`
}
