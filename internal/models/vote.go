package models

import "time"

const (
	VoteUp   = "upvote"
	VoteDown = "downvote"
)

func IsValidVoteType(t string) bool {
	return t == VoteUp || t == VoteDown
}

// Vote is one user's vote on one drawing. The composite unique index is what
// makes the toggle semantics safe under concurrent double-clicks.
type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	DrawingID uint      `gorm:"not null;uniqueIndex:idx_votes_drawing_user;index:idx_votes_drawing_id" json:"drawing_id"`
	Drawing   *Drawing  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_votes_drawing_user;index:idx_votes_user_id" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	VoteType  string    `gorm:"size:10;not null;check:vote_type IN ('upvote','downvote')" json:"vote_type"`
	CreatedAt time.Time `json:"created_at"`
}
