package models

import "time"

// Follow represents a directed subscription edge: User follows Author's posts
type Follow struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_author_follow"`
	AuthorID  uint      `json:"author_id" gorm:"index;uniqueIndex:idx_user_author_follow"`
	CreatedAt time.Time `json:"created_at"`
}
