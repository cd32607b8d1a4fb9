package models

import "time"

// Comment represents a comment on a post. Comments are only ever created,
// never edited.
type Comment struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	Text     string    `json:"text" gorm:"type:text"`
	PubDate  time.Time `json:"pub_date" gorm:"index"` // set once at creation
	AuthorID uint      `json:"author_id" gorm:"index"`
	Author   User      `json:"author" gorm:"foreignKey:AuthorID"`
	PostID   uint      `json:"post_id" gorm:"index"`
}

// CommentForm defines the form fields for adding a comment to a post
type CommentForm struct {
	Text string `form:"text" validate:"required,min=1"`
}
