package models

import "time"

// Post represents a published text post, optionally tagged to a group
// and attached with an image stored on disk.
type Post struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	Text     string    `json:"text" gorm:"type:text"`
	PubDate  time.Time `json:"pub_date" gorm:"index"` // set once at creation, never updated
	AuthorID uint      `json:"author_id" gorm:"index"`
	Author   User      `json:"author" gorm:"foreignKey:AuthorID"`
	GroupID  *uint     `json:"group_id" gorm:"index"` // nil when the post is not tagged to a group
	Group    *Group    `json:"group,omitempty" gorm:"foreignKey:GroupID"`
	Image    string    `json:"image,omitempty"` // relative media path of the uploaded image
}

// PostForm defines the form fields for creating or editing a post.
// Group holds a group slug; an empty slug means no group.
type PostForm struct {
	Text  string `form:"text" validate:"required,min=1"`
	Group string `form:"group" validate:"omitempty,max=100"`
}
