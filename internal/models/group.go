package models

// Group represents a community that posts can be published into.
// Groups are created by an administrator and referenced by slug.
type Group struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"size:200"`
	Slug        string `json:"slug" gorm:"uniqueIndex;size:100"`
	Description string `json:"description" gorm:"type:text"`
}
