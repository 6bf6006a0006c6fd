package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is a published blog entry. The slug is derived from the title
// and unique across all posts.
type Post struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"size:128;not null" json:"title"`
	Slug      string         `gorm:"unique;not null;index" json:"slug"`
	AuthorID  uint           `gorm:"not null;index" json:"author_id"`
	Author    User           `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Body      string         `gorm:"type:text;not null" json:"body"`
	Summary   string         `gorm:"type:text" json:"summary"`
	Timestamp time.Time      `gorm:"autoCreateTime;index" json:"timestamp"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Comments  []Comment      `gorm:"foreignKey:PostID" json:"-"`
}
