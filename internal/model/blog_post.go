package model

import (
	"time"
)

type BlogPost struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Slug      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Excerpt   string    `gorm:"type:text" json:"excerpt"`
	Content   string    `gorm:"type:text" json:"content"`
	ImageURL  string    `gorm:"type:varchar(500)" json:"image_url"`
	AuthorID  *uint     `gorm:"index" json:"author_id"`
	Published bool      `gorm:"not null;default:false;index" json:"published"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
