package model

import (
	"time"
)

const (
	CatStatusAvailable = "available"
	CatStatusReserved  = "reserved"
	CatStatusAdopted   = "adopted"
)

// ValidCatStatus reports whether s is one of the three cat statuses.
func ValidCatStatus(s string) bool {
	switch s {
	case CatStatusAvailable, CatStatusReserved, CatStatusAdopted:
		return true
	}
	return false
}

type Cat struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Age         string    `gorm:"type:varchar(50)" json:"age"`
	Gender      string    `gorm:"type:varchar(20)" json:"gender"`
	Breed       string    `gorm:"type:varchar(100)" json:"breed"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURL    string    `gorm:"type:varchar(500)" json:"image_url"`
	Status      string    `gorm:"type:varchar(20);not null;default:'available';index" json:"status"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
