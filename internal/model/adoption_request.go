package model

import (
	"time"
)

// AdoptionRequest status constants
const (
	AdoptionStatusPending   = "pending"
	AdoptionStatusApproved  = "approved"
	AdoptionStatusRejected  = "rejected"
	AdoptionStatusCompleted = "completed"
)

// Household types accepted on the public form. Empty means not specified.
const (
	HouseholdApartment = "apartment"
	HouseholdHouse     = "house"
	HouseholdFarm      = "farm"
)

func ValidAdoptionStatus(s string) bool {
	switch s {
	case AdoptionStatusPending, AdoptionStatusApproved, AdoptionStatusRejected, AdoptionStatusCompleted:
		return true
	}
	return false
}

func ValidHouseholdType(s string) bool {
	switch s {
	case "", HouseholdApartment, HouseholdHouse, HouseholdFarm:
		return true
	}
	return false
}

// AdoptionRequest is an application submitted by a member of the public for one cat.
// Status only moves through the transition coordinator in the service layer.
type AdoptionRequest struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	CatID                uint      `gorm:"not null;index" json:"cat_id"`
	Cat                  *Cat      `gorm:"foreignKey:CatID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Name                 string    `gorm:"type:varchar(255);not null" json:"name"`
	Email                string    `gorm:"type:varchar(255);not null;index" json:"email"`
	Phone                string    `gorm:"type:varchar(50)" json:"phone"`
	Address              string    `gorm:"type:varchar(255)" json:"address"`
	City                 string    `gorm:"type:varchar(100)" json:"city"`
	PostalCode           string    `gorm:"type:varchar(20)" json:"postal_code"`
	HouseholdType        string    `gorm:"type:varchar(20)" json:"household_type"`
	HasGarden            bool      `gorm:"not null;default:false" json:"has_garden"`
	HasOtherPets         bool      `gorm:"not null;default:false" json:"has_other_pets"`
	OtherPetsDescription string    `gorm:"type:text" json:"other_pets_description"`
	HasChildren          bool      `gorm:"not null;default:false" json:"has_children"`
	ChildrenAges         string    `gorm:"type:varchar(100)" json:"children_ages"`
	CatExperience        string    `gorm:"type:text" json:"cat_experience"`
	Motivation           string    `gorm:"type:text;not null" json:"motivation"`
	Status               string    `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	AdminNotes           string    `gorm:"type:text" json:"admin_notes"`
	CreatedAt            time.Time `gorm:"index" json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`

	// Read-only columns filled by the cats join.
	CatName  string `gorm:"->;-:migration" json:"cat_name"`
	CatImage string `gorm:"->;-:migration" json:"cat_image"`
}
