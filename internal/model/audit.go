package model

import (
	"time"
)

const (
	ActionCreateCat                 = "CREATE_CAT"
	ActionUpdateCat                 = "UPDATE_CAT"
	ActionDeleteCat                 = "DELETE_CAT"
	ActionTransitionAdoptionRequest = "TRANSITION_ADOPTION_REQUEST"
	ActionDeleteAdoptionRequest     = "DELETE_ADOPTION_REQUEST"
	ActionCreateBlogPost            = "CREATE_BLOG_POST"
	ActionUpdateBlogPost            = "UPDATE_BLOG_POST"
	ActionDeleteBlogPost            = "DELETE_BLOG_POST"
	ActionCreateVolunteer           = "CREATE_VOLUNTEER"
	ActionUpdateVolunteer           = "UPDATE_VOLUNTEER"
	ActionDeleteVolunteer           = "DELETE_VOLUNTEER"
	ActionUpdateSetting             = "UPDATE_SETTING"
)

// AuditLog tracks Who, What, and When for admin changes
type AuditLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	AdminID    *uint     `gorm:"index" json:"admin_id"`          // nil for system actions
	Actor      string    `gorm:"type:varchar(100)" json:"actor"` // username at the time of the action
	Action     string    `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string    `gorm:"type:varchar(100);index" json:"entity_id"`
	EntityName string    `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    string    `gorm:"type:text" json:"details"` // serialized JSON payload of the action
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}
