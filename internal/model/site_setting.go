package model

import (
	"time"
)

// SiteSetting is one key/value pair of the editable site configuration.
type SiteSetting struct {
	Key       string    `gorm:"type:varchar(100);primaryKey" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultSettings are returned for keys that have never been stored.
var DefaultSettings = map[string]string{
	"site_name":            "Stichting het Wijze Weeskitten",
	"site_description":     "Onvoorwaardelijke hulp aan katten in noodsituaties",
	"contact_email":        "info@wijzeweeskitten.nl",
	"donation_goal":        "5000",
	"hero_title":           "Stichting het Wijze Weeskitten",
	"hero_subtitle":        "Onvoorwaardelijke hulp aan katten in noodsituaties",
	"donation_account":     "",
	"primary_color":        "#ee6fa0",
	"hero_image":           "/images/hero-cats.jpg",
	"smtp_host":            "localhost",
	"smtp_port":            "1025",
	"smtp_secure":          "false",
	"smtp_user":            "",
	"smtp_pass":            "",
	"smtp_from":            "noreply@wijzeweeskitten.nl",
	"smtp_from_name":       "Stichting het Wijze Weeskitten",
	"recaptcha_site_key":   "",
	"recaptcha_secret_key": "",
	"google_analytics_id":  "",
}

// SensitiveSettingKeys never leave the admin API.
var SensitiveSettingKeys = []string{"smtp_user", "smtp_pass", "recaptcha_secret_key"}
