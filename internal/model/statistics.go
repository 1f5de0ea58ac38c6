package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats aggregates counts shown on the admin dashboard
type DashboardStats struct {
	Cats           CatStats       `json:"cats"`
	Blog           BlogStats      `json:"blog"`
	Donations      DonationStats  `json:"donations"`
	RecentActivity []ActivityItem `json:"recent_activity"`
}

type CatStats struct {
	Total     int64 `json:"total"`
	Available int64 `json:"available"`
	Reserved  int64 `json:"reserved"`
	Adopted   int64 `json:"adopted"`
}

type BlogStats struct {
	Total     int64 `json:"total"`
	Published int64 `json:"published"`
	Drafts    int64 `json:"drafts"`
}

type DonationStats struct {
	Total      int64           `json:"total"`
	Successful int64           `json:"successful"`
	Pending    int64           `json:"pending"`
	PaidAmount decimal.Decimal `json:"paid_amount"`
}

// ActivityItem is one entry of the dashboard's recent activity feed
type ActivityItem struct {
	Type  string    `json:"type"` // cat, blog, donation
	Title string    `json:"title"`
	Date  time.Time `json:"date"`
}
