package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment status values as reported by the payment provider.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusOpen     = "open"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusCanceled = "canceled"
	PaymentStatusExpired  = "expired"
)

// Donation records a single iDEAL donation. Amount is in euros.
type Donation struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	DonorName     string          `gorm:"type:varchar(255)" json:"donor_name"`
	DonorEmail    string          `gorm:"type:varchar(255)" json:"donor_email"`
	Amount        decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	Message       string          `gorm:"type:text" json:"message"`
	PaymentID     string          `gorm:"type:varchar(100);index" json:"payment_id"`
	PaymentStatus string          `gorm:"type:varchar(20);not null;default:'pending';index" json:"payment_status"`
	CreatedAt     time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
