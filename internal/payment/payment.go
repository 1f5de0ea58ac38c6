// Package payment is the narrow contract the donation flow needs from a payment provider.
package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

// Request describes a one-off payment to create.
type Request struct {
	Amount      decimal.Decimal
	Description string
	RedirectURL string
	// WebhookURL is optional; providers cannot reach local addresses.
	WebhookURL string
	Metadata   map[string]string
}

// Payment is the provider's view of a payment.
type Payment struct {
	ID          string
	Status      string
	CheckoutURL string
}

type Provider interface {
	CreatePayment(ctx context.Context, req Request) (Payment, error)
	GetPayment(ctx context.Context, id string) (Payment, error)
}
