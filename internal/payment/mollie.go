package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/VictorAvelar/mollie-api-go/v4/mollie"
)

const mollieCurrency = "EUR"

// Mollie creates iDEAL payments through the Mollie SDK.
type Mollie struct {
	client *mollie.Client
}

// NewMollie builds a client authenticated with apiKey. An empty baseURL keeps
// the SDK default.
func NewMollie(apiKey, baseURL string, timeout time.Duration) (*Mollie, error) {
	if apiKey == "" {
		return nil, errors.New("mollie: api key is required")
	}

	client, err := mollie.NewClient(&http.Client{Timeout: timeout}, mollie.NewAPIConfig(false))
	if err != nil {
		return nil, fmt.Errorf("mollie: %w", err)
	}
	if err := client.WithAuthenticationValue(apiKey); err != nil {
		return nil, fmt.Errorf("mollie: %w", err)
	}

	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("mollie: base url: %w", err)
		}
		client.BaseURL = u
	}

	return &Mollie{client: client}, nil
}

func toPayment(p *mollie.Payment) Payment {
	out := Payment{ID: p.ID, Status: p.Status}
	if p.Links.Checkout != nil {
		out.CheckoutURL = p.Links.Checkout.Href
	}
	return out
}

func (m *Mollie) CreatePayment(ctx context.Context, req Request) (Payment, error) {
	create := mollie.CreatePayment{
		Amount:      &mollie.Amount{Currency: mollieCurrency, Value: req.Amount.StringFixed(2)},
		Description: req.Description,
		RedirectURL: req.RedirectURL,
		WebhookURL:  req.WebhookURL,
		Method:      []mollie.PaymentMethod{mollie.IDeal},
	}
	if len(req.Metadata) > 0 {
		create.Metadata = req.Metadata
	}

	_, p, err := m.client.Payments.Create(ctx, create, nil)
	if err != nil {
		return Payment{}, fmt.Errorf("mollie: create payment: %w", err)
	}
	return toPayment(p), nil
}

func (m *Mollie) GetPayment(ctx context.Context, id string) (Payment, error) {
	_, p, err := m.client.Payments.Get(ctx, id, nil)
	if err != nil {
		return Payment{}, fmt.Errorf("mollie: get payment %s: %w", id, err)
	}
	return toPayment(p), nil
}
