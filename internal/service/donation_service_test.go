package service

import (
	"context"
	"errors"
	"testing"

	"weeskitten/internal/apperror"
	"weeskitten/internal/model"
	"weeskitten/internal/notify"
	"weeskitten/internal/payment"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	created []payment.Request
	status  string
	err     error
}

func (p *fakeProvider) CreatePayment(_ context.Context, req payment.Request) (payment.Payment, error) {
	if p.err != nil {
		return payment.Payment{}, p.err
	}
	p.created = append(p.created, req)
	return payment.Payment{ID: "tr_WDqYK6vllg", Status: model.PaymentStatusOpen, CheckoutURL: "https://pay.example/checkout/tr_WDqYK6vllg"}, nil
}

func (p *fakeProvider) GetPayment(_ context.Context, id string) (payment.Payment, error) {
	if p.err != nil {
		return payment.Payment{}, p.err
	}
	return payment.Payment{ID: id, Status: p.status}, nil
}

func TestDonationCreate(t *testing.T) {
	r := newRepos(t)
	provider := &fakeProvider{}
	svc := NewDonationService(r.donations, provider, nil, DonationConfig{PublicURL: "https://weeskitten.nl/", WebhookEnabled: true})

	res, err := svc.Create(context.Background(), CreateDonationRequest{
		DonorName: "Jan", DonorEmail: "jan@example.nl", Amount: decimal.RequireFromString("25.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/checkout/tr_WDqYK6vllg", res.CheckoutURL)

	require.Len(t, provider.created, 1)
	req := provider.created[0]
	assert.True(t, req.Amount.Equal(decimal.RequireFromString("25.5")))
	assert.Equal(t, "https://weeskitten.nl/donatie/bedankt?donation_id=1", req.RedirectURL)
	assert.Equal(t, "https://weeskitten.nl/api/donations/webhook", req.WebhookURL)

	stored, err := r.donations.FindByID(context.Background(), res.DonationID)
	require.NoError(t, err)
	assert.Equal(t, "tr_WDqYK6vllg", stored.PaymentID)
	assert.Equal(t, model.PaymentStatusPending, stored.PaymentStatus)
}

func TestDonationCreateWithoutWebhook(t *testing.T) {
	r := newRepos(t)
	provider := &fakeProvider{}
	svc := NewDonationService(r.donations, provider, nil, DonationConfig{PublicURL: "http://localhost:3000"})

	_, err := svc.Create(context.Background(), CreateDonationRequest{Amount: decimal.NewFromInt(10)})
	require.NoError(t, err)
	require.Len(t, provider.created, 1)
	assert.Empty(t, provider.created[0].WebhookURL)
}

func TestDonationCreateRejectsAmounts(t *testing.T) {
	r := newRepos(t)
	svc := NewDonationService(r.donations, &fakeProvider{}, nil, DonationConfig{})

	for _, amount := range []string{"0", "-5", "100000000"} {
		_, err := svc.Create(context.Background(), CreateDonationRequest{Amount: decimal.RequireFromString(amount)})
		assert.True(t, errors.Is(err, apperror.ErrValidation), amount)
	}
	assert.Zero(t, countRows(t, r.db, &model.Donation{}))
}

func TestDonationCreateProviderFailure(t *testing.T) {
	r := newRepos(t)
	svc := NewDonationService(r.donations, &fakeProvider{err: errors.New("mollie: 503")}, nil, DonationConfig{})

	_, err := svc.Create(context.Background(), CreateDonationRequest{Amount: decimal.NewFromInt(10)})
	assert.True(t, errors.Is(err, apperror.ErrInternal))
	assert.Equal(t, "Failed to create donation", err.Error())
}

func TestDonationWebhook(t *testing.T) {
	r := newRepos(t)
	provider := &fakeProvider{}
	n := &recordingNotifier{}
	svc := NewDonationService(r.donations, provider, n, DonationConfig{PublicURL: "https://weeskitten.nl"})

	res, err := svc.Create(context.Background(), CreateDonationRequest{DonorName: "Jan", Amount: decimal.NewFromInt(15)})
	require.NoError(t, err)

	provider.status = model.PaymentStatusPaid
	require.NoError(t, svc.HandleWebhook(context.Background(), "tr_WDqYK6vllg"))

	stored, err := r.donations.FindByID(context.Background(), res.DonationID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPaid, stored.PaymentStatus)
	assert.Equal(t, []string{notify.EventDonationPaid}, n.events)

	// a repeated webhook with the same status is a no-op
	require.NoError(t, svc.HandleWebhook(context.Background(), "tr_WDqYK6vllg"))
	assert.Len(t, n.events, 1)
}

func TestDonationWebhookEdgeCases(t *testing.T) {
	r := newRepos(t)
	svc := NewDonationService(r.donations, &fakeProvider{status: model.PaymentStatusPaid}, nil, DonationConfig{})

	err := svc.HandleWebhook(context.Background(), "")
	assert.True(t, errors.Is(err, apperror.ErrValidation))
	assert.Equal(t, "Payment ID required", err.Error())

	assert.NoError(t, svc.HandleWebhook(context.Background(), "tr_unknown"))

	noProvider := NewDonationService(r.donations, nil, nil, DonationConfig{})
	assert.True(t, errors.Is(noProvider.HandleWebhook(context.Background(), "tr_x"), apperror.ErrInternal))
}
