package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"weeskitten/internal/apperror"
	"weeskitten/internal/model"
	"weeskitten/internal/notify"
	"weeskitten/internal/payment"
	"weeskitten/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const donationDescription = "Donatie aan Kattenstichting"

var maxDonation = decimal.RequireFromString("99999999.99")

// DTOs
type CreateDonationRequest struct {
	DonorName  string          `json:"donor_name"`
	DonorEmail string          `json:"donor_email"`
	Amount     decimal.Decimal `json:"amount"`
	Message    string          `json:"message"`
}

type CreateDonationResponse struct {
	DonationID  uint   `json:"donation_id"`
	CheckoutURL string `json:"checkout_url"`
}

// DonationConfig holds the public addresses handed to the payment provider.
type DonationConfig struct {
	PublicURL string
	// WebhookEnabled is false when PublicURL is not reachable by the provider.
	WebhookEnabled bool
}

type DonationService interface {
	Create(ctx context.Context, req CreateDonationRequest) (*CreateDonationResponse, error)
	// HandleWebhook refreshes the stored status of paymentID from the provider.
	HandleWebhook(ctx context.Context, paymentID string) error
	List(ctx context.Context, page, limit int) ([]model.Donation, int64, error)
}

type donationService struct {
	donationRepo repository.DonationRepository
	provider     payment.Provider
	notifier     notify.Notifier
	cfg          DonationConfig
}

func NewDonationService(
	donationRepo repository.DonationRepository,
	provider payment.Provider,
	notifier notify.Notifier,
	cfg DonationConfig,
) DonationService {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	cfg.PublicURL = strings.TrimRight(cfg.PublicURL, "/")
	return &donationService{
		donationRepo: donationRepo,
		provider:     provider,
		notifier:     notifier,
		cfg:          cfg,
	}
}

func (s *donationService) Create(ctx context.Context, req CreateDonationRequest) (*CreateDonationResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, apperror.Validation("Amount must be greater than zero")
	}
	if req.Amount.GreaterThan(maxDonation) {
		return nil, apperror.Validation("Amount is too large")
	}
	if s.provider == nil {
		return nil, apperror.Internal("Failed to create donation", errors.New("payment provider not configured"))
	}

	donation := &model.Donation{
		DonorName:     strings.TrimSpace(req.DonorName),
		DonorEmail:    strings.TrimSpace(req.DonorEmail),
		Amount:        req.Amount.Round(2),
		Message:       req.Message,
		PaymentStatus: model.PaymentStatusPending,
	}
	if err := s.donationRepo.Create(ctx, donation); err != nil {
		return nil, apperror.Internal("Failed to create donation", fmt.Errorf("failed to create donation: %w", err))
	}

	id := strconv.FormatUint(uint64(donation.ID), 10)
	payReq := payment.Request{
		Amount:      donation.Amount,
		Description: donationDescription,
		RedirectURL: s.cfg.PublicURL + "/donatie/bedankt?donation_id=" + id,
		Metadata:    map[string]string{"donation_id": id},
	}
	if s.cfg.WebhookEnabled {
		payReq.WebhookURL = s.cfg.PublicURL + "/api/donations/webhook"
	}

	p, err := s.provider.CreatePayment(ctx, payReq)
	if err != nil {
		// the donation row stays pending without a payment id
		return nil, apperror.Internal("Failed to create donation", err)
	}

	if err := s.donationRepo.SetPaymentID(ctx, donation.ID, p.ID); err != nil {
		return nil, apperror.Internal("Failed to create donation", fmt.Errorf("failed to store payment id: %w", err))
	}

	return &CreateDonationResponse{DonationID: donation.ID, CheckoutURL: p.CheckoutURL}, nil
}

func (s *donationService) HandleWebhook(ctx context.Context, paymentID string) error {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return apperror.Validation("Payment ID required")
	}
	if s.provider == nil {
		return apperror.Internal("Failed to process webhook", errors.New("payment provider not configured"))
	}

	p, err := s.provider.GetPayment(ctx, paymentID)
	if err != nil {
		return apperror.Internal("Failed to process webhook", err)
	}

	donation, err := s.donationRepo.FindByPaymentID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("donation webhook: no donation for payment %s", paymentID)
			return nil
		}
		return apperror.Internal("Failed to process webhook", err)
	}

	if donation.PaymentStatus == p.Status {
		return nil
	}
	if err := s.donationRepo.UpdatePaymentStatus(ctx, donation.ID, p.Status); err != nil {
		return apperror.Internal("Failed to process webhook", fmt.Errorf("failed to update donation %d: %w", donation.ID, err))
	}

	if p.Status == model.PaymentStatusPaid {
		if err := s.notifier.Notify(ctx, notify.EventDonationPaid, map[string]any{
			"id":         donation.ID,
			"donor_name": donation.DonorName,
			"amount":     donation.Amount,
		}); err != nil {
			log.Printf("donation %d: notification failed: %v", donation.ID, err)
		}
	}
	return nil
}

func (s *donationService) List(ctx context.Context, page, limit int) ([]model.Donation, int64, error) {
	donations, total, err := s.donationRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, asAppError(err, "Failed to fetch donations")
	}
	return donations, total, nil
}
