package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"weeskitten/internal/apperror"
	"weeskitten/internal/auth"
	"weeskitten/internal/model"
	"weeskitten/internal/notify"
	"weeskitten/internal/repository"

	"gorm.io/gorm"
)

// DTOs
type CreateAdoptionRequest struct {
	CatID                uint   `json:"cat_id"`
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Phone                string `json:"phone"`
	Address              string `json:"address"`
	City                 string `json:"city"`
	PostalCode           string `json:"postal_code"`
	HouseholdType        string `json:"household_type"`
	HasGarden            bool   `json:"has_garden"`
	HasOtherPets         bool   `json:"has_other_pets"`
	OtherPetsDescription string `json:"other_pets_description"`
	HasChildren          bool   `json:"has_children"`
	ChildrenAges         string `json:"children_ages"`
	CatExperience        string `json:"cat_experience"`
	Motivation           string `json:"motivation"`
}

type TransitionRequest struct {
	Status string `json:"status"`
	// AdminNotes always replaces the stored notes; omitting it clears them.
	AdminNotes string `json:"admin_notes"`
}

type AdoptionService interface {
	Create(ctx context.Context, req CreateAdoptionRequest) (*model.AdoptionRequest, error)
	Get(ctx context.Context, id uint) (*model.AdoptionRequest, error)
	ListByEmail(ctx context.Context, email string) ([]model.AdoptionRequest, error)
	ListAll(ctx context.Context, status string) ([]model.AdoptionRequest, error)
	Delete(ctx context.Context, actor auth.Identity, id uint) error
	// Transition moves a request to a new status and updates its cat in the same transaction.
	Transition(ctx context.Context, actor auth.Identity, id uint, req TransitionRequest) (*model.AdoptionRequest, error)
}

type adoptionService struct {
	adoptionRepo repository.AdoptionRepository
	catRepo      repository.CatRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
	notifier     notify.Notifier
	now          func() time.Time
}

func NewAdoptionService(
	adoptionRepo repository.AdoptionRepository,
	catRepo repository.CatRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	notifier notify.Notifier,
) AdoptionService {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &adoptionService{
		adoptionRepo: adoptionRepo,
		catRepo:      catRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		notifier:     notifier,
		now:          time.Now,
	}
}

func (s *adoptionService) Create(ctx context.Context, req CreateAdoptionRequest) (*model.AdoptionRequest, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Motivation = strings.TrimSpace(req.Motivation)

	if req.CatID == 0 || req.Name == "" || req.Email == "" || req.Motivation == "" {
		return nil, apperror.Validation("Cat, name, email and motivation are required")
	}
	if !model.ValidHouseholdType(req.HouseholdType) {
		return nil, apperror.Validation("Invalid household type")
	}

	// Availability is not checked: a request for a reserved or adopted cat is still recorded.
	cat, err := s.catRepo.FindByID(ctx, req.CatID)
	if err != nil {
		return nil, notFoundOr(err, "Cat not found", "Failed to create adoption request")
	}

	request := &model.AdoptionRequest{
		CatID:                cat.ID,
		Name:                 req.Name,
		Email:                req.Email,
		Phone:                req.Phone,
		Address:              req.Address,
		City:                 req.City,
		PostalCode:           req.PostalCode,
		HouseholdType:        req.HouseholdType,
		HasGarden:            req.HasGarden,
		HasOtherPets:         req.HasOtherPets,
		OtherPetsDescription: req.OtherPetsDescription,
		HasChildren:          req.HasChildren,
		ChildrenAges:         req.ChildrenAges,
		CatExperience:        req.CatExperience,
		Motivation:           req.Motivation,
		Status:               model.AdoptionStatusPending,
	}
	if err := s.adoptionRepo.Create(ctx, request); err != nil {
		return nil, apperror.Internal("Failed to create adoption request", fmt.Errorf("failed to create adoption request: %w", err))
	}
	request.CatName = cat.Name
	request.CatImage = cat.ImageURL

	if err := s.notifier.Notify(ctx, notify.EventAdoptionRequestCreated, map[string]any{
		"id":       request.ID,
		"cat_id":   cat.ID,
		"cat_name": cat.Name,
		"name":     request.Name,
		"email":    request.Email,
	}); err != nil {
		log.Printf("adoption request %d: notification failed: %v", request.ID, err)
	}

	return request, nil
}

func (s *adoptionService) Get(ctx context.Context, id uint) (*model.AdoptionRequest, error) {
	req, err := s.adoptionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Adoption request not found", "Failed to fetch adoption request")
	}
	return req, nil
}

func (s *adoptionService) ListByEmail(ctx context.Context, email string) ([]model.AdoptionRequest, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperror.Validation("Email is required")
	}
	requests, err := s.adoptionRepo.ListByEmail(ctx, email)
	if err != nil {
		return nil, asAppError(err, "Failed to fetch adoption requests")
	}
	return requests, nil
}

func (s *adoptionService) ListAll(ctx context.Context, status string) ([]model.AdoptionRequest, error) {
	requests, err := s.adoptionRepo.List(ctx, status)
	if err != nil {
		return nil, asAppError(err, "Failed to fetch adoption requests")
	}
	return requests, nil
}

// Delete removes the request. Deleting an unknown id succeeds.
func (s *adoptionService) Delete(ctx context.Context, actor auth.Identity, id uint) error {
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.adoptionRepo.Delete(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete adoption request: %w", err)
		}
		return logAudit(txCtx, s.auditRepo, actor, model.ActionDeleteAdoptionRequest, strconv.FormatUint(uint64(id), 10), "", nil)
	})
	if err != nil {
		return asAppError(err, "Failed to delete adoption request")
	}
	return nil
}

// catStatusFor is the cat status implied by a request status. ok is false when the cat is left alone.
func catStatusFor(requestStatus string) (status string, ok bool) {
	switch requestStatus {
	case model.AdoptionStatusApproved, model.AdoptionStatusCompleted:
		return model.CatStatusAdopted, true
	case model.AdoptionStatusRejected:
		return model.CatStatusAvailable, true
	}
	return "", false
}

func (s *adoptionService) Transition(ctx context.Context, actor auth.Identity, id uint, req TransitionRequest) (*model.AdoptionRequest, error) {
	if !model.ValidAdoptionStatus(req.Status) {
		return nil, apperror.Validation("Invalid status")
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.adoptionRepo.FindByID(txCtx, id)
		if err != nil {
			return notFoundOr(err, "Adoption request not found", "Failed to update adoption request")
		}

		if err := s.adoptionRepo.UpdateStatus(txCtx, id, req.Status, req.AdminNotes, s.now()); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("Adoption request not found")
			}
			return fmt.Errorf("failed to update adoption request: %w", err)
		}

		// cat_id never changes after creation, so the row read above is authoritative for it
		catStatus, changesCat := catStatusFor(req.Status)
		if changesCat {
			if err := s.catRepo.UpdateStatus(txCtx, current.CatID, catStatus); err != nil {
				return fmt.Errorf("failed to set cat %d %s: %w", current.CatID, catStatus, err)
			}
		}

		details := map[string]any{"from": current.Status, "to": req.Status, "cat_id": current.CatID}
		if changesCat {
			details["cat_status"] = catStatus
		}
		return logAudit(txCtx, s.auditRepo, actor, model.ActionTransitionAdoptionRequest,
			strconv.FormatUint(uint64(id), 10), current.Name, details)
	})
	if err != nil {
		return nil, asAppError(err, "Failed to update adoption request")
	}

	return s.Get(ctx, id)
}
