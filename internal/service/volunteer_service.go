package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"weeskitten/internal/apperror"
	"weeskitten/internal/auth"
	"weeskitten/internal/model"
	"weeskitten/internal/repository"
)

type VolunteerRequest struct {
	Name         string `json:"name" binding:"required"`
	Role         string `json:"role"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Bio          string `json:"bio"`
	ImageURL     string `json:"image_url"`
	DisplayOrder int    `json:"display_order"`
}

type VolunteerService interface {
	List(ctx context.Context) ([]model.Volunteer, error)
	Create(ctx context.Context, actor auth.Identity, req VolunteerRequest) (*model.Volunteer, error)
	Update(ctx context.Context, actor auth.Identity, id uint, req VolunteerRequest) (*model.Volunteer, error)
	Delete(ctx context.Context, actor auth.Identity, id uint) error
}

type volunteerService struct {
	volunteerRepo repository.VolunteerRepository
	auditRepo     repository.AuditRepository
	txManager     repository.TransactionManager
}

func NewVolunteerService(volunteerRepo repository.VolunteerRepository, auditRepo repository.AuditRepository, txManager repository.TransactionManager) VolunteerService {
	return &volunteerService{volunteerRepo: volunteerRepo, auditRepo: auditRepo, txManager: txManager}
}

func (s *volunteerService) List(ctx context.Context) ([]model.Volunteer, error) {
	volunteers, err := s.volunteerRepo.List(ctx)
	if err != nil {
		return nil, asAppError(err, "Failed to fetch volunteers")
	}
	return volunteers, nil
}

func (s *volunteerService) Create(ctx context.Context, actor auth.Identity, req VolunteerRequest) (*model.Volunteer, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, apperror.Validation("Name is required")
	}

	v := &model.Volunteer{
		Name:         req.Name,
		Role:         req.Role,
		Email:        req.Email,
		Phone:        req.Phone,
		Bio:          req.Bio,
		ImageURL:     req.ImageURL,
		DisplayOrder: req.DisplayOrder,
	}
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.volunteerRepo.Create(txCtx, v); err != nil {
			return fmt.Errorf("failed to create volunteer: %w", err)
		}
		return logAudit(txCtx, s.auditRepo, actor, model.ActionCreateVolunteer, strconv.FormatUint(uint64(v.ID), 10), v.Name, nil)
	})
	if err != nil {
		return nil, asAppError(err, "Failed to create volunteer")
	}
	return v, nil
}

func (s *volunteerService) Update(ctx context.Context, actor auth.Identity, id uint, req VolunteerRequest) (*model.Volunteer, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, apperror.Validation("Name is required")
	}

	var v *model.Volunteer
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		v, err = s.volunteerRepo.FindByID(txCtx, id)
		if err != nil {
			return notFoundOr(err, "Volunteer not found", "Failed to update volunteer")
		}
		v.Name = req.Name
		v.Role = req.Role
		v.Email = req.Email
		v.Phone = req.Phone
		v.Bio = req.Bio
		v.ImageURL = req.ImageURL
		v.DisplayOrder = req.DisplayOrder

		if err := s.volunteerRepo.Update(txCtx, v); err != nil {
			return fmt.Errorf("failed to update volunteer: %w", err)
		}
		return logAudit(txCtx, s.auditRepo, actor, model.ActionUpdateVolunteer, strconv.FormatUint(uint64(id), 10), v.Name, nil)
	})
	if err != nil {
		return nil, asAppError(err, "Failed to update volunteer")
	}
	return v, nil
}

func (s *volunteerService) Delete(ctx context.Context, actor auth.Identity, id uint) error {
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.volunteerRepo.Delete(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete volunteer: %w", err)
		}
		return logAudit(txCtx, s.auditRepo, actor, model.ActionDeleteVolunteer, strconv.FormatUint(uint64(id), 10), "", nil)
	})
	if err != nil {
		return asAppError(err, "Failed to delete volunteer")
	}
	return nil
}
