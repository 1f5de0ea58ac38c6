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

// DTOs
type CatRequest struct {
	Name        string `json:"name" binding:"required"`
	Age         string `json:"age"`
	Gender      string `json:"gender"`
	Breed       string `json:"breed"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Status      string `json:"status"`
}

type CatService interface {
	List(ctx context.Context, filter repository.CatFilter) ([]model.Cat, error)
	Get(ctx context.Context, id uint) (*model.Cat, error)
	Create(ctx context.Context, actor auth.Identity, req CatRequest) (*model.Cat, error)
	Update(ctx context.Context, actor auth.Identity, id uint, req CatRequest) (*model.Cat, error)
	Delete(ctx context.Context, actor auth.Identity, id uint) error
}

type catService struct {
	catRepo      repository.CatRepository
	adoptionRepo repository.AdoptionRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
}

func NewCatService(
	catRepo repository.CatRepository,
	adoptionRepo repository.AdoptionRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) CatService {
	return &catService{
		catRepo:      catRepo,
		adoptionRepo: adoptionRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
	}
}

func (s *catService) List(ctx context.Context, filter repository.CatFilter) ([]model.Cat, error) {
	if filter.Status != "" && !model.ValidCatStatus(filter.Status) {
		return nil, apperror.Validation("Invalid status")
	}
	cats, err := s.catRepo.List(ctx, filter)
	if err != nil {
		return nil, asAppError(err, "Failed to fetch cats")
	}
	return cats, nil
}

func (s *catService) Get(ctx context.Context, id uint) (*model.Cat, error) {
	cat, err := s.catRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Cat not found", "Failed to fetch cat")
	}
	return cat, nil
}

func validateCat(req *CatRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return apperror.Validation("Name is required")
	}
	if req.Status == "" {
		req.Status = model.CatStatusAvailable
	}
	if !model.ValidCatStatus(req.Status) {
		return apperror.Validation("Invalid status")
	}
	return nil
}

func (s *catService) Create(ctx context.Context, actor auth.Identity, req CatRequest) (*model.Cat, error) {
	if err := validateCat(&req); err != nil {
		return nil, err
	}

	cat := &model.Cat{
		Name:        req.Name,
		Age:         req.Age,
		Gender:      req.Gender,
		Breed:       req.Breed,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Status:      req.Status,
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.catRepo.Create(txCtx, cat); err != nil {
			return fmt.Errorf("failed to create cat: %w", err)
		}
		return logAudit(txCtx, s.auditRepo, actor, model.ActionCreateCat, strconv.FormatUint(uint64(cat.ID), 10), cat.Name, req)
	})
	if err != nil {
		return nil, asAppError(err, "Failed to create cat")
	}
	return cat, nil
}

func (s *catService) Update(ctx context.Context, actor auth.Identity, id uint, req CatRequest) (*model.Cat, error) {
	if err := validateCat(&req); err != nil {
		return nil, err
	}

	var cat *model.Cat
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		cat, err = s.catRepo.FindByID(txCtx, id)
		if err != nil {
			return notFoundOr(err, "Cat not found", "Failed to update cat")
		}

		cat.Name = req.Name
		cat.Age = req.Age
		cat.Gender = req.Gender
		cat.Breed = req.Breed
		cat.Description = req.Description
		cat.ImageURL = req.ImageURL
		cat.Status = req.Status

		if err := s.catRepo.Update(txCtx, cat); err != nil {
			return fmt.Errorf("failed to update cat: %w", err)
		}
		return logAudit(txCtx, s.auditRepo, actor, model.ActionUpdateCat, strconv.FormatUint(uint64(id), 10), cat.Name, req)
	})
	if err != nil {
		return nil, asAppError(err, "Failed to update cat")
	}
	return cat, nil
}

// Delete removes the cat and its adoption requests. Deleting an unknown id succeeds.
func (s *catService) Delete(ctx context.Context, actor auth.Identity, id uint) error {
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.adoptionRepo.DeleteByCat(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete adoption requests of cat %d: %w", id, err)
		}
		if err := s.catRepo.Delete(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete cat: %w", err)
		}
		return logAudit(txCtx, s.auditRepo, actor, model.ActionDeleteCat, strconv.FormatUint(uint64(id), 10), "", nil)
	})
	if err != nil {
		return asAppError(err, "Failed to delete cat")
	}
	return nil
}
