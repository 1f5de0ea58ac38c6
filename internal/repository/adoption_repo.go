package repository

import (
	"context"
	"time"

	"weeskitten/internal/model"

	"gorm.io/gorm"
)

type AdoptionRepository interface {
	Create(ctx context.Context, req *model.AdoptionRequest) error
	// FindByID returns the request joined with its cat's name and image.
	FindByID(ctx context.Context, id uint) (*model.AdoptionRequest, error)
	ListByEmail(ctx context.Context, email string) ([]model.AdoptionRequest, error)
	List(ctx context.Context, status string) ([]model.AdoptionRequest, error)
	// UpdateStatus sets status, admin_notes and updated_at.
	// It returns gorm.ErrRecordNotFound when no request has id.
	UpdateStatus(ctx context.Context, id uint, status, notes string, at time.Time) error
	Delete(ctx context.Context, id uint) error
	DeleteByCat(ctx context.Context, catID uint) error
}

type adoptionRepository struct {
	db *gorm.DB
}

func NewAdoptionRepository(db *gorm.DB) AdoptionRepository {
	return &adoptionRepository{db: db}
}

func (r *adoptionRepository) Create(ctx context.Context, req *model.AdoptionRequest) error {
	return GetDB(ctx, r.db).Create(req).Error
}

func (r *adoptionRepository) withCat(ctx context.Context) *gorm.DB {
	return GetDB(ctx, r.db).Model(&model.AdoptionRequest{}).
		Select("adoption_requests.*, cats.name AS cat_name, cats.image_url AS cat_image").
		Joins("LEFT JOIN cats ON cats.id = adoption_requests.cat_id")
}

func (r *adoptionRepository) FindByID(ctx context.Context, id uint) (*model.AdoptionRequest, error) {
	var req model.AdoptionRequest
	if err := r.withCat(ctx).Where("adoption_requests.id = ?", id).Take(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *adoptionRepository) ListByEmail(ctx context.Context, email string) ([]model.AdoptionRequest, error) {
	var requests []model.AdoptionRequest
	err := r.withCat(ctx).Where("adoption_requests.email = ?", email).
		Order("adoption_requests.created_at desc").Order("adoption_requests.id desc").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *adoptionRepository) List(ctx context.Context, status string) ([]model.AdoptionRequest, error) {
	var requests []model.AdoptionRequest

	query := r.withCat(ctx)
	if status != "" {
		query = query.Where("adoption_requests.status = ?", status)
	}

	err := query.Order("adoption_requests.created_at desc").Order("adoption_requests.id desc").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *adoptionRepository) UpdateStatus(ctx context.Context, id uint, status, notes string, at time.Time) error {
	updates := map[string]any{"status": status, "admin_notes": notes, "updated_at": at}

	res := GetDB(ctx, r.db).Model(&model.AdoptionRequest{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *adoptionRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.AdoptionRequest{}).Error
}

func (r *adoptionRepository) DeleteByCat(ctx context.Context, catID uint) error {
	return GetDB(ctx, r.db).Where("cat_id = ?", catID).Delete(&model.AdoptionRequest{}).Error
}
