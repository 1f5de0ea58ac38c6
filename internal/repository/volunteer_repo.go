package repository

import (
	"context"

	"weeskitten/internal/model"

	"gorm.io/gorm"
)

type VolunteerRepository interface {
	Create(ctx context.Context, v *model.Volunteer) error
	Update(ctx context.Context, v *model.Volunteer) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Volunteer, error)
	List(ctx context.Context) ([]model.Volunteer, error)
}

type volunteerRepository struct {
	db *gorm.DB
}

func NewVolunteerRepository(db *gorm.DB) VolunteerRepository {
	return &volunteerRepository{db: db}
}

func (r *volunteerRepository) Create(ctx context.Context, v *model.Volunteer) error {
	return GetDB(ctx, r.db).Create(v).Error
}

func (r *volunteerRepository) Update(ctx context.Context, v *model.Volunteer) error {
	return GetDB(ctx, r.db).Save(v).Error
}

func (r *volunteerRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Volunteer{}).Error
}

func (r *volunteerRepository) FindByID(ctx context.Context, id uint) (*model.Volunteer, error) {
	var v model.Volunteer
	if err := GetDB(ctx, r.db).First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *volunteerRepository) List(ctx context.Context) ([]model.Volunteer, error) {
	var volunteers []model.Volunteer
	if err := GetDB(ctx, r.db).Order("display_order asc").Order("name asc").Find(&volunteers).Error; err != nil {
		return nil, err
	}
	return volunteers, nil
}
