package repository

import (
	"context"

	"weeskitten/internal/model"

	"gorm.io/gorm"
)

type DonationRepository interface {
	Create(ctx context.Context, d *model.Donation) error
	FindByID(ctx context.Context, id uint) (*model.Donation, error)
	FindByPaymentID(ctx context.Context, paymentID string) (*model.Donation, error)
	SetPaymentID(ctx context.Context, id uint, paymentID string) error
	UpdatePaymentStatus(ctx context.Context, id uint, status string) error
	List(ctx context.Context, page, limit int) ([]model.Donation, int64, error)
}

type donationRepository struct {
	db *gorm.DB
}

func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) Create(ctx context.Context, d *model.Donation) error {
	return GetDB(ctx, r.db).Create(d).Error
}

func (r *donationRepository) FindByID(ctx context.Context, id uint) (*model.Donation, error) {
	var d model.Donation
	if err := GetDB(ctx, r.db).First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *donationRepository) FindByPaymentID(ctx context.Context, paymentID string) (*model.Donation, error) {
	var d model.Donation
	if err := GetDB(ctx, r.db).Where("payment_id = ?", paymentID).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *donationRepository) SetPaymentID(ctx context.Context, id uint, paymentID string) error {
	return GetDB(ctx, r.db).Model(&model.Donation{}).Where("id = ?", id).Update("payment_id", paymentID).Error
}

func (r *donationRepository) UpdatePaymentStatus(ctx context.Context, id uint, status string) error {
	return GetDB(ctx, r.db).Model(&model.Donation{}).Where("id = ?", id).Update("payment_status", status).Error
}

func (r *donationRepository) List(ctx context.Context, page, limit int) ([]model.Donation, int64, error) {
	var donations []model.Donation
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Donation{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("created_at desc").Order("id desc").Offset(offset).Limit(limit).Find(&donations).Error; err != nil {
		return nil, 0, err
	}

	return donations, total, nil
}
