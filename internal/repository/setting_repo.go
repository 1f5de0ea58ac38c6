package repository

import (
	"context"
	"time"

	"weeskitten/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepository interface {
	All(ctx context.Context) ([]model.SiteSetting, error)
	Upsert(ctx context.Context, setting *model.SiteSetting) error
}

type settingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) All(ctx context.Context) ([]model.SiteSetting, error) {
	var settings []model.SiteSetting
	if err := GetDB(ctx, r.db).Order(clause.OrderByColumn{Column: clause.Column{Name: "key"}}).Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *settingRepository) Upsert(ctx context.Context, setting *model.SiteSetting) error {
	setting.UpdatedAt = time.Now()
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(setting).Error
}
