package repository

import (
	"context"
	"time"

	"weeskitten/internal/model"

	"gorm.io/gorm"
)

// CatFilter narrows List. By default adopted cats are hidden.
type CatFilter struct {
	Status         string
	IncludeAdopted bool
}

type CatRepository interface {
	Create(ctx context.Context, cat *model.Cat) error
	Update(ctx context.Context, cat *model.Cat) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Cat, error)
	List(ctx context.Context, filter CatFilter) ([]model.Cat, error)
	// UpdateStatus returns gorm.ErrRecordNotFound when no cat has id.
	UpdateStatus(ctx context.Context, id uint, status string) error
}

type catRepository struct {
	db *gorm.DB
}

func NewCatRepository(db *gorm.DB) CatRepository {
	return &catRepository{db: db}
}

func (r *catRepository) Create(ctx context.Context, cat *model.Cat) error {
	return GetDB(ctx, r.db).Create(cat).Error
}

func (r *catRepository) Update(ctx context.Context, cat *model.Cat) error {
	return GetDB(ctx, r.db).Save(cat).Error
}

func (r *catRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Cat{}).Error
}

func (r *catRepository) FindByID(ctx context.Context, id uint) (*model.Cat, error) {
	var cat model.Cat
	if err := GetDB(ctx, r.db).First(&cat, id).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *catRepository) List(ctx context.Context, filter CatFilter) ([]model.Cat, error) {
	var cats []model.Cat

	db := GetDB(ctx, r.db).Model(&model.Cat{})
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	} else if !filter.IncludeAdopted {
		db = db.Where("status <> ?", model.CatStatusAdopted)
	}

	if err := db.Order("created_at desc").Order("id desc").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

func (r *catRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	res := GetDB(ctx, r.db).Model(&model.Cat{}).Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
