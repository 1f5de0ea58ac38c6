package repository

import (
	"context"

	"weeskitten/internal/model"

	"gorm.io/gorm"
)

type BlogRepository interface {
	Create(ctx context.Context, post *model.BlogPost) error
	Update(ctx context.Context, post *model.BlogPost) error
	FindBySlug(ctx context.Context, slug string) (*model.BlogPost, error)
	SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error)
	List(ctx context.Context, includeDrafts bool) ([]model.BlogPost, error)
	DeleteBySlug(ctx context.Context, slug string) error
}

type blogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(ctx context.Context, post *model.BlogPost) error {
	return GetDB(ctx, r.db).Create(post).Error
}

func (r *blogRepository) Update(ctx context.Context, post *model.BlogPost) error {
	return GetDB(ctx, r.db).Save(post).Error
}

func (r *blogRepository) FindBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	var post model.BlogPost
	if err := GetDB(ctx, r.db).Where("slug = ?", slug).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *blogRepository) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.BlogPost{}).
		Where("slug = ? AND id <> ?", slug, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *blogRepository) List(ctx context.Context, includeDrafts bool) ([]model.BlogPost, error) {
	var posts []model.BlogPost

	db := GetDB(ctx, r.db).Model(&model.BlogPost{})
	if !includeDrafts {
		db = db.Where("published = ?", true)
	}

	if err := db.Order("created_at desc").Order("id desc").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *blogRepository) DeleteBySlug(ctx context.Context, slug string) error {
	return GetDB(ctx, r.db).Where("slug = ?", slug).Delete(&model.BlogPost{}).Error
}
