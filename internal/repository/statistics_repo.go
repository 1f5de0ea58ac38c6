package repository

import (
	"context"
	"fmt"

	"weeskitten/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type StatisticsRepository interface {
	CatStats(ctx context.Context) (model.CatStats, error)
	BlogStats(ctx context.Context) (model.BlogStats, error)
	DonationStats(ctx context.Context) (model.DonationStats, error)
	RecentCats(ctx context.Context, limit int) ([]model.Cat, error)
	RecentPosts(ctx context.Context, limit int) ([]model.BlogPost, error)
	RecentPaidDonations(ctx context.Context, limit int) ([]model.Donation, error)
}

type statisticsRepository struct {
	db *gorm.DB
}

func NewStatisticsRepository(db *gorm.DB) StatisticsRepository {
	return &statisticsRepository{db: db}
}

func (r *statisticsRepository) CatStats(ctx context.Context) (model.CatStats, error) {
	var stats model.CatStats
	err := GetDB(ctx, r.db).Model(&model.Cat{}).
		Select("COUNT(*) AS total, "+
			"COUNT(CASE WHEN status = ? THEN 1 END) AS available, "+
			"COUNT(CASE WHEN status = ? THEN 1 END) AS reserved, "+
			"COUNT(CASE WHEN status = ? THEN 1 END) AS adopted",
			model.CatStatusAvailable, model.CatStatusReserved, model.CatStatusAdopted).
		Scan(&stats).Error
	if err != nil {
		return model.CatStats{}, fmt.Errorf("failed to query cat stats: %w", err)
	}
	return stats, nil
}

func (r *statisticsRepository) BlogStats(ctx context.Context) (model.BlogStats, error) {
	var stats model.BlogStats
	err := GetDB(ctx, r.db).Model(&model.BlogPost{}).
		Select("COUNT(*) AS total, "+
			"COUNT(CASE WHEN published = ? THEN 1 END) AS published, "+
			"COUNT(CASE WHEN published = ? THEN 1 END) AS drafts", true, false).
		Scan(&stats).Error
	if err != nil {
		return model.BlogStats{}, fmt.Errorf("failed to query blog stats: %w", err)
	}
	return stats, nil
}

func (r *statisticsRepository) DonationStats(ctx context.Context) (model.DonationStats, error) {
	var row struct {
		Total      int64
		Successful int64
		Pending    int64
		PaidAmount string
	}
	err := GetDB(ctx, r.db).Model(&model.Donation{}).
		Select("COUNT(*) AS total, "+
			"COUNT(CASE WHEN payment_status = ? THEN 1 END) AS successful, "+
			"COUNT(CASE WHEN payment_status = ? THEN 1 END) AS pending, "+
			"COALESCE(CAST(SUM(CASE WHEN payment_status = ? THEN amount END) AS TEXT), '0') AS paid_amount",
			model.PaymentStatusPaid, model.PaymentStatusPending, model.PaymentStatusPaid).
		Scan(&row).Error
	if err != nil {
		return model.DonationStats{}, fmt.Errorf("failed to query donation stats: %w", err)
	}

	amount, err := decimal.NewFromString(row.PaidAmount)
	if err != nil {
		return model.DonationStats{}, fmt.Errorf("failed to parse paid amount %q: %w", row.PaidAmount, err)
	}

	return model.DonationStats{
		Total:      row.Total,
		Successful: row.Successful,
		Pending:    row.Pending,
		PaidAmount: amount,
	}, nil
}

func (r *statisticsRepository) RecentCats(ctx context.Context, limit int) ([]model.Cat, error) {
	var cats []model.Cat
	if err := GetDB(ctx, r.db).Order("created_at desc").Limit(limit).Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

func (r *statisticsRepository) RecentPosts(ctx context.Context, limit int) ([]model.BlogPost, error) {
	var posts []model.BlogPost
	if err := GetDB(ctx, r.db).Order("created_at desc").Limit(limit).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *statisticsRepository) RecentPaidDonations(ctx context.Context, limit int) ([]model.Donation, error) {
	var donations []model.Donation
	if err := GetDB(ctx, r.db).Where("payment_status = ?", model.PaymentStatusPaid).
		Order("created_at desc").Limit(limit).Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}
