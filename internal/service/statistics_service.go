package service

import (
	"context"
	"sort"

	"weeskitten/internal/model"
	"weeskitten/internal/repository"
)

const (
	recentPerKind     = 3
	recentActivityCap = 10
)

type StatisticsService interface {
	Dashboard(ctx context.Context) (*model.DashboardStats, error)
}

type statisticsService struct {
	repo repository.StatisticsRepository
}

func NewStatisticsService(repo repository.StatisticsRepository) StatisticsService {
	return &statisticsService{repo: repo}
}

func (s *statisticsService) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	cats, err := s.repo.CatStats(ctx)
	if err != nil {
		return nil, asAppError(err, "Failed to fetch statistics")
	}
	blog, err := s.repo.BlogStats(ctx)
	if err != nil {
		return nil, asAppError(err, "Failed to fetch statistics")
	}
	donations, err := s.repo.DonationStats(ctx)
	if err != nil {
		return nil, asAppError(err, "Failed to fetch statistics")
	}

	activity, err := s.recentActivity(ctx)
	if err != nil {
		return nil, asAppError(err, "Failed to fetch statistics")
	}

	donations.PaidAmount = donations.PaidAmount.Round(2)
	return &model.DashboardStats{
		Cats:           cats,
		Blog:           blog,
		Donations:      donations,
		RecentActivity: activity,
	}, nil
}

func (s *statisticsService) recentActivity(ctx context.Context) ([]model.ActivityItem, error) {
	cats, err := s.repo.RecentCats(ctx, recentPerKind)
	if err != nil {
		return nil, err
	}
	posts, err := s.repo.RecentPosts(ctx, recentPerKind)
	if err != nil {
		return nil, err
	}
	donations, err := s.repo.RecentPaidDonations(ctx, recentPerKind)
	if err != nil {
		return nil, err
	}

	items := make([]model.ActivityItem, 0, len(cats)+len(posts)+len(donations))
	for _, c := range cats {
		items = append(items, model.ActivityItem{Type: "cat", Title: c.Name, Date: c.CreatedAt})
	}
	for _, p := range posts {
		items = append(items, model.ActivityItem{Type: "blog", Title: p.Title, Date: p.CreatedAt})
	}
	for _, d := range donations {
		items = append(items, model.ActivityItem{
			Type:  "donation",
			Title: "€" + d.Amount.StringFixed(2) + " - " + d.DonorName,
			Date:  d.CreatedAt,
		})
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].Date.After(items[j].Date) })
	if len(items) > recentActivityCap {
		items = items[:recentActivityCap]
	}
	return items, nil
}
