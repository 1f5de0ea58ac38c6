package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"weeskitten/internal/apperror"
	"weeskitten/internal/model"
	"weeskitten/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlogSlugs(t *testing.T) {
	r := newRepos(t)
	svc := NewBlogService(r.blog, r.audits, r.tx)
	ctx := context.Background()

	post, err := svc.Create(ctx, testAdmin, BlogPostRequest{Title: "Nieuwe katten in de opvang!", Published: true})
	require.NoError(t, err)
	assert.Equal(t, "nieuwe-katten-in-de-opvang", post.Slug)
	require.NotNil(t, post.AuthorID)
	assert.Equal(t, testAdmin.ID, *post.AuthorID)

	_, err = svc.Create(ctx, testAdmin, BlogPostRequest{Title: "Dubbel", Slug: "Nieuwe katten in de opvang"})
	assert.True(t, errors.Is(err, apperror.ErrValidation))
	assert.Equal(t, "A blog post with this slug already exists", err.Error())

	_, err = svc.Create(ctx, testAdmin, BlogPostRequest{Title: "  "})
	assert.True(t, errors.Is(err, apperror.ErrValidation))

	updated, err := svc.Update(ctx, testAdmin, post.Slug, BlogPostRequest{Title: "Zomer bij de opvang", Slug: "zomer"})
	require.NoError(t, err)
	assert.Equal(t, "zomer", updated.Slug)
	assert.False(t, updated.Published)

	_, err = svc.GetBySlug(ctx, "nieuwe-katten-in-de-opvang")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	require.NoError(t, svc.Delete(ctx, testAdmin, "zomer"))
	require.NoError(t, svc.Delete(ctx, testAdmin, "zomer"))
	assert.EqualValues(t, 4, countRows(t, r.db, &model.AuditLog{}))
}

func TestBlogDraftsHiddenFromPublicList(t *testing.T) {
	r := newRepos(t)
	svc := NewBlogService(r.blog, r.audits, r.tx)
	ctx := context.Background()

	_, err := svc.Create(ctx, testAdmin, BlogPostRequest{Title: "Gepubliceerd", Published: true})
	require.NoError(t, err)
	_, err = svc.Create(ctx, testAdmin, BlogPostRequest{Title: "Concept"})
	require.NoError(t, err)

	public, err := svc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "gepubliceerd", public[0].Slug)

	all, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCatDeleteRemovesRequests(t *testing.T) {
	r := newRepos(t)
	cats := NewCatService(r.cats, r.adoptions, r.audits, r.tx)
	adoptions := NewAdoptionService(r.adoptions, r.cats, r.audits, r.tx, nil)
	ctx := context.Background()

	cat, err := cats.Create(ctx, testAdmin, CatRequest{Name: "Minoes"})
	require.NoError(t, err)
	assert.Equal(t, model.CatStatusAvailable, cat.Status)

	_, err = adoptions.Create(ctx, validRequest(cat.ID))
	require.NoError(t, err)

	require.NoError(t, cats.Delete(ctx, testAdmin, cat.ID))
	assert.Zero(t, countRows(t, r.db, &model.AdoptionRequest{}))

	_, err = cats.Get(ctx, cat.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
	require.NoError(t, cats.Delete(ctx, testAdmin, cat.ID))
}

func TestCatValidation(t *testing.T) {
	r := newRepos(t)
	cats := NewCatService(r.cats, r.adoptions, r.audits, r.tx)
	ctx := context.Background()

	_, err := cats.Create(ctx, testAdmin, CatRequest{Name: "Minoes", Status: "lost"})
	assert.True(t, errors.Is(err, apperror.ErrValidation))

	_, err = cats.List(ctx, repository.CatFilter{Status: "lost"})
	assert.True(t, errors.Is(err, apperror.ErrValidation))

	_, err = cats.Update(ctx, testAdmin, 42, CatRequest{Name: "Minoes"})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestVolunteers(t *testing.T) {
	r := newRepos(t)
	svc := NewVolunteerService(repository.NewVolunteerRepository(r.db), r.audits, r.tx)
	ctx := context.Background()

	_, err := svc.Create(ctx, testAdmin, VolunteerRequest{Name: "Sanne", DisplayOrder: 2})
	require.NoError(t, err)
	first, err := svc.Create(ctx, testAdmin, VolunteerRequest{Name: "Pieter", DisplayOrder: 1})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Pieter", list[0].Name)

	updated, err := svc.Update(ctx, testAdmin, first.ID, VolunteerRequest{Name: "Pieter", Role: "Coördinator", DisplayOrder: 3})
	require.NoError(t, err)
	assert.Equal(t, "Coördinator", updated.Role)

	require.NoError(t, svc.Delete(ctx, testAdmin, first.ID))
	list, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSettings(t *testing.T) {
	r := newRepos(t)
	svc := NewSettingService(r.settings, r.audits, r.tx)
	ctx := context.Background()

	_, err := svc.Update(ctx, testAdmin, UpdateSettingRequest{Key: "site_name", Value: "Weeskitten"})
	require.NoError(t, err)
	_, err = svc.Update(ctx, testAdmin, UpdateSettingRequest{Key: "smtp_pass", Value: "hunter2"})
	require.NoError(t, err)

	public, err := svc.Public(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Weeskitten", public["site_name"])
	assert.NotContains(t, public, "smtp_pass")

	all, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", all["smtp_pass"])

	logs, _, err := r.audits.List(ctx, 1, 10, model.ActionUpdateSetting)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	for _, l := range logs {
		assert.NotContains(t, l.Details, "hunter2")
	}

	_, err = svc.Update(ctx, testAdmin, UpdateSettingRequest{Key: " "})
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}

func TestDashboard(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, r.cats.Create(ctx, &model.Cat{Name: "Minoes", CreatedAt: base}))
	require.NoError(t, r.cats.Create(ctx, &model.Cat{Name: "Tijger", Status: model.CatStatusAdopted, CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, r.donations.Create(ctx, &model.Donation{
		DonorName: "Jan", Amount: decimal.RequireFromString("25.50"), PaymentStatus: model.PaymentStatusPaid, CreatedAt: base.Add(2 * time.Hour),
	}))
	require.NoError(t, r.donations.Create(ctx, &model.Donation{
		DonorName: "Piet", Amount: decimal.NewFromInt(10), PaymentStatus: model.PaymentStatusOpen, CreatedAt: base.Add(3 * time.Hour),
	}))

	stats, err := NewStatisticsService(repository.NewStatisticsRepository(r.db)).Dashboard(ctx)
	require.NoError(t, err)

	assert.EqualValues(t, 2, stats.Cats.Total)
	assert.EqualValues(t, 1, stats.Donations.Successful)
	assert.True(t, stats.Donations.PaidAmount.Equal(decimal.RequireFromString("25.50")))

	require.Len(t, stats.RecentActivity, 3)
	assert.Equal(t, "€25.50 - Jan", stats.RecentActivity[0].Title)
	assert.Equal(t, "Tijger", stats.RecentActivity[1].Title)
}
