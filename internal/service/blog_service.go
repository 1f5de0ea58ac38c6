package service

import (
	"context"
	"fmt"
	"strings"

	"weeskitten/internal/apperror"
	"weeskitten/internal/auth"
	"weeskitten/internal/model"
	"weeskitten/internal/repository"
	"weeskitten/pkg/slug"
)

// DTOs
type BlogPostRequest struct {
	Title     string `json:"title" binding:"required"`
	Slug      string `json:"slug"`
	Excerpt   string `json:"excerpt"`
	Content   string `json:"content"`
	ImageURL  string `json:"image_url"`
	Published bool   `json:"published"`
}

type BlogService interface {
	List(ctx context.Context, includeDrafts bool) ([]model.BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (*model.BlogPost, error)
	Create(ctx context.Context, actor auth.Identity, req BlogPostRequest) (*model.BlogPost, error)
	Update(ctx context.Context, actor auth.Identity, slug string, req BlogPostRequest) (*model.BlogPost, error)
	Delete(ctx context.Context, actor auth.Identity, slug string) error
}

type blogService struct {
	blogRepo  repository.BlogRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
}

func NewBlogService(blogRepo repository.BlogRepository, auditRepo repository.AuditRepository, txManager repository.TransactionManager) BlogService {
	return &blogService{blogRepo: blogRepo, auditRepo: auditRepo, txManager: txManager}
}

func (s *blogService) List(ctx context.Context, includeDrafts bool) ([]model.BlogPost, error) {
	posts, err := s.blogRepo.List(ctx, includeDrafts)
	if err != nil {
		return nil, asAppError(err, "Failed to fetch blog posts")
	}
	return posts, nil
}

func (s *blogService) GetBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	post, err := s.blogRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, notFoundOr(err, "Blog post not found", "Failed to fetch blog post")
	}
	return post, nil
}

// normalizeSlug derives the slug from the title when none is given.
func normalizeSlug(req *BlogPostRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return apperror.Validation("Title is required")
	}
	if strings.TrimSpace(req.Slug) == "" {
		req.Slug = req.Title
	}
	req.Slug = slug.Make(req.Slug)
	if req.Slug == "" {
		return apperror.Validation("Slug must contain letters or digits")
	}
	return nil
}

func (s *blogService) ensureUniqueSlug(ctx context.Context, candidate string, excludeID uint) error {
	exists, err := s.blogRepo.SlugExists(ctx, candidate, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check slug: %w", err)
	}
	if exists {
		return apperror.Validation("A blog post with this slug already exists")
	}
	return nil
}

func (s *blogService) Create(ctx context.Context, actor auth.Identity, req BlogPostRequest) (*model.BlogPost, error) {
	if err := normalizeSlug(&req); err != nil {
		return nil, err
	}

	var authorID *uint
	if actor.ID != 0 {
		id := actor.ID
		authorID = &id
	}
	post := &model.BlogPost{
		Title:     req.Title,
		Slug:      req.Slug,
		Excerpt:   req.Excerpt,
		Content:   req.Content,
		ImageURL:  req.ImageURL,
		AuthorID:  authorID,
		Published: req.Published,
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.ensureUniqueSlug(txCtx, post.Slug, 0); err != nil {
			return err
		}
		if err := s.blogRepo.Create(txCtx, post); err != nil {
			return fmt.Errorf("failed to create blog post: %w", err)
		}
		return logAudit(txCtx, s.auditRepo, actor, model.ActionCreateBlogPost, post.Slug, post.Title, map[string]any{"published": post.Published})
	})
	if err != nil {
		return nil, asAppError(err, "Failed to create blog post")
	}
	return post, nil
}

func (s *blogService) Update(ctx context.Context, actor auth.Identity, currentSlug string, req BlogPostRequest) (*model.BlogPost, error) {
	if err := normalizeSlug(&req); err != nil {
		return nil, err
	}

	var post *model.BlogPost
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		post, err = s.blogRepo.FindBySlug(txCtx, currentSlug)
		if err != nil {
			return notFoundOr(err, "Blog post not found", "Failed to update blog post")
		}
		if req.Slug != post.Slug {
			if err := s.ensureUniqueSlug(txCtx, req.Slug, post.ID); err != nil {
				return err
			}
		}

		post.Title = req.Title
		post.Slug = req.Slug
		post.Excerpt = req.Excerpt
		post.Content = req.Content
		post.ImageURL = req.ImageURL
		post.Published = req.Published

		if err := s.blogRepo.Update(txCtx, post); err != nil {
			return fmt.Errorf("failed to update blog post: %w", err)
		}
		return logAudit(txCtx, s.auditRepo, actor, model.ActionUpdateBlogPost, post.Slug, post.Title,
			map[string]any{"previous_slug": currentSlug, "published": post.Published})
	})
	if err != nil {
		return nil, asAppError(err, "Failed to update blog post")
	}
	return post, nil
}

func (s *blogService) Delete(ctx context.Context, actor auth.Identity, slug string) error {
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.blogRepo.DeleteBySlug(txCtx, slug); err != nil {
			return fmt.Errorf("failed to delete blog post: %w", err)
		}
		return logAudit(txCtx, s.auditRepo, actor, model.ActionDeleteBlogPost, slug, "", nil)
	})
	if err != nil {
		return asAppError(err, "Failed to delete blog post")
	}
	return nil
}
