package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"weeskitten/internal/apperror"
	"weeskitten/internal/auth"
	"weeskitten/internal/csrf"
	"weeskitten/internal/model"
	"weeskitten/internal/ratelimit"
	"weeskitten/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DTOs
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AdminResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type LoginResponse struct {
	Token     string        `json:"token"`
	CSRFToken string        `json:"csrf_token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Admin     AdminResponse `json:"admin"`
}

type CSRFResponse struct {
	CSRFToken string    `json:"csrf_token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type CreateAdminRequest struct {
	Username string
	Email    string
	Password string
}

type AuthService interface {
	// Login also returns the rate-limit state so callers can expose it.
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, ratelimit.Result, error)
	Me(ctx context.Context, id auth.Identity) (*AdminResponse, error)
	IssueCSRF(ctx context.Context, id auth.Identity) (*CSRFResponse, error)
	CreateAdmin(ctx context.Context, req CreateAdminRequest) (*AdminResponse, error)
}

type authService struct {
	adminRepo repository.AdminRepository
	tokens    *auth.TokenManager
	limiter   *ratelimit.Limiter
	policy    ratelimit.Policy
	csrf      *csrf.Manager
}

func NewAuthService(
	adminRepo repository.AdminRepository,
	tokens *auth.TokenManager,
	limiter *ratelimit.Limiter,
	policy ratelimit.Policy,
	csrfManager *csrf.Manager,
) AuthService {
	return &authService{
		adminRepo: adminRepo,
		tokens:    tokens,
		limiter:   limiter,
		policy:    policy,
		csrf:      csrfManager,
	}
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, ratelimit.Result, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, ratelimit.Result{}, apperror.Validation("Username and password are required")
	}

	limit := s.limiter.Check(ctx, "login:"+strings.ToLower(username), s.policy)
	if !limit.Allowed {
		return nil, limit, apperror.New(apperror.KindRateLimited, "Too many login attempts. Please try again later.")
	}

	admin, err := s.adminRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, limit, apperror.Unauthorized("Invalid credentials")
		}
		return nil, limit, apperror.Internal("Login failed", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, limit, apperror.Unauthorized("Invalid credentials")
	}

	identity := auth.Identity{ID: admin.ID, Username: admin.Username}
	token, expiresAt, err := s.tokens.Issue(identity)
	if err != nil {
		return nil, limit, err
	}

	csrfToken, _, err := s.csrf.Generate(ctx, admin.ID)
	if err != nil {
		return nil, limit, err
	}

	return &LoginResponse{
		Token:     token,
		CSRFToken: csrfToken,
		ExpiresAt: expiresAt,
		Admin:     toAdminResponse(admin),
	}, limit, nil
}

func (s *authService) Me(ctx context.Context, id auth.Identity) (*AdminResponse, error) {
	admin, err := s.adminRepo.FindByID(ctx, id.ID)
	if err != nil {
		// the token outlived the account
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthorized("Unauthorized")
		}
		return nil, apperror.Internal("Failed to fetch admin", err)
	}
	res := toAdminResponse(admin)
	return &res, nil
}

func (s *authService) IssueCSRF(ctx context.Context, id auth.Identity) (*CSRFResponse, error) {
	token, expiresAt, err := s.csrf.Generate(ctx, id.ID)
	if err != nil {
		return nil, err
	}
	return &CSRFResponse{CSRFToken: token, ExpiresAt: expiresAt}, nil
}

func (s *authService) CreateAdmin(ctx context.Context, req CreateAdminRequest) (*AdminResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, apperror.Validation("Username and password are required")
	}
	if len(req.Password) < 8 {
		return nil, apperror.Validation("Password must be at least 8 characters")
	}

	if _, err := s.adminRepo.FindByUsername(ctx, username); err == nil {
		return nil, apperror.Validation("Username already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Internal("Failed to create admin", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal("Failed to create admin", fmt.Errorf("failed to hash password: %w", err))
	}

	admin := &model.Admin{
		Username:     username,
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: string(hashed),
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, apperror.Internal("Failed to create admin", fmt.Errorf("failed to create admin: %w", err))
	}

	res := toAdminResponse(admin)
	return &res, nil
}

func toAdminResponse(a *model.Admin) AdminResponse {
	return AdminResponse{ID: a.ID, Username: a.Username, Email: a.Email}
}
