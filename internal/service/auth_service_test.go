package service

import (
	"context"
	"errors"
	"testing"

	"weeskitten/internal/apperror"
	"weeskitten/internal/auth"
	"weeskitten/internal/csrf"
	"weeskitten/internal/model"
	"weeskitten/internal/ratelimit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func seedAdmin(t *testing.T, r repos, username, password string) *model.Admin {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	admin := &model.Admin{Username: username, Email: username + "@weeskitten.nl", PasswordHash: string(hash)}
	require.NoError(t, r.admins.Create(context.Background(), admin))
	return admin
}

func TestLogin(t *testing.T) {
	r := newRepos(t)
	admin := seedAdmin(t, r, "beheer", "correct-horse")
	tokens := auth.NewTokenManager("test-secret", 0)
	csrfManager := csrf.NewManager(csrf.NewMemoryStore(), 0)
	svc := NewAuthService(r.admins, tokens, ratelimit.NewLimiter(ratelimit.NewMemoryStore()), ratelimit.LoginPolicy, csrfManager)

	res, limit, err := svc.Login(context.Background(), LoginRequest{Username: "beheer", Password: "correct-horse"})
	require.NoError(t, err)
	assert.True(t, limit.Allowed)
	assert.Equal(t, 4, limit.Remaining)
	assert.Equal(t, admin.ID, res.Admin.ID)
	assert.NotEmpty(t, res.CSRFToken)

	id, err := tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, auth.Identity{ID: admin.ID, Username: "beheer"}, id)

	require.NoError(t, csrfManager.Verify(context.Background(), admin.ID, res.CSRFToken))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r := newRepos(t)
	seedAdmin(t, r, "beheer", "correct-horse")
	svc := newAuthService(r)

	_, _, err := svc.Login(context.Background(), LoginRequest{Username: "beheer", Password: "wrong"})
	assert.True(t, errors.Is(err, apperror.ErrUnauthorized))
	assert.Equal(t, "Invalid credentials", err.Error())

	_, _, err = svc.Login(context.Background(), LoginRequest{Username: "nobody", Password: "wrong"})
	assert.True(t, errors.Is(err, apperror.ErrUnauthorized))
	assert.Equal(t, "Invalid credentials", err.Error())

	_, _, err = svc.Login(context.Background(), LoginRequest{Username: "beheer"})
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}

func TestLoginRateLimit(t *testing.T) {
	r := newRepos(t)
	seedAdmin(t, r, "beheer", "correct-horse")
	svc := newAuthService(r)

	for i := 0; i < 5; i++ {
		_, limit, err := svc.Login(context.Background(), LoginRequest{Username: "beheer", Password: "wrong"})
		assert.True(t, errors.Is(err, apperror.ErrUnauthorized), "attempt %d", i+1)
		assert.True(t, limit.Allowed)
		assert.Equal(t, 4-i, limit.Remaining)
	}

	// the correct password does not help once the window is exhausted
	_, limit, err := svc.Login(context.Background(), LoginRequest{Username: "BEHEER", Password: "correct-horse"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrRateLimited))
	assert.False(t, limit.Allowed)
	assert.Zero(t, limit.Remaining)
	assert.False(t, limit.ResetTime.IsZero())

	seedAdmin(t, r, "vrijwilliger", "another-pass")
	_, _, err = svc.Login(context.Background(), LoginRequest{Username: "vrijwilliger", Password: "another-pass"})
	assert.NoError(t, err)
}

func TestMe(t *testing.T) {
	r := newRepos(t)
	admin := seedAdmin(t, r, "beheer", "correct-horse")
	svc := newAuthService(r)

	me, err := svc.Me(context.Background(), auth.Identity{ID: admin.ID, Username: admin.Username})
	require.NoError(t, err)
	assert.Equal(t, "beheer@weeskitten.nl", me.Email)

	_, err = svc.Me(context.Background(), auth.Identity{ID: 999, Username: "ghost"})
	assert.True(t, errors.Is(err, apperror.ErrUnauthorized))
}

func TestCreateAdmin(t *testing.T) {
	r := newRepos(t)
	svc := newAuthService(r)

	created, err := svc.CreateAdmin(context.Background(), CreateAdminRequest{Username: "beheer", Email: "b@weeskitten.nl", Password: "lang-genoeg"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	stored, err := r.admins.FindByUsername(context.Background(), "beheer")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("lang-genoeg")))

	_, err = svc.CreateAdmin(context.Background(), CreateAdminRequest{Username: "beheer", Password: "lang-genoeg"})
	assert.True(t, errors.Is(err, apperror.ErrValidation))
	assert.Equal(t, "Username already exists", err.Error())

	_, err = svc.CreateAdmin(context.Background(), CreateAdminRequest{Username: "kort", Password: "short"})
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}
