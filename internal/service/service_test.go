package service

import (
	"testing"

	"weeskitten/internal/auth"
	"weeskitten/internal/csrf"
	"weeskitten/internal/database"
	"weeskitten/internal/ratelimit"
	"weeskitten/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testAdmin = auth.Identity{ID: 1, Username: "admin"}

type repos struct {
	db        *gorm.DB
	tx        repository.TransactionManager
	admins    repository.AdminRepository
	cats      repository.CatRepository
	adoptions repository.AdoptionRepository
	audits    repository.AuditRepository
	blog      repository.BlogRepository
	donations repository.DonationRepository
	settings  repository.SettingRepository
}

func newRepos(t *testing.T) repos {
	t.Helper()
	db, err := database.NewTestConnection()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return repos{
		db:        db,
		tx:        repository.NewTransactionManager(db),
		admins:    repository.NewAdminRepository(db),
		cats:      repository.NewCatRepository(db),
		adoptions: repository.NewAdoptionRepository(db),
		audits:    repository.NewAuditRepository(db),
		blog:      repository.NewBlogRepository(db),
		donations: repository.NewDonationRepository(db),
		settings:  repository.NewSettingRepository(db),
	}
}

func newAuthService(r repos) AuthService {
	return NewAuthService(
		r.admins,
		auth.NewTokenManager("test-secret", 0),
		ratelimit.NewLimiter(ratelimit.NewMemoryStore()),
		ratelimit.LoginPolicy,
		csrf.NewManager(csrf.NewMemoryStore(), 0),
	)
}

func countRows(t *testing.T, db *gorm.DB, m any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(m).Count(&n).Error)
	return n
}
