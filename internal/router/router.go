// Package router assembles repositories, services and handlers into the HTTP engine.
package router

import (
	"net/http"

	"weeskitten/internal/auth"
	"weeskitten/internal/csrf"
	"weeskitten/internal/handler"
	"weeskitten/internal/middleware"
	"weeskitten/internal/notify"
	"weeskitten/internal/payment"
	"weeskitten/internal/ratelimit"
	"weeskitten/internal/repository"
	"weeskitten/internal/service"
	"weeskitten/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Infra holds the process-wide components the services are built on.
type Infra struct {
	Tokens      *auth.TokenManager
	CSRF        *csrf.Manager
	Limiter     *ratelimit.Limiter
	LoginPolicy ratelimit.Policy
	// Throttle guards the public forms. Nil disables it.
	Throttle *ratelimit.Throttle
	// Hub serves /ws. Nil disables the live feed.
	Hub *websocket.Hub
	// Payments may be nil; donations then fail with 500.
	Payments       payment.Provider
	DonationConfig service.DonationConfig
	CORSOrigins    []string
}

// Deps is everything New needs.
type Deps struct {
	Infra

	Auth       service.AuthService
	Adoptions  service.AdoptionService
	Cats       service.CatService
	Blog       service.BlogService
	Volunteers service.VolunteerService
	Donations  service.DonationService
	Settings   service.SettingService
	Statistics service.StatisticsService
	Audit      service.AuditService
}

// NewDeps builds repositories and services over db (Repository -> Service).
func NewDeps(db *gorm.DB, infra Infra) Deps {
	txManager := repository.NewTransactionManager(db)
	adminRepo := repository.NewAdminRepository(db)
	catRepo := repository.NewCatRepository(db)
	adoptionRepo := repository.NewAdoptionRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	var notifier notify.Notifier = notify.Discard{}
	if infra.Hub != nil {
		notifier = notify.NewLiveFeed(infra.Hub)
	}

	return Deps{
		Infra:      infra,
		Auth:       service.NewAuthService(adminRepo, infra.Tokens, infra.Limiter, infra.LoginPolicy, infra.CSRF),
		Adoptions:  service.NewAdoptionService(adoptionRepo, catRepo, auditRepo, txManager, notifier),
		Cats:       service.NewCatService(catRepo, adoptionRepo, auditRepo, txManager),
		Blog:       service.NewBlogService(repository.NewBlogRepository(db), auditRepo, txManager),
		Volunteers: service.NewVolunteerService(repository.NewVolunteerRepository(db), auditRepo, txManager),
		Donations:  service.NewDonationService(repository.NewDonationRepository(db), infra.Payments, notifier, infra.DonationConfig),
		Settings:   service.NewSettingService(repository.NewSettingRepository(db), auditRepo, txManager),
		Statistics: service.NewStatisticsService(repository.NewStatisticsRepository(db)),
		Audit:      service.NewAuditService(auditRepo),
	}
}

// New returns the gin engine serving /api, /ws, /health and /swagger.
func New(d Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), middleware.RequestID())

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = d.CORSOrigins
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", csrf.HeaderName, middleware.RequestIDHeader}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.ExposeHeaders = []string{"X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	if d.Hub != nil {
		router.GET("/ws", func(c *gin.Context) {
			websocket.ServeWs(d.Hub, c, d.Tokens)
		})
	}

	publicLimit := middleware.Throttle(d.Throttle)
	api := router.Group("/api")
	api.Use(middleware.Authenticate(d.Tokens))

	handler.NewAuthHandler(d.Auth).RegisterRoutes(api)
	handler.NewAdoptionHandler(d.Adoptions, publicLimit).RegisterRoutes(api)
	handler.NewCatHandler(d.Cats).RegisterRoutes(api)
	handler.NewBlogHandler(d.Blog).RegisterRoutes(api)
	handler.NewVolunteerHandler(d.Volunteers).RegisterRoutes(api)
	handler.NewDonationHandler(d.Donations, publicLimit).RegisterRoutes(api)
	handler.NewSettingHandler(d.Settings, d.CSRF).RegisterRoutes(api)
	handler.NewStatisticsHandler(d.Statistics).RegisterRoutes(api)
	handler.NewAuditHandler(d.Audit).RegisterRoutes(api)

	return router
}
