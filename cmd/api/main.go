package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "weeskitten/api/swagger" // swagger docs
	"weeskitten/internal/auth"
	"weeskitten/internal/config"
	"weeskitten/internal/csrf"
	"weeskitten/internal/database"
	"weeskitten/internal/payment"
	"weeskitten/internal/ratelimit"
	"weeskitten/internal/router"
	"weeskitten/internal/service"
	"weeskitten/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// @title           Weeskitten API
// @version         1.0
// @description     Content, adoption and donation API for the cat foundation website.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load("configs/.env")
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	db, err := database.NewConnection(cfg.DBDriver, cfg.DSN())
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Printf("Connected to %s successfully.", cfg.DBDriver)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Shared stores go to Redis when configured, so several instances agree on limits and CSRF tokens
	var limitStore ratelimit.Store
	var csrfStore csrf.Store
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("Redis connection failed: %v", err)
		}
		defer rdb.Close()
		limitStore = ratelimit.NewRedisStore(rdb)
		csrfStore = csrf.NewRedisStore(rdb, "")
		log.Printf("Using Redis at %s for rate limits and CSRF tokens", cfg.RedisAddr)
	} else {
		memLimits := ratelimit.NewMemoryStore()
		memLimits.StartJanitor(ctx, ratelimit.DefaultSweepInterval)
		memCSRF := csrf.NewMemoryStore()
		memCSRF.StartJanitor(ctx, csrf.DefaultSweepInterval)
		limitStore, csrfStore = memLimits, memCSRF
	}

	throttle := ratelimit.NewThrottle(cfg.PublicRPS, cfg.PublicBurst)
	throttle.StartJanitor(ctx)

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run(ctx)

	var payments payment.Provider
	if cfg.MollieAPIKey != "" {
		mollie, err := payment.NewMollie(cfg.MollieAPIKey, cfg.MollieBaseURL, 15*time.Second)
		if err != nil {
			log.Fatalf("Payment provider setup failed: %v", err)
		}
		payments = mollie
	} else {
		log.Println("MOLLIE_API_KEY not set, donations are disabled")
	}

	deps := router.NewDeps(db, router.Infra{
		Tokens:      auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL),
		CSRF:        csrf.NewManager(csrfStore, csrf.DefaultTTL),
		Limiter:     ratelimit.NewLimiter(limitStore),
		LoginPolicy: ratelimit.Policy{MaxAttempts: cfg.LoginMaxAttempts, Window: cfg.LoginWindow},
		Throttle:    throttle,
		Hub:         wsHub,
		Payments:    payments,
		DonationConfig: service.DonationConfig{
			PublicURL:      cfg.PublicURL,
			WebhookEnabled: !cfg.PublicURLIsLocal(),
		},
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.New(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}
