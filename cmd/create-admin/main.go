// Command create-admin adds an admin account to the configured database.
package main

import (
	"context"
	"flag"
	"log"

	"weeskitten/internal/auth"
	"weeskitten/internal/config"
	"weeskitten/internal/csrf"
	"weeskitten/internal/database"
	"weeskitten/internal/ratelimit"
	"weeskitten/internal/repository"
	"weeskitten/internal/service"
)

func main() {
	username := flag.String("username", "", "admin username")
	email := flag.String("email", "", "admin email")
	password := flag.String("password", "", "admin password (at least 8 characters)")
	envFile := flag.String("env", "configs/.env", "env file to load")
	flag.Parse()

	if *username == "" || *password == "" {
		flag.Usage()
		log.Fatal("username and password are required")
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	db, err := database.NewConnection(cfg.DBDriver, cfg.DSN())
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	authService := service.NewAuthService(
		repository.NewAdminRepository(db),
		auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL),
		ratelimit.NewLimiter(ratelimit.NewMemoryStore()),
		ratelimit.LoginPolicy,
		csrf.NewManager(csrf.NewMemoryStore(), 0),
	)
	admin, err := authService.CreateAdmin(context.Background(), service.CreateAdminRequest{
		Username: *username,
		Email:    *email,
		Password: *password,
	})
	if err != nil {
		log.Fatalf("Create admin failed: %v", err)
	}
	log.Printf("Admin %q created with id %d", admin.Username, admin.ID)
}
