// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// DevJWTSecret is used outside release mode when JWT_SECRET is unset.
const DevJWTSecret = "default_super_secret_key"

type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	GinMode string `env:"GIN_MODE" envDefault:"debug"`

	DBDriver   string `env:"DB_DRIVER" envDefault:"postgres"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName     string `env:"DB_NAME" envDefault:"postgres"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
	DBPath     string `env:"DB_PATH" envDefault:"weeskitten.db"`

	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"168h"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	LoginMaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS" envDefault:"5"`
	LoginWindow      time.Duration `env:"LOGIN_WINDOW" envDefault:"1m"`
	PublicRPS        float64       `env:"PUBLIC_RPS" envDefault:"0.2"`
	PublicBurst      int           `env:"PUBLIC_BURST" envDefault:"5"`

	MollieAPIKey  string `env:"MOLLIE_API_KEY"`
	MollieBaseURL string `env:"MOLLIE_BASE_URL" envDefault:"https://api.mollie.com/"`
	PublicURL     string `env:"PUBLIC_URL" envDefault:"http://localhost:3000"`
}

// Load reads envFile if present, then the environment.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			log.Printf("No %s file found or error loading it", envFile)
		}
	}
	return Parse()
}

// Parse builds a Config from the current environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		if c.GinMode == gin.ReleaseMode {
			return errors.New("JWT_SECRET environment variable is required in release mode")
		}
		log.Println("WARNING: JWT_SECRET not set, using development fallback secret")
		c.JWTSecret = DevJWTSecret
	}
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.LoginMaxAttempts <= 0 {
		return errors.New("LOGIN_MAX_ATTEMPTS must be positive")
	}
	if c.LoginWindow <= 0 {
		return errors.New("LOGIN_WINDOW must be positive")
	}
	c.PublicURL = strings.TrimRight(c.PublicURL, "/")
	return nil
}

// DSN is the postgres connection URL, or the database file for sqlite.
func (c Config) DSN() string {
	if c.DBDriver == "sqlite" {
		return c.DBPath
	}
	return "postgres://" + c.DBUser + ":" + c.DBPassword + "@" + c.DBHost + ":" + c.DBPort + "/" + c.DBName + "?sslmode=" + c.DBSSLMode
}

// PublicURLIsLocal reports whether PUBLIC_URL points at this machine.
// Payment providers cannot reach a local webhook.
func (c Config) PublicURLIsLocal() bool {
	u, err := url.Parse(c.PublicURL)
	if err != nil {
		return true
	}
	switch u.Hostname() {
	case "", "localhost", "127.0.0.1", "::1":
		return true
	}
	return false
}
