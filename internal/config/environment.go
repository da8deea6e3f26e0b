// Package config provides configuration loading and management for the Canopy application.
package config

import (
	"context"
	"os"
	"strings"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"

	"github.com/roguepikachu/canopy/pkg/logger"
)

// Config holds environment configuration for the Canopy application.
type Config struct {
	// CanopyPort is the port on which the Canopy server runs.
	CanopyPort string `env:"CANOPY_PORT"`

	// PostgresURL, when set, takes precedence over the discrete Postgres fields.
	PostgresURL      string `env:"POSTGRES_URL"`
	PostgresHost     string `env:"POSTGRES_HOST"`
	PostgresPort     string `env:"POSTGRES_PORT"`
	PostgresUser     string `env:"POSTGRES_USER"`
	PostgresPassword string `env:"POSTGRES_PASSWORD"`
	PostgresDB       string `env:"POSTGRES_DB"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE"`

	RedisAddr string `env:"REDIS_ADDR"`

	// JWTSecret signs access tokens. Must be set for authenticated routes.
	JWTSecret string `env:"JWT_SECRET"`

	// CodeReviewServiceURL is the base URL of the external review service.
	CodeReviewServiceURL string `env:"CODE_REVIEW_SERVICE_URL"`
	CodeReviewAPIKey     string `env:"CODE_REVIEW_API_KEY"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `env:"GOOGLE_REDIRECT_URL"`
}

// Conf holds the global configuration for the Canopy application.
var Conf Config

func loadDotEnv() {
	// Load .env files into environment if present. Does not override
	// existing environment variables.
	path := os.Getenv("DOTENV_PATHS")
	if path != "" {
		err := godotenv.Load(strings.Split(path, ",")...)
		if err != nil {
			logger.Fatal(context.Background(), err.Error())
		}
	}
}

// InitConf initializes the global configuration by loading environment variables and .env files.
func InitConf() {
	loadDotEnv()

	if err := env.Parse(&Conf); err != nil {
		logger.Fatal(context.Background(), err.Error())
	}
}
