// Package main is the entry point for the Canopy API server.
package main

import (
	"context"
	"time"

	"github.com/roguepikachu/canopy/internal/auth"
	"github.com/roguepikachu/canopy/internal/config"
	"github.com/roguepikachu/canopy/internal/data"
	"github.com/roguepikachu/canopy/internal/http/handler"
	"github.com/roguepikachu/canopy/internal/http/router"
	"github.com/roguepikachu/canopy/internal/repository/cached"
	"github.com/roguepikachu/canopy/internal/repository/postgres"
	"github.com/roguepikachu/canopy/internal/service"
	"github.com/roguepikachu/canopy/pkg/logger"
)

const cacheTTL = 5 * time.Minute

func main() {
	ctx := context.Background()

	logger.InitLogging()
	config.InitConf()

	pool, err := data.NewPostgresPool(ctx)
	if err != nil {
		logger.Fatal(ctx, "failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	snippetStore := postgres.NewSnippetRepository(pool)
	if err := snippetStore.EnsureSchema(ctx); err != nil {
		logger.Fatal(ctx, "failed to ensure schema: %v", err)
	}
	userStore := postgres.NewUserRepository(pool)

	redisClient := data.NewRedisClient()
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn(ctx, "failed to close redis client: %v", err)
		}
	}()
	snippets := cached.NewSnippetRepository(snippetStore, redisClient, cacheTTL)

	tokens, err := auth.NewTokenService(config.Conf.JWTSecret)
	if err != nil {
		logger.Fatal(ctx, "failed to init token service: %v", err)
	}
	passwords := auth.NewPasswordService()
	var google auth.GoogleExchanger
	if config.Conf.GoogleClientID != "" {
		google = auth.NewGoogleOAuth(
			config.Conf.GoogleClientID,
			config.Conf.GoogleClientSecret,
			config.Conf.GoogleRedirectURL,
		)
	}

	clock := service.RealClock{}
	snippetSvc := service.NewService(snippets, userStore, clock)
	authSvc := service.NewAuthService(userStore, passwords, tokens, google, clock)
	reviews := service.NewReviewClient(config.Conf.CodeReviewServiceURL, config.Conf.CodeReviewAPIKey)

	engine := router.New(
		handler.NewSnippetHandler(snippetSvc, reviews),
		handler.NewAuthHandler(authSvc),
		handler.NewHealthHandler(pool, redisClient),
		tokens,
	)

	port := config.Conf.CanopyPort
	if port == "" {
		logger.Info(ctx, "no port configured, falling back to default: 8080")
		port = "8080"
	}

	if err := engine.Run(":" + port); err != nil {
		logger.Fatal(ctx, "failed to start server: %v", err)
	}
}
