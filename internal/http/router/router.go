// Package router sets up the HTTP routes for the Canopy API server.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/roguepikachu/canopy/internal/auth"
	"github.com/roguepikachu/canopy/internal/http/handler"
	"github.com/roguepikachu/canopy/internal/http/middleware"
)

// New initializes the Gin engine with all routes and middleware.
func New(
	snippets *handler.SnippetHandler,
	accounts *handler.AuthHandler,
	health *handler.HealthHandler,
	tokens *auth.TokenService,
) *gin.Engine {
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.Recovery(),
	)

	engine.GET("/healthz", health.Liveness)
	engine.GET("/readyz", health.Readiness)

	engine.GET("/data/languages", handler.Languages)
	engine.GET("/data/themes", handler.Themes)

	authGroup := engine.Group("/auth")
	{
		authGroup.POST("/register", accounts.Register)
		authGroup.POST("/login", accounts.Login)
		authGroup.POST("/google/callback", accounts.GoogleCallback)
	}

	requireAuth := middleware.RequireAuth(tokens)
	optionalAuth := middleware.OptionalAuth(tokens)

	snippetGroup := engine.Group("/snippets")
	{
		snippetGroup.GET("", snippets.List)
		snippetGroup.POST("", requireAuth, snippets.Create)
		snippetGroup.POST("/review", snippets.Review)
		snippetGroup.GET("/my", requireAuth, snippets.Mine)
		snippetGroup.POST("/private/:uid", snippets.ShowPrivate)
		snippetGroup.GET("/:uid", optionalAuth, snippets.Show)
		snippetGroup.GET("/:uid/edit", requireAuth, snippets.Edit)
		snippetGroup.PUT("/:uid", requireAuth, snippets.Update)
		snippetGroup.DELETE("/:uid", requireAuth, snippets.Delete)
	}

	return engine
}
