package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roguepikachu/canopy/internal/domain"
	"github.com/roguepikachu/canopy/pkg"
	"github.com/roguepikachu/canopy/pkg/logger"
)

// Authenticator defines the auth handler's dependency contract.
type Authenticator interface {
	Register(ctx context.Context, req domain.RegisterRequest) (domain.User, string, error)
	Login(ctx context.Context, req domain.LoginRequest) (domain.User, string, error)
	GoogleLogin(ctx context.Context, req domain.GoogleCallbackRequest) (domain.User, string, error)
}

// AuthHandler handles account registration and sign-in.
type AuthHandler struct {
	svc Authenticator
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(svc Authenticator) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func authPayload(user domain.User, token string) gin.H {
	return gin.H{
		"user":  domain.NewUserView(user),
		"token": token,
	}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, pkg.Message(err.Error()))
		return
	}
	user, token, err := h.svc.Register(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	logger.With(ctx, map[string]any{"user_id": user.ID}).Info("user registered")
	c.JSON(http.StatusCreated, pkg.NewResponse("User registered successfully", authPayload(user, token)))
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, pkg.Message(err.Error()))
		return
	}
	user, token, err := h.svc.Login(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pkg.NewResponse("Logged in successfully", authPayload(user, token)))
}

// GoogleCallback handles POST /auth/google/callback.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	ctx := c.Request.Context()
	var req domain.GoogleCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, pkg.Message(err.Error()))
		return
	}
	user, token, err := h.svc.GoogleLogin(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	logger.With(ctx, map[string]any{"user_id": user.ID}).Info("google sign-in")
	c.JSON(http.StatusOK, pkg.NewResponse("Logged in successfully", authPayload(user, token)))
}
