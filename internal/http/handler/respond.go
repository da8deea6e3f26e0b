package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roguepikachu/canopy/internal/apperror"
	"github.com/roguepikachu/canopy/pkg"
	"github.com/roguepikachu/canopy/pkg/ctxutil"
	"github.com/roguepikachu/canopy/pkg/logger"
)

// respondError maps the error taxonomy to HTTP statuses. Unclassified errors
// surface their message in the detail line, matching the service's historical
// behavior.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, pkg.Message(err.Error()))
	case errors.Is(err, apperror.ErrNotFound):
		c.JSON(http.StatusNotFound, pkg.Message(err.Error()))
	case errors.Is(err, apperror.ErrForbidden):
		c.JSON(http.StatusForbidden, pkg.Message(err.Error()))
	default:
		logger.Error(c.Request.Context(), "request failed: %s", err.Error())
		c.JSON(http.StatusInternalServerError, pkg.Message(err.Error()))
	}
}

// requireUserID reads the authenticated user id placed in the request context
// by the auth middleware. Routes behind RequireAuth always have one; the 401
// here is a guard against misregistered routes.
func requireUserID(c *gin.Context) (int, bool) {
	id, ok := ctxutil.UserID(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, pkg.Message("Authentication required"))
		return 0, false
	}
	return id, true
}

// viewerID returns the authenticated user id as a pointer, or nil for
// anonymous requests.
func viewerID(c *gin.Context) *int {
	if id, ok := ctxutil.UserID(c.Request.Context()); ok {
		return &id
	}
	return nil
}
