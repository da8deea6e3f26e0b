package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/roguepikachu/canopy/internal/auth"
	"github.com/roguepikachu/canopy/pkg"
	"github.com/roguepikachu/canopy/pkg/ctxutil"
)

const bearerPrefix = "Bearer "

func extractUserID(c *gin.Context, tokens *auth.TokenService) (int, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return 0, false
	}
	id, err := tokens.Validate(strings.TrimPrefix(header, bearerPrefix))
	if err != nil {
		return 0, false
	}
	return id, true
}

// RequireAuth enforces a valid bearer token and stores the user id in the
// request context. Missing or invalid tokens end the request with 401.
func RequireAuth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := extractUserID(c, tokens)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, pkg.Message("Authentication required"))
			return
		}
		c.Request = c.Request.WithContext(ctxutil.WithUserID(c.Request.Context(), id))
		c.Next()
	}
}

// OptionalAuth stores the user id when a valid token is present but never
// blocks the request. Used on public routes where the owner sees more.
func OptionalAuth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, ok := extractUserID(c, tokens); ok {
			c.Request = c.Request.WithContext(ctxutil.WithUserID(c.Request.Context(), id))
		}
		c.Next()
	}
}
