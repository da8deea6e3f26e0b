package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roguepikachu/canopy/internal/registry"
	"github.com/roguepikachu/canopy/pkg"
)

// Languages handles GET /data/languages.
func Languages(c *gin.Context) {
	c.JSON(http.StatusOK, pkg.NewResponse("Languages fetched successfully", gin.H{
		"languages": registry.Languages(),
	}))
}

// Themes handles GET /data/themes.
func Themes(c *gin.Context) {
	c.JSON(http.StatusOK, pkg.NewResponse("Themes fetched successfully", gin.H{
		"themes": registry.Themes(),
	}))
}
