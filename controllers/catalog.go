package controllers

import (
	"net/http"

	"github.com/flipfrenzy/flipfrenzy-backend/game"
	"github.com/gin-gonic/gin"
)

// GetCatalog serves the static card table: value, copies per deck, art asset.
func GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, game.DefaultCatalog())
}
