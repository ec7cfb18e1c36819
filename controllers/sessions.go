package controllers

import (
	"net/http"
	"strings"

	"github.com/flipfrenzy/flipfrenzy-backend/config"
	"github.com/flipfrenzy/flipfrenzy-backend/models"
	"github.com/flipfrenzy/flipfrenzy-backend/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateSession reserves a fresh join code. Players still join over the WS
// endpoint; this just lets a host share a code up front.
func CreateSession(c *gin.Context) {
	code := services.NewCode()
	room, err := services.GetOrCreateRoom(code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"code": room.Code})
}

// GetSession returns the current snapshot for a code (spectator view).
func GetSession(c *gin.Context) {
	code := strings.ToUpper(c.Param("code"))

	if room, ok := services.GetRoom(code); ok {
		c.JSON(http.StatusOK, room.Snapshot())
		return
	}

	// Not live: fall back to the persisted row so finished sessions stay
	// inspectable after a restart.
	var row models.Session
	if err := config.DB.Where("code = ?", code).First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, row)
}

// ListSessions lists known sessions, newest first.
func ListSessions(c *gin.Context) {
	var rows []models.Session
	if err := config.DB.Order("created_at DESC").Limit(50).Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, rows)
}
