package controllers

import (
	"net/http"
	"strings"

	"github.com/flipfrenzy/flipfrenzy-backend/config"
	"github.com/flipfrenzy/flipfrenzy-backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetScores returns the append-only round-score history for a session.
func GetScores(c *gin.Context) {
	code := strings.ToUpper(c.Param("code"))

	var session models.Session
	if err := config.DB.Where("code = ?", code).First(&session).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var scores []models.RoundScore
	if err := config.DB.Where("session_id = ?", session.ID).
		Order("round_number ASC, player_uid ASC").Find(&scores).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, scores)
}
