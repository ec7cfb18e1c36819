package routes

import (
	"github.com/flipfrenzy/flipfrenzy-backend/controllers"
	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	api := r.Group("/api")

	// ----------------------
	// Session routes
	// ----------------------
	api.POST("/sessions", controllers.CreateSession)       // Reserve a join code
	api.GET("/sessions", controllers.ListSessions)         // List sessions
	api.GET("/sessions/:code", controllers.GetSession)     // Snapshot / stored row
	api.GET("/sessions/:code/scores", controllers.GetScores) // Round-score history

	// ----------------------
	// Catalog routes
	// ----------------------
	api.GET("/catalog", controllers.GetCatalog) // Card catalog with art assets
}
