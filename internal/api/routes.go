package api

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/billiard/internal/api/handlers"
	"github.com/playmatatu/billiard/internal/config"
	"github.com/playmatatu/billiard/internal/middleware"
	"github.com/playmatatu/billiard/internal/table"
	"github.com/playmatatu/billiard/internal/ws"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, sess *table.Session, hub *ws.Hub, cfg *config.Config) {
	router.Use(middleware.CORSMiddleware(cfg))

	if cfg.Environment != "production" {
		router.Use(func(c *gin.Context) {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			c.Header("Pragma", "no-cache")
			c.Header("Expires", "0")
			c.Next()
		})
		log.Println("[DEV MODE] no-cache headers enabled for all routes")
	}

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck(sess))
		v1.GET("/config", handlers.GetConfig(cfg))

		// Table endpoints
		t := v1.Group("/table")
		{
			t.GET("", handlers.GetSnapshot(sess))
			t.GET("/cue", handlers.GetCue(sess))
			t.POST("/cue", handlers.AdjustCue(sess))
			t.POST("/shot", handlers.TakeShot(sess))
			t.POST("/shoot", handlers.Shoot(sess))
			t.POST("/rack", handlers.Rerack(sess))
			t.GET("/ws", middleware.WebSocketCORSCheck(cfg), handlers.HandleTableWebSocket(hub, cfg))
		}
	}
}
