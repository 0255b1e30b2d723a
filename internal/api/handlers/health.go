package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/billiard/internal/table"
)

var startTime = time.Now()

const version = "1.0.0"

// HealthCheck reports uptime and whether the table clock is advancing
func HealthCheck(sess *table.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap := sess.Snapshot()
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "billiard-table",
			"version": version,
			"uptime":  time.Since(startTime).String(),
			"table": gin.H{
				"tick":           snap.Tick,
				"state":          snap.Status,
				"balls_on_table": snap.VisibleCount(),
			},
		})
	}
}
