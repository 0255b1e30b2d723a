package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/billiard/internal/config"
	"github.com/playmatatu/billiard/internal/game"
)

// GetConfig returns the table settings a renderer needs to draw and aim
func GetConfig(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"table_length":    cfg.TableLength,
			"table_width":     cfg.TableLength / 2,
			"ball_radius":     cfg.BallRadius,
			"pocket_radius":   cfg.PocketRadius,
			"num_balls":       cfg.NumBalls,
			"tick_rate":       cfg.TickRate,
			"broadcast_hz":    cfg.BroadcastHz,
			"snapshot_format": cfg.SnapshotFormat,
			"meters_to_coord": game.MetersToCoord,
			"power_step":      game.PowerStep,
			"angle_step":      game.AngleStep,
		})
	}
}
