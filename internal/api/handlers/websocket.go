package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/playmatatu/billiard/internal/config"
	"github.com/playmatatu/billiard/internal/ws"
)

// HandleTableWebSocket streams snapshots and accepts cue commands
func HandleTableWebSocket(hub *ws.Hub, cfg *config.Config) gin.HandlerFunc {
	return ws.HandleWebSocket(hub, ws.ParseFormat(cfg.SnapshotFormat, ws.FormatJSON))
}
