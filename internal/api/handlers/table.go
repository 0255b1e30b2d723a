package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/billiard/internal/table"
)

type ShotRequest struct {
	Power float64 `json:"power" binding:"gte=0"`
	Angle int     `json:"angle"`
}

type CueRequest struct {
	Action string `json:"action" binding:"required"`
}

// GetSnapshot returns the current table state
func GetSnapshot(sess *table.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap := sess.Snapshot()
		c.Header("X-Table-Tick", strconv.FormatUint(snap.Tick, 10))
		c.JSON(http.StatusOK, snap)
	}
}

// GetCue returns the accumulated aim and power
func GetCue(sess *table.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, sess.Cue())
	}
}

// TakeShot fires the cue ball with explicit power and angle
func TakeShot(sess *table.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ShotRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		params, err := sess.ApplyShot(req.Power, req.Angle)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"shot": params})
	}
}

// AdjustCue applies one cue input: power_up, power_down, rotate_left, rotate_right
func AdjustCue(sess *table.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CueRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "action required"})
			return
		}

		cue, err := sess.Adjust(req.Action)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, cue)
	}
}

// Shoot fires the accumulated cue
func Shoot(sess *table.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		params, err := sess.Shoot()
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"shot": params})
	}
}

// Rerack resets the table to the opening rack
func Rerack(sess *table.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := sess.Rerack(); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, sess.Snapshot())
	}
}
