package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/billiard/internal/game"
	"github.com/playmatatu/billiard/internal/table"
)

// statusForError maps table errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, game.ErrShotInProgress), errors.Is(err, game.ErrCueBallMissing):
		return http.StatusConflict
	case errors.Is(err, game.ErrNoPower), errors.Is(err, table.ErrUnknownAction):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(statusForError(err), gin.H{"error": err.Error()})
}
