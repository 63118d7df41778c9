package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"imagedrop/api/internal/models"
)

// respondError maps domain errors to statuses. Unexpected failures are
// logged and surfaced as a generic 500 without internals.
func (h HandlerSet) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrDuplicateEmail):
		c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrDuplicateEmail.Error()})
	case errors.Is(err, models.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": models.ErrInvalidCredentials.Error()})
	case errors.Is(err, models.ErrNotImage),
		errors.Is(err, models.ErrTooManyFiles),
		errors.Is(err, models.ErrFileTooLarge):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrStorage):
		c.JSON(http.StatusInternalServerError, gin.H{"error": models.ErrStorage.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
	}
}

// NotFound is the catch-all for unmatched routes.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
}
