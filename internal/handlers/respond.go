package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"go-pos-backend/internal/database"

	"github.com/gin-gonic/gin"
)

// respondError maps the database failure taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var notFound *database.NotFoundError
	var validation *database.ValidationError
	var conflict *database.ConflictError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// paramID parses the :id route segment. Returns 0 and responds 400 on garbage.
func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return 0, false
	}
	return uint(id), true
}

// currentUserID reads the id AuthMiddleware stashed in the context.
func currentUserID(c *gin.Context) *uint {
	if v, ok := c.Get("userID"); ok {
		if id, ok := v.(uint); ok {
			return &id
		}
	}
	return nil
}
