package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"galeria/models"

	"github.com/gin-gonic/gin"
)

func abortWithError(c *gin.Context, err error) {
	switch {
	case models.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, models.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB error"})
	}
}

func parseID(s string) (uint64, bool) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// parseIDList parses a comma-separated id list, e.g. "3,7,12".
func parseIDList(s string) []uint64 {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	ids := make([]uint64, 0, len(parts))
	for _, part := range parts {
		if id, ok := parseID(strings.TrimSpace(part)); ok {
			ids = append(ids, id)
		}
	}
	return ids
}
