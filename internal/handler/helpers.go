package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"logisticpro/internal/repository"
)

// parseID extracts the numeric :id path parameter, answering 400 itself
// when it is not a positive integer. The bool reports success.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}

// respondStoreError maps repository failures onto the HTTP taxonomy:
// missing rows are 404, unique violations 409, timeouts 503, anything else
// a logged 500 with a generic body. notFound is the client-facing message
// for the 404 case.
func respondStoreError(c *gin.Context, logger *zap.Logger, notFound string, err error) {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
	case repository.IsUniqueViolation(err):
		c.JSON(http.StatusConflict, gin.H{"error": "Duplicate value"})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable"})
	default:
		logger.Error("Database operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
	}
}
