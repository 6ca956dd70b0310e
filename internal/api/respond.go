package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pageza/mealplanner/backend/internal/apperr"
	"github.com/pageza/mealplanner/backend/internal/middleware"
	"go.uber.org/zap"
)

const msgInvalidID = "Invalid ID"

// respondError writes the public message of err and logs the full error.
// Server-side failures are logged at error level, client mistakes at debug.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status, msg := apperr.Public(err)

	fields := []zap.Field{
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.String("route", c.FullPath()),
		zap.Int("status", status),
		zap.Error(err),
	}
	if status >= 500 {
		logger.Error("Request failed", fields...)
	} else {
		logger.Debug("Request rejected", fields...)
	}
	_ = c.Error(err)

	body := gin.H{"error": msg}
	if appErr, ok := apperr.As(err); ok && len(appErr.Fields) > 0 {
		body["fields"] = appErr.Fields
	}
	c.AbortWithStatusJSON(status, body)
}

// parseID reads a base-10 integer path parameter. On failure it answers 400
// and returns false.
func parseID(c *gin.Context, logger *zap.Logger, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		respondError(c, logger, apperr.Validation(msgInvalidID, nil))
		return 0, false
	}
	return id, true
}
