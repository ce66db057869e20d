package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fxlens/clientpulse/internal/domain/dto"
	"github.com/fxlens/clientpulse/internal/logger"
)

// ErrorHandler converts errors attached to the gin context by handlers
// into a standardized JSON error response. Handlers that already wrote a
// response are left alone.
//
// Usage:
//
//	router.Use(middleware.ErrorHandler)
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last().Err
	logger.L().Error().Err(err).
		Str("path", c.Request.URL.Path).
		Msg("unhandled request error")

	status := c.Writer.Status()
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse("Internal server error", err))
}

// AbortWithError writes a standardized error response with the given
// status and message, and aborts the handler chain.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
