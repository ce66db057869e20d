package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDKey is the gin context key under which the request id is stored.
	RequestIDKey = "request_id"

	requestIDHeader = "X-Request-ID"
)

// RequestID injects a unique identifier into each incoming HTTP request.
//
// An id supplied by the caller in the X-Request-ID header is reused so
// traces stay correlated across services; otherwise a new UUID (v4) is
// generated. The id is stored in the gin context under RequestIDKey and
// echoed back in the response headers.
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RequestID())
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(RequestIDKey, id)
		c.Writer.Header().Set(requestIDHeader, id)

		c.Next()
	}
}
