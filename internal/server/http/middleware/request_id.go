package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the correlation id in requests and responses.
	RequestIDHeader = "X-Request-ID"
	// RequestIDContextKey stores the id in gin context.
	RequestIDContextKey = "requestID"
)

// AssignRequestID reuses the caller supplied id or generates a new one.
func AssignRequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(RequestIDContextKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestID extracts request id from context.
func RequestID(c *gin.Context) string {
	return c.GetString(RequestIDContextKey)
}
