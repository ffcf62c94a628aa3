// Package middleware holds gin middleware shared by all routes.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader is the header carrying the request identifier.
const RequestIDHeader = "X-Request-ID"

// ContextRequestID is the gin context key holding the request identifier.
const ContextRequestID = "requestID"

// RequestID ensures each request has a stable request identifier for tracing and logging.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}

		c.Header(RequestIDHeader, reqID)
		c.Set(ContextRequestID, reqID)

		c.Next()
	}
}
