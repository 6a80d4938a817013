package middlewares

import (
	"github.com/gin-gonic/gin"
	uuid "github.com/gofrs/uuid"
)

const requestIDHeader = "X-Request-ID"

// CommonHeaders tags every request with an id and sets the response headers
// shared by all routes
func CommonHeaders(c *gin.Context) {
	requestID := c.GetHeader(requestIDHeader)
	if requestID == "" {
		if id, err := uuid.NewV4(); err == nil {
			requestID = id.String()
		}
	}
	c.Set("requestID", requestID)
	c.Header(requestIDHeader, requestID)
	c.Header("Cache-Control", "no-store")
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("X-Frame-Options", "DENY")
	c.Next()
}
