package middlewares

import (
	"strings"

	"go-campzeo-client/src/infrastructure/apiclient"
	logger "go-campzeo-client/src/infrastructure/logger"
	"go-campzeo-client/src/infrastructure/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BearerTokenMiddleware forwards the caller's bearer token to backend
// requests made while handling the request. Requests without a token fall
// back to the configured static token; a token that is known to be expired
// or malformed is rejected here.
func BearerTokenMiddleware(inspector security.ITokenInspector, loggerInstance *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		if !strings.HasPrefix(header, "Bearer ") {
			loggerInstance.Warn("Authorization header is not a bearer token", zap.String("path", c.Request.URL.Path))
			c.Next()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		info, err := inspector.Inspect(token)
		if err == nil {
			err = inspector.Check(token)
		}
		if err != nil {
			loggerInstance.Warn("Rejected bearer token", zap.Error(err), zap.String("path", c.Request.URL.Path))
			_ = c.Error(err)
			c.Abort()
			return
		}

		if info.Subject != "" {
			c.Set("tokenSubject", info.Subject)
		}
		c.Request = c.Request.WithContext(apiclient.WithToken(c.Request.Context(), token))
		c.Next()
	}
}
