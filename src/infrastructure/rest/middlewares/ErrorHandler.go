package middlewares

import (
	"errors"
	"net/http"
	"time"

	"go-campzeo-client/src/domain/alert"
	domainErrors "go-campzeo-client/src/domain/errors"

	"github.com/gin-gonic/gin"
)

// ErrorResponse wraps the alert a failed request produced
type ErrorResponse struct {
	Alert alert.Alert `json:"alert"`
}

// ErrorHandler renders the last error recorded with ctx.Error as an alert,
// unless the handler already wrote a response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		c.AbortWithStatusJSON(StatusFor(err), ErrorResponse{Alert: alert.FromError(err, time.Now())})
	}
}

// StatusFor maps an error to the gateway HTTP status
func StatusFor(err error) int {
	var appErr *domainErrors.AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Type {
	case domainErrors.NotFound:
		return http.StatusNotFound
	case domainErrors.ValidationError:
		return http.StatusBadRequest
	case domainErrors.DomainRuleViolation:
		return http.StatusUnprocessableEntity
	case domainErrors.MissingDependency:
		return http.StatusPreconditionFailed
	case domainErrors.NotAuthenticated:
		return http.StatusUnauthorized
	case domainErrors.Conflict:
		return http.StatusConflict
	case domainErrors.BackendError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
