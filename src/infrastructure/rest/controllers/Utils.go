package controllers

import (
	"errors"
	"strconv"
	"strings"

	"go-campzeo-client/src/application/store"
	domainErrors "go-campzeo-client/src/domain/errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// BindJSON decodes the request body. Binding rule failures come back as a
// ValidationError listing the offending fields.
func BindJSON(ctx *gin.Context, out interface{}) error {
	err := ctx.ShouldBindJSON(out)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		fields := make([]domainErrors.FieldError, len(ve))
		for i, fe := range ve {
			fields[i] = domainErrors.FieldError{Field: lowerFirst(fe.Field()), Message: fe.Field() + " is " + fe.Tag()}
		}
		return domainErrors.NewValidationError(fields)
	}
	return domainErrors.NewAppError(err, domainErrors.ValidationError)
}

// QueryInt reads an optional integer query parameter
func QueryInt(ctx *gin.Context, key string, defaultValue int) (int, error) {
	raw := ctx.Query(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domainErrors.NewValidationError([]domainErrors.FieldError{{Field: key, Message: key + " must be an integer"}})
	}
	return value, nil
}

// Page reads the page and limit query parameters
func Page(ctx *gin.Context) (int, int, error) {
	page, err := QueryInt(ctx, "page", 1)
	if err != nil {
		return 0, 0, err
	}
	limit, err := QueryInt(ctx, "limit", 20)
	if err != nil {
		return 0, 0, err
	}
	return page, limit, nil
}

// MessageResponse is the body of endpoints that only acknowledge
type MessageResponse struct {
	Message string `json:"message"`
}

// ToggleResponse reports an optimistic change and the value to display
type ToggleResponse struct {
	Phase    store.Phase `json:"phase"`
	Previous bool        `json:"previous"`
	Value    bool        `json:"value"`
	Current  bool        `json:"current"`
}

func ToggleToResponse(update store.Update[bool]) ToggleResponse {
	return ToggleResponse{
		Phase:    update.Phase,
		Previous: update.Previous,
		Value:    update.Value,
		Current:  update.Current(),
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
