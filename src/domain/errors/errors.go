package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies an AppError
type ErrorType string

const (
	NotFound            ErrorType = "NotFound"
	ValidationError     ErrorType = "ValidationError"
	DomainRuleViolation ErrorType = "DomainRuleViolation"
	MissingDependency   ErrorType = "MissingDependency"
	NotAuthenticated    ErrorType = "NotAuthenticated"
	Conflict            ErrorType = "Conflict"
	BackendError        ErrorType = "BackendError"
	UnknownError        ErrorType = "UnknownError"
)

// FieldError is a single field-scoped validation message
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError is the error type every layer returns to callers
type AppError struct {
	Err         error
	Type        ErrorType
	Fields      []FieldError
	Remediation string
	StatusCode  int
}

func NewAppError(err error, errType ErrorType) *AppError {
	return &AppError{
		Err:  err,
		Type: errType,
	}
}

func NewAppErrorWithType(errType ErrorType) *AppError {
	var err error

	switch errType {
	case NotFound:
		err = errors.New(NotFoundMessage)
	case ValidationError:
		err = errors.New(ValidationMessage)
	case NotAuthenticated:
		err = errors.New(NotAuthenticatedMessage)
	case Conflict:
		err = errors.New(ConflictMessage)
	case BackendError:
		err = errors.New(BackendErrorMessage)
	default:
		err = errors.New(UnknownErrorMessage)
	}

	return &AppError{
		Err:  err,
		Type: errType,
	}
}

// NewValidationError carries field-scoped messages for inline display
func NewValidationError(fields []FieldError) *AppError {
	return &AppError{
		Err:    errors.New(ValidationMessage),
		Type:   ValidationError,
		Fields: fields,
	}
}

// NewDomainRuleViolation reports a client-side rule that blocks submission
func NewDomainRuleViolation(format string, args ...any) *AppError {
	return &AppError{
		Err:  fmt.Errorf(format, args...),
		Type: DomainRuleViolation,
	}
}

// NewMissingDependency points the user at the screen that resolves the problem
func NewMissingDependency(message string, remediation string) *AppError {
	return &AppError{
		Err:         errors.New(message),
		Type:        MissingDependency,
		Remediation: remediation,
	}
}

// NewBackendError wraps a failed HTTP exchange with the backend
func NewBackendError(statusCode int, message string) *AppError {
	errType := BackendError
	switch statusCode {
	case 401:
		errType = NotAuthenticated
	case 404:
		errType = NotFound
	}
	if message == "" {
		message = fmt.Sprintf("request failed with status %d", statusCode)
	}
	return &AppError{
		Err:        errors.New(message),
		Type:       errType,
		StatusCode: statusCode,
	}
}

func (appErr *AppError) Error() string {
	return appErr.Err.Error()
}

func (appErr *AppError) Unwrap() error {
	return appErr.Err
}

// IsType reports whether err is an AppError of the given type
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

const (
	NotFoundMessage         = "record not found"
	ValidationMessage       = "validation error"
	NotAuthenticatedMessage = "not authenticated"
	ConflictMessage         = "a request of this kind is already in flight"
	BackendErrorMessage     = "backend request failed"
	UnknownErrorMessage     = "something went wrong"
)
