package helper

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"
	"unicode"

	domainCampaign "go-campzeo-client/src/domain/campaign"
	domainErrors "go-campzeo-client/src/domain/errors"
	logger "go-campzeo-client/src/infrastructure/logger"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var (
	mobileRegex     = regexp.MustCompile(`^[6-9]\d{9}$`)
	alphaSpaceRegex = regexp.MustCompile(`^[A-Za-z]+( [A-Za-z]+)*$`)
)

// Validator runs the form schemas and renders field-scoped messages
type Validator interface {
	Struct(form interface{}) error
	GetErrorMsg(fe validator.FieldError) string
	FieldErrors(ve validator.ValidationErrors) []domainErrors.FieldError
}

type formValidator struct {
	validate *validator.Validate
	now      func() time.Time
	location *time.Location
	Logger   *logger.Logger
}

// Option tweaks the validator, mostly for tests
type Option func(*formValidator)

// WithClock fixes "today" for date rules
func WithClock(now func() time.Time) Option {
	return func(v *formValidator) { v.now = now }
}

// WithLocation sets the location date rules compare in
func WithLocation(loc *time.Location) Option {
	return func(v *formValidator) { v.location = loc }
}

func NewValidator(loggerInstance *logger.Logger, opts ...Option) Validator {
	v := &formValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
		location: time.Local,
		Logger:   loggerInstance,
	}
	for _, opt := range opts {
		opt(v)
	}

	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	mustRegister(v.validate, "mobile_in", func(fl validator.FieldLevel) bool {
		return mobileRegex.MatchString(fl.Field().String())
	})
	mustRegister(v.validate, "alpha_space", func(fl validator.FieldLevel) bool {
		return alphaSpaceRegex.MatchString(fl.Field().String())
	})
	mustRegister(v.validate, "not_past", v.notPast)

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Errorf("registering %s validation: %w", tag, err))
	}
}

// notPast accepts today or any later date. The value is a calendar date and
// is compared as written; "today" comes from the validator's location.
func (v *formValidator) notPast(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	today := domainCampaign.DayIn(v.now().In(v.location), v.location)
	return !domainCampaign.DayIn(value, v.location).Before(today)
}

// Struct validates a form and returns a ValidationError AppError on failure
func (v *formValidator) Struct(form interface{}) error {
	err := v.validate.Struct(form)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		fields := v.FieldErrors(ve)
		v.Logger.Debug("Form validation failed", zap.Any("fields", fields))
		return domainErrors.NewValidationError(fields)
	}
	v.Logger.Error("Form could not be validated", zap.Error(err))
	return domainErrors.NewAppError(err, domainErrors.ValidationError)
}

func (v *formValidator) FieldErrors(ve validator.ValidationErrors) []domainErrors.FieldError {
	out := make([]domainErrors.FieldError, len(ve))
	for i, fe := range ve {
		out[i] = domainErrors.FieldError{Field: fe.Field(), Message: v.GetErrorMsg(fe)}
	}
	return out
}

func (v *formValidator) GetErrorMsg(fe validator.FieldError) string {
	label := humanize(fe.Field())
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", label, fe.Param())
	case "email":
		return "Enter a valid email address"
	case "mobile_in":
		return label + " must be a 10-digit number starting with 6, 7, 8 or 9"
	case "alpha_space":
		return label + " may only contain letters"
	case "not_past":
		return label + " cannot be a past date"
	case "gtefield":
		return fmt.Sprintf("%s cannot be earlier than %s", label, strings.ToLower(humanize(fe.Param())))
	}
	return label + " is invalid"
}

// humanize turns "startDate" or "StartDate" into "Start date"
func humanize(name string) string {
	var b strings.Builder
	for i, r := range name {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
