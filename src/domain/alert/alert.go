package alert

import (
	"errors"
	"time"

	domainErrors "go-campzeo-client/src/domain/errors"
)

// Type is the kind of alert dialog shown to the user
type Type string

const (
	// TypeNetwork is raised when a backend call fails
	TypeNetwork Type = "network"

	// TypeValidation is raised for field-level validation failures
	TypeValidation Type = "validation"

	// TypeDomainRule is raised when a client-side rule blocks an action
	TypeDomainRule Type = "domain_rule"

	// TypeRemediation directs the user to another screen (connect an account, sign in)
	TypeRemediation Type = "remediation"
)

// Remediation screens an alert can point at
const (
	ScreenAccounts = "accounts"
	ScreenSignIn   = "sign_in"
	ScreenBilling  = "billing"
)

// Alert is a blocking message surfaced to the user
type Alert struct {
	Type        Type                      `json:"type"`
	Message     string                    `json:"message"`
	Remediation string                    `json:"remediation,omitempty"`
	Fields      []domainErrors.FieldError `json:"fields,omitempty"`
	RaisedAt    time.Time                 `json:"raisedAt"`
}

// FromError turns any error into the alert the user should see
func FromError(err error, now time.Time) Alert {
	var appErr *domainErrors.AppError
	if !errors.As(err, &appErr) {
		return Alert{Type: TypeNetwork, Message: err.Error(), RaisedAt: now}
	}

	a := Alert{
		Message:     appErr.Error(),
		Remediation: appErr.Remediation,
		Fields:      appErr.Fields,
		RaisedAt:    now,
	}
	switch appErr.Type {
	case domainErrors.ValidationError:
		a.Type = TypeValidation
	case domainErrors.DomainRuleViolation:
		a.Type = TypeDomainRule
	case domainErrors.MissingDependency:
		a.Type = TypeRemediation
	case domainErrors.NotAuthenticated:
		a.Type = TypeRemediation
		if a.Remediation == "" {
			a.Remediation = ScreenSignIn
		}
	default:
		a.Type = TypeNetwork
	}
	return a
}
