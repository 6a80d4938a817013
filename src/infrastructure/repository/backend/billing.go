package backend

import (
	"context"
	"encoding/json"
	"net/http"

	domainBilling "go-campzeo-client/src/domain/billing"
	domainErrors "go-campzeo-client/src/domain/errors"
	logger "go-campzeo-client/src/infrastructure/logger"

	"go.uber.org/zap"
)

// Subscription is the wire shape of GET /subscription/current
type Subscription struct {
	ID                 ID     `json:"id" validate:"required"`
	PlanName           string `json:"planName"`
	Plan               *Plan  `json:"plan" validate:"-"`
	Status             string `json:"status" validate:"required"`
	AutoRenew          bool   `json:"autoRenew"`
	CurrentPeriodStart Time   `json:"currentPeriodStart"`
	CurrentPeriodEnd   Time   `json:"currentPeriodEnd"`
}

// Plan is the wire shape of a plan
type Plan struct {
	ID       ID       `json:"id" validate:"required"`
	Name     string   `json:"name" validate:"required"`
	Price    float64  `json:"price"`
	Currency string   `json:"currency"`
	Interval string   `json:"interval"`
	Features []string `json:"features"`
}

// Payment is the wire shape of a payment
type Payment struct {
	ID       ID      `json:"id" validate:"required"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Status   string  `json:"status"`
	PaidAt   Time    `json:"paidAt"`
	Created  Time    `json:"createdAt"`
}

// BillingRepositoryInterface wraps the /subscription, /plans and /payments endpoints
type BillingRepositoryInterface interface {
	GetUsage(ctx context.Context) (*domainBilling.Usage, error)
	GetCurrentSubscription(ctx context.Context) (*domainBilling.Subscription, error)
	SetAutoRenew(ctx context.Context, enabled bool) error
	Cancel(ctx context.Context, form *domainBilling.CancelForm) error
	GetPlans(ctx context.Context) ([]domainBilling.Plan, error)
	GetPayments(ctx context.Context) ([]domainBilling.Payment, error)
}

type BillingRepository struct {
	Client Caller
	Logger *logger.Logger
}

func NewBillingRepository(client Caller, loggerInstance *logger.Logger) BillingRepositoryInterface {
	return &BillingRepository{Client: client, Logger: loggerInstance}
}

func (r *BillingRepository) GetUsage(ctx context.Context) (*domainBilling.Usage, error) {
	var raw json.RawMessage
	if err := r.Client.Do(ctx, http.MethodGet, "/subscription/usage", nil, nil, &raw); err != nil {
		r.Logger.Error("Error getting usage", zap.Error(err))
		return nil, err
	}
	usage, err := decodeOne[domainBilling.Usage](raw, "usage", "usage")
	if err != nil {
		return nil, err
	}
	return usage, nil
}

// GetCurrentSubscription returns nil without error when the user has no subscription
func (r *BillingRepository) GetCurrentSubscription(ctx context.Context) (*domainBilling.Subscription, error) {
	var raw json.RawMessage
	if err := r.Client.Do(ctx, http.MethodGet, "/subscription/current", nil, nil, &raw); err != nil {
		if domainErrors.IsType(err, domainErrors.NotFound) {
			r.Logger.Info("User has no subscription")
			return nil, nil
		}
		r.Logger.Error("Error getting current subscription", zap.Error(err))
		return nil, err
	}
	body := payload(raw, "subscription")
	if string(body) == "null" || len(body) == 0 {
		return nil, nil
	}
	sub, err := decodeOne[Subscription](body, "subscription")
	if err != nil {
		return nil, err
	}
	planName := sub.PlanName
	if planName == "" && sub.Plan != nil {
		planName = sub.Plan.Name
	}
	return &domainBilling.Subscription{
		ID:                 sub.ID.String(),
		PlanName:           planName,
		Status:             sub.Status,
		AutoRenew:          sub.AutoRenew,
		CurrentPeriodStart: sub.CurrentPeriodStart.Time,
		CurrentPeriodEnd:   sub.CurrentPeriodEnd.Time,
	}, nil
}

func (r *BillingRepository) SetAutoRenew(ctx context.Context, enabled bool) error {
	body := map[string]bool{"autoRenew": enabled}
	if err := r.Client.Do(ctx, http.MethodPost, "/subscription/auto-renew", nil, body, nil); err != nil {
		r.Logger.Error("Error updating auto-renew", zap.Error(err), zap.Bool("autoRenew", enabled))
		return err
	}
	r.Logger.Info("Auto-renew updated", zap.Bool("autoRenew", enabled))
	return nil
}

func (r *BillingRepository) Cancel(ctx context.Context, form *domainBilling.CancelForm) error {
	if err := r.Client.Do(ctx, http.MethodPost, "/subscription/cancel", nil, form, nil); err != nil {
		r.Logger.Error("Error cancelling subscription", zap.Error(err))
		return err
	}
	r.Logger.Info("Subscription cancelled", zap.Bool("immediately", form.CancelImmediately != nil && *form.CancelImmediately))
	return nil
}

func (r *BillingRepository) GetPlans(ctx context.Context) ([]domainBilling.Plan, error) {
	var raw json.RawMessage
	if err := r.Client.Do(ctx, http.MethodGet, "/plans", nil, nil, &raw); err != nil {
		r.Logger.Error("Error getting plans", zap.Error(err))
		return nil, err
	}
	plans, err := decodeList[Plan](raw, "plan list", "plans", "items")
	if err != nil {
		return nil, err
	}
	out := make([]domainBilling.Plan, len(plans))
	for i, p := range plans {
		out[i] = domainBilling.Plan{
			ID:       p.ID.String(),
			Name:     p.Name,
			Price:    p.Price,
			Currency: p.Currency,
			Interval: p.Interval,
			Features: p.Features,
		}
	}
	return out, nil
}

func (r *BillingRepository) GetPayments(ctx context.Context) ([]domainBilling.Payment, error) {
	var raw json.RawMessage
	if err := r.Client.Do(ctx, http.MethodGet, "/payments", nil, nil, &raw); err != nil {
		r.Logger.Error("Error getting payments", zap.Error(err))
		return nil, err
	}
	payments, err := decodeList[Payment](raw, "payment list", "payments", "items")
	if err != nil {
		return nil, err
	}
	out := make([]domainBilling.Payment, len(payments))
	for i, p := range payments {
		paidAt := p.PaidAt.Time
		if paidAt.IsZero() {
			paidAt = p.Created.Time
		}
		out[i] = domainBilling.Payment{
			ID:       p.ID.String(),
			Amount:   p.Amount,
			Currency: p.Currency,
			Status:   p.Status,
			PaidAt:   paidAt,
		}
	}
	return out, nil
}
