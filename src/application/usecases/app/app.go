package app

import (
	"context"
	"fmt"
	"time"

	"go-campzeo-client/src/application/store"
	domainUser "go-campzeo-client/src/domain/user"
	"go-campzeo-client/src/infrastructure/helper"
	logger "go-campzeo-client/src/infrastructure/logger"
	"go-campzeo-client/src/infrastructure/repository/backend"

	"go.uber.org/zap"
)

// IAppUseCase exposes the app-wide store and account checks
type IAppUseCase interface {
	State() store.State
	ToggleSidebar() bool
	SetSidebar(open bool) bool
	CheckApproval(ctx context.Context, refresh bool) (store.Approval, error)
	ValidateProfile(form *domainUser.ProfileForm) error
}

type AppUseCase struct {
	Store             *store.Store
	BillingRepository backend.BillingRepositoryInterface
	Validator         helper.Validator
	Logger            *logger.Logger
	now               func() time.Time
}

func NewAppUseCase(
	appStore *store.Store,
	billingRepository backend.BillingRepositoryInterface,
	validator helper.Validator,
	loggerInstance *logger.Logger,
	now func() time.Time,
) IAppUseCase {
	if now == nil {
		now = time.Now
	}
	return &AppUseCase{
		Store:             appStore,
		BillingRepository: billingRepository,
		Validator:         validator,
		Logger:            loggerInstance,
		now:               now,
	}
}

func (u *AppUseCase) State() store.State {
	return u.Store.Snapshot(u.now())
}

func (u *AppUseCase) ToggleSidebar() bool {
	return u.Store.ToggleSidebar()
}

func (u *AppUseCase) SetSidebar(open bool) bool {
	u.Store.SetSidebar(open)
	return open
}

// CheckApproval answers from the cache while it is fresh, otherwise asks
// the backend for the current subscription.
func (u *AppUseCase) CheckApproval(ctx context.Context, refresh bool) (store.Approval, error) {
	now := u.now()
	if !refresh {
		if cached, ok := u.Store.Approval(now); ok {
			return cached, nil
		}
	}

	subscription, err := u.BillingRepository.GetCurrentSubscription(ctx)
	if err != nil {
		u.Logger.Error("Error checking account approval", zap.Error(err))
		return store.Approval{}, err
	}

	approval := store.Approval{Approved: subscription.IsActive(), CheckedAt: now}
	switch {
	case subscription == nil:
		approval.Reason = "no active subscription"
	case !approval.Approved:
		approval.Reason = fmt.Sprintf("subscription is %s", subscription.Status)
	}
	u.Store.SetApproval(approval)
	u.Logger.Info("Account approval checked", zap.Bool("approved", approval.Approved))
	return approval, nil
}

// ValidateProfile runs the profile schema; profiles are not sent anywhere
func (u *AppUseCase) ValidateProfile(form *domainUser.ProfileForm) error {
	return u.Validator.Struct(form)
}
