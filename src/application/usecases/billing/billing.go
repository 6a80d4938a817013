package billing

import (
	"context"
	"errors"

	"go-campzeo-client/src/application/store"
	domainBilling "go-campzeo-client/src/domain/billing"
	domainErrors "go-campzeo-client/src/domain/errors"
	"go-campzeo-client/src/infrastructure/helper"
	logger "go-campzeo-client/src/infrastructure/logger"
	"go-campzeo-client/src/infrastructure/repository/backend"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const autoRenewKey = "autoRenew"

type IBillingUseCase interface {
	Overview(ctx context.Context) (*domainBilling.Overview, error)
	SetAutoRenew(ctx context.Context, enabled bool) (store.Update[bool], error)
	Cancel(ctx context.Context, form *domainBilling.CancelForm) error
}

type BillingUseCase struct {
	BillingRepository backend.BillingRepositoryInterface
	Validator         helper.Validator
	Store             *store.Store
	Logger            *logger.Logger

	autoRenew *store.TwoPhase[string, bool]
}

func NewBillingUseCase(
	billingRepository backend.BillingRepositoryInterface,
	validator helper.Validator,
	appStore *store.Store,
	loggerInstance *logger.Logger,
) IBillingUseCase {
	return &BillingUseCase{
		BillingRepository: billingRepository,
		Validator:         validator,
		Store:             appStore,
		Logger:            loggerInstance,
		autoRenew:         store.NewTwoPhase[string, bool](),
	}
}

// Overview loads usage, subscription, plans and payments concurrently. The
// first failure cancels the other requests. A pending auto-renew toggle is
// laid over the fetched subscription.
func (u *BillingUseCase) Overview(ctx context.Context) (*domainBilling.Overview, error) {
	overview := &domainBilling.Overview{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		usage, err := u.BillingRepository.GetUsage(gctx)
		if err != nil {
			return err
		}
		overview.Usage = *usage
		return nil
	})
	g.Go(func() error {
		subscription, err := u.BillingRepository.GetCurrentSubscription(gctx)
		if err != nil {
			return err
		}
		overview.Subscription = subscription
		return nil
	})
	g.Go(func() error {
		plans, err := u.BillingRepository.GetPlans(gctx)
		if err != nil {
			return err
		}
		overview.Plans = plans
		return nil
	})
	g.Go(func() error {
		payments, err := u.BillingRepository.GetPayments(gctx)
		if err != nil {
			return err
		}
		overview.Payments = payments
		return nil
	})

	if err := g.Wait(); err != nil {
		u.Logger.Error("Error loading billing overview", zap.Error(err))
		return nil, err
	}

	u.autoRenew.Forget()
	if value, ok := u.autoRenew.Overlay()[autoRenewKey]; ok && overview.Subscription != nil {
		overview.Subscription.AutoRenew = value
	}
	return overview, nil
}

// SetAutoRenew flips auto-renew optimistically. The returned update is
// Committed on success or RolledBack, with the previous value, on failure.
func (u *BillingUseCase) SetAutoRenew(ctx context.Context, enabled bool) (store.Update[bool], error) {
	if err := u.autoRenew.Begin(autoRenewKey, !enabled, enabled); err != nil {
		return store.Update[bool]{}, domainErrors.NewAppError(err, domainErrors.Conflict)
	}

	if err := u.BillingRepository.SetAutoRenew(ctx, enabled); err != nil {
		update, _ := u.autoRenew.Rollback(autoRenewKey, err)
		u.Logger.Warn("Auto-renew change rolled back", zap.Bool("autoRenew", enabled), zap.Error(err))
		return update, err
	}
	update, _ := u.autoRenew.Commit(autoRenewKey)
	u.Logger.Info("Auto-renew changed", zap.Bool("autoRenew", enabled))
	return update, nil
}

// Cancel validates the cancellation form and cancels the subscription. The
// cached approval is dropped since it depends on the subscription.
func (u *BillingUseCase) Cancel(ctx context.Context, form *domainBilling.CancelForm) error {
	if form == nil {
		return domainErrors.NewAppError(errors.New("cancellation form is required"), domainErrors.ValidationError)
	}
	if err := u.Validator.Struct(form); err != nil {
		return err
	}
	if err := u.BillingRepository.Cancel(ctx, form); err != nil {
		return err
	}
	if u.Store != nil {
		u.Store.InvalidateApproval()
	}
	u.Logger.Info("Subscription cancelled", zap.Bool("immediately", *form.CancelImmediately))
	return nil
}
