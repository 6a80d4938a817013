package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-campzeo-client/src/application/store"
	domainBilling "go-campzeo-client/src/domain/billing"
	domainErrors "go-campzeo-client/src/domain/errors"
	logger "go-campzeo-client/src/infrastructure/logger"
	"go-campzeo-client/src/infrastructure/rest/controllers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockBillingUseCase struct {
	overviewFn  func(ctx context.Context) (*domainBilling.Overview, error)
	autoRenewFn func(ctx context.Context, enabled bool) (store.Update[bool], error)
	cancelFn    func(ctx context.Context, form *domainBilling.CancelForm) error
}

func (m *MockBillingUseCase) Overview(ctx context.Context) (*domainBilling.Overview, error) {
	return m.overviewFn(ctx)
}
func (m *MockBillingUseCase) SetAutoRenew(ctx context.Context, enabled bool) (store.Update[bool], error) {
	return m.autoRenewFn(ctx, enabled)
}
func (m *MockBillingUseCase) Cancel(ctx context.Context, form *domainBilling.CancelForm) error {
	return m.cancelFn(ctx, form)
}

func setupContext(method string, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(method, target, bytes.NewReader(body))
	ctx.Request.Header.Set("Content-Type", "application/json")
	return ctx, w
}

func TestBillingController_Overview(t *testing.T) {
	useCase := &MockBillingUseCase{
		overviewFn: func(context.Context) (*domainBilling.Overview, error) {
			return &domainBilling.Overview{Subscription: &domainBilling.Subscription{PlanName: "Pro", Status: "active"}}, nil
		},
	}
	controller := NewBillingController(useCase, logger.NewNopLogger())

	ctx, w := setupContext(http.MethodGet, "/v1/billing", nil)
	controller.Overview(ctx)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"planName":"Pro"`)
}

func TestBillingController_SetAutoRenew(t *testing.T) {
	t.Run("committed", func(t *testing.T) {
		useCase := &MockBillingUseCase{
			autoRenewFn: func(_ context.Context, enabled bool) (store.Update[bool], error) {
				return store.Update[bool]{Phase: store.Committed, Previous: !enabled, Value: enabled}, nil
			},
		}
		controller := NewBillingController(useCase, logger.NewNopLogger())

		ctx, w := setupContext(http.MethodPut, "/v1/billing/auto-renew", []byte(`{"enabled":false}`))
		controller.SetAutoRenew(ctx)

		require.Equal(t, http.StatusOK, w.Code)
		var response controllers.ToggleResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, store.Committed, response.Phase)
		assert.False(t, response.Current)
		assert.True(t, response.Previous)
	})

	t.Run("missing flag", func(t *testing.T) {
		controller := NewBillingController(&MockBillingUseCase{}, logger.NewNopLogger())
		ctx, _ := setupContext(http.MethodPut, "/v1/billing/auto-renew", []byte(`{}`))
		controller.SetAutoRenew(ctx)
		require.Len(t, ctx.Errors, 1)
		assert.True(t, domainErrors.IsType(ctx.Errors.Last().Err, domainErrors.ValidationError))
	})

	t.Run("rolled back", func(t *testing.T) {
		useCase := &MockBillingUseCase{
			autoRenewFn: func(_ context.Context, enabled bool) (store.Update[bool], error) {
				return store.Update[bool]{Phase: store.RolledBack, Previous: !enabled, Value: enabled}, domainErrors.NewBackendError(http.StatusBadGateway, "upstream down")
			},
		}
		controller := NewBillingController(useCase, logger.NewNopLogger())
		ctx, _ := setupContext(http.MethodPut, "/v1/billing/auto-renew", []byte(`{"enabled":true}`))
		controller.SetAutoRenew(ctx)
		require.Len(t, ctx.Errors, 1)
		assert.True(t, domainErrors.IsType(ctx.Errors.Last().Err, domainErrors.BackendError))
	})
}

func TestBillingController_Cancel(t *testing.T) {
	var got *domainBilling.CancelForm
	useCase := &MockBillingUseCase{
		cancelFn: func(_ context.Context, form *domainBilling.CancelForm) error {
			got = form
			if form.CancelImmediately == nil {
				return errors.New("choice required")
			}
			return nil
		},
	}
	controller := NewBillingController(useCase, logger.NewNopLogger())

	ctx, w := setupContext(http.MethodPost, "/v1/billing/cancel", []byte(`{"cancelImmediately":true,"reason":"switching"}`))
	controller.Cancel(ctx)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, got.CancelImmediately)
	assert.True(t, *got.CancelImmediately)
	assert.Equal(t, "switching", got.Reason)

	ctx, _ = setupContext(http.MethodPost, "/v1/billing/cancel", []byte(`{"reason":"switching"}`))
	controller.Cancel(ctx)
	assert.Len(t, ctx.Errors, 1)
}
