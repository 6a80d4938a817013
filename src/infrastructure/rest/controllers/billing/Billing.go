package billing

import (
	"net/http"

	useCaseBilling "go-campzeo-client/src/application/usecases/billing"
	logger "go-campzeo-client/src/infrastructure/logger"
	"go-campzeo-client/src/infrastructure/rest/controllers"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type IBillingController interface {
	Overview(ctx *gin.Context)
	SetAutoRenew(ctx *gin.Context)
	Cancel(ctx *gin.Context)
}

type BillingController struct {
	billingUseCase useCaseBilling.IBillingUseCase
	Logger         *logger.Logger
}

func NewBillingController(billingUseCase useCaseBilling.IBillingUseCase, loggerInstance *logger.Logger) IBillingController {
	return &BillingController{
		billingUseCase: billingUseCase,
		Logger:         loggerInstance,
	}
}

func (c *BillingController) Overview(ctx *gin.Context) {
	overview, err := c.billingUseCase.Overview(ctx.Request.Context())
	if err != nil {
		c.Logger.Error("Error loading billing overview", zap.Error(err))
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, overview)
}

func (c *BillingController) SetAutoRenew(ctx *gin.Context) {
	var request AutoRenewRequest
	if err := controllers.BindJSON(ctx, &request); err != nil {
		_ = ctx.Error(err)
		return
	}
	update, err := c.billingUseCase.SetAutoRenew(ctx.Request.Context(), *request.Enabled)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, controllers.ToggleToResponse(update))
}

func (c *BillingController) Cancel(ctx *gin.Context) {
	var request CancelRequest
	if err := controllers.BindJSON(ctx, &request); err != nil {
		c.Logger.Error("Error binding JSON for cancellation", zap.Error(err))
		_ = ctx.Error(err)
		return
	}
	if err := c.billingUseCase.Cancel(ctx.Request.Context(), request.toForm()); err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, controllers.MessageResponse{Message: "subscription cancelled"})
}
