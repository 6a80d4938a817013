package routes

import (
	billingController "go-campzeo-client/src/infrastructure/rest/controllers/billing"

	"github.com/gin-gonic/gin"
)

func BillingRoutes(router *gin.RouterGroup, controller billingController.IBillingController) {
	b := router.Group("/billing")
	{
		b.GET("", controller.Overview)
		b.PUT("/auto-renew", controller.SetAutoRenew)
		b.POST("/cancel", controller.Cancel)
	}
}
