package routes

import (
	"net/http"

	"go-campzeo-client/src/infrastructure/di"
	"go-campzeo-client/src/infrastructure/rest/middlewares"

	"github.com/gin-gonic/gin"
)

func ApplicationRouter(router *gin.Engine, appContext *di.ApplicationContext) {
	v1 := router.Group("/v1")

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Service is running",
			"api":     appContext.Config.API.BaseURL,
		})
	})

	api := v1.Group("")
	api.Use(middlewares.BearerTokenMiddleware(appContext.TokenInspector, appContext.Logger))

	AppRoutes(api, appContext.AppController)
	DashboardRoutes(api, appContext.DashboardController)
	CampaignRoutes(api, appContext.CampaignController)
	ComposeRoutes(api, appContext.ComposeController)
	ContactRoutes(api, appContext.ContactController)
	LogsRoutes(api, appContext.LogsController)
	AccountRoutes(api, appContext.AccountController)
	BillingRoutes(api, appContext.BillingController)
	NotificationRoutes(api, appContext.NotificationController)
}
