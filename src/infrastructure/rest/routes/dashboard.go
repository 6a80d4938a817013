package routes

import (
	dashboardController "go-campzeo-client/src/infrastructure/rest/controllers/dashboard"

	"github.com/gin-gonic/gin"
)

func DashboardRoutes(router *gin.RouterGroup, controller dashboardController.IDashboardController) {
	d := router.Group("/dashboard")
	{
		d.GET("/events", controller.Events)
		d.GET("/calendar", controller.Calendar)
		d.GET("/upcoming", controller.Upcoming)
	}
}
