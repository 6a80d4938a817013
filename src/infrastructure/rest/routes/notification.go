package routes

import (
	notificationController "go-campzeo-client/src/infrastructure/rest/controllers/notification"

	"github.com/gin-gonic/gin"
)

func NotificationRoutes(router *gin.RouterGroup, controller notificationController.INotificationController) {
	n := router.Group("/notifications")
	{
		n.GET("", controller.List)
		n.POST("/read", controller.MarkAllRead)
		n.POST("/:id/read", controller.MarkRead)
		n.PUT("/:id/hidden", controller.SetHidden)
		n.DELETE("/:id", controller.Delete)
	}
}
