package routes

import (
	appController "go-campzeo-client/src/infrastructure/rest/controllers/app"

	"github.com/gin-gonic/gin"
)

func AppRoutes(router *gin.RouterGroup, controller appController.IAppController) {
	a := router.Group("/app")
	{
		a.GET("/state", controller.State)
		a.POST("/sidebar/toggle", controller.ToggleSidebar)
		a.PUT("/sidebar", controller.SetSidebar)
		a.GET("/approval", controller.Approval)
		a.POST("/profile/validate", controller.ValidateProfile)
	}
}
