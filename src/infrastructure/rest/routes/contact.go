package routes

import (
	contactController "go-campzeo-client/src/infrastructure/rest/controllers/contact"

	"github.com/gin-gonic/gin"
)

func ContactRoutes(router *gin.RouterGroup, controller contactController.IContactController) {
	c := router.Group("/contacts")
	{
		c.GET("", controller.List)
		c.POST("", controller.Create)
		c.GET("/export", controller.Export)
		c.GET("/:id", controller.Get)
		c.PUT("/:id", controller.Update)
		c.DELETE("/:id", controller.Delete)
	}
}
