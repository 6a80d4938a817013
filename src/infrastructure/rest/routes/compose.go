package routes

import (
	composeController "go-campzeo-client/src/infrastructure/rest/controllers/compose"

	"github.com/gin-gonic/gin"
)

func ComposeRoutes(router *gin.RouterGroup, controller composeController.IComposeController) {
	c := router.Group("/compose")
	{
		c.POST("", controller.Start)
		c.GET("/:id", controller.Get)
		c.PATCH("/:id", controller.Edit)
		c.DELETE("/:id", controller.Discard)
		c.PUT("/:id/platform", controller.SelectPlatform)

		c.POST("/:id/ai/text", controller.GenerateText)
		c.POST("/:id/ai/text/select", controller.SelectVariation)
		c.DELETE("/:id/ai/text", controller.DiscardVariations)
		c.POST("/:id/ai/image", controller.GenerateImage)

		c.POST("/:id/attachments", controller.Attach)
		c.DELETE("/:id/attachments/:attachmentId", controller.RemoveAttachment)
		c.DELETE("/:id/alerts", controller.DismissAlerts)

		c.POST("/:id/submit", controller.Submit)
	}
}
