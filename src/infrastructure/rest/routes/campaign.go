package routes

import (
	campaignController "go-campzeo-client/src/infrastructure/rest/controllers/campaign"

	"github.com/gin-gonic/gin"
)

func CampaignRoutes(router *gin.RouterGroup, controller campaignController.ICampaignController) {
	c := router.Group("/campaigns")
	{
		c.GET("", controller.List)
		c.POST("", controller.Create)
		c.GET("/:id", controller.Get)
		c.PUT("/:id", controller.Update)
		c.DELETE("/:id", controller.Delete)

		c.GET("/:id/posts", controller.ListPosts)
		c.GET("/:id/posts/:postId", controller.GetPost)
		c.DELETE("/:id/posts/:postId", controller.DeletePost)
		c.POST("/:id/posts/:postId/send", controller.SendPost)
	}
}
