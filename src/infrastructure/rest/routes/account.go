package routes

import (
	accountController "go-campzeo-client/src/infrastructure/rest/controllers/account"

	"github.com/gin-gonic/gin"
)

func AccountRoutes(router *gin.RouterGroup, controller accountController.IAccountController) {
	a := router.Group("/accounts")
	{
		a.GET("", controller.Status)
		a.GET("/pinterest/boards", controller.PinterestBoards)
		a.POST("/pinterest/boards", controller.CreatePinterestBoard)
		a.GET("/facebook/pages", controller.FacebookPages)

		a.GET("/:platform/connect", controller.Connect)
		a.DELETE("/:platform", controller.Disconnect)
	}
}
