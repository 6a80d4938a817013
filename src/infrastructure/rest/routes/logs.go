package routes

import (
	logsController "go-campzeo-client/src/infrastructure/rest/controllers/logs"

	"github.com/gin-gonic/gin"
)

func LogsRoutes(router *gin.RouterGroup, controller logsController.ILogsController) {
	l := router.Group("/logs")
	{
		l.GET("/posts", controller.Posts)
		l.GET("/posts/:id", controller.PostDetails)
	}
}
