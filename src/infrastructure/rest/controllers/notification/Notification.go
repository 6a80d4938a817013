package notification

import (
	"net/http"

	useCaseNotification "go-campzeo-client/src/application/usecases/notification"
	domainNotification "go-campzeo-client/src/domain/notification"
	logger "go-campzeo-client/src/infrastructure/logger"
	"go-campzeo-client/src/infrastructure/rest/controllers"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type INotificationController interface {
	List(ctx *gin.Context)
	MarkRead(ctx *gin.Context)
	MarkAllRead(ctx *gin.Context)
	SetHidden(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

type NotificationController struct {
	notificationUseCase useCaseNotification.INotificationUseCase
	Logger              *logger.Logger
}

func NewNotificationController(notificationUseCase useCaseNotification.INotificationUseCase, loggerInstance *logger.Logger) INotificationController {
	return &NotificationController{
		notificationUseCase: notificationUseCase,
		Logger:              loggerInstance,
	}
}

func (c *NotificationController) List(ctx *gin.Context) {
	page, limit, err := controllers.Page(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	result, err := c.notificationUseCase.List(ctx.Request.Context(), page, limit)
	if err != nil {
		c.Logger.Error("Error listing notifications", zap.Error(err))
		_ = ctx.Error(err)
		return
	}
	response := domainNotification.Page{Items: []domainNotification.Notification{}}
	if result != nil {
		response = *result
		if response.Items == nil {
			response.Items = []domainNotification.Notification{}
		}
	}
	ctx.JSON(http.StatusOK, response)
}

func (c *NotificationController) MarkRead(ctx *gin.Context) {
	if err := c.notificationUseCase.MarkRead(ctx.Request.Context(), ctx.Param("id")); err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, controllers.MessageResponse{Message: "notification marked as read"})
}

func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	if err := c.notificationUseCase.MarkAllRead(ctx.Request.Context()); err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, controllers.MessageResponse{Message: "all notifications marked as read"})
}

func (c *NotificationController) SetHidden(ctx *gin.Context) {
	var request HiddenRequest
	if err := controllers.BindJSON(ctx, &request); err != nil {
		_ = ctx.Error(err)
		return
	}
	update, err := c.notificationUseCase.SetHidden(ctx.Request.Context(), ctx.Param("id"), *request.Hidden)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, controllers.ToggleToResponse(update))
}

func (c *NotificationController) Delete(ctx *gin.Context) {
	if err := c.notificationUseCase.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, controllers.MessageResponse{Message: "notification deleted"})
}
