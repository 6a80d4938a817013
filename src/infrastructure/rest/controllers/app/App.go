package app

import (
	"net/http"
	"strconv"

	useCaseApp "go-campzeo-client/src/application/usecases/app"
	logger "go-campzeo-client/src/infrastructure/logger"
	"go-campzeo-client/src/infrastructure/rest/controllers"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type IAppController interface {
	State(ctx *gin.Context)
	ToggleSidebar(ctx *gin.Context)
	SetSidebar(ctx *gin.Context)
	Approval(ctx *gin.Context)
	ValidateProfile(ctx *gin.Context)
}

type AppController struct {
	appUseCase useCaseApp.IAppUseCase
	Logger     *logger.Logger
}

func NewAppController(appUseCase useCaseApp.IAppUseCase, loggerInstance *logger.Logger) IAppController {
	return &AppController{
		appUseCase: appUseCase,
		Logger:     loggerInstance,
	}
}

func (c *AppController) State(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.appUseCase.State())
}

func (c *AppController) ToggleSidebar(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, SidebarResponse{Open: c.appUseCase.ToggleSidebar()})
}

func (c *AppController) SetSidebar(ctx *gin.Context) {
	var request SidebarRequest
	if err := controllers.BindJSON(ctx, &request); err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, SidebarResponse{Open: c.appUseCase.SetSidebar(*request.Open)})
}

// Approval serves the cached approval unless refresh=true forces a check
func (c *AppController) Approval(ctx *gin.Context) {
	refresh, _ := strconv.ParseBool(ctx.Query("refresh"))
	approval, err := c.appUseCase.CheckApproval(ctx.Request.Context(), refresh)
	if err != nil {
		c.Logger.Error("Error checking approval", zap.Error(err))
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, approval)
}

func (c *AppController) ValidateProfile(ctx *gin.Context) {
	var request ProfileRequest
	if err := controllers.BindJSON(ctx, &request); err != nil {
		_ = ctx.Error(err)
		return
	}
	if err := c.appUseCase.ValidateProfile(request.toForm()); err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, controllers.MessageResponse{Message: "profile is valid"})
}
