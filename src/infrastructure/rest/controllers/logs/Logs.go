package logs

import (
	"net/http"

	useCaseAnalytics "go-campzeo-client/src/application/usecases/analytics"
	domainAnalytics "go-campzeo-client/src/domain/analytics"
	domainCampaign "go-campzeo-client/src/domain/campaign"
	logger "go-campzeo-client/src/infrastructure/logger"
	"go-campzeo-client/src/infrastructure/repository/backend"
	"go-campzeo-client/src/infrastructure/rest/controllers"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ILogsController interface {
	Posts(ctx *gin.Context)
	PostDetails(ctx *gin.Context)
}

type LogsController struct {
	analyticsUseCase useCaseAnalytics.IAnalyticsUseCase
	Logger           *logger.Logger
}

func NewLogsController(analyticsUseCase useCaseAnalytics.IAnalyticsUseCase, loggerInstance *logger.Logger) ILogsController {
	return &LogsController{
		analyticsUseCase: analyticsUseCase,
		Logger:           loggerInstance,
	}
}

func (c *LogsController) Posts(ctx *gin.Context) {
	page, limit, err := controllers.Page(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	posts, err := c.analyticsUseCase.Posts(ctx.Request.Context(), backend.AnalyticsQuery{
		Platform:   domainCampaign.PlatformType(ctx.Query("platform")),
		CampaignID: ctx.Query("campaignId"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		c.Logger.Error("Error loading post logs", zap.Error(err))
		_ = ctx.Error(err)
		return
	}
	if posts == nil {
		posts = []domainAnalytics.PostLog{}
	}
	ctx.JSON(http.StatusOK, posts)
}

func (c *LogsController) PostDetails(ctx *gin.Context) {
	details, err := c.analyticsUseCase.PostDetails(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, details)
}
