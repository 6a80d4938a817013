package dashboard

import (
	"net/http"

	useCaseCalendar "go-campzeo-client/src/application/usecases/calendar"
	domainCampaign "go-campzeo-client/src/domain/campaign"
	logger "go-campzeo-client/src/infrastructure/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type IDashboardController interface {
	Events(ctx *gin.Context)
	Calendar(ctx *gin.Context)
	Upcoming(ctx *gin.Context)
}

type DashboardController struct {
	calendarUseCase useCaseCalendar.ICalendarUseCase
	Logger          *logger.Logger
}

func NewDashboardController(calendarUseCase useCaseCalendar.ICalendarUseCase, loggerInstance *logger.Logger) IDashboardController {
	return &DashboardController{
		calendarUseCase: calendarUseCase,
		Logger:          loggerInstance,
	}
}

func (c *DashboardController) Events(ctx *gin.Context) {
	events, err := c.calendarUseCase.Events(ctx.Request.Context())
	if err != nil {
		c.Logger.Error("Error loading calendar events", zap.Error(err))
		_ = ctx.Error(err)
		return
	}
	if events == nil {
		events = []domainCampaign.CalendarEvent{}
	}
	ctx.JSON(http.StatusOK, events)
}

func (c *DashboardController) Calendar(ctx *gin.Context) {
	buckets, err := c.calendarUseCase.Calendar(ctx.Request.Context())
	if err != nil {
		c.Logger.Error("Error loading calendar", zap.Error(err))
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, buckets)
}

func (c *DashboardController) Upcoming(ctx *gin.Context) {
	buckets, err := c.calendarUseCase.Upcoming(ctx.Request.Context())
	if err != nil {
		c.Logger.Error("Error loading upcoming posts", zap.Error(err))
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, buckets)
}
