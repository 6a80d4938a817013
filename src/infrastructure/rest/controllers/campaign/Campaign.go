package campaign

import (
	"net/http"

	useCaseCampaign "go-campzeo-client/src/application/usecases/campaign"
	logger "go-campzeo-client/src/infrastructure/logger"
	"go-campzeo-client/src/infrastructure/repository/backend"
	"go-campzeo-client/src/infrastructure/rest/controllers"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ICampaignController interface {
	List(ctx *gin.Context)
	Get(ctx *gin.Context)
	Create(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
	ListPosts(ctx *gin.Context)
	GetPost(ctx *gin.Context)
	DeletePost(ctx *gin.Context)
	SendPost(ctx *gin.Context)
}

type CampaignController struct {
	campaignUseCase useCaseCampaign.ICampaignUseCase
	Logger          *logger.Logger
}

func NewCampaignController(campaignUseCase useCaseCampaign.ICampaignUseCase, loggerInstance *logger.Logger) ICampaignController {
	return &CampaignController{
		campaignUseCase: campaignUseCase,
		Logger:          loggerInstance,
	}
}

func (c *CampaignController) List(ctx *gin.Context) {
	page, limit, err := controllers.Page(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	campaigns, err := c.campaignUseCase.List(ctx.Request.Context(), backend.CampaignQuery{
		Search: ctx.Query("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		c.Logger.Error("Error listing campaigns", zap.Error(err))
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, campaignsToResponse(campaigns))
}

func (c *CampaignController) Get(ctx *gin.Context) {
	campaign, err := c.campaignUseCase.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, campaignToResponse(campaign))
}

func (c *CampaignController) Create(ctx *gin.Context) {
	var request CampaignRequest
	if err := controllers.BindJSON(ctx, &request); err != nil {
		c.Logger.Error("Error binding JSON for new campaign", zap.Error(err))
		_ = ctx.Error(err)
		return
	}
	campaign, err := c.campaignUseCase.Create(ctx.Request.Context(), request.toForm())
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusCreated, campaignToResponse(campaign))
}

func (c *CampaignController) Update(ctx *gin.Context) {
	var request CampaignRequest
	if err := controllers.BindJSON(ctx, &request); err != nil {
		c.Logger.Error("Error binding JSON for campaign update", zap.Error(err))
		_ = ctx.Error(err)
		return
	}
	campaign, err := c.campaignUseCase.Update(ctx.Request.Context(), ctx.Param("id"), request.toForm())
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, campaignToResponse(campaign))
}

func (c *CampaignController) Delete(ctx *gin.Context) {
	if err := c.campaignUseCase.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, controllers.MessageResponse{Message: "campaign deleted"})
}

func (c *CampaignController) ListPosts(ctx *gin.Context) {
	posts, err := c.campaignUseCase.ListPosts(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	response := make([]PostResponse, len(posts))
	for i := range posts {
		response[i] = PostToResponse(&posts[i])
	}
	ctx.JSON(http.StatusOK, response)
}

func (c *CampaignController) GetPost(ctx *gin.Context) {
	post, err := c.campaignUseCase.GetPost(ctx.Request.Context(), ctx.Param("id"), ctx.Param("postId"))
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, PostToResponse(post))
}

func (c *CampaignController) DeletePost(ctx *gin.Context) {
	if err := c.campaignUseCase.DeletePost(ctx.Request.Context(), ctx.Param("id"), ctx.Param("postId")); err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, controllers.MessageResponse{Message: "post deleted"})
}

func (c *CampaignController) SendPost(ctx *gin.Context) {
	if err := c.campaignUseCase.SendPost(ctx.Request.Context(), ctx.Param("id"), ctx.Param("postId")); err != nil {
		c.Logger.Error("Error sending post", zap.Error(err), zap.String("postID", ctx.Param("postId")))
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusAccepted, controllers.MessageResponse{Message: "post sent"})
}
