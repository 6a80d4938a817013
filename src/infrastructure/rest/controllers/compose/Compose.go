package compose

import (
	"net/http"
	"strings"

	useCaseComposer "go-campzeo-client/src/application/usecases/composer"
	domainCampaign "go-campzeo-client/src/domain/campaign"
	domainErrors "go-campzeo-client/src/domain/errors"
	logger "go-campzeo-client/src/infrastructure/logger"
	"go-campzeo-client/src/infrastructure/rest/controllers"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type IComposeController interface {
	Start(ctx *gin.Context)
	Get(ctx *gin.Context)
	SelectPlatform(ctx *gin.Context)
	Edit(ctx *gin.Context)
	GenerateText(ctx *gin.Context)
	SelectVariation(ctx *gin.Context)
	DiscardVariations(ctx *gin.Context)
	GenerateImage(ctx *gin.Context)
	Attach(ctx *gin.Context)
	RemoveAttachment(ctx *gin.Context)
	DismissAlerts(ctx *gin.Context)
	Submit(ctx *gin.Context)
	Discard(ctx *gin.Context)
}

type ComposeController struct {
	composerUseCase useCaseComposer.IComposerUseCase
	Logger          *logger.Logger
}

func NewComposeController(composerUseCase useCaseComposer.IComposerUseCase, loggerInstance *logger.Logger) IComposeController {
	return &ComposeController{
		composerUseCase: composerUseCase,
		Logger:          loggerInstance,
	}
}

func (c *ComposeController) respond(ctx *gin.Context, status int, view *useCaseComposer.View, err error) {
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(status, view)
}

func (c *ComposeController) Start(ctx *gin.Context) {
	var request StartRequest
	if err := controllers.BindJSON(ctx, &request); err != nil {
		c.Logger.Error("Error binding JSON for compose session", zap.Error(err))
		_ = ctx.Error(err)
		return
	}
	view, err := c.composerUseCase.Start(ctx.Request.Context(), useCaseComposer.StartRequest{
		CampaignID: request.CampaignID,
		PostID:     request.PostID,
		Platform:   domainCampaign.PlatformType(strings.ToUpper(request.Platform)),
	})
	c.respond(ctx, http.StatusCreated, view, err)
}

func (c *ComposeController) Get(ctx *gin.Context) {
	view, err := c.composerUseCase.Get(ctx.Param("id"))
	c.respond(ctx, http.StatusOK, view, err)
}

func (c *ComposeController) SelectPlatform(ctx *gin.Context) {
	var request PlatformRequest
	if err := controllers.BindJSON(ctx, &request); err != nil {
		_ = ctx.Error(err)
		return
	}
	platform, ok := domainCampaign.ParsePlatform(request.Platform)
	if !ok {
		_ = ctx.Error(domainErrors.NewValidationError([]domainErrors.FieldError{{Field: "platform", Message: "Choose a supported platform"}}))
		return
	}
	view, err := c.composerUseCase.SelectPlatform(ctx.Request.Context(), ctx.Param("id"), platform)
	c.respond(ctx, http.StatusOK, view, err)
}

func (c *ComposeController) Edit(ctx *gin.Context) {
	var request EditRequest
	if err := controllers.BindJSON(ctx, &request); err != nil {
		_ = ctx.Error(err)
		return
	}
	view, err := c.composerUseCase.Edit(ctx.Param("id"), useCaseComposer.Edit{
		Subject:           request.Subject,
		Message:           request.Message,
		ScheduledPostTime: request.ScheduledPostTime,
		Metadata:          request.Metadata,
	})
	c.respond(ctx, http.StatusOK, view, err)
}

func (c *ComposeController) GenerateText(ctx *gin.Context) {
	var request PromptRequest
	if err := controllers.BindJSON(ctx, &request); err != nil {
		_ = ctx.Error(err)
		return
	}
	view, err := c.composerUseCase.GenerateText(ctx.Request.Context(), ctx.Param("id"), request.Prompt)
	c.respond(ctx, http.StatusOK, view, err)
}

func (c *ComposeController) SelectVariation(ctx *gin.Context) {
	var request VariationRequest
	if err := controllers.BindJSON(ctx, &request); err != nil {
		_ = ctx.Error(err)
		return
	}
	view, err := c.composerUseCase.SelectVariation(ctx.Param("id"), *request.Index)
	c.respond(ctx, http.StatusOK, view, err)
}

func (c *ComposeController) DiscardVariations(ctx *gin.Context) {
	view, err := c.composerUseCase.DiscardVariations(ctx.Param("id"))
	c.respond(ctx, http.StatusOK, view, err)
}

func (c *ComposeController) GenerateImage(ctx *gin.Context) {
	var request PromptRequest
	if err := controllers.BindJSON(ctx, &request); err != nil {
		_ = ctx.Error(err)
		return
	}
	view, err := c.composerUseCase.GenerateImage(ctx.Request.Context(), ctx.Param("id"), request.Prompt)
	c.respond(ctx, http.StatusOK, view, err)
}

// Attach takes either a multipart "file" upload or a JSON body naming a file
// under the media root
func (c *ComposeController) Attach(ctx *gin.Context) {
	sessionID := ctx.Param("id")
	if strings.HasPrefix(ctx.ContentType(), "multipart/") {
		header, err := ctx.FormFile("file")
		if err != nil {
			_ = ctx.Error(domainErrors.NewValidationError([]domainErrors.FieldError{{Field: "file", Message: "File is required"}}))
			return
		}
		file, err := header.Open()
		if err != nil {
			c.Logger.Error("Error opening uploaded file", zap.Error(err), zap.String("name", header.Filename))
			_ = ctx.Error(domainErrors.NewAppError(err, domainErrors.ValidationError))
			return
		}
		defer file.Close()
		view, err := c.composerUseCase.AttachUpload(ctx.Request.Context(), sessionID, header.Filename, file)
		c.respond(ctx, http.StatusAccepted, view, err)
		return
	}

	var request AttachPathRequest
	if err := controllers.BindJSON(ctx, &request); err != nil {
		_ = ctx.Error(err)
		return
	}
	view, err := c.composerUseCase.AttachPath(ctx.Request.Context(), sessionID, request.Path)
	c.respond(ctx, http.StatusAccepted, view, err)
}

func (c *ComposeController) RemoveAttachment(ctx *gin.Context) {
	view, err := c.composerUseCase.RemoveAttachment(ctx.Param("id"), ctx.Param("attachmentId"))
	c.respond(ctx, http.StatusOK, view, err)
}

func (c *ComposeController) DismissAlerts(ctx *gin.Context) {
	view, err := c.composerUseCase.DismissAlerts(ctx.Param("id"))
	c.respond(ctx, http.StatusOK, view, err)
}

func (c *ComposeController) Submit(ctx *gin.Context) {
	post, err := c.composerUseCase.Submit(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.Logger.Warn("Post submission failed", zap.Error(err), zap.String("sessionID", ctx.Param("id")))
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusCreated, SubmitResponse{
		ID:                post.ID,
		CampaignID:        post.CampaignID,
		Type:              post.Type,
		ScheduledPostTime: post.ScheduledPostTime,
		MediaURLs:         append([]string{}, post.MediaURLs...),
	})
}

func (c *ComposeController) Discard(ctx *gin.Context) {
	if err := c.composerUseCase.Discard(ctx.Param("id")); err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, controllers.MessageResponse{Message: "session discarded"})
}
