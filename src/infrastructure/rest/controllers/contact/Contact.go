package contact

import (
	"fmt"
	"net/http"

	useCaseContact "go-campzeo-client/src/application/usecases/contact"
	domainContact "go-campzeo-client/src/domain/contact"
	logger "go-campzeo-client/src/infrastructure/logger"
	"go-campzeo-client/src/infrastructure/rest/controllers"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type IContactController interface {
	List(ctx *gin.Context)
	Get(ctx *gin.Context)
	Create(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
	Export(ctx *gin.Context)
}

type ContactController struct {
	contactUseCase useCaseContact.IContactUseCase
	Logger         *logger.Logger
}

func NewContactController(contactUseCase useCaseContact.IContactUseCase, loggerInstance *logger.Logger) IContactController {
	return &ContactController{
		contactUseCase: contactUseCase,
		Logger:         loggerInstance,
	}
}

func (c *ContactController) List(ctx *gin.Context) {
	page, limit, err := controllers.Page(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	contacts, err := c.contactUseCase.List(ctx.Request.Context(), domainContact.ListFilter{
		Search:     ctx.Query("search"),
		CampaignID: ctx.Query("campaignId"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		c.Logger.Error("Error listing contacts", zap.Error(err))
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, contactsToResponse(contacts))
}

func (c *ContactController) Get(ctx *gin.Context) {
	contact, err := c.contactUseCase.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, contactToResponse(contact))
}

func (c *ContactController) Create(ctx *gin.Context) {
	var request ContactRequest
	if err := controllers.BindJSON(ctx, &request); err != nil {
		c.Logger.Error("Error binding JSON for new contact", zap.Error(err))
		_ = ctx.Error(err)
		return
	}
	contact, err := c.contactUseCase.Create(ctx.Request.Context(), request.toForm())
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusCreated, contactToResponse(contact))
}

func (c *ContactController) Update(ctx *gin.Context) {
	var request ContactRequest
	if err := controllers.BindJSON(ctx, &request); err != nil {
		c.Logger.Error("Error binding JSON for contact update", zap.Error(err))
		_ = ctx.Error(err)
		return
	}
	contact, err := c.contactUseCase.Update(ctx.Request.Context(), ctx.Param("id"), request.toForm())
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, contactToResponse(contact))
}

func (c *ContactController) Delete(ctx *gin.Context) {
	if err := c.contactUseCase.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, controllers.MessageResponse{Message: "contact deleted"})
}

func (c *ContactController) Export(ctx *gin.Context) {
	export, err := c.contactUseCase.Export(ctx.Request.Context())
	if err != nil {
		c.Logger.Error("Error exporting contacts", zap.Error(err))
		_ = ctx.Error(err)
		return
	}
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName))
	ctx.Data(http.StatusOK, export.ContentType, export.Data)
}
