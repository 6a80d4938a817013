package account

import (
	"net/http"

	useCaseAccount "go-campzeo-client/src/application/usecases/account"
	domainCampaign "go-campzeo-client/src/domain/campaign"
	domainSocial "go-campzeo-client/src/domain/social"
	logger "go-campzeo-client/src/infrastructure/logger"
	"go-campzeo-client/src/infrastructure/rest/controllers"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type IAccountController interface {
	Status(ctx *gin.Context)
	Connect(ctx *gin.Context)
	Disconnect(ctx *gin.Context)
	PinterestBoards(ctx *gin.Context)
	CreatePinterestBoard(ctx *gin.Context)
	FacebookPages(ctx *gin.Context)
}

type AccountController struct {
	accountUseCase useCaseAccount.IAccountUseCase
	Logger         *logger.Logger
}

func NewAccountController(accountUseCase useCaseAccount.IAccountUseCase, loggerInstance *logger.Logger) IAccountController {
	return &AccountController{
		accountUseCase: accountUseCase,
		Logger:         loggerInstance,
	}
}

func platformParam(ctx *gin.Context) domainCampaign.PlatformType {
	return domainCampaign.PlatformType(ctx.Param("platform"))
}

func (c *AccountController) Status(ctx *gin.Context) {
	status, err := c.accountUseCase.Status(ctx.Request.Context())
	if err != nil {
		c.Logger.Error("Error loading account status", zap.Error(err))
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, status)
}

// Connect returns the platform's authorization URL, or a QR code of it when
// format=png is requested
func (c *AccountController) Connect(ctx *gin.Context) {
	platform := platformParam(ctx)
	if ctx.Query("format") == "png" {
		size, err := controllers.QueryInt(ctx, "size", useCaseAccount.DefaultQRSize)
		if err != nil {
			_ = ctx.Error(err)
			return
		}
		png, err := c.accountUseCase.ConnectQR(ctx.Request.Context(), platform, size)
		if err != nil {
			_ = ctx.Error(err)
			return
		}
		ctx.Data(http.StatusOK, "image/png", png)
		return
	}

	authURL, err := c.accountUseCase.ConnectURL(ctx.Request.Context(), platform)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, ConnectResponse{Platform: platform, URL: authURL})
}

func (c *AccountController) Disconnect(ctx *gin.Context) {
	update, err := c.accountUseCase.Disconnect(ctx.Request.Context(), platformParam(ctx))
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, controllers.ToggleToResponse(update))
}

func (c *AccountController) PinterestBoards(ctx *gin.Context) {
	boards, err := c.accountUseCase.PinterestBoards(ctx.Request.Context())
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	if boards == nil {
		boards = []domainSocial.PinterestBoard{}
	}
	ctx.JSON(http.StatusOK, boards)
}

func (c *AccountController) CreatePinterestBoard(ctx *gin.Context) {
	var request BoardRequest
	if err := controllers.BindJSON(ctx, &request); err != nil {
		_ = ctx.Error(err)
		return
	}
	board, err := c.accountUseCase.CreatePinterestBoard(ctx.Request.Context(), &domainSocial.BoardForm{
		Name:        request.Name,
		Description: request.Description,
	})
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusCreated, board)
}

func (c *AccountController) FacebookPages(ctx *gin.Context) {
	pages, err := c.accountUseCase.FacebookPages(ctx.Request.Context())
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	if pages == nil {
		pages = []domainSocial.FacebookPage{}
	}
	ctx.JSON(http.StatusOK, pages)
}
