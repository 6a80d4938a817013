package di

import (
	"sync"
	"time"

	"go-campzeo-client/src/application/store"
	accountUseCase "go-campzeo-client/src/application/usecases/account"
	analyticsUseCase "go-campzeo-client/src/application/usecases/analytics"
	appUseCase "go-campzeo-client/src/application/usecases/app"
	billingUseCase "go-campzeo-client/src/application/usecases/billing"
	calendarUseCase "go-campzeo-client/src/application/usecases/calendar"
	campaignUseCase "go-campzeo-client/src/application/usecases/campaign"
	composerUseCase "go-campzeo-client/src/application/usecases/composer"
	contactUseCase "go-campzeo-client/src/application/usecases/contact"
	notificationUseCase "go-campzeo-client/src/application/usecases/notification"
	"go-campzeo-client/src/infrastructure/apiclient"
	"go-campzeo-client/src/infrastructure/config"
	"go-campzeo-client/src/infrastructure/helper"
	logger "go-campzeo-client/src/infrastructure/logger"
	"go-campzeo-client/src/infrastructure/media"
	"go-campzeo-client/src/infrastructure/repository/backend"
	accountController "go-campzeo-client/src/infrastructure/rest/controllers/account"
	appController "go-campzeo-client/src/infrastructure/rest/controllers/app"
	billingController "go-campzeo-client/src/infrastructure/rest/controllers/billing"
	campaignController "go-campzeo-client/src/infrastructure/rest/controllers/campaign"
	composeController "go-campzeo-client/src/infrastructure/rest/controllers/compose"
	contactController "go-campzeo-client/src/infrastructure/rest/controllers/contact"
	dashboardController "go-campzeo-client/src/infrastructure/rest/controllers/dashboard"
	logsController "go-campzeo-client/src/infrastructure/rest/controllers/logs"
	notificationController "go-campzeo-client/src/infrastructure/rest/controllers/notification"
	"go-campzeo-client/src/infrastructure/security"
	"go-campzeo-client/src/infrastructure/uploader"

	"go.uber.org/zap"
)

// ApplicationContext holds all application dependencies and services
type ApplicationContext struct {
	Config         config.Config
	Logger         *logger.Logger
	APIClient      *apiclient.Client
	TokenInspector security.ITokenInspector
	Validator      helper.Validator
	Store          *store.Store
	Library        media.ILibrary
	Uploader       *uploader.Uploader

	CampaignRepository     backend.CampaignRepositoryInterface
	PostRepository         backend.PostRepositoryInterface
	ContactRepository      backend.ContactRepositoryInterface
	SocialRepository       backend.SocialRepositoryInterface
	AIRepository           backend.AIRepositoryInterface
	AnalyticsRepository    backend.AnalyticsRepositoryInterface
	BillingRepository      backend.BillingRepositoryInterface
	NotificationRepository backend.NotificationRepositoryInterface
	UploadRepository       backend.UploadRepositoryInterface

	AppUseCase          appUseCase.IAppUseCase
	CalendarUseCase     calendarUseCase.ICalendarUseCase
	CampaignUseCase     campaignUseCase.ICampaignUseCase
	ComposerUseCase     composerUseCase.IComposerUseCase
	ContactUseCase      contactUseCase.IContactUseCase
	AnalyticsUseCase    analyticsUseCase.IAnalyticsUseCase
	AccountUseCase      accountUseCase.IAccountUseCase
	BillingUseCase      billingUseCase.IBillingUseCase
	NotificationUseCase notificationUseCase.INotificationUseCase

	AppController          appController.IAppController
	DashboardController    dashboardController.IDashboardController
	CampaignController     campaignController.ICampaignController
	ComposeController      composeController.IComposeController
	ContactController      contactController.IContactController
	LogsController         logsController.ILogsController
	AccountController      accountController.IAccountController
	BillingController      billingController.IBillingController
	NotificationController notificationController.INotificationController
}

var (
	loggerInstance *logger.Logger
	loggerOnce     sync.Once
)

// GetLogger returns the process-wide logger: console output in development,
// JSON otherwise
func GetLogger() *logger.Logger {
	loggerOnce.Do(func() {
		var err error
		if config.GetEnv("GO_ENV", "development") == "development" {
			loggerInstance, err = logger.NewDevelopmentLogger()
		} else {
			loggerInstance, err = logger.NewLogger()
		}
		if err != nil {
			loggerInstance = logger.NewNopLogger()
		}
	})
	return loggerInstance
}

// SetupDependencies creates a new application context with all dependencies
func SetupDependencies(cfg config.Config, loggerInstance *logger.Logger) (*ApplicationContext, error) {
	inspector := security.NewTokenInspector(loggerInstance, time.Now)

	// Request tokens forwarded by the bearer middleware win over the configured one
	client, err := apiclient.NewClient(
		cfg.API.BaseURL,
		cfg.APITimeout(),
		apiclient.ChainTokens(apiclient.ContextToken(), apiclient.StaticToken(cfg.API.Token)),
		inspector.Check,
		loggerInstance,
	)
	if err != nil {
		return nil, err
	}

	library := media.NewLibrary(cfg.Media.Root, cfg.Media.TmpDir, loggerInstance)
	appContext := build(client, inspector, library, cfg, loggerInstance)

	loggerInstance.Info("Dependencies initialized",
		zap.String("apiBaseURL", client.BaseURL()),
		zap.Int("uploadWorkers", cfg.Uploads.Workers),
		zap.Duration("approvalTTL", cfg.ApprovalTTL()))
	return appContext, nil
}

// NewTestApplicationContext creates an application context over a fake backend caller
func NewTestApplicationContext(
	caller backend.Caller,
	inspector security.ITokenInspector,
	library media.ILibrary,
	loggerInstance *logger.Logger,
) *ApplicationContext {
	cfg := config.Default()
	cfg.Uploads.Workers = 1
	return build(caller, inspector, library, cfg, loggerInstance)
}

func build(
	caller backend.Caller,
	inspector security.ITokenInspector,
	library media.ILibrary,
	cfg config.Config,
	loggerInstance *logger.Logger,
) *ApplicationContext {
	validator := helper.NewValidator(loggerInstance)
	appStore := store.NewStore(cfg.ApprovalTTL())

	// Initialize repositories with logger
	campaignRepo := backend.NewCampaignRepository(caller, loggerInstance)
	postRepo := backend.NewPostRepository(caller, loggerInstance)
	contactRepo := backend.NewContactRepository(caller, loggerInstance)
	socialRepo := backend.NewSocialRepository(caller, loggerInstance)
	aiRepo := backend.NewAIRepository(caller, loggerInstance)
	analyticsRepo := backend.NewAnalyticsRepository(caller, loggerInstance)
	billingRepo := backend.NewBillingRepository(caller, loggerInstance)
	notificationRepo := backend.NewNotificationRepository(caller, loggerInstance)
	uploadRepo := backend.NewUploadRepository(caller, loggerInstance)

	uploads := uploader.NewUploader(uploadRepo, library, loggerInstance, cfg.Uploads.Workers, cfg.Uploads.QueueSize)

	// Initialize use cases with logger
	appUC := appUseCase.NewAppUseCase(appStore, billingRepo, validator, loggerInstance, time.Now)
	calendarUC := calendarUseCase.NewCalendarUseCase(postRepo, time.Now, time.Local, loggerInstance)
	campaignUC := campaignUseCase.NewCampaignUseCase(campaignRepo, postRepo, validator, loggerInstance)
	composerUC := composerUseCase.NewComposerUseCase(campaignRepo, postRepo, socialRepo, aiRepo, library, uploads, loggerInstance)
	contactUC := contactUseCase.NewContactUseCase(contactRepo, validator, loggerInstance)
	analyticsUC := analyticsUseCase.NewAnalyticsUseCase(analyticsRepo, loggerInstance)
	accountUC := accountUseCase.NewAccountUseCase(socialRepo, validator, loggerInstance)
	billingUC := billingUseCase.NewBillingUseCase(billingRepo, validator, appStore, loggerInstance)
	notificationUC := notificationUseCase.NewNotificationUseCase(notificationRepo, loggerInstance)

	// Initialize controllers with logger
	return &ApplicationContext{
		Config:         cfg,
		Logger:         loggerInstance,
		APIClient:      clientOf(caller),
		TokenInspector: inspector,
		Validator:      validator,
		Store:          appStore,
		Library:        library,
		Uploader:       uploads,

		CampaignRepository:     campaignRepo,
		PostRepository:         postRepo,
		ContactRepository:      contactRepo,
		SocialRepository:       socialRepo,
		AIRepository:           aiRepo,
		AnalyticsRepository:    analyticsRepo,
		BillingRepository:      billingRepo,
		NotificationRepository: notificationRepo,
		UploadRepository:       uploadRepo,

		AppUseCase:          appUC,
		CalendarUseCase:     calendarUC,
		CampaignUseCase:     campaignUC,
		ComposerUseCase:     composerUC,
		ContactUseCase:      contactUC,
		AnalyticsUseCase:    analyticsUC,
		AccountUseCase:      accountUC,
		BillingUseCase:      billingUC,
		NotificationUseCase: notificationUC,

		AppController:          appController.NewAppController(appUC, loggerInstance),
		DashboardController:    dashboardController.NewDashboardController(calendarUC, loggerInstance),
		CampaignController:     campaignController.NewCampaignController(campaignUC, loggerInstance),
		ComposeController:      composeController.NewComposeController(composerUC, loggerInstance),
		ContactController:      contactController.NewContactController(contactUC, loggerInstance),
		LogsController:         logsController.NewLogsController(analyticsUC, loggerInstance),
		AccountController:      accountController.NewAccountController(accountUC, loggerInstance),
		BillingController:      billingController.NewBillingController(billingUC, loggerInstance),
		NotificationController: notificationController.NewNotificationController(notificationUC, loggerInstance),
	}
}

func clientOf(caller backend.Caller) *apiclient.Client {
	if client, ok := caller.(*apiclient.Client); ok {
		return client
	}
	return nil
}

// Shutdown stops the upload workers
func (a *ApplicationContext) Shutdown() {
	if a.Uploader != nil {
		a.Uploader.Shutdown()
	}
}
