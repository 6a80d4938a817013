package analytics

import (
	"context"

	domainAnalytics "go-campzeo-client/src/domain/analytics"
	domainCampaign "go-campzeo-client/src/domain/campaign"
	domainErrors "go-campzeo-client/src/domain/errors"
	logger "go-campzeo-client/src/infrastructure/logger"
	"go-campzeo-client/src/infrastructure/repository/backend"
)

// IAnalyticsUseCase backs the logs screen
type IAnalyticsUseCase interface {
	Posts(ctx context.Context, query backend.AnalyticsQuery) ([]domainAnalytics.PostLog, error)
	PostDetails(ctx context.Context, id string) (*domainAnalytics.PostDetails, error)
}

type AnalyticsUseCase struct {
	AnalyticsRepository backend.AnalyticsRepositoryInterface
	Logger              *logger.Logger
}

func NewAnalyticsUseCase(analyticsRepository backend.AnalyticsRepositoryInterface, loggerInstance *logger.Logger) IAnalyticsUseCase {
	return &AnalyticsUseCase{
		AnalyticsRepository: analyticsRepository,
		Logger:              loggerInstance,
	}
}

func (u *AnalyticsUseCase) Posts(ctx context.Context, query backend.AnalyticsQuery) ([]domainAnalytics.PostLog, error) {
	if query.Platform != "" {
		platform, ok := domainCampaign.ParsePlatform(string(query.Platform))
		if !ok {
			return nil, domainErrors.NewValidationError([]domainErrors.FieldError{{Field: "platform", Message: "Choose a supported platform"}})
		}
		query.Platform = platform
	}
	return u.AnalyticsRepository.GetPosts(ctx, query)
}

func (u *AnalyticsUseCase) PostDetails(ctx context.Context, id string) (*domainAnalytics.PostDetails, error) {
	if id == "" {
		return nil, domainErrors.NewAppErrorWithType(domainErrors.NotFound)
	}
	return u.AnalyticsRepository.GetPostDetails(ctx, id)
}
