package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	domainAnalytics "go-campzeo-client/src/domain/analytics"
	domainCampaign "go-campzeo-client/src/domain/campaign"
	logger "go-campzeo-client/src/infrastructure/logger"

	"go.uber.org/zap"
)

// PostLog is the wire shape of one analytics row
type PostLog struct {
	ID           ID     `json:"id" validate:"required"`
	CampaignID   ID     `json:"campaignId"`
	CampaignName string `json:"campaignName"`
	Subject      string `json:"subject"`
	Platform     string `json:"platform"`
	Type         string `json:"type"`
	Status       string `json:"status"`
	SentAt       Time   `json:"sentAt"`
}

// PostDetails is the wire shape of GET /Analytics/post-details/:id
type PostDetails struct {
	PostLog
	Message     string   `json:"message"`
	MediaURLs   []string `json:"mediaUrls"`
	Impressions int      `json:"impressions"`
	Reach       int      `json:"reach"`
	Likes       int      `json:"likes"`
	Comments    int      `json:"comments"`
	Shares      int      `json:"shares"`
	Clicks      int      `json:"clicks"`
}

// AnalyticsQuery filters the logs list
type AnalyticsQuery struct {
	Platform   domainCampaign.PlatformType
	CampaignID string
	Page       int
	Limit      int
}

// AnalyticsRepositoryInterface wraps the /Analytics endpoints
type AnalyticsRepositoryInterface interface {
	GetPosts(ctx context.Context, query AnalyticsQuery) ([]domainAnalytics.PostLog, error)
	GetPostDetails(ctx context.Context, id string) (*domainAnalytics.PostDetails, error)
}

type AnalyticsRepository struct {
	Client Caller
	Logger *logger.Logger
}

func NewAnalyticsRepository(client Caller, loggerInstance *logger.Logger) AnalyticsRepositoryInterface {
	return &AnalyticsRepository{Client: client, Logger: loggerInstance}
}

func (r *AnalyticsRepository) GetPosts(ctx context.Context, query AnalyticsQuery) ([]domainAnalytics.PostLog, error) {
	params := pageQuery(query.Page, query.Limit)
	if query.Platform != "" {
		params.Set("platform", string(query.Platform))
	}
	if query.CampaignID != "" {
		params.Set("campaignId", query.CampaignID)
	}
	var raw json.RawMessage
	if err := r.Client.Do(ctx, http.MethodGet, "/Analytics/posts", params, nil, &raw); err != nil {
		r.Logger.Error("Error getting post analytics", zap.Error(err))
		return nil, err
	}
	logs, err := decodeList[PostLog](raw, "post analytics", "posts", "items")
	if err != nil {
		return nil, err
	}
	out := make([]domainAnalytics.PostLog, len(logs))
	for i := range logs {
		out[i] = logs[i].toDomainMapper()
	}
	return out, nil
}

func (r *AnalyticsRepository) GetPostDetails(ctx context.Context, id string) (*domainAnalytics.PostDetails, error) {
	var raw json.RawMessage
	if err := r.Client.Do(ctx, http.MethodGet, "/Analytics/post-details/"+escape(id), nil, nil, &raw); err != nil {
		r.Logger.Error("Error getting post details", zap.Error(err), zap.String("postID", id))
		return nil, err
	}
	details, err := decodeOne[PostDetails](raw, "post details", "post")
	if err != nil {
		return nil, err
	}
	return &domainAnalytics.PostDetails{
		PostLog:     details.PostLog.toDomainMapper(),
		Message:     details.Message,
		MediaURLs:   details.MediaURLs,
		Impressions: details.Impressions,
		Reach:       details.Reach,
		Likes:       details.Likes,
		Comments:    details.Comments,
		Shares:      details.Shares,
		Clicks:      details.Clicks,
	}, nil
}

func (p *PostLog) toDomainMapper() domainAnalytics.PostLog {
	platform := p.Platform
	if platform == "" {
		platform = p.Type
	}
	return domainAnalytics.PostLog{
		ID:           p.ID.String(),
		CampaignID:   p.CampaignID.String(),
		CampaignName: p.CampaignName,
		Subject:      p.Subject,
		Platform:     domainCampaign.PlatformType(strings.ToUpper(platform)),
		Status:       p.Status,
		SentAt:       p.SentAt.ptr(),
	}
}
