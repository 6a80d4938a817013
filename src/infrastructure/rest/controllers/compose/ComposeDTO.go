package compose

import (
	"time"

	domainCampaign "go-campzeo-client/src/domain/campaign"
)

type StartRequest struct {
	CampaignID string `json:"campaignId" binding:"required"`
	PostID     string `json:"postId"`
	Platform   string `json:"platform"`
}

type PlatformRequest struct {
	Platform string `json:"platform" binding:"required"`
}

type EditRequest struct {
	Subject           *string           `json:"subject"`
	Message           *string           `json:"message"`
	ScheduledPostTime *time.Time        `json:"scheduledPostTime"`
	Metadata          map[string]string `json:"metadata"`
}

type PromptRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

type VariationRequest struct {
	Index *int `json:"index" binding:"required"`
}

type AttachPathRequest struct {
	Path string `json:"path" binding:"required"`
}

type SubmitResponse struct {
	ID                string                      `json:"id"`
	CampaignID        string                      `json:"campaignId"`
	Type              domainCampaign.PlatformType `json:"type"`
	ScheduledPostTime time.Time                   `json:"scheduledPostTime"`
	MediaURLs         []string                    `json:"mediaUrls"`
}
