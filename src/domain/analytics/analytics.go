package analytics

import (
	"time"

	"go-campzeo-client/src/domain/campaign"
)

// PostLog is one row of the logs screen
type PostLog struct {
	ID           string                `json:"id"`
	CampaignID   string                `json:"campaignId"`
	CampaignName string                `json:"campaignName"`
	Subject      string                `json:"subject"`
	Platform     campaign.PlatformType `json:"platform"`
	Status       string                `json:"status"`
	SentAt       *time.Time            `json:"sentAt,omitempty"`
}

// PostDetails is the engagement breakdown of one post
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
