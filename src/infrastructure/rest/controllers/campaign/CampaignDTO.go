package campaign

import (
	"time"

	domainCampaign "go-campzeo-client/src/domain/campaign"
	"go-campzeo-client/src/infrastructure/repository/backend"
)

// CampaignRequest takes dates as YYYY-MM-DD or full timestamps
type CampaignRequest struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	StartDate   backend.Date `json:"startDate"`
	EndDate     backend.Date `json:"endDate"`
	ContactIDs  []string     `json:"contactIds"`
}

type CampaignResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	ContactIDs  []string  `json:"contactIds"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

type PostResponse struct {
	ID                string                      `json:"id"`
	CampaignID        string                      `json:"campaignId"`
	Subject           string                      `json:"subject"`
	Message           string                      `json:"message"`
	Type              domainCampaign.PlatformType `json:"type"`
	MediaURLs         []string                    `json:"mediaUrls"`
	ScheduledPostTime time.Time                   `json:"scheduledPostTime"`
	Metadata          map[string]string           `json:"metadata"`
	Status            string                      `json:"status,omitempty"`
}

func (r *CampaignRequest) toForm() *domainCampaign.Form {
	return &domainCampaign.Form{
		Name:        r.Name,
		Description: r.Description,
		StartDate:   r.StartDate.Time,
		EndDate:     r.EndDate.Time,
		ContactIDs:  r.ContactIDs,
	}
}

func campaignToResponse(c *domainCampaign.Campaign) CampaignResponse {
	contactIDs := c.ContactIDs
	if contactIDs == nil {
		contactIDs = []string{}
	}
	return CampaignResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		StartDate:   c.StartDate,
		EndDate:     c.EndDate,
		ContactIDs:  contactIDs,
		CreatedAt:   c.CreatedAt,
	}
}

func campaignsToResponse(campaigns []domainCampaign.Campaign) []CampaignResponse {
	out := make([]CampaignResponse, len(campaigns))
	for i := range campaigns {
		out[i] = campaignToResponse(&campaigns[i])
	}
	return out
}

// PostToResponse renders a post for the gateway
func PostToResponse(p *domainCampaign.Post) PostResponse {
	mediaURLs := p.MediaURLs
	if mediaURLs == nil {
		mediaURLs = []string{}
	}
	metadata := p.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}
	return PostResponse{
		ID:                p.ID,
		CampaignID:        p.CampaignID,
		Subject:           p.Subject,
		Message:           p.Message,
		Type:              p.Type,
		MediaURLs:         mediaURLs,
		ScheduledPostTime: p.ScheduledPostTime,
		Metadata:          metadata,
		Status:            p.Status,
	}
}
