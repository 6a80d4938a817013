package account

import (
	domainCampaign "go-campzeo-client/src/domain/campaign"
)

type ConnectResponse struct {
	Platform domainCampaign.PlatformType `json:"platform"`
	URL      string                      `json:"url"`
}

type BoardRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
