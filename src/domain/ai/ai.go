package ai

import "go-campzeo-client/src/domain/campaign"

// MaxVariations is how many text suggestions are requested and kept
const MaxVariations = 3

// Variation is one generated (subject, content) suggestion
type Variation struct {
	Subject string `json:"subject"`
	Content string `json:"content"`
}

// TextRequest asks the backend for post text
type TextRequest struct {
	Prompt   string                `json:"prompt"`
	Platform campaign.PlatformType `json:"platform"`
	Count    int                   `json:"count"`
}

// ImageRequest asks the backend for an image
type ImageRequest struct {
	Prompt   string                `json:"prompt"`
	Platform campaign.PlatformType `json:"platform"`
}
